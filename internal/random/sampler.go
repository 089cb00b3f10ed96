package random

import (
	"math"
	"math/rand"
	"time"

	"github.com/san-kum/dotsim/internal/palette"
)

type Sampler struct {
	rng *rand.Rand
}

// New returns a clock-seeded sampler.
func New() *Sampler {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

func NewWithSource(src rand.Source) *Sampler {
	return &Sampler{rng: rand.New(src)}
}

// Float returns a uniform value in [0,1).
func (s *Sampler) Float() float64 {
	return s.rng.Float64()
}

// Intn returns an integer in [0,max), or 0 when max <= 0.
func (s *Sampler) Intn(max int) int {
	return s.Range(0, max)
}

// Range returns min + floor(Float()*(max-min)), an integer in [min,max).
func (s *Sampler) Range(min, max int) int {
	if max <= min {
		return min
	}
	return min + int(math.Floor(s.Float()*float64(max-min)))
}

// Color picks a palette entry uniformly.
func (s *Sampler) Color(p palette.Palette) (palette.Color, error) {
	if len(p) == 0 {
		return palette.Color{}, palette.ErrEmpty
	}
	return p[s.Intn(len(p))], nil
}
