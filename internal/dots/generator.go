package dots

import (
	"github.com/san-kum/dotsim/internal/palette"
	"github.com/san-kum/dotsim/internal/random"
)

const (
	MinBatch = 8
	MaxBatch = 64
)

// Generator produces batches of dots whose radius bound grows by one per
// batch until MaxRadius.
type Generator struct {
	width, height int
	radiusCap     int
	palette       palette.Palette
	rng           *random.Sampler
}

func NewGenerator(width, height, radius int, p palette.Palette, rng *random.Sampler) *Generator {
	if rng == nil {
		rng = random.New()
	}
	return &Generator{
		width:     width,
		height:    height,
		radiusCap: radius,
		palette:   p,
		rng:       rng,
	}
}

// RadiusCap is the exclusive upper bound of radii in the latest batch.
func (g *Generator) RadiusCap() int { return g.radiusCap }

// Next raises the radius cap and returns a batch of MinBatch..MaxBatch dots.
func (g *Generator) Next() ([]Dot, error) {
	if len(g.palette) == 0 {
		return nil, palette.ErrEmpty
	}

	if g.radiusCap < MaxRadius {
		g.radiusCap++
	}

	n := g.rng.Range(MinBatch, MaxBatch+1)
	batch := make([]Dot, n)
	for i := range batch {
		c, err := g.rng.Color(g.palette)
		if err != nil {
			return nil, err
		}
		batch[i] = Dot{
			X: g.rng.Intn(g.width),
			Y: g.rng.Intn(g.height),
			R: g.rng.Intn(g.radiusCap),
			C: c,
		}
	}
	return batch, nil
}
