// Package scene is the retained set of drawn circles. It applies keyed
// joins from the reconcile package and runs the radius transitions that
// grow entering circles and shrink exiting ones.
package scene

import (
	"time"

	"github.com/san-kum/dotsim/internal/dots"
	"github.com/san-kum/dotsim/internal/reconcile"
)

const (
	DefaultDuration = 4500 * time.Millisecond
	Opacity         = 0.6
)

type tween struct {
	from, to float64
	start    time.Time
	active   bool
}

// Element is one drawn circle.
type Element struct {
	Key     string
	Dot     dots.Dot
	CX, CY  float64
	R       float64
	Opacity float64
	Fill    string
	// Exiting elements have left the logical set and are shrinking away.
	Exiting bool

	tween tween
}

// Target is the radius the element settles at once its transition ends.
func (e Element) Target() float64 {
	if e.tween.active {
		return e.tween.to
	}
	return e.R
}

// Animating reports whether a radius transition is in flight.
func (e Element) Animating() bool { return e.tween.active }

func (e *Element) animate(to float64, now time.Time) {
	e.tween = tween{from: e.R, to: to, start: now, active: true}
}

type Scene struct {
	duration time.Duration
	elements []*Element
	live     map[string]*Element
}

func New(duration time.Duration) *Scene {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Scene{
		duration: duration,
		live:     make(map[string]*Element),
	}
}

func (s *Scene) Duration() time.Duration { return s.duration }

// Apply joins batch against the live set at time now and starts the
// enter and exit transitions. Persisting elements only move.
func (s *Scene) Apply(batch []dots.Dot, now time.Time) reconcile.Diff {
	s.Advance(now)
	diff := reconcile.Reconcile(s.Live(), batch)

	for _, d := range diff.Entering {
		e := &Element{
			Key:     dots.Key(d),
			Dot:     d,
			CX:      float64(d.X),
			CY:      float64(d.Y),
			Opacity: Opacity,
			Fill:    d.C.Hex,
		}
		e.animate(float64(d.R), now)
		s.elements = append(s.elements, e)
		s.live[e.Key] = e
	}

	for _, d := range diff.Persisting {
		e := s.live[dots.Key(d)]
		e.Dot = d
		e.CX, e.CY = float64(d.X), float64(d.Y)
	}

	for _, d := range diff.Exiting {
		k := dots.Key(d)
		e := s.live[k]
		e.Exiting = true
		e.animate(0, now)
		delete(s.live, k)
	}

	return diff
}

// Advance moves every transition to time now and drops elements whose
// exit has finished.
func (s *Scene) Advance(now time.Time) {
	kept := s.elements[:0]
	for _, e := range s.elements {
		if e.tween.active {
			p := float64(now.Sub(e.tween.start)) / float64(s.duration)
			if p >= 1 {
				e.R = e.tween.to
				e.tween.active = false
			} else if p > 0 {
				e.R = e.tween.from + (e.tween.to-e.tween.from)*easeCubicInOut(p)
			}
		}
		if e.Exiting && !e.tween.active {
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(s.elements); i++ {
		s.elements[i] = nil
	}
	s.elements = kept
}

// Live returns the logical rendered set in paint order.
func (s *Scene) Live() []dots.Dot {
	out := make([]dots.Dot, 0, len(s.live))
	for _, e := range s.elements {
		if !e.Exiting {
			out = append(out, e.Dot)
		}
	}
	return out
}

// Elements copies every drawn element, exiting ones included, in paint order.
func (s *Scene) Elements() []Element {
	out := make([]Element, len(s.elements))
	for i, e := range s.elements {
		out[i] = *e
	}
	return out
}

func (s *Scene) LiveLen() int { return len(s.live) }

// HitTest returns the topmost element covering (x, y).
func (s *Scene) HitTest(x, y float64) (Element, bool) {
	for i := len(s.elements) - 1; i >= 0; i-- {
		e := s.elements[i]
		if e.R <= 0 {
			continue
		}
		dx, dy := x-e.CX, y-e.CY
		if dx*dx+dy*dy <= e.R*e.R {
			return *e, true
		}
	}
	return Element{}, false
}

func (s *Scene) Clear() {
	s.elements = nil
	s.live = make(map[string]*Element)
}

func easeCubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
