package reconcile

import (
	"reflect"
	"testing"

	"github.com/san-kum/dotsim/internal/dots"
	"github.com/san-kum/dotsim/internal/palette"
)

var (
	red  = palette.Color{Name: "Red", Hex: "#FF0000", RGB: "255,0,0"}
	blue = palette.Color{Name: "Blue", Hex: "#0000FF", RGB: "0,0,255"}
)

func batch(n int, c palette.Color) []dots.Dot {
	out := make([]dots.Dot, n)
	for i := range out {
		out[i] = dots.Dot{X: i * 10, Y: 5, R: 3, C: c}
	}
	return out
}

func TestReconcile_Self(t *testing.T) {
	r := batch(12, red)
	diff := Reconcile(r, r)

	if len(diff.Entering) != 0 || len(diff.Exiting) != 0 {
		t.Errorf("expected no enter/exit, got %d/%d", len(diff.Entering), len(diff.Exiting))
	}
	if !reflect.DeepEqual(diff.Persisting, r) {
		t.Error("expected every dot to persist in order")
	}
}

func TestReconcile_EmptyPrior(t *testing.T) {
	b := batch(9, red)
	diff := Reconcile(nil, b)

	if len(diff.Persisting) != 0 || len(diff.Exiting) != 0 {
		t.Errorf("expected no persist/exit, got %d/%d", len(diff.Persisting), len(diff.Exiting))
	}
	if !reflect.DeepEqual(diff.Entering, b) {
		t.Error("expected every dot to enter in order")
	}
}

func TestReconcile_NoOverlap(t *testing.T) {
	first := batch(8, red)
	second := batch(10, blue)
	diff := Reconcile(first, second)

	if !reflect.DeepEqual(diff.Exiting, first) {
		t.Error("expected the whole first batch to exit")
	}
	if !reflect.DeepEqual(diff.Entering, second) {
		t.Error("expected the whole second batch to enter")
	}
	if len(diff.Persisting) != 0 {
		t.Errorf("expected no persisting dots, got %d", len(diff.Persisting))
	}
}

func TestReconcile_Mixed(t *testing.T) {
	a := dots.Dot{X: 1, Y: 1, R: 1, C: red}
	b := dots.Dot{X: 2, Y: 2, R: 2, C: red}
	c := dots.Dot{X: 3, Y: 3, R: 3, C: red}
	d := dots.Dot{X: 4, Y: 4, R: 4, C: red}

	diff := Reconcile([]dots.Dot{a, b, c}, []dots.Dot{d, b})

	if !reflect.DeepEqual(diff.Entering, []dots.Dot{d}) {
		t.Errorf("entering: %+v", diff.Entering)
	}
	if !reflect.DeepEqual(diff.Persisting, []dots.Dot{b}) {
		t.Errorf("persisting: %+v", diff.Persisting)
	}
	if !reflect.DeepEqual(diff.Exiting, []dots.Dot{a, c}) {
		t.Errorf("exiting: %+v", diff.Exiting)
	}
}

func TestReconcile_DuplicateKeys(t *testing.T) {
	a := dots.Dot{X: 1, Y: 23, R: 4, C: red}
	twin := dots.Dot{X: 12, Y: 3, R: 4, C: red}

	diff := Reconcile(nil, []dots.Dot{a, a, twin})
	if !reflect.DeepEqual(diff.Entering, []dots.Dot{a}) {
		t.Errorf("expected duplicates to coalesce onto the first dot, got %+v", diff.Entering)
	}
}
