package tooltip

import "github.com/san-kum/dotsim/internal/dots"

// Direction is the side of the dot the tooltip opens toward.
type Direction string

const (
	North Direction = "n"
	South Direction = "s"
)

// edge is the distance from the top/left canvas border inside which the
// tooltip is pushed into the canvas.
const edge = 100

// Placement is the tooltip offset in pixels relative to its anchor.
type Placement struct {
	Direction Direction
	Top       int
	Left      int
}

// Place keeps tooltips of dots near the top or left border on the canvas.
func Place(d dots.Dot) Placement {
	p := Placement{Direction: North, Top: -10}
	if d.X < edge {
		p.Left = 100
	}
	if d.Y < edge {
		p.Direction = South
		p.Top = 20
	}
	return p
}

// Content is the text shown for a dot, one line per field.
func Content(d dots.Dot) []string {
	return []string{
		"Name: " + d.C.Name,
		"Hex value: " + d.C.Hex,
		"RGB value: " + d.C.RGB,
	}
}

type State struct {
	Visible   bool
	Dot       dots.Dot
	Placement Placement
	Lines     []string
}

// Controller tracks the single tooltip overlay.
type Controller struct {
	state State
}

func (c *Controller) Show(d dots.Dot) {
	c.state = State{
		Visible:   true,
		Dot:       d,
		Placement: Place(d),
		Lines:     Content(d),
	}
}

func (c *Controller) Hide() { c.state = State{} }

func (c *Controller) State() State {
	s := c.state
	s.Lines = append([]string(nil), c.state.Lines...)
	return s
}
