package dots

import (
	"strconv"

	"github.com/san-kum/dotsim/internal/palette"
)

// MaxRadius bounds the growing radius cap.
const MaxRadius = 31

// Dot is one randomly generated circle.
type Dot struct {
	X, Y int
	R    int
	C    palette.Color
}

// Key identifies a dot across cycles. Fields are concatenated without
// separators, so x=1,y=23 and x=12,y=3 collide; colliding dots are treated
// as the same dot.
func Key(d Dot) string {
	return strconv.Itoa(d.X) + strconv.Itoa(d.Y) + strconv.Itoa(d.R) + d.C.Hex
}
