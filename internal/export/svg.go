package export

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/san-kum/dotsim/internal/session"
	"github.com/san-kum/dotsim/internal/tooltip"
)

// FrameToSVG renders a frame as an SVG document, one circle per element in
// paint order. Each circle carries its tooltip text as a <title>. With
// settled set, running transitions are drawn at their end state and
// exiting circles are left out.
func FrameToSVG(f session.Frame, settled bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
`, f.Width, f.Height, f.Width, f.Height))

	for _, e := range f.Elements {
		r := e.R
		if settled {
			if e.Exiting {
				continue
			}
			r = e.Target()
		}
		title := html.EscapeString(strings.Join(tooltip.Content(e.Dot), "\n"))
		sb.WriteString(fmt.Sprintf(`<circle cx="%.0f" cy="%.0f" r="%.2f" fill="%s" opacity="%.1f"><title>%s</title></circle>
`, e.CX, e.CY, r, html.EscapeString(e.Fill), e.Opacity, title))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

// WriteSVG writes FrameToSVG output to path.
func WriteSVG(path string, f session.Frame, settled bool) error {
	return os.WriteFile(path, []byte(FrameToSVG(f, settled)), 0644)
}
