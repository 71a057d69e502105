package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/viz"
)

// SnapshotToSVG draws the boundary outline and every body as a filled
// circle. Coordinates are world units multiplied by scale.
func SnapshotToSVG(snap []dynamo.BodyView, boundary physics.Boundary, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	size := 2 * boundary.Radius * scale
	ox := boundary.Center.X - boundary.Radius
	oy := boundary.Center.Y - boundary.Radius

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="#ffffff" stroke-width="1"/>
<g fill="#00ff00">
`, size, size, size, size, boundary.Radius*scale, boundary.Radius*scale, boundary.Radius*scale))

	for _, b := range snap {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"/>
`, (b.X-ox)*scale, (b.Y-oy)*scale, b.Radius*scale))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
