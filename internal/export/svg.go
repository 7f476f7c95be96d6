// Package export writes machine drawings in vector formats.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/turbodesigner/internal/viz"
)

const (
	rotorFill  = "#00a8cc"
	statorFill = "#ffaa00"
	wallStroke = "#e0f0ff"
)

// FlowpathSVG draws the meridional section of the rows: one rectangle per
// row between hub and tip, and the hub and tip walls joining them. The
// drawing keeps the axial and radial scales equal and fits width x height.
func FlowpathSVG(rows []viz.Outline, width, height int) string {
	if len(rows) == 0 {
		return ""
	}

	minX, maxX := rows[0].X0, rows[len(rows)-1].X1
	minY, maxY := rows[0].Hub, rows[0].Tip
	for _, o := range rows {
		minY = min(minY, o.Hub)
		maxY = max(maxY, o.Tip)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	pad := 0.05 * max(rangeX, rangeY)
	minX -= pad
	minY -= pad
	rangeX += 2 * pad
	rangeY += 2 * pad

	scale := min(float64(width)/rangeX, float64(height)/rangeY)
	px := func(x float64) float64 { return (x - minX) * scale }
	py := func(y float64) float64 { return float64(height) - (y-minY)*scale }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	for _, o := range rows {
		fill := statorFill
		if o.Rotating {
			fill = rotorFill
		}
		fmt.Fprintf(&sb, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" fill-opacity="0.6"><title>stage %d</title></rect>
`, px(o.X0), py(o.Tip), (o.X1-o.X0)*scale, (o.Tip-o.Hub)*scale, fill, o.Stage)
	}

	for _, wall := range []func(viz.Outline) float64{
		func(o viz.Outline) float64 { return o.Hub },
		func(o viz.Outline) float64 { return o.Tip },
	} {
		sb.WriteString(`<path fill="none" stroke="` + wallStroke + `" stroke-width="1.5" d="M`)
		for i, o := range rows {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.2f,%.2f L%.2f,%.2f", px(o.X0), py(wall(o)), px(o.X1), py(wall(o)))
		}
		sb.WriteString(`"/>` + "\n")
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}
