package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/turbodesigner/internal/turbo"
	"github.com/san-kum/turbodesigner/internal/units"
)

// Outline is one blade row in the meridional plane (m): axial extent from
// X0 to X1 and the annulus between Hub and Tip.
type Outline struct {
	Stage    int
	Rotating bool
	X0, X1   float64
	Hub, Tip float64
}

// Layout places every row of m along the axis. Rows occupy their chord,
// separated by the stage's row gap and stage gap.
func Layout(m *turbo.Machine) []Outline {
	var out []Outline
	x := 0.0
	for _, st := range m.Stages() {
		r, s := st.Rotor(), st.Stator()
		out = append(out, Outline{st.Number(), true, x, x + r.Chord(), r.Hub(), r.Tip()})
		x += r.Chord() + st.RowGap()
		out = append(out, Outline{st.Number(), false, x, x + s.Chord(), s.Hub(), s.Tip()})
		x += s.Chord() + st.StageGap()
	}
	return out
}

// Flowpath draws the meridional annulus of m on a w x h cell braille canvas:
// hub and tip contours with each row outlined.
func Flowpath(m *turbo.Machine, w, h int) string {
	rows := Layout(m)
	if len(rows) == 0 {
		return ""
	}

	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, o := range rows {
		yMin = min(yMin, o.Hub)
		yMax = max(yMax, o.Tip)
	}
	pad := 0.05 * (yMax - yMin)
	xMax := rows[len(rows)-1].X1

	c := NewCanvas(w, h)
	fr := NewFrame(c, 0, xMax, yMin-pad, yMax+pad)
	for i, o := range rows {
		fr.Line(o.X0, o.Hub, o.X1, o.Hub)
		fr.Line(o.X0, o.Tip, o.X1, o.Tip)
		fr.Line(o.X0, o.Hub, o.X0, o.Tip)
		fr.Line(o.X1, o.Hub, o.X1, o.Tip)
		if i+1 < len(rows) {
			next := rows[i+1]
			fr.Line(o.X1, o.Hub, next.X0, next.Hub)
			fr.Line(o.X1, o.Tip, next.X0, next.Tip)
		}
	}

	caption := fmt.Sprintf("flowpath: %d rows, %.1f mm long, r %.1f..%.1f mm",
		len(rows), xMax*units.MM, yMin*units.MM, yMax*units.MM)
	return c.String() + DefaultStyles.Subtle.Render(caption) + "\n"
}
