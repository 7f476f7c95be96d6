package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/turbodesigner/internal/blade"
)

var ErrNoSections = errors.New("export: row has no sections")

// SectionsPlot overlays the blade sections of one row, hub to tip, on
// equal axes and writes the drawing in the given format (svg, png, pdf, eps).
func SectionsPlot(w io.Writer, row blade.Export, format string, size vg.Length) error {
	if len(row.Sections) == 0 {
		return ErrNoSections
	}

	kind := "stator"
	if row.IsRotating {
		kind = "rotor"
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("stage %d %s sections", row.StageNumber, kind)
	p.X.Label.Text = "x [mm]"
	p.Y.Label.Text = "y [mm]"

	extent := 0.0
	lines := make([]any, 0, 2*len(row.Sections))
	for i, sec := range row.Sections {
		xys := make(plotter.XYs, len(sec))
		for j, pt := range sec {
			xys[j].X = pt.X
			xys[j].Y = pt.Y
			extent = max(extent, math.Abs(pt.X), math.Abs(pt.Y))
		}
		name := fmt.Sprintf("section %d", i)
		if i < len(row.Radii) {
			name = fmt.Sprintf("r %.1f mm", row.Radii[i])
		}
		lines = append(lines, name, xys)
	}
	if err := plotutil.AddLines(p, lines...); err != nil {
		return err
	}

	extent *= 1.1
	p.X.Min, p.X.Max = -extent, extent
	p.Y.Min, p.Y.Max = -extent, extent

	wt, err := p.WriterTo(size, size, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
