package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/turbo"
	"github.com/san-kum/turbodesigner/internal/units"
)

// PlotSize is the asciigraph area in terminal cells. Series shorter than
// Width are interpolated.
type PlotSize struct {
	Width, Height int
}

var DefaultPlotSize = PlotSize{Width: 60, Height: 12}

// StageQuantities are the per-stage series StagePlot can draw.
var StageQuantities = map[string]func(m *turbo.Machine) []float64{
	"pr":       func(m *turbo.Machine) []float64 { return perStage(m, func(i int) float64 { return m.Stages()[i].PR() }) },
	"dtt":      func(m *turbo.Machine) []float64 { return perStage(m, func(i int) float64 { return m.Stages()[i].DeltaTt() }) },
	"phi":      func(m *turbo.Machine) []float64 { return perStage(m, func(i int) float64 { return m.Stages()[i].Phi() }) },
	"psi":      func(m *turbo.Machine) []float64 { return perStage(m, func(i int) float64 { return m.Stages()[i].Psi() }) },
	"reaction": func(m *turbo.Machine) []float64 { return perStage(m, func(i int) float64 { return m.Stages()[i].Reaction() }) },
	"tt":       func(m *turbo.Machine) []float64 { return perStage(m, func(i int) float64 { return m.Stages()[i].Tt2() }) },
	"height": func(m *turbo.Machine) []float64 {
		return perStage(m, func(i int) float64 { return m.Stages()[i].Rotor().Height() * units.MM })
	},
}

func perStage(m *turbo.Machine, fn func(i int) float64) []float64 {
	out := make([]float64, len(m.Stages()))
	for i := range out {
		out[i] = fn(i)
	}
	return out
}

// StagePlot draws one per-stage quantity against stage number.
func StagePlot(m *turbo.Machine, quantity string, size PlotSize) (string, error) {
	fn, ok := StageQuantities[quantity]
	if !ok {
		return "", fmt.Errorf("unknown stage quantity: %s", quantity)
	}
	return asciigraph.Plot(fn(m),
		asciigraph.Height(size.Height),
		asciigraph.Width(size.Width),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("%s by stage (1..%d)", quantity, len(m.Stages()))),
	), nil
}

// RadialPlot draws the inlet and exit flow angles of a resolved row from
// hub to tip, in degrees.
func RadialPlot(row *blade.Row, size PlotSize) (string, error) {
	if !row.Resolved() {
		return "", blade.ErrNotResolved
	}
	beta1 := units.Scale(row.Beta1(), units.DEG)
	beta2 := units.Scale(row.Beta2(), units.DEG)

	kind := "stator"
	if row.Rotating() {
		kind = "rotor"
	}
	return asciigraph.PlotMany(
		[][]float64{beta1, beta2},
		asciigraph.Height(size.Height),
		asciigraph.Width(size.Width),
		asciigraph.Precision(1),
		asciigraph.Caption(fmt.Sprintf("stage %d %s β1/β2 [deg], hub to tip", row.StageNumber(), kind)),
	), nil
}
