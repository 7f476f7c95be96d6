// Package metrics observes resolved blade rows and reduces them to design
// diagnostics.
package metrics

import (
	"github.com/san-kum/turbodesigner/internal/blade"
)

type Metric interface {
	Name() string
	Observe(row *blade.Row)
	Value() float64
	Reset()
}

// Evaluate resets every metric, feeds it all rows and returns the values by name.
func Evaluate(rows []*blade.Row, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for _, row := range rows {
			m.Observe(row)
		}
		out[m.Name()] = m.Value()
	}
	return out
}

// InletMach is the stream inlet Mach number in the row frame.
func InletMach(row *blade.Row) []float64 {
	streams := row.Streams()
	out := make([]float64, len(streams))
	for i, s := range streams {
		if row.Rotating() {
			out[i] = s.MNRel()
		} else {
			out[i] = s.MN()
		}
	}
	return out
}
