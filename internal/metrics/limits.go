package metrics

import (
	"fmt"

	"github.com/san-kum/turbodesigner/internal/blade"
)

// Limits are the usual subsonic compressor loading limits.
type Limits struct {
	MaxDF       float64
	MinDeHaller float64
}

func DefaultLimits() Limits {
	return Limits{MaxDF: 0.6, MinDeHaller: 0.72}
}

// Violation is one stream exceeding a loading limit.
type Violation struct {
	Stage    int
	Rotating bool
	Stream   int
	Kind     string
	Value    float64
	Limit    float64
}

func (v Violation) String() string {
	row := "stator"
	if v.Rotating {
		row = "rotor"
	}
	return fmt.Sprintf("stage %d %s stream %d: %s %.3f (limit %.2f)", v.Stage, row, v.Stream, v.Kind, v.Value, v.Limit)
}

// Check lists every stream of rows that breaks l. Rows that are not
// resolved contribute nothing.
func (l Limits) Check(rows []*blade.Row) []Violation {
	var out []Violation
	for _, row := range rows {
		for i, df := range row.DF() {
			if df > l.MaxDF {
				out = append(out, Violation{row.StageNumber(), row.Rotating(), i, "diffusion factor", df, l.MaxDF})
			}
		}
		for i, dh := range row.DeHaller() {
			if dh < l.MinDeHaller {
				out = append(out, Violation{row.StageNumber(), row.Rotating(), i, "de Haller", dh, l.MinDeHaller})
			}
		}
	}
	return out
}
