package viz

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/metrics"
	"github.com/san-kum/turbodesigner/internal/turbo"
	"github.com/san-kum/turbodesigner/internal/units"
)

func (s Styles) table(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(s.Theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return s.Cell
		})
}

func f(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }

// StageTable summarizes the stage thermodynamics of m.
func (s Styles) StageTable(m *turbo.Machine) string {
	headers := []string{"stage", "ΔTt [K]", "R", "φ", "ψ", "PR", "Tt2 [K]", "Pt2 [bar]", "rm [mm]", "U [m/s]", "τ [N·m]", "Z rotor", "Z stator"}
	rows := make([][]string, 0, len(m.Stages()))
	for _, st := range m.Stages() {
		rows = append(rows, []string{
			strconv.Itoa(st.Number()),
			f(st.DeltaTt(), 2),
			f(st.Reaction(), 3),
			f(st.Phi(), 4),
			f(st.Psi(), 4),
			f(st.PR(), 4),
			f(st.Tt2(), 2),
			f(st.Mid().Pt*units.BAR, 4),
			f(st.MeanRadius()*units.MM, 2),
			f(st.U(), 2),
			f(st.Tau(), 1),
			strconv.Itoa(st.Rotor().Z()),
			strconv.Itoa(st.Stator().Z()),
		})
	}
	return s.table(headers, rows).Render()
}

// RowTable lists the per-stream aerodynamics of one resolved row.
func (s Styles) RowTable(row *blade.Row) string {
	headers := []string{"r [mm]", "β1 [°]", "β2 [°]", "κ1 [°]", "κ2 [°]", "i [°]", "δ [°]", "DF", "de Haller", "M1"}
	df, dh, metal := row.DF(), row.DeHaller(), row.MetalAngles()
	beta1, beta2 := row.Beta1(), row.Beta2()
	mach := metrics.InletMach(row)

	rows := make([][]string, 0, len(row.Radii()))
	for i, r := range row.Radii() {
		cells := []string{f(r*units.MM, 2), f(units.Degrees(beta1[i]), 2)}
		if row.Resolved() {
			ma := metal[i]
			cells = append(cells,
				f(units.Degrees(beta2[i]), 2),
				f(units.Degrees(ma.Kappa1), 2),
				f(units.Degrees(ma.Kappa2), 2),
				f(units.Degrees(ma.Incidence), 2),
				f(units.Degrees(ma.Deviation), 2),
				f(df[i], 4),
				f(dh[i], 4),
			)
		} else {
			for range 7 {
				cells = append(cells, "-")
			}
		}
		cells = append(cells, f(mach[i], 4))
		rows = append(rows, cells)
	}
	return s.table(headers, rows).Render()
}

// RowHeader is a one-line geometric summary of row.
func (s Styles) RowHeader(row *blade.Row) string {
	kind := "stator"
	if row.Rotating() {
		kind = "rotor"
	}
	return fmt.Sprintf("%s %s  %s %s  %s %s  %s %s  %s %s  %s %s",
		s.Title.Render(fmt.Sprintf("stage %d", row.StageNumber())), s.Value.Render(kind),
		s.Label.Render("Z"), s.Value.Render(strconv.Itoa(row.Z())),
		s.Label.Render("chord"), s.Value.Render(f(row.Chord()*units.MM, 2)+" mm"),
		s.Label.Render("σ"), s.Value.Render(f(row.Sigma(), 3)),
		s.Label.Render("s/h"), s.Value.Render(f(row.SH(), 3)),
		s.Label.Render("Re"), s.Value.Render(f(row.Re(), 0)),
	)
}

// ViolationTable lists the stream points beyond the loading limits.
func (s Styles) ViolationTable(vs []metrics.Violation) string {
	if len(vs) == 0 {
		return s.OK.Render("all rows within loading limits")
	}
	headers := []string{"stage", "row", "stream", "check", "value", "limit"}
	rows := make([][]string, 0, len(vs))
	for _, v := range vs {
		kind := "stator"
		if v.Rotating {
			kind = "rotor"
		}
		rows = append(rows, []string{
			strconv.Itoa(v.Stage), kind, strconv.Itoa(v.Stream), v.Kind, f(v.Value, 4), f(v.Limit, 4),
		})
	}
	return s.table(headers, rows).Render()
}

// StageTable renders with DefaultStyles.
func StageTable(m *turbo.Machine) string { return DefaultStyles.StageTable(m) }

// RowTable renders with DefaultStyles.
func RowTable(row *blade.Row) string { return DefaultStyles.RowTable(row) }
