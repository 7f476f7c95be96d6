package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/metrics"
	"github.com/san-kum/turbodesigner/internal/turbo"
)

type browser struct {
	machine *turbo.Machine
	limits  metrics.Limits
	styles  Styles
	cursor  int
	rotor   bool
	width   int
	height  int
}

// NewBrowser returns a Bubble Tea model that steps through the rows of m.
func NewBrowser(m *turbo.Machine, limits metrics.Limits, theme Theme) tea.Model {
	return browser{
		machine: m,
		limits:  limits,
		styles:  NewStyles(theme),
		rotor:   true,
		width:   100,
		height:  40,
	}
}

func (b browser) Init() tea.Cmd { return nil }

func (b browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return b, tea.Quit
		case "down", "j":
			if b.cursor < len(b.machine.Stages())-1 {
				b.cursor++
			}
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "tab":
			b.rotor = !b.rotor
		case "t":
			b.styles = NewStyles(nextTheme(b.styles.Theme))
		}
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	}
	return b, nil
}

func (b browser) row() *blade.Row {
	st := b.machine.Stages()[b.cursor]
	if b.rotor {
		return st.Rotor()
	}
	return st.Stator()
}

func (b browser) View() string {
	s := b.styles
	var out strings.Builder

	d := b.machine.Design()
	out.WriteString(s.Title.Render("turbodesigner") + "  " +
		s.Subtle.Render(fmt.Sprintf("%d stages  PR %.3f  N %.0f rpm  ṁ %.2f kg/s", len(b.machine.Stages()), d.PR, d.N, d.Mdot)) + "\n")
	out.WriteString(s.Separator(min(b.width, 100)) + "\n")

	for i, st := range b.machine.Stages() {
		line := fmt.Sprintf("stage %-2d ΔTt %6.2f K  R %.2f  PR %.4f", st.Number(), st.DeltaTt(), st.Reaction(), st.PR())
		if i == b.cursor {
			out.WriteString(s.Value.Render("▸ "+line) + "\n")
		} else {
			out.WriteString("  " + s.Subtle.Render(line) + "\n")
		}
	}
	out.WriteString("\n")

	row := b.row()
	out.WriteString(s.RowHeader(row) + "\n")
	out.WriteString(s.RowTable(row) + "\n")

	for i, df := range row.DF() {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			s.Label.Render(fmt.Sprintf("DF stream %d", i)),
			s.LoadingBar(df, b.limits.MaxDF, 30),
			s.Value.Render(fmt.Sprintf("%.3f", df)),
		))
	}

	if plot, err := RadialPlot(row, PlotSize{Width: 50, Height: 8}); err == nil {
		out.WriteString("\n" + plot + "\n")
	}

	out.WriteString("\n" + s.Hint.Render("j/k stage  tab rotor/stator  t theme  q quit") + "\n")
	return out.String()
}

// Browse runs the stage browser on the alternate screen until the user quits.
func Browse(m *turbo.Machine, limits metrics.Limits, theme Theme) error {
	p := tea.NewProgram(NewBrowser(m, limits, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
