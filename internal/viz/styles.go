package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Theme  Theme
	Panel  lipgloss.Style
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Subtle lipgloss.Style
	Hint   lipgloss.Style
	OK     lipgloss.Style
	Warn   lipgloss.Style
	Fail   lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Primary),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			Padding(0, 1),
		Cell:   lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1),
		Label:  lipgloss.NewStyle().Foreground(t.Muted),
		Value:  lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Subtle: lipgloss.NewStyle().Foreground(t.Muted),
		Hint:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		OK:     lipgloss.NewStyle().Foreground(t.Success),
		Warn:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Fail:   lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}

// DefaultStyles is used by the package-level render functions.
var DefaultStyles = NewStyles(ThemeDefault)

// LoadingBar fills width cells in proportion to value/limit, coloured by how
// close value is to limit. Values beyond the limit render a full red bar.
func (s Styles) LoadingBar(value, limit float64, width int) string {
	frac := value / limit
	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	switch {
	case frac > 1:
		return s.Fail.Render(bar)
	case frac > 0.85:
		return s.Warn.Render(bar)
	}
	return s.OK.Render(bar)
}

// Sparkline renders values as block characters scaled to their own range.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return b.String()
}

// Separator is a muted horizontal rule.
func (s Styles) Separator(width int) string {
	if width < 8 {
		width = 8
	}
	mid := width / 2
	return s.Subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
