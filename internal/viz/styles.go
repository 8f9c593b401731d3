package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(originY, originX)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(panelWidth)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func statusStyle(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// FillBar shows how far the particle count is toward its target.
func FillBar(fill float64, width int, c lipgloss.Color) string {
	n := int(math.Round(math.Max(0, math.Min(1, fill)) * float64(width)))
	return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render(strings.Repeat("░", width-n))
}

// Sparkline renders the newest width values scaled between their min and max.
func Sparkline(values []float64, width int, c lipgloss.Color) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	out := make([]rune, len(values))
	top := len(sparkLevels) - 1
	for i, v := range values {
		out[i] = sparkLevels[int(math.Round((v-lo)/span*float64(top)))]
	}
	return lipgloss.NewStyle().Foreground(c).Render(string(out))
}
