package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jobtrack/internal/stats"
	"jobtrack/internal/tracker"
)

const maxChartLabelWidth = 24

func renderChartView(tr *tracker.Tracker, width int, theme UITheme) string {
	chart := tr.Chart()
	series := tr.ChartSeries()
	innerW := panelInnerWidth(width)

	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Title)).Bold(true).Render(chart.Title()),
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted)).Render(chart.AxisLabel()),
		"",
	}
	if series.NoData {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted)).Render("No data available"))
	} else {
		lines = append(lines, chartBars(chart, series, innerW, theme)...)
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

func chartBars(chart tracker.ChartType, series stats.Series, width int, theme UITheme) []string {
	labelW := 0
	for _, b := range series.Bars {
		if w := runewidth.StringWidth(b.Label); w > labelW {
			labelW = w
		}
	}
	if labelW > maxChartLabelWidth {
		labelW = maxChartLabelWidth
	}
	maxCount := series.Max()
	countW := len(strconv.Itoa(maxCount))
	barSpace := width - labelW - countW - 3
	if barSpace < 1 {
		barSpace = 1
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextPrimary))
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted))
	out := make([]string, 0, len(series.Bars))
	for _, b := range series.Bars {
		n := barLength(b.Count, maxCount, barSpace)
		bar := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.barColor(chart, b.Label))).Render(strings.Repeat("█", n))
		out = append(out, fmt.Sprintf("%s %s %s",
			labelStyle.Render(pad(truncate(b.Label, labelW), labelW)),
			bar,
			countStyle.Render(strconv.Itoa(b.Count)),
		))
	}
	return out
}

// barLength scales count against maxCount so the longest bar fills space.
// Non-zero counts always get at least one cell.
func barLength(count, maxCount, space int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	n := count * space / maxCount
	if n < 1 {
		n = 1
	}
	return n
}
