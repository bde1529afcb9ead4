package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jobtrack/internal/model"
)

type columnSpec struct {
	title  string
	min    int
	max    int
	weight int
}

var listColumns = []columnSpec{
	{title: "Company", min: 12, max: 40, weight: 3},
	{title: "Platform", min: 10, max: 24, weight: 2},
	{title: "Resume Ver", min: 10, max: 16, weight: 1},
	{title: "Status", min: 9, max: 11, weight: 1},
	{title: "Date", min: 10, max: 10, weight: 0},
}

// recordTable holds the scroll window over the collection. The cursor itself
// belongs to the tracker; the table only follows it.
type recordTable struct {
	scroll int
	height int
}

func newRecordTable() recordTable {
	return recordTable{height: 20}
}

func (t *recordTable) setHeight(h int) {
	t.height = h
}

func (t *recordTable) ensureVisible(cursor, count int) {
	if count == 0 {
		t.scroll = 0
		return
	}
	rows := t.bodyRows()
	if cursor < t.scroll {
		t.scroll = cursor
	}
	if cursor >= t.scroll+rows {
		t.scroll = cursor - rows + 1
	}
	maxScroll := count - rows
	if maxScroll < 0 {
		maxScroll = 0
	}
	if t.scroll > maxScroll {
		t.scroll = maxScroll
	}
	if t.scroll < 0 {
		t.scroll = 0
	}
}

func (t recordTable) bodyRows() int {
	height := t.height
	if height <= 0 {
		height = 20
	}
	// top border, header, header separator, bottom border
	rows := height - 4
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (t recordTable) render(apps []model.Application, cursor int, totalWidth int, theme UITheme) string {
	widths := allocateColumnWidths(totalWidth-2, listColumns)
	rowLimit := t.bodyRows()
	start := t.scroll
	end := start + rowLimit
	if end > len(apps) {
		end = len(apps)
	}

	headers := make([]string, len(listColumns))
	for i, c := range listColumns {
		headers[i] = c.title
	}
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border))

	lines := make([]string, 0, rowLimit+4)
	lines = append(lines, border.Render(drawBorder("┌", "┬", "┐", widths)))
	lines = append(lines, drawRow(headers, nil, widths, false, theme, true))
	lines = append(lines, border.Render(drawBorder("├", "┼", "┤", widths)))
	if len(apps) == 0 {
		msg := "No applications yet. Press a to add one."
		lines = append(lines, drawSpanningRow(msg, widths, theme))
		start, end = 0, 0
		rowLimit--
	}
	for i := start; i < end; i++ {
		a := apps[i]
		values := []string{
			a.CompanyName,
			a.Platform.String(),
			a.ResumeVersion,
			a.Status.String(),
			a.AppliedDate.String(),
		}
		colors := []string{
			theme.TextPrimary,
			theme.TextPrimary,
			theme.TextMuted,
			theme.statusColor(a.Status),
			theme.TextMuted,
		}
		lines = append(lines, drawRow(values, colors, widths, i == cursor, theme, false))
	}
	for i := end - start; i < rowLimit; i++ {
		lines = append(lines, drawRow(make([]string, len(widths)), nil, widths, false, theme, false))
	}
	lines = append(lines, border.Render(drawBorder("└", "┴", "┘", widths)))
	return strings.Join(lines, "\n")
}

func drawBorder(left, mid, right string, widths []int) string {
	parts := make([]string, 0, len(widths)*2+1)
	parts = append(parts, left)
	for i, w := range widths {
		parts = append(parts, strings.Repeat("─", w))
		if i != len(widths)-1 {
			parts = append(parts, mid)
		}
	}
	parts = append(parts, right)
	return strings.Join(parts, "")
}

func drawRow(values, colors []string, widths []int, selected bool, theme UITheme, isHeader bool) string {
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border)).Render("│")
	parts := make([]string, 0, len(widths)*2+1)
	parts = append(parts, sep)
	for i := range widths {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cell := pad(truncate(v, widths[i]), widths[i])
		color := theme.TextPrimary
		if i < len(colors) {
			color = colors[i]
		}
		cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
		if isHeader {
			cell = center(truncate(v, widths[i]), widths[i])
			cellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TableHeader)).Bold(true)
		}
		if selected {
			cellStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.SelectionFg)).
				Background(lipgloss.Color(theme.SelectionBg)).
				Bold(true)
		}
		parts = append(parts, cellStyle.Render(cell))
		if i != len(widths)-1 {
			parts = append(parts, sep)
		}
	}
	parts = append(parts, sep)
	return strings.Join(parts, "")
}

func drawSpanningRow(text string, widths []int, theme UITheme) string {
	inner := len(widths) - 1
	for _, w := range widths {
		inner += w
	}
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border)).Render("│")
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted)).Render(center(truncate(text, inner), inner))
	return sep + body + sep
}

func allocateColumnWidths(total int, cols []columnSpec) []int {
	if total < 10 {
		total = 10
	}
	sep := len(cols) - 1
	available := total - sep
	widths := make([]int, len(cols))
	used := 0
	for i, c := range cols {
		widths[i] = c.min
		used += c.min
	}
	remaining := available - used
	for remaining > 0 {
		changed := false
		for i, c := range cols {
			if remaining == 0 {
				break
			}
			if widths[i] >= c.max || c.weight == 0 {
				continue
			}
			widths[i]++
			remaining--
			changed = true
		}
		if !changed {
			break
		}
	}
	return widths
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	if max == 1 {
		return "~"
	}
	return runewidth.Truncate(s, max, "~")
}

func pad(s string, width int) string {
	if runewidth.StringWidth(s) >= width {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.FillRight(s, width)
}

func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return runewidth.Truncate(s, width, "")
	}
	left := (width - w) / 2
	right := width - w - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}
