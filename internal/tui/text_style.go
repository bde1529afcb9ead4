package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func colorizeDetailLine(line string, theme UITheme) string {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextPrimary)).Render(line)
	}
	label := line[:idx+1]
	value := strings.TrimSpace(line[idx+1:])
	labelStyled := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted)).Render(label)
	valueStyled := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextPrimary)).Render(value)
	if value == "" {
		return labelStyled
	}
	return labelStyled + " " + valueStyled
}

// fieldLine renders one "Label: value" form row. The active row is drawn in
// the highlight color with a marker so it stays visible without color.
func fieldLine(label, value string, active bool, theme UITheme) string {
	if !active {
		return "  " + colorizeDetailLine(label+": "+value, theme)
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.FieldActive)).Bold(true)
	return style.Render("> " + label + ": " + value)
}
