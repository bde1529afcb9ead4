package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"jobtrack/internal/model"
	"jobtrack/internal/tracker"
)

func formTitle(tr *tracker.Tracker) string {
	mode, idx := tr.Mode()
	if mode == tracker.ModeEdit {
		return fmt.Sprintf("Edit Application #%d", idx+1)
	}
	return "Add New Application"
}

func renderFormView(tr *tracker.Tracker, width int, theme UITheme) string {
	draft := tr.Draft()
	active := tr.Field()
	innerW := panelInnerWidth(width)

	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Title)).Bold(true).Render(formTitle(tr)),
		"",
	}
	for _, f := range tracker.Fields() {
		isActive := f == active
		if isActive && f.HasDropdown() {
			lines = append(lines, renderDropdown(f, tr.DropdownCursor(f), innerW, theme))
			if f == tracker.FieldPlatform && tr.DropdownCursor(f) == len(model.PlatformPresets())-1 {
				custom := ""
				if draft.Platform.IsOther() {
					custom = draft.Platform.Custom
				}
				lines = append(lines, fieldLine("Custom platform", renderInputLineWithCursor(custom, true), true, theme))
			}
			continue
		}
		value := tailFit(fieldValue(tr, f, draft), innerW-runewidth.StringWidth(f.Label())-5)
		if isActive {
			value = renderInputLineWithCursor(value, true)
		}
		lines = append(lines, fieldLine(f.Label(), value, isActive, theme))
	}

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

func fieldValue(tr *tracker.Tracker, f tracker.Field, draft model.Application) string {
	switch f {
	case tracker.FieldPlatform:
		return draft.Platform.String()
	case tracker.FieldResumeModified:
		return yesNo(draft.ResumeModified)
	case tracker.FieldResumeVersion:
		return draft.ResumeVersion
	case tracker.FieldStatus:
		return draft.Status.String()
	case tracker.FieldDate:
		if tr.Field() == tracker.FieldDate && tr.DateInput() != "" {
			return fmt.Sprintf("%s  (saved as %s)", tr.DateInput(), draft.AppliedDate)
		}
		return draft.AppliedDate.String()
	case tracker.FieldNotes:
		return draft.Notes
	default:
		return draft.CompanyName
	}
}

func renderDropdown(f tracker.Field, cursor int, width int, theme UITheme) string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.FieldActive)).
		Bold(true).
		Render(f.Label() + " (j/k to select)")
	lines := []string{title}
	for i, opt := range f.Options() {
		if i == cursor {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.SelectionFg)).
				Background(lipgloss.Color(theme.SelectionBg)).
				Bold(true).
				Render("> "+opt))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextPrimary)).Render("  "+opt))
	}
	boxWidth := width - 2
	if boxWidth > 40 {
		boxWidth = 40
	}
	if boxWidth < 16 {
		boxWidth = 16
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(theme.FieldActive)).
		Padding(0, 1).
		Width(boxWidth).
		Render(strings.Join(lines, "\n"))
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func renderInputLineWithCursor(value string, visible bool) string {
	if visible {
		return value + "|"
	}
	return value + " "
}

// tailFit keeps the end of s within max cells so the text being typed stays
// in view.
func tailFit(s string, max int) string {
	if max <= 1 || runewidth.StringWidth(s) <= max {
		return s
	}
	r := []rune(s)
	w := 1
	i := len(r)
	for i > 0 && w+runewidth.RuneWidth(r[i-1]) <= max {
		w += runewidth.RuneWidth(r[i-1])
		i--
	}
	return "~" + string(r[i:])
}
