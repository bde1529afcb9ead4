package tui

import (
	"jobtrack/internal/model"
	"jobtrack/internal/theme"
	"jobtrack/internal/tracker"
)

type UITheme struct {
	Border          string
	Title           string
	HelpKey         string
	HelpText        string
	StatusText      string
	Danger          string
	TextPrimary     string
	TextMuted       string
	SelectionBg     string
	SelectionFg     string
	TableHeader     string
	FieldActive     string
	StatusApplied   string
	StatusInterview string
	StatusOffer     string
	StatusRejected  string
	BarVersion      string
	BarPlatform     string
}

func defaultUITheme() UITheme {
	resolved := theme.ResolveForTerminal(theme.DefaultPaletteHex(), theme.DetectTrueColor())
	return UIThemeFromResolved(resolved)
}

func UIThemeFromResolved(r theme.PaletteResolved) UITheme {
	return UITheme{
		Border:          r.Border,
		Title:           r.Title,
		HelpKey:         r.HelpKey,
		HelpText:        r.HelpText,
		StatusText:      r.StatusText,
		Danger:          r.Danger,
		TextPrimary:     r.TextPrimary,
		TextMuted:       r.TextMuted,
		SelectionBg:     r.SelectionBg,
		SelectionFg:     r.SelectionFg,
		TableHeader:     r.TableHeader,
		FieldActive:     r.FieldActive,
		StatusApplied:   r.StatusApplied,
		StatusInterview: r.StatusInterview,
		StatusOffer:     r.StatusOffer,
		StatusRejected:  r.StatusRejected,
		BarVersion:      r.BarVersion,
		BarPlatform:     r.BarPlatform,
	}
}

func (t UITheme) withDefaults() UITheme {
	d := defaultUITheme()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.Border, d.Border)
	fill(&t.Title, d.Title)
	fill(&t.HelpKey, d.HelpKey)
	fill(&t.HelpText, d.HelpText)
	fill(&t.StatusText, d.StatusText)
	fill(&t.Danger, d.Danger)
	fill(&t.TextPrimary, d.TextPrimary)
	fill(&t.TextMuted, d.TextMuted)
	fill(&t.SelectionBg, d.SelectionBg)
	fill(&t.SelectionFg, d.SelectionFg)
	fill(&t.TableHeader, d.TableHeader)
	fill(&t.FieldActive, d.FieldActive)
	fill(&t.StatusApplied, d.StatusApplied)
	fill(&t.StatusInterview, d.StatusInterview)
	fill(&t.StatusOffer, d.StatusOffer)
	fill(&t.StatusRejected, d.StatusRejected)
	fill(&t.BarVersion, d.BarVersion)
	fill(&t.BarPlatform, d.BarPlatform)
	return t
}

func (t UITheme) statusColor(s model.Status) string {
	switch s {
	case model.StatusInterview:
		return t.StatusInterview
	case model.StatusOffer:
		return t.StatusOffer
	case model.StatusRejected:
		return t.StatusRejected
	default:
		return t.StatusApplied
	}
}

// barColor picks the bar color for a chart. Status bars are colored per
// status label and fall back to the status chart's first color.
func (t UITheme) barColor(chart tracker.ChartType, label string) string {
	switch chart {
	case tracker.ChartByPlatform:
		return t.BarPlatform
	case tracker.ChartByStatus:
		if s, err := model.ParseStatus(label); err == nil {
			return t.statusColor(s)
		}
		return t.StatusApplied
	default:
		return t.BarVersion
	}
}
