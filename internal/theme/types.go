package theme

import (
	"encoding/json"
	"fmt"
	"regexp"
)

type Hex string

type PaletteHex struct {
	Border          Hex `json:"border"`
	Title           Hex `json:"title"`
	HelpKey         Hex `json:"help_key"`
	HelpText        Hex `json:"help_text"`
	StatusText      Hex `json:"status_text"`
	Danger          Hex `json:"danger"`
	TextPrimary     Hex `json:"text_primary"`
	TextMuted       Hex `json:"text_muted"`
	SelectionBg     Hex `json:"selection_bg"`
	SelectionFg     Hex `json:"selection_fg"`
	TableHeader     Hex `json:"table_header"`
	FieldActive     Hex `json:"field_active"`
	StatusApplied   Hex `json:"status_applied"`
	StatusInterview Hex `json:"status_interview"`
	StatusOffer     Hex `json:"status_offer"`
	StatusRejected  Hex `json:"status_rejected"`
	BarVersion      Hex `json:"bar_version"`
	BarPlatform     Hex `json:"bar_platform"`
}

type ThemeFile struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Version int        `json:"version"`
	Colors  PaletteHex `json:"colors"`

	// Defaulted lists the color keys the file left out, in palette order.
	Defaulted []string `json:"-"`
}

type themeFileJSON struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Version int            `json:"version"`
	Colors  map[string]Hex `json:"colors"`
}

type PaletteResolved struct {
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

var hexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type paletteEntry struct {
	key string
	val *Hex
}

func (p *PaletteHex) entries() []paletteEntry {
	return []paletteEntry{
		{"border", &p.Border},
		{"title", &p.Title},
		{"help_key", &p.HelpKey},
		{"help_text", &p.HelpText},
		{"status_text", &p.StatusText},
		{"danger", &p.Danger},
		{"text_primary", &p.TextPrimary},
		{"text_muted", &p.TextMuted},
		{"selection_bg", &p.SelectionBg},
		{"selection_fg", &p.SelectionFg},
		{"table_header", &p.TableHeader},
		{"field_active", &p.FieldActive},
		{"status_applied", &p.StatusApplied},
		{"status_interview", &p.StatusInterview},
		{"status_offer", &p.StatusOffer},
		{"status_rejected", &p.StatusRejected},
		{"bar_version", &p.BarVersion},
		{"bar_platform", &p.BarPlatform},
	}
}

// ColorKeys returns every palette key in display order.
func ColorKeys() []string {
	var p PaletteHex
	out := make([]string, 0, 18)
	for _, e := range p.entries() {
		out = append(out, e.key)
	}
	return out
}

func (p PaletteHex) Validate() error {
	for _, e := range p.entries() {
		if !hexRe.MatchString(string(*e.val)) {
			return fmt.Errorf("invalid hex color for %s: %q", e.key, string(*e.val))
		}
	}
	return nil
}

// ParseThemeFile decodes a theme on top of the default palette. Unknown color
// keys are rejected so a misspelled key does not silently fall back.
func ParseThemeFile(b []byte) (ThemeFile, error) {
	var raw themeFileJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return ThemeFile{}, err
	}
	if raw.ID == "" {
		return ThemeFile{}, fmt.Errorf("theme id is required")
	}
	t := ThemeFile{
		ID:      raw.ID,
		Name:    raw.Name,
		Version: raw.Version,
		Colors:  DefaultPaletteHex(),
	}
	if t.Version == 0 {
		t.Version = 1
	}
	if t.Name == "" {
		t.Name = t.ID
	}
	known := map[string]*Hex{}
	for _, e := range t.Colors.entries() {
		known[e.key] = e.val
	}
	for key, val := range raw.Colors {
		dst, ok := known[key]
		if !ok {
			return ThemeFile{}, fmt.Errorf("unknown color key %q", key)
		}
		*dst = val
	}
	for _, e := range t.Colors.entries() {
		if _, ok := raw.Colors[e.key]; !ok {
			t.Defaulted = append(t.Defaulted, e.key)
		}
	}
	if err := t.Colors.Validate(); err != nil {
		return ThemeFile{}, err
	}
	return t, nil
}

func DefaultPaletteHex() PaletteHex {
	return PaletteHex{
		Border:          "#5f87af",
		Title:           "#00d7d7",
		HelpKey:         "#5fd75f",
		HelpText:        "#a8a8a8",
		StatusText:      "#d7d787",
		Danger:          "#d70000",
		TextPrimary:     "#dadada",
		TextMuted:       "#8a8a8a",
		SelectionBg:     "#4e4e4e",
		SelectionFg:     "#ffffff",
		TableHeader:     "#ffd700",
		FieldActive:     "#ffd700",
		StatusApplied:   "#ffd700",
		StatusInterview: "#00d7d7",
		StatusOffer:     "#5fd75f",
		StatusRejected:  "#ff5f5f",
		BarVersion:      "#5fd75f",
		BarPlatform:     "#5f87ff",
	}
}
