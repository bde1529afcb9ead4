package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jobtrack/internal/config"
)

const DefaultID = "default"

// Active is the palette the TUI should draw with.
type Active struct {
	ID        string
	Name      string
	Colors    PaletteHex
	Defaulted []string
}

func builtin() Active {
	return Active{ID: DefaultID, Name: "Built-in palette", Colors: DefaultPaletteHex()}
}

// Summary describes one installed theme file for listing. Err is set when the
// file does not parse; the other themes are still listed.
type Summary struct {
	ID        string
	Name      string
	Defaulted []string
	Err       error
}

// LoadActive resolves the theme named in cfg. On any failure it returns the
// built-in palette together with the error.
func LoadActive(cfg config.Config) (Active, error) {
	id := strings.TrimSpace(cfg.Theme.Active)
	if id == "" || id == DefaultID {
		return builtin(), nil
	}
	tf, err := readTheme(id)
	if err != nil {
		return builtin(), err
	}
	return Active{ID: tf.ID, Name: tf.Name, Colors: tf.Colors, Defaulted: tf.Defaulted}, nil
}

// ListLocal parses every theme file in the themes directory, sorted by id.
func ListLocal() ([]Summary, error) {
	dir, err := config.ThemesDir()
	if err != nil {
		return nil, err
	}
	ents, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) {
		return []Summary{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := []Summary{}
	for _, ent := range ents {
		if ent.IsDir() || filepath.Ext(ent.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(ent.Name(), ".json")
		tf, err := readTheme(id)
		if err != nil {
			out = append(out, Summary{ID: id, Err: err})
			continue
		}
		out = append(out, Summary{ID: id, Name: tf.Name, Defaulted: tf.Defaulted})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func themePath(id string) (string, error) {
	if id == "" || id == DefaultID || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("invalid theme id %q", id)
	}
	dir, err := config.ThemesDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, id+".json"), nil
}

func readTheme(id string) (ThemeFile, error) {
	p, err := themePath(id)
	if err != nil {
		return ThemeFile{}, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return ThemeFile{}, fmt.Errorf("theme not installed: %s", id)
	}
	if err != nil {
		return ThemeFile{}, err
	}
	tf, err := ParseThemeFile(b)
	if err != nil {
		return ThemeFile{}, fmt.Errorf("theme %s: %w", id, err)
	}
	if tf.ID != id {
		return ThemeFile{}, fmt.Errorf("theme id mismatch: file %s.json declares %q", id, tf.ID)
	}
	return tf, nil
}

// SaveThemeFile writes every color key so the file is complete on its own.
func SaveThemeFile(tf ThemeFile) error {
	p, err := themePath(tf.ID)
	if err != nil {
		return err
	}
	if err := tf.Colors.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	out, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, append(out, '\n'), 0o644)
}

func RemoveLocalTheme(id string) error {
	p, err := themePath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("theme not installed: %s", id)
	} else if err != nil {
		return err
	}
	return nil
}
