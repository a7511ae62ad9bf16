package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/goccy/go-json"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/viper"

	"github.com/setanarut/overlaysplit"
)

var (
	ErrInvalidPalette = errors.New("invalid palette document")
	ErrInvalidConfig  = errors.New("invalid configuration document")
)

var canonicalKey = regexp.MustCompile(`^#[0-9a-f]{6}$`)

type paletteDoc struct {
	Color     *string `json:"color"`
	Name      *string `json:"name"`
	IsPremium *bool   `json:"isPremium"`
}

// LoadPalette reads a JSON array of {"color","name","isPremium"} objects.
// Every field must be present; values are taken as is.
func LoadPalette(path string) (overlaysplit.Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []paletteDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidPalette, path, err)
	}
	palette := make(overlaysplit.Palette, 0, len(docs))
	for i, d := range docs {
		if d.Color == nil || d.Name == nil || d.IsPremium == nil {
			return nil, fmt.Errorf("%w %s: entry %d needs color, name and isPremium", ErrInvalidPalette, path, i)
		}
		palette = append(palette, overlaysplit.PaletteEntry{
			Color:     *d.Color,
			Name:      *d.Name,
			IsPremium: *d.IsPremium,
		})
	}
	return palette, nil
}

// LoadConfig reads the classification document. The format follows the file
// extension (json, yaml, toml...); files without one are read as JSON.
func LoadConfig(path string) (overlaysplit.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return overlaysplit.Config{}, err
	}
	if !v.IsSet("arbitrary") {
		return overlaysplit.Config{}, fmt.Errorf("%w %s: missing \"arbitrary\"", ErrInvalidConfig, path)
	}
	var c overlaysplit.Config
	if err := v.Unmarshal(&c); err != nil {
		return overlaysplit.Config{}, fmt.Errorf("%w %s: %v", ErrInvalidConfig, path, err)
	}
	return c, nil
}

// CheckDocuments lists entries that can never match a pixel. None of them
// stop a run.
func CheckDocuments(palette overlaysplit.Palette, config overlaysplit.Config) []string {
	var warnings []string
	for _, e := range palette {
		if canonicalKey.MatchString(e.Color) {
			continue
		}
		if c, err := colorful.Hex(e.Color); err == nil {
			warnings = append(warnings, fmt.Sprintf("palette color %q (%s) is not in #rrggbb lowercase form, did you mean %q", e.Color, e.Name, c.Hex()))
		} else {
			warnings = append(warnings, fmt.Sprintf("palette color %q (%s) is not a #rrggbb color", e.Color, e.Name))
		}
	}
	for _, name := range config.Arbitrary {
		if !slices.ContainsFunc(palette, func(e overlaysplit.PaletteEntry) bool { return e.Name == name }) {
			warnings = append(warnings, fmt.Sprintf("arbitrary category %q has no palette color, its overlay stays empty", name))
		}
	}
	return warnings
}
