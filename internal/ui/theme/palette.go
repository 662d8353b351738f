package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"dreamytimer/internal/core/model"
)

// Palette is the set of colors one theme paints with, as #rrggbb strings.
type Palette struct {
	Name           model.Theme
	Background     string
	Primary        string
	Secondary      string
	Accent1        string
	Accent2        string
	Accent3        string
	GradientTop    string
	GradientBottom string
}

var palettes = map[model.Theme]Palette{
	model.ThemePurple: {
		Name:           model.ThemePurple,
		Background:     "#e6dcf5",
		Primary:        "#6b5b95",
		Secondary:      "#8e7cc3",
		Accent1:        "#c8b6e2",
		Accent2:        "#d4c5f0",
		Accent3:        "#b19cd9",
		GradientTop:    "#efe9ff",
		GradientBottom: "#d6d0f5",
	},
	model.ThemePink: {
		Name:           model.ThemePink,
		Background:     "#fce4ec",
		Primary:        "#c2185b",
		Secondary:      "#e91e63",
		Accent1:        "#f8bbd0",
		Accent2:        "#f48fb1",
		Accent3:        "#f06292",
		GradientTop:    "#fff0f5",
		GradientBottom: "#fce4ec",
	},
	model.ThemeBlue: {
		Name:           model.ThemeBlue,
		Background:     "#e3f2fd",
		Primary:        "#1565c0",
		Secondary:      "#1976d2",
		Accent1:        "#90caf9",
		Accent2:        "#64b5f6",
		Accent3:        "#42a5f5",
		GradientTop:    "#f0f8ff",
		GradientBottom: "#e3f2fd",
	},
	model.ThemeMint: {
		Name:           model.ThemeMint,
		Background:     "#e0f2f1",
		Primary:        "#00695c",
		Secondary:      "#00897b",
		Accent1:        "#80cbc4",
		Accent2:        "#4db6ac",
		Accent3:        "#26a69a",
		GradientTop:    "#f0fff4",
		GradientBottom: "#e0f2f1",
	},
	model.ThemePeach: {
		Name:           model.ThemePeach,
		Background:     "#fff3e0",
		Primary:        "#e65100",
		Secondary:      "#f57c00",
		Accent1:        "#ffcc80",
		Accent2:        "#ffb74d",
		Accent3:        "#ffa726",
		GradientTop:    "#fffaf0",
		GradientBottom: "#fff3e0",
	},
}

// Lookup returns the palette for name, or the purple palette when unknown.
func Lookup(name model.Theme) Palette {
	if palette, ok := palettes[name]; ok {
		return palette
	}
	return palettes[model.DefaultTheme]
}

// NRGBA converts a #rrggbb string. Malformed input yields opaque black.
func NRGBA(hex string) color.NRGBA {
	value, err := parseHex(hex)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return value
}

func parseHex(hex string) (color.NRGBA, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(trimmed) != 6 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want 6 hex digits", hex)
	}
	raw, err := strconv.ParseUint(trimmed, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return color.NRGBA{
		R: uint8(raw >> 16),
		G: uint8(raw >> 8),
		B: uint8(raw),
		A: 0xff,
	}, nil
}
