package theme

import (
	"image/color"
	"testing"

	fynetheme "fyne.io/fyne/v2/theme"

	"dreamytimer/internal/core/model"
)

func TestLookupKnownThemes(t *testing.T) {
	for _, name := range model.Themes {
		palette := Lookup(name)
		if palette.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, palette.Name)
		}
		for _, hex := range []string{
			palette.Background, palette.Primary, palette.Secondary,
			palette.Accent1, palette.Accent2, palette.Accent3,
			palette.GradientTop, palette.GradientBottom,
		} {
			if _, err := parseHex(hex); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
	}
}

func TestLookupFallsBackToPurple(t *testing.T) {
	if got := Lookup("neon").Name; got != model.ThemePurple {
		t.Errorf("Lookup(neon) = %q, want purple", got)
	}
}

func TestNRGBA(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{in: "#6b5b95", want: color.NRGBA{R: 0x6b, G: 0x5b, B: 0x95, A: 0xff}},
		{in: "FFCC80", want: color.NRGBA{R: 0xff, G: 0xcc, B: 0x80, A: 0xff}},
		{in: "#fff", want: color.NRGBA{A: 0xff}},
		{in: "#zzzzzz", want: color.NRGBA{A: 0xff}},
	}
	for _, tt := range tests {
		if got := NRGBA(tt.in); got != tt.want {
			t.Errorf("NRGBA(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAppThemeUsesPalette(t *testing.T) {
	palette := Lookup(model.ThemeMint)
	appTheme := NewAppTheme(palette)

	if got := appTheme.Color(fynetheme.ColorNameBackground, fynetheme.VariantDark); got != NRGBA(palette.Background) {
		t.Errorf("background = %v", got)
	}
	if got := appTheme.Color(fynetheme.ColorNameForeground, fynetheme.VariantLight); got != NRGBA(palette.Primary) {
		t.Errorf("foreground = %v", got)
	}
	if appTheme.Color(fynetheme.ColorNameError, fynetheme.VariantLight) == nil {
		t.Error("fallback color is nil")
	}
}
