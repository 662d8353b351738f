package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"
)

// AppTheme paints fyne widgets with a palette and falls back to the default
// light theme for everything else.
type AppTheme struct {
	palette Palette
	base    fyne.Theme
}

// NewAppTheme returns a fyne theme for palette.
func NewAppTheme(palette Palette) *AppTheme {
	return &AppTheme{palette: palette, base: fynetheme.DefaultTheme()}
}

// Palette returns the palette the theme was built from.
func (appTheme *AppTheme) Palette() Palette {
	return appTheme.palette
}

func (appTheme *AppTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	palette := appTheme.palette
	switch name {
	case fynetheme.ColorNameBackground, fynetheme.ColorNameOverlayBackground, fynetheme.ColorNameMenuBackground:
		return NRGBA(palette.Background)
	case fynetheme.ColorNameForeground:
		return NRGBA(palette.Primary)
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus:
		return NRGBA(palette.Secondary)
	case fynetheme.ColorNameButton:
		return NRGBA(palette.Accent1)
	case fynetheme.ColorNameHover:
		return NRGBA(palette.Accent2)
	case fynetheme.ColorNameInputBackground:
		return NRGBA(palette.GradientTop)
	case fynetheme.ColorNameSelection:
		return NRGBA(palette.Accent3)
	}
	return appTheme.base.Color(name, fynetheme.VariantLight)
}

func (appTheme *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return appTheme.base.Font(style)
}

func (appTheme *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return appTheme.base.Icon(name)
}

func (appTheme *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	return appTheme.base.Size(name)
}
