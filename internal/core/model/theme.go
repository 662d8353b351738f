package model

import "strings"

// Theme names one of the fixed color palettes.
type Theme string

const (
	ThemePurple Theme = "purple"
	ThemePink   Theme = "pink"
	ThemeBlue   Theme = "blue"
	ThemeMint   Theme = "mint"
	ThemePeach  Theme = "peach"

	DefaultTheme = ThemePurple
)

// Themes lists the palettes in display order.
var Themes = []Theme{ThemePurple, ThemePink, ThemeBlue, ThemeMint, ThemePeach}

// ParseTheme maps a stored value to a known theme, falling back to DefaultTheme.
func ParseTheme(value string) Theme {
	candidate := Theme(strings.ToLower(strings.TrimSpace(value)))
	for _, theme := range Themes {
		if theme == candidate {
			return theme
		}
	}
	return DefaultTheme
}

// Title returns the capitalized theme name.
func (theme Theme) Title() string {
	if theme == "" {
		return ""
	}
	return strings.ToUpper(string(theme[:1])) + string(theme[1:])
}
