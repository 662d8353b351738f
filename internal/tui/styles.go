package tui

import (
	"github.com/charmbracelet/lipgloss"

	"dreamytimer/internal/ui/theme"
)

type styles struct {
	frame    lipgloss.Style
	title    lipgloss.Style
	clock    lipgloss.Style
	goal     lipgloss.Style
	message  lipgloss.Style
	headline lipgloss.Style
	muted    lipgloss.Style
	compact  lipgloss.Style
}

func newStyles(palette theme.Palette) styles {
	primary := lipgloss.Color(palette.Primary)
	secondary := lipgloss.Color(palette.Secondary)
	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(palette.Accent3)).
			Padding(1, 4),
		title:    lipgloss.NewStyle().Foreground(primary).Bold(true),
		clock:    lipgloss.NewStyle().Foreground(primary).Bold(true).Padding(1, 0),
		goal:     lipgloss.NewStyle().Foreground(primary),
		message:  lipgloss.NewStyle().Foreground(secondary).Italic(true),
		headline: lipgloss.NewStyle().Foreground(primary).Background(lipgloss.Color(palette.Accent2)).Padding(0, 1),
		muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(palette.Accent3)),
		compact: lipgloss.NewStyle().
			Foreground(primary).
			Background(lipgloss.Color(palette.Background)).
			Padding(0, 1),
	}
}
