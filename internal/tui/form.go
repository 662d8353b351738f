package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
)

const (
	recentGoalKey = "recent_goal"
	newGoalKey    = "new_goal"
)

// newGoalForm asks for the session intention. The recent-goal picker is
// only shown when there is something to pick.
func newGoalForm(saved []string) *huh.Form {
	fields := []huh.Field{}
	if len(saved) > 0 {
		options := []huh.Option[string]{huh.NewOption("(type a new one below)", "")}
		for _, goal := range saved {
			options = append(options, huh.NewOption(goal, goal))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Pick a recent goal").
			Key(recentGoalKey).
			Options(options...))
	}
	fields = append(fields, huh.NewInput().
		Title("Type a new goal").
		Description("Leave empty to start without one.").
		Key(newGoalKey).
		CharLimit(120))

	keys := huh.NewDefaultKeyMap()
	keys.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))

	return huh.NewForm(
		huh.NewGroup(fields...).Title("✨ Set Your Intention ✨"),
	).WithKeyMap(keys).WithShowHelp(true)
}

// goalFromForm prefers typed text over the picked goal.
func goalFromForm(form *huh.Form) string {
	if typed := strings.TrimSpace(form.GetString(newGoalKey)); typed != "" {
		return typed
	}
	return strings.TrimSpace(form.GetString(recentGoalKey))
}
