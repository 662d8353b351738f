package goals

import (
	"errors"
	"strings"
	"sync"

	"dreamytimer/internal/core/model"
)

// ErrGoalNotFound is returned when deleting a goal that is not saved.
var ErrGoalNotFound = errors.New("goal not found")

// Settings is the part of the settings store the tracker needs.
type Settings interface {
	Config() model.Configuration
	Update(func(*model.Configuration))
}

// Tracker holds the goal of the current session and maintains the saved
// goal history in the settings store.
type Tracker struct {
	mu       sync.Mutex
	settings Settings
	active   string
}

// New creates a Tracker backed by settings.
func New(settings Settings) *Tracker {
	return &Tracker{settings: settings}
}

// SetGoal makes text the active goal and returns the stored value.
// Blank text clears the goal. A goal that is not yet saved is put at the
// front of the history, which keeps at most model.MaxSavedGoals entries.
// Saving a goal that is already in the history leaves its position unchanged.
func (tracker *Tracker) SetGoal(text string) string {
	goal := strings.TrimSpace(text)

	tracker.mu.Lock()
	tracker.active = goal
	tracker.mu.Unlock()

	if goal == "" {
		return ""
	}

	if containsGoal(tracker.settings.Config().SavedGoals, goal) {
		return goal
	}
	tracker.settings.Update(func(config *model.Configuration) {
		if containsGoal(config.SavedGoals, goal) {
			return
		}
		saved := append([]string{goal}, config.SavedGoals...)
		if len(saved) > model.MaxSavedGoals {
			saved = saved[:model.MaxSavedGoals]
		}
		config.SavedGoals = saved
	})
	return goal
}

// ClearGoal drops the active goal. The history is not touched.
func (tracker *Tracker) ClearGoal() {
	tracker.mu.Lock()
	tracker.active = ""
	tracker.mu.Unlock()
}

// ActiveGoal returns the goal of the current session, or "".
func (tracker *Tracker) ActiveGoal() string {
	tracker.mu.Lock()
	defer tracker.mu.Unlock()
	return tracker.active
}

// SavedGoals returns the history, most recent first.
func (tracker *Tracker) SavedGoals() []string {
	return tracker.settings.Config().SavedGoals
}

// DeleteSavedGoal removes the first exact match from the history.
func (tracker *Tracker) DeleteSavedGoal(text string) error {
	if !containsGoal(tracker.settings.Config().SavedGoals, text) {
		return ErrGoalNotFound
	}
	found := false
	tracker.settings.Update(func(config *model.Configuration) {
		for index, goal := range config.SavedGoals {
			if goal == text {
				config.SavedGoals = append(config.SavedGoals[:index:index], config.SavedGoals[index+1:]...)
				found = true
				return
			}
		}
	})
	if !found {
		return ErrGoalNotFound
	}
	return nil
}

func containsGoal(goals []string, goal string) bool {
	for _, saved := range goals {
		if saved == goal {
			return true
		}
	}
	return false
}
