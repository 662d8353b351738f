package model

import "time"

const (
	// DefaultWorkDurationSeconds is the work interval used when none is configured.
	DefaultWorkDurationSeconds = 25 * 60
	// DefaultBreakDurationSeconds is the break interval used when none is configured.
	DefaultBreakDurationSeconds = 5 * 60

	// MaxSavedGoals bounds the recency list of past goals.
	MaxSavedGoals = 10

	// DateLayout is the calendar-date format of LastSessionDate.
	DateLayout = "2006-01-02"
)

// Position is a screen coordinate.
type Position struct {
	X int
	Y int
}

// Configuration is the persisted user state.
type Configuration struct {
	WorkDurationSeconds  int
	BreakDurationSeconds int
	SavedGoals           []string
	Theme                Theme
	SoundEnabled         bool
	TotalSessionsToday   int
	LastSessionDate      string
	MiniWindowPosition   *Position
}

// DefaultConfiguration returns the configuration used on first run.
func DefaultConfiguration() Configuration {
	return Configuration{
		WorkDurationSeconds:  DefaultWorkDurationSeconds,
		BreakDurationSeconds: DefaultBreakDurationSeconds,
		SavedGoals:           []string{},
		Theme:                DefaultTheme,
		SoundEnabled:         true,
	}
}

// Clone returns a deep copy so callers never share slices or pointers with the owner.
func (config Configuration) Clone() Configuration {
	clone := config
	clone.SavedGoals = append([]string{}, config.SavedGoals...)
	if config.MiniWindowPosition != nil {
		position := *config.MiniWindowPosition
		clone.MiniWindowPosition = &position
	}
	return clone
}

// DurationSeconds returns the configured length of the given kind.
func (config Configuration) DurationSeconds(kind Kind) int {
	if kind == KindBreak {
		return config.BreakDurationSeconds
	}
	return config.WorkDurationSeconds
}

// RollOver resets the daily counter when the stored date is not today.
// It reports whether anything changed.
func (config *Configuration) RollOver(now time.Time) bool {
	today := now.Format(DateLayout)
	if config.LastSessionDate == today {
		return false
	}
	config.TotalSessionsToday = 0
	config.LastSessionDate = today
	return true
}
