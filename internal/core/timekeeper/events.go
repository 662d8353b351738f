package timekeeper

import (
	"time"

	"dreamytimer/internal/core/model"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventTick            EventType = "tick"
	EventCompleted       EventType = "completed"
	EventSessionSwitched EventType = "session_switched"
	EventGoalChange      EventType = "goal_change"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type             EventType
	Kind             model.Kind
	RemainingSeconds int
	Running          bool
	Goal             string
	Message          string
	Headline         string
	SessionsToday    int
	At               time.Time
}
