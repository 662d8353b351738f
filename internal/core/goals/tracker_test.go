package goals

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"dreamytimer/internal/core/model"
)

type memorySettings struct {
	config  model.Configuration
	updates int
}

func (settings *memorySettings) Config() model.Configuration {
	return settings.config.Clone()
}

func (settings *memorySettings) Update(mutate func(*model.Configuration)) {
	mutate(&settings.config)
	settings.updates++
}

func newTracker() (*Tracker, *memorySettings) {
	settings := &memorySettings{config: model.DefaultConfiguration()}
	return New(settings), settings
}

func TestSetGoalTrimsAndSaves(t *testing.T) {
	tracker, settings := newTracker()

	if got := tracker.SetGoal("  write the intro  "); got != "write the intro" {
		t.Fatalf("SetGoal returned %q", got)
	}
	if tracker.ActiveGoal() != "write the intro" {
		t.Errorf("ActiveGoal = %q", tracker.ActiveGoal())
	}
	if !reflect.DeepEqual(settings.config.SavedGoals, []string{"write the intro"}) {
		t.Errorf("SavedGoals = %v", settings.config.SavedGoals)
	}
}

func TestSetGoalBlankClears(t *testing.T) {
	tracker, settings := newTracker()
	tracker.SetGoal("read")

	if got := tracker.SetGoal("   "); got != "" {
		t.Errorf("SetGoal(blank) = %q", got)
	}
	if tracker.ActiveGoal() != "" {
		t.Errorf("ActiveGoal = %q, want empty", tracker.ActiveGoal())
	}
	if len(settings.config.SavedGoals) != 1 {
		t.Errorf("blank goal changed history: %v", settings.config.SavedGoals)
	}
}

func TestSetGoalKeepsTenMostRecent(t *testing.T) {
	tracker, _ := newTracker()
	for i := 1; i <= 11; i++ {
		tracker.SetGoal(fmt.Sprintf("goal %d", i))
	}

	want := []string{
		"goal 11", "goal 10", "goal 9", "goal 8", "goal 7",
		"goal 6", "goal 5", "goal 4", "goal 3", "goal 2",
	}
	if got := tracker.SavedGoals(); !reflect.DeepEqual(got, want) {
		t.Errorf("SavedGoals = %v, want %v", got, want)
	}
}

func TestSetGoalExistingKeepsPosition(t *testing.T) {
	tracker, settings := newTracker()
	tracker.SetGoal("a")
	tracker.SetGoal("b")
	updates := settings.updates

	tracker.SetGoal("a")

	if got := tracker.SavedGoals(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Errorf("SavedGoals = %v, want [b a]", got)
	}
	if settings.updates != updates {
		t.Error("re-saving an existing goal should not write settings")
	}
	if tracker.ActiveGoal() != "a" {
		t.Errorf("ActiveGoal = %q", tracker.ActiveGoal())
	}
}

func TestClearGoal(t *testing.T) {
	tracker, _ := newTracker()
	tracker.SetGoal("focus")
	tracker.ClearGoal()

	if tracker.ActiveGoal() != "" {
		t.Errorf("ActiveGoal = %q after ClearGoal", tracker.ActiveGoal())
	}
	if len(tracker.SavedGoals()) != 1 {
		t.Error("ClearGoal should not touch history")
	}
}

func TestDeleteSavedGoal(t *testing.T) {
	tracker, _ := newTracker()
	tracker.SetGoal("a")
	tracker.SetGoal("b")
	tracker.SetGoal("c")

	if err := tracker.DeleteSavedGoal("b"); err != nil {
		t.Fatalf("DeleteSavedGoal: %v", err)
	}
	if got := tracker.SavedGoals(); !reflect.DeepEqual(got, []string{"c", "a"}) {
		t.Errorf("SavedGoals = %v, want [c a]", got)
	}

	if err := tracker.DeleteSavedGoal("missing"); !errors.Is(err, ErrGoalNotFound) {
		t.Errorf("DeleteSavedGoal(missing) = %v, want ErrGoalNotFound", err)
	}
}
