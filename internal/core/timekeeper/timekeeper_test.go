package timekeeper

import (
	"io"
	"log"
	"math/rand"
	"sync"
	"testing"
	"time"

	"dreamytimer/internal/core/model"
)

type recordingPublisher struct {
	mu        sync.Mutex
	snapshots []model.Snapshot
}

func (publisher *recordingPublisher) Publish(snapshot model.Snapshot) {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	publisher.snapshots = append(publisher.snapshots, snapshot)
}

func (publisher *recordingPublisher) last() model.Snapshot {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	return publisher.snapshots[len(publisher.snapshots)-1]
}

type stubGoals struct {
	active  string
	cleared int
}

func (goals *stubGoals) SetGoal(text string) string {
	goals.active = text
	return text
}

func (goals *stubGoals) ClearGoal() {
	goals.active = ""
	goals.cleared++
}

func (goals *stubGoals) ActiveGoal() string {
	return goals.active
}

type countingRecorder struct {
	total int
	at    []time.Time
}

func (recorder *countingRecorder) RecordWorkSession(now time.Time) int {
	recorder.total++
	recorder.at = append(recorder.at, now)
	return recorder.total
}

type channelNotifier struct {
	calls chan model.Kind
}

func (notifier channelNotifier) Notify(kind model.Kind) {
	notifier.calls <- kind
}

type panickingNotifier struct{}

func (panickingNotifier) Notify(model.Kind) {
	panic("speaker exploded")
}

type harness struct {
	keeper    *TimeKeeper
	clock     *fakeClock
	publisher *recordingPublisher
	goals     *stubGoals
	recorder  *countingRecorder
	events    <-chan Event
}

func newHarness(t *testing.T, workSeconds, breakSeconds int) *harness {
	t.Helper()
	clock := newFakeClock()
	keeper := New(Durations{WorkSeconds: workSeconds, BreakSeconds: breakSeconds}, Config{
		Clock:  clock,
		Rand:   rand.New(rand.NewSource(1)),
		Logger: log.New(io.Discard, "", 0),
	})
	h := &harness{
		keeper:    keeper,
		clock:     clock,
		publisher: &recordingPublisher{},
		goals:     &stubGoals{},
		recorder:  &countingRecorder{},
	}
	keeper.SetPublisher(h.publisher)
	keeper.SetGoalTracker(h.goals)
	keeper.SetSessionRecorder(h.recorder)
	keeper.SetSoundEnabled(false)
	h.events = keeper.Subscribe(8192)
	t.Cleanup(keeper.Stop)
	return h
}

// tickN delivers n ticks through the same path the ticker goroutine uses.
func (h *harness) tickN(n int) {
	for i := 0; i < n; i++ {
		h.keeper.mu.Lock()
		generation := h.keeper.generation
		h.keeper.mu.Unlock()
		h.keeper.tick(generation)
	}
}

func (h *harness) drain() []Event {
	var events []Event
	for {
		select {
		case event := <-h.events:
			events = append(events, event)
		default:
			return events
		}
	}
}

func countType(events []Event, eventType EventType) int {
	count := 0
	for _, event := range events {
		if event.Type == eventType {
			count++
		}
	}
	return count
}

func TestInitialState(t *testing.T) {
	h := newHarness(t, 1500, 300)
	snapshot := h.keeper.Snapshot()
	if snapshot.Kind != model.KindWork || snapshot.Running || snapshot.RemainingSeconds != 1500 {
		t.Errorf("initial snapshot = %+v", snapshot)
	}
}

func TestCountdownCompletesOnce(t *testing.T) {
	for _, seconds := range []int{1, 2, 7, 60} {
		h := newHarness(t, seconds, 30)
		h.keeper.Start()
		h.tickN(seconds)

		if got := h.keeper.Snapshot().RemainingSeconds; got != 0 {
			t.Errorf("N=%d: remaining = %d, want 0", seconds, got)
		}
		h.tickN(3)
		events := h.drain()
		if got := countType(events, EventCompleted); got != 1 {
			t.Errorf("N=%d: %d completion events, want 1", seconds, got)
		}
		for _, snapshot := range h.publisher.snapshots {
			if snapshot.RemainingSeconds < 0 {
				t.Fatalf("N=%d: negative remaining in %+v", seconds, snapshot)
			}
		}
	}
}

func TestStartAndPauseAreIdempotent(t *testing.T) {
	h := newHarness(t, 100, 50)

	h.keeper.Start()
	h.keeper.Start()
	h.tickN(1)
	if got := h.keeper.Snapshot().RemainingSeconds; got != 99 {
		t.Fatalf("remaining after double start and one tick = %d, want 99", got)
	}
	if got := len(h.clock.tickers); got != 1 {
		t.Errorf("double start armed %d tickers, want 1", got)
	}

	h.keeper.Pause()
	published := len(h.publisher.snapshots)
	h.keeper.Pause()
	if len(h.publisher.snapshots) != published {
		t.Error("second Pause published a snapshot")
	}
	h.tickN(5)
	if got := h.keeper.Snapshot().RemainingSeconds; got != 99 {
		t.Errorf("ticks while paused changed remaining to %d", got)
	}
	if !h.clock.tickers[0].stopped {
		t.Error("Pause did not stop the ticker")
	}
}

func TestStaleTickerIsIgnored(t *testing.T) {
	h := newHarness(t, 100, 50)
	h.keeper.Start()

	h.keeper.mu.Lock()
	stale := h.keeper.generation
	h.keeper.mu.Unlock()

	h.keeper.Pause()
	h.keeper.Start()
	h.keeper.tick(stale)

	if got := h.keeper.Snapshot().RemainingSeconds; got != 100 {
		t.Errorf("stale tick changed remaining to %d", got)
	}
}

func TestResetRestoresCurrentKind(t *testing.T) {
	h := newHarness(t, 100, 50)
	h.keeper.SetGoal("inbox")
	h.keeper.Start()
	h.tickN(30)

	h.keeper.Reset()

	snapshot := h.keeper.Snapshot()
	if snapshot.Running || snapshot.RemainingSeconds != 100 || snapshot.Kind != model.KindWork {
		t.Errorf("after reset = %+v", snapshot)
	}
	if snapshot.Goal != "" || h.goals.cleared == 0 {
		t.Error("reset should clear the goal")
	}
}

func TestSetDurationsThenReset(t *testing.T) {
	for _, pair := range [][2]int{{1, 1}, {25, 5}, {120, 120}, {45, 15}} {
		work, brk := pair[0], pair[1]

		h := newHarness(t, 1500, 300)
		h.keeper.SetDurations(work*60, brk*60)
		h.keeper.Reset()
		if got := h.keeper.Snapshot().RemainingSeconds; got != work*60 {
			t.Errorf("work %d: remaining = %d, want %d", work, got, work*60)
		}

		h.keeper.Start()
		h.tickN(work * 60)
		h.clock.fireTimers()
		h.keeper.Reset()
		snapshot := h.keeper.Snapshot()
		if snapshot.Kind != model.KindBreak || snapshot.RemainingSeconds != brk*60 {
			t.Errorf("break %d: after reset = %+v", brk, snapshot)
		}
	}
}

func TestSetDurationsRestartsActiveSession(t *testing.T) {
	h := newHarness(t, 1500, 300)
	h.keeper.Start()
	h.tickN(700)
	if got := h.keeper.Snapshot().RemainingSeconds; got != 800 {
		t.Fatalf("remaining = %d, want 800", got)
	}

	h.keeper.SetDurations(600, 120)

	snapshot := h.keeper.Snapshot()
	if snapshot.RemainingSeconds != 600 {
		t.Errorf("remaining = %d, want 600", snapshot.RemainingSeconds)
	}
	if !snapshot.Running {
		t.Error("changing durations should not pause the session")
	}
}

func TestSetDurationsOtherKindKeepsProgress(t *testing.T) {
	h := newHarness(t, 1500, 300)
	h.keeper.Start()
	h.tickN(100)

	h.keeper.SetDurations(1500, 600)

	if got := h.keeper.Snapshot().RemainingSeconds; got != 1400 {
		t.Errorf("remaining = %d, want 1400", got)
	}
}

func TestFullWorkSessionScenario(t *testing.T) {
	h := newHarness(t, model.DefaultWorkDurationSeconds, model.DefaultBreakDurationSeconds)
	h.keeper.SetGoal("chapter 3")
	h.keeper.Start()
	h.tickN(1500)

	events := h.drain()
	var completed *Event
	for i := range events {
		if events[i].Type == EventCompleted {
			completed = &events[i]
		}
	}
	if completed == nil {
		t.Fatal("no completion event")
	}
	if completed.Kind != model.KindWork {
		t.Errorf("completed kind = %q", completed.Kind)
	}
	if completed.SessionsToday != 1 || h.recorder.total != 1 {
		t.Errorf("sessions today = %d (recorder %d), want 1", completed.SessionsToday, h.recorder.total)
	}
	if completed.Message == "" || completed.Headline == "" {
		t.Errorf("completion event lacks text: %+v", completed)
	}

	paused := h.keeper.Snapshot()
	if paused.Running || paused.RemainingSeconds != 0 || paused.Kind != model.KindWork {
		t.Errorf("before switch = %+v", paused)
	}

	pending := h.clock.pendingTimers()
	if len(pending) != 1 || pending[0].delay != 2*time.Second {
		t.Fatalf("pending switch timers = %+v", pending)
	}
	h.clock.fireTimers()

	after := h.keeper.Snapshot()
	if after.Kind != model.KindBreak || after.RemainingSeconds != 300 || after.Running {
		t.Errorf("after switch = %+v", after)
	}
	if after.Goal != "" {
		t.Errorf("goal survived the switch: %q", after.Goal)
	}
	if got := countType(h.drain(), EventSessionSwitched); got != 1 {
		t.Errorf("%d switch events, want 1", got)
	}
}

func TestBreakCompletionDoesNotCount(t *testing.T) {
	h := newHarness(t, 3, 2)
	h.keeper.Start()
	h.tickN(3)
	h.clock.fireTimers()
	h.keeper.Start()
	h.tickN(2)
	h.clock.fireTimers()

	if h.recorder.total != 1 {
		t.Errorf("recorded %d sessions, want 1", h.recorder.total)
	}
	if snapshot := h.keeper.Snapshot(); snapshot.Kind != model.KindWork || snapshot.RemainingSeconds != 3 {
		t.Errorf("after break = %+v", snapshot)
	}
}

func TestStartIsIgnoredWhileSwitchPending(t *testing.T) {
	h := newHarness(t, 2, 2)
	h.keeper.Start()
	h.tickN(2)

	h.keeper.Start()
	if h.keeper.Snapshot().Running {
		t.Error("Start succeeded with zero time left")
	}
}

func TestResetCancelsPendingSwitch(t *testing.T) {
	h := newHarness(t, 2, 5)
	h.keeper.Start()
	h.tickN(2)

	h.keeper.Reset()
	if fired := h.clock.fireTimers(); fired != 0 {
		t.Errorf("%d timers fired after reset, want 0", fired)
	}
	snapshot := h.keeper.Snapshot()
	if snapshot.Kind != model.KindWork || snapshot.RemainingSeconds != 2 {
		t.Errorf("after reset = %+v", snapshot)
	}
}

func TestNotifierRunsWhenSoundEnabled(t *testing.T) {
	h := newHarness(t, 1, 1)
	notifier := channelNotifier{calls: make(chan model.Kind, 1)}
	h.keeper.SetNotifier(notifier)
	h.keeper.SetSoundEnabled(true)

	h.keeper.Start()
	h.tickN(1)

	select {
	case kind := <-notifier.calls:
		if kind != model.KindWork {
			t.Errorf("notified kind = %q", kind)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was not called")
	}
}

func TestNotifierSkippedWhenSoundDisabled(t *testing.T) {
	h := newHarness(t, 1, 1)
	notifier := channelNotifier{calls: make(chan model.Kind, 1)}
	h.keeper.SetNotifier(notifier)

	h.keeper.Start()
	h.tickN(1)

	select {
	case <-notifier.calls:
		t.Fatal("notifier called with sound disabled")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNotifierPanicDoesNotStopClock(t *testing.T) {
	h := newHarness(t, 1, 4)
	h.keeper.SetNotifier(panickingNotifier{})
	h.keeper.SetSoundEnabled(true)

	h.keeper.Start()
	h.tickN(1)
	h.clock.fireTimers()
	h.keeper.Start()
	h.tickN(1)

	if got := h.keeper.Snapshot().RemainingSeconds; got != 3 {
		t.Errorf("remaining = %d, want 3", got)
	}
}

func TestSnapshotsAreSequenced(t *testing.T) {
	h := newHarness(t, 10, 5)
	h.keeper.Refresh()
	h.keeper.SetGoal("plan")
	h.keeper.Start()
	h.tickN(3)
	h.keeper.Pause()

	var previous uint64
	for _, snapshot := range h.publisher.snapshots {
		if snapshot.Seq <= previous {
			t.Fatalf("sequence went from %d to %d", previous, snapshot.Seq)
		}
		previous = snapshot.Seq
	}
	last := h.publisher.last()
	if last.Goal != "plan" || last.RemainingSeconds != 7 || last.Running {
		t.Errorf("last snapshot = %+v", last)
	}
}

func TestStopClosesSubscribers(t *testing.T) {
	h := newHarness(t, 10, 5)
	extra := h.keeper.Subscribe(1)
	h.keeper.Stop()

	if _, ok := <-extra; ok {
		t.Error("subscriber channel still open after Stop")
	}
	h.keeper.Start()
	if h.keeper.Snapshot().Running {
		t.Error("Start after Stop should do nothing")
	}
}

func TestGreetingMatchesKind(t *testing.T) {
	h := newHarness(t, 10, 5)
	greeting := h.keeper.Greeting()
	found := false
	for _, message := range greetingMessages[model.KindWork] {
		if message == greeting {
			found = true
		}
	}
	if !found {
		t.Errorf("greeting %q is not a work greeting", greeting)
	}
}

// waitFor reads events until one of eventType arrives.
func (h *harness) waitFor(t *testing.T, eventType EventType) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-h.events:
			if event.Type == eventType {
				return event
			}
		case <-deadline:
			t.Fatalf("no %s event", eventType)
		}
	}
}

func TestTickerGoroutineDrivesCountdown(t *testing.T) {
	h := newHarness(t, 3, 60)
	h.keeper.Start()
	ticker := h.clock.latestTicker()
	if ticker == nil {
		t.Fatal("Start did not arm a ticker")
	}

	for i := 0; i < 2; i++ {
		ticker.ch <- time.Time{}
		event := h.waitFor(t, EventTick)
		if want := 2 - i; event.RemainingSeconds != want {
			t.Fatalf("tick %d remaining = %d, want %d", i+1, event.RemainingSeconds, want)
		}
	}

	ticker.ch <- time.Time{}
	completed := h.waitFor(t, EventCompleted)
	if completed.Kind != model.KindWork || completed.SessionsToday != 1 {
		t.Errorf("completion = %+v", completed)
	}
	if !ticker.stopped {
		t.Error("ticker not stopped after completion")
	}
	snapshot := h.keeper.Snapshot()
	if snapshot.Running || snapshot.RemainingSeconds != 0 {
		t.Errorf("snapshot after completion = %+v", snapshot)
	}
}

func TestTickAfterPauseIsIgnored(t *testing.T) {
	h := newHarness(t, 10, 60)
	h.keeper.Start()
	first := h.clock.latestTicker()

	first.ch <- time.Time{}
	h.waitFor(t, EventTick)
	h.keeper.Pause()
	if !first.stopped {
		t.Fatal("Pause did not stop the ticker")
	}
	h.drain()

	// The goroutine may already be gone; if it still takes the value the
	// tick belongs to a disarmed generation.
	select {
	case first.ch <- time.Time{}:
	case <-time.After(50 * time.Millisecond):
	}
	if remaining := h.keeper.Snapshot().RemainingSeconds; remaining != 9 {
		t.Errorf("remaining after paused tick = %d, want 9", remaining)
	}
	if ticks := countType(h.drain(), EventTick); ticks != 0 {
		t.Errorf("%d tick events after Pause", ticks)
	}

	h.keeper.Start()
	if h.clock.tickerCount() != 2 {
		t.Fatalf("Start armed %d tickers, want 2", h.clock.tickerCount())
	}
	h.clock.latestTicker().ch <- time.Time{}
	if event := h.waitFor(t, EventTick); event.RemainingSeconds != 8 {
		t.Errorf("resumed tick remaining = %d, want 8", event.RemainingSeconds)
	}
}
