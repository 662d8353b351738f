package timekeeper

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"dreamytimer/internal/core/model"
)

// GoalTracker holds the goal attached to the running session.
type GoalTracker interface {
	SetGoal(text string) string
	ClearGoal()
	ActiveGoal() string
}

// Publisher receives a snapshot after every visible change.
type Publisher interface {
	Publish(snapshot model.Snapshot)
}

// Notifier plays the completion cue. It is called on its own goroutine.
type Notifier interface {
	Notify(kind model.Kind)
}

// SessionRecorder counts finished work sessions and returns the day's total.
type SessionRecorder interface {
	RecordWorkSession(now time.Time) int
}

// Durations holds the configured session lengths in seconds.
type Durations struct {
	WorkSeconds  int
	BreakSeconds int
}

func (durations Durations) of(kind model.Kind) int {
	if kind == model.KindBreak {
		return durations.BreakSeconds
	}
	return durations.WorkSeconds
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	SwitchDelay  time.Duration
	Clock        Clock
	Rand         *rand.Rand
	Logger       *log.Logger
}

// TimeKeeper is the work/break countdown state machine.
type TimeKeeper struct {
	mu           sync.Mutex
	options      Config
	durations    Durations
	kind         model.Kind
	remaining    int
	running      bool
	soundEnabled bool
	stopped      bool

	ticker     Ticker
	stopTick   chan struct{}
	generation uint64

	switching   bool
	switchToken uint64
	switchTimer Timer

	seq       uint64
	goals     GoalTracker
	publisher Publisher
	notifier  Notifier
	recorder  SessionRecorder
	events    []chan Event
}

// New creates a paused TimeKeeper at the start of a work session.
func New(durations Durations, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.SwitchDelay <= 0 {
		options.SwitchDelay = 2 * time.Second
	}
	if options.Clock == nil {
		options.Clock = SystemClock{}
	}
	if options.Rand == nil {
		options.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}
	if durations.WorkSeconds <= 0 {
		durations.WorkSeconds = model.DefaultWorkDurationSeconds
	}
	if durations.BreakSeconds <= 0 {
		durations.BreakSeconds = model.DefaultBreakDurationSeconds
	}

	return &TimeKeeper{
		options:      options,
		durations:    durations,
		kind:         model.KindWork,
		remaining:    durations.WorkSeconds,
		soundEnabled: true,
	}
}

// SetGoalTracker injects the goal tracker.
func (keeper *TimeKeeper) SetGoalTracker(goals GoalTracker) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.goals = goals
}

// SetPublisher injects the snapshot receiver.
func (keeper *TimeKeeper) SetPublisher(publisher Publisher) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.publisher = publisher
}

// SetNotifier injects the completion cue.
func (keeper *TimeKeeper) SetNotifier(notifier Notifier) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.notifier = notifier
}

// SetSessionRecorder injects the daily counter.
func (keeper *TimeKeeper) SetSessionRecorder(recorder SessionRecorder) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.recorder = recorder
}

// SetSoundEnabled toggles the completion cue.
func (keeper *TimeKeeper) SetSoundEnabled(enabled bool) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.soundEnabled = enabled
}

// Subscribe registers a new observer channel. Events are dropped when the
// channel is full.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.stopped {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Snapshot returns the current state without publishing it.
func (keeper *TimeKeeper) Snapshot() model.Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.currentLocked()
}

// Refresh publishes the current state.
func (keeper *TimeKeeper) Refresh() {
	keeper.mu.Lock()
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()
	publishTo(publisher, snapshot)
}

// Greeting returns a random message for the start of the current session.
func (keeper *TimeKeeper) Greeting() string {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return pickMessage(keeper.options.Rand, greetingMessages[keeper.kind])
}

// Start resumes the countdown. It does nothing while running, while a
// finished session waits to switch, or when no time is left.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.stopped || keeper.running || keeper.switching || keeper.remaining <= 0 {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.armLocked()
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()

	publishTo(publisher, snapshot)
}

// Pause freezes the countdown.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = false
	keeper.disarmLocked()
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()

	publishTo(publisher, snapshot)
}

// Reset pauses and restores the full length of the current kind. The goal
// is cleared and a pending switch to the next kind is cancelled.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.running = false
	keeper.disarmLocked()
	keeper.cancelSwitchLocked()
	keeper.remaining = keeper.durations.of(keeper.kind)
	keeper.clearGoalLocked()
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()

	publishTo(publisher, snapshot)
}

// SetDurations changes the session lengths. When the length of the current
// kind changes, the current session restarts at the new length.
func (keeper *TimeKeeper) SetDurations(workSeconds, breakSeconds int) {
	keeper.mu.Lock()
	previous := keeper.durations.of(keeper.kind)
	if workSeconds > 0 {
		keeper.durations.WorkSeconds = workSeconds
	}
	if breakSeconds > 0 {
		keeper.durations.BreakSeconds = breakSeconds
	}
	current := keeper.durations.of(keeper.kind)
	if current == previous {
		keeper.mu.Unlock()
		return
	}
	keeper.remaining = current
	keeper.emitLocked(keeper.eventLocked(EventStateChange))
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()

	publishTo(publisher, snapshot)
}

// Durations returns the configured session lengths.
func (keeper *TimeKeeper) Durations() Durations {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.durations
}

// SetGoal attaches text to the current session and returns the stored goal.
func (keeper *TimeKeeper) SetGoal(text string) string {
	keeper.mu.Lock()
	goals := keeper.goals
	keeper.mu.Unlock()
	if goals == nil {
		return ""
	}
	goal := goals.SetGoal(text)

	keeper.mu.Lock()
	keeper.emitLocked(keeper.eventLocked(EventGoalChange))
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()

	publishTo(publisher, snapshot)
	return goal
}

// Stop disarms all timers and closes observer channels.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.stopped = true
	keeper.running = false
	keeper.disarmLocked()
	keeper.cancelSwitchLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) run(ticker Ticker, stop <-chan struct{}, generation uint64) {
	for {
		select {
		case <-stop:
			return
		case <-ticker.C():
			keeper.tick(generation)
		}
	}
}

func (keeper *TimeKeeper) tick(generation uint64) {
	keeper.mu.Lock()
	if !keeper.running || generation != keeper.generation {
		keeper.mu.Unlock()
		return
	}

	keeper.remaining--
	if keeper.remaining > 0 {
		keeper.emitLocked(keeper.eventLocked(EventTick))
		snapshot, publisher := keeper.nextSnapshotLocked()
		keeper.mu.Unlock()
		publishTo(publisher, snapshot)
		return
	}

	keeper.remaining = 0
	keeper.complete()
}

// complete runs the end-of-session sequence. It is entered with the mutex
// held and returns with it released.
func (keeper *TimeKeeper) complete() {
	kind := keeper.kind
	now := keeper.options.Clock.Now()

	keeper.running = false
	keeper.disarmLocked()
	keeper.switching = true
	keeper.switchToken++
	token := keeper.switchToken

	notifier := keeper.notifier
	recorder := keeper.recorder
	soundEnabled := keeper.soundEnabled
	message := pickMessage(keeper.options.Rand, completionMessages[kind])
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()

	publishTo(publisher, snapshot)

	if soundEnabled && notifier != nil {
		go keeper.notify(notifier, kind)
	}

	sessionsToday := 0
	if kind == model.KindWork && recorder != nil {
		sessionsToday = recorder.RecordWorkSession(now)
	}

	keeper.mu.Lock()
	event := keeper.eventLocked(EventCompleted)
	event.Kind = kind
	event.Message = message
	event.Headline = CompletionHeadline(kind)
	event.SessionsToday = sessionsToday
	event.At = now
	keeper.emitLocked(event)
	if keeper.switching && keeper.switchToken == token {
		keeper.switchTimer = keeper.options.Clock.AfterFunc(keeper.options.SwitchDelay, func() {
			keeper.switchSession(token)
		})
	}
	keeper.mu.Unlock()
}

func (keeper *TimeKeeper) switchSession(token uint64) {
	keeper.mu.Lock()
	if !keeper.switching || keeper.switchToken != token {
		keeper.mu.Unlock()
		return
	}
	keeper.switching = false
	keeper.switchTimer = nil
	keeper.kind = keeper.kind.Opposite()
	keeper.remaining = keeper.durations.of(keeper.kind)
	keeper.clearGoalLocked()

	event := keeper.eventLocked(EventSessionSwitched)
	event.Message = pickMessage(keeper.options.Rand, greetingMessages[keeper.kind])
	keeper.emitLocked(event)
	snapshot, publisher := keeper.nextSnapshotLocked()
	keeper.mu.Unlock()

	publishTo(publisher, snapshot)
}

func (keeper *TimeKeeper) notify(notifier Notifier, kind model.Kind) {
	defer func() {
		if recovered := recover(); recovered != nil {
			keeper.options.Logger.Printf("notification panicked: %v", recovered)
		}
	}()
	notifier.Notify(kind)
}

func (keeper *TimeKeeper) armLocked() {
	keeper.disarmLocked()
	ticker := keeper.options.Clock.NewTicker(keeper.options.TickInterval)
	stop := make(chan struct{})
	keeper.ticker = ticker
	keeper.stopTick = stop
	go keeper.run(ticker, stop, keeper.generation)
}

func (keeper *TimeKeeper) disarmLocked() {
	keeper.generation++
	if keeper.ticker == nil {
		return
	}
	keeper.ticker.Stop()
	close(keeper.stopTick)
	keeper.ticker = nil
	keeper.stopTick = nil
}

func (keeper *TimeKeeper) cancelSwitchLocked() {
	if keeper.switchTimer != nil {
		keeper.switchTimer.Stop()
		keeper.switchTimer = nil
	}
	keeper.switching = false
	keeper.switchToken++
}

func (keeper *TimeKeeper) clearGoalLocked() {
	if keeper.goals != nil {
		keeper.goals.ClearGoal()
	}
}

func (keeper *TimeKeeper) activeGoalLocked() string {
	if keeper.goals == nil {
		return ""
	}
	return keeper.goals.ActiveGoal()
}

func (keeper *TimeKeeper) currentLocked() model.Snapshot {
	return model.Snapshot{
		Seq:              keeper.seq,
		RemainingSeconds: keeper.remaining,
		Kind:             keeper.kind,
		Goal:             keeper.activeGoalLocked(),
		Running:          keeper.running,
	}
}

func (keeper *TimeKeeper) nextSnapshotLocked() (model.Snapshot, Publisher) {
	keeper.seq++
	return keeper.currentLocked(), keeper.publisher
}

func (keeper *TimeKeeper) eventLocked(eventType EventType) Event {
	return Event{
		Type:             eventType,
		Kind:             keeper.kind,
		RemainingSeconds: keeper.remaining,
		Running:          keeper.running,
		Goal:             keeper.activeGoalLocked(),
		At:               keeper.options.Clock.Now(),
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func publishTo(publisher Publisher, snapshot model.Snapshot) {
	if publisher != nil {
		publisher.Publish(snapshot)
	}
}
