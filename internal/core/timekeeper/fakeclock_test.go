package timekeeper

import (
	"sync"
	"time"
)

// fakeClock never ticks on its own. Tests either call tick directly or send
// on a ticker's channel to go through the ticker goroutine.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
	timers  []*fakeTimer
}

type fakeTicker struct {
	ch      chan time.Time
	stopped bool
}

func (ticker *fakeTicker) C() <-chan time.Time {
	return ticker.ch
}

func (ticker *fakeTicker) Stop() {
	ticker.stopped = true
}

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (timer *fakeTimer) Stop() bool {
	active := !timer.stopped && !timer.fired
	timer.stopped = true
	return active
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 10, 18, 9, 0, 0, 0, time.Local)}
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) NewTicker(time.Duration) Ticker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	ticker := &fakeTicker{ch: make(chan time.Time)}
	clock.tickers = append(clock.tickers, ticker)
	return ticker
}

func (clock *fakeClock) AfterFunc(delay time.Duration, fn func()) Timer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	timer := &fakeTimer{delay: delay, fn: fn}
	clock.timers = append(clock.timers, timer)
	return timer
}

// latestTicker returns the most recently armed ticker.
func (clock *fakeClock) latestTicker() *fakeTicker {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if len(clock.tickers) == 0 {
		return nil
	}
	return clock.tickers[len(clock.tickers)-1]
}

func (clock *fakeClock) tickerCount() int {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return len(clock.tickers)
}

// pendingTimers returns timers that are neither stopped nor fired.
func (clock *fakeClock) pendingTimers() []*fakeTimer {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	var pending []*fakeTimer
	for _, timer := range clock.timers {
		if !timer.stopped && !timer.fired {
			pending = append(pending, timer)
		}
	}
	return pending
}

// fireTimers runs every pending timer callback.
func (clock *fakeClock) fireTimers() int {
	pending := clock.pendingTimers()
	for _, timer := range pending {
		timer.fired = true
		timer.fn()
	}
	return len(pending)
}
