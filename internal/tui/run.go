package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/core/model"
	"dreamytimer/internal/ui/theme"
)

// surface forwards snapshots to the program without ever blocking the
// publisher; only the newest undelivered snapshot is kept.
type surface struct {
	mu     sync.Mutex
	latest model.Snapshot
	has    bool
	wake   chan struct{}
}

func newSurface() *surface {
	return &surface{wake: make(chan struct{}, 1)}
}

func (s *surface) OnSnapshot(snapshot model.Snapshot) {
	s.mu.Lock()
	s.latest = snapshot
	s.has = true
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *surface) take() (model.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.latest, s.has
	s.has = false
	return snapshot, ok
}

func (s *surface) pump(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
			if snapshot, ok := s.take(); ok {
				send(snapshotMsg(snapshot))
			}
		}
	}
}

// Run shows the terminal UI until the user quits or ctx is cancelled.
func Run(ctx context.Context, application *core.App, options ...tea.ProgramOption) error {
	keeper := application.Keeper()
	config := application.Config()

	m := NewModel(Options{
		Keeper:        keeper,
		SavedGoals:    application.SavedGoals,
		SessionsToday: application.SessionsToday,
		Palette:       theme.Lookup(config.Theme),
		Greeting:      keeper.Greeting(),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, options...)...)

	bridge := newSurface()
	deregister := application.Hub().Register(bridge)
	defer deregister()
	go bridge.pump(ctx, program.Send)

	events := keeper.Subscribe(64)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				program.Send(eventMsg(event))
			}
		}
	}()

	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
