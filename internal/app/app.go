package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"dreamytimer/internal/core/goals"
	"dreamytimer/internal/core/model"
	"dreamytimer/internal/core/timekeeper"
	"dreamytimer/internal/core/viewsync"
	"dreamytimer/internal/platform"
	"dreamytimer/internal/storage"
)

// Name is the application name used for config paths and locks.
const Name = "DreamyTimer"

// Options configures the application core.
type Options struct {
	AppName      string
	SettingsPath string
	Logger       *log.Logger
	Clock        timekeeper.Clock
	SwitchDelay  time.Duration
	Rand         *rand.Rand
	Strategies   []platform.Strategy
}

// App wires the settings store, goal tracker, countdown and view hub together
// and exposes the commands hosts forward from the user.
type App struct {
	options  Options
	store    *storage.Store
	goals    *goals.Tracker
	hub      *viewsync.Hub
	keeper   *timekeeper.TimeKeeper
	notifier *platform.Notifier

	mu       sync.Mutex
	nextID   int
	watchers map[int]func(model.Configuration)
}

// New opens the settings and builds the timer core. A broken settings
// document is logged and replaced by defaults.
func New(options Options) (*App, error) {
	if options.AppName == "" {
		options.AppName = Name
	}
	if options.Logger == nil {
		options.Logger = log.Default()
	}
	if options.Clock == nil {
		options.Clock = timekeeper.SystemClock{}
	}
	if options.SettingsPath == "" {
		configDir, err := platform.NewService().GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("new app: resolve user config dir: %w", err)
		}
		path, err := storage.ResolvePath(configDir, options.AppName)
		if err != nil {
			return nil, fmt.Errorf("new app: %w", err)
		}
		options.SettingsPath = path
	}

	logger := options.Logger
	store, err := storage.OpenStore(options.SettingsPath, storage.StoreOptions{
		Now:    options.Clock.Now,
		Logger: logger,
		OnError: func(err error) {
			logger.Printf("save settings: %v", err)
		},
	})
	if err != nil {
		logger.Printf("load settings: %v (using defaults)", err)
	}

	config := store.Config()
	tracker := goals.New(store)
	hub := viewsync.NewHub()
	notifier := platform.NewNotifier(logger, 0, options.Strategies...)

	keeper := timekeeper.New(timekeeper.Durations{
		WorkSeconds:  config.WorkDurationSeconds,
		BreakSeconds: config.BreakDurationSeconds,
	}, timekeeper.Config{
		SwitchDelay: options.SwitchDelay,
		Clock:       options.Clock,
		Rand:        options.Rand,
		Logger:      logger,
	})
	keeper.SetGoalTracker(tracker)
	keeper.SetPublisher(hub)
	keeper.SetSessionRecorder(store)
	keeper.SetNotifier(notifier)
	keeper.SetSoundEnabled(config.SoundEnabled)
	keeper.Refresh()

	return &App{
		options:  options,
		store:    store,
		goals:    tracker,
		hub:      hub,
		keeper:   keeper,
		notifier: notifier,
		watchers: make(map[int]func(model.Configuration)),
	}, nil
}

// Keeper returns the countdown.
func (app *App) Keeper() *timekeeper.TimeKeeper {
	return app.keeper
}

// Hub returns the view hub surfaces register with.
func (app *App) Hub() *viewsync.Hub {
	return app.hub
}

// Goals returns the goal tracker.
func (app *App) Goals() *goals.Tracker {
	return app.goals
}

// Notifier returns the completion notifier.
func (app *App) Notifier() *platform.Notifier {
	return app.notifier
}

// SettingsPath returns the location of the settings document.
func (app *App) SettingsPath() string {
	return app.store.Path()
}

// Config returns a copy of the persisted configuration.
func (app *App) Config() model.Configuration {
	return app.store.Config()
}

// Watch registers fn to be called after every settings change made through
// App. The returned func removes it.
func (app *App) Watch(fn func(model.Configuration)) func() {
	app.mu.Lock()
	id := app.nextID
	app.nextID++
	app.watchers[id] = fn
	app.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			app.mu.Lock()
			delete(app.watchers, id)
			app.mu.Unlock()
		})
	}
}

// ApplyDurations validates both entries as whole minutes. Nothing changes
// unless both are valid.
func (app *App) ApplyDurations(workText, breakText string) error {
	workSeconds, err := validateField("work minutes", workText)
	if err != nil {
		return err
	}
	breakSeconds, err := validateField("break minutes", breakText)
	if err != nil {
		return err
	}

	app.update(func(config *model.Configuration) {
		config.WorkDurationSeconds = workSeconds
		config.BreakDurationSeconds = breakSeconds
	})
	app.keeper.SetDurations(workSeconds, breakSeconds)
	return nil
}

// SetTheme stores the palette choice.
func (app *App) SetTheme(theme model.Theme) {
	theme = model.ParseTheme(string(theme))
	app.update(func(config *model.Configuration) {
		config.Theme = theme
	})
}

// SetSoundEnabled stores the sound flag and applies it to the countdown.
func (app *App) SetSoundEnabled(enabled bool) {
	app.update(func(config *model.Configuration) {
		config.SoundEnabled = enabled
	})
	app.keeper.SetSoundEnabled(enabled)
}

// SaveMiniPosition remembers where the mini window was moved to.
func (app *App) SaveMiniPosition(x, y int) {
	app.update(func(config *model.Configuration) {
		config.MiniWindowPosition = &model.Position{X: x, Y: y}
	})
}

// SavedGoals returns the goal history, most recent first.
func (app *App) SavedGoals() []string {
	return app.goals.SavedGoals()
}

// DeleteSavedGoal removes a goal from the history.
func (app *App) DeleteSavedGoal(text string) error {
	if err := app.goals.DeleteSavedGoal(text); err != nil {
		return err
	}
	app.broadcast()
	return nil
}

// SessionsToday returns the number of work sessions finished today.
func (app *App) SessionsToday() int {
	config := app.store.Config()
	config.RollOver(app.options.Clock.Now())
	return config.TotalSessionsToday
}

// Flush waits for pending settings writes.
func (app *App) Flush(ctx context.Context) error {
	return app.store.Flush(ctx)
}

// Close stops the countdown and writes pending settings.
func (app *App) Close() error {
	app.keeper.Stop()
	if err := app.store.Close(); err != nil {
		return fmt.Errorf("close settings: %w", err)
	}
	return nil
}

func (app *App) update(mutate func(*model.Configuration)) {
	app.store.Update(mutate)
	app.broadcast()
}

func (app *App) broadcast() {
	config := app.store.Config()
	app.mu.Lock()
	watchers := make([]func(model.Configuration), 0, len(app.watchers))
	for _, fn := range app.watchers {
		watchers = append(watchers, fn)
	}
	app.mu.Unlock()

	for _, fn := range watchers {
		fn(config)
	}
}

func validateField(field, text string) (int, error) {
	seconds, err := model.ValidateDuration(text)
	if err == nil {
		return seconds, nil
	}
	var validation *model.ValidationError
	if errors.As(err, &validation) {
		validation.Field = field
	}
	return 0, err
}
