package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"dreamytimer/internal/core/model"
	"dreamytimer/internal/core/viewsync"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnMini        func()
	OnPreferences func()
	OnQuit        func()
}

// Manager keeps the tray menu in step with the timer.
type Manager struct {
	app        desktop.App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	running    bool
	status     string

	runningIcon fyne.Resource
	pausedIcon  fyne.Resource
	shownIcon   fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		status:    "starting...",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", call(&manager.callbacks.OnToggle))
	manager.refreshMenu()

	return manager
}

// SetIcons sets the tray icons shown while the timer runs and while it is
// paused.
func (manager *Manager) SetIcons(running, paused fyne.Resource) {
	manager.runningIcon = running
	manager.pausedIcon = paused
	manager.refreshMenu()
}

// OnSnapshot updates the status line and the start/pause item.
func (manager *Manager) OnSnapshot(snapshot model.Snapshot) {
	status := StatusLine(snapshot)
	fyne.Do(func() {
		manager.running = snapshot.Running
		manager.status = status
		manager.refreshMenu()
	})
}

// StatusLine renders a snapshot as "Work 12:34", marking paused sessions.
func StatusLine(snapshot model.Snapshot) string {
	status := fmt.Sprintf("%s %s", snapshot.Kind.Label(), viewsync.FormatRemaining(snapshot.RemainingSeconds))
	if !snapshot.Running {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return status
}

func (manager *Manager) refreshMenu() {
	manager.statusItem.Label = manager.status
	if manager.running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	if manager.app == nil {
		return
	}
	if icon := manager.currentIcon(); icon != nil && icon != manager.shownIcon {
		manager.app.SetSystemTrayIcon(icon)
		manager.shownIcon = icon
	}
	quit := fyne.NewMenuItem("Quit", call(&manager.callbacks.OnQuit))
	quit.IsQuit = true
	manager.app.SetSystemTrayMenu(fyne.NewMenu("DreamyTimer",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show timer", call(&manager.callbacks.OnShow)),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", call(&manager.callbacks.OnReset)),
		fyne.NewMenuItem("Mini view", call(&manager.callbacks.OnMini)),
		fyne.NewMenuItem("Preferences", call(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItemSeparator(),
		quit,
	))
}

func (manager *Manager) currentIcon() fyne.Resource {
	if manager.running {
		return manager.runningIcon
	}
	return manager.pausedIcon
}

func call(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
