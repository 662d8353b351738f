package mini

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/core/model"
	"dreamytimer/internal/core/viewsync"
	"dreamytimer/internal/ui/theme"
)

const (
	width  = float32(180)
	height = float32(160)

	// Distance from the top-right screen corner when no position is saved.
	defaultRightMargin = 200
	defaultTopMargin   = 20
)

// Window is the small always-on-top clock.
type Window struct {
	app       fyne.App
	core      *core.App
	onRestore func()

	mu         sync.Mutex
	window     fyne.Window
	background *canvas.Rectangle
	goal       *canvas.Text
	clock      *canvas.Text
	deregister func()
}

// New prepares a mini window. Nothing is shown until Open.
func New(fyneApp fyne.App, application *core.App, onRestore func()) *Window {
	return &Window{app: fyneApp, core: application, onRestore: onRestore}
}

// Open shows the mini window, creating it on first use, and subscribes it
// to snapshots.
func (mini *Window) Open() {
	mini.mu.Lock()
	if mini.window == nil {
		mini.buildLocked()
	}
	window := mini.window
	registered := mini.deregister != nil
	mini.mu.Unlock()

	// Register replays the last snapshot into render, which takes mu.
	if !registered {
		deregister := mini.core.Hub().Register(mini)
		mini.mu.Lock()
		mini.deregister = deregister
		mini.mu.Unlock()
	}

	window.Show()
	mini.pinNative(mini.core.Config().MiniWindowPosition)
}

// Close remembers the position, unsubscribes and hides the window. fyne
// reports no move events, so closing is when a dragged position is saved.
func (mini *Window) Close() {
	mini.mu.Lock()
	window := mini.window
	deregister := mini.deregister
	mini.deregister = nil
	mini.mu.Unlock()

	if deregister != nil {
		deregister()
	}
	if window == nil {
		return
	}
	if position, ok := mini.nativePosition(); ok {
		mini.core.SaveMiniPosition(position.X, position.Y)
	}
	window.Hide()
}

// IsOpen reports whether the window currently receives snapshots.
func (mini *Window) IsOpen() bool {
	mini.mu.Lock()
	defer mini.mu.Unlock()
	return mini.deregister != nil
}

// OnSnapshot redraws the time and goal.
func (mini *Window) OnSnapshot(snapshot model.Snapshot) {
	fyne.Do(func() {
		mini.render(snapshot)
	})
}

// ApplyPalette recolors the window if it has been built.
func (mini *Window) ApplyPalette(palette theme.Palette) {
	fyne.Do(func() {
		mini.mu.Lock()
		defer mini.mu.Unlock()
		if mini.window == nil {
			return
		}
		mini.applyPaletteLocked(palette)
	})
}

func (mini *Window) buildLocked() {
	window := mini.app.NewWindow("⏳")
	window.SetFixedSize(true)
	window.SetPadded(false)

	mini.background = canvas.NewRectangle(theme.NRGBA("#ffffff"))
	mini.goal = canvas.NewText("", theme.NRGBA("#000000"))
	mini.goal.Alignment = fyne.TextAlignCenter
	mini.goal.TextSize = 10
	mini.clock = canvas.NewText("--:--", theme.NRGBA("#000000"))
	mini.clock.Alignment = fyne.TextAlignCenter
	mini.clock.TextSize = 30
	mini.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}

	restore := widget.NewButton("Restore", mini.restore)
	content := container.NewVBox(
		container.NewCenter(mini.goal),
		container.NewCenter(mini.clock),
		container.NewCenter(restore),
	)
	window.SetContent(container.NewStack(mini.background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(width, height))
	window.SetCloseIntercept(mini.restore)

	mini.window = window
	mini.applyPaletteLocked(theme.Lookup(mini.core.Config().Theme))
}

func (mini *Window) restore() {
	mini.Close()
	if mini.onRestore != nil {
		mini.onRestore()
	}
}

func (mini *Window) render(snapshot model.Snapshot) {
	mini.mu.Lock()
	defer mini.mu.Unlock()
	if mini.window == nil {
		return
	}
	mini.goal.Text = truncate(snapshot.Goal, 24)
	mini.clock.Text = viewsync.FormatRemaining(snapshot.RemainingSeconds)
	mini.goal.Refresh()
	mini.clock.Refresh()
}

func (mini *Window) applyPaletteLocked(palette theme.Palette) {
	mini.background.FillColor = theme.NRGBA(palette.Background)
	mini.background.Refresh()
	mini.goal.Color = theme.NRGBA(palette.Primary)
	mini.clock.Color = theme.NRGBA(palette.Primary)
	mini.goal.Refresh()
	mini.clock.Refresh()
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
