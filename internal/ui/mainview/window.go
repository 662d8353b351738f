package mainview

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/core/model"
	"dreamytimer/internal/core/timekeeper"
	"dreamytimer/internal/core/viewsync"
	"dreamytimer/internal/ui/theme"
)

const (
	messageLifetime = 4 * time.Second
	popupLifetime   = 5 * time.Second
)

// Actions are host callbacks for buttons that leave the main window.
type Actions struct {
	OnSettings func()
	OnMini     func()
	OnClose    func()
}

// Window is the main clock face.
type Window struct {
	window  fyne.Window
	core    *core.App
	actions Actions
	palette theme.Palette

	gradient *canvas.LinearGradient
	title    *canvas.Text
	message  *canvas.Text
	goal     *canvas.Text
	clock    *canvas.Text
	sessions *canvas.Text

	startButton *widget.Button
	pauseButton *widget.Button

	running      bool
	messageToken uint64
	deregister   func()
}

// New builds the main window and registers it with the hub.
func New(fyneApp fyne.App, application *core.App, actions Actions) *Window {
	window := fyneApp.NewWindow("DreamyTimer")
	if fyneApp.Icon() != nil {
		window.SetIcon(fyneApp.Icon())
	}

	palette := theme.Lookup(application.Config().Theme)
	view := &Window{
		window:  window,
		core:    application,
		actions: actions,
		palette: palette,
	}

	view.gradient = canvas.NewVerticalGradient(theme.NRGBA(palette.GradientTop), theme.NRGBA(palette.GradientBottom))
	view.title = newText("✨ Work Time ✨", 22, true)
	view.message = newText("", 13, false)
	view.goal = newText("", 15, true)
	view.clock = newText("--:--", 56, true)
	view.clock.TextStyle.Monospace = true
	view.sessions = newText("", 12, false)

	settingsButton := widget.NewButton("⚙️ Settings", func() {
		if view.actions.OnSettings != nil {
			view.actions.OnSettings()
		}
	})
	miniButton := widget.NewButton("➖ Mini", func() {
		if view.actions.OnMini != nil {
			view.actions.OnMini()
		}
	})
	view.startButton = widget.NewButton("Start", view.handleStart)
	view.pauseButton = widget.NewButton("Pause", func() {
		view.core.Keeper().Pause()
	})
	resetButton := widget.NewButton("Reset", func() {
		view.core.Keeper().Reset()
	})

	topBar := container.NewHBox(settingsButton, layout.NewSpacer(), view.sessions, miniButton)
	buttons := container.NewHBox(layout.NewSpacer(), view.startButton, view.pauseButton, resetButton, layout.NewSpacer())
	body := container.NewVBox(
		topBar,
		container.NewCenter(view.title),
		container.NewCenter(view.message),
		layout.NewSpacer(),
		container.NewCenter(view.goal),
		container.NewCenter(view.clock),
		layout.NewSpacer(),
		buttons,
	)
	window.SetContent(container.NewStack(view.gradient, container.NewPadded(body)))
	window.Resize(fyne.NewSize(420, 520))
	window.SetCloseIntercept(func() {
		if view.actions.OnClose != nil {
			view.actions.OnClose()
			return
		}
		window.Hide()
	})

	view.applyPaletteUnsafe(palette)
	view.setSessionsUnsafe(application.SessionsToday())
	view.deregister = application.Hub().Register(view)
	return view
}

// Window returns the underlying fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show brings the window to the front.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without stopping the timer.
func (view *Window) Hide() {
	view.window.Hide()
}

// OnSnapshot redraws the clock face.
func (view *Window) OnSnapshot(snapshot model.Snapshot) {
	fyne.Do(func() {
		view.render(snapshot)
	})
}

// HandleEvent shows the messages and popups attached to timer events.
func (view *Window) HandleEvent(event timekeeper.Event) {
	fyne.Do(func() {
		switch event.Type {
		case timekeeper.EventCompleted:
			view.showMessageUnsafe(event.Message)
			if event.Kind == model.KindWork {
				view.setSessionsUnsafe(event.SessionsToday)
			}
			view.showCompletionUnsafe(event.Headline)
		case timekeeper.EventSessionSwitched:
			view.showMessageUnsafe(event.Message)
			view.setSessionsUnsafe(view.core.SessionsToday())
		}
	})
}

// ShowMessage displays text on the message line for a few seconds.
func (view *Window) ShowMessage(text string) {
	fyne.Do(func() {
		view.showMessageUnsafe(text)
	})
}

// ApplyPalette recolors the window.
func (view *Window) ApplyPalette(palette theme.Palette) {
	fyne.Do(func() {
		view.applyPaletteUnsafe(palette)
	})
}

// Close deregisters the window from the hub.
func (view *Window) Close() {
	if view.deregister != nil {
		view.deregister()
	}
}

func (view *Window) render(snapshot model.Snapshot) {
	view.running = snapshot.Running
	view.title.Text = TitleFor(snapshot.Kind)
	view.goal.Text = GoalText(snapshot.Goal)
	view.clock.Text = viewsync.FormatRemaining(snapshot.RemainingSeconds)
	if snapshot.Running {
		view.startButton.Disable()
		view.pauseButton.Enable()
	} else {
		view.startButton.Enable()
		view.pauseButton.Disable()
	}
	view.title.Refresh()
	view.goal.Refresh()
	view.clock.Refresh()
}

func (view *Window) handleStart() {
	if view.running {
		return
	}
	view.promptGoal()
}

// promptGoal asks for the session intention and starts the countdown.
func (view *Window) promptGoal() {
	entry := widget.NewSelectEntry(view.core.SavedGoals())
	entry.SetPlaceHolder("Type a new goal or pick a recent one")

	content := container.NewVBox(
		widget.NewLabel("What would you like to focus on?"),
		entry,
	)
	prompt := dialog.NewCustomWithoutButtons("✨ Set Your Intention ✨", content, view.window)

	start := func() {
		prompt.Hide()
		view.core.Keeper().SetGoal(entry.Text)
		view.core.Keeper().Start()
	}
	skip := func() {
		prompt.Hide()
		view.core.Keeper().Start()
	}
	entry.OnSubmitted = func(string) { start() }

	startButton := widget.NewButton("Start ✨", start)
	startButton.Importance = widget.HighImportance
	prompt.SetButtons([]fyne.CanvasObject{startButton, widget.NewButton("Skip", skip)})
	prompt.Resize(fyne.NewSize(360, 200))
	prompt.Show()
	view.window.Canvas().Focus(entry)
}

func (view *Window) showMessageUnsafe(text string) {
	view.messageToken++
	token := view.messageToken
	view.message.Text = text
	view.message.Refresh()
	if text == "" {
		return
	}
	time.AfterFunc(messageLifetime, func() {
		fyne.Do(func() {
			if view.messageToken != token {
				return
			}
			view.message.Text = ""
			view.message.Refresh()
		})
	})
}

func (view *Window) showCompletionUnsafe(headline string) {
	label := widget.NewLabel(headline)
	label.Alignment = fyne.TextAlignCenter
	popup := dialog.NewCustom("✨ Timer Complete ✨", "Okay ✨", label, view.window)
	popup.Show()
	time.AfterFunc(popupLifetime, func() {
		fyne.Do(popup.Hide)
	})
}

func (view *Window) setSessionsUnsafe(count int) {
	view.sessions.Text = fmt.Sprintf("Sessions today: %d", count)
	view.sessions.Refresh()
}

func (view *Window) applyPaletteUnsafe(palette theme.Palette) {
	view.palette = palette
	view.gradient.StartColor = theme.NRGBA(palette.GradientTop)
	view.gradient.EndColor = theme.NRGBA(palette.GradientBottom)
	view.gradient.Refresh()

	primary := theme.NRGBA(palette.Primary)
	for _, text := range []*canvas.Text{view.title, view.goal, view.clock, view.sessions} {
		text.Color = primary
		text.Refresh()
	}
	view.message.Color = theme.NRGBA(palette.Secondary)
	view.message.Refresh()
}

// TitleFor returns the heading shown for a session kind.
func TitleFor(kind model.Kind) string {
	return fmt.Sprintf("✨ %s Time ✨", kind.Label())
}

// GoalText returns the goal line, empty when no goal is set.
func GoalText(goal string) string {
	if goal == "" {
		return ""
	}
	return "📌 " + goal
}

func newText(text string, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(text, theme.NRGBA("#000000"))
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = size
	label.TextStyle = fyne.TextStyle{Bold: bold}
	return label
}
