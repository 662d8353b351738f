package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	core "dreamytimer/internal/app"
	"dreamytimer/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window fyne.Window
	core   *core.App
	values Values

	workEntry  *widget.Entry
	breakEntry *widget.Entry
	sound      *widget.Check
	status     *widget.Label
	goals      *widget.List
	selected   int
}

// New creates a preferences window.
func New(fyneApp fyne.App, application *core.App) *Window {
	window := fyneApp.NewWindow("DreamyTimer Settings")
	prefs := &Window{
		window:   window,
		core:     application,
		selected: -1,
	}

	themeButtons := container.NewGridWithColumns(len(model.Themes))
	for _, name := range model.Themes {
		name := name
		themeButtons.Add(widget.NewButton(name.Title(), func() {
			prefs.core.SetTheme(name)
		}))
	}

	prefs.sound = widget.NewCheck("Play a sound when a session ends", func(checked bool) {
		if checked != prefs.values.SoundEnabled {
			prefs.values.SoundEnabled = checked
			prefs.core.SetSoundEnabled(checked)
		}
	})

	prefs.workEntry = widget.NewEntry()
	prefs.breakEntry = widget.NewEntry()
	prefs.status = widget.NewLabel("")
	prefs.status.Wrapping = fyne.TextWrapWord
	saveDurations := widget.NewButton("Save durations", prefs.handleSaveDurations)

	prefs.goals = widget.NewList(
		func() int { return len(prefs.values.SavedGoals) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < len(prefs.values.SavedGoals) {
				item.(*widget.Label).SetText(prefs.values.SavedGoals[id])
			}
		},
	)
	prefs.goals.OnSelected = func(id widget.ListItemID) { prefs.selected = id }
	prefs.goals.OnUnselected = func(widget.ListItemID) { prefs.selected = -1 }
	deleteGoal := widget.NewButton("Delete selected goal", prefs.handleDeleteGoal)

	durations := container.NewVBox(
		container.NewHBox(widget.NewLabel("Work"), prefs.workEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break"), prefs.breakEntry, widget.NewLabel("min")),
		saveDurations,
	)
	top := container.NewVBox(
		widget.NewLabelWithStyle("Theme", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		themeButtons,
		prefs.sound,
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		durations,
		prefs.status,
		widget.NewLabelWithStyle("Saved goals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	closeButton := widget.NewButton("Close", window.Hide)
	bottom := container.NewVBox(deleteGoal, container.NewHBox(layout.NewSpacer(), closeButton))

	window.SetContent(container.NewBorder(top, bottom, nil, nil, prefs.goals))
	window.Resize(fyne.NewSize(440, 620))
	window.SetCloseIntercept(window.Hide)

	prefs.load(FromConfig(application.Config()))
	return prefs
}

// Show reloads the current settings and displays the window.
func (prefs *Window) Show() {
	prefs.load(FromConfig(prefs.core.Config()))
	prefs.status.SetText("")
	prefs.window.Show()
	prefs.window.RequestFocus()
}

func (prefs *Window) load(values Values) {
	prefs.values = values
	prefs.workEntry.SetText(values.WorkMinutes)
	prefs.breakEntry.SetText(values.BreakMinutes)
	prefs.sound.SetChecked(values.SoundEnabled)
	prefs.selected = -1
	prefs.goals.UnselectAll()
	prefs.goals.Refresh()
}

func (prefs *Window) handleSaveDurations() {
	if err := prefs.core.ApplyDurations(prefs.workEntry.Text, prefs.breakEntry.Text); err != nil {
		prefs.status.SetText(ErrorText(err))
		return
	}
	prefs.values.WorkMinutes = prefs.workEntry.Text
	prefs.values.BreakMinutes = prefs.breakEntry.Text
	prefs.status.SetText("Timer updated ✨")
}

func (prefs *Window) handleDeleteGoal() {
	if prefs.selected < 0 || prefs.selected >= len(prefs.values.SavedGoals) {
		prefs.status.SetText("Please select a goal to delete")
		return
	}
	goal := prefs.values.SavedGoals[prefs.selected]
	if err := prefs.core.DeleteSavedGoal(goal); err != nil {
		prefs.status.SetText(err.Error())
		return
	}
	prefs.load(FromConfig(prefs.core.Config()))
	prefs.status.SetText("Deleted: " + goal)
}
