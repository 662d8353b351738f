package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"dreamytimer/internal/core/model"
	"dreamytimer/internal/core/timekeeper"
	"dreamytimer/internal/core/viewsync"
	"dreamytimer/internal/ui/theme"
)

const messageLifetime = 4 * time.Second

// Controller is the part of the countdown the terminal UI drives.
type Controller interface {
	Start()
	Pause()
	Reset()
	SetGoal(text string) string
	Snapshot() model.Snapshot
}

// Options configures a Model.
type Options struct {
	Keeper        Controller
	SavedGoals    func() []string
	SessionsToday func() int
	Palette       theme.Palette
	Greeting      string
	Clipboard     func(string) error
}

type snapshotMsg model.Snapshot

type eventMsg timekeeper.Event

type clearMessageMsg struct{ token int }

type copiedMsg struct {
	text string
	err  error
}

// Model is the terminal clock face.
type Model struct {
	keeper        Controller
	savedGoals    func() []string
	sessionsToday func() int
	copyText      func(string) error

	keys   keyMap
	help   help.Model
	styles styles

	snapshot     model.Snapshot
	message      string
	headline     string
	messageToken int
	sessions     int
	compact      bool
	status       string
	width        int

	form *huh.Form
}

// NewModel builds the model from the keeper's current state.
func NewModel(options Options) Model {
	if options.SavedGoals == nil {
		options.SavedGoals = func() []string { return nil }
	}
	if options.SessionsToday == nil {
		options.SessionsToday = func() int { return 0 }
	}
	if options.Clipboard == nil {
		options.Clipboard = clipboard.WriteAll
	}
	return Model{
		keeper:        options.Keeper,
		savedGoals:    options.SavedGoals,
		sessionsToday: options.SessionsToday,
		copyText:      options.Clipboard,
		keys:          defaultKeys(),
		help:          help.New(),
		styles:        newStyles(options.Palette),
		snapshot:      options.Keeper.Snapshot(),
		message:       options.Greeting,
		sessions:      options.SessionsToday(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.message == "" {
		return nil
	}
	return clearMessageAfter(m.messageToken)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		switch msg.(type) {
		case snapshotMsg, eventMsg, clearMessageMsg:
			// Timer traffic keeps flowing while the prompt is open.
		default:
			return m.updateForm(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		if msg.Seq > m.snapshot.Seq {
			m.snapshot = model.Snapshot(msg)
		}
		return m, nil

	case eventMsg:
		return m.handleEvent(timekeeper.Event(msg))

	case clearMessageMsg:
		if msg.token == m.messageToken {
			m.message = ""
			m.headline = ""
		}
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("copy failed: %v", msg.err)
		} else {
			m.status = "Copied: " + msg.text
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		if m.snapshot.Running {
			return m, nil
		}
		m.form = newGoalForm(m.savedGoals())
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Pause):
		m.keeper.Pause()
	case key.Matches(msg, m.keys.Reset):
		m.keeper.Reset()
	case key.Matches(msg, m.keys.Compact):
		m.compact = !m.compact
	case key.Matches(msg, m.keys.Copy):
		text := StatusLine(m.snapshot)
		copyText := m.copyText
		return m, func() tea.Msg {
			return copiedMsg{text: text, err: copyText(text)}
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) handleEvent(event timekeeper.Event) (tea.Model, tea.Cmd) {
	switch event.Type {
	case timekeeper.EventCompleted:
		if event.Kind == model.KindWork {
			m.sessions = event.SessionsToday
		}
		m.headline = strings.ReplaceAll(event.Headline, "\n", " ")
		return m.showMessage(event.Message)
	case timekeeper.EventSessionSwitched:
		m.sessions = m.sessionsToday()
		return m.showMessage(event.Message)
	}
	return m, nil
}

func (m Model) showMessage(text string) (tea.Model, tea.Cmd) {
	m.messageToken++
	m.message = text
	return m, clearMessageAfter(m.messageToken)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	formModel, cmd := m.form.Update(msg)
	m.form = formModel.(*huh.Form)
	switch m.form.State {
	case huh.StateCompleted:
		goal := goalFromForm(m.form)
		m.form = nil
		if goal != "" {
			m.keeper.SetGoal(goal)
		}
		m.keeper.Start()
		return m, nil
	case huh.StateAborted:
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) View() string {
	if m.form != nil {
		return m.styles.frame.Render(m.form.View())
	}
	if m.compact {
		return m.compactView()
	}

	lines := []string{
		m.styles.title.Render(mainTitle(m.snapshot.Kind)),
		m.styles.muted.Render(fmt.Sprintf("Sessions today: %d", m.sessions)),
		m.styles.clock.Render(viewsync.FormatRemaining(m.snapshot.RemainingSeconds)),
	}
	if m.snapshot.Goal != "" {
		lines = append(lines, m.styles.goal.Render("📌 "+m.snapshot.Goal))
	}
	if !m.snapshot.Running {
		lines = append(lines, m.styles.muted.Render("(paused)"))
	}
	if m.headline != "" {
		lines = append(lines, "", m.styles.headline.Render(m.headline))
	}
	if m.message != "" {
		lines = append(lines, m.styles.message.Render(m.message))
	}

	body := m.styles.frame.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.styles.muted.Render(m.status) + "\n" + footer
	}
	return body + "\n" + footer
}

func (m Model) compactView() string {
	line := "⏳ " + viewsync.FormatRemaining(m.snapshot.RemainingSeconds)
	if m.snapshot.Goal != "" {
		line += " · " + m.snapshot.Goal
	}
	if !m.snapshot.Running {
		line += " (paused)"
	}
	return m.styles.compact.Render(line)
}

// StatusLine is the text copied to the clipboard.
func StatusLine(snapshot model.Snapshot) string {
	line := fmt.Sprintf("%s %s", snapshot.Kind.Label(), viewsync.FormatRemaining(snapshot.RemainingSeconds))
	if snapshot.Goal != "" {
		line += " · " + snapshot.Goal
	}
	if !snapshot.Running {
		line += " (paused)"
	}
	return line
}

func mainTitle(kind model.Kind) string {
	return fmt.Sprintf("✨ %s Time ✨", kind.Label())
}

func clearMessageAfter(token int) tea.Cmd {
	return tea.Tick(messageLifetime, func(time.Time) tea.Msg {
		return clearMessageMsg{token: token}
	})
}
