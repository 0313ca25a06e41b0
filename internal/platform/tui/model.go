// Package tui provides the Bubble Tea front-end for Future Self.
// It owns no game rules: decisions are dispatched to a core.Store and the
// screen is drawn from the store's state.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/future-self/internal/catalog"
	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/storage"
	"github.com/vovakirdan/future-self/internal/view"
)

// Width at which the dashboard and the decision list sit side by side.
const minWidthForColumns = 90

type screenMode int

const (
	modeDashboard screenMode = iota
	modeGoal
)

// Options configures a game model.
type Options struct {
	SessionID string // Journal key; generated when empty
	Player    string // Shown in the journal
	Width     int
	Height    int
}

// Model is the Bubble Tea model for one Future Self session.
type Model struct {
	store   *core.Store
	catalog *catalog.Catalog
	journal *storage.Store // May be nil
	opts    Options

	keys      KeyMap
	help      help.Model
	goalInput textinput.Model

	mode        screenMode
	cursor      int
	status      string
	quitting    bool
	openHistory bool
	saved       bool
	saveErr     error
}

// NewModel creates a model driving store with the options from cat.
// journal may be nil, in which case nothing is recorded.
func NewModel(store *core.Store, cat *catalog.Catalog, journal *storage.Store, opts Options) Model {
	in := textinput.New()
	in.Placeholder = "e.g. Buy a house by 35"
	in.Prompt = "Goal: "
	in.CharLimit = 120
	in.Width = 50

	h := help.New()
	h.ShowAll = false
	h.Width = opts.Width

	return Model{
		store:     store,
		catalog:   cat,
		journal:   journal,
		opts:      opts,
		keys:      DefaultKeyMap(),
		help:      h,
		goalInput: in,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		m.opts.Height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.mode == modeGoal {
			return m.handleGoalKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.mode == modeGoal {
		var cmd tea.Cmd
		m.goalInput, cmd = m.goalInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input on the dashboard.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < m.catalog.Len()-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Apply):
		if opt, ok := m.catalog.At(m.cursor); ok {
			d := opt.Decision()
			m.store.Dispatch(core.ApplyDecision{Decision: d})
			m.status = fmt.Sprintf("Decided: %s (%s)", opt.Label, formatDelta(d.ProbChange))
		}

	case key.Matches(msg, m.keys.EditGoal):
		m.mode = modeGoal
		m.goalInput.SetValue(m.store.State().Goal)
		m.goalInput.CursorEnd()
		cmd := m.goalInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.History):
		m.openHistory = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// handleGoalKey processes keyboard input while the goal is being edited.
func (m Model) handleGoalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()

	case key.Matches(msg, m.keys.Confirm):
		goal := strings.TrimSpace(m.goalInput.Value())
		m.store.Dispatch(core.SetGoal{Goal: goal})
		m.status = "Goal updated."
		m.mode = modeDashboard
		m.goalInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeDashboard
		m.goalInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.goalInput, cmd = m.goalInput.Update(msg)
	return m, cmd
}

// quit journals the session and ends the program.
func (m Model) quit() (Model, tea.Cmd) {
	m = m.recordSession()
	m.quitting = true
	return m, tea.Quit
}

// Finish ends the session outside the program loop, journaling it like a quit.
func (m Model) Finish() Model {
	m, _ = m.quit()
	return m
}

// recordSession journals the session once, if any decision was made.
func (m Model) recordSession() Model {
	if m.journal == nil || m.saved {
		return m
	}

	state := m.store.State()
	if !state.HasDecisions() {
		return m
	}

	rec := storage.NewSessionRecord(m.opts.SessionID, m.opts.Player, state)
	if _, err := m.journal.SaveSession(rec); err != nil {
		m.saveErr = err
		return m
	}
	m.opts.SessionID = rec.SessionID
	m.saved = true
	return m
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	state := m.store.State()
	dashboard := RenderDashboard(view.Build(state), state.Probability)
	decisions := RenderDecisions(m.catalog.List(), m.cursor)

	var body string
	if m.opts.Width >= minWidthForColumns {
		body = lipgloss.JoinHorizontal(lipgloss.Top, dashboard, " ", decisions)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, dashboard, decisions)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")

	if m.mode == modeGoal {
		b.WriteString(m.goalInput.View())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("enter: save  esc: cancel"))
		b.WriteString("\n")
		return b.String()
	}

	if m.status != "" {
		b.WriteString(labelStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")

	return b.String()
}

// State returns the current game state of the session.
func (m Model) State() core.GameState {
	return m.store.State()
}

// Saved reports whether the session was journaled.
func (m Model) Saved() bool {
	return m.saved
}

// SaveErr returns the error from the last journaling attempt, if any.
func (m Model) SaveErr() error {
	return m.saveErr
}

// Size returns the last known terminal size.
func (m Model) Size() (int, int) {
	return m.opts.Width, m.opts.Height
}

// RunResult holds the outcome of running the game screen.
type RunResult struct {
	Model        Model
	WantsHistory bool
}

// Run starts the Bubble Tea program for m and returns when the player quits
// or asks for the history screen.
func Run(m Model) (RunResult, error) {
	m = m.resume()

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return RunResult{Model: m}, err
	}

	final, ok := finalModel.(Model)
	if !ok {
		return RunResult{Model: m}, nil
	}

	return RunResult{
		Model:        final,
		WantsHistory: final.openHistory,
	}, nil
}

// WantsHistory reports whether the player asked for the history screen.
func (m Model) WantsHistory() bool {
	return m.openHistory
}

// IsQuitting returns true if the player requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// resume clears the exit flags so the model can be shown again.
func (m Model) resume() Model {
	m.quitting = false
	m.openHistory = false
	return m
}
