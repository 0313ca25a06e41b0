package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/future-self/internal/core"
	"github.com/vovakirdan/future-self/internal/storage"
)

// History layout constants
const (
	minWidthForDetail = 100 // Minimum width to show the decision detail panel
	detailWidth       = 34  // Width of the detail panel
)

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "h", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the journal of past sessions.
type HistoryModel struct {
	store      *storage.Store
	limit      int
	sessions   []storage.SessionRecord
	stats      *storage.Stats
	decisions  []core.Decision // Decisions of the highlighted session
	loadErr    error
	table      table.Model
	help       help.Model
	keys       HistoryKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
	showDetail bool
}

// NewHistoryModel creates a new history model showing up to limit sessions.
func NewHistoryModel(store *storage.Store, limit, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		store:      store,
		limit:      limit,
		keys:       DefaultHistoryKeyMap(),
		help:       h,
		width:      width,
		height:     height,
		showDetail: width >= minWidthForDetail,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Player", Width: 10},
		{Title: "Goal", Width: 24},
		{Title: "Prob", Width: 6},
		{Title: "Dec", Width: 4},
		{Title: "Warn", Width: 4},
	}

	tableWidth := m.width - 4
	if m.showDetail {
		tableWidth -= detailWidth + 3
	}

	// Give spare width to the goal column
	fixed := 12 + 10 + 6 + 4 + 4 + 12 // Columns plus cell padding
	if goalWidth := tableWidth - fixed; goalWidth > 24 {
		columns[2].Width = min(goalWidth, 48)
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads sessions and stats from the journal.
func (m *HistoryModel) load() {
	m.sessions = nil
	m.stats = nil
	m.loadErr = nil

	if m.store != nil {
		sessions, err := m.store.RecentSessions(m.limit)
		if err != nil {
			m.loadErr = err
		} else {
			m.sessions = sessions
		}

		if stats, err := m.store.Stats(); err == nil {
			m.stats = stats
		}
	}

	m.updateTableRows()
	m.loadDecisions()
}

// updateTableRows updates the table with current sessions.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.sessions))
	for i, s := range m.sessions {
		goal := s.Goal
		if goal == "" {
			goal = "-"
		}
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			s.CreatedAt.Format("Jan 02 15:04"),
			player,
			goal,
			fmt.Sprintf("%d%%", s.Probability),
			fmt.Sprintf("%d", s.DecisionCount),
			fmt.Sprintf("%d", len(s.Warnings)),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// loadDecisions loads the decisions of the highlighted session.
func (m *HistoryModel) loadDecisions() {
	m.decisions = nil
	if m.store == nil || !m.showDetail {
		return
	}

	i := m.table.Cursor()
	if i < 0 || i >= len(m.sessions) {
		return
	}

	decisions, err := m.store.SessionDecisions(m.sessions[i].SessionID)
	if err == nil {
		m.decisions = decisions
	}
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadDecisions()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showDetail = m.width >= minWidthForDetail
		m.table = m.createTable()
		m.updateTableRows()
		m.loadDecisions()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("PAST SESSIONS"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.statsLine()))
	b.WriteString("\n\n")

	tablePanel := panelStyle.Render(m.renderTableContent())
	if m.showDetail {
		detail := panelStyle.Width(detailWidth).Render(m.renderDetail())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tablePanel, "  ", detail))
	} else {
		b.WriteString(tablePanel)
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the journal in one line.
func (m HistoryModel) statsLine() string {
	if m.store == nil {
		return "History is unavailable: no database."
	}
	if m.stats == nil || m.stats.Sessions == 0 {
		return "No sessions recorded yet."
	}
	return fmt.Sprintf("%d sessions  |  best %d%%  |  worst %d%%  |  average %.0f%%  |  at risk %d",
		m.stats.Sessions, m.stats.BestProbability, m.stats.WorstProbability,
		m.stats.AvgProbability, m.stats.AtRisk)
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if m.loadErr != nil {
		return warningStyle.Render("Could not load history: " + m.loadErr.Error())
	}
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nMake a decision and quit to save one.")
	}
	return m.table.View()
}

// renderDetail lists the decisions of the highlighted session.
func (m HistoryModel) renderDetail() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Decisions"))

	if len(m.decisions) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("none"))
		return b.String()
	}

	for i, d := range m.decisions {
		fmt.Fprintf(&b, "\n%2d. %-18s %s", i+1, d.Type, formatDelta(d.ProbChange))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to the game.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen.
// Returns true if user wants to go back to the game, false if quitting.
func RunHistory(store *storage.Store, limit, width, height int) (goBack bool, err error) {
	model := NewHistoryModel(store, limit, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
