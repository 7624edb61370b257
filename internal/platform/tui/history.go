package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vitamin-drop/internal/storage"
)

const maxHistoryRounds = 100

// HistorySource is the read side of the play history.
type HistorySource interface {
	RecentRounds(limit int) ([]storage.RoundResult, error)
	VitaminStats() ([]storage.VitaminStats, error)
}

// HistoryTab selects which table the history view shows.
type HistoryTab int

const (
	TabRecent HistoryTab = iota
	TabVitamins
)

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Tab  key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Tab, k.Quit}}
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
		Tab: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right"),
			key.WithHelp("tab", "switch view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the history screen.
type HistoryModel struct {
	source   HistorySource
	tab      HistoryTab
	rounds   []storage.RoundResult
	stats    []storage.VitaminStats
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history model and loads both tables.
func NewHistoryModel(source HistorySource, width, height int) HistoryModel {
	m := HistoryModel{
		source: source,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.load()
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *HistoryModel) load() {
	if m.source == nil {
		return
	}
	rounds, err := m.source.RecentRounds(maxHistoryRounds)
	if err != nil {
		m.err = err
		return
	}
	stats, err := m.source.VitaminStats()
	if err != nil {
		m.err = err
		return
	}
	m.rounds, m.stats = rounds, stats
}

func (m *HistoryModel) columns() []table.Column {
	if m.tab == TabVitamins {
		return []table.Column{
			{Title: "Vitamin", Width: 8},
			{Title: "Plays", Width: 6},
			{Title: "Mistakes", Width: 9},
			{Title: "Avg", Width: 6},
			{Title: "Best", Width: 8},
			{Title: "Last played", Width: 14},
		}
	}
	return []table.Column{
		{Title: "#", Width: 5},
		{Title: "Vitamin", Width: 8},
		{Title: "Placed", Width: 7},
		{Title: "Mistakes", Width: 9},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
		{Title: "Session", Width: 10},
	}
}

func (m *HistoryModel) createTable() table.Model {
	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(height), // Leave room for header, help, and margins
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

// Rows returns the rows of the active tab.
func (m HistoryModel) Rows() []table.Row {
	if m.tab == TabVitamins {
		rows := make([]table.Row, len(m.stats))
		for i, v := range m.stats {
			rows[i] = table.Row{
				v.Vitamin,
				fmt.Sprintf("%d", v.Plays),
				fmt.Sprintf("%d", v.Mistakes),
				fmt.Sprintf("%.1f", v.AvgMistakes),
				formatDuration(v.BestDuration),
				formatDate(v.LastPlayed),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.RoundIndex+1),
			r.Vitamin,
			fmt.Sprintf("%d", r.Placed),
			fmt.Sprintf("%d", r.Mistakes),
			formatDuration(r.Duration),
			formatDate(r.CreatedAt),
			shortID(r.SessionID),
		}
	}
	return rows
}

func (m *HistoryModel) updateTableRows() {
	m.table.SetRows(m.Rows())
	m.table.GotoTop()
}

// Tab returns the active tab.
func (m HistoryModel) Tab() HistoryTab {
	return m.tab
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.tab = 1 - m.tab
			m.table = m.createTable()
			m.updateTableRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "HISTORY - recent rounds"
	if m.tab == TabVitamins {
		title = "HISTORY - by vitamin"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(boxStyle.Render(m.renderTableContent()))

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m HistoryModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render("Could not read history:\n" + m.err.Error())
	}
	if len(m.table.Rows()) == 0 {
		return emptyStyle.Render("No rounds recorded yet.\nPlay a game to start your history!")
	}
	return m.table.View()
}

// shortID trims a session UUID to its first block, which
// "vitamins history --session" accepts as a prefix.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 02 15:04")
}

// RunHistory runs the history screen.
func RunHistory(source HistorySource, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(source, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
