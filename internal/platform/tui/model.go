package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/vitamin-drop/internal/app"
	"github.com/vovakirdan/vitamin-drop/internal/core"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model driving one game.
type Model struct {
	game     *app.Game
	screen   *core.Screen
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	quitting bool
}

// NewModel creates a model for g. The game is owned by the caller, who
// closes it once the program ends.
func NewModel(g *app.Game, cfg core.RuntimeConfig) Model {
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	g.Resize(cfg.ScreenW, cfg.ScreenH)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:   g,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config: cfg,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := MapMouse(msg); ok {
			m.game.HandlePointer(ev)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.game.Tick(time.Time(msg))
		return m, tickCmd(m.config.TickRate)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionConfirm:
		if m.game.Screen() == app.ScreenMain {
			m.game.Start()
		}
	case core.ActionRestart:
		if m.game.Screen() == app.ScreenFinished {
			m.game.Restart()
		}
	case core.ActionBack:
		if m.game.Screen() == app.ScreenFinished {
			m.game.ShowScreen(app.ScreenMain)
		}
	case core.ActionMute:
		m.game.ToggleMute()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	Draw(m.game, m.screen)
	helpView := helpStyle.Render(m.help.View(m.keys))

	// Help replaces the bottom rows of the board, which Zones keeps free
	rows := strings.Count(helpView, "\n") + 1
	return trimRows(RenderScreen(m.screen), rows) + "\n" + helpView
}

// trimRows drops the last n lines of s.
func trimRows(s string, n int) string {
	for ; n > 0; n-- {
		idx := strings.LastIndexByte(s, '\n')
		if idx < 0 {
			return ""
		}
		s = s[:idx]
	}
	return s
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for g on the local terminal.
func Run(g *app.Game, cfg core.RuntimeConfig) error {
	model := NewModel(g, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
