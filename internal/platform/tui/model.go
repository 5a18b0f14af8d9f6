package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// Model is the Bubble Tea model that owns one game and presents it.
// Key messages and tick messages are handled one at a time by the Bubble Tea
// loop, so the game needs no locking.
type Model struct {
	game    *snake.Game
	board   *board
	layout  layout
	screen  *core.Screen
	painter painter
	palette config.Palette
	delay   time.Duration
	keys    KeyMap
	help    help.Model
	logger  *log.Logger

	width    int
	height   int
	quitting bool
}

// NewModel creates a model with a fresh, paused game built from cfg.
// A nil logger discards log output.
func NewModel(cfg config.Config, rc core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	if rc.TickDelay <= 0 {
		rc.TickDelay = cfg.TickDelay()
	}

	b := &board{logger: logger}
	opts := append(cfg.GameOptions(), snake.WithSeed(rc.Seed), snake.WithListener(b))
	game := snake.New(opts...)

	l := layout{cols: game.Cols(), rows: game.Rows(), cellWidth: max(cfg.Grid.CellWidth, 1)}
	logger.Debug("game created", "cols", l.cols, "rows", l.rows, "tick", rc.TickDelay, "seed", rc.Seed)

	return Model{
		game:    game,
		board:   b,
		layout:  l,
		screen:  core.NewScreen(l.width(), l.height()),
		painter: newPainter(nil),
		palette: cfg.Palette(),
		delay:   rc.TickDelay,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		logger:  logger,
		width:   rc.ScreenW,
		height:  rc.ScreenH,
	}
}

// WithRenderer returns a copy of m that styles its frames with r.
func (m Model) WithRenderer(r *lipgloss.Renderer) Model {
	m.painter = newPainter(r)
	return m
}

// Game exposes the underlying game state.
func (m Model) Game() *snake.Game {
	return m.game
}

// Init implements tea.Model. The game waits for the start key.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.MapKey(msg)

	switch action {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Debug("quit", "score", m.game.Score())
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case core.ActionStart:
		return m, m.onStart()
	}

	if dir, ok := DirectionFor(action); ok {
		m.game.SetDirection(dir)
	}
	return m, nil
}

// onStart starts a paused game or restarts a finished one. The first move
// happens right away and the rest of the chain follows on the timer. A
// running game is left alone so that only one tick chain ever exists.
func (m Model) onStart() tea.Cmd {
	var started bool
	switch m.game.State() {
	case snake.StateRunning:
		return nil
	case snake.StateOver:
		started = m.game.Restart()
		m.logger.Info("game restarted")
	default:
		started = m.game.Start()
		m.logger.Info("game started")
	}

	if !started {
		return nil
	}
	return m.advance()
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	return m, m.advance()
}

// advance moves the snake once and schedules the next tick while it runs.
func (m Model) advance() tea.Cmd {
	if !m.game.Tick() {
		m.logger.Debug("tick chain ended", "state", m.game.DebugState())
		return nil
	}
	return tickCmd(m.delay)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	needW, needH := m.layout.width(), m.layout.height()+1
	if m.width > 0 && m.height > 0 && (m.width < needW || m.height < needH) {
		msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d", needW, needH, m.width, m.height)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	keys := m.keys
	if m.game.State() == snake.StateOver {
		keys.SetStartLabel("restart")
	}

	m.layout.draw(m.screen, m.board, m.game.State(), m.game.Score(), m.palette)
	content := lipgloss.JoinVertical(lipgloss.Left, m.painter.paint(m.screen), m.help.View(keys))

	if m.width <= 0 || m.height <= 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// Run starts the Bubble Tea program for a local game.
func Run(cfg config.Config, rc core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(cfg, rc, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
