// Package snake implements the grid snake game state machine.
// It contains pure logic with no terminal dependencies; the platform layer
// drives it with key presses and timer ticks and draws what it reports.
package snake

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Default board and starting position.
const (
	DefaultCols = 20
	DefaultRows = 20
)

// Cell is a position on the grid.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by delta.
func (c Cell) Add(delta Cell) Cell {
	return Cell{X: c.X + delta.X, Y: c.Y + delta.Y}
}

// DefaultStartBody returns the initial three-cell snake, head first.
func DefaultStartBody() []Cell {
	return []Cell{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}}
}

// RunState is the coarse phase of the game.
type RunState int

const (
	StatePaused RunState = iota
	StateRunning
	StateOver
)

func (s RunState) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Listener receives the game's output signals.
type Listener interface {
	// Render is called after Initialize/Restart and after every tick that
	// moved the snake. The slice is a copy owned by the listener.
	Render(snake []Cell, food Cell)

	// GameOver is called once per transition into StateOver.
	GameOver(score int, won bool)
}

type nopListener struct{}

func (nopListener) Render([]Cell, Cell) {}
func (nopListener) GameOver(int, bool)  {}

// Game holds the authoritative snake, food, direction and run state.
// It is not safe for concurrent use; the platform serializes calls.
type Game struct {
	board     core.Rect
	startBody []Cell
	startDir  Direction
	rng       *rand.Rand
	listener  Listener

	snake     []Cell // Head at index 0
	occupied  map[Cell]bool
	direction Direction
	food      Cell
	state     RunState
	score     int
	ticks     uint64
	won       bool
}

// Option configures a Game.
type Option func(*Game)

// WithGrid sets the board dimensions.
func WithGrid(cols, rows int) Option {
	return func(g *Game) {
		g.board = core.NewRect(0, 0, cols, rows)
	}
}

// WithStartBody sets the snake body used by Initialize and Restart.
func WithStartBody(body []Cell) Option {
	return func(g *Game) {
		g.startBody = slices.Clone(body)
	}
}

// WithStartDirection sets the direction used by Initialize and Restart.
func WithStartDirection(d Direction) Option {
	return func(g *Game) {
		g.startDir = d
	}
}

// WithSeed makes food placement reproducible.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithListener attaches the receiver of render and game over signals.
func WithListener(l Listener) Option {
	return func(g *Game) {
		g.SetListener(l)
	}
}

// New creates a game and initializes it into StatePaused.
func New(opts ...Option) *Game {
	g := &Game{
		board:     core.NewRect(0, 0, DefaultCols, DefaultRows),
		startBody: DefaultStartBody(),
		startDir:  DirUp,
		listener:  nopListener{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if len(g.startBody) == 0 {
		panic("snake: start body must not be empty")
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.Initialize()
	return g
}

// SetListener replaces the signal receiver. A nil listener discards signals.
func (g *Game) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	g.listener = l
}

// Initialize resets the snake, direction, score and food and pauses the game.
func (g *Game) Initialize() {
	g.reset()
	g.state = StatePaused
	g.emitRender()
}

func (g *Game) reset() {
	g.snake = slices.Clone(g.startBody)
	g.occupied = make(map[Cell]bool, len(g.snake))
	for _, c := range g.snake {
		g.occupied[c] = true
	}
	g.direction = g.startDir
	g.score = 0
	g.ticks = 0
	g.won = false
	if food, ok := g.SpawnFood(); ok {
		g.food = food
	}
}

// Start moves a paused game into StateRunning. It returns true when the
// caller must schedule the first tick; a running game is left untouched.
// Starting a finished game restarts it.
func (g *Game) Start() bool {
	switch g.state {
	case StateRunning:
		return false
	case StateOver:
		g.reset()
		g.emitRender()
	}
	g.state = StateRunning
	return true
}

// Restart is Initialize followed by Start.
func (g *Game) Restart() bool {
	g.Initialize()
	return g.Start()
}

// SetDirection requests a new heading for the next tick. Requests are
// ignored unless the game is running, and an exact reversal of the current
// heading is silently rejected.
func (g *Game) SetDirection(d Direction) {
	if g.state != StateRunning || !d.Valid() {
		return
	}
	if d.IsOpposite(g.direction) {
		return
	}
	g.direction = d
}

// Tick advances the snake by one cell. It returns true when the game is
// still running and the caller should schedule another tick.
func (g *Game) Tick() bool {
	if g.state != StateRunning {
		return false
	}
	g.ticks++

	newHead := g.snake[0].Add(g.direction.Delta())

	if !g.board.Contains(newHead.X, newHead.Y) {
		g.finish(false)
		return false
	}
	if g.occupied[newHead] {
		g.finish(false)
		return false
	}

	g.snake = slices.Insert(g.snake, 0, newHead)
	g.occupied[newHead] = true

	if newHead == g.food {
		g.score++
		food, ok := g.SpawnFood()
		if !ok {
			g.emitRender()
			g.finish(true)
			return false
		}
		g.food = food
	} else {
		tail := g.snake[len(g.snake)-1]
		g.snake = g.snake[:len(g.snake)-1]
		delete(g.occupied, tail)
	}

	g.emitRender()
	return true
}

// SpawnFood picks a cell uniformly at random among the cells not covered by
// the snake. It returns false when the snake fills the whole board.
func (g *Game) SpawnFood() (Cell, bool) {
	free := g.board.Area() - len(g.occupied)
	if free <= 0 {
		return Cell{}, false
	}

	// Walk the board and stop at the n-th free cell.
	n := g.rng.Intn(free)
	for y := g.board.Y; y < g.board.Bottom(); y++ {
		for x := g.board.X; x < g.board.Right(); x++ {
			c := Cell{X: x, Y: y}
			if g.occupied[c] {
				continue
			}
			if n == 0 {
				return c, true
			}
			n--
		}
	}
	return Cell{}, false
}

func (g *Game) finish(won bool) {
	g.state = StateOver
	g.won = won
	g.listener.GameOver(g.score, won)
}

func (g *Game) emitRender() {
	g.listener.Render(g.Snake(), g.food)
}

// Snake returns a copy of the body, head first.
func (g *Game) Snake() []Cell {
	return slices.Clone(g.snake)
}

// Head returns the first body cell.
func (g *Game) Head() Cell {
	return g.snake[0]
}

// Len returns the snake length.
func (g *Game) Len() int {
	return len(g.snake)
}

// Food returns the current food cell.
func (g *Game) Food() Cell {
	return g.food
}

// Direction returns the current heading.
func (g *Game) Direction() Direction {
	return g.direction
}

// State returns the run state.
func (g *Game) State() RunState {
	return g.state
}

// Score returns the number of food items eaten since the last reset.
func (g *Game) Score() int {
	return g.score
}

// Won reports whether the last game ended with the board full.
func (g *Game) Won() bool {
	return g.won
}

// Cols returns the board width in cells.
func (g *Game) Cols() int {
	return g.board.W
}

// Rows returns the board height in cells.
func (g *Game) Rows() int {
	return g.board.H
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Score: %d, State: %s\n", g.ticks, g.score, g.state)
	fmt.Fprintf(&b, "Snake len: %d, Direction: %s\n", len(g.snake), g.direction)
	fmt.Fprintf(&b, "Head: (%d, %d), Food: (%d, %d)\n", g.snake[0].X, g.snake[0].Y, g.food.X, g.food.Y)
	return b.String()
}
