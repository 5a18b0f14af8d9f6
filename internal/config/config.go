// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config contains all configuration for the game.
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Snake  SnakeConfig  `yaml:"snake"`
	Timing TimingConfig `yaml:"timing"`
	Colors ColorConfig  `yaml:"colors"`
	Seed   int64        `yaml:"seed"` // 0 = random based on time
}

// GridConfig defines the board size.
type GridConfig struct {
	Cols      int `yaml:"cols"`
	Rows      int `yaml:"rows"`
	CellWidth int `yaml:"cell_width"` // Terminal columns per board cell
}

// Point is a board position in config files.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// SnakeConfig defines the starting snake.
type SnakeConfig struct {
	Start     []Point `yaml:"start"` // Head first
	Direction string  `yaml:"direction"`
}

// TimingConfig defines the simulation speed.
type TimingConfig struct {
	TickMS int `yaml:"tick_ms"`
}

// ColorConfig names the colors used when drawing.
type ColorConfig struct {
	Snake  string `yaml:"snake"`
	Head   string `yaml:"head"`
	Food   string `yaml:"food"`
	Border string `yaml:"border"`
	Text   string `yaml:"text"`
}

// Palette is ColorConfig resolved to core colors.
type Palette struct {
	Snake  core.Color
	Head   core.Color
	Food   core.Color
	Border core.Color
	Text   core.Color
}

// TickDelay returns the delay between two snake moves.
func (c Config) TickDelay() time.Duration {
	return time.Duration(c.Timing.TickMS) * time.Millisecond
}

// StartBody converts the configured start cells to game cells.
func (c Config) StartBody() []snake.Cell {
	body := make([]snake.Cell, len(c.Snake.Start))
	for i, p := range c.Snake.Start {
		body[i] = snake.Cell{X: p.X, Y: p.Y}
	}
	return body
}

// StartDirection returns the configured heading, Up when unset.
func (c Config) StartDirection() snake.Direction {
	if d, ok := snake.ParseDirection(c.Snake.Direction); ok {
		return d
	}
	return snake.DirUp
}

// GameOptions returns the options that build a game from this config.
// The seed is passed separately since the platform picks one per session.
func (c Config) GameOptions() []snake.Option {
	return []snake.Option{
		snake.WithGrid(c.Grid.Cols, c.Grid.Rows),
		snake.WithStartBody(c.StartBody()),
		snake.WithStartDirection(c.StartDirection()),
	}
}

// Palette resolves color names; unknown names fall back to the default color.
func (c Config) Palette() Palette {
	return Palette{
		Snake:  lookupColor(c.Colors.Snake),
		Head:   lookupColor(c.Colors.Head),
		Food:   lookupColor(c.Colors.Food),
		Border: lookupColor(c.Colors.Border),
		Text:   lookupColor(c.Colors.Text),
	}
}

func lookupColor(name string) core.Color {
	color, _ := core.ParseColor(name)
	return color
}

// Validate checks that the config describes a playable game.
func (c Config) Validate() error {
	if c.Grid.Cols < 2 || c.Grid.Rows < 2 {
		return fmt.Errorf("%w: grid must be at least 2x2, got %dx%d", ErrInvalid, c.Grid.Cols, c.Grid.Rows)
	}
	if c.Grid.CellWidth < 1 || c.Grid.CellWidth > 4 {
		return fmt.Errorf("%w: cell_width must be between 1 and 4, got %d", ErrInvalid, c.Grid.CellWidth)
	}
	if c.Timing.TickMS <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalid, c.Timing.TickMS)
	}
	if c.Snake.Direction != "" {
		if _, ok := snake.ParseDirection(c.Snake.Direction); !ok {
			return fmt.Errorf("%w: unknown direction %q", ErrInvalid, c.Snake.Direction)
		}
	}
	if err := c.validateStart(); err != nil {
		return err
	}
	for field, name := range map[string]string{
		"snake":  c.Colors.Snake,
		"head":   c.Colors.Head,
		"food":   c.Colors.Food,
		"border": c.Colors.Border,
		"text":   c.Colors.Text,
	} {
		if name == "" {
			continue
		}
		if _, ok := core.ParseColor(name); !ok {
			return fmt.Errorf("%w: colors.%s: unknown color %q", ErrInvalid, field, name)
		}
	}
	return nil
}

// validateStart enforces the snake invariants on the start body: non-empty,
// inside the grid, distinct, contiguous, with room left for food, and not
// pointed straight back into its own neck.
func (c Config) validateStart() error {
	start := c.Snake.Start
	if len(start) == 0 {
		return fmt.Errorf("%w: snake.start must have at least one cell", ErrInvalid)
	}
	if len(start) >= c.Grid.Cols*c.Grid.Rows {
		return fmt.Errorf("%w: snake.start leaves no room for food", ErrInvalid)
	}

	board := core.NewRect(0, 0, c.Grid.Cols, c.Grid.Rows)
	seen := make(map[Point]bool, len(start))
	for i, p := range start {
		if !board.Contains(p.X, p.Y) {
			return fmt.Errorf("%w: snake.start[%d] (%d,%d) is outside the grid", ErrInvalid, i, p.X, p.Y)
		}
		if seen[p] {
			return fmt.Errorf("%w: snake.start[%d] (%d,%d) is repeated", ErrInvalid, i, p.X, p.Y)
		}
		seen[p] = true
		if i > 0 {
			prev := start[i-1]
			if abs(p.X-prev.X)+abs(p.Y-prev.Y) != 1 {
				return fmt.Errorf("%w: snake.start[%d] is not adjacent to snake.start[%d]", ErrInvalid, i, i-1)
			}
		}
	}

	if len(start) > 1 {
		delta := c.StartDirection().Delta()
		next := Point{X: start[0].X + delta.X, Y: start[0].Y + delta.Y}
		if next == start[1] {
			return fmt.Errorf("%w: snake.direction points into the body", ErrInvalid)
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
