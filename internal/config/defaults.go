package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// Default returns the built-in configuration: a 20x20 board, a three-cell
// snake heading up from (5,5) and a 100 ms tick.
func Default() Config {
	return Config{
		Grid: GridConfig{
			Cols:      20,
			Rows:      20,
			CellWidth: 2,
		},
		Snake: SnakeConfig{
			Start:     []Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 5, Y: 7}},
			Direction: "up",
		},
		Timing: TimingConfig{
			TickMS: 100,
		},
		Colors: ColorConfig{
			Snake:  "green",
			Head:   "bright-green",
			Food:   "red",
			Border: "gray",
			Text:   "white",
		},
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
