package core

import "time"

// RuntimeConfig contains per-session settings passed to the platform layer.
type RuntimeConfig struct {
	ScreenW   int           // Screen width in characters
	ScreenH   int           // Screen height in characters
	TickDelay time.Duration // Delay between two snake moves
	Seed      int64         // RNG seed; 0 means use current time
}
