// Package tui provides the Bubble Tea integration for the snake game.
// It handles the terminal UI loop, input mapping, tick scheduling and drawing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger one game tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a single tick after delay.
// The model asks for the next one only while the game is running, so the
// chain stops by itself on game over.
func tickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
