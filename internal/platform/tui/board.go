package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/snake"
)

const (
	hudHeight  = 1
	cellGlyph  = '█'
	foodGlyph  = '●'
	borderSize = 2
)

// board receives the game's signals and keeps the last frame to draw.
// It is shared by pointer between copies of the Bubble Tea model.
type board struct {
	snake  []snake.Cell
	food   snake.Cell
	over   bool
	won    bool
	score  int
	frames uint64
	logger *log.Logger
}

// Render implements snake.Listener.
func (b *board) Render(cells []snake.Cell, food snake.Cell) {
	b.snake = cells
	b.food = food
	b.over = false
	b.won = false
	b.frames++
}

// GameOver implements snake.Listener.
func (b *board) GameOver(score int, won bool) {
	b.over = true
	b.won = won
	b.score = score
	b.logger.Info("game over", "score", score, "won", won, "length", len(b.snake))
}

// layout describes where the board sits on the screen.
type layout struct {
	cols, rows int
	cellWidth  int
}

func (l layout) width() int {
	return l.cols*l.cellWidth + borderSize
}

func (l layout) height() int {
	return hudHeight + l.rows + borderSize
}

// draw paints the HUD, the border, the food and the snake, then the overlay
// for the current run state. The screen is cleared first.
func (l layout) draw(dst *core.Screen, b *board, state snake.RunState, score int, p config.Palette) {
	dst.Clear()

	dst.DrawText(1, 0, fmt.Sprintf("SNAKE  Score: %d  Length: %d", score, len(b.snake)), p.Text)
	dst.DrawBox(core.NewRect(0, hudHeight, l.width(), l.rows+borderSize), p.Border)

	l.fill(dst, b.food, foodGlyph, p.Food)
	for i, c := range b.snake {
		color := p.Snake
		if i == 0 {
			color = p.Head
		}
		l.fill(dst, c, cellGlyph, color)
	}

	switch {
	case state == snake.StatePaused:
		l.overlay(dst, p.Text, "S N A K E", "Press Enter to start")
	case b.won:
		l.overlay(dst, p.Text, "YOU WIN", fmt.Sprintf("Score: %d - Enter to restart", b.score))
	case b.over:
		l.overlay(dst, p.Text, "GAME OVER", fmt.Sprintf("Score: %d - Enter to restart", b.score))
	}
}

// fill draws one board cell as cellWidth terminal columns.
func (l layout) fill(dst *core.Screen, c snake.Cell, glyph rune, color core.Color) {
	x := 1 + c.X*l.cellWidth
	y := hudHeight + 1 + c.Y
	for i := 0; i < l.cellWidth; i++ {
		dst.SetColored(x+i, y, glyph, color)
	}
}

// overlay draws a centered two-line message box over the board.
func (l layout) overlay(dst *core.Screen, color core.Color, line1, line2 string) {
	w := max(len([]rune(line1)), len([]rune(line2))) + 4
	w = min(w, dst.Width())
	h := 5
	x := (dst.Width() - w) / 2
	y := hudHeight + (l.rows+borderSize-h)/2

	box := core.NewRect(x, y, w, h)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)
	dst.DrawTextCentered(y+1, line1, color)
	dst.DrawTextCentered(y+3, line2, color)
}
