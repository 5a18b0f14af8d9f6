package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// ansiIndex is the terminal palette entry used for each core.Color.
// ColorDefault is absent and keeps the terminal's own foreground.
var ansiIndex = map[core.Color]lipgloss.Color{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

// painter turns a core.Screen into styled text for one output.
// Its styles belong to that output's renderer, so an SSH session is
// colored for the remote terminal and not for the server's stdout.
type painter struct {
	plain  lipgloss.Style
	styles map[core.Color]lipgloss.Style
}

func newPainter(r *lipgloss.Renderer) painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := painter{
		plain:  r.NewStyle(),
		styles: make(map[core.Color]lipgloss.Style, len(ansiIndex)),
	}
	for c, idx := range ansiIndex {
		p.styles[c] = r.NewStyle().Foreground(idx)
	}
	return p
}

func (p painter) style(c core.Color) lipgloss.Style {
	if s, ok := p.styles[c]; ok {
		return s
	}
	return p.plain
}

// paint renders the whole screen, one line per row.
func (p painter) paint(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = p.paintRow(s, y)
	}
	return strings.Join(rows, "\n")
}

// paintRow emits one styled span per stretch of equally colored cells.
func (p painter) paintRow(s *core.Screen, y int) string {
	var (
		out   strings.Builder
		span  []rune
		color core.Color
	)
	flush := func() {
		if len(span) > 0 {
			out.WriteString(p.style(color).Render(string(span)))
			span = span[:0]
		}
	}

	for x := range s.Width() {
		cell := s.GetCell(x, y)
		if cell.Color != color {
			flush()
			color = cell.Color
		}
		span = append(span, cell.Rune)
	}
	flush()
	return out.String()
}
