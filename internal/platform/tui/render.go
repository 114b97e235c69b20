package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/core"
)

// palette maps core colours to terminal colours. Tile shades follow the
// classic 2048 look; terminals without true colour get the closest match.
var palette = map[core.Color]lipgloss.TerminalColor{
	core.ColorFrame:     lipgloss.Color("#bbada0"),
	core.ColorText:      lipgloss.Color("#f9f6f2"),
	core.ColorDarkText:  lipgloss.Color("#776e65"),
	core.ColorMuted:     lipgloss.Color("245"),
	core.ColorAccent:    lipgloss.Color("#edc22e"),
	core.ColorWin:       lipgloss.Color("#edc22e"),
	core.ColorLose:      lipgloss.Color("#f65e3b"),
	core.ColorBoard:     lipgloss.Color("#bbada0"),
	core.ColorTileEmpty: lipgloss.Color("#cdc1b4"),

	core.ColorTile2:     lipgloss.Color("#eee4da"),
	core.ColorTile4:     lipgloss.Color("#ede0c8"),
	core.ColorTile8:     lipgloss.Color("#f2b179"),
	core.ColorTile16:    lipgloss.Color("#f59563"),
	core.ColorTile32:    lipgloss.Color("#f67c5f"),
	core.ColorTile64:    lipgloss.Color("#f65e3b"),
	core.ColorTile128:   lipgloss.Color("#edcf72"),
	core.ColorTile256:   lipgloss.Color("#edcc61"),
	core.ColorTile512:   lipgloss.Color("#edc850"),
	core.ColorTile1024:  lipgloss.Color("#edc53f"),
	core.ColorTile2048:  lipgloss.Color("#edc22e"),
	core.ColorTileSuper: lipgloss.Color("#3c3a32"),
}

// ScreenRenderer converts Screen buffers to styled strings for one output.
type ScreenRenderer struct {
	r *lipgloss.Renderer
}

// NewScreenRenderer creates a renderer for r; nil uses the default renderer.
func NewScreenRenderer(r *lipgloss.Renderer) ScreenRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return ScreenRenderer{r: r}
}

// Render converts a Screen buffer to a styled string.
// Adjacent cells with the same colours share one style run.
func (sr ScreenRenderer) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Bg != start.Bg {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(sr.style(start.Color, start.Bg).Render(run.String()))
		}
	}
	return sb.String()
}

func (sr ScreenRenderer) style(fg, bg core.Color) lipgloss.Style {
	style := sr.r.NewStyle()
	if c, ok := palette[fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[bg]; ok {
		style = style.Background(c)
	}
	return style
}
