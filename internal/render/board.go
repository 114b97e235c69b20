package render

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
)

// Tile geometry in screen cells. Tiles are separated by a one-cell gutter.
const (
	TileWidth  = 6
	TileHeight = 3

	BoardWidth  = engine.Size*(TileWidth+1) + 1
	BoardHeight = engine.Size*(TileHeight+1) + 1

	hudHeight = 3
	// MinWidth and MinHeight are the smallest screen the board fits on.
	MinWidth  = BoardWidth + 2
	MinHeight = hudHeight + BoardHeight + 2
)

// View is everything the board needs to draw one frame.
type View struct {
	Grid      engine.Grid
	Score     int
	Best      int
	Status    engine.Status
	WinBanner bool
	Anim      *Animator // nil or idle draws the grid as is
	Footer    string
}

// Layout locates the board on a screen of the given size.
func Layout(width, height int) core.Rect {
	x := (width - BoardWidth) / 2
	y := hudHeight + max((height-MinHeight)/2, 0)
	return core.NewRect(x, y, BoardWidth, BoardHeight)
}

// CellAt returns the grid cell under screen position (x, y).
func CellAt(board core.Rect, x, y int) (engine.Point, bool) {
	if !board.Contains(x, y) {
		return engine.Point{}, false
	}
	col := (x - board.X - 1) / (TileWidth + 1)
	row := (y - board.Y - 1) / (TileHeight + 1)
	if col < 0 || col >= engine.Size || row < 0 || row >= engine.Size {
		return engine.Point{}, false
	}
	return engine.Point{Row: row, Col: col}, true
}

// Draw renders v onto dst.
func Draw(dst *core.Screen, v View) {
	dst.Clear()

	screen := dst.Bounds()
	if screen.W < MinWidth || screen.H < MinHeight {
		drawTooSmall(dst)
		return
	}

	board := Layout(screen.W, screen.H)
	drawHUD(dst, board, v)
	drawBoard(dst, board)

	if v.Anim != nil && v.Anim.Active() {
		drawAnimated(dst, board, v.Anim)
	} else {
		for _, t := range Tiles(v.Grid) {
			x, y := tileOrigin(board, t.Row, t.Col)
			drawTile(dst, x, y, t.Value, styleNormal)
		}
	}

	drawOverlays(dst, board, v)

	if v.Footer != "" {
		dst.DrawTextCentered(board.Bottom()+1, v.Footer, core.ColorMuted)
	}
}

func drawTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorText)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight), core.ColorMuted)
}

func drawHUD(dst *core.Screen, board core.Rect, v View) {
	top := board.Y - hudHeight

	title := "2048"
	dst.DrawTextColor(board.X+(board.W-len(title))/2, top, title, core.ColorAccent, core.ColorDefault)

	score := fmt.Sprintf("Score %d", v.Score)
	dst.DrawTextColor(board.X, top+1, score, core.ColorText, core.ColorDefault)

	best := fmt.Sprintf("Best %d", v.Best)
	dst.DrawTextColor(board.Right()-len(best), top+1, best, core.ColorText, core.ColorDefault)

	maxStr := fmt.Sprintf("Max %d", engine.MaxTile(v.Grid))
	dst.DrawTextColor(board.X+(board.W-len(maxStr))/2, top+2, maxStr, core.ColorMuted, core.ColorDefault)
}

func drawBoard(dst *core.Screen, board core.Rect) {
	dst.DrawBox(board, core.ColorFrame)
	inner := core.NewRect(board.X+1, board.Y+1, board.W-2, board.H-2)
	dst.FillRect(inner, core.Cell{Rune: ' ', Bg: core.ColorBoard})

	for r := range engine.Size {
		for c := range engine.Size {
			x, y := tileOrigin(board, r, c)
			dst.FillRect(core.NewRect(x, y, TileWidth, TileHeight), core.Cell{Rune: ' ', Bg: core.ColorTileEmpty})
		}
	}
}

func tileOrigin(board core.Rect, row, col int) (int, int) {
	return board.X + 1 + col*(TileWidth+1), board.Y + 1 + row*(TileHeight+1)
}

// tileStyle selects how a tile is drawn during the pop phase.
type tileStyle int

const (
	styleNormal tileStyle = iota
	styleMerged
	styleSmall
)

func drawTile(dst *core.Screen, x, y, value int, style tileStyle) {
	bg := core.TileColor(value)
	fg := core.TileTextColor(value)
	if style == styleMerged {
		fg = core.ColorAccent
	}

	rect := core.NewRect(x, y, TileWidth, TileHeight)
	if style == styleSmall {
		rect = core.NewRect(x+1, y+1, TileWidth-2, 1)
	}
	dst.FillRect(rect, core.Cell{Rune: ' ', Color: fg, Bg: bg})

	label := strconv.Itoa(value)
	lx := x + (TileWidth-len(label))/2
	if len(label) > rect.W {
		lx = rect.X
		label = label[:rect.W]
	}
	dst.DrawText(lx, y+TileHeight/2, label) // colours come from the fill
}

func drawAnimated(dst *core.Screen, board core.Rect, anim *Animator) {
	t := anim.Progress()

	switch anim.Phase() {
	case PhaseSlide:
		for _, s := range anim.Slides() {
			fx, fy := tileOrigin(board, s.From.Row, s.From.Col)
			tx, ty := tileOrigin(board, s.To.Row, s.To.Col)
			drawTile(dst, core.Lerp(fx, tx, t), core.Lerp(fy, ty, t), s.Value, styleNormal)
		}

	case PhasePop:
		for _, tile := range anim.Tiles() {
			x, y := tileOrigin(board, tile.Row, tile.Col)
			style := styleNormal
			switch {
			case tile.New && t < 0.5:
				style = styleSmall
			case tile.Merged && t < 1:
				style = styleMerged
			}
			drawTile(dst, x, y, tile.Value, style)
		}
	}
}

func drawOverlays(dst *core.Screen, board core.Rect, v View) {
	switch {
	case v.Status == engine.Lost:
		drawOverlay(dst, board, core.ColorLose,
			"GAME OVER",
			fmt.Sprintf("Score: %d", v.Score),
			"R to play again")
	case v.Status == engine.Won && v.WinBanner:
		drawOverlay(dst, board, core.ColorWin,
			"YOU WIN!",
			"C keep going",
			"R new game")
	}
}

// drawOverlay draws a framed message box centered on the board.
func drawOverlay(dst *core.Screen, board core.Rect, accent core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len(line))
	}

	box := board.Centered(width+4, len(lines)+2)
	dst.FillRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, accent)

	for i, line := range lines {
		fg := core.ColorText
		if i == 0 {
			fg = accent
		}
		dst.DrawTextColor(box.X+(box.W-len(line))/2, box.Y+1+i, line, fg, core.ColorDefault)
	}
}
