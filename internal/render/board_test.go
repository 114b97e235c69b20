package render

import (
	"strings"
	"testing"

	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
)

func TestDrawBoard(t *testing.T) {
	s := core.NewScreen(80, 24)
	v := View{
		Grid:   engine.Grid{{2, 0, 0, 2048}, {}, {}, {0, 0, 128}},
		Score:  1234,
		Best:   5678,
		Status: engine.InProgress,
		Footer: "arrows move",
	}
	Draw(s, v)

	out := s.String()
	for _, want := range []string{"2048", "Score 1234", "Best 5678", "Max 2048", "128", "arrows move"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q:\n%s", want, out)
		}
	}

	board := Layout(80, 24)
	x, y := tileOrigin(board, 3, 2)
	if bg := s.GetCell(x, y).Bg; bg != core.TileColor(128) {
		t.Errorf("tile background = %d, want %d", bg, core.TileColor(128))
	}
	x, y = tileOrigin(board, 1, 1)
	if bg := s.GetCell(x, y).Bg; bg != core.ColorTileEmpty {
		t.Errorf("empty slot background = %d, want %d", bg, core.ColorTileEmpty)
	}
}

func TestDrawTooSmall(t *testing.T) {
	s := core.NewScreen(20, 10)
	Draw(s, View{})
	if !strings.Contains(s.String(), "Window too small") {
		t.Errorf("expected size warning:\n%s", s.String())
	}
}

func TestDrawOverlays(t *testing.T) {
	tests := []struct {
		name   string
		view   View
		want   string
		absent string
	}{
		{"lost", View{Status: engine.Lost, Score: 99}, "GAME OVER", "YOU WIN!"},
		{"won banner", View{Status: engine.Won, WinBanner: true}, "YOU WIN!", "GAME OVER"},
		{"won dismissed", View{Status: engine.Won}, "", "YOU WIN!"},
		{"playing", View{Status: engine.InProgress}, "", "GAME OVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewScreen(80, 24)
			Draw(s, tt.view)
			out := s.String()
			if tt.want != "" && !strings.Contains(out, tt.want) {
				t.Errorf("missing %q:\n%s", tt.want, out)
			}
			if strings.Contains(out, tt.absent) {
				t.Errorf("unexpected %q:\n%s", tt.absent, out)
			}
		})
	}
}

func TestDrawSlidePhase(t *testing.T) {
	a := NewAnimator(8, 6)
	before := engine.Grid{{0, 0, 0, 64}}
	after := engine.Grid{{64}}
	a.Start(before, after, engine.Left, nil)

	s := core.NewScreen(80, 24)
	Draw(s, View{Grid: after, Anim: a})

	// at the start of the slide the tile is still on the right
	board := Layout(80, 24)
	x, y := tileOrigin(board, 0, 3)
	if bg := s.GetCell(x, y).Bg; bg != core.TileColor(64) {
		t.Errorf("tile should start at its old cell, bg = %d", bg)
	}
	x, y = tileOrigin(board, 0, 0)
	if bg := s.GetCell(x, y).Bg; bg != core.ColorTileEmpty {
		t.Errorf("destination should still be empty, bg = %d", bg)
	}
}

func TestCellAt(t *testing.T) {
	board := Layout(80, 24)
	for r := range engine.Size {
		for c := range engine.Size {
			x, y := tileOrigin(board, r, c)
			p, ok := CellAt(board, x+1, y+1)
			if !ok || p != (engine.Point{Row: r, Col: c}) {
				t.Errorf("CellAt inside tile (%d,%d) = %+v, %v", r, c, p, ok)
			}
		}
	}
	if _, ok := CellAt(board, 0, 0); ok {
		t.Error("CellAt outside board should fail")
	}
}
