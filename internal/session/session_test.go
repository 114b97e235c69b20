package session

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/t2048/internal/engine"
)

type countingRecorder struct {
	scores  []int
	results []Result
}

func (r *countingRecorder) RecordGame(res Result) {
	r.scores = append(r.scores, res.Score)
	r.results = append(r.results, res)
}

func newTestSession(t *testing.T, best int, opts ...Option) (*Session, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(best)
	return New(store, rand.New(rand.NewSource(7)), opts...), store
}

func countTiles(g engine.Grid) int {
	n := 0
	for r := range engine.Size {
		for c := range engine.Size {
			if g[r][c] != 0 {
				n++
			}
		}
	}
	return n
}

func TestNewSession(t *testing.T) {
	s, _ := newTestSession(t, 512)

	if got := countTiles(s.Grid()); got != 2 {
		t.Errorf("fresh grid has %d tiles, want 2", got)
	}
	for r := range engine.Size {
		for c := range engine.Size {
			if v := s.Grid()[r][c]; v != 0 && v != 2 && v != 4 {
				t.Errorf("unexpected starting tile %d", v)
			}
		}
	}
	if s.Score() != 0 {
		t.Errorf("Score() = %d, want 0", s.Score())
	}
	if s.Best() != 512 {
		t.Errorf("Best() = %d, want 512", s.Best())
	}
	if s.Status() != engine.InProgress {
		t.Errorf("Status() = %v, want in-progress", s.Status())
	}
	if len(s.LastSpawns()) != 2 {
		t.Errorf("LastSpawns() = %v, want 2 placements", s.LastSpawns())
	}
}

func TestNewSessionNegativeBest(t *testing.T) {
	s, _ := newTestSession(t, -20)
	if s.Best() != 0 {
		t.Errorf("Best() = %d, want 0", s.Best())
	}
}

func TestNewSessionNilStore(t *testing.T) {
	s := New(nil, rand.New(rand.NewSource(1)))
	if s.Best() != 0 {
		t.Errorf("Best() = %d, want 0", s.Best())
	}
	s.grid = engine.Grid{{2, 2}}
	s.Move(engine.Left)
	if s.Best() != 4 {
		t.Errorf("Best() = %d, want 4", s.Best())
	}
}

func TestMoveNoOp(t *testing.T) {
	s, store := newTestSession(t, 0)
	s.grid = engine.Grid{{2, 4}, {8}}

	out := s.Move(engine.Left)
	if out.Changed {
		t.Error("move into the wall should not change the grid")
	}
	if s.Grid() != (engine.Grid{{2, 4}, {8}}) {
		t.Errorf("grid changed on no-op:\n%v", s.Grid())
	}
	if s.Moves() != 0 || store.Writes() != 0 {
		t.Errorf("no-op counted: moves=%d writes=%d", s.Moves(), store.Writes())
	}
}

func TestMoveScoresAndSpawns(t *testing.T) {
	s, store := newTestSession(t, 0)
	s.grid = engine.Grid{{2, 2}}

	out := s.Move(engine.Left)
	if !out.Changed {
		t.Fatal("expected move to change the grid")
	}
	if out.ScoreDelta != 4 || s.Score() != 4 {
		t.Errorf("score delta=%d score=%d, want 4 and 4", out.ScoreDelta, s.Score())
	}
	if s.Grid()[0][0] != 4 {
		t.Errorf("merged tile = %d, want 4", s.Grid()[0][0])
	}
	if got := countTiles(s.Grid()); got != 2 {
		t.Errorf("grid has %d tiles after move, want merged tile plus spawn", got)
	}

	p := out.Spawned
	if p.At == (engine.Point{}) {
		t.Errorf("spawn landed on the merged tile at %v", p.At)
	}
	if s.Grid()[p.At.Row][p.At.Col] != p.Value {
		t.Errorf("spawn %v not reflected in grid", p)
	}

	if !out.NewBest || s.Best() != 4 || store.Get() != 4 {
		t.Errorf("best not updated: NewBest=%v best=%d stored=%d", out.NewBest, s.Best(), store.Get())
	}
	if s.Moves() != 1 {
		t.Errorf("Moves() = %d, want 1", s.Moves())
	}
}

func TestBestOnlyWrittenWhenExceeded(t *testing.T) {
	s, store := newTestSession(t, 100)
	s.grid = engine.Grid{{2, 2}}

	out := s.Move(engine.Left)
	if out.NewBest {
		t.Error("score 4 should not beat best 100")
	}
	if store.Writes() != 0 {
		t.Errorf("store written %d times, want 0", store.Writes())
	}
	if s.Best() != 100 {
		t.Errorf("Best() = %d, want 100", s.Best())
	}
}

func TestWinKeepsBoardSteerable(t *testing.T) {
	s, _ := newTestSession(t, 0)
	s.grid = engine.Grid{{1024, 1024}}

	out := s.Move(engine.Left)
	if !out.JustWon || s.Status() != engine.Won {
		t.Fatalf("expected win, got status %v JustWon=%v", s.Status(), out.JustWon)
	}
	if !s.ShowWinBanner() {
		t.Error("win banner should show after winning")
	}
	if !s.CanMove() {
		t.Error("board should stay steerable after a win")
	}

	out = s.Move(engine.Right)
	if !out.Changed {
		t.Error("move rejected after win")
	}
	if out.JustWon {
		t.Error("win re-triggered")
	}
	if s.Status() != engine.Won {
		t.Errorf("Status() = %v, won should be sticky", s.Status())
	}

	s.KeepPlaying()
	if s.ShowWinBanner() || !s.KeepingOn() {
		t.Error("KeepPlaying did not dismiss the banner")
	}
}

func TestWinThenLoss(t *testing.T) {
	s, _ := newTestSession(t, 0)
	s.grid = engine.Grid{
		{2048, 4, 2, 4},
		{4, 2, 4, 2},
		{8, 16, 8, 16},
		{32, 64, 32, 0},
	}
	s.status = engine.Won

	out := s.Move(engine.Right)
	if !out.Changed {
		t.Fatal("expected the last row to slide")
	}
	if s.Status() != engine.Lost {
		t.Errorf("dead board after a win reports %v, want lost", s.Status())
	}
}

func TestLossDetectedAndRecorded(t *testing.T) {
	rec := &countingRecorder{}
	s, _ := newTestSession(t, 0, WithRecorder(rec))
	s.grid = engine.Grid{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{8, 16, 8, 16},
		{32, 64, 32, 0},
	}
	s.score = 100

	out := s.Move(engine.Right)
	if !out.Changed {
		t.Fatal("expected the last row to slide")
	}
	if s.Status() != engine.Lost || out.Status != engine.Lost {
		t.Fatalf("Status() = %v, want lost", s.Status())
	}
	if len(rec.scores) != 1 || rec.scores[0] != 100 {
		t.Errorf("recorded %v, want [100]", rec.scores)
	}
	if got := rec.results[0]; got.MaxTile != 64 || got.Moves != 1 || got.Won {
		t.Errorf("recorded %+v, want max tile 64 after 1 move, not won", got)
	}

	before := s.Grid()
	for _, d := range engine.Directions {
		if out := s.Move(d); out.Changed {
			t.Errorf("move %v accepted after loss", d)
		}
	}
	if s.Grid() != before {
		t.Error("grid changed after loss")
	}

	s.Restart()
	if len(rec.scores) != 1 {
		t.Errorf("restart after loss recorded again: %v", rec.scores)
	}
	if s.Status() != engine.InProgress || s.Score() != 0 {
		t.Errorf("restart left status=%v score=%d", s.Status(), s.Score())
	}
	if s.Best() != 100 {
		t.Errorf("Best() = %d, want 100 after restart", s.Best())
	}
}

func TestRestartRecordsAbandonedGame(t *testing.T) {
	rec := &countingRecorder{}
	s, _ := newTestSession(t, 0, WithRecorder(rec))
	s.grid = engine.Grid{{2, 2}}
	s.Move(engine.Left)

	s.Restart()
	if len(rec.scores) != 1 || rec.scores[0] != 4 {
		t.Errorf("recorded %v, want [4]", rec.scores)
	}

	// nothing scored, nothing recorded
	s.Restart()
	if len(rec.scores) != 1 {
		t.Errorf("empty game recorded: %v", rec.scores)
	}
}

func TestKeepPlayingIgnoredWhileInProgress(t *testing.T) {
	s, _ := newTestSession(t, 0)
	s.KeepPlaying()
	if s.KeepingOn() {
		t.Error("KeepPlaying should only apply on the win screen")
	}
}

func TestInvalidDirection(t *testing.T) {
	s, _ := newTestSession(t, 0)
	before := s.Grid()
	if out := s.Move(engine.Direction(9)); out.Changed {
		t.Error("invalid direction changed the grid")
	}
	if s.Grid() != before {
		t.Error("grid mutated by invalid direction")
	}
}

func TestSessionsAreDeterministic(t *testing.T) {
	play := func() Snapshot {
		s := New(NewMemoryStore(0), rand.New(rand.NewSource(42)))
		for i := range 60 {
			s.Move(engine.Directions[i%len(engine.Directions)])
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if a.Grid != b.Grid || a.Score != b.Score || a.Moves != b.Moves {
		t.Errorf("same seed diverged:\n%v\n%v", a.Grid, b.Grid)
	}
}

func TestSnapshot(t *testing.T) {
	s, _ := newTestSession(t, 64)
	s.grid = engine.Grid{{2, 2}}
	s.score = 12

	snap := s.Snapshot()
	if snap.Score != 12 || snap.Best != 64 {
		t.Errorf("snapshot score=%d best=%d", snap.Score, snap.Best)
	}
	if snap.Status != "in-progress" {
		t.Errorf("snapshot status = %q", snap.Status)
	}
	if snap.MaxTile != 2 {
		t.Errorf("snapshot max tile = %d", snap.MaxTile)
	}
	want := []string{"left", "right", "down"}
	if len(snap.LegalMoves) != len(want) {
		t.Fatalf("legal moves = %v, want %v", snap.LegalMoves, want)
	}
	for i := range want {
		if snap.LegalMoves[i] != want[i] {
			t.Errorf("legal moves = %v, want %v", snap.LegalMoves, want)
		}
	}

	s.status = engine.Lost
	if got := s.Snapshot().LegalMoves; len(got) != 0 {
		t.Errorf("lost snapshot lists moves %v", got)
	}
}
