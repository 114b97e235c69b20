// Package session owns the state of one 2048 game: the grid, score,
// best score and status. A Session is driven by exactly one caller at a
// time; the hosting surface (TUI, SSH, web socket, MCP) serializes input.
package session

import (
	"math/rand"

	"github.com/vovakirdan/t2048/internal/engine"
)

// GameID identifies 2048 results in the score log.
const GameID = "2048"

// ScoreStore persists the best score of one client.
// Get returns 0 when no value is stored or the stored value is unusable.
type ScoreStore interface {
	Get() int
	Set(best int)
}

// Result summarises a finished game for the score log.
type Result struct {
	Score   int
	MaxTile int
	Moves   int
	Won     bool // 2048 was reached at some point, even if the game ended Lost
}

// Recorder receives every finished game.
type Recorder interface {
	RecordGame(r Result)
}

// Outcome describes what a single move did.
type Outcome struct {
	Direction  engine.Direction
	Before     engine.Grid
	After      engine.Grid
	Spawned    engine.Placement
	ScoreDelta int
	Changed    bool
	Status     engine.Status
	JustWon    bool
	NewBest    bool
}

// Session is one game of 2048 with its score bookkeeping.
type Session struct {
	store    ScoreStore
	recorder Recorder
	spawner  *engine.Spawner

	grid   engine.Grid
	score  int
	best   int
	moves  int
	status engine.Status

	keepPlaying bool // Win banner dismissed
	recorded    bool // Final score already handed to the recorder
	lastSpawns  []engine.Placement
}

// Option configures a Session.
type Option func(*Session)

// WithRecorder reports finished games to r.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// New starts a fresh game. The best score is read from store once, here.
func New(store ScoreStore, rng *rand.Rand, opts ...Option) *Session {
	if store == nil {
		store = NewMemoryStore(0)
	}

	s := &Session{
		store:   store,
		spawner: engine.NewSpawner(rng),
		best:    max(store.Get(), 0),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.reset()
	return s
}

// Restart abandons the current game and starts a new one.
// Score resets to 0; the best score is kept.
func (s *Session) Restart() {
	s.finish()
	s.reset()
}

func (s *Session) reset() {
	s.grid = engine.Grid{}
	s.score = 0
	s.moves = 0
	s.status = engine.InProgress
	s.keepPlaying = false
	s.recorded = false
	s.lastSpawns = s.lastSpawns[:0]

	for range 2 {
		var p engine.Placement
		s.grid, p, _ = s.spawner.Spawn(s.grid)
		s.lastSpawns = append(s.lastSpawns, p)
	}
}

// Move applies one move. A move that changes nothing, or any move after
// the game is lost, leaves the session untouched. Winning does not stop
// play; the board stays steerable and can still be lost.
func (s *Session) Move(dir engine.Direction) Outcome {
	out := Outcome{
		Direction: dir,
		Before:    s.grid,
		After:     s.grid,
		Status:    s.status,
	}

	if !dir.Valid() || !s.CanMove() {
		return out
	}

	res := engine.ApplyMove(s.grid, dir)
	if !res.Changed {
		return out
	}

	s.grid = res.Grid
	s.score += res.ScoreDelta
	s.moves++

	s.grid, out.Spawned, _ = s.spawner.Spawn(s.grid)
	s.lastSpawns = append(s.lastSpawns[:0], out.Spawned)

	if res.ReachedWinValue && s.status != engine.Won {
		s.status = engine.Won
		out.JustWon = true
	}
	if engine.IsLost(s.grid) {
		s.status = engine.Lost
		s.finish()
	}

	if s.score > s.best {
		s.best = s.score
		s.store.Set(s.best)
		out.NewBest = true
	}

	out.After = s.grid
	out.ScoreDelta = res.ScoreDelta
	out.Changed = true
	out.Status = s.status
	return out
}

// KeepPlaying dismisses the win banner. The status stays Won;
// reaching 2048 again does not re-trigger it.
func (s *Session) KeepPlaying() {
	if s.status == engine.Won {
		s.keepPlaying = true
	}
}

// CanMove reports whether the session currently accepts moves.
func (s *Session) CanMove() bool {
	return s.status != engine.Lost
}

// ShowWinBanner reports whether surfaces should display the win overlay.
func (s *Session) ShowWinBanner() bool {
	return s.status == engine.Won && !s.keepPlaying
}

// finish hands the game to the recorder once per game.
func (s *Session) finish() {
	if s.recorded || s.recorder == nil || s.score == 0 {
		return
	}
	top := engine.MaxTile(s.grid)
	s.recorder.RecordGame(Result{
		Score:   s.score,
		MaxTile: top,
		Moves:   s.moves,
		Won:     top >= engine.WinValue,
	})
	s.recorded = true
}

// Grid returns a copy of the current grid.
func (s *Session) Grid() engine.Grid { return s.grid }

// Score returns the current score.
func (s *Session) Score() int { return s.score }

// Best returns the best score known to this session.
func (s *Session) Best() int { return s.best }

// Status returns the game status.
func (s *Session) Status() engine.Status { return s.status }

// Moves returns the number of grid-changing moves made this game.
func (s *Session) Moves() int { return s.moves }

// KeepingOn reports whether the player continued after winning.
func (s *Session) KeepingOn() bool { return s.keepPlaying }

// LastSpawns returns the tiles placed by the most recent move or restart.
func (s *Session) LastSpawns() []engine.Placement {
	return append([]engine.Placement(nil), s.lastSpawns...)
}
