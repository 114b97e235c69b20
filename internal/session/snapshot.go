package session

import "github.com/vovakirdan/t2048/internal/engine"

// Snapshot is a serializable view of a session, used by the MCP tools
// and the CLI and by determinism tests.
type Snapshot struct {
	Grid        engine.Grid `json:"grid"`
	Score       int         `json:"score"`
	Best        int         `json:"best"`
	Moves       int         `json:"moves"`
	MaxTile     int         `json:"max_tile"`
	Status      string      `json:"status"`
	KeepPlaying bool        `json:"keep_playing"`
	LegalMoves  []string    `json:"legal_moves"`
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	legal := make([]string, 0, len(engine.Directions))
	if s.CanMove() {
		for _, d := range engine.LegalMoves(s.grid) {
			legal = append(legal, d.String())
		}
	}

	return Snapshot{
		Grid:        s.grid,
		Score:       s.score,
		Best:        s.best,
		Moves:       s.moves,
		MaxTile:     engine.MaxTile(s.grid),
		Status:      s.status.String(),
		KeepPlaying: s.keepPlaying,
		LegalMoves:  legal,
	}
}
