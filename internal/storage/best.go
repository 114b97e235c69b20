package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/t2048/internal/session"
)

// BestValue returns the raw stored best-score value for a client.
// ok is false when the client has no value.
func (s *Store) BestValue(clientID string) (value string, ok bool, err error) {
	err = s.db.QueryRow(
		"SELECT value FROM best_scores WHERE client_id = ?",
		clientID,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read best score: %w", err)
	}
	return value, true, nil
}

// SetBestValue stores a raw best-score value for a client.
func (s *Store) SetBestValue(clientID, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (client_id, value, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(client_id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		clientID, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write best score: %w", err)
	}
	return nil
}

// ParseBest interprets a stored best-score value.
// Anything that is not a non-negative integer reads as 0.
func ParseBest(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// BestSlot is one client's best score, usable as a session score store.
type BestSlot struct {
	store    *Store
	clientID string
	onError  func(error)
}

// NewBestSlot binds a best-score slot to a client.
func NewBestSlot(store *Store, clientID string) *BestSlot {
	return &BestSlot{store: store, clientID: clientID}
}

// OnError registers a callback for read and write failures, which are
// otherwise swallowed.
func (b *BestSlot) OnError(fn func(error)) *BestSlot {
	b.onError = fn
	return b
}

// ClientID returns the slot key.
func (b *BestSlot) ClientID() string {
	return b.clientID
}

// Get returns the stored best score, or 0 when it is missing, malformed or unreadable.
func (b *BestSlot) Get() int {
	raw, ok, err := b.store.BestValue(b.clientID)
	if err != nil {
		b.report(err)
		return 0
	}
	if !ok {
		return 0
	}
	return ParseBest(raw)
}

// Set stores a new best score.
func (b *BestSlot) Set(best int) {
	if err := b.store.SetBestValue(b.clientID, strconv.Itoa(best)); err != nil {
		b.report(err)
	}
}

func (b *BestSlot) report(err error) {
	if b.onError != nil {
		b.onError(err)
	}
}

// ResultLog records finished games of one game ID into the scores table.
type ResultLog struct {
	store   *Store
	gameID  string
	onError func(error)
}

// NewResultLog creates a result log for gameID.
func NewResultLog(store *Store, gameID string, onError func(error)) *ResultLog {
	return &ResultLog{store: store, gameID: gameID, onError: onError}
}

// RecordGame appends a finished game to the log.
func (r *ResultLog) RecordGame(res session.Result) {
	_, err := r.store.SaveGame(ScoreEntry{
		GameID:  r.gameID,
		Score:   res.Score,
		MaxTile: res.MaxTile,
		Moves:   res.Moves,
		Won:     res.Won,
	})
	if err != nil && r.onError != nil {
		r.onError(err)
	}
}
