// Package platform holds what every t2048 front end shares when it hosts
// games for remote clients.
package platform

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/t2048/internal/session"
	"github.com/vovakirdan/t2048/internal/storage"
)

// NewRand returns a tile generator seeded with seed, or with the clock
// when seed is 0.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// NewSession starts a game whose best score lives in the client's slot.
// With a nil store the best score is kept in memory and nothing is logged.
// A nil rng is seeded from the clock.
func NewSession(store *storage.Store, clientID string, logger *log.Logger, rng *rand.Rand) *session.Session {
	if rng == nil {
		rng = NewRand(0)
	}
	if store == nil {
		return session.New(session.NewMemoryStore(0), rng)
	}

	warn := func(err error) {
		if logger != nil {
			logger.Warn("score storage failed", "client", clientID, "error", err)
		}
	}

	slot := storage.NewBestSlot(store, clientID).OnError(warn)
	return session.New(slot, rng,
		session.WithRecorder(storage.NewResultLog(store, session.GameID, warn)),
	)
}
