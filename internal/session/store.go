package session

import "sync"

// MemoryStore is a ScoreStore held in memory.
// Used when no database is available and in tests.
type MemoryStore struct {
	mu   sync.Mutex
	best int
	sets int
}

// NewMemoryStore creates a store holding best.
func NewMemoryStore(best int) *MemoryStore {
	return &MemoryStore{best: best}
}

// Get returns the stored best score.
func (m *MemoryStore) Get() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best
}

// Set replaces the stored best score.
func (m *MemoryStore) Set(best int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = best
	m.sets++
}

// Writes returns how many times Set was called.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}
