package engine

import "math/rand"

// FourProbability is the chance that a spawned tile is a 4 instead of a 2.
const FourProbability = 0.1

// Placement is a tile placed on the grid by the spawner.
type Placement struct {
	At    Point
	Value int
}

// Spawner places new tiles using an injected random source.
// The same seed yields the same sequence of placements.
type Spawner struct {
	rng *rand.Rand
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng}
}

// Value draws a tile value: 2 with probability 0.9, otherwise 4.
func (s *Spawner) Value() int {
	if s.rng.Float64() < FourProbability {
		return 4
	}
	return 2
}

// Spawn places one tile in an empty cell chosen uniformly at random.
// Returns ok=false and the unchanged grid when the grid is full.
func (s *Spawner) Spawn(g Grid) (Grid, Placement, bool) {
	empty := EmptyCells(g)
	if len(empty) == 0 {
		return g, Placement{}, false
	}

	at := empty[s.rng.Intn(len(empty))]
	p := Placement{At: at, Value: s.Value()}
	g[at.Row][at.Col] = p.Value
	return g, p, true
}
