package engine

import (
	"math"
	"math/rand"
	"testing"
)

func TestIsLost(t *testing.T) {
	dead := Grid{
		{2, 4, 8, 16},
		{32, 64, 128, 256},
		{512, 1024, 2048, 4096},
		{8192, 16384, 32768, 65536},
	}
	if !IsLost(dead) {
		t.Error("full grid without equal neighbours should be lost")
	}

	horizontal := dead
	horizontal[0][1] = 2
	if IsLost(horizontal) {
		t.Error("horizontal equal pair should keep the game in progress")
	}

	vertical := dead
	vertical[1][0] = 2
	if IsLost(vertical) {
		t.Error("vertical equal pair should keep the game in progress")
	}

	withEmpty := dead
	withEmpty[2][2] = 0
	if IsLost(withEmpty) {
		t.Error("grid with an empty cell should not be lost")
	}
}

func TestEmptyCellsAndMaxTile(t *testing.T) {
	g := Grid{
		{2, 0, 8, 0},
		{0, 64, 0, 256},
		{512, 0, 2048, 0},
		{0, 16, 0, 64},
	}

	cells := EmptyCells(g)
	if len(cells) != 8 {
		t.Errorf("EmptyCells count = %d, want 8", len(cells))
	}
	if cells[0] != (Point{Row: 0, Col: 1}) {
		t.Errorf("first empty cell = %+v, want {0 1}", cells[0])
	}
	if MaxTile(g) != 2048 {
		t.Errorf("MaxTile = %d, want 2048", MaxTile(g))
	}
	if !HasEmptyCell(g) {
		t.Error("HasEmptyCell should be true")
	}
}

func TestSpawnPlacesOneTile(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)))
	g := Grid{{2, 4, 8, 16}, {32, 64, 128, 256}, {2, 4, 8, 16}, {32, 64, 0, 256}}

	next, p, ok := s.Spawn(g)
	if !ok {
		t.Fatal("Spawn should succeed with one empty cell")
	}
	if p.At != (Point{Row: 3, Col: 2}) {
		t.Errorf("spawned at %+v, want {3 2}", p.At)
	}
	if next[3][2] != p.Value || (p.Value != 2 && p.Value != 4) {
		t.Errorf("spawned value %d not placed correctly", p.Value)
	}

	full, _, ok := s.Spawn(next)
	if ok {
		t.Error("Spawn on a full grid should report ok=false")
	}
	if full != next {
		t.Error("Spawn on a full grid should not modify it")
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a := NewSpawner(rand.New(rand.NewSource(99)))
	b := NewSpawner(rand.New(rand.NewSource(99)))

	var ga, gb Grid
	for range 10 {
		ga, _, _ = a.Spawn(ga)
		gb, _, _ = b.Spawn(gb)
	}
	if ga != gb {
		t.Errorf("same seed produced different grids:\n%v\nvs\n%v", ga, gb)
	}
}

func TestSpawnDistribution(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(2048)))

	const trials = 20000
	fours := 0
	for range trials {
		switch v := s.Value(); v {
		case 4:
			fours++
		case 2:
		default:
			t.Fatalf("unexpected spawn value %d", v)
		}
	}

	ratio := float64(fours) / trials
	if math.Abs(ratio-FourProbability) > 0.01 {
		t.Errorf("4-tile ratio = %.3f, want about %.2f", ratio, FourProbability)
	}
}

func TestSpawnUniformCells(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(5)))

	counts := make(map[Point]int)
	const trials = 16000
	for range trials {
		_, p, _ := s.Spawn(Grid{})
		counts[p.At]++
	}

	if len(counts) != Size*Size {
		t.Fatalf("spawned into %d distinct cells, want %d", len(counts), Size*Size)
	}
	expected := float64(trials) / float64(Size*Size)
	for pt, n := range counts {
		if math.Abs(float64(n)-expected) > expected*0.2 {
			t.Errorf("cell %+v chosen %d times, expected about %.0f", pt, n, expected)
		}
	}
}
