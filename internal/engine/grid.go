// Package engine implements the 2048 move engine.
// It operates purely on value grids: sliding, merging, spawning and
// win/loss evaluation. It knows nothing about tile identity, rendering or input.
package engine

import (
	"fmt"
	"strings"
)

// Size is the board dimension. The board is always 4x4.
const Size = 4

// WinValue is the tile value that wins the game when produced by a merge.
const WinValue = 2048

// Grid is a 4x4 board of tile values indexed as g[row][col].
// Zero marks an empty cell; other values are powers of two.
type Grid [Size][Size]int

// Point addresses a single cell.
type Point struct {
	Row, Col int
}

// Direction is a move direction.
// The numeric value is the number of quarter turns that brings the
// direction onto Left, so Left needs none.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists every move direction in rotation order.
var Directions = [...]Direction{Left, Up, Right, Down}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

// Rotations returns how many counter-clockwise quarter turns normalize d to Left.
func (d Direction) Rotations() int {
	return int(d)
}

// ParseDirection converts a direction name ("left", "up", "right", "down")
// or its first letter into a Direction. Matching is case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "up", "u":
		return Up, nil
	case "right", "r":
		return Right, nil
	case "down", "d":
		return Down, nil
	}
	return Left, fmt.Errorf("engine: unknown direction %q", s)
}

// Rotate turns the grid counter-clockwise by count quarter turns.
// Rotating by count and then by InverseTurns(count) restores the original grid.
func Rotate(g Grid, count int) Grid {
	for range normTurns(count) {
		g = rotateOnce(g)
	}
	return g
}

// InverseTurns returns the number of quarter turns that undoes count turns.
func InverseTurns(count int) int {
	return (4 - normTurns(count)) % 4
}

// rotateOnce is a single counter-clockwise quarter turn:
// the top row becomes the left column.
func rotateOnce(g Grid) Grid {
	var out Grid
	for r := range Size {
		for c := range Size {
			out[r][c] = g[c][Size-1-r]
		}
	}
	return out
}

// Rotate maps the point through count counter-clockwise quarter turns,
// matching the cell movement performed by Rotate on a grid.
func (p Point) Rotate(count int) Point {
	for range normTurns(count) {
		p = Point{Row: Size - 1 - p.Col, Col: p.Row}
	}
	return p
}

func normTurns(count int) int {
	return ((count % 4) + 4) % 4
}

// String renders the grid as four space-separated rows, mostly for test output.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range Size {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range Size {
			if c > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%5d", g[r][c])
		}
	}
	return sb.String()
}
