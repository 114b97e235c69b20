package engine

// Status is the state of a game.
type Status int

const (
	InProgress Status = iota
	Won
	Lost
)

// String returns a lowercase status name.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// EmptyCells returns the positions of all empty cells in row-major order.
func EmptyCells(g Grid) []Point {
	var cells []Point
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				cells = append(cells, Point{Row: r, Col: c})
			}
		}
	}
	return cells
}

// HasEmptyCell reports whether any cell is empty.
func HasEmptyCell(g Grid) bool {
	for r := range Size {
		for c := range Size {
			if g[r][c] == 0 {
				return true
			}
		}
	}
	return false
}

// HasAdjacentEqual reports whether two horizontally or vertically
// adjacent non-empty cells hold the same value.
func HasAdjacentEqual(g Grid) bool {
	for r := range Size {
		for c := range Size {
			v := g[r][c]
			if v == 0 {
				continue
			}
			if c < Size-1 && g[r][c+1] == v {
				return true
			}
			if r < Size-1 && g[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// IsLost reports whether no move can change the grid:
// no empty cell and no equal adjacent pair.
func IsLost(g Grid) bool {
	return !HasEmptyCell(g) && !HasAdjacentEqual(g)
}

// MaxTile returns the largest value on the grid.
func MaxTile(g Grid) int {
	largest := 0
	for r := range Size {
		for c := range Size {
			largest = max(largest, g[r][c])
		}
	}
	return largest
}
