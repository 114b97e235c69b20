package engine

// MoveResult is the outcome of applying one move to a grid.
type MoveResult struct {
	Grid            Grid // Grid after sliding and merging, before any spawn
	ScoreDelta      int  // Sum of the values produced by merges
	Changed         bool // Whether any cell differs from the input grid
	ReachedWinValue bool // Whether a merge produced a tile >= WinValue
}

// ApplyMove slides and merges every line of the grid toward dir.
//
// The grid is rotated so that dir points left, each row is resolved by the
// single left-merge routine, and the result is rotated back. The input grid
// is not modified.
func ApplyMove(g Grid, dir Direction) MoveResult {
	turns := dir.Rotations()
	work := Rotate(g, turns)

	var res MoveResult
	for r := range Size {
		row, gained, largest := slideRow(work[r])
		work[r] = row
		res.ScoreDelta += gained
		if largest >= WinValue {
			res.ReachedWinValue = true
		}
	}

	res.Grid = Rotate(work, InverseTurns(turns))
	res.Changed = res.Grid != g
	return res
}

// slideRow compacts a row to the left and merges equal neighbours.
// Each tile merges at most once per move: after a merge the scan skips
// past both tiles of the pair, so [2,2,2,2] becomes [4,4,0,0].
// Returns the new row, the score gained and the largest merged value.
func slideRow(row [Size]int) (out [Size]int, gained, largest int) {
	var tiles [Size]int
	n := 0
	for _, v := range row {
		if v != 0 {
			tiles[n] = v
			n++
		}
	}

	w := 0
	for i := 0; i < n; i++ {
		v := tiles[i]
		if i+1 < n && tiles[i+1] == v {
			v *= 2
			gained += v
			largest = max(largest, v)
			i++
		}
		out[w] = v
		w++
	}
	return out, gained, largest
}

// LegalMoves returns the directions that would change the grid.
func LegalMoves(g Grid) []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if ApplyMove(g, d).Changed {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
