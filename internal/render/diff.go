// Package render turns session state into pictures: it derives tile
// identity and motion from before/after grids and draws the board into a
// core.Screen. Nothing here mutates game state.
package render

import "github.com/vovakirdan/t2048/internal/engine"

// Tile is a non-empty cell of the post-move grid with its visual flags.
type Tile struct {
	Row    int  `json:"row"`
	Col    int  `json:"col"`
	Value  int  `json:"value"`
	New    bool `json:"new,omitempty"`
	Merged bool `json:"merged,omitempty"`
}

// Slide is the movement of one pre-move tile during a move.
type Slide struct {
	From   engine.Point
	To     engine.Point
	Value  int
	Merged bool // Ends the move merged into another tile
}

// Tiles lists the non-empty cells of g in row-major order with no flags set.
func Tiles(g engine.Grid) []Tile {
	var tiles []Tile
	for r := range engine.Size {
		for c := range engine.Size {
			if g[r][c] != 0 {
				tiles = append(tiles, Tile{Row: r, Col: c, Value: g[r][c]})
			}
		}
	}
	return tiles
}

// Diff lists the tiles of after, flagging spawned tiles as New and tiles
// produced by a merge as Merged.
//
// Merged cells are found by comparing the two grids along the move axis:
// both are rotated so the move points left, and each line of the result
// is matched against the compacted line it came from. A result tile equal
// to the next source tile moved alone; anything else consumed two.
func Diff(before, after engine.Grid, dir engine.Direction, spawned []engine.Placement) []Tile {
	isNew := make(map[engine.Point]bool, len(spawned))
	moved := after
	for _, p := range spawned {
		isNew[p.At] = true
		moved[p.At.Row][p.At.Col] = 0
	}

	turns := dir.Rotations()
	b := engine.Rotate(before, turns)
	a := engine.Rotate(moved, turns)

	var mask engine.Grid
	for r := range engine.Size {
		src := compact(b[r])
		j := 0
		for c := range engine.Size {
			v := a[r][c]
			if v == 0 {
				continue
			}
			if j < len(src) && src[j] == v {
				j++
				continue
			}
			mask[r][c] = 1
			j += 2
		}
	}
	mask = engine.Rotate(mask, engine.InverseTurns(turns))

	tiles := Tiles(after)
	for i := range tiles {
		at := engine.Point{Row: tiles[i].Row, Col: tiles[i].Col}
		tiles[i].New = isNew[at]
		tiles[i].Merged = mask[at.Row][at.Col] == 1 && !tiles[i].New
	}
	return tiles
}

// Slides computes where every tile of before travels when moved in dir.
// Two tiles that merge share the same destination and are both marked Merged.
func Slides(before engine.Grid, dir engine.Direction) []Slide {
	turns := dir.Rotations()
	back := engine.InverseTurns(turns)
	g := engine.Rotate(before, turns)

	var slides []Slide
	for r := range engine.Size {
		type src struct {
			col, value int
		}
		var line []src
		for c := range engine.Size {
			if g[r][c] != 0 {
				line = append(line, src{c, g[r][c]})
			}
		}

		dest := 0
		for i := 0; i < len(line); i++ {
			to := engine.Point{Row: r, Col: dest}.Rotate(back)
			if i+1 < len(line) && line[i].value == line[i+1].value {
				for _, s := range line[i : i+2] {
					slides = append(slides, Slide{
						From:   engine.Point{Row: r, Col: s.col}.Rotate(back),
						To:     to,
						Value:  s.value,
						Merged: true,
					})
				}
				i++
			} else {
				slides = append(slides, Slide{
					From:  engine.Point{Row: r, Col: line[i].col}.Rotate(back),
					To:    to,
					Value: line[i].value,
				})
			}
			dest++
		}
	}
	return slides
}

func compact(row [engine.Size]int) []int {
	out := make([]int, 0, engine.Size)
	for _, v := range row {
		if v != 0 {
			out = append(out, v)
		}
	}
	return out
}
