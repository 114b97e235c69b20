package core

// Color is a palette entry for a screen cell. The platform layer decides
// how each entry is displayed; ColorDefault leaves the terminal colour alone.
type Color uint8

const (
	ColorDefault Color = iota
	ColorFrame
	ColorText
	ColorMuted
	ColorAccent
	ColorWin
	ColorLose
	ColorBoard
	ColorTileEmpty

	// Tile colours, one per value from 2 to 2048.
	ColorTile2
	ColorTile4
	ColorTile8
	ColorTile16
	ColorTile32
	ColorTile64
	ColorTile128
	ColorTile256
	ColorTile512
	ColorTile1024
	ColorTile2048
	ColorTileSuper // Anything past 2048

	ColorDarkText // Text on light tiles
)

// TileColor returns the background colour for a tile value.
func TileColor(value int) Color {
	if value <= 0 {
		return ColorBoard
	}

	c := ColorTile2
	for v := 2; v < value; v *= 2 {
		if c == ColorTileSuper {
			break
		}
		c++
	}
	return c
}

// TileTextColor returns the foreground colour for a tile value.
func TileTextColor(value int) Color {
	if value <= 4 {
		return ColorDarkText
	}
	return ColorText
}
