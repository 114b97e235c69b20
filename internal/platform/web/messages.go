package web

import (
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/render"
	"github.com/vovakirdan/t2048/internal/session"
)

// Client message types.
const (
	TypeKey         = "key"
	TypeTouchStart  = "touchstart"
	TypeTouchMove   = "touchmove"
	TypeTouchEnd    = "touchend"
	TypeTouchCancel = "touchcancel"
	TypeRestart     = "restart"
	TypeContinue    = "continue"
)

// TypeState is the only message type the server sends.
const TypeState = "state"

// InboundMessage is a client input event. Key carries a DOM KeyboardEvent.key
// value; touch events carry the touch count and the position of the first touch.
type InboundMessage struct {
	Type    string  `json:"type"`
	Key     string  `json:"key,omitempty"`
	Touches int     `json:"touches,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
}

// StateMessage is the board as the client should draw it.
type StateMessage struct {
	Type      string        `json:"type"`
	Tiles     []render.Tile `json:"tiles"`
	Score     int           `json:"score"`
	Best      int           `json:"best"`
	Status    string        `json:"status"`
	Changed   bool          `json:"changed"`
	Direction string        `json:"direction,omitempty"`
	WinBanner bool          `json:"win_banner"`
	Moves     int           `json:"moves"`
}

var keyDirections = map[string]engine.Direction{
	"ArrowUp":    engine.Up,
	"ArrowDown":  engine.Down,
	"ArrowLeft":  engine.Left,
	"ArrowRight": engine.Right,
	"w":          engine.Up,
	"W":          engine.Up,
	"s":          engine.Down,
	"S":          engine.Down,
	"a":          engine.Left,
	"A":          engine.Left,
	"d":          engine.Right,
	"D":          engine.Right,
}

// KeyDirection maps a DOM key name to a move direction.
func KeyDirection(key string) (engine.Direction, bool) {
	d, ok := keyDirections[key]
	return d, ok
}

// stateOf builds a state message. tiles carries the visual flags for the
// last change; nil means the board is sent plain.
func stateOf(sess *session.Session, tiles []render.Tile, changed bool) StateMessage {
	if tiles == nil {
		tiles = render.Tiles(sess.Grid())
	}
	if tiles == nil {
		tiles = []render.Tile{}
	}
	return StateMessage{
		Type:      TypeState,
		Tiles:     tiles,
		Score:     sess.Score(),
		Best:      sess.Best(),
		Status:    sess.Status().String(),
		Changed:   changed,
		WinBanner: sess.ShowWinBanner(),
		Moves:     sess.Moves(),
	}
}

// freshState marks the opening tiles of a new game as new.
func freshState(sess *session.Session) StateMessage {
	tiles := render.Tiles(sess.Grid())
	for _, p := range sess.LastSpawns() {
		for i := range tiles {
			if tiles[i].Row == p.At.Row && tiles[i].Col == p.At.Col {
				tiles[i].New = true
			}
		}
	}
	return stateOf(sess, tiles, true)
}
