package web

import (
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/gesture"
	"github.com/vovakirdan/t2048/internal/render"
	"github.com/vovakirdan/t2048/internal/session"
)

// Player applies one client's input to its session. It is owned by the
// connection's read pump and is not safe for concurrent use.
type Player struct {
	sess  *session.Session
	swipe gesture.Tracker
}

// NewPlayer wraps a session.
func NewPlayer(sess *session.Session) *Player {
	return &Player{sess: sess}
}

// Session returns the player's session.
func (p *Player) Session() *session.Session {
	return p.sess
}

// Handle applies msg and returns the state to send back, if any.
// Unknown types, unmapped keys and gestures that resolve to nothing
// produce no reply.
func (p *Player) Handle(msg InboundMessage) (StateMessage, bool) {
	switch msg.Type {
	case TypeKey:
		if dir, ok := KeyDirection(msg.Key); ok {
			return p.move(dir), true
		}

	case TypeTouchStart:
		p.swipe.Start(msg.Touches, msg.X, msg.Y)

	case TypeTouchMove:
		p.swipe.Move(msg.Touches)

	case TypeTouchEnd:
		if dir, ok := p.swipe.End(msg.X, msg.Y); ok {
			return p.move(dir), true
		}

	case TypeTouchCancel:
		p.swipe.Cancel()

	case TypeRestart:
		p.swipe.Cancel()
		p.sess.Restart()
		return freshState(p.sess), true

	case TypeContinue:
		p.sess.KeepPlaying()
		return stateOf(p.sess, nil, false), true
	}

	return StateMessage{}, false
}

// move always answers so the client learns about rejected moves too.
func (p *Player) move(dir engine.Direction) StateMessage {
	out := p.sess.Move(dir)
	if !out.Changed {
		return stateOf(p.sess, nil, false)
	}

	tiles := render.Diff(out.Before, out.After, dir, []engine.Placement{out.Spawned})
	st := stateOf(p.sess, tiles, true)
	st.Direction = dir.String()
	return st
}
