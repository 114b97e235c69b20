// Package gesture turns a single-finger swipe into a move direction.
//
// A swipe is tracked from the touch start to the touch end. A second
// finger at start or during the swipe cancels it. The dominant axis of
// the displacement decides the direction, and only displacements longer
// than Threshold count.
package gesture

import (
	"math"

	"github.com/vovakirdan/t2048/internal/engine"
)

// Threshold is the minimum displacement, in input units, along the
// dominant axis for a swipe to register.
const Threshold = 30

// Tracker follows one swipe at a time. The zero value is ready to use.
type Tracker struct {
	active bool
	startX float64
	startY float64
}

// Start begins tracking. Starts with more than one touch point are ignored.
func (t *Tracker) Start(touches int, x, y float64) {
	if touches != 1 {
		t.active = false
		return
	}
	t.active = true
	t.startX, t.startY = x, y
}

// Move reports the touch count during the gesture; multi-touch cancels it.
func (t *Tracker) Move(touches int) {
	if touches > 1 {
		t.active = false
	}
}

// Cancel drops the current gesture.
func (t *Tracker) Cancel() {
	t.active = false
}

// Active reports whether a swipe is being tracked.
func (t *Tracker) Active() bool {
	return t.active
}

// End finishes the gesture at (x, y) and returns the swipe direction.
// ok is false when nothing was tracked or the swipe was too short.
func (t *Tracker) End(x, y float64) (dir engine.Direction, ok bool) {
	if !t.active {
		return 0, false
	}
	t.active = false
	return Classify(x-t.startX, y-t.startY)
}

// Classify maps a displacement to a direction. Screen y grows downward.
// Ties between the axes resolve to the vertical axis.
func Classify(dx, dy float64) (engine.Direction, bool) {
	ax, ay := math.Abs(dx), math.Abs(dy)

	if ax > ay {
		if ax <= Threshold {
			return 0, false
		}
		if dx > 0 {
			return engine.Right, true
		}
		return engine.Left, true
	}

	if ay <= Threshold {
		return 0, false
	}
	if dy > 0 {
		return engine.Down, true
	}
	return engine.Up, true
}
