package render

import "github.com/vovakirdan/t2048/internal/engine"

// Default phase lengths in ticks; at 60 ticks per second a move settles
// in roughly a quarter of a second.
const (
	DefaultSlideTicks = 8
	DefaultPopTicks   = 6
)

// Phase is the current stage of a move animation.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseSlide
	PhasePop
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSlide:
		return "slide"
	case PhasePop:
		return "pop"
	default:
		return "none"
	}
}

// Animator plays a move as a slide phase followed by a pop phase.
// During the slide, tiles travel from their old cells to their new ones;
// during the pop, spawned and merged tiles are emphasised.
type Animator struct {
	slideTicks int
	popTicks   int

	phase  Phase
	ticks  int
	slides []Slide
	tiles  []Tile
}

// NewAnimator creates an animator. Non-positive lengths skip that phase.
func NewAnimator(slideTicks, popTicks int) *Animator {
	return &Animator{
		slideTicks: max(slideTicks, 0),
		popTicks:   max(popTicks, 0),
	}
}

// Start animates a move from before to after in direction dir.
func (a *Animator) Start(before, after engine.Grid, dir engine.Direction, spawned []engine.Placement) {
	a.slides = Slides(before, dir)
	a.tiles = Diff(before, after, dir, spawned)
	a.ticks = 0
	a.phase = PhaseSlide
	if a.slideTicks == 0 {
		a.enterPop()
	}
}

// StartSpawn pops the given tiles in place, as after a restart.
func (a *Animator) StartSpawn(g engine.Grid, spawned []engine.Placement) {
	a.slides = nil
	a.tiles = Diff(g, g, engine.Left, spawned)
	a.ticks = 0
	a.enterPop()
}

func (a *Animator) enterPop() {
	a.ticks = 0
	a.phase = PhasePop
	if a.popTicks == 0 || !a.hasPops() {
		a.Stop()
	}
}

func (a *Animator) hasPops() bool {
	for _, t := range a.tiles {
		if t.New || t.Merged {
			return true
		}
	}
	return false
}

// Step advances the animation by one tick and reports whether it is still running.
func (a *Animator) Step() bool {
	switch a.phase {
	case PhaseSlide:
		a.ticks++
		if a.ticks >= a.slideTicks {
			a.enterPop()
		}
	case PhasePop:
		a.ticks++
		if a.ticks >= a.popTicks {
			a.Stop()
		}
	}
	return a.Active()
}

// Stop ends the animation immediately.
func (a *Animator) Stop() {
	a.phase = PhaseNone
	a.ticks = 0
	a.slides = nil
	a.tiles = nil
}

// Active reports whether an animation is running.
func (a *Animator) Active() bool {
	return a.phase != PhaseNone
}

// Phase returns the current phase.
func (a *Animator) Phase() Phase {
	return a.phase
}

// Progress returns the eased progress of the current phase in [0, 1].
func (a *Animator) Progress() float64 {
	var total int
	switch a.phase {
	case PhaseSlide:
		total = a.slideTicks
	case PhasePop:
		total = a.popTicks
	default:
		return 1
	}
	if total == 0 {
		return 1
	}
	return easeOutQuad(min(float64(a.ticks)/float64(total), 1))
}

// Slides returns the tile movements of the running move.
func (a *Animator) Slides() []Slide {
	return a.slides
}

// Tiles returns the post-move tiles of the running move.
func (a *Animator) Tiles() []Tile {
	return a.tiles
}

// easeOutQuad decelerates towards the end of the phase.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
