package core

import "github.com/vovakirdan/t2048/internal/engine"

// Action is a semantic input, independent of the key or gesture that produced it.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // Up arrow, W, swipe up
	ActionDown            // Down arrow, S, swipe down
	ActionLeft            // Left arrow, A, swipe left
	ActionRight           // Right arrow, D, swipe right
	ActionRestart         // R, new game
	ActionContinue        // C, dismiss the win banner
	ActionScores          // Tab, toggle the scoreboard
	ActionHelp            // ?, toggle full help
	ActionQuit            // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionContinue:
		return "Continue"
	case ActionScores:
		return "Scores"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction returns the move an action stands for.
// ok is false for actions that are not moves.
func (a Action) Direction() (dir engine.Direction, ok bool) {
	switch a {
	case ActionUp:
		return engine.Up, true
	case ActionDown:
		return engine.Down, true
	case ActionLeft:
		return engine.Left, true
	case ActionRight:
		return engine.Right, true
	default:
		return 0, false
	}
}
