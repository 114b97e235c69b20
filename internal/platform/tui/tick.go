// Package tui runs the game in a terminal with Bubble Tea, locally or
// over SSH, and renders core.Screen buffers with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg advances tile animations by one frame.
type TickMsg time.Time

// tickCmd schedules the next animation frame.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
