package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/core"
	"github.com/vovakirdan/t2048/internal/engine"
	"github.com/vovakirdan/t2048/internal/gesture"
	"github.com/vovakirdan/t2048/internal/render"
	"github.com/vovakirdan/t2048/internal/session"
)

// Options configures a game Model.
type Options struct {
	Scores     ScoreSource // may be nil
	ScoreLimit int
	Animation  config.AnimationConfig
	Input      config.InputConfig
	Width      int
	Height     int
	Renderer   ScreenRenderer
}

// Model is the Bubble Tea model for one game of 2048.
type Model struct {
	sess     *session.Session
	anim     *render.Animator
	screen   *core.Screen
	renderer ScreenRenderer
	keys     KeyMap
	help     help.Model
	swipe    *gesture.Tracker
	input    config.InputConfig
	interval time.Duration
	ticking  bool

	scores     ScoreSource
	scoreLimit int
	board      *ScoreboardModel // Open scoreboard, nil while playing

	width    int
	height   int
	quitting bool
}

// NewModel creates a model around an existing session.
func NewModel(sess *session.Session, opts Options) Model {
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	if opts.Renderer.r == nil {
		opts.Renderer = NewScreenRenderer(nil)
	}

	m := Model{
		sess:       sess,
		anim:       render.NewAnimator(opts.Animation.SlideTicks, opts.Animation.PopTicks),
		screen:     core.NewScreen(width, height),
		renderer:   opts.Renderer,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		swipe:      &gesture.Tracker{},
		input:      opts.Input,
		interval:   opts.Animation.TickInterval(),
		scores:     opts.Scores,
		scoreLimit: opts.ScoreLimit,
		width:      width,
		height:     height,
	}
	m.help.Width = width

	m.anim.StartSpawn(sess.Grid(), sess.LastSpawns())
	m.ticking = m.anim.Active()
	return m
}

// Init starts the opening animation.
func (m Model) Init() tea.Cmd {
	if m.ticking {
		return tickCmd(m.interval)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
		m.help.Width = wsm.Width
	}

	if m.board != nil {
		return m.updateScoreboard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if dir, ok := action.Direction(); ok {
		return m.move(dir)
	}

	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll

	case core.ActionRestart:
		m.sess.Restart()
		m.anim.StartSpawn(m.sess.Grid(), m.sess.LastSpawns())
		return m, m.startTicking()

	case core.ActionContinue:
		m.sess.KeepPlaying()

	case core.ActionScores:
		board := NewScoreboardModel(m.scores, m.scoreLimit, m.width, m.height)
		board.embedded = true
		m.board = &board
	}

	return m, nil
}

// handleMouse turns left-button drags into swipes. Terminal cells are
// scaled to swipe units so the same threshold applies as for touch.
// Pressing another button mid-drag counts as a second touch point.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x := float64(msg.X) * m.input.CellWidthUnits
	y := float64(msg.Y) * m.input.CellHeightUnits

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			m.swipe.Move(2)
			return m, nil
		}
		m.swipe.Start(1, x, y)

	case tea.MouseActionMotion:
		m.swipe.Move(1)

	case tea.MouseActionRelease:
		if dir, ok := m.swipe.End(x, y); ok {
			return m.move(dir)
		}
	}

	return m, nil
}

// move applies one move and animates it. A running animation is cut short
// so input never queues behind it.
func (m Model) move(dir engine.Direction) (tea.Model, tea.Cmd) {
	m.anim.Stop()

	out := m.sess.Move(dir)
	if !out.Changed {
		return m, nil
	}

	m.anim.Start(out.Before, out.After, dir, []engine.Placement{out.Spawned})
	return m, m.startTicking()
}

func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.anim.Active() {
		return nil
	}
	m.ticking = true
	return tickCmd(m.interval)
}

// handleTick advances the animation.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.anim.Step() {
		return m, tickCmd(m.interval)
	}
	m.ticking = false
	return m, nil
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	// animation ticks keep flowing so the board is settled on return
	if _, ok := msg.(TickMsg); ok {
		return m.handleTick()
	}

	next, cmd := m.board.Update(msg)
	board, _ := next.(ScoreboardModel)

	switch {
	case board.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case board.IsGoingBack():
		m.board = nil
		return m, nil
	}

	m.board = &board
	return m, cmd
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}

	helpView := m.help.View(m.keys)
	helpLines := strings.Count(helpView, "\n") + 1
	m.screen.Resize(m.width, max(m.height-helpLines, 1))

	render.Draw(m.screen, render.View{
		Grid:      m.sess.Grid(),
		Score:     m.sess.Score(),
		Best:      m.sess.Best(),
		Status:    m.sess.Status(),
		WinBanner: m.sess.ShowWinBanner(),
		Anim:      m.anim,
	})

	return m.renderer.Render(m.screen) + "\n" + helpView
}

// Session returns the game session driven by this model.
func (m Model) Session() *session.Session {
	return m.sess
}

// Run starts a local Bubble Tea program for sess.
func Run(sess *session.Session, opts Options) error {
	p := tea.NewProgram(
		NewModel(sess, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
