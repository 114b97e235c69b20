package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/t2048/internal/session"
	"github.com/vovakirdan/t2048/internal/storage"
)

const (
	statsMinWidth = 86 // terminal width needed for the stats panel beside the table
	statsWidth    = 24
	dateLayout    = "Jan 02 15:04"
)

// ScoreSource supplies finished games for the scoreboard.
type ScoreSource interface {
	TopScores(gameID string, limit int) ([]storage.ScoreEntry, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Back: key.NewBinding(key.WithKeys("esc", "tab", "b"), key.WithHelp("tab", "back to game")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#edc22e"))
	boardPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#bbada0")).
			Padding(0, 1)
	boardMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boardErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f65e3b"))
	statLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#776e65")).Width(10)
)

var scoreColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Score", Width: 8},
	{Title: "Tile", Width: 6},
	{Title: "Moves", Width: 6},
	{Title: "Played", Width: 13},
}

// ScoreboardModel lists the best finished games of 2048.
// Standalone it quits on back; embedded in the game it just closes.
type ScoreboardModel struct {
	source   ScoreSource
	limit    int
	embedded bool

	entries []storage.ScoreEntry
	stats   *storage.GameStats
	err     error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard and loads its games.
// A nil source leaves the board empty.
func NewScoreboardModel(source ScoreSource, limit, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		source: source,
		limit:  limit,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(height)
	m.reload()
	return m
}

func newScoreTable(height int) table.Model {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#bbada0")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#f9f6f2")).
		Background(lipgloss.Color("#8f7a66")).
		Bold(false)

	return table.New(
		table.WithColumns(scoreColumns),
		table.WithFocused(true),
		table.WithHeight(max(height-8, 3)),
		table.WithStyles(styles),
	)
}

// reload queries the source again and refills the table.
func (m *ScoreboardModel) reload() {
	m.entries, m.stats, m.err = nil, nil, nil
	if m.source == nil {
		m.fillTable()
		return
	}
	if m.entries, m.err = m.source.TopScores(session.GameID, m.limit); m.err == nil {
		m.stats, m.err = m.source.GetGameStats(session.GameID)
	}
	m.fillTable()
}

func (m *ScoreboardModel) fillTable() {
	rows := make([]table.Row, 0, len(m.entries))
	for i, e := range m.entries {
		rows = append(rows, scoreRow(i+1, e))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func scoreRow(rank int, e storage.ScoreEntry) table.Row {
	tile := "-"
	if e.MaxTile > 0 {
		tile = strconv.Itoa(e.MaxTile)
	}
	if e.Won {
		tile += "*"
	}
	played := ""
	if !e.CreatedAt.IsZero() {
		played = e.CreatedAt.Format(dateLayout)
	}
	return table.Row{strconv.Itoa(rank), strconv.Itoa(e.Score), tile, strconv.Itoa(e.Moves), played}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Back) {
			m.goingBack = true
			if m.embedded {
				return m, nil
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-8, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && !m.embedded) {
		return ""
	}

	body := boardPanelStyle.Render(m.listView())
	if m.width >= statsMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", boardPanelStyle.Width(statsWidth).Render(m.statsView()))
	} else {
		body = centerText(body, m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		boardTitleStyle.Render(centerText("HIGH SCORES - 2048", m.width)),
		"",
		body,
		boardMutedStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) listView() string {
	switch {
	case m.err != nil:
		return boardErrorStyle.Padding(1, 2).Render("Scores unavailable:\n" + m.err.Error())
	case len(m.entries) == 0:
		return boardMutedStyle.Italic(true).Padding(1, 2).Render("No scores recorded yet.\nFinish a game to get on the board.")
	}
	return m.table.View() + "\n" + boardMutedStyle.Render("* reached 2048")
}

func (m ScoreboardModel) statsView() string {
	st := m.stats
	if st == nil || st.GamesCount == 0 {
		return "Stats\n\n" + boardMutedStyle.Render("no games yet")
	}

	lines := [][2]string{
		{"Games", strconv.Itoa(st.GamesCount)},
		{"Wins", strconv.Itoa(st.Wins)},
		{"Best", strconv.Itoa(st.HighScore)},
		{"Top tile", strconv.Itoa(st.BestTile)},
		{"Average", strconv.FormatFloat(st.AvgScore, 'f', 0, 64)},
	}
	if !st.LastPlayed.IsZero() {
		lines = append(lines, [2]string{"Last", st.LastPlayed.Format("Jan 02")})
	}

	var b strings.Builder
	b.WriteString("Stats\n")
	for _, l := range lines {
		b.WriteString("\n" + statLabelStyle.Render(l[0]) + l[1])
	}
	return b.String()
}

// IsGoingBack reports whether the user closed the scoreboard.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard as its own program.
func RunScoreboard(source ScoreSource, limit, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(source, limit, width, height), tea.WithAltScreen()).Run()
	return err
}

// centerText left-pads every line so it sits centered in width.
func centerText(text string, width int) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if pad := (width - lipgloss.Width(line)) / 2; pad > 0 {
			lines[i] = strings.Repeat(" ", pad) + line
		}
	}
	return strings.Join(lines, "\n")
}
