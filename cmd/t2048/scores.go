package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/platform/tui"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished games",
	Long: `Display the best finished games recorded in the scores database.

A game is recorded when it is lost, or when it is abandoned or restarted
with a score above zero.

Examples:
  t2048 scores
  t2048 scores --limit 20
  t2048 scores --tui
  t2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores in an interactive table")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 0, "Number of games to list (overrides config)")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded game")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	limit := cfg.Scoreboard.Limit
	if flagScoresLimit > 0 {
		limit = flagScoresLimit
	}

	store, err := requireStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Println("Scores cleared.")
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, limit, width, height)
	}

	scores, err := store.TopScores(gameID, limit)
	if err != nil {
		return err
	}

	if len(scores) == 0 {
		fmt.Println("No games recorded yet. Play 't2048 play' to set the first score!")
		return nil
	}

	fmt.Println(scoreTable(scores))
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Printf("Games: %d  Wins: %d  Best: %d  Top tile: %d  Average: %.0f\n",
		stats.GamesCount, stats.Wins, stats.HighScore, stats.BestTile, stats.AvgScore)
	return nil
}

// scoreTable renders games as a bordered table; games that reached 2048 are starred.
func scoreTable(scores []storage.ScoreEntry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("#", "Score", "Tile", "Moves", "Played")
	for i, e := range scores {
		tile := strconv.Itoa(e.MaxTile)
		if e.Won {
			tile += "*"
		}
		t.Row(strconv.Itoa(i+1), strconv.Itoa(e.Score), tile, strconv.Itoa(e.Moves), e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return t.String()
}
