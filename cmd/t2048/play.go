package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/t2048/internal/platform"
	"github.com/vovakirdan/t2048/internal/platform/tui"
)

// localClient is the best-score slot of the terminal player.
const localClient = "local"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play 2048 in this terminal",
	Long: `Start a game of 2048 in the terminal.

Controls:
  Arrows/WASD  - Slide tiles
  Mouse drag   - Swipe
  R            - New game
  C            - Keep going after reaching 2048
  Tab          - High scores
  ?            - More help
  Q/Ctrl+C     - Quit

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 play --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) error {
	// log lines would tear the alt screen, so they only go to the log file
	cfg, logger, err := setup(nil)
	if err != nil {
		return err
	}
	defer logger.Close()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	store := openStore(cfg, logger)
	if store == nil {
		fmt.Fprintln(os.Stderr, "Warning: could not open scores database, best score will not be saved")
	}

	sess := platform.NewSession(store, localClient, logger.Logger, platform.NewRand(flagSeed))

	var scores tui.ScoreSource
	if store != nil {
		scores = store
	}

	runErr := tui.Run(sess, tui.Options{
		Scores:     scores,
		ScoreLimit: cfg.Scoreboard.Limit,
		Animation:  cfg.Animation,
		Input:      cfg.Input,
		Width:      width,
		Height:     height,
	})

	// Record an unfinished game with a score before closing the store
	sess.Restart()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}
