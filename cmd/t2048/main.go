// t2048 is the 2048 sliding-tile puzzle for the terminal, SSH, the web and
// MCP agents.
//
// Usage:
//
//	t2048 play            - Play in this terminal
//	t2048 serve           - Start SSH server for remote play
//	t2048 web             - Serve the embeddable web widget
//	t2048 mcp             - Serve MCP tools over stdio
//	t2048 scores          - Show finished games
//	t2048 best            - Show or reset a stored best score
//	t2048 config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>  - Config file (default search: ~/.t2048/config.yaml, ./configs/t2048.yaml)
//	--env-file <p>   - .env file with T2048_* overrides (default: .env)
//	--db <path>      - Set database path (default: ~/.t2048/scores.db)
//	--fps <rate>     - Set animation tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible games
//	--log-level <l>  - debug, info, warn or error
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/logging"
	"github.com/vovakirdan/t2048/internal/session"
	"github.com/vovakirdan/t2048/internal/storage"
)

var version = "dev"

var (
	// Global flags
	flagConfig   string
	flagEnvFile  string
	flagDBPath   string
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "t2048",
	Short:   "2048 - slide tiles, merge numbers, reach 2048",
	Version: version,
	Long: `t2048 is the 2048 sliding-tile puzzle. Slide the board with the arrow
keys (or WASD, or a mouse drag), merge equal tiles and reach 2048.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  web      - Serve the embeddable web widget
  mcp      - Serve MCP tools over stdio for agents
  scores   - View finished games
  best     - Show or reset a stored best score
  config   - Print the effective configuration

Examples:
  t2048 play
  t2048 play --seed 42
  t2048 serve --ssh :2222
  t2048 web --addr :8048
  t2048 scores --tui`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Path to .env file with T2048_* overrides")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Animation tick rate (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(bestCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration: .env, then the config file, then
// T2048_* variables, then command-line flags.
func loadConfig() (config.Config, config.Source, error) {
	if err := config.LoadDotEnv(flagEnvFile); err != nil {
		return config.Config{}, "", err
	}

	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return cfg, source, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, source, err
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagFPS > 0 {
		cfg.Animation.TickRate = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.ExpandPaths(); err != nil {
		return cfg, source, err
	}
	return cfg, source, nil
}

// setup loads the configuration and builds a logger. console is where log
// lines go besides the configured file; nil keeps them off the terminal.
func setup(console io.Writer) (config.Config, *logging.Logger, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return cfg, nil, err
	}

	logger, err := logging.New(cfg.Log, "t2048", console)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

// openStore opens the scores database. On failure the game still runs with
// an in-memory best score, so a nil store is returned with a warning.
func openStore(cfg config.Config, logger *logging.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		logger.Warn("could not open scores database, best score will not be saved",
			"path", cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

// errNoStore is returned by commands that only make sense with the database.
var errNoStore = errors.New("scores database unavailable")

// requireStore opens the scores database or fails.
func requireStore(cfg config.Config) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errNoStore, err)
	}
	return store, nil
}

// gameID is the score log key for every command.
const gameID = session.GameID
