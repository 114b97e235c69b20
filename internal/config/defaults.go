package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Default returns the hardcoded configuration, used when even the
// embedded YAML cannot be parsed.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.t2048/scores.db",
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Animation: AnimationConfig{
			TickRate:   60,
			SlideTicks: 8,
			PopTicks:   6,
		},
		Input: InputConfig{
			CellWidthUnits:  8,
			CellHeightUnits: 16,
		},
		SSH: SSHConfig{
			Addr:        ":23234",
			HostKey:     "~/.t2048/host_key",
			IdleTimeout: 30 * time.Minute,
		},
		Web: WebConfig{
			Addr:        ":8048",
			CookieName:  "t2048_client",
			Title:       "2048",
			Description: "Join the tiles, get to 2048! Slide with arrow keys, WASD or swipes.",
		},
		Scoreboard: ScoreboardConfig{
			Limit: 10,
		},
	}
}
