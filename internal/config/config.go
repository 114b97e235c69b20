// Package config provides YAML-based configuration loading for t2048,
// with environment overrides read from the process or a .env file.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
	Animation  AnimationConfig  `yaml:"animation"`
	Input      InputConfig      `yaml:"input"`
	SSH        SSHConfig        `yaml:"ssh"`
	Web        WebConfig        `yaml:"web"`
	Scoreboard ScoreboardConfig `yaml:"scoreboard"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig controls log level and the optional rotating log file.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// AnimationConfig sets the tile animation timing.
type AnimationConfig struct {
	TickRate   int `yaml:"tick_rate"`
	SlideTicks int `yaml:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
}

// TickInterval returns the time between animation ticks.
func (a AnimationConfig) TickInterval() time.Duration {
	if a.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(a.TickRate)
}

// InputConfig converts terminal mouse motion into swipe units.
type InputConfig struct {
	CellWidthUnits  float64 `yaml:"cell_width_units"`
	CellHeightUnits float64 `yaml:"cell_height_units"`
}

// SSHConfig configures the Wish SSH server.
type SSHConfig struct {
	Addr        string        `yaml:"addr"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// WebConfig configures the embeddable web widget server.
type WebConfig struct {
	Addr        string `yaml:"addr"`
	PublicURL   string `yaml:"public_url"`
	CookieName  string `yaml:"cookie_name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ScoreboardConfig sets how many finished games are listed.
type ScoreboardConfig struct {
	Limit int `yaml:"limit"`
}
