package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvDB       = "T2048_DB"
	EnvLogLevel = "T2048_LOG_LEVEL"
	EnvLogFile  = "T2048_LOG_FILE"
	EnvWebAddr  = "T2048_WEB_ADDR"
	EnvSSHAddr  = "T2048_SSH_ADDR"
	EnvTickRate = "T2048_TICK_RATE"
)

// Source describes where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
	SourceBuiltin  Source = "builtin"
)

// Load reads the configuration.
// Search order: customPath -> ~/.t2048/config.yaml -> ./configs/t2048.yaml -> embedded default.
// Files are decoded over the defaults, so they only need the keys they change.
// An explicit customPath that cannot be read or parsed is an error; the
// other locations are skipped when missing or broken.
func Load(customPath string) (Config, Source, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Default(), SourceCustom, err
		}
		return cfg, SourceCustom, nil
	}

	if userCfgPath := UserConfigPath(); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, SourceUser, nil
		}
	}

	if cfg, err := loadFile(filepath.Join("configs", "t2048.yaml")); err == nil {
		return cfg, SourceLocal, nil
	}

	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), SourceBuiltin, nil
	}
	return cfg, SourceEmbedded, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// UserConfigPath returns ~/.t2048/config.yaml, or empty if home is unavailable.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "config.yaml")
}

// LoadDotEnv loads variables from .env files into the process environment.
// Missing files are not an error; existing variables are not overwritten.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("config: cannot load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any T2048_* variables set in the environment.
func ApplyEnv(cfg *Config) error {
	return applyEnv(cfg, os.LookupEnv)
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDB); ok && v != "" {
		cfg.Storage.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.Log.File = v
	}
	if v, ok := lookup(EnvWebAddr); ok && v != "" {
		cfg.Web.Addr = v
	}
	if v, ok := lookup(EnvSSHAddr); ok && v != "" {
		cfg.SSH.Addr = v
	}
	if v, ok := lookup(EnvTickRate); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("config: %s must be a positive integer, got %q", EnvTickRate, v)
		}
		cfg.Animation.TickRate = n
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// ExpandPaths replaces a leading ~ in every path setting with the home directory.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.Storage.Path, &c.Log.File, &c.SSH.HostKey} {
		if *p == "" || (*p)[0] != '~' {
			continue
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("config: cannot expand home directory: %w", err)
		}
		*p = filepath.Join(home, (*p)[1:])
	}
	return nil
}
