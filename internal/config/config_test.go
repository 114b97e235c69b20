package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// isolate points HOME and the working directory at empty temp dirs so
// no real config is picked up.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home, work = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestEmbeddedMatchesDefault(t *testing.T) {
	isolate(t)

	cfg, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceEmbedded {
		t.Errorf("source = %s, want embedded", src)
	}
	if cfg != Default() {
		t.Errorf("embedded config differs from Default():\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "web:\n  addr: \":9000\"\nanimation:\n  slide_ticks: 4\n")

	cfg, src, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceCustom {
		t.Errorf("source = %s, want custom", src)
	}
	if cfg.Web.Addr != ":9000" || cfg.Animation.SlideTicks != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.Animation.PopTicks != 6 || cfg.SSH.IdleTimeout != 30*time.Minute {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom config should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "web: [unclosed\n")
	if _, _, err := Load(bad); err == nil {
		t.Error("malformed custom config should fail")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(work, "configs", "t2048.yaml"), "scoreboard:\n  limit: 5\n")
	cfg, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceLocal || cfg.Scoreboard.Limit != 5 {
		t.Errorf("local config: source=%s limit=%d", src, cfg.Scoreboard.Limit)
	}

	writeFile(t, filepath.Join(home, ".t2048", "config.yaml"), "scoreboard:\n  limit: 20\n")
	cfg, src, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceUser || cfg.Scoreboard.Limit != 20 {
		t.Errorf("user config should win: source=%s limit=%d", src, cfg.Scoreboard.Limit)
	}
}

func TestBrokenUserConfigFallsThrough(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".t2048", "config.yaml"), "::: not yaml")

	_, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceEmbedded {
		t.Errorf("source = %s, want embedded", src)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvDB:       "/data/t2048.db",
		EnvLogLevel: "debug",
		EnvWebAddr:  ":80",
		EnvSSHAddr:  ":22",
		EnvTickRate: "30",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	if err := applyEnv(&cfg, lookup); err != nil {
		t.Fatalf("applyEnv() failed: %v", err)
	}
	if cfg.Storage.Path != "/data/t2048.db" || cfg.Log.Level != "debug" ||
		cfg.Web.Addr != ":80" || cfg.SSH.Addr != ":22" || cfg.Animation.TickRate != 30 {
		t.Errorf("env not applied: %+v", cfg)
	}

	env[EnvTickRate] = "fast"
	if err := applyEnv(&cfg, lookup); err == nil {
		t.Error("invalid tick rate should fail")
	}
}

func TestApplyEnvFromProcess(t *testing.T) {
	t.Setenv(EnvWebAddr, ":8181")
	cfg := Default()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv() failed: %v", err)
	}
	if cfg.Web.Addr != ":8181" {
		t.Errorf("Web.Addr = %q", cfg.Web.Addr)
	}
}

func TestLoadDotEnv(t *testing.T) {
	_, work := isolate(t)

	// missing file is fine
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() without .env failed: %v", err)
	}

	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)
	writeFile(t, filepath.Join(work, ".env"), EnvLogLevel+"=warn\n")
	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "warn" {
		t.Errorf("%s = %q, want warn", EnvLogLevel, got)
	}
}

func TestTickInterval(t *testing.T) {
	if got := (AnimationConfig{TickRate: 50}).TickInterval(); got != 20*time.Millisecond {
		t.Errorf("TickInterval() = %v", got)
	}
	if got := (AnimationConfig{}).TickInterval(); got != time.Second/60 {
		t.Errorf("zero tick rate interval = %v", got)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	isolate(t)
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.yaml")
	writeFile(t, path, string(data))
	cfg, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("round trip changed config:\n%+v", cfg)
	}
}

func TestExpandPaths(t *testing.T) {
	home, _ := isolate(t)

	cfg := Default()
	cfg.Log.File = "/var/log/t2048.log"
	if err := cfg.ExpandPaths(); err != nil {
		t.Fatalf("ExpandPaths() failed: %v", err)
	}
	if want := filepath.Join(home, ".t2048", "scores.db"); cfg.Storage.Path != want {
		t.Errorf("Storage.Path = %q, want %q", cfg.Storage.Path, want)
	}
	if want := filepath.Join(home, ".t2048", "host_key"); cfg.SSH.HostKey != want {
		t.Errorf("SSH.HostKey = %q, want %q", cfg.SSH.HostKey, want)
	}
	if cfg.Log.File != "/var/log/t2048.log" {
		t.Errorf("absolute path changed: %q", cfg.Log.File)
	}
}
