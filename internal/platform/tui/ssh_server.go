package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/platform"
	"github.com/vovakirdan/t2048/internal/session"
	"github.com/vovakirdan/t2048/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // generated on first start; empty means ~/.t2048/host_key
	IdleTimeout time.Duration // zero disables the idle cut-off

	Animation  config.AnimationConfig
	Input      config.InputConfig
	ScoreLimit int
}

// SSHServerConfigFrom picks the SSH settings out of the application config.
func SSHServerConfigFrom(cfg config.Config) SSHServerConfig {
	return SSHServerConfig{
		Address:     cfg.SSH.Addr,
		HostKeyPath: cfg.SSH.HostKey,
		IdleTimeout: cfg.SSH.IdleTimeout,
		Animation:   cfg.Animation,
		Input:       cfg.Input,
		ScoreLimit:  cfg.Scoreboard.Limit,
	}
}

// SSHServer hosts one 2048 game per SSH connection. Best scores are
// kept per SSH user name.
type SSHServer struct {
	cfg    SSHServerConfig
	ssh    *ssh.Server
	store  *storage.Store // nil when scores are not persisted
	logger *log.Logger
}

// NewSSHServer prepares the server without listening. The store stays
// owned by the caller.
func NewSSHServer(cfg SSHServerConfig, store *storage.Store, logger *log.Logger) (*SSHServer, error) {
	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{cfg: cfg, store: store, logger: logger}
	srv.ssh, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			srv.gameMiddleware(srv.runProgram),
			srv.requirePTY,
			srv.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}
	return srv, nil
}

// resolveHostKey returns the key location and makes sure its directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("ssh: cannot locate home directory: %w", err)
		}
		path = filepath.Join(home, ".t2048", "host_key")
	}
	path, err := storage.ExpandPath(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("ssh: cannot create host key directory: %w", err)
	}
	return path, nil
}

// gameMiddleware gives each connection its own session and hands it to
// play. Whatever the game holds when the connection ends, by quitting or
// by dropping, is logged like a restart.
func (s *SSHServer) gameMiddleware(play func(ssh.Session, *session.Session)) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			game := platform.NewSession(s.store, "ssh:"+sess.User(), s.logger, nil)
			play(sess, game)
			game.Restart()
			next(sess)
		}
	}
}

// runProgram plays game in a Bubble Tea program bound to the connection.
// It returns once the player quits or the connection closes.
func (s *SSHServer) runProgram(sess ssh.Session, game *session.Session) {
	handler := bubbletea.Middleware(func(ssh.Session) (tea.Model, []tea.ProgramOption) {
		return s.newModel(sess, game)
	})
	handler(func(ssh.Session) {})(sess)
}

func (s *SSHServer) newModel(sess ssh.Session, game *session.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	opts := Options{
		ScoreLimit: s.cfg.ScoreLimit,
		Animation:  s.cfg.Animation,
		Input:      s.cfg.Input,
		Width:      pty.Window.Width,
		Height:     pty.Window.Height,
		Renderer:   NewScreenRenderer(bubbletea.MakeRenderer(sess)),
	}
	if s.store != nil {
		opts.Scores = s.store
	}

	return NewModel(game, opts), []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

// requirePTY turns away connections that cannot show the board.
func (s *SSHServer) requirePTY(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		if _, _, ok := sess.Pty(); !ok {
			s.logger.Warn("no PTY requested", "user", sess.User())
			wish.Fatalln(sess, "2048 needs an interactive terminal, try: ssh -t")
			return
		}
		next(sess)
	}
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		remote := sess.RemoteAddr().String()
		s.logger.Info("player connected", "user", sess.User(), "remote", remote)
		next(sess)
		s.logger.Info("player left", "user", sess.User(), "remote", remote, "duration", time.Since(start).Round(time.Second))
	}
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.ssh.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down SSH server")
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for open games to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.ssh.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
