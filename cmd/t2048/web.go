package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/platform/web"
)

var (
	flagWebAddr   string
	flagPublicURL string
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the embeddable 2048 web widget",
	Long: `Start an HTTP server with a 2048 widget page that plays over a WebSocket.

Routes:
  /         - Widget page (frame it with an iframe)
  /embed    - The iframe snippet to paste into another page
  /ws       - WebSocket play channel
  /healthz  - Health check

Each browser is identified by a cookie and keeps its own best score.

Examples:
  t2048 web
  t2048 web --addr :9000
  t2048 web --public-url https://2048.example.com`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (overrides config)")
	webCmd.Flags().StringVar(&flagPublicURL, "public-url", "", "Public base URL used in page metadata (overrides config)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	if flagWebAddr != "" {
		cfg.Web.Addr = flagWebAddr
	}
	if flagPublicURL != "" {
		cfg.Web.PublicURL = flagPublicURL
	}

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(cfg.Web, store, logger.Logger)

	fmt.Printf("Serving 2048 widget on %s\n", cfg.Web.Addr)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx)
}
