package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagBestClient string
	flagBestReset  bool
)

var bestCmd = &cobra.Command{
	Use:   "best",
	Short: "Show or reset a stored best score",
	Long: `Print the best score stored for a client slot.

Slots:
  local         - t2048 play
  ssh:<user>    - t2048 serve, per SSH user
  web:<uuid>    - t2048 web, per browser cookie
  mcp           - t2048 mcp

A stored value that is not a non-negative integer reads as 0.

Examples:
  t2048 best
  t2048 best --client ssh:alice
  t2048 best --reset`,
	Args: cobra.NoArgs,
	RunE: runBest,
}

func init() {
	bestCmd.Flags().StringVar(&flagBestClient, "client", localClient, "Client slot")
	bestCmd.Flags().BoolVar(&flagBestReset, "reset", false, "Set the best score back to 0")
}

func runBest(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	store, err := requireStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	slot := storage.NewBestSlot(store, flagBestClient).
		OnError(logger.Warner("best score storage failed", "client", flagBestClient))

	if flagBestReset {
		slot.Set(0)
	}
	fmt.Printf("%s: %d\n", slot.ClientID(), slot.Get())
	return nil
}
