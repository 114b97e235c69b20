package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/platform"
	"github.com/vovakirdan/t2048/internal/platform/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve 2048 as MCP tools over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout so an agent can
play 2048 with the state, move and new_game tools.

Logs go to stderr, keeping stdout for the protocol.

Example MCP client entry:
  {"command": "t2048", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) error {
	cfg, logger, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer logger.Close()

	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	sess := platform.NewSession(store, mcp.ClientID, logger.Logger, platform.NewRand(flagSeed))
	server := mcp.NewServer(sess, version)

	logger.Info("serving MCP tools on stdio")
	err = server.ServeStdio()
	sess.Restart()
	if err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
