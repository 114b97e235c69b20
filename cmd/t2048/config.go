package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the config file, .env,
T2048_* environment variables and flags, as YAML.

Save the output to ~/.t2048/config.yaml to customize it.

Examples:
  t2048 config
  t2048 config --db ./scores.db > ~/.t2048/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, source, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("# source: %s\n", source)
	_, err = os.Stdout.Write(data)
	return err
}
