package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boomtris/internal/config"
	"github.com/vovakirdan/boomtris/internal/games/boomtris"
	"github.com/vovakirdan/boomtris/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config [variant]",
	Short: "Print the effective config",
	Long: `Print the config a variant would play with, as YAML.

The config is looked up in this order:
  1. --config <path>
  2. ~/.boomtris/configs/<variant>.yaml
  3. ./configs/<variant>.yaml
  4. built-in defaults

The --difficulty preset is applied on top. Redirect the output to a file
to start a custom config:
  boomtris config > ~/.boomtris/configs/boomtris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q", gameID)
	}

	cfg, err := loadConfig(gameID)
	if err != nil {
		return err
	}
	config.ApplyPreset(&cfg, config.ParsePreset(flagDifficulty))

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// loadConfig loads the config for a game ID honoring --config.
func loadConfig(gameID string) (config.BoomtrisConfig, error) {
	cfg, err := config.LoadVariant(boomtris.ConfigVariant(gameID), flagConfig)
	if err != nil {
		return config.BoomtrisConfig{}, err
	}
	return cfg, nil
}
