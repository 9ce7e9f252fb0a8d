// boomtris is a falling-block puzzle game for the terminal, with bombs,
// dynamite, diamonds and collectibles.
//
// Usage:
//
//	boomtris list              - List available variants
//	boomtris play [variant]    - Play a variant (default: boomtris)
//	boomtris menu              - Pick a variant interactively
//	boomtris serve             - Start SSH server for remote play
//	boomtris scores [variant]  - Show high scores
//	boomtris config [variant]  - Print the effective config as YAML
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.boomtris/scores.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/boomtris/internal/config"
	"github.com/vovakirdan/boomtris/internal/games/boomtris"
	"github.com/vovakirdan/boomtris/internal/logging"
)

const defaultGame = "boomtris"

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "boomtris",
	Short: "Boomtris - falling blocks that explode",
	Long: `Boomtris is a falling-block puzzle game for your terminal.

Besides the seven classic pieces you will catch:
  @@ bomb         clears a 3x3 area where it lands
  !! dynamite     clears a 9x9 area where it lands
  ++ cross-bomb   clears its whole row and column
  <> diamond      never cleared by lines
  oo collectible  four in a square turn into a big one

Examples:
  boomtris play
  boomtris play boomtris_classic --difficulty hard
  boomtris menu
  boomtris serve --ssh :2222 --spectate :8080
  boomtris scores`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		boomtris.SetConfigPath(flagConfig)
		boomtris.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.boomtris/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds a logger at the --log-level level.
func newLogger(prefix string) (*log.Logger, error) {
	return logging.New(logging.Options{Prefix: prefix, Level: flagLogLevel})
}

// gameArg returns the variant named on the command line, or the default.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGame
}
