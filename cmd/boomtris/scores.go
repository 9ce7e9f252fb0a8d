package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/boomtris/internal/registry"
	"github.com/vovakirdan/boomtris/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores for a variant",
	Long: `Display the top 10 high scores for the given variant (boomtris if omitted).

Examples:
  boomtris scores
  boomtris scores boomtris_classic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'boomtris list' to see available variants", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'boomtris play %s' to set the first high score!\n", gameID)
		return nil
	}

	writeScores(out, scores)

	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Avg: %.0f  Lines: %d\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.TotalLines)
	}
	return nil
}

// writeScores prints the score table.
func writeScores(out io.Writer, scores []storage.ScoreEntry) {
	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-5s  %-3s  %-6s  %s\n",
		"Rank", "Player", "Score", "Lines", "Lvl", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-12s  %-8s  %-5s  %-3s  %-6s  %s\n",
		"----", "------", "-----", "-----", "---", "----", "----")

	for i, e := range scores {
		player := e.Player
		if player == "" {
			player = "-"
		}
		if len(player) > 12 {
			player = player[:12]
		}
		fmt.Fprintf(out, "  %-4d  %-12s  %-8d  %-5d  %-3d  %-6s  %s\n",
			i+1, player, e.Score, e.Lines, e.Level, clock(e.Duration), e.CreatedAt.Format("2006-01-02 15:04"))
	}
}

// clock formats a duration as m:ss.
func clock(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
