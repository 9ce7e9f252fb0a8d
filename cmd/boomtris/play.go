package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/platform/spectate"
	"github.com/vovakirdan/boomtris/internal/platform/tui"
	"github.com/vovakirdan/boomtris/internal/registry"
	"github.com/vovakirdan/boomtris/internal/storage"
)

var flagPlaySpectate string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing the given variant (boomtris if omitted).

Controls:
  Left/Right, A/D  - Move
  Up, W            - Rotate
  Down, S          - Soft drop
  Space            - Hard drop
  P/Esc            - Pause
  R                - Restart
  Ctrl+S           - Screenshot to ~/.boomtris/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slow start, bigger bombs
  normal - Starts at 10% speed-up, progresses with lines
  hard   - Starts at 40% speed-up, smaller dynamite
  fixed  - No progression

Examples:
  boomtris play
  boomtris play boomtris_classic
  boomtris play --difficulty hard --seed 42
  boomtris play --config ./my-boomtris.yaml
  boomtris play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlaySpectate, "spectate", "", "Serve live frames to WebSocket viewers on this address (e.g. :8080)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := gameArg(args)
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'boomtris list' to see available variants", gameID)
	}

	// A broken custom config is an error up front rather than a silent
	// fall back to defaults.
	if _, err := loadConfig(gameID); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	opts := tui.RecorderOptions{Store: store, Player: os.Getenv("USER")}
	if flagPlaySpectate != "" {
		hub, stop, err := startSpectate(flagPlaySpectate)
		if err != nil {
			return err
		}
		defer stop()
		opts.Hub = hub
	}
	rec := tui.NewRecorder(opts)
	if opts.Hub != nil {
		fmt.Printf("Spectators: %s\n", spectateURL(flagPlaySpectate, rec.SessionID()))
	}

	if err := tui.Run(game, rec, runtimeConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// runtimeConfig sizes the screen from the terminal, if there is one.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// startSpectate starts a spectator server. Its logs are discarded since
// the game owns the terminal.
func startSpectate(addr string) (*spectate.Hub, func(), error) {
	logger, err := newLogger("spectate")
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(io.Discard)

	hub := spectate.NewHub(logger)
	srv := spectate.NewServer(addr, hub)
	if _, err := srv.Start(); err != nil {
		return nil, nil, err
	}

	stop := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown on exit
		srv.Shutdown(ctx)
	}
	return hub, stop, nil
}

// spectateURL is the viewer URL for a session served on addr.
func spectateURL(addr, sessionID string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Sprintf("ws://%s/ws?session=%s", addr, sessionID)
	}
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("ws://%s/ws?session=%s", net.JoinHostPort(host, port), sessionID)
}
