package tui

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/logging"
	"github.com/vovakirdan/boomtris/internal/platform/spectate"
	"github.com/vovakirdan/boomtris/internal/registry"
	"github.com/vovakirdan/boomtris/internal/storage"
)

// publishEvery is how many ticks pass between spectator frames when nothing
// notable happens. At 60 ticks per second viewers get 10 frames a second.
const publishEvery = 6

// RecorderOptions configure a Recorder. Every field is optional.
type RecorderOptions struct {
	Store  *storage.Store
	Hub    *spectate.Hub
	Logger *log.Logger
	Player string
	// SessionID identifies the spectator stream. Empty means a new UUID.
	SessionID string
}

// Recorder follows one player's games: it saves a score row for every
// finished run and mirrors frames to spectators.
type Recorder struct {
	store     *storage.Store
	hub       *spectate.Hub
	logger    *log.Logger
	player    string
	sessionID string

	gameID  string
	runID   string
	started time.Time
	ticks   uint64
	now     func() time.Time
}

// NewRecorder creates a recorder. Call Begin before the first Observe.
func NewRecorder(opts RecorderOptions) *Recorder {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	return &Recorder{
		store:     opts.Store,
		hub:       opts.Hub,
		logger:    logger,
		player:    opts.Player,
		sessionID: id,
		now:       time.Now,
	}
}

// SessionID returns the spectator stream ID.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

// RunID returns the ID of the run in progress.
func (r *Recorder) RunID() string {
	return r.runID
}

// Begin starts recording a new run of game.
func (r *Recorder) Begin(game registry.Game) {
	r.gameID = game.ID()
	r.startRun()
	if r.hub != nil {
		r.hub.Open(r.sessionID, r.gameID, r.player)
		r.publish(game)
	}
	r.logger.Debug("run started", "game", r.gameID, "run", r.runID, "player", r.player)
}

func (r *Recorder) startRun() {
	r.runID = uuid.NewString()
	r.started = r.now()
}

// Observe handles the result of one Step.
func (r *Recorder) Observe(game registry.Game, res core.StepResult) {
	r.ticks++
	notable := false

	for _, ev := range res.Events {
		switch ev.Type {
		case core.EventGameOver:
			r.finish(ev.Final)
			// A game that restarts by itself is already in its next run.
			r.startRun()
			notable = true
		case core.EventAreaCleared, core.EventLinesCleared, core.EventClusterPromoted:
			r.logger.Debug("event", "type", ev.Type, "value", ev.Value, "run", r.runID)
			notable = true
		}
	}

	if r.hub != nil && (notable || r.ticks%publishEvery == 0) {
		r.publish(game)
	}
}

// finish stores the final state of the current run. Empty runs are not
// worth a row.
func (r *Recorder) finish(final core.GameState) {
	duration := r.now().Sub(r.started)
	r.logger.Info("game over",
		"game", r.gameID,
		"run", r.runID,
		"player", r.player,
		"score", final.Score,
		"lines", final.Lines,
		"level", final.Level,
		"duration", duration.Round(time.Second),
	)

	if r.store == nil || final.Score <= 0 {
		return
	}
	_, err := r.store.SaveScore(storage.ScoreEntry{
		RunID:    r.runID,
		GameID:   r.gameID,
		Player:   r.player,
		Score:    final.Score,
		Lines:    final.Lines,
		Level:    final.Level,
		Duration: duration,
	})
	if err != nil {
		r.logger.Warn("could not save score", "error", err)
	}
}

func (r *Recorder) publish(game registry.Game) {
	obs, ok := game.(registry.Observable)
	if !ok {
		return
	}
	r.hub.Publish(r.sessionID, obs.Frame())
}

// End closes the spectator stream.
func (r *Recorder) End() {
	if r.hub != nil {
		r.hub.Close(r.sessionID)
	}
}
