// Package boomtris adapts the engine to the game platform: it maps input
// frames to session commands, drives gravity from the platform tick, and
// renders the board into the screen buffer.
package boomtris

import (
	"time"

	"github.com/vovakirdan/boomtris/internal/config"
	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
	"github.com/vovakirdan/boomtris/internal/registry"
)

// Version is shown in the HUD.
const Version = "v0.14"

// Mode selects the variant.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeClassic  Mode = "classic"
)

// flashTicks is how long a cleared region stays highlighted.
const flashTicks = 12

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// ConfigVariant returns the config variant a registered game ID loads.
func ConfigVariant(gameID string) string {
	if gameID == "boomtris_classic" {
		return config.VariantClassic
	}
	return config.VariantStandard
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

func init() {
	registry.Register("boomtris", func() registry.Game {
		return New()
	})
	registry.Register("boomtris_classic", func() registry.Game {
		return NewClassic()
	})
}

// flash is a recently cleared region kept for rendering.
type flash struct {
	region engine.Region
	ttl    int
}

// Game implements registry.Game on top of an engine.Session.
type Game struct {
	mode   Mode
	preset *config.DifficultyPreset // overrides difficultyPreset when set

	cfg        config.BoomtrisConfig
	cfgErr     error
	difficulty *config.DifficultyManager
	session    *engine.Session

	tick    uint64
	dt      time.Duration // simulated time per platform tick
	played  time.Duration // simulated time in the current run
	paused  bool
	flashes []flash
	events  []core.Event

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a standard Boomtris game.
func New() *Game {
	return &Game{mode: ModeStandard}
}

// NewClassic creates a game without special pieces.
func NewClassic() *Game {
	return &Game{mode: ModeClassic}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeClassic {
		return "boomtris_classic"
	}
	return "boomtris"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeClassic {
		return "Boomtris (Classic)"
	}
	return "Boomtris"
}

// SetDifficulty sets the preset for this instance only. It takes effect on
// the next Reset. Servers use it so sessions do not share the package-wide
// preset.
func (g *Game) SetDifficulty(preset string) {
	p := config.ParsePreset(preset)
	g.preset = &p
}

// ConfigError returns the error from the last config load, if any.
// The game falls back to defaults when loading fails.
func (g *Game) ConfigError() error {
	return g.cfgErr
}

// Reset loads the config and starts a new run.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadVariant(ConfigVariant(g.ID()), configPath)
	g.cfgErr = err
	if err != nil {
		cfg = config.DefaultBoomtrisConfig()
		if g.mode == ModeClassic {
			cfg = config.DefaultClassicConfig()
		}
	}
	preset := difficultyPreset
	if g.preset != nil {
		preset = *g.preset
	}
	config.ApplyPreset(&cfg, preset)
	g.cfg = cfg

	rules, err := cfg.EngineRules()
	if err != nil {
		g.cfgErr = err
		rules = engine.DefaultRules()
	}

	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.session = engine.NewSession(rules, runtime.Seed)
	g.session.SetListener(&sink{g: g})

	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.dt = time.Second / time.Duration(tickRate)

	g.tick = 0
	g.played = 0
	g.paused = false
	g.flashes = nil
	g.events = nil

	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.checkScreenSize()

	g.session.Start()
	g.updateGravity()
}

// checkScreenSize checks if the screen can fit the board and side panel.
func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.screenW < w || g.screenH < h
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.events = nil

	if g.tooSmall {
		return g.result()
	}

	if in.Has(core.ActionPause) && g.session.Status() == engine.StatusRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return g.result()
	}

	g.ageFlashes()

	if g.session.Status() != engine.StatusRunning {
		// Restart after game over is done by the platform via Reset.
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		g.session.Restart()
		g.played = 0
		g.flashes = nil
		g.updateGravity()
		return g.result()
	}

	g.applyInput(in)

	if g.session.Status() == engine.StatusRunning {
		g.played += g.dt
		g.session.Tick(g.dt)
		g.updateGravity()
	}

	return g.result()
}

// applyInput runs the commands of one frame. Rotation and shifts come
// before the drop so a piece can be steered on the tick it is dropped.
func (g *Game) applyInput(in core.InputFrame) {
	s := g.session
	if in.Has(core.ActionRotate) {
		s.Rotate()
	}
	if in.Has(core.ActionLeft) {
		s.MoveLeft()
	}
	if in.Has(core.ActionRight) {
		s.MoveRight()
	}
	if in.Has(core.ActionSoftDrop) {
		s.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		s.HardDrop()
	}
}

// updateGravity applies the difficulty curve to the session.
func (g *Game) updateGravity() {
	st := g.session.Stats()
	g.session.SetGravity(g.difficulty.GravityInterval(
		g.cfg.GravityBase(),
		g.cfg.GravityFloor(),
		config.Progress{Lines: st.Lines, Score: st.Score, Elapsed: g.played},
	))
}

func (g *Game) ageFlashes() {
	kept := g.flashes[:0]
	for _, f := range g.flashes {
		if f.ttl--; f.ttl > 0 {
			kept = append(kept, f)
		}
	}
	g.flashes = kept
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.Stats()
	return core.GameState{
		Score:    st.Score,
		Lines:    st.Lines,
		Level:    st.Level,
		GameOver: g.session.Status() == engine.StatusGameOver,
		Paused:   g.paused,
	}
}

// Session exposes the underlying session for tests and tools.
func (g *Game) Session() *engine.Session {
	return g.session
}

// sink turns engine events into platform events.
type sink struct {
	g *Game
}

func (s *sink) LinesCleared(n int) {
	s.g.events = append(s.g.events, core.Event{Type: core.EventLinesCleared, Value: n})
}

func (s *sink) AreaCleared(r engine.Region) {
	s.g.flashes = append(s.g.flashes, flash{region: r, ttl: flashTicks})
	s.g.events = append(s.g.events, core.Event{Type: core.EventAreaCleared, Value: r.Radius})
}

func (s *sink) ClusterPromoted(engine.Position) {
	s.g.events = append(s.g.events, core.Event{Type: core.EventClusterPromoted, Value: 1})
}

func (s *sink) GameOver(final engine.Stats) {
	s.g.paused = false
	s.g.events = append(s.g.events, core.Event{
		Type:  core.EventGameOver,
		Value: final.Score,
		Final: core.GameState{
			Score:    final.Score,
			Lines:    final.Lines,
			Level:    final.Level,
			GameOver: true,
		},
	})
	s.g.played = 0
}

// Resize adapts the layout to a new screen size. The run continues.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}
