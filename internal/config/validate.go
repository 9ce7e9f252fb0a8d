package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

// Board limits. Pieces spawn at column cols/2-1, so the horizontal bar
// needs cols/2+3 <= cols, which holds from five columns up. Four rows fit
// the tallest spawn shape.
const (
	minBoardRows = 4
	minBoardCols = 5
	maxBoardSide = 64
)

// Validate checks every field and reports all problems at once.
func (c BoomtrisConfig) Validate() error {
	var errs []error

	if c.Board.Rows < minBoardRows || c.Board.Rows > maxBoardSide {
		errs = append(errs, fmt.Errorf("board.rows %d out of range [%d, %d]", c.Board.Rows, minBoardRows, maxBoardSide))
	}
	if c.Board.Cols < minBoardCols || c.Board.Cols > maxBoardSide {
		errs = append(errs, fmt.Errorf("board.cols %d out of range [%d, %d]", c.Board.Cols, minBoardCols, maxBoardSide))
	}
	if c.Timing.GravityMS <= 0 {
		errs = append(errs, fmt.Errorf("timing.gravity_ms must be positive, got %d", c.Timing.GravityMS))
	}
	if c.Timing.MinGravityMS <= 0 || c.Timing.MinGravityMS > c.Timing.GravityMS {
		errs = append(errs, fmt.Errorf("timing.min_gravity_ms must be in (0, gravity_ms], got %d", c.Timing.MinGravityMS))
	}
	if c.Effects.BombRadius < 0 || c.Effects.DynamiteRadius < 0 {
		errs = append(errs, errors.New("effects radii must not be negative"))
	}
	if _, err := c.policy(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.spawnTable(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Scoring.LinePoints) == 0 {
		errs = append(errs, errors.New("scoring.line_points must not be empty"))
	}
	if c.Scoring.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("scoring.lines_per_level must be positive, got %d", c.Scoring.LinesPerLevel))
	}
	switch c.Difficulty.Progression.Type {
	case ProgressionLines, ProgressionScore, ProgressionTime, ProgressionNone, "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q unknown", c.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}

func (c BoomtrisConfig) policy() (engine.GameOverPolicy, error) {
	switch c.Rules.GameOver {
	case GameOverHalt, "":
		return engine.PolicyHalt, nil
	case GameOverRestart:
		return engine.PolicyRestart, nil
	default:
		return 0, fmt.Errorf("rules.game_over %q must be %q or %q", c.Rules.GameOver, GameOverHalt, GameOverRestart)
	}
}

func (c BoomtrisConfig) spawnTable() (engine.SpawnTable, error) {
	entries := make([]engine.SpawnEntry, 0, len(c.Spawn.Specials))
	for _, s := range c.Spawn.Specials {
		k, err := engine.ParseKind(s.Kind)
		if err != nil {
			return engine.SpawnTable{}, fmt.Errorf("spawn.specials: %w", err)
		}
		entries = append(entries, engine.SpawnEntry{Kind: k, Threshold: s.Threshold})
	}
	t, err := engine.NewSpawnTable(entries...)
	if err != nil {
		return engine.SpawnTable{}, fmt.Errorf("spawn.specials: %w", err)
	}
	return t, nil
}

// GravityBase returns the starting gravity interval.
func (c BoomtrisConfig) GravityBase() time.Duration {
	return time.Duration(c.Timing.GravityMS) * time.Millisecond
}

// GravityFloor returns the shortest gravity interval difficulty may reach.
func (c BoomtrisConfig) GravityFloor() time.Duration {
	return time.Duration(c.Timing.MinGravityMS) * time.Millisecond
}

// EngineRules converts the config into session rules.
func (c BoomtrisConfig) EngineRules() (engine.Rules, error) {
	if err := c.Validate(); err != nil {
		return engine.Rules{}, fmt.Errorf("config: %w", err)
	}
	policy, _ := c.policy()
	table, _ := c.spawnTable()

	points := make([]int, len(c.Scoring.LinePoints))
	copy(points, c.Scoring.LinePoints)

	return engine.Rules{
		Rows:    c.Board.Rows,
		Cols:    c.Board.Cols,
		Gravity: c.GravityBase(),
		Spawn:   table,
		Effects: engine.Effects{
			BombRadius:     c.Effects.BombRadius,
			DynamiteRadius: c.Effects.DynamiteRadius,
		},
		Scoring: engine.Scoring{
			LinePoints:          points,
			DestroyedCellPoints: c.Scoring.DestroyedCellPoints,
			LinesPerLevel:       c.Scoring.LinesPerLevel,
		},
		GameOver:           policy,
		DiamondsBlockLines: c.Rules.DiamondBlocksLines,
	}, nil
}
