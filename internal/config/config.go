// Package config provides YAML-based game configuration loading and
// difficulty management for Boomtris.
package config

// BoomtrisConfig contains all configuration for one Boomtris variant.
type BoomtrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Effects    EffectsConfig    `yaml:"effects"`
	Rules      RulesConfig      `yaml:"rules"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig sets the playfield size in cells.
type BoardConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// TimingConfig sets the gravity interval. Difficulty shortens it from
// GravityMS down to MinGravityMS.
type TimingConfig struct {
	GravityMS    int `yaml:"gravity_ms"`
	MinGravityMS int `yaml:"min_gravity_ms"`
}

// SpawnConfig lists special pieces with cumulative thresholds, in draw order.
type SpawnConfig struct {
	Specials []SpecialSpawn `yaml:"specials"`
}

// SpecialSpawn is one row of the spawn table.
type SpecialSpawn struct {
	Kind      string  `yaml:"kind"`      // bomb, dynamite, diamond, collectible, cross_bomb
	Threshold float64 `yaml:"threshold"` // cumulative, in (0, 1]
}

// EffectsConfig sets explosion radii.
type EffectsConfig struct {
	BombRadius     int `yaml:"bomb_radius"`
	DynamiteRadius int `yaml:"dynamite_radius"`
}

// RulesConfig holds the rule switches.
type RulesConfig struct {
	GameOver           string `yaml:"game_over"` // "halt" or "restart"
	DiamondBlocksLines bool   `yaml:"diamond_blocks_lines"`
}

// Game-over policy names.
const (
	GameOverHalt    = "halt"
	GameOverRestart = "restart"
)

// ScoringConfig sets point values.
type ScoringConfig struct {
	LinePoints          []int `yaml:"line_points"`
	DestroyedCellPoints int   `yaml:"destroyed_cell_points"`
	LinesPerLevel       int   `yaml:"lines_per_level"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// Progression types.
const (
	ProgressionLines = "lines"
	ProgressionScore = "score"
	ProgressionTime  = "time"
	ProgressionNone  = "none"
)

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "score", "time" or "none"
	MaxAt int    `yaml:"max_at"` // lines, points or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // fall speed gained at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.1
	case DifficultyHard:
		return 0.4
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// The fixed preset keeps the starting speed for the whole game.
func ApplyPreset(cfg *BoomtrisConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
		return
	}

	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Effects.BombRadius = max(cfg.Effects.BombRadius, 2)
	case DifficultyHard:
		cfg.Effects.DynamiteRadius = min(cfg.Effects.DynamiteRadius, 3)
	}
}
