package config

import (
	_ "embed"

	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

//go:embed defaults/boomtris.yaml
var defaultBoomtrisYAML []byte

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

// Variants with an embedded default file.
const (
	VariantStandard = "boomtris"
	VariantClassic  = "classic"
)

// embeddedDefaults maps a variant to its embedded YAML.
var embeddedDefaults = map[string][]byte{
	VariantStandard: defaultBoomtrisYAML,
	VariantClassic:  defaultClassicYAML,
}

// DefaultBoomtrisConfig returns the standard configuration without reading
// any file. It matches defaults/boomtris.yaml.
func DefaultBoomtrisConfig() BoomtrisConfig {
	specials := make([]SpecialSpawn, 0, 5)
	for _, e := range engine.DefaultSpawnTable().Entries() {
		specials = append(specials, SpecialSpawn{Kind: e.Kind.String(), Threshold: e.Threshold})
	}
	scoring := engine.DefaultScoring()

	return BoomtrisConfig{
		Board: BoardConfig{
			Rows: engine.DefaultRows,
			Cols: engine.DefaultCols,
		},
		Timing: TimingConfig{
			GravityMS:    int(engine.DefaultGravity.Milliseconds()),
			MinGravityMS: 100,
		},
		Spawn: SpawnConfig{Specials: specials},
		Effects: EffectsConfig{
			BombRadius:     engine.DefaultBombRadius,
			DynamiteRadius: engine.DefaultDynamiteRadius,
		},
		Rules: RulesConfig{
			GameOver:           GameOverHalt,
			DiamondBlocksLines: true,
		},
		Scoring: ScoringConfig{
			LinePoints:          scoring.LinePoints,
			DestroyedCellPoints: scoring.DestroyedCellPoints,
			LinesPerLevel:       scoring.LinesPerLevel,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionLines,
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 4.0,
			},
		},
	}
}

// DefaultClassicConfig returns the classic variant: no special pieces and no
// points for destroyed cells.
func DefaultClassicConfig() BoomtrisConfig {
	cfg := DefaultBoomtrisConfig()
	cfg.Spawn.Specials = nil
	cfg.Scoring.DestroyedCellPoints = 0
	return cfg
}

// defaultFor returns the hardcoded fallback for a variant.
func defaultFor(variant string) BoomtrisConfig {
	if variant == VariantClassic {
		return DefaultClassicConfig()
	}
	return DefaultBoomtrisConfig()
}
