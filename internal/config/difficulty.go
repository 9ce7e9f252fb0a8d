package config

import (
	"math"
	"time"
)

// Progress is what a game has achieved so far, as seen by the
// difficulty manager.
type Progress struct {
	Lines   int
	Score   int
	Elapsed time.Duration
}

// DifficultyManager calculates the gravity interval from game progress.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case ProgressionLines:
		progress = float64(p.Lines) / maxAt
	case ProgressionScore:
		progress = float64(p.Score) / maxAt
	case ProgressionTime:
		progress = p.Elapsed.Seconds() / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GravityInterval returns how long the piece waits before falling one row.
// Fall speed grows from 1x to (1 + speed_multiplier)x as the level goes
// from 0 to 1; the interval never drops below floor.
func (d *DifficultyManager) GravityInterval(base, floor time.Duration, p Progress) time.Duration {
	speed := 1.0 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
	if speed < 1 {
		speed = 1
	}
	interval := time.Duration(float64(base) / speed)
	return max(interval, floor)
}

func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
