package engine_test

import (
	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

// fill sets every cell of the board to a settled block.
func fill(b *engine.Board) {
	for y := 0; y < b.Rows(); y++ {
		fillRow(b, y)
	}
}

// fillRow sets every cell of row y to a settled block.
func fillRow(b *engine.Board, y int) {
	for x := 0; x < b.Cols(); x++ {
		b.Set(x, y, engine.Settled(core.ColorWhite))
	}
}

// sequence is a PieceSource that cycles through a fixed list of kinds.
type sequence struct {
	kinds []engine.Kind
	i     int
}

func (s *sequence) Next() engine.Piece {
	p := engine.NewPiece(s.kinds[s.i%len(s.kinds)])
	s.i++
	return p
}

func (s *sequence) Peek() engine.Piece {
	return engine.NewPiece(s.kinds[s.i%len(s.kinds)])
}

// rulesWith returns default rules whose pieces cycle through kinds.
func rulesWith(kinds ...engine.Kind) engine.Rules {
	rules := engine.DefaultRules()
	rules.Source = func(int64) engine.PieceSource {
		return &sequence{kinds: kinds}
	}
	return rules
}

// recorder captures listener events.
type recorder struct {
	engine.NopListener
	lines    []int
	areas    []engine.Region
	promoted []engine.Position
	overs    []engine.Stats
}

func (r *recorder) LinesCleared(n int) { r.lines = append(r.lines, n) }
func (r *recorder) AreaCleared(reg engine.Region) { r.areas = append(r.areas, reg) }
func (r *recorder) ClusterPromoted(at engine.Position) { r.promoted = append(r.promoted, at) }
func (r *recorder) GameOver(final engine.Stats) { r.overs = append(r.overs, final) }
