package engine

import (
	"fmt"
	"math/rand"
)

// SpawnEntry gives a special kind the draws strictly below Threshold that no
// earlier entry claimed.
type SpawnEntry struct {
	Kind      Kind
	Threshold float64
}

// SpawnTable is an ordered, validated list of cumulative special-piece
// thresholds. Draws at or above the last threshold yield a tetromino.
type SpawnTable struct {
	entries []SpawnEntry
}

// NewSpawnTable validates entries: kinds must be distinct special kinds and
// thresholds strictly increasing within (0, 1].
func NewSpawnTable(entries ...SpawnEntry) (SpawnTable, error) {
	seen := make(map[Kind]bool, len(entries))
	prev := 0.0
	for i, e := range entries {
		if !e.Kind.IsSpecial() {
			return SpawnTable{}, fmt.Errorf("engine: spawn entry %d: %s is not a special piece", i, e.Kind)
		}
		if seen[e.Kind] {
			return SpawnTable{}, fmt.Errorf("engine: spawn entry %d: %s listed twice", i, e.Kind)
		}
		seen[e.Kind] = true
		if e.Threshold <= prev || e.Threshold > 1 {
			return SpawnTable{}, fmt.Errorf("engine: spawn entry %d: threshold %.3f for %s must be in (%.3f, 1]",
				i, e.Threshold, e.Kind, prev)
		}
		prev = e.Threshold
	}

	t := SpawnTable{entries: make([]SpawnEntry, len(entries))}
	copy(t.entries, entries)
	return t, nil
}

// DefaultSpawnTable returns the standard special-piece odds:
// 2% dynamite, 8% bomb, 3% diamond, 5% collectible, 2% cross-bomb.
func DefaultSpawnTable() SpawnTable {
	t, err := NewSpawnTable(
		SpawnEntry{Kind: KindDynamite, Threshold: 0.02},
		SpawnEntry{Kind: KindBomb, Threshold: 0.10},
		SpawnEntry{Kind: KindDiamond, Threshold: 0.13},
		SpawnEntry{Kind: KindCollectible, Threshold: 0.18},
		SpawnEntry{Kind: KindCrossBomb, Threshold: 0.20},
	)
	if err != nil {
		panic(err)
	}
	return t
}

// Entries returns a copy of the table rows.
func (t SpawnTable) Entries() []SpawnEntry {
	out := make([]SpawnEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// pick returns the special kind claimed by draw r, if any.
func (t SpawnTable) pick(r float64) (Kind, bool) {
	for _, e := range t.entries {
		if r < e.Threshold {
			return e.Kind, true
		}
	}
	return 0, false
}

// PieceSource supplies falling pieces with one piece of lookahead.
type PieceSource interface {
	Next() Piece
	Peek() Piece
}

// Factory produces the next falling piece. It keeps one piece of lookahead
// so the platform can preview it.
type Factory struct {
	rng   *rand.Rand
	table SpawnTable
	next  Piece
}

// NewFactory creates a factory drawing from a seeded RNG.
func NewFactory(seed int64, table SpawnTable) *Factory {
	f := &Factory{
		rng:   rand.New(rand.NewSource(seed)),
		table: table,
	}
	f.next = f.draw()
	return f
}

// draw makes one random piece: a special if the first draw falls under a
// threshold, otherwise a uniformly chosen tetromino.
func (f *Factory) draw() Piece {
	if k, ok := f.table.pick(f.rng.Float64()); ok {
		return NewPiece(k)
	}
	return NewPiece(Kind(f.rng.Intn(tetrominoCount)))
}

// Next returns the queued piece and queues a new one.
func (f *Factory) Next() Piece {
	p := f.next
	f.next = f.draw()
	return p
}

// Peek returns a copy of the queued piece without consuming it.
func (f *Factory) Peek() Piece {
	return f.next.Clone()
}
