package engine_test

import (
	"testing"

	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

func TestFactoryDeterministic(t *testing.T) {
	a := engine.NewFactory(42, engine.DefaultSpawnTable())
	b := engine.NewFactory(42, engine.DefaultSpawnTable())

	for i := range 500 {
		pa, pb := a.Next(), b.Next()
		if pa.Kind != pb.Kind {
			t.Fatalf("draw %d: %s != %s", i, pa.Kind, pb.Kind)
		}
	}
}

func TestFactoryPeek(t *testing.T) {
	f := engine.NewFactory(7, engine.DefaultSpawnTable())

	for range 50 {
		peeked := f.Peek()
		got := f.Next()
		if peeked.Kind != got.Kind {
			t.Fatalf("Peek returned %s but Next returned %s", peeked.Kind, got.Kind)
		}
	}
}

func TestFactoryPiecesAtOrigin(t *testing.T) {
	f := engine.NewFactory(1, engine.DefaultSpawnTable())
	for range 100 {
		p := f.Next()
		if p.X != 0 || p.Y != 0 {
			t.Fatalf("new piece should be anchored at origin, got %v", p.Position())
		}
		if p.Kind.IsSpecial() && (p.Shape.Width() != 1 || p.Shape.Height() != 1) {
			t.Fatalf("special %s should be a single cell", p.Kind)
		}
	}
}

func TestFactoryEmptyTableOnlyTetrominoes(t *testing.T) {
	table, err := engine.NewSpawnTable()
	if err != nil {
		t.Fatalf("empty table should be valid: %v", err)
	}
	f := engine.NewFactory(3, table)

	seen := make(map[engine.Kind]bool)
	for range 1000 {
		k := f.Next().Kind
		if k.IsSpecial() {
			t.Fatalf("empty table produced special %s", k)
		}
		seen[k] = true
	}
	if len(seen) != 7 {
		t.Errorf("expected all 7 tetrominoes over 1000 draws, saw %d", len(seen))
	}
}

func TestFactoryFullThreshold(t *testing.T) {
	table, err := engine.NewSpawnTable(engine.SpawnEntry{Kind: engine.KindCollectible, Threshold: 1})
	if err != nil {
		t.Fatalf("NewSpawnTable failed: %v", err)
	}
	f := engine.NewFactory(9, table)

	for range 100 {
		if k := f.Next().Kind; k != engine.KindCollectible {
			t.Fatalf("threshold 1 should always yield a collectible, got %s", k)
		}
	}
}

func TestFactorySpecialRate(t *testing.T) {
	f := engine.NewFactory(2024, engine.DefaultSpawnTable())

	const draws = 20000
	specials := 0
	for range draws {
		if f.Next().Kind.IsSpecial() {
			specials++
		}
	}

	rate := float64(specials) / draws
	if rate < 0.17 || rate > 0.23 {
		t.Errorf("expected about 20%% specials, got %.3f", rate)
	}
}

func TestNewSpawnTableValidation(t *testing.T) {
	tests := []struct {
		name    string
		entries []engine.SpawnEntry
		wantErr bool
	}{
		{"default odds", engine.DefaultSpawnTable().Entries(), false},
		{"tetromino kind", []engine.SpawnEntry{{Kind: engine.KindT, Threshold: 0.1}}, true},
		{"duplicate kind", []engine.SpawnEntry{
			{Kind: engine.KindBomb, Threshold: 0.1},
			{Kind: engine.KindBomb, Threshold: 0.2},
		}, true},
		{"not increasing", []engine.SpawnEntry{
			{Kind: engine.KindBomb, Threshold: 0.2},
			{Kind: engine.KindDiamond, Threshold: 0.2},
		}, true},
		{"decreasing", []engine.SpawnEntry{
			{Kind: engine.KindDynamite, Threshold: 0.05},
			{Kind: engine.KindBomb, Threshold: 0.02},
		}, true},
		{"zero threshold", []engine.SpawnEntry{{Kind: engine.KindBomb, Threshold: 0}}, true},
		{"above one", []engine.SpawnEntry{{Kind: engine.KindBomb, Threshold: 1.5}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewSpawnTable(tt.entries...)
			if (err != nil) != tt.wantErr {
				t.Errorf("wantErr=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for k := engine.KindI; k <= engine.KindCrossBomb; k++ {
		got, err := engine.ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := engine.ParseKind("anvil"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
