package boomtris

import (
	"strings"

	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

// Snapshot state names.
const (
	StateIdle        = "idle"
	StatePlaying     = "playing"
	StatePaused      = "paused"
	StateGameOver    = "game_over"
	StatePausedSmall = "paused_small_window"
)

// Board row characters used in snapshots.
const (
	runeEmpty       = '.'
	runeSettled     = '#'
	runeCollectible = 'o'
	runeDiamond     = 'D'
	runeBig         = 'B'
)

// PieceSnapshot describes the falling or queued piece.
type PieceSnapshot struct {
	Kind  string   `json:"kind"`
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Shape []string `json:"shape"`
}

// Snapshot captures the visible game state. It is what spectators receive
// and what determinism tests compare.
type Snapshot struct {
	Tick    uint64         `json:"tick"`
	Mode    string         `json:"mode"`
	State   string         `json:"state"`
	Score   int            `json:"score"`
	Lines   int            `json:"lines"`
	Level   int            `json:"level"`
	Board   []string       `json:"board"`
	Piece   *PieceSnapshot `json:"piece,omitempty"`
	Next    PieceSnapshot  `json:"next"`
	Gravity int64          `json:"gravity_ms"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	if g.session == nil {
		return Snapshot{Mode: string(g.mode), State: StateIdle}
	}

	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.session.Status() == engine.StatusGameOver:
		state = StateGameOver
	case g.session.Status() == engine.StatusIdle:
		state = StateIdle
	case g.paused:
		state = StatePaused
	}

	st := g.session.Stats()
	snap := Snapshot{
		Tick:    g.tick,
		Mode:    string(g.mode),
		State:   state,
		Score:   st.Score,
		Lines:   st.Lines,
		Level:   st.Level,
		Board:   encodeBoard(g.session.Board()),
		Next:    pieceSnapshot(g.session.NextPiece()),
		Gravity: g.session.Gravity().Milliseconds(),
	}
	if p, ok := g.session.Piece(); ok {
		ps := pieceSnapshot(p)
		snap.Piece = &ps
	}
	return snap
}

// Frame returns the snapshot for spectators.
func (g *Game) Frame() any {
	return g.Snapshot()
}

func encodeBoard(cells [][]engine.Cell) []string {
	rows := make([]string, len(cells))
	var sb strings.Builder
	for y, row := range cells {
		sb.Reset()
		for _, c := range row {
			sb.WriteRune(cellRune(c))
		}
		rows[y] = sb.String()
	}
	return rows
}

func cellRune(c engine.Cell) rune {
	switch c.Kind {
	case engine.CellSettled:
		return runeSettled
	case engine.CellCollectible:
		return runeCollectible
	case engine.CellDiamond:
		return runeDiamond
	case engine.CellBig:
		return runeBig
	default:
		return runeEmpty
	}
}

func pieceSnapshot(p engine.Piece) PieceSnapshot {
	shape := make([]string, len(p.Shape))
	for y, row := range p.Shape {
		b := make([]byte, len(row))
		for x, on := range row {
			b[x] = runeEmpty
			if on {
				b[x] = runeSettled
			}
		}
		shape[y] = string(b)
	}
	return PieceSnapshot{Kind: p.Kind.String(), X: p.X, Y: p.Y, Shape: shape}
}
