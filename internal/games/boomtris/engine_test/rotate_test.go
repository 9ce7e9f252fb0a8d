package engine_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

func TestRotateStraightIsTwoCycle(t *testing.T) {
	horizontal := engine.CanonicalShape(engine.KindI)

	vertical := engine.RotateShape(engine.KindI, horizontal)
	if vertical.Width() != 1 || vertical.Height() != 4 {
		t.Fatalf("expected 1x4 vertical bar, got %dx%d", vertical.Width(), vertical.Height())
	}

	back := engine.RotateShape(engine.KindI, vertical)
	if !reflect.DeepEqual(back, horizontal) {
		t.Errorf("two rotations of the bar should restore it, got %v", back)
	}
}

func TestRotateShapeQuarterTurn(t *testing.T) {
	got := engine.RotateShape(engine.KindT, engine.CanonicalShape(engine.KindT))
	want := engine.Shape{
		{true, false},
		{true, true},
		{true, false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("T rotation: expected %v, got %v", want, got)
	}
}

func TestRotateShapeFourTurnsIsIdentity(t *testing.T) {
	kinds := []engine.Kind{
		engine.KindO, engine.KindT, engine.KindL,
		engine.KindJ, engine.KindS, engine.KindZ,
	}

	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			start := engine.CanonicalShape(k)
			s := start
			for range 4 {
				s = engine.RotateShape(k, s)
			}
			if !reflect.DeepEqual(s, start) {
				t.Errorf("four rotations changed the shape: %v", s)
			}
		})
	}
}

func TestTryRotateKicks(t *testing.T) {
	vertical := engine.RotateShape(engine.KindI, engine.CanonicalShape(engine.KindI))
	tRight := engine.RotateShape(engine.KindT, engine.CanonicalShape(engine.KindT))

	tests := []struct {
		name  string
		piece engine.Piece
		want  engine.Position
	}{
		{
			name:  "no kick needed",
			piece: engine.Piece{Kind: engine.KindI, Shape: vertical, X: 4, Y: 5},
			want:  engine.Position{X: 4, Y: 5},
		},
		{
			name:  "bar kicks three left off the right wall",
			piece: engine.Piece{Kind: engine.KindI, Shape: vertical, X: 9, Y: 5},
			want:  engine.Position{X: 6, Y: 5},
		},
		{
			name:  "bar kicks up off the floor",
			piece: engine.Piece{Kind: engine.KindI, Shape: engine.CanonicalShape(engine.KindI), X: 3, Y: 16},
			want:  engine.Position{X: 3, Y: 14},
		},
		{
			name:  "T kicks one left off the right wall",
			piece: engine.Piece{Kind: engine.KindT, Shape: tRight, X: 8, Y: 5},
			want:  engine.Position{X: 7, Y: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := engine.NewBoard(18, 10)
			p := tt.piece.Clone()

			if !engine.TryRotate(b, &p) {
				t.Fatal("expected rotation to succeed")
			}
			if p.Position() != tt.want {
				t.Errorf("expected anchor %v, got %v", tt.want, p.Position())
			}
			if !engine.CanPlace(b, p.Shape, p.Position()) {
				t.Error("rotated piece does not fit where it was left")
			}
		})
	}
}

func TestTryRotateLeftKickBeforeRight(t *testing.T) {
	// Both x-1 and x+1 fit; the left kick is tried first.
	b := engine.NewBoard(18, 10)
	tRight := engine.RotateShape(engine.KindT, engine.CanonicalShape(engine.KindT))
	p := engine.Piece{Kind: engine.KindT, Shape: tRight, X: 4, Y: 5}
	b.Set(5, 5, engine.Settled(core.ColorRed))

	if !engine.TryRotate(b, &p) {
		t.Fatal("expected rotation to succeed")
	}
	if p.X != 3 {
		t.Errorf("expected left kick to x=3, got x=%d", p.X)
	}
}

func TestTryRotateRightKickBeforeLeftTwo(t *testing.T) {
	// x and x-1 are blocked; x+1 and x-2 both fit, and +1 comes first.
	b := engine.NewBoard(18, 10)
	p := engine.NewPiece(engine.KindT)
	p.X, p.Y = 4, 5
	b.Set(4, 7, engine.Settled(core.ColorRed))
	b.Set(3, 7, engine.Settled(core.ColorRed))

	if !engine.TryRotate(b, &p) {
		t.Fatal("expected rotation to succeed")
	}
	if p.X != 5 || p.Y != 5 {
		t.Errorf("expected kick to (5,5), got (%d,%d)", p.X, p.Y)
	}
}

func TestTryRotateFailureLeavesPiece(t *testing.T) {
	b := engine.NewBoard(18, 10)
	fill(b)
	for y := 0; y < 18; y++ {
		b.Set(4, y, engine.Cell{})
	}

	vertical := engine.RotateShape(engine.KindI, engine.CanonicalShape(engine.KindI))
	p := engine.Piece{Kind: engine.KindI, Shape: vertical, X: 4, Y: 10}

	if engine.TryRotate(b, &p) {
		t.Fatal("rotation in a one-wide well should fail")
	}
	if p.X != 4 || p.Y != 10 || p.Shape.Height() != 4 {
		t.Errorf("failed rotation changed the piece: %+v", p)
	}
}
