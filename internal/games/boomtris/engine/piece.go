package engine

import (
	"fmt"

	"github.com/vovakirdan/boomtris/internal/core"
)

// Kind identifies what a piece is. The first seven are the tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
	KindBomb
	KindDynamite
	KindDiamond
	KindCollectible
	KindCrossBomb
)

// tetrominoCount is the number of normal shapes.
const tetrominoCount = 7

var kindNames = map[Kind]string{
	KindI:           "I",
	KindO:           "O",
	KindT:           "T",
	KindL:           "L",
	KindJ:           "J",
	KindS:           "S",
	KindZ:           "Z",
	KindBomb:        "bomb",
	KindDynamite:    "dynamite",
	KindDiamond:     "diamond",
	KindCollectible: "collectible",
	KindCrossBomb:   "cross_bomb",
}

// String returns the kind name used in config files and snapshots.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind converts a name produced by Kind.String back to a Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("engine: unknown piece kind %q", name)
}

// IsSpecial reports whether the kind is one of the one-cell special pieces.
func (k Kind) IsSpecial() bool {
	return k >= KindBomb && k <= KindCrossBomb
}

// IsStraight reports whether the kind is the four-cell bar.
func (k Kind) IsStraight() bool {
	return k == KindI
}

// Explosive reports whether landing the piece clears cells instead of
// placing them.
func (k Kind) Explosive() bool {
	return k == KindBomb || k == KindDynamite || k == KindCrossBomb
}

// Shape is an occupancy matrix, indexed shape[row][col].
type Shape [][]bool

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for y := range s {
		out[y] = make([]bool, len(s[y]))
		copy(out[y], s[y])
	}
	return out
}

// Cells returns the offsets of occupied cells in row-major order.
func (s Shape) Cells() []Position {
	var cells []Position
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// shapeOf builds a Shape from a 0/1 literal.
func shapeOf(rows ...[]int) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, v := range row {
			s[y][x] = v != 0
		}
	}
	return s
}

// canonicalShapes holds the spawn orientation of every tetromino.
var canonicalShapes = [tetrominoCount]Shape{
	KindI: shapeOf([]int{1, 1, 1, 1}),
	KindO: shapeOf([]int{1, 1}, []int{1, 1}),
	KindT: shapeOf([]int{1, 1, 1}, []int{0, 1, 0}),
	KindL: shapeOf([]int{1, 1, 1}, []int{1, 0, 0}),
	KindJ: shapeOf([]int{1, 1, 1}, []int{0, 0, 1}),
	KindS: shapeOf([]int{1, 1, 0}, []int{0, 1, 1}),
	KindZ: shapeOf([]int{0, 1, 1}, []int{1, 1, 0}),
}

// shapeColors is the fixed color of each tetromino.
var shapeColors = [tetrominoCount]core.Color{
	KindI: core.ColorBrightRed,
	KindO: core.ColorBrightCyan,
	KindT: core.ColorBrightGreen,
	KindL: core.ColorBrightMagenta,
	KindJ: core.ColorOrange,
	KindS: core.ColorBrightYellow,
	KindZ: core.ColorBrightBlue,
}

// CanonicalShape returns a fresh copy of the kind's spawn orientation.
// Special kinds are a single cell.
func CanonicalShape(k Kind) Shape {
	if int(k) < tetrominoCount {
		return canonicalShapes[k].Clone()
	}
	return shapeOf([]int{1})
}

// ColorOf returns the color a landed piece of this kind leaves on the board.
func ColorOf(k Kind) core.Color {
	if int(k) < tetrominoCount {
		return shapeColors[k]
	}
	return core.ColorDefault
}

// Piece is the falling shape and its anchor, the top-left of its bounding box.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// NewPiece creates a piece of the given kind in canonical orientation at (0, 0).
func NewPiece(k Kind) Piece {
	return Piece{Kind: k, Shape: CanonicalShape(k)}
}

// Position returns the anchor.
func (p Piece) Position() Position {
	return Position{X: p.X, Y: p.Y}
}

// Clone returns a copy that shares no memory with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// BoardCells returns the board coordinates of every occupied cell.
func (p Piece) BoardCells() []Position {
	cells := p.Shape.Cells()
	for i := range cells {
		cells[i].X += p.X
		cells[i].Y += p.Y
	}
	return cells
}
