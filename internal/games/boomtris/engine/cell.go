// Package engine implements the Boomtris board and piece simulation.
// It has no terminal, storage or logging dependencies: the platform drives it
// through Session commands and observes it through snapshots and a Listener.
package engine

import "github.com/vovakirdan/boomtris/internal/core"

// CellKind tags what a board cell holds.
type CellKind uint8

const (
	CellEmpty       CellKind = iota
	CellSettled              // landed tetromino block, see Cell.Color
	CellCollectible          // collectible piece, promotes in 2x2 clusters
	CellDiamond              // survives line clears
	CellBig                  // promoted collectible cluster, anchored top-left
)

// String returns a short name for the kind.
func (k CellKind) String() string {
	switch k {
	case CellEmpty:
		return "empty"
	case CellSettled:
		return "settled"
	case CellCollectible:
		return "collectible"
	case CellDiamond:
		return "diamond"
	case CellBig:
		return "big"
	default:
		return "unknown"
	}
}

// Cell is one board square. The zero value is empty.
type Cell struct {
	Kind  CellKind
	Color core.Color // only meaningful for CellSettled
}

// Settled returns a cell holding a landed block of the given color.
func Settled(c core.Color) Cell {
	return Cell{Kind: CellSettled, Color: c}
}

// Special returns a cell holding a persistent marker.
func Special(k CellKind) Cell {
	return Cell{Kind: k}
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// Position is a board coordinate. Origin is top-left, Y grows downward.
type Position struct {
	X, Y int
}

// RegionKind distinguishes the shapes an explosion can clear.
type RegionKind uint8

const (
	RegionSquare RegionKind = iota // inclusive square of Radius around Center
	RegionCross                    // full row and full column through Center
)

// Region describes the cells zeroed by one explosion.
type Region struct {
	Kind   RegionKind
	Center Position
	Radius int // RegionSquare only
}

// Contains reports whether (x, y) lies inside the region.
// Board bounds are not applied.
func (r Region) Contains(x, y int) bool {
	if r.Kind == RegionCross {
		return x == r.Center.X || y == r.Center.Y
	}
	return x >= r.Center.X-r.Radius && x <= r.Center.X+r.Radius &&
		y >= r.Center.Y-r.Radius && y <= r.Center.Y+r.Radius
}
