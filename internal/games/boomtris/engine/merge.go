package engine

// Explosion radii observed in play.
const (
	DefaultBombRadius     = 1
	DefaultDynamiteRadius = 4
)

// Effects configures how special pieces act when they land.
type Effects struct {
	BombRadius     int
	DynamiteRadius int
}

// DefaultEffects returns the standard radii.
func DefaultEffects() Effects {
	return Effects{
		BombRadius:     DefaultBombRadius,
		DynamiteRadius: DefaultDynamiteRadius,
	}
}

// MergeResult describes what landing a piece did to the board.
type MergeResult struct {
	Placed    int        // cells written to the board
	Regions   []Region   // explosions, in cell order
	Destroyed int        // non-empty cells removed by explosions
	Promoted  []Position // anchors of new big markers
	SkipLines bool       // line clearing must not run for this landing
}

// Merge commits a landed piece to the board. Normal pieces, diamonds and
// collectibles write their marker; bombs, dynamite and cross-bombs clear
// cells around their own position instead. Collectible clusters are
// promoted afterwards.
func Merge(b *Board, p Piece, fx Effects) MergeResult {
	var res MergeResult

	for _, pos := range p.BoardCells() {
		switch p.Kind {
		case KindBomb:
			res.explode(b, Region{Kind: RegionSquare, Center: pos, Radius: fx.BombRadius})
		case KindDynamite:
			res.explode(b, Region{Kind: RegionSquare, Center: pos, Radius: fx.DynamiteRadius})
		case KindCrossBomb:
			res.explode(b, Region{Kind: RegionCross, Center: pos})
		case KindDiamond:
			res.place(b, pos, Special(CellDiamond))
		case KindCollectible:
			res.place(b, pos, Special(CellCollectible))
		default:
			res.place(b, pos, Settled(ColorOf(p.Kind)))
		}
	}

	res.Promoted = b.PromoteClusters()
	res.SkipLines = p.Kind == KindBomb || p.Kind == KindDynamite
	return res
}

func (r *MergeResult) place(b *Board, pos Position, c Cell) {
	if !b.InBounds(pos.X, pos.Y) {
		return
	}
	b.Set(pos.X, pos.Y, c)
	r.Placed++
}

func (r *MergeResult) explode(b *Board, region Region) {
	switch region.Kind {
	case RegionCross:
		r.Destroyed += b.CrossClear(region.Center.X, region.Center.Y)
	default:
		r.Destroyed += b.AreaClear(region.Center.X, region.Center.Y, region.Radius)
	}
	r.Regions = append(r.Regions, region)
}
