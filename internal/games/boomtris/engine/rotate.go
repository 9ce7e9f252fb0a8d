package engine

// Horizontal kick limits: the bar may shift three columns, everything else two.
const (
	maxKickStraight = 3
	maxKickDefault  = 2
)

// RotateShape returns the shape turned a quarter: transpose, then reverse
// the row order. The straight piece toggles between its horizontal and
// vertical bar instead, since the general transform would not keep its
// anchor where the kicks expect it.
func RotateShape(k Kind, s Shape) Shape {
	if k.IsStraight() {
		if s.Height() == 1 {
			return shapeOf([]int{1}, []int{1}, []int{1}, []int{1})
		}
		return shapeOf([]int{1, 1, 1, 1})
	}

	w, h := s.Width(), s.Height()
	out := make(Shape, w)
	for i := range w {
		row := make([]bool, h)
		for y := range h {
			row[y] = s[y][i]
		}
		out[w-1-i] = row
	}
	return out
}

// kickOffsets lists the candidate anchor offsets tried in order after the
// unshifted rotation fails.
func kickOffsets(k Kind) []Position {
	maxKick := maxKickDefault
	if k.IsStraight() {
		maxKick = maxKickStraight
	}

	offsets := make([]Position, 0, maxKick*2+2)
	for kick := 1; kick <= maxKick; kick++ {
		offsets = append(offsets, Position{X: -kick}, Position{X: kick})
	}
	if k.IsStraight() {
		offsets = append(offsets, Position{Y: -1}, Position{Y: -2})
	}
	return offsets
}

// TryRotate rotates p in place if the rotated shape fits at the current
// anchor or at one of the kick offsets. On failure p is left untouched and
// false is returned.
func TryRotate(b *Board, p *Piece) bool {
	rotated := RotateShape(p.Kind, p.Shape)

	if CanPlace(b, rotated, p.Position()) {
		p.Shape = rotated
		return true
	}

	for _, off := range kickOffsets(p.Kind) {
		pos := Position{X: p.X + off.X, Y: p.Y + off.Y}
		if CanPlace(b, rotated, pos) {
			p.Shape = rotated
			p.X, p.Y = pos.X, pos.Y
			return true
		}
	}
	return false
}
