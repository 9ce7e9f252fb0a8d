package engine

// CanPlace reports whether shape anchored at pos fits on the board: every
// occupied cell must map inside the grid onto an empty cell. It does not
// modify anything.
func CanPlace(b *Board, shape Shape, pos Position) bool {
	for y, row := range shape {
		for x, filled := range row {
			if !filled {
				continue
			}
			bx, by := pos.X+x, pos.Y+y
			if bx < 0 || bx >= b.cols || by < 0 || by >= b.rows {
				return false
			}
			if !b.cells[by][bx].IsEmpty() {
				return false
			}
		}
	}
	return true
}

// Fits reports whether the piece fits at its own position shifted by (dx, dy).
func Fits(b *Board, p Piece, dx, dy int) bool {
	return CanPlace(b, p.Shape, Position{X: p.X + dx, Y: p.Y + dy})
}
