package engine

// Default board dimensions.
const (
	DefaultRows = 18
	DefaultCols = 10
)

// Board is the fixed-size grid of settled cells, indexed cells[y][x].
type Board struct {
	rows  int
	cols  int
	cells [][]Cell

	// diamondsBlock makes any row holding a diamond incomplete.
	// When false, diamond rows clear and the diamonds are carried to the top.
	diamondsBlock bool
}

// NewBoard creates an empty board. Dimensions below 1 are raised to 1.
func NewBoard(rows, cols int) *Board {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	b := &Board{
		rows:          rows,
		cols:          cols,
		diamondsBlock: true,
	}
	b.cells = make([][]Cell, rows)
	for y := range b.cells {
		b.cells[y] = make([]Cell, cols)
	}
	return b
}

// Rows returns the board height.
func (b *Board) Rows() int {
	return b.rows
}

// Cols returns the board width.
func (b *Board) Cols() int {
	return b.cols
}

// SetDiamondsBlockLines controls whether a diamond keeps its row from clearing.
func (b *Board) SetDiamondsBlockLines(block bool) {
	b.diamondsBlock = block
}

// InBounds reports whether (x, y) is a board coordinate.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.cols && y >= 0 && y < b.rows
}

// At returns the cell at (x, y), or an empty cell when out of bounds.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Cell{}
	}
	return b.cells[y][x]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y][x] = c
}

// Occupied reports whether (x, y) is in bounds and non-empty.
func (b *Board) Occupied(x, y int) bool {
	return b.InBounds(x, y) && !b.cells[y][x].IsEmpty()
}

// Reset empties every cell.
func (b *Board) Reset() {
	for y := range b.cells {
		clear(b.cells[y])
	}
}

// Cells returns a deep copy of the grid.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.rows)
	for y := range b.cells {
		out[y] = make([]Cell, b.cols)
		copy(out[y], b.cells[y])
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		rows:          b.rows,
		cols:          b.cols,
		cells:         b.Cells(),
		diamondsBlock: b.diamondsBlock,
	}
}

// blocksLine reports whether a cell keeps its row from counting as complete.
func (b *Board) blocksLine(c Cell) bool {
	switch c.Kind {
	case CellEmpty, CellBig:
		return true
	case CellDiamond:
		return b.diamondsBlock
	}
	return false
}

// rowComplete reports whether row y is full of clearable cells.
// A row made only of diamonds is never complete: clearing it would reinsert
// the same row at the top.
func (b *Board) rowComplete(y int) bool {
	diamonds := 0
	for _, c := range b.cells[y] {
		if b.blocksLine(c) {
			return false
		}
		if c.Kind == CellDiamond {
			diamonds++
		}
	}
	return diamonds < b.cols
}

// ClearCompletedLines removes every complete row and returns how many were
// removed. Rows are scanned bottom-up; after a removal the same index is
// examined again because the row above has shifted into it. Diamonds in a
// removed row are carried into the fresh row inserted at the top.
func (b *Board) ClearCompletedLines() int {
	cleared := 0
	for y := b.rows - 1; y >= 0; {
		if !b.rowComplete(y) {
			y--
			continue
		}

		fresh := make([]Cell, b.cols)
		for x, c := range b.cells[y] {
			if c.Kind == CellDiamond {
				fresh[x] = c
			}
		}

		copy(b.cells[1:y+1], b.cells[:y])
		b.cells[0] = fresh
		cleared++
	}
	return cleared
}

// PromoteClusters replaces each 2x2 block of collectibles with a single big
// marker at its top-left and empties the other three cells. The scan is
// row-major; cells emptied by an earlier promotion cannot match again.
// Returns the anchor of every promotion in scan order.
func (b *Board) PromoteClusters() []Position {
	var promoted []Position
	for y := 0; y < b.rows-1; y++ {
		for x := 0; x < b.cols-1; x++ {
			if b.cells[y][x].Kind != CellCollectible ||
				b.cells[y][x+1].Kind != CellCollectible ||
				b.cells[y+1][x].Kind != CellCollectible ||
				b.cells[y+1][x+1].Kind != CellCollectible {
				continue
			}
			b.cells[y][x] = Special(CellBig)
			b.cells[y][x+1] = Cell{}
			b.cells[y+1][x] = Cell{}
			b.cells[y+1][x+1] = Cell{}
			promoted = append(promoted, Position{X: x, Y: y})
		}
	}
	return promoted
}

// AreaClear empties every in-bounds cell within the inclusive square of the
// given radius around (cx, cy). Returns how many non-empty cells were removed.
func (b *Board) AreaClear(cx, cy, radius int) int {
	if radius < 0 {
		return 0
	}
	destroyed := 0
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			destroyed += b.zero(x, y)
		}
	}
	return destroyed
}

// CrossClear empties all of column x and all of row y.
// Returns how many non-empty cells were removed.
func (b *Board) CrossClear(x, y int) int {
	destroyed := 0
	for row := 0; row < b.rows; row++ {
		destroyed += b.zero(x, row)
	}
	for col := 0; col < b.cols; col++ {
		if col == x {
			continue
		}
		destroyed += b.zero(col, y)
	}
	return destroyed
}

// zero empties one cell, returning 1 if it held something.
func (b *Board) zero(x, y int) int {
	if !b.Occupied(x, y) {
		return 0
	}
	b.cells[y][x] = Cell{}
	return 1
}

