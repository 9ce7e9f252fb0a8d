package boomtris

import (
	"fmt"

	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

// Every board cell is two characters wide so squares look square.
const cellWidth = 2

const (
	panelWidth = 18
	panelGap   = 2
)

// glyph is how one cell is drawn.
type glyph struct {
	text  string
	color core.Color
}

var (
	glyphEmpty       = glyph{"  ", core.ColorDefault}
	glyphCollectible = glyph{"oo", core.ColorYellow}
	glyphBig         = glyph{"OO", core.ColorBrightYellow}
	glyphDiamond     = glyph{"<>", core.ColorBrightCyan}
	glyphBomb        = glyph{"@@", core.ColorRed}
	glyphDynamite    = glyph{"!!", core.ColorOrange}
	glyphCross       = glyph{"++", core.ColorBrightMagenta}
	glyphGhost       = glyph{"░░", core.ColorGray}
	glyphGhostBlast  = glyph{"××", core.ColorGray}
	glyphFlash       = glyph{"**", core.ColorBrightWhite}
)

// cellGlyph maps a settled board cell to its glyph.
func cellGlyph(c engine.Cell) glyph {
	switch c.Kind {
	case engine.CellSettled:
		return glyph{"██", c.Color}
	case engine.CellCollectible:
		return glyphCollectible
	case engine.CellDiamond:
		return glyphDiamond
	case engine.CellBig:
		return glyphBig
	default:
		return glyphEmpty
	}
}

// pieceGlyph maps a falling piece kind to its glyph.
func pieceGlyph(k engine.Kind) glyph {
	switch k {
	case engine.KindBomb:
		return glyphBomb
	case engine.KindDynamite:
		return glyphDynamite
	case engine.KindCrossBomb:
		return glyphCross
	case engine.KindDiamond:
		return glyphDiamond
	case engine.KindCollectible:
		return glyphCollectible
	default:
		return glyph{"██", engine.ColorOf(k)}
	}
}

func (g *Game) boardSize() (rows, cols int) {
	if g.session == nil {
		return engine.DefaultRows, engine.DefaultCols
	}
	r := g.session.Rules()
	return r.Rows, r.Cols
}

// layoutSize returns the minimum screen size: the boxed board, the side
// panel and one title row.
func (g *Game) layoutSize() (w, h int) {
	rows, cols := g.boardSize()
	return cols*cellWidth + 2 + panelGap + panelWidth, rows + 3
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.session == nil {
		return
	}

	rows, cols := g.boardSize()
	w, h := g.layoutSize()
	originX := core.Max(0, (g.screenW-w)/2)
	originY := core.Max(0, (g.screenH-h)/2)

	box := core.NewRect(originX, originY+1, cols*cellWidth+2, rows+2)
	title := g.Title()
	dst.DrawTextColor(box.X+(box.W-len(title))/2, originY, title, core.ColorBrightWhite)
	dst.DrawBox(box, core.ColorGray)

	g.renderBoard(dst, box.X+1, box.Y+1)
	g.renderPanel(dst, box.Right()+panelGap, box.Y)
	g.renderOverlays(dst, box)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.layoutSize()
	y := g.screenH / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", w, h, g.screenW, g.screenH), core.ColorGray)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

func (g *Game) drawCell(dst *core.Screen, ox, oy, x, y int, gl glyph) {
	dst.DrawTextColor(ox+x*cellWidth, oy+y, gl.text, gl.color)
}

// renderBoard draws settled cells, explosion flashes, the ghost and the
// falling piece, in that order.
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	cells := g.session.Board()
	for y, row := range cells {
		for x, c := range row {
			if !c.IsEmpty() {
				g.drawCell(dst, ox, oy, x, y, cellGlyph(c))
			}
		}
	}

	for _, f := range g.flashes {
		for y, row := range cells {
			for x, c := range row {
				if c.IsEmpty() && f.region.Contains(x, y) {
					g.drawCell(dst, ox, oy, x, y, glyphFlash)
				}
			}
		}
	}

	p, ok := g.session.Piece()
	if !ok || g.session.Status() != engine.StatusRunning {
		return
	}

	if d := g.session.DropDistance(); d > 0 {
		ghost := glyphGhost
		if p.Kind.Explosive() {
			ghost = glyphGhostBlast
		}
		for _, pos := range p.BoardCells() {
			g.drawCell(dst, ox, oy, pos.X, pos.Y+d, ghost)
		}
	}

	gl := pieceGlyph(p.Kind)
	for _, pos := range p.BoardCells() {
		g.drawCell(dst, ox, oy, pos.X, pos.Y, gl)
	}
}

// renderPanel draws score, next piece and a legend to the right of the board.
func (g *Game) renderPanel(dst *core.Screen, x, y int) {
	st := g.session.Stats()
	lines := []string{
		fmt.Sprintf("Score  %d", st.Score),
		fmt.Sprintf("Lines  %d", st.Lines),
		fmt.Sprintf("Level  %d", st.Level),
	}
	for i, line := range lines {
		dst.DrawText(x, y+i, line)
	}

	y += len(lines) + 1
	dst.DrawTextColor(x, y, "Next", core.ColorGray)
	next := g.session.NextPiece()
	gl := pieceGlyph(next.Kind)
	for _, pos := range next.Shape.Cells() {
		dst.DrawTextColor(x+pos.X*cellWidth, y+1+pos.Y, gl.text, gl.color)
	}

	y += 4
	legend := []struct {
		g    glyph
		text string
	}{
		{glyphBomb, "bomb"},
		{glyphDynamite, "dynamite"},
		{glyphCross, "cross"},
		{glyphDiamond, "diamond"},
		{glyphCollectible, "collect 2x2"},
		{glyphBig, "big"},
	}
	for i, l := range legend {
		dst.DrawTextColor(x, y+i, l.g.text, l.g.color)
		dst.DrawTextColor(x+3, y+i, l.text, core.ColorGray)
	}

	dst.DrawTextColor(x, y+len(legend)+1, Version, core.ColorGray)
}

// renderOverlays draws pause and game over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	centerX := board.X + board.W/2
	centerY := board.Y + board.H/2

	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "P to resume")
		return
	}

	if g.session.Status() == engine.StatusGameOver {
		st := g.session.Stats()
		g.drawOverlay(dst, centerX, centerY,
			"GAME OVER",
			fmt.Sprintf("Score %d", st.Score),
			"R to restart",
		)
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = core.Max(maxLen, len([]rune(line)))
	}

	r := core.NewRect(centerX-(maxLen+4)/2, centerY-(len(lines)+2)/2, maxLen+4, len(lines)+2)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, core.ColorBrightWhite)

	for i, line := range lines {
		dst.DrawTextColor(centerX-len([]rune(line))/2, r.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→: Move | ↑: Rotate | ↓: Soft drop | Space: Drop | P: Pause | R: Restart | Q: Quit"
}
