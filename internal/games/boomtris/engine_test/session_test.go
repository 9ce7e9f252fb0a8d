package engine_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/games/boomtris/engine"
)

func TestSessionIdleIgnoresCommands(t *testing.T) {
	s := engine.NewSession(engine.DefaultRules(), 1)

	if s.Status() != engine.StatusIdle {
		t.Fatalf("expected idle, got %s", s.Status())
	}
	if _, ok := s.Piece(); ok {
		t.Error("idle session should have no piece")
	}

	commands := map[string]func() bool{
		"left":     s.MoveLeft,
		"right":    s.MoveRight,
		"down":     s.SoftDrop,
		"rotate":   s.Rotate,
		"harddrop": s.HardDrop,
		"step":     s.Step,
	}
	for name, cmd := range commands {
		if cmd() {
			t.Errorf("%s should be a no-op while idle", name)
		}
	}
	if n := s.Tick(time.Hour); n != 0 {
		t.Errorf("Tick while idle took %d steps", n)
	}
}

func TestSessionStart(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindI), 1)

	if !s.Start() {
		t.Fatal("Start from idle should succeed")
	}
	if s.Start() {
		t.Error("Start while running should be refused")
	}

	p, ok := s.Piece()
	if !ok {
		t.Fatal("running session should have a piece")
	}
	if p.Position() != (engine.Position{X: 4, Y: 0}) {
		t.Errorf("expected spawn at (4,0), got %v", p.Position())
	}
	if st := s.Stats(); st.Level != 1 || st.Score != 0 {
		t.Errorf("unexpected initial stats %+v", st)
	}
}

func TestSessionGravity(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindO), 1)
	s.Start()

	if n := s.Tick(499 * time.Millisecond); n != 0 {
		t.Fatalf("expected no step before the interval, got %d", n)
	}
	if n := s.Tick(time.Millisecond); n != 1 {
		t.Fatalf("expected 1 step at the interval, got %d", n)
	}
	if p, _ := s.Piece(); p.Y != 1 {
		t.Errorf("expected piece at row 1, got %d", p.Y)
	}

	if n := s.Tick(1500 * time.Millisecond); n != 3 {
		t.Errorf("expected 3 steps, got %d", n)
	}
	if p, _ := s.Piece(); p.Y != 4 {
		t.Errorf("expected piece at row 4, got %d", p.Y)
	}

	s.SetGravity(100 * time.Millisecond)
	if n := s.Tick(250 * time.Millisecond); n != 2 {
		t.Errorf("expected 2 steps at faster gravity, got %d", n)
	}
}

func TestSessionMovesRespectWalls(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindO), 1)
	s.Start()

	moved := 0
	for s.MoveLeft() {
		moved++
	}
	if moved != 4 {
		t.Errorf("expected 4 moves to the left wall, got %d", moved)
	}

	moved = 0
	for s.MoveRight() {
		moved++
	}
	if moved != 8 {
		t.Errorf("expected 8 moves to the right wall, got %d", moved)
	}

	if d := s.DropDistance(); d != 16 {
		t.Errorf("expected drop distance 16, got %d", d)
	}
	for s.SoftDrop() {
	}
	if p, _ := s.Piece(); p.Y != 16 {
		t.Errorf("soft drop should stop on the floor, got row %d", p.Y)
	}
	if s.Stats().Pieces != 0 {
		t.Error("soft drop must never land the piece")
	}
}

func TestSessionStepLandsPiece(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindO), 1)
	s.Start()

	for s.Step() {
	}
	if s.Stats().Pieces != 1 {
		t.Fatalf("expected one landed piece, got %d", s.Stats().Pieces)
	}
	board := s.Board()
	for _, pos := range []engine.Position{{X: 4, Y: 16}, {X: 5, Y: 16}, {X: 4, Y: 17}, {X: 5, Y: 17}} {
		if board[pos.Y][pos.X].Kind != engine.CellSettled {
			t.Errorf("expected settled cell at %v", pos)
		}
	}
	if p, _ := s.Piece(); p.Position() != (engine.Position{X: 4, Y: 0}) {
		t.Errorf("next piece should spawn at (4,0), got %v", p.Position())
	}
}

func TestSessionStraightPiecesClearLine(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindI), 1)
	rec := &recorder{}
	s.SetListener(rec)
	s.Start()

	// Horizontal bar at the left wall.
	for s.MoveLeft() {
	}
	s.HardDrop()

	// Horizontal bar from the spawn column.
	s.HardDrop()

	// Vertical bars in columns 8 and 9.
	for _, col := range []int{8, 9} {
		if !s.Rotate() {
			t.Fatal("rotation at spawn should succeed")
		}
		for {
			p, _ := s.Piece()
			if p.X == col || !s.MoveRight() {
				break
			}
		}
		if p, _ := s.Piece(); p.X != col {
			t.Fatalf("expected bar in column %d, got %d", col, p.X)
		}
		s.HardDrop()
	}

	st := s.Stats()
	if st.Pieces != 4 || st.Lines != 1 {
		t.Fatalf("expected 4 pieces and 1 line, got %+v", st)
	}
	if st.Score != 100 {
		t.Errorf("expected score 100, got %d", st.Score)
	}
	if !reflect.DeepEqual(rec.lines, []int{1}) {
		t.Errorf("expected one LinesCleared(1) event, got %v", rec.lines)
	}

	board := s.Board()
	for y := 0; y < 18; y++ {
		for x := 0; x < 10; x++ {
			want := y >= 15 && x >= 8
			if got := !board[y][x].IsEmpty(); got != want {
				t.Errorf("(%d,%d): occupied=%v want %v", x, y, got, want)
			}
		}
	}
}

func TestSessionGameOverHalts(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindO), 1)
	rec := &recorder{}
	s.SetListener(rec)
	s.Start()

	for range 9 {
		if s.Status() != engine.StatusRunning {
			t.Fatal("game ended too early")
		}
		s.HardDrop()
	}

	if s.Status() != engine.StatusGameOver {
		t.Fatalf("expected game over after 9 stacked pieces, got %s", s.Status())
	}
	if len(rec.overs) != 1 || rec.overs[0].Pieces != 9 {
		t.Fatalf("expected one GameOver event with 9 pieces, got %+v", rec.overs)
	}
	if s.MoveLeft() || s.Rotate() || s.HardDrop() || s.Tick(time.Second) != 0 {
		t.Error("commands must be ignored after game over")
	}

	if !s.Restart() {
		t.Fatal("Restart should succeed after game over")
	}
	if s.Status() != engine.StatusRunning || s.Stats().Pieces != 0 {
		t.Errorf("restart should begin a fresh game, got %s %+v", s.Status(), s.Stats())
	}
	for _, row := range s.Board() {
		for _, c := range row {
			if !c.IsEmpty() {
				t.Fatal("board should be empty after restart")
			}
		}
	}
}

func TestSessionGameOverRestartPolicy(t *testing.T) {
	rules := rulesWith(engine.KindO)
	rules.GameOver = engine.PolicyRestart
	s := engine.NewSession(rules, 1)
	rec := &recorder{}
	s.SetListener(rec)
	s.Start()

	for range 9 {
		s.HardDrop()
	}

	if s.Status() != engine.StatusRunning {
		t.Fatalf("restart policy should keep the session running, got %s", s.Status())
	}
	if len(rec.overs) != 1 {
		t.Fatalf("expected one GameOver event, got %d", len(rec.overs))
	}
	if s.Stats().Pieces != 0 {
		t.Errorf("stats should reset after auto-restart, got %+v", s.Stats())
	}
}

func TestSessionBombScoresDestroyedCells(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindO, engine.KindBomb), 1)
	rec := &recorder{}
	s.SetListener(rec)
	s.Start()

	s.HardDrop() // O on rows 16-17
	s.HardDrop() // bomb lands at (4,15)

	want := engine.Region{Kind: engine.RegionSquare, Center: engine.Position{X: 4, Y: 15}, Radius: 1}
	if len(rec.areas) != 1 || rec.areas[0] != want {
		t.Fatalf("expected explosion %+v, got %+v", want, rec.areas)
	}

	st := s.Stats()
	if st.Destroyed != 2 || st.Score != 10 {
		t.Errorf("expected 2 destroyed for 10 points, got %+v", st)
	}

	board := s.Board()
	if !board[16][4].IsEmpty() || !board[16][5].IsEmpty() {
		t.Error("bomb should clear the top of the O")
	}
	if board[17][4].IsEmpty() || board[17][5].IsEmpty() {
		t.Error("bomb radius should not reach row 17")
	}
}

func TestSessionCollectiblesPromote(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindCollectible), 1)
	rec := &recorder{}
	s.SetListener(rec)
	s.Start()

	s.HardDrop() // (4,17)
	s.MoveRight()
	s.HardDrop() // (5,17)
	s.HardDrop() // (4,16)
	s.MoveRight()
	s.HardDrop() // (5,16)

	if !reflect.DeepEqual(rec.promoted, []engine.Position{{X: 4, Y: 16}}) {
		t.Fatalf("expected promotion at (4,16), got %v", rec.promoted)
	}
	board := s.Board()
	if board[16][4].Kind != engine.CellBig {
		t.Errorf("expected big marker at (4,16), got %s", board[16][4].Kind)
	}
	if s.Stats().Promoted != 1 {
		t.Errorf("expected Promoted=1, got %d", s.Stats().Promoted)
	}
}

func TestSessionNextPiece(t *testing.T) {
	s := engine.NewSession(rulesWith(engine.KindT, engine.KindS, engine.KindZ), 1)
	s.Start()

	for range 5 {
		next := s.NextPiece().Kind
		s.HardDrop()
		if p, _ := s.Piece(); p.Kind != next {
			t.Fatalf("preview said %s, spawned %s", next, p.Kind)
		}
	}
}

func TestSessionDeterministic(t *testing.T) {
	play := func() ([][]engine.Cell, engine.Stats) {
		s := engine.NewSession(engine.DefaultRules(), 99)
		s.Start()
		for i := range 60 {
			switch i % 4 {
			case 0:
				s.MoveLeft()
			case 1:
				s.Rotate()
			case 2:
				s.MoveRight()
				s.MoveRight()
			}
			s.Tick(engine.DefaultGravity * 3)
			if i%3 == 0 {
				s.HardDrop()
			}
			if s.Status() == engine.StatusGameOver {
				s.Restart()
			}
		}
		return s.Board(), s.Stats()
	}

	b1, st1 := play()
	b2, st2 := play()
	if st1 != st2 {
		t.Errorf("stats differ: %+v vs %+v", st1, st2)
	}
	if !reflect.DeepEqual(b1, b2) {
		t.Error("boards differ between identical runs")
	}
}

func TestSessionExplosionsSkipLineClear(t *testing.T) {
	tests := []struct {
		kind     engine.Kind
		fullFrom int // rows from here down stay complete after the blast
	}{
		{engine.KindBomb, 11},
		{engine.KindDynamite, 14},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			s := engine.NewSession(rulesWith(tt.kind), 1)
			rec := &recorder{}
			s.SetListener(rec)
			s.Start()

			cells := s.Board()
			for y := 10; y < len(cells); y++ {
				for x := range cells[y] {
					cells[y][x] = engine.Settled(core.ColorWhite)
				}
			}
			if err := s.SetBoard(cells); err != nil {
				t.Fatalf("SetBoard: %v", err)
			}

			s.HardDrop() // lands on row 9

			if len(rec.areas) != 1 {
				t.Fatalf("expected one explosion, got %+v", rec.areas)
			}
			if len(rec.lines) != 0 || s.Stats().Lines != 0 {
				t.Errorf("explosion must not clear lines, got events %v stats %+v", rec.lines, s.Stats())
			}
			board := s.Board()
			for y := tt.fullFrom; y < len(board); y++ {
				for x, c := range board[y] {
					if c.IsEmpty() {
						t.Fatalf("complete row %d lost cell %d", y, x)
					}
				}
			}
		})
	}
}

func TestSessionSetBoardRejectsWrongSize(t *testing.T) {
	s := engine.NewSession(engine.DefaultRules(), 1)

	if err := s.SetBoard(make([][]engine.Cell, 3)); err == nil {
		t.Error("expected error for too few rows")
	}
	cells := s.Board()
	cells[5] = cells[5][:4]
	if err := s.SetBoard(cells); err == nil {
		t.Error("expected error for a short row")
	}
}

func TestSessionRestartPolicyHaltsOnBlockedFirstSpawn(t *testing.T) {
	rules := rulesWith(engine.KindI)
	rules.Cols = 4
	rules.GameOver = engine.PolicyRestart
	s := engine.NewSession(rules, 1)
	rec := &recorder{}
	s.SetListener(rec)
	s.Start()

	if s.Status() != engine.StatusGameOver {
		t.Fatalf("expected game over, got %s", s.Status())
	}
	if len(rec.overs) != 1 {
		t.Errorf("expected a single GameOver event, got %d", len(rec.overs))
	}
}
