package engine

import (
	"fmt"
	"time"
)

// Status is the controller state.
type Status int

const (
	StatusIdle     Status = iota // not started, board frozen
	StatusRunning                // gravity and commands active
	StatusGameOver               // a spawn was blocked; waits for Restart
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// GameOverPolicy decides what happens after a blocked spawn.
type GameOverPolicy int

const (
	// PolicyHalt stays in StatusGameOver until Restart is called.
	PolicyHalt GameOverPolicy = iota
	// PolicyRestart reports the game over and immediately starts a fresh game.
	PolicyRestart
)

// DefaultGravity is the fall interval of the active piece.
const DefaultGravity = 500 * time.Millisecond

// Scoring configures points awarded by the session.
type Scoring struct {
	LinePoints          []int // indexed by lines cleared at once, times level
	DestroyedCellPoints int   // per non-empty cell removed by an explosion
	LinesPerLevel       int
}

// DefaultScoring returns the classic line table.
func DefaultScoring() Scoring {
	return Scoring{
		LinePoints:          []int{0, 100, 300, 500, 800},
		DestroyedCellPoints: 5,
		LinesPerLevel:       10,
	}
}

// Rules bundles everything a session needs to know about a variant.
type Rules struct {
	Rows, Cols         int
	Gravity            time.Duration
	Spawn              SpawnTable
	Effects            Effects
	Scoring            Scoring
	GameOver           GameOverPolicy
	DiamondsBlockLines bool

	// Source builds the piece source for each game. Nil means a Factory
	// over Spawn.
	Source func(seed int64) PieceSource
}

// DefaultRules returns the standard 18x10 game.
func DefaultRules() Rules {
	return Rules{
		Rows:               DefaultRows,
		Cols:               DefaultCols,
		Gravity:            DefaultGravity,
		Spawn:              DefaultSpawnTable(),
		Effects:            DefaultEffects(),
		Scoring:            DefaultScoring(),
		GameOver:           PolicyHalt,
		DiamondsBlockLines: true,
	}
}

// Stats are the running totals of one game.
type Stats struct {
	Score     int
	Lines     int
	Level     int
	Pieces    int
	Destroyed int // cells removed by explosions
	Promoted  int // collectible clusters promoted
}

// Listener observes session events. Calls happen synchronously inside the
// command or tick that caused them.
type Listener interface {
	LinesCleared(n int)
	AreaCleared(r Region)
	ClusterPromoted(at Position)
	GameOver(final Stats)
}

// NopListener ignores every event. Embed it to implement only some methods.
type NopListener struct{}

func (NopListener) LinesCleared(int) {}
func (NopListener) AreaCleared(Region) {}
func (NopListener) ClusterPromoted(Position) {}
func (NopListener) GameOver(Stats) {}

// Session owns one game: board, falling piece, factory and totals.
// It is not safe for concurrent use; callers serialize commands and ticks.
type Session struct {
	rules    Rules
	seed     int64
	games    int64
	board    *Board
	source   PieceSource
	piece    Piece
	status   Status
	stats    Stats
	gravity  time.Duration
	elapsed  time.Duration
	listener Listener
}

// NewSession creates an idle session. Call Start to begin play.
func NewSession(rules Rules, seed int64) *Session {
	if rules.Gravity <= 0 {
		rules.Gravity = DefaultGravity
	}
	if rules.Scoring.LinesPerLevel <= 0 {
		rules.Scoring.LinesPerLevel = DefaultScoring().LinesPerLevel
	}
	s := &Session{
		rules:    rules,
		seed:     seed,
		board:    NewBoard(rules.Rows, rules.Cols),
		gravity:  rules.Gravity,
		listener: NopListener{},
	}
	s.board.SetDiamondsBlockLines(rules.DiamondsBlockLines)
	s.source = s.newSource(seed)
	return s
}

func (s *Session) newSource(seed int64) PieceSource {
	if s.rules.Source != nil {
		return s.rules.Source(seed)
	}
	return NewFactory(seed, s.rules.Spawn)
}

// SetListener installs the event observer. Nil restores the no-op listener.
func (s *Session) SetListener(l Listener) {
	if l == nil {
		l = NopListener{}
	}
	s.listener = l
}

// SetGravity changes the fall interval. Non-positive values are ignored.
func (s *Session) SetGravity(d time.Duration) {
	if d > 0 {
		s.gravity = d
	}
}

// Gravity returns the current fall interval.
func (s *Session) Gravity() time.Duration {
	return s.gravity
}

// Start begins a game from Idle or GameOver. Returns false if already running.
func (s *Session) Start() bool {
	if s.status == StatusRunning {
		return false
	}
	s.reset()
	return true
}

// Restart abandons the current game, if any, and starts a fresh one.
func (s *Session) Restart() bool {
	s.reset()
	return true
}

// reset empties the board, zeroes totals and spawns the first piece.
func (s *Session) reset() {
	s.board.Reset()
	if s.games > 0 {
		s.source = s.newSource(s.seed + s.games)
	}
	s.games++
	s.stats = Stats{Level: 1}
	s.gravity = s.rules.Gravity
	s.elapsed = 0
	s.status = StatusRunning
	s.spawn()
}

// SpawnPosition is where new pieces appear.
func (s *Session) SpawnPosition() Position {
	return Position{X: s.board.Cols()/2 - 1, Y: 0}
}

// spawn takes the next piece from the source. A piece that does not fit at
// the spawn position ends the game.
func (s *Session) spawn() {
	s.piece = s.source.Next()
	pos := s.SpawnPosition()
	s.piece.X, s.piece.Y = pos.X, pos.Y

	if !CanPlace(s.board, s.piece.Shape, pos) {
		s.endGame()
	}
}

// endGame reports the final totals and applies the game-over policy.
func (s *Session) endGame() {
	s.status = StatusGameOver
	final := s.stats
	s.listener.GameOver(final)

	// A game that ended before its first landing would end again on the
	// fresh board, so it halts even under PolicyRestart.
	if s.rules.GameOver == PolicyRestart && final.Pieces > 0 {
		s.reset()
	}
}

// Tick advances the gravity clock by elapsed and performs one Step for every
// full interval. Returns the number of steps taken.
func (s *Session) Tick(elapsed time.Duration) int {
	if s.status != StatusRunning || elapsed <= 0 {
		return 0
	}

	s.elapsed += elapsed
	steps := 0
	for s.elapsed >= s.gravity {
		s.elapsed -= s.gravity
		games := s.games
		s.Step()
		steps++
		if s.status != StatusRunning || s.games != games {
			s.elapsed = 0
			break
		}
	}
	return steps
}

// Step applies one unit of gravity: the piece moves down one row, or lands
// if it cannot. Returns true if the piece moved.
func (s *Session) Step() bool {
	if s.status != StatusRunning {
		return false
	}
	if Fits(s.board, s.piece, 0, 1) {
		s.piece.Y++
		return true
	}
	s.land()
	return false
}

// land merges the piece, applies effects and line clears, then spawns.
func (s *Session) land() {
	res := Merge(s.board, s.piece, s.rules.Effects)
	s.stats.Pieces++

	for _, r := range res.Regions {
		s.listener.AreaCleared(r)
	}
	if res.Destroyed > 0 {
		s.stats.Destroyed += res.Destroyed
		s.stats.Score += res.Destroyed * s.rules.Scoring.DestroyedCellPoints
	}
	for _, at := range res.Promoted {
		s.stats.Promoted++
		s.listener.ClusterPromoted(at)
	}

	if !res.SkipLines {
		if n := s.board.ClearCompletedLines(); n > 0 {
			s.stats.Score += s.linePoints(n) * s.stats.Level
			s.stats.Lines += n
			s.stats.Level = 1 + s.stats.Lines/s.rules.Scoring.LinesPerLevel
			s.listener.LinesCleared(n)
		}
	}

	s.spawn()
}

// linePoints looks up the table, saturating at its last entry.
func (s *Session) linePoints(n int) int {
	table := s.rules.Scoring.LinePoints
	if len(table) == 0 {
		return 0
	}
	if n >= len(table) {
		n = len(table) - 1
	}
	return table[n]
}

// MoveLeft shifts the piece one column left if it fits.
func (s *Session) MoveLeft() bool {
	return s.shift(-1, 0)
}

// MoveRight shifts the piece one column right if it fits.
func (s *Session) MoveRight() bool {
	return s.shift(1, 0)
}

// SoftDrop moves the piece one row down if it fits. It never lands the piece.
func (s *Session) SoftDrop() bool {
	return s.shift(0, 1)
}

func (s *Session) shift(dx, dy int) bool {
	if s.status != StatusRunning || !Fits(s.board, s.piece, dx, dy) {
		return false
	}
	s.piece.X += dx
	s.piece.Y += dy
	return true
}

// HardDrop moves the piece to its resting row and lands it immediately.
func (s *Session) HardDrop() bool {
	if s.status != StatusRunning {
		return false
	}
	for Fits(s.board, s.piece, 0, 1) {
		s.piece.Y++
	}
	s.land()
	s.elapsed = 0
	return true
}

// Rotate turns the piece a quarter, trying wall kicks. A rotation that finds
// no room is abandoned and reported as false.
func (s *Session) Rotate() bool {
	if s.status != StatusRunning {
		return false
	}
	return TryRotate(s.board, &s.piece)
}

// Status returns the controller state.
func (s *Session) Status() Status {
	return s.status
}

// Stats returns the running totals.
func (s *Session) Stats() Stats {
	return s.stats
}

// Rules returns the rules the session was created with.
func (s *Session) Rules() Rules {
	return s.rules
}

// Board returns a copy of the settled cells.
func (s *Session) Board() [][]Cell {
	return s.board.Cells()
}

// SetBoard replaces the settled cells, for scripted setups and puzzles.
// cells must match the board dimensions and should leave the falling piece
// clear.
func (s *Session) SetBoard(cells [][]Cell) error {
	if len(cells) != s.board.Rows() {
		return fmt.Errorf("engine: board has %d rows, got %d", s.board.Rows(), len(cells))
	}
	for y, row := range cells {
		if len(row) != s.board.Cols() {
			return fmt.Errorf("engine: row %d has %d cells, want %d", y, len(row), s.board.Cols())
		}
	}
	for y, row := range cells {
		for x, c := range row {
			s.board.Set(x, y, c)
		}
	}
	return nil
}

// Piece returns a copy of the falling piece. The second result is false
// while idle.
func (s *Session) Piece() (Piece, bool) {
	if s.status == StatusIdle {
		return Piece{}, false
	}
	return s.piece.Clone(), true
}

// NextPiece returns the queued piece.
func (s *Session) NextPiece() Piece {
	return s.source.Peek()
}

// DropDistance returns how many rows the piece can still fall.
func (s *Session) DropDistance() int {
	if s.status != StatusRunning {
		return 0
	}
	d := 0
	for Fits(s.board, s.piece, 0, d+1) {
		d++
	}
	return d
}
