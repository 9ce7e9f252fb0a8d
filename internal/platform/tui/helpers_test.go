package tui

import (
	"path/filepath"
	"testing"

	"github.com/vovakirdan/boomtris/internal/core"
	"github.com/vovakirdan/boomtris/internal/registry"
	"github.com/vovakirdan/boomtris/internal/storage"
)

// stubGame is a scripted registry.Game.
type stubGame struct {
	resets  int
	steps   int
	resized [2]int
	inputs  []core.InputFrame
	state   core.GameState
	next    []core.StepResult // results returned by the following Steps
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{Level: 1}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.inputs = append(g.inputs, in)
	if len(g.next) > 0 {
		res := g.next[0]
		g.next = g.next[1:]
		g.state = res.State
		return res
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func (g *stubGame) Frame() any { return map[string]int{"steps": g.steps} }

var (
	_ registry.Game       = (*stubGame)(nil)
	_ registry.Resizable  = (*stubGame)(nil)
	_ registry.Observable = (*stubGame)(nil)
)

func gameOver(score, lines int) core.StepResult {
	final := core.GameState{Score: score, Lines: lines, Level: 2, GameOver: true}
	return core.StepResult{
		State:  final,
		Events: []core.Event{{Type: core.EventGameOver, Value: score, Final: final}},
	}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}
