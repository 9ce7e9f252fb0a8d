package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boomtris/internal/core"
)

func newTestModel(g *stubGame) Model {
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m.Init()
	return m
}

// send runs msg through Update and returns the new model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10})
	if cmd := m.Init(); cmd == nil {
		t.Error("Init should schedule a tick")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelKeysReachNextTick(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := send(t, m, TickMsg{})
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	_, _ = send(t, m, TickMsg{})

	if len(g.inputs) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.inputs))
	}
	if !g.inputs[0].Has(core.ActionLeft) || !g.inputs[0].Has(core.ActionRotate) {
		t.Error("first tick missing pressed actions")
	}
	if g.inputs[1].Has(core.ActionLeft) {
		t.Error("input frame not cleared between ticks")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&stubGame{})
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelEscPausesWithoutMenu(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	_, _ = send(t, m, TickMsg{})
	if !g.inputs[0].Has(core.ActionPause) {
		t.Error("esc should pause when there is no menu")
	}
}

func TestModelBackToMenuAfterGameOver(t *testing.T) {
	g := &stubGame{next: []core.StepResult{gameOver(100, 1)}}
	m := newTestModel(g).WithBackToMenu()

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc during play should not leave the game")
	}

	m, _ = send(t, m, TickMsg{})
	if !m.GameState().GameOver {
		t.Fatal("expected game over state")
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc at game over should go back to the menu")
	}

	// Ticks stop once the model is done.
	if _, cmd := send(t, m, TickMsg{}); cmd != nil {
		t.Error("tick after leaving should not reschedule")
	}
}

func TestModelRestartAfterGameOver(t *testing.T) {
	g := &stubGame{next: []core.StepResult{gameOver(100, 1)}}
	m := newTestModel(g)

	m, _ = send(t, m, TickMsg{})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m, _ = send(t, m, TickMsg{})

	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
	if m.GameState().GameOver {
		t.Error("game still over after restart")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &stubGame{}
	m := newTestModel(g)

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if g.resized != [2]int{100, 40} {
		t.Errorf("resized = %v, want [100 40]", g.resized)
	}
	if g.resets != 1 {
		t.Errorf("resize reset the game (%d resets)", g.resets)
	}
	if !strings.HasPrefix(m.View(), "stub") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestModelRestartTimesNextRunFromRestart(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(RecorderOptions{Store: store})
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rec.now = func() time.Time { return clock }

	g := &stubGame{next: []core.StepResult{gameOver(100, 1)}}
	m := NewModel(g, rec, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 1})
	m.Init()

	m, _ = send(t, m, TickMsg{})

	// Five minutes on the game over screen.
	clock = clock.Add(5 * time.Minute)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m, _ = send(t, m, TickMsg{})

	clock = clock.Add(30 * time.Second)
	g.next = []core.StepResult{gameOver(200, 2)}
	send(t, m, TickMsg{})

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 2 {
		t.Fatalf("saved %d scores, want 2", len(scores))
	}
	if scores[0].Score != 200 || scores[0].Duration != 30*time.Second {
		t.Errorf("second run = score %d duration %v, want 200 in 30s", scores[0].Score, scores[0].Duration)
	}
}
