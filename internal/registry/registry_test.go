package registry

import (
	"testing"

	"github.com/vovakirdan/boomtris/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })
	Register("aa_stub", func() Game { return &stubGame{id: "aa_stub"} })

	if !Exists("zz_stub") || Exists("missing") {
		t.Fatal("Exists mismatch")
	}

	g, err := Create("aa_stub")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "aa_stub" {
		t.Errorf("created wrong game %q", g.ID())
	}
	if _, err := Create("missing"); err == nil {
		t.Error("expected error for unknown game")
	}

	list := List()
	aa, zz := -1, -1
	for i, info := range list {
		switch info.ID {
		case "aa_stub":
			aa = i
			if info.Title != "Stub aa_stub" {
				t.Errorf("unexpected title %q", info.Title)
			}
		case "zz_stub":
			zz = i
		}
	}
	if aa < 0 || zz < 0 || aa > zz {
		t.Errorf("List not sorted or incomplete: %+v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup_stub", func() Game { return &stubGame{id: "dup_stub"} })

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("dup_stub", func() Game { return &stubGame{id: "dup_stub"} })
}
