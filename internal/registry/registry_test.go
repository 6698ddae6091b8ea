package registry

import (
	"testing"

	"github.com/vovakirdan/ecomatch/internal/core"
)

type stubGame struct {
	id, title string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Description() string { return "stub " + g.id }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b", title: "B"} })
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a", title: "A"} })

	if !Exists("zz_stub_a") {
		t.Fatal("zz_stub_a should be registered")
	}

	g, err := Create("zz_stub_b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "B" {
		t.Errorf("Title() = %q, expected B", g.Title())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() should fail for unknown ids")
	}

	a, b := -1, -1
	list := List()
	for i, info := range list {
		switch info.ID {
		case "zz_stub_a":
			a = i
			if info.Description != "stub zz_stub_a" {
				t.Errorf("Description = %q", info.Description)
			}
		case "zz_stub_b":
			b = i
		}
	}
	if a < 0 || b < 0 || a > b {
		t.Errorf("List() should contain both stubs sorted by ID, got %v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("registering a duplicate id should panic")
		}
	}()
	Register("zz_stub_dup", func() Game { return &stubGame{id: "zz_stub_dup"} })
}
