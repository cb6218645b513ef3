package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-clicker/internal/core"
)

type stubGame struct {
	id     string
	closed int
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) Close() error                         { g.closed++; return nil }

func TestRegisterCreate(t *testing.T) {
	var gotPlayer string
	Register("zz_stub", "Stub", func(env Env) (Game, error) {
		gotPlayer = env.Player
		return &stubGame{id: "zz_stub"}, nil
	})

	if !Exists("zz_stub") {
		t.Fatal("Exists() = false after Register")
	}

	g, err := Create("zz_stub", Env{Player: "alice"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if gotPlayer != "alice" {
		t.Errorf("factory saw player %q, want alice", gotPlayer)
	}

	if err := Close(g); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if g.(*stubGame).closed != 1 {
		t.Error("Close() did not reach the game")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Error("List() does not include the registered game")
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("zz_missing", Env{}); err == nil {
		t.Error("Create() of unknown game succeeded")
	}

	boom := errors.New("boom")
	Register("zz_broken", "Broken", func(Env) (Game, error) { return nil, boom })
	if _, err := Create("zz_broken", Env{}); !errors.Is(err, boom) {
		t.Errorf("Create() error = %v, want wrapped boom", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", "Dup", func(Env) (Game, error) { return &stubGame{}, nil })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("zz_dup", "Dup", func(Env) (Game, error) { return &stubGame{}, nil })
}

func TestEnvDefaults(t *testing.T) {
	var env Env
	if env.Log() == nil {
		t.Error("Log() returned nil")
	}
	if env.KV() == nil {
		t.Error("KV() returned nil")
	}
}
