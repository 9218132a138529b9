package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/redrock/engine/internal/action"
	"github.com/redrock/engine/internal/input"
	"go.uber.org/zap"
)

func TestFrameConvertsActions(t *testing.T) {
	e, err := NewEngineFromString(`
function on_frame(ctx)
  if ctx.frame == 0 then
    return {
      {action = "forward", held = true},
      {action = "aim", yaw = 0.5, pitch = -0.25},
    }
  end
  if ctx.tick >= 10 then
    return {{action = "quit"}}
  end
  return {}
end
`, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngineFromString: %v", err)
	}
	defer e.Close()

	out, err := e.Frame(FrameContext{Frame: 0})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	got := out.Actions
	want := []action.Action{action.Forward(true), action.AimDelta(0.5, -0.25)}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Action %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	out, _ = e.Frame(FrameContext{Frame: 1, Tick: 3})
	if len(out.Actions) != 0 || len(out.Events) != 0 {
		t.Errorf("Expected nothing, got %+v", out)
	}
	out, _ = e.Frame(FrameContext{Frame: 2, Tick: 10})
	if got = out.Actions; len(got) != 1 || got[0].Kind != action.KindQuit {
		t.Errorf("Expected quit, got %v", got)
	}
}

func TestFrameSeesPosition(t *testing.T) {
	e, err := NewEngineFromString(`
function on_frame(ctx)
  return {{action = "boost", held = ctx.position.x > 5}}
end
`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	out, _ := e.Frame(FrameContext{Position: [3]float32{6, 0, 0}})
	if got := out.Actions; len(got) != 1 || got[0] != action.Boost(true) {
		t.Errorf("Expected Boost(true), got %v", got)
	}
	out, _ = e.Frame(FrameContext{Position: [3]float32{1, 0, 0}})
	if got := out.Actions; len(got) != 1 || got[0] != action.Boost(false) {
		t.Errorf("Expected Boost(false), got %v", got)
	}
}

func TestFrameSkipsMalformedEntries(t *testing.T) {
	e, err := NewEngineFromString(`
function on_frame(ctx)
  return {42, {held = true}, {action = "dance"}, {action = "LEFT", held = true}}
end
`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	out, err := e.Frame(FrameContext{})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if got := out.Actions; len(got) != 1 || got[0] != action.Left(true) || len(out.Events) != 0 {
		t.Errorf("Expected only Left(true), got %+v", out)
	}
}

func TestFrameReturnsRawEvents(t *testing.T) {
	e, err := NewEngineFromString(`
function on_frame(ctx)
  return {
    {key = "W", pressed = true},
    {mouse_dx = 30},
    {action = "boost", held = true},
    {key = "Escape"},
  }
end
`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	out, err := e.Frame(FrameContext{})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}
	want := []input.Event{
		input.KeyEvent("W", true),
		input.MouseEvent(30, 0),
		input.KeyEvent("Escape", false),
	}
	if len(out.Events) != len(want) {
		t.Fatalf("Expected %v, got %v", want, out.Events)
	}
	for i := range want {
		if out.Events[i] != want[i] {
			t.Errorf("Event %d: expected %+v, got %+v", i, want[i], out.Events[i])
		}
	}
	if len(out.Actions) != 1 || out.Actions[0] != action.Boost(true) {
		t.Errorf("Expected Boost(true) alongside the events, got %v", out.Actions)
	}

	// events go through the bindings like live input
	mapped := input.DefaultBindings().MapAll(out.Events)
	if len(mapped) != 3 || mapped[0] != action.Forward(true) || mapped[2].Kind != action.KindQuit {
		t.Errorf("Expected Forward, AimDelta, Quit, got %v", mapped)
	}
}

func TestFrameWithoutHook(t *testing.T) {
	e, err := NewEngineFromString(`x = API_VERSION`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if e.HasFrameHook() {
		t.Error("Expected no frame hook")
	}
	out, err := e.Frame(FrameContext{})
	if err != nil || out.Actions != nil || out.Events != nil {
		t.Errorf("Expected no output, got %+v (err=%v)", out, err)
	}
}

func TestFrameRuntimeError(t *testing.T) {
	e, err := NewEngineFromString(`function on_frame(ctx) error("boom") end`, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	if _, err := e.Frame(FrameContext{}); err == nil {
		t.Error("Expected Lua error to surface")
	}
}

func TestNewEngineLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	// b.lua overrides a.lua because files load in name order
	if err := os.WriteFile(filepath.Join(dir, "a.lua"), []byte(`function on_frame() return {{action="back", held=true}} end`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.lua"), []byte(`function on_frame() return {{action="jump", held=true}} end`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not lua"), 0o644); err != nil {
		t.Fatal(err)
	}

	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	out, _ := e.Frame(FrameContext{})
	if got := out.Actions; len(got) != 1 || got[0] != action.Jump(true) {
		t.Errorf("Expected Jump(true), got %v", got)
	}
}

func TestNewEngineMissingDirectory(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "nope"), zap.NewNop())
	if err != nil {
		t.Fatalf("Expected missing directory to be fine, got %v", err)
	}
	defer e.Close()
	if e.HasFrameHook() {
		t.Error("Expected no hook from an empty directory")
	}
}

func TestNewEngineSyntaxError(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Error("Expected syntax error")
	}
}
