package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/redrock/engine/internal/action"
	"github.com/redrock/engine/internal/input"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// APIVersion is exposed to scripts as the API_VERSION global.
const APIVersion = 1

// Engine wraps a single gopher-lua VM that feeds scripted actions to the
// frame driver. Single-goroutine access only (frame loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in scriptsDir in
// name order. A missing directory yields an engine with no scripts.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return e, nil
}

// NewEngineFromString loads a single chunk of Lua source.
func NewEngineFromString(src string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(APIVersion))
	if err := vm.DoString(src); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load script: %w", err)
	}
	return &Engine{vm: vm, log: log}, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// FrameContext is the read-only view of the simulation handed to on_frame.
type FrameContext struct {
	Frame    uint64
	Tick     uint32
	Position [3]float32 // controlled object, zero when absent
	Yaw      float32
	Pitch    float32
}

// HasFrameHook reports whether any loaded script defines on_frame.
func (e *Engine) HasFrameHook() bool {
	_, ok := e.vm.GetGlobal("on_frame").(*lua.LFunction)
	return ok
}

// Output is what one on_frame call produced. Actions bypass key bindings;
// Events are raw input for the binding layer. Each list keeps entry order.
type Output struct {
	Actions []action.Action
	Events  []input.Event
}

// Frame calls the Lua on_frame function and converts the returned array of
// entries. Scripts without on_frame produce nothing. Malformed entries are
// skipped with a warning; a Lua runtime error is returned.
func (e *Engine) Frame(ctx FrameContext) (Output, error) {
	var out Output
	fn, ok := e.vm.GetGlobal("on_frame").(*lua.LFunction)
	if !ok {
		return out, nil
	}

	t := e.vm.NewTable()
	t.RawSetString("frame", lua.LNumber(ctx.Frame))
	t.RawSetString("tick", lua.LNumber(ctx.Tick))
	t.RawSetString("yaw", lua.LNumber(ctx.Yaw))
	t.RawSetString("pitch", lua.LNumber(ctx.Pitch))
	pos := e.vm.NewTable()
	pos.RawSetString("x", lua.LNumber(ctx.Position[0]))
	pos.RawSetString("y", lua.LNumber(ctx.Position[1]))
	pos.RawSetString("z", lua.LNumber(ctx.Position[2]))
	t.RawSetString("position", pos)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		return out, fmt.Errorf("lua on_frame: %w", err)
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	if result == lua.LNil {
		return out, nil
	}
	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Warn("lua on_frame returned non-table", zap.String("type", result.Type().String()))
		return out, nil
	}

	n := rt.Len()
	for i := 1; i <= n; i++ {
		entry, ok := rt.RawGetInt(i).(*lua.LTable)
		if !ok {
			e.log.Warn("lua on_frame entry is not a table", zap.Int("index", i))
			continue
		}
		if err := out.add(entry); err != nil {
			e.log.Warn("lua on_frame entry skipped", zap.Int("index", i), zap.Error(err))
		}
	}
	return out, nil
}

// add reads one entry:
//
//	{action="forward", held=true}, {action="aim", yaw=, pitch=}, {action="quit"}
//	{key="W", pressed=true}
//	{mouse_dx=, mouse_dy=}
func (o *Output) add(t *lua.LTable) error {
	if name, ok := t.RawGetString("action").(lua.LString); ok {
		a, err := toAction(string(name), t)
		if err != nil {
			return err
		}
		o.Actions = append(o.Actions, a)
		return nil
	}
	if key, ok := t.RawGetString("key").(lua.LString); ok {
		o.Events = append(o.Events, input.KeyEvent(string(key), lua.LVAsBool(t.RawGetString("pressed"))))
		return nil
	}
	dx, okX := t.RawGetString("mouse_dx").(lua.LNumber)
	dy, okY := t.RawGetString("mouse_dy").(lua.LNumber)
	if okX || okY {
		o.Events = append(o.Events, input.MouseEvent(float64(dx), float64(dy)))
		return nil
	}
	return fmt.Errorf("entry has no action, key or mouse motion")
}

func toAction(name string, t *lua.LTable) (action.Action, error) {
	kind, err := action.ParseKind(name)
	if err != nil {
		return action.Action{}, err
	}
	switch {
	case kind == action.KindQuit:
		return action.Quit(), nil
	case kind == action.KindAimDelta:
		dYaw := float32(lua.LVAsNumber(t.RawGetString("yaw")))
		dPitch := float32(lua.LVAsNumber(t.RawGetString("pitch")))
		return action.AimDelta(dYaw, dPitch), nil
	default:
		a, _ := action.Hold(kind, lua.LVAsBool(t.RawGetString("held")))
		return a, nil
	}
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
