package input

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/redrock/engine/internal/action"
	"go.uber.org/zap"
)

// Mouse deltas arrive in device counts; these scale them to radians of aim.
const (
	mouseScale      = 1.0 / 300.0
	pitchMouseScale = 0.5 // vertical aim is half as sensitive
)

// QuitKey ends the session when released. It cannot be rebound.
const QuitKey = "Escape"

// Event is one captured input event, already translated from the platform's
// key codes to key names. Mouse motion leaves Key empty.
type Event struct {
	Key     string
	Pressed bool
	MouseDX float64
	MouseDY float64
}

func KeyEvent(key string, pressed bool) Event { return Event{Key: key, Pressed: pressed} }
func MouseEvent(dx, dy float64) Event        { return Event{MouseDX: dx, MouseDY: dy} }

// Bindings maps key names to hold actions.
type Bindings struct {
	controls map[string]action.Kind
}

type bindingsFile struct {
	Controls map[string]string `toml:"controls"`
}

// DefaultBindings is WASD movement, Space to rise and left Control to sink.
func DefaultBindings() *Bindings {
	return &Bindings{controls: map[string]action.Kind{
		"W":        action.KindForward,
		"S":        action.KindBack,
		"A":        action.KindLeft,
		"D":        action.KindRight,
		"Space":    action.KindJump,
		"LControl": action.KindCrouch,
	}}
}

// LoadBindings reads a [controls] table of key name → action name. A missing
// or unreadable file falls back to DefaultBindings with a warning; bad entries
// are skipped individually.
func LoadBindings(path string, log *zap.Logger) *Bindings {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Warn("controls file unavailable, using defaults", zap.String("path", path), zap.Error(err))
		return DefaultBindings()
	}
	b, err := ParseBindings(raw, log)
	if err != nil {
		log.Warn("controls file invalid, using defaults", zap.String("path", path), zap.Error(err))
		return DefaultBindings()
	}
	return b
}

// ParseBindings decodes a controls table.
func ParseBindings(raw []byte, log *zap.Logger) (*Bindings, error) {
	var f bindingsFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse controls: %w", err)
	}
	b := &Bindings{controls: make(map[string]action.Kind, len(f.Controls))}
	for key, name := range f.Controls {
		if !IsMappable(key) {
			log.Warn("unbindable key ignored", zap.String("key", key))
			continue
		}
		kind, err := action.ParseKind(name)
		if err != nil || !kind.IsHold() {
			log.Warn("unbindable action ignored", zap.String("key", key), zap.String("action", name))
			continue
		}
		b.controls[key] = kind
	}
	return b, nil
}

// Bound returns the action kind bound to key.
func (b *Bindings) Bound(key string) (action.Kind, bool) {
	k, ok := b.controls[key]
	return k, ok
}

// Map converts an event into an action. Unbound keys and Escape presses map to nothing.
func (b *Bindings) Map(ev Event) (action.Action, bool) {
	if ev.Key == "" {
		if ev.MouseDX == 0 && ev.MouseDY == 0 {
			return action.Action{}, false
		}
		dYaw := float32(ev.MouseDX * mouseScale)
		dPitch := float32(ev.MouseDY * mouseScale * pitchMouseScale)
		return action.AimDelta(dYaw, dPitch), true
	}
	if ev.Key == QuitKey {
		if ev.Pressed {
			return action.Action{}, false
		}
		return action.Quit(), true
	}
	kind, ok := b.controls[ev.Key]
	if !ok {
		return action.Action{}, false
	}
	return action.Hold(kind, ev.Pressed)
}

// MapAll converts a frame's events in order, dropping those that map to nothing.
func (b *Bindings) MapAll(events []Event) []action.Action {
	out := make([]action.Action, 0, len(events))
	for _, ev := range events {
		if a, ok := b.Map(ev); ok {
			out = append(out, a)
		}
	}
	return out
}

var mappableKeys = buildMappableKeys()

func buildMappableKeys() map[string]struct{} {
	keys := make(map[string]struct{}, 128)
	for i := 0; i <= 9; i++ {
		keys["Key"+strconv.Itoa(i)] = struct{}{}
		keys["Numpad"+strconv.Itoa(i)] = struct{}{}
	}
	for c := 'A'; c <= 'Z'; c++ {
		keys[string(c)] = struct{}{}
	}
	for i := 1; i <= 24; i++ {
		keys["F"+strconv.Itoa(i)] = struct{}{}
	}
	for _, k := range []string{
		"Insert", "Home", "Delete", "End", "PageDown", "PageUp",
		"Left", "Up", "Right", "Down", "Return", "Space", "Tab", "Numlock",
		"NumpadAdd", "NumpadDivide", "NumpadDecimal", "NumpadComma", "NumpadEnter",
		"NumpadEquals", "NumpadMultiply", "NumpadSubtract",
		"Backslash", "Comma", "Equals", "Grave", "Minus", "Period", "Semicolon", "Slash",
		"LAlt", "RAlt", "LBracket", "RBracket", "LControl", "RControl", "LShift", "RShift",
	} {
		keys[k] = struct{}{}
	}
	return keys
}

// IsMappable reports whether key may be bound to an action.
func IsMappable(key string) bool {
	_, ok := mappableKeys[key]
	return ok
}
