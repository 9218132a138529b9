package action

import (
	"fmt"
	"strings"
)

// Kind selects which variant an Action is.
type Kind uint8

const (
	KindLeft Kind = iota + 1
	KindRight
	KindForward
	KindBack
	KindJump
	KindCrouch
	KindBoost
	KindAimDelta
	KindQuit
)

var kindNames = map[Kind]string{
	KindLeft:     "Left",
	KindRight:    "Right",
	KindForward:  "Forward",
	KindBack:     "Back",
	KindJump:     "Jump",
	KindCrouch:   "Crouch",
	KindBoost:    "Boost",
	KindAimDelta: "AimDelta",
	KindQuit:     "Quit",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsHold reports whether the kind carries a held flag.
func (k Kind) IsHold() bool {
	return k >= KindLeft && k <= KindBoost
}

// ParseKind looks up a kind by name, ignoring case. "Aim" is accepted for AimDelta.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	if strings.EqualFold(name, "aim") {
		return KindAimDelta, nil
	}
	for k, n := range kindNames {
		if strings.EqualFold(name, n) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// Action is one logical input event. Only the fields of its Kind are meaningful:
// Held for the hold kinds, DYaw/DPitch for AimDelta, nothing for Quit.
type Action struct {
	Kind   Kind
	Held   bool
	DYaw   float32
	DPitch float32
}

func Left(held bool) Action    { return Action{Kind: KindLeft, Held: held} }
func Right(held bool) Action   { return Action{Kind: KindRight, Held: held} }
func Forward(held bool) Action { return Action{Kind: KindForward, Held: held} }
func Back(held bool) Action    { return Action{Kind: KindBack, Held: held} }
func Jump(held bool) Action    { return Action{Kind: KindJump, Held: held} }
func Crouch(held bool) Action  { return Action{Kind: KindCrouch, Held: held} }
func Boost(held bool) Action   { return Action{Kind: KindBoost, Held: held} }

func AimDelta(dYaw, dPitch float32) Action {
	return Action{Kind: KindAimDelta, DYaw: dYaw, DPitch: dPitch}
}

func Quit() Action { return Action{Kind: KindQuit} }

// Hold builds a hold action of kind k. Returns false for non-hold kinds.
func Hold(k Kind, held bool) (Action, bool) {
	if !k.IsHold() {
		return Action{}, false
	}
	return Action{Kind: k, Held: held}, true
}

func (a Action) String() string {
	switch {
	case a.Kind.IsHold():
		return fmt.Sprintf("%s(%t)", a.Kind, a.Held)
	case a.Kind == KindAimDelta:
		return fmt.Sprintf("AimDelta(%g, %g)", a.DYaw, a.DPitch)
	}
	return a.Kind.String()
}
