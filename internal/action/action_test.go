package action

import "testing"

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"Forward", KindForward},
		{"forward", KindForward},
		{" CROUCH ", KindCrouch},
		{"aim", KindAimDelta},
		{"AimDelta", KindAimDelta},
		{"quit", KindQuit},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if err != nil {
			t.Errorf("ParseKind(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
	if _, err := ParseKind("dance"); err == nil {
		t.Error("Expected error for unknown action")
	}
}

func TestHold(t *testing.T) {
	a, ok := Hold(KindBoost, true)
	if !ok || a != Boost(true) {
		t.Errorf("Expected Boost(true), got %v (ok=%v)", a, ok)
	}
	if _, ok := Hold(KindQuit, true); ok {
		t.Error("Expected Quit to be rejected as a hold kind")
	}
	if _, ok := Hold(KindAimDelta, true); ok {
		t.Error("Expected AimDelta to be rejected as a hold kind")
	}
}

func TestString(t *testing.T) {
	if s := Left(true).String(); s != "Left(true)" {
		t.Errorf("Expected Left(true), got %s", s)
	}
	if s := AimDelta(0.5, -0.25).String(); s != "AimDelta(0.5, -0.25)" {
		t.Errorf("Expected AimDelta(0.5, -0.25), got %s", s)
	}
	if s := Quit().String(); s != "Quit" {
		t.Errorf("Expected Quit, got %s", s)
	}
}
