package system

import (
	"testing"
	"time"
)

type recordingSystem struct {
	name  string
	phase Phase
	log   *[]string
}

func (s *recordingSystem) Phase() Phase { return s.phase }

func (s *recordingSystem) Update(dt time.Duration) {
	*s.log = append(*s.log, s.name+"@"+dt.String())
}

func TestRunnerTickPhaseKeepsRegistrationOrder(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{"cleanup", PhaseCleanup, &log})
	r.Register(&recordingSystem{"integrate-a", PhaseIntegrate, &log})
	r.Register(&recordingSystem{"control", PhaseControl, &log})
	r.Register(&recordingSystem{"integrate-b", PhaseIntegrate, &log})
	if r.Len() != 4 {
		t.Fatalf("Expected 4 systems, got %d", r.Len())
	}

	for _, p := range []Phase{PhaseControl, PhaseIntegrate, PhaseAttach, PhaseCleanup} {
		r.TickPhase(p, time.Millisecond)
	}
	want := []string{"control@1ms", "integrate-a@1ms", "integrate-b@1ms", "cleanup@1ms"}
	if len(log) != len(want) {
		t.Fatalf("Expected %v, got %v", want, log)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, log)
			break
		}
	}
}

func TestRunnerTickPhaseRunsOnlyThatPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(&recordingSystem{"integrate", PhaseIntegrate, &log})
	r.Register(&recordingSystem{"attach", PhaseAttach, &log})

	r.TickPhase(PhaseAttach, 2*time.Millisecond)
	if len(log) != 1 || log[0] != "attach@2ms" {
		t.Errorf("Expected only attach to run, got %v", log)
	}
	r.TickPhase(PhaseControl, time.Millisecond)
	if len(log) != 1 {
		t.Errorf("Expected an empty phase to run nothing, got %v", log)
	}
}
