package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/redrock/engine/internal/core/ecs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "redrock.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[simulation]
tick_rate = 60
max_ticks_per_frame = 0

[logging]
level = "debug"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.TickRate != 60 || cfg.Simulation.MaxTicksPerFrame != 0 {
		t.Errorf("Unexpected simulation config %+v", cfg.Simulation)
	}
	if cfg.Simulation.ObjectCapacity != 1024 {
		t.Errorf("Expected default object capacity, got %d", cfg.Simulation.ObjectCapacity)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Unexpected logging config %+v", cfg.Logging)
	}
	if cfg.Driver.FrameRate != 60 {
		t.Errorf("Expected default frame rate, got %d", cfg.Driver.FrameRate)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []string{
		"[simulation]\ntick_rate = 0\n",
		"[simulation]\nmax_ticks_per_frame = -1\n",
		"[simulation]\nobject_capacity = 70000\n",
		"[driver]\nframe_rate = 0\n",
		"[driver]\nrecord = \"a.rec\"\nreplay = \"a.rec\"\n",
		"[simulation\n",
	}
	for _, src := range tests {
		if _, err := Load(writeConfig(t, src)); err == nil {
			t.Errorf("Expected error for %q", src)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestCapacityLimitFollowsArena(t *testing.T) {
	src := fmt.Sprintf("[simulation]\nobject_capacity = %d\nphysics_capacity = %d\n", ecs.MaxCapacity, ecs.MaxCapacity)
	if _, err := Load(writeConfig(t, src)); err != nil {
		t.Errorf("Expected the largest arena to be accepted, got %v", err)
	}
	src = fmt.Sprintf("[simulation]\nphysics_capacity = %d\n", ecs.MaxCapacity+1)
	if _, err := Load(writeConfig(t, src)); err == nil {
		t.Error("Expected a capacity past the arena limit to be rejected")
	}
}
