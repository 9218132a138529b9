package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/redrock/engine/internal/core/ecs"
)

type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Driver     DriverConfig     `toml:"driver"`
	Logging    LoggingConfig    `toml:"logging"`
}

type SimulationConfig struct {
	TickRate         int `toml:"tick_rate"`           // fixed ticks per second
	MaxTicksPerFrame int `toml:"max_ticks_per_frame"` // catch-up cap; 0 = unbounded
	ObjectCapacity   int `toml:"object_capacity"`
	PhysicsCapacity  int `toml:"physics_capacity"`
}

// DriverConfig configures the headless frame driver in cmd/redrock.
type DriverConfig struct {
	Map       string `toml:"map"`
	Controls  string `toml:"controls"` // key bindings file; defaults used when missing
	Scripts   string `toml:"scripts"`  // directory of .lua input scripts
	FrameRate int    `toml:"frame_rate"`
	MaxFrames int    `toml:"max_frames"` // 0 = run until quit
	Record    string `toml:"record"`     // write frame input to this file
	Replay    string `toml:"replay"`     // replay frame input from this file instead of live input
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:         120,
			MaxTicksPerFrame: 10,
			ObjectCapacity:   1024,
			PhysicsCapacity:  1024,
		},
		Driver: DriverConfig{
			Map:       "maps/example.toml",
			Controls:  "config/controls.toml",
			Scripts:   "scripts",
			FrameRate: 60,
			MaxFrames: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	s := c.Simulation
	if s.TickRate <= 0 {
		return fmt.Errorf("simulation.tick_rate must be positive, got %d", s.TickRate)
	}
	if s.MaxTicksPerFrame < 0 {
		return fmt.Errorf("simulation.max_ticks_per_frame must not be negative, got %d", s.MaxTicksPerFrame)
	}
	if s.ObjectCapacity <= 0 || s.ObjectCapacity > ecs.MaxCapacity {
		return fmt.Errorf("simulation.object_capacity %d out of range [1, %d]", s.ObjectCapacity, ecs.MaxCapacity)
	}
	if s.PhysicsCapacity <= 0 || s.PhysicsCapacity > ecs.MaxCapacity {
		return fmt.Errorf("simulation.physics_capacity %d out of range [1, %d]", s.PhysicsCapacity, ecs.MaxCapacity)
	}
	if c.Driver.FrameRate <= 0 {
		return fmt.Errorf("driver.frame_rate must be positive, got %d", c.Driver.FrameRate)
	}
	if c.Driver.Record != "" && c.Driver.Record == c.Driver.Replay {
		return fmt.Errorf("driver.record and driver.replay name the same file %q", c.Driver.Record)
	}
	return nil
}
