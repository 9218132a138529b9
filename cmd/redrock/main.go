package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redrock/engine/internal/config"
	"github.com/redrock/engine/internal/data"
	"github.com/redrock/engine/internal/game"
	"github.com/redrock/engine/internal/input"
	"github.com/redrock/engine/internal/replay"
	"github.com/redrock/engine/internal/scripting"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(mapPath string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             redrock  v0.1.0               \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m       headless fixed-step simulation      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mmap:\033[0m %s\n\n", mapPath)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Frame driver ───────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/redrock.toml"
	if p := os.Getenv("REDROCK_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Driver.Map)

	// 3. Load content
	printSection("content")
	level, err := data.LoadMap(cfg.Driver.Map)
	if err != nil {
		return fmt.Errorf("map: %w", err)
	}
	objects, physics := level.Count()
	printStat("object tags", objects)
	printStat("physics tags", physics)
	printStat("scenery placements", len(level.Scenario.Scenery))

	bindings := input.LoadBindings(cfg.Driver.Controls, log)
	printOK("controls loaded")

	scripts, err := scripting.NewEngine(cfg.Driver.Scripts, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer scripts.Close()
	if scripts.HasFrameHook() {
		printOK("input script loaded")
	}
	fmt.Println()

	// 4. Build the world
	printSection("world")
	g := game.New(cfg.Simulation, level, log)
	printStat("objects", g.State().Objects.Len())
	printStat("physics bodies", g.State().Physics.Len())
	fmt.Println()

	// 5. Replay runs as fast as possible and skips live input
	if cfg.Driver.Replay != "" {
		return runReplay(g, cfg.Driver.Replay, log)
	}

	d := &driver{game: g, bindings: bindings, scripts: scripts, log: log}
	if cfg.Driver.Record != "" {
		f, err := os.Create(cfg.Driver.Record)
		if err != nil {
			return fmt.Errorf("create recording: %w", err)
		}
		defer f.Close()
		d.recorder, err = replay.NewRecorder(f, g.TickDuration())
		if err != nil {
			return fmt.Errorf("recording %s: %w", cfg.Driver.Record, err)
		}
		printOK(fmt.Sprintf("recording input to %s", cfg.Driver.Record))
	}

	// 6. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	frameInterval := time.Second / time.Duration(cfg.Driver.FrameRate)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	printSection("running")
	printReady(fmt.Sprintf("tick %s, frame %s", g.TickDuration(), frameInterval))
	fmt.Println()

	last := time.Now()
	for {
		select {
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if !d.frame(elapsed) {
				log.Info("quit requested", zap.Uint64("frames", d.frames))
				summary(g, d.frames, log)
				return nil
			}
			if cfg.Driver.MaxFrames > 0 && d.frames >= uint64(cfg.Driver.MaxFrames) {
				log.Info("frame limit reached", zap.Uint64("frames", d.frames))
				summary(g, d.frames, log)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			summary(g, d.frames, log)
			return nil
		}
	}
}

// runReplay feeds a recording into g frame by frame.
func runReplay(g *game.Game, path string, log *zap.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	p, err := replay.NewPlayer(f)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}
	if p.Tick() != g.TickDuration() {
		return fmt.Errorf("replay %s: recorded with tick %s, simulation uses %s", path, p.Tick(), g.TickDuration())
	}

	printSection("replay")
	printReady(path)
	fmt.Println()

	var frames uint64
	for {
		fr, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("replay %s: %w", path, err)
		}
		frames++
		if !g.Update(fr.Actions, fr.Elapsed) {
			break
		}
	}
	summary(g, frames, log)
	return nil
}

// driver feeds one frame of input into the game. The headless build has no
// window, so raw key and mouse events come from the input script and go
// through the key bindings like platform events would.
type driver struct {
	game     *game.Game
	bindings *input.Bindings
	scripts  *scripting.Engine
	recorder *replay.Recorder
	log      *zap.Logger
	pending  []input.Event
	frames   uint64
}

func (d *driver) frame(elapsed time.Duration) bool {
	out := d.scripted()
	d.pending = append(d.pending, out.Events...)
	actions := d.bindings.MapAll(d.pending)
	d.pending = d.pending[:0]
	actions = append(actions, out.Actions...)

	if d.recorder != nil {
		if err := d.recorder.Record(elapsed, actions); err != nil {
			d.log.Error("recording stopped", zap.Error(err))
			d.recorder = nil
		}
	}
	d.frames++
	return d.game.Update(actions, elapsed)
}

func (d *driver) scripted() scripting.Output {
	ctx := scripting.FrameContext{Frame: d.frames, Tick: d.game.Tick()}
	ws := d.game.State()
	if obj, ok := ws.Object(ws.Control.Target); ok {
		p := obj.Transform.Position
		ctx.Position = [3]float32{p.X(), p.Y(), p.Z()}
	}
	ctx.Yaw, ctx.Pitch = ws.Control.Yaw, ws.Control.Pitch

	out, err := d.scripts.Frame(ctx)
	if err != nil {
		d.log.Error("input script failed", zap.Uint64("frame", d.frames), zap.Error(err))
		return scripting.Output{}
	}
	return out
}

func summary(g *game.Game, frames uint64, log *zap.Logger) {
	digest := g.State().Digest()
	log.Info("session ended",
		zap.Uint64("frames", frames),
		zap.Uint32("tick", g.Tick()),
		zap.Int("objects", g.State().Objects.Len()),
		zap.String("digest", hex.EncodeToString(digest[:])),
	)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
