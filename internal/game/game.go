package game

import (
	"time"

	"github.com/redrock/engine/internal/action"
	"github.com/redrock/engine/internal/config"
	"github.com/redrock/engine/internal/core/clock"
	"github.com/redrock/engine/internal/core/ecs"
	coresys "github.com/redrock/engine/internal/core/system"
	"github.com/redrock/engine/internal/data"
	"github.com/redrock/engine/internal/system"
	"github.com/redrock/engine/internal/world"
	"go.uber.org/zap"
)

// Game owns one play session: the world state, the map it was built from,
// the fixed-step clock and the system runner. The frame driver calls
// Update once per rendered frame from a single goroutine.
type Game struct {
	state   *world.State
	level   *data.Map
	clock   *clock.Clock
	systems *coresys.Runner
	log     *zap.Logger
}

// Phases run once per fixed tick and once per Update call respectively.
var (
	tickPhases  = []coresys.Phase{coresys.PhaseIntegrate, coresys.PhaseCleanup}
	framePhases = []coresys.Phase{coresys.PhaseControl, coresys.PhaseAttach}
)

// New builds the world from the map: the player first, then every scenery
// placement. Content that fails to spawn is skipped.
func New(cfg config.SimulationConfig, m *data.Map, log *zap.Logger) *Game {
	if log == nil {
		log = zap.NewNop()
	}
	ws := world.NewState(cfg.ObjectCapacity, cfg.PhysicsCapacity)
	g := &Game{
		state:   ws,
		level:   m,
		clock:   clock.FromRate(cfg.TickRate, cfg.MaxTicksPerFrame),
		systems: coresys.NewRunner(),
		log:     log,
	}

	g.systems.Register(system.NewIntegrateSystem(ws))
	g.systems.Register(system.NewCleanupSystem(ws))
	g.systems.Register(system.NewControlSystem(ws, system.Tuning{
		Accel:     m.Globals.PlayerAccel,
		DragScale: m.Globals.PlayerDragScale,
	}))
	g.systems.Register(system.NewCameraSystem(ws))

	g.initialize()
	return g
}

func (g *Game) initialize() {
	ws, m := g.state, g.level
	ws.Gravity = m.Globals.GravityScale
	ws.Camera.VFov = m.Globals.VFovRadians()

	player, _ := g.Spawn(m.Globals.PlayerObject, m.Scenario.PlayerLocation)
	ws.Control.Target = player
	ws.Camera.Attachment = player

	for _, sc := range m.Scenario.Scenery {
		g.Spawn(sc.ObjectType, sc.Position)
	}
	g.log.Info("world initialized",
		zap.Int("objects", ws.Objects.Len()),
		zap.Int("physics", ws.Physics.Len()),
		zap.Stringer("player", player),
	)
}

// Spawn places an object from the loaded map. Failures are logged at debug
// level and reported as ecs.None; missing content never stops a session.
func (g *Game) Spawn(tag data.TagID, p data.Placement) (ecs.Handle, bool) {
	h, err := g.state.SpawnAt(g.level, tag, p)
	if err != nil {
		g.log.Debug("spawn skipped", zap.String("tag", tag), zap.Error(err))
		return ecs.None, false
	}
	return h, true
}

// Despawn removes an object and its physics state immediately.
func (g *Game) Despawn(h ecs.Handle) bool {
	return g.state.Despawn(h)
}

// QueueDespawn removes an object at the end of the next fixed tick.
func (g *Game) QueueDespawn(h ecs.Handle) {
	g.state.QueueDespawn(h)
}

// ApplyAction updates player intent. Returns false for Quit, which changes
// nothing and tells the caller to stop.
func (g *Game) ApplyAction(a action.Action) bool {
	ctrl := &g.state.Control
	switch a.Kind {
	case action.KindLeft:
		ctrl.Left = a.Held
	case action.KindRight:
		ctrl.Right = a.Held
	case action.KindForward:
		ctrl.Forward = a.Held
	case action.KindBack:
		ctrl.Back = a.Held
	case action.KindJump:
		ctrl.Up = a.Held
	case action.KindCrouch:
		ctrl.Down = a.Held
	case action.KindBoost:
		ctrl.Boost = a.Held
	case action.KindAimDelta:
		ctrl.AimDelta(a.DYaw, a.DPitch)
	case action.KindQuit:
		return false
	}
	return true
}

// Update advances the session by one rendered frame. Actions are applied in
// order; a Quit drops the rest of the batch and makes Update return false.
// Either way every whole tick of accumulated time then runs the tick phases,
// and the frame phases run once.
func (g *Game) Update(actions []action.Action, elapsed time.Duration) bool {
	g.clock.Accumulate(elapsed)

	keepRunning := true
	for i, a := range actions {
		if !g.ApplyAction(a) {
			if rest := len(actions) - i - 1; rest > 0 {
				g.log.Debug("quit received, dropping queued actions", zap.Int("dropped", rest))
			}
			keepRunning = false
			break
		}
	}

	dropped := g.clock.Dropped()
	tick := g.clock.Tick()
	g.clock.CatchUp(func() {
		g.runPhases(tickPhases, tick)
		g.state.AdvanceTick()
	})
	if d := g.clock.Dropped() - dropped; d > 0 {
		g.log.Warn("simulation fell behind, dropped catch-up ticks",
			zap.Uint64("dropped", d),
			zap.Uint32("tick", g.state.Tick),
		)
	}

	g.runPhases(framePhases, tick)
	return keepRunning
}

func (g *Game) runPhases(phases []coresys.Phase, dt time.Duration) {
	for _, p := range phases {
		g.systems.TickPhase(p, dt)
	}
}

// State exposes the world for inspection. Callers must not retain pointers
// obtained from it across Update calls.
func (g *Game) State() *world.State { return g.state }

func (g *Game) Map() *data.Map { return g.level }

// TickDuration is the fixed step length.
func (g *Game) TickDuration() time.Duration { return g.clock.Tick() }
