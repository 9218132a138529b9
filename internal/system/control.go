package system

import (
	"time"

	coresys "github.com/redrock/engine/internal/core/system"
	"github.com/redrock/engine/internal/world"
)

// boostDragFactor scales drag while the player holds boost.
const boostDragFactor = 0.1

// Tuning holds the player movement constants from map globals.
type Tuning struct {
	Accel     float32 // acceleration along the intent vector, units/s²
	DragScale float32 // drag = DragScale × (speed + speed²)
}

// ControlSystem turns player intent into velocity on the controlled object.
// Phase 0 (Control), runs once per rendered frame with dt set
// to the fixed tick length.
type ControlSystem struct {
	world  *world.State
	tuning Tuning
}

func NewControlSystem(ws *world.State, tuning Tuning) *ControlSystem {
	return &ControlSystem{world: ws, tuning: tuning}
}

func (s *ControlSystem) Phase() coresys.Phase { return coresys.PhaseControl }

func (s *ControlSystem) Update(dt time.Duration) {
	ctrl := &s.world.Control
	obj, ok := s.world.Objects.Ref(ctrl.Target)
	if !ok {
		return
	}
	phys, ok := s.world.Physics.Ref(obj.Physics)
	if !ok {
		return
	}
	secs := float32(dt.Seconds())

	obj.Transform.Rotation = ctrl.AimRotation()
	move := obj.Transform.Rotation.Rotate(ctrl.MovementVector())
	phys.Velocity = phys.Velocity.Add(move.Mul(s.tuning.Accel * secs))

	speed := phys.Velocity.Len()
	if speed == 0 {
		return
	}
	drag := s.tuning.DragScale * (speed + speed*speed)
	if ctrl.Boost {
		drag *= boostDragFactor
	}
	// drag can slow the object to a stop but never push it backwards
	slow := drag * secs
	if slow >= speed {
		phys.Velocity = phys.Velocity.Mul(0)
		return
	}
	phys.Velocity = phys.Velocity.Mul((speed - slow) / speed)
}
