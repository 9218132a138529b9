package system

import (
	"time"

	"github.com/redrock/engine/internal/component"
	"github.com/redrock/engine/internal/core/ecs"
	coresys "github.com/redrock/engine/internal/core/system"
	"github.com/redrock/engine/internal/world"
)

// IntegrateSystem advances every object with physics by one fixed tick.
// Phase 1 (Integrate), run once per fixed tick.
//
// Position is explicit Euler. Rotation adds the angular velocity quaternion
// component-wise and is never renormalized, so large angular velocities will
// drift; content today only uses small ones.
type IntegrateSystem struct {
	world *world.State
}

func NewIntegrateSystem(ws *world.State) *IntegrateSystem {
	return &IntegrateSystem{world: ws}
}

func (s *IntegrateSystem) Phase() coresys.Phase { return coresys.PhaseIntegrate }

func (s *IntegrateSystem) Update(dt time.Duration) {
	secs := float32(dt.Seconds())
	s.world.EachMoving(func(_ ecs.Handle, obj *component.Object, phys *component.Physics) {
		phys.PrevTransform = obj.Transform
		obj.Transform.Position = obj.Transform.Position.Add(phys.Velocity.Mul(secs))
		obj.Transform.Rotation = obj.Transform.Rotation.Add(phys.AngularVelocity.Scale(secs))
	})
}
