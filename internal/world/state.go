package world

import (
	"github.com/redrock/engine/internal/component"
	"github.com/redrock/engine/internal/core/ecs"
)

// DefaultCapacity is the slot count of each entity arena.
const DefaultCapacity = 1024

// State is the whole mutable simulation for one play session.
// Accessed only from the frame driver's goroutine, no locks needed.
type State struct {
	Tick    uint32  // fixed ticks run so far, wraps on overflow
	Gravity float32 // in Earth Gs, from map globals

	Control component.PlayerControl
	Camera  component.Camera

	Objects *ecs.Arena[component.Object]
	Physics *ecs.Arena[component.Physics]

	despawnQueue []ecs.Handle
}

// NewState creates an empty state. Capacities <= 0 fall back to DefaultCapacity.
func NewState(objectCap, physicsCap int) *State {
	if objectCap <= 0 {
		objectCap = DefaultCapacity
	}
	if physicsCap <= 0 {
		physicsCap = DefaultCapacity
	}
	return &State{
		Camera:       component.DefaultCamera(),
		Objects:      ecs.NewArena[component.Object](objectCap),
		Physics:      ecs.NewArena[component.Physics](physicsCap),
		despawnQueue: make([]ecs.Handle, 0, 16),
	}
}

// AdvanceTick bumps the tick counter, wrapping silently.
func (s *State) AdvanceTick() {
	s.Tick++
}

// Object returns a copy of the object h refers to.
func (s *State) Object(h ecs.Handle) (component.Object, bool) {
	return s.Objects.Get(h)
}

// PhysicsOf returns the physics state attached to object h, if any.
func (s *State) PhysicsOf(h ecs.Handle) (*component.Physics, bool) {
	obj, ok := s.Objects.Ref(h)
	if !ok {
		return nil, false
	}
	return s.Physics.Ref(obj.Physics)
}

// EachMoving iterates objects that have a live physics state, in object index order.
func (s *State) EachMoving(fn func(ecs.Handle, *component.Object, *component.Physics)) {
	s.Objects.Each(func(h ecs.Handle, obj *component.Object) {
		if phys, ok := s.Physics.Ref(obj.Physics); ok {
			fn(h, obj, phys)
		}
	})
}
