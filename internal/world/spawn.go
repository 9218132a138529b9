package world

import (
	"errors"
	"fmt"

	"github.com/redrock/engine/internal/component"
	"github.com/redrock/engine/internal/core/ecs"
	"github.com/redrock/engine/internal/data"
)

var (
	ErrUnknownTag        = errors.New("unknown object tag")
	ErrUnknownPhysicsTag = errors.New("unknown physics tag")
	ErrObjectsFull       = errors.New("object arena full")
	ErrPhysicsFull       = errors.New("physics arena full")
)

// Spawn creates an object of the given tag. If the tag declares physics, a
// physics state is created alongside it. Either both slots are taken or
// neither is: an object slot is confirmed free before physics is allocated,
// and physics is released again if the object add still fails.
func (s *State) Spawn(m *data.Map, tag data.TagID, t component.Transform) (ecs.Handle, error) {
	objTag, ok := m.Object(tag)
	if !ok {
		return ecs.None, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	withPhysics := objTag.Physics != nil
	if withPhysics {
		if _, ok := m.PhysicsTag(*objTag.Physics); !ok {
			return ecs.None, fmt.Errorf("%w: %q (object %q)", ErrUnknownPhysicsTag, *objTag.Physics, tag)
		}
	}
	if s.Objects.Free() == 0 {
		return ecs.None, fmt.Errorf("%w: spawn %q", ErrObjectsFull, tag)
	}

	physID := ecs.None
	if withPhysics {
		id, ok := s.Physics.Add(component.Physics{PrevTransform: t})
		if !ok {
			return ecs.None, fmt.Errorf("%w: spawn %q", ErrPhysicsFull, tag)
		}
		physID = id
	}

	h, ok := s.Objects.Add(component.Object{
		Tag:       tag,
		Transform: t,
		Physics:   physID,
	})
	if !ok {
		s.Physics.Remove(physID)
		return ecs.None, fmt.Errorf("%w: spawn %q", ErrObjectsFull, tag)
	}
	return h, nil
}

// SpawnAt spawns at a map placement.
func (s *State) SpawnAt(m *data.Map, tag data.TagID, p data.Placement) (ecs.Handle, error) {
	return s.Spawn(m, tag, component.Transform{
		Position: p.Position(),
		Rotation: p.Rotation(),
	})
}

// Despawn removes an object together with its physics state.
// Returns false for stale handles.
func (s *State) Despawn(h ecs.Handle) bool {
	obj, ok := s.Objects.Remove(h)
	if !ok {
		return false
	}
	s.Physics.Remove(obj.Physics)
	return true
}

// QueueDespawn defers removal of h to the end of the current fixed tick.
func (s *State) QueueDespawn(h ecs.Handle) {
	s.despawnQueue = append(s.despawnQueue, h)
}

// FlushDespawns removes every queued object and returns how many were live.
// Called by CleanupSystem at the end of each tick.
func (s *State) FlushDespawns() int {
	n := 0
	for _, h := range s.despawnQueue {
		if s.Despawn(h) {
			n++
		}
	}
	s.despawnQueue = s.despawnQueue[:0]
	return n
}
