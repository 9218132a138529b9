package component

import "github.com/redrock/engine/internal/core/ecs"

// Object is one simulated actor.
// Pure data; spawn and removal live in world.State.
type Object struct {
	Tag       string // object tag id in the loaded map
	Transform Transform
	Physics   ecs.Handle // into the physics arena; ecs.None = static
}
