package game

import (
	"github.com/redrock/engine/internal/component"
	"github.com/redrock/engine/internal/core/ecs"
)

// Renderable is the read-only view of one object handed to a renderer.
type Renderable struct {
	Handle     ecs.Handle
	Tag        string
	Transform  component.Transform // after the latest fixed tick
	Prev       component.Transform // before the latest fixed tick; equals Transform when static
	HasPhysics bool
}

// Blended interpolates between the last two ticks by fraction f.
func (r Renderable) Blended(f float32) component.Transform {
	if !r.HasPhysics {
		return r.Transform
	}
	return component.Interpolate(r.Prev, r.Transform, f)
}

// Tick is the number of fixed ticks run so far (wrapping).
func (g *Game) Tick() uint32 { return g.state.Tick }

// Fraction is the interpolation fraction into the next tick, in [0, 1).
func (g *Game) Fraction() float32 { return g.clock.Fraction() }

// EachRenderable visits every live object in index order.
func (g *Game) EachRenderable(fn func(Renderable)) {
	g.state.Objects.Each(func(h ecs.Handle, obj *component.Object) {
		r := Renderable{
			Handle:    h,
			Tag:       obj.Tag,
			Transform: obj.Transform,
			Prev:      obj.Transform,
		}
		if phys, ok := g.state.Physics.Get(obj.Physics); ok {
			r.Prev = phys.PrevTransform
			r.HasPhysics = true
		}
		fn(r)
	})
}

// Camera returns the camera as of the last frame update.
func (g *Game) Camera() component.Camera { return g.state.Camera }

// CameraView is the transform to render from: the attached object's
// position blended with the current fraction, and the camera's orientation.
// Falls back to the raw camera transform when unattached.
func (g *Game) CameraView() component.Transform {
	cam := g.state.Camera
	obj, ok := g.state.Objects.Get(cam.Attachment)
	if !ok {
		return cam.Transform
	}
	view := cam.Transform
	if phys, ok := g.state.Physics.Get(obj.Physics); ok {
		view.Position = component.Interpolate(phys.PrevTransform, obj.Transform, g.clock.Fraction()).Position
	}
	return view
}
