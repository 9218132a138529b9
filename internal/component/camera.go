package component

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/redrock/engine/internal/core/ecs"
)

// Camera mirrors the transform of the object it is attached to.
type Camera struct {
	Attachment ecs.Handle
	Transform  Transform
	VFov       float32 // vertical field of view, radians
	Near       float32
	Far        float32
}

// DefaultCamera is unattached with a 90° field of view.
func DefaultCamera() Camera {
	return Camera{
		Attachment: ecs.None,
		Transform:  Identity(),
		VFov:       mgl32.DegToRad(90),
		Near:       0.1,
		Far:        100,
	}
}

// Projection is the perspective matrix for a viewport.
func (c Camera) Projection(width, height int) mgl32.Mat4 {
	if height <= 0 {
		height = 1
	}
	return mgl32.Perspective(c.VFov, float32(width)/float32(height), c.Near, c.Far)
}

// worldToGL maps the simulation basis (+X forward, +Y left, +Z up) onto the
// GL view basis (-Z forward, +X right, +Y up).
var worldToGL = mgl32.Mat4{
	0, 0, -1, 0,
	-1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0, 1,
}

// ViewProjection is projection × basis change × inverse rotation × inverse translation,
// built from t (usually the camera transform blended with the interpolation fraction).
func (c Camera) ViewProjection(width, height int, t Transform) mgl32.Mat4 {
	trans := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())
	rot := t.Rotation.Mat4().Transpose()
	return c.Projection(width, height).Mul4(worldToGL).Mul4(rot).Mul4(trans)
}
