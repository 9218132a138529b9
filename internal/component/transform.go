package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is a position plus orientation in world space (+X forward, +Z up).
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// Identity returns a transform at the origin with no rotation.
func Identity() Transform {
	return Transform{Rotation: mgl32.QuatIdent()}
}

// Matrix is translation × rotation, for the render boundary.
func (t Transform) Matrix() mgl32.Mat4 {
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).Mul4(t.Rotation.Mat4())
}

// Interpolate blends a toward b by factor. Rotation is a plain
// component-wise lerp, good enough for the small per-tick deltas it sees.
func Interpolate(a, b Transform, factor float32) Transform {
	return Transform{
		Position: a.Position.Mul(1 - factor).Add(b.Position.Mul(factor)),
		Rotation: a.Rotation.Scale(1 - factor).Add(b.Rotation.Scale(factor)),
	}
}
