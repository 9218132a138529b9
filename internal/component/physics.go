package component

import "github.com/go-gl/mathgl/mgl32"

// Physics is the dynamic state of an object that moves.
type Physics struct {
	Velocity        mgl32.Vec3
	AngularVelocity mgl32.Quat // added to rotation per second, not renormalized
	PrevTransform   Transform  // transform before the last fixed tick, for render blending only
}
