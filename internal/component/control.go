package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/redrock/engine/internal/core/ecs"
)

const halfPi = float32(math.Pi / 2)

// PlayerControl is the player's current movement intent and aim.
type PlayerControl struct {
	Target ecs.Handle // controlled object

	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Boost   bool

	Yaw   float32 // radians, unbounded
	Pitch float32 // radians, clamped to [-π/2, π/2]
}

// AimDelta turns the aim. Yaw accumulates freely; pitch stops at straight up/down.
func (c *PlayerControl) AimDelta(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -halfPi, halfPi)
}

// AimRotation is the orientation for the current yaw and pitch.
// Positive yaw turns right (clockwise seen from above), positive pitch looks up.
func (c *PlayerControl) AimRotation() mgl32.Quat {
	yaw := mgl32.QuatRotate(-c.Yaw, mgl32.Vec3{0, 0, 1})
	pitch := mgl32.QuatRotate(-c.Pitch, mgl32.Vec3{0, 1, 0})
	return yaw.Mul(pitch)
}

// MovementVector is the local-space intent: +X forward, +Y left, +Z up.
// Zero when nothing (or only opposing pairs) is held, unit length otherwise.
func (c *PlayerControl) MovementVector() mgl32.Vec3 {
	var v mgl32.Vec3
	if c.Forward {
		v[0]++
	}
	if c.Back {
		v[0]--
	}
	if c.Left {
		v[1]++
	}
	if c.Right {
		v[1]--
	}
	if c.Up {
		v[2]++
	}
	if c.Down {
		v[2]--
	}
	if v.LenSqr() == 0 {
		return v
	}
	return v.Normalize()
}
