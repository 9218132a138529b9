package world

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/redrock/engine/internal/component"
	"github.com/redrock/engine/internal/core/ecs"
	"golang.org/x/crypto/blake2b"
)

// Digest hashes the simulation-relevant state: tick, player aim, and every
// live object's handle, tag, transform and velocity in index order.
// Two runs fed the same actions and frame deltas produce the same digest.
func (s *State) Digest() [blake2b.Size256]byte {
	buf := make([]byte, 0, 64+s.Objects.Len()*64)
	buf = binary.LittleEndian.AppendUint32(buf, s.Tick)
	buf = appendFloats(buf, s.Control.Yaw, s.Control.Pitch)

	s.Objects.Each(func(h ecs.Handle, obj *component.Object) {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(h))
		buf = append(buf, obj.Tag...)
		buf = append(buf, 0)
		buf = appendTransform(buf, obj.Transform)
		if phys, ok := s.Physics.Ref(obj.Physics); ok {
			buf = appendVec3(buf, phys.Velocity)
		}
	})
	return blake2b.Sum256(buf)
}

func appendTransform(buf []byte, t component.Transform) []byte {
	buf = appendVec3(buf, t.Position)
	buf = appendFloats(buf, t.Rotation.W)
	return appendVec3(buf, t.Rotation.V)
}

func appendVec3(buf []byte, v mgl32.Vec3) []byte {
	return appendFloats(buf, v[0], v[1], v[2])
}

func appendFloats(buf []byte, fs ...float32) []byte {
	for _, f := range fs {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
	}
	return buf
}
