package data

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/unicode/norm"
)

// TagID identifies an object or physics definition in a map file.
type TagID = string

// Globals are the map-wide constants.
type Globals struct {
	GravityScale    float32  `toml:"gravity_scale" yaml:"gravity_scale"` // in Earth Gs
	PlayerObject    TagID    `toml:"player_object" yaml:"player_object"`
	PlayerAccel     float32  `toml:"player_accel" yaml:"player_accel"`
	PlayerDragScale float32  `toml:"player_drag_scale" yaml:"player_drag_scale"`
	VFov            *float32 `toml:"v_fov,omitempty" yaml:"v_fov,omitempty"` // degrees, optional
}

// DefaultVFov is the vertical field of view used when a map does not set one.
const DefaultVFov float32 = 70

// VFovRadians returns the configured field of view, or DefaultVFov.
func (g Globals) VFovRadians() float32 {
	if g.VFov == nil {
		return mgl32.DegToRad(DefaultVFov)
	}
	return mgl32.DegToRad(*g.VFov)
}

// Placement is a spawn position with an optional [yaw, pitch, roll] in degrees.
type Placement struct {
	Pos [3]float32  `toml:"pos" yaml:"pos"`
	Rot *[3]float32 `toml:"rot,omitempty" yaml:"rot,omitempty"`
}

func (p Placement) Position() mgl32.Vec3 {
	return mgl32.Vec3{p.Pos[0], p.Pos[1], p.Pos[2]}
}

// Rotation composes yaw about Z, pitch about Y and roll about X, with the same
// handedness as player aim (positive yaw turns right, positive pitch looks up).
// No rotation given means identity.
func (p Placement) Rotation() mgl32.Quat {
	if p.Rot == nil {
		return mgl32.QuatIdent()
	}
	yaw, pitch, roll := p.Rot[0], p.Rot[1], p.Rot[2]
	yawQ := mgl32.QuatRotate(-mgl32.DegToRad(yaw), mgl32.Vec3{0, 0, 1})
	pitchQ := mgl32.QuatRotate(-mgl32.DegToRad(pitch), mgl32.Vec3{0, 1, 0})
	rollQ := mgl32.QuatRotate(mgl32.DegToRad(roll), mgl32.Vec3{1, 0, 0})
	return yawQ.Mul(pitchQ).Mul(rollQ)
}

// SceneryPlacement places one object of the given type.
type SceneryPlacement struct {
	Position   Placement `toml:"position" yaml:"position"`
	ObjectType TagID     `toml:"object_type" yaml:"object_type"`
}

// Scenario is what gets spawned when the map is loaded.
type Scenario struct {
	PlayerLocation Placement          `toml:"player_location" yaml:"player_location"`
	Scenery        []SceneryPlacement `toml:"scenery" yaml:"scenery"`
}

// ObjectTag describes an object type. Physics names a physics tag; nil means static.
type ObjectTag struct {
	Physics *TagID     `toml:"physics,omitempty" yaml:"physics,omitempty"`
	Model   string     `toml:"model" yaml:"model"`
	Colour  [3]float32 `toml:"colour" yaml:"colour"`
}

// PhysicsTag marks an object type as simulated. It carries no fields yet.
type PhysicsTag struct{}

// Map is a fully loaded map description. Read-only after load.
type Map struct {
	Globals  Globals              `toml:"globals" yaml:"globals"`
	Scenario Scenario             `toml:"scenario" yaml:"scenario"`
	Objects  map[TagID]ObjectTag  `toml:"object" yaml:"object"`
	Physics  map[TagID]PhysicsTag `toml:"physics" yaml:"physics"`
}

// Object looks up an object tag.
func (m *Map) Object(id TagID) (ObjectTag, bool) {
	if m == nil {
		return ObjectTag{}, false
	}
	t, ok := m.Objects[normalizeTag(id)]
	return t, ok
}

// PhysicsTag looks up a physics tag.
func (m *Map) PhysicsTag(id TagID) (PhysicsTag, bool) {
	if m == nil {
		return PhysicsTag{}, false
	}
	t, ok := m.Physics[normalizeTag(id)]
	return t, ok
}

// normalizeTag brings an identifier to Unicode NFC so that the same name
// typed with composed or decomposed accents resolves to one tag.
func normalizeTag(id TagID) TagID {
	return norm.NFC.String(id)
}

// normalize rewrites every tag key and reference in place.
func (m *Map) normalize() {
	m.Globals.PlayerObject = normalizeTag(m.Globals.PlayerObject)
	for i := range m.Scenario.Scenery {
		m.Scenario.Scenery[i].ObjectType = normalizeTag(m.Scenario.Scenery[i].ObjectType)
	}

	objects := make(map[TagID]ObjectTag, len(m.Objects))
	for id, obj := range m.Objects {
		if obj.Physics != nil {
			p := normalizeTag(*obj.Physics)
			obj.Physics = &p
		}
		objects[normalizeTag(id)] = obj
	}
	m.Objects = objects

	physics := make(map[TagID]PhysicsTag, len(m.Physics))
	for id, p := range m.Physics {
		physics[normalizeTag(id)] = p
	}
	m.Physics = physics
}
