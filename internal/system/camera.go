package system

import (
	"time"

	coresys "github.com/redrock/engine/internal/core/system"
	"github.com/redrock/engine/internal/world"
)

// CameraSystem copies the attached object's transform into the camera.
// Phase 2 (Attach), run once per frame. No smoothing here; the renderer blends
// with the interpolation fraction.
type CameraSystem struct {
	world *world.State
}

func NewCameraSystem(ws *world.State) *CameraSystem {
	return &CameraSystem{world: ws}
}

func (s *CameraSystem) Phase() coresys.Phase { return coresys.PhaseAttach }

func (s *CameraSystem) Update(_ time.Duration) {
	cam := &s.world.Camera
	if cam.Attachment.IsNone() {
		return
	}
	if obj, ok := s.world.Objects.Get(cam.Attachment); ok {
		cam.Transform = obj.Transform
	}
}
