package system

import "time"

// Phase defines execution ordering within a runner pass.
type Phase int

const (
	PhaseControl   Phase = iota // 0: player intent -> velocity (frame)
	PhaseIntegrate              // 1: velocity -> transform (fixed tick)
	PhaseAttach                 // 2: camera follows its attachment (frame)
	PhaseCleanup                // 3: destroy queued entities (fixed tick)
)

func (p Phase) String() string {
	switch p {
	case PhaseControl:
		return "control"
	case PhaseIntegrate:
		return "integrate"
	case PhaseAttach:
		return "attach"
	case PhaseCleanup:
		return "cleanup"
	}
	return "unknown"
}

// System is the interface every simulation system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
