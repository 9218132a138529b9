package system

import "time"

// Runner holds the registered systems and runs them one phase at a time.
// Systems sharing a phase run in registration order.
type Runner struct {
	systems []System
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
}

func (r *Runner) Len() int { return len(r.systems) }

// TickPhase runs only the systems registered for phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}
