package ecs

// Phase is one of the three ordered per-tick update passes.
type Phase int

const (
	PhasePreUpdate Phase = iota
	PhaseUpdate
	PhasePostUpdate
)

// Phases lists the phases in the order a tick runs them.
var Phases = []Phase{PhasePreUpdate, PhaseUpdate, PhasePostUpdate}

func (p Phase) String() string {
	switch p {
	case PhasePreUpdate:
		return "preUpdate"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "postUpdate"
	default:
		return "unknown"
	}
}

// Run forwards one phase to every live entity in insertion order. Entities
// removed earlier in the tick stay in the table until Reconcile but are
// skipped, since their systems have already ended.
func (w *World) Run(phase Phase, delta float64) {
	if w == nil {
		return
	}
	for _, e := range w.live.snapshot() {
		if e.removed {
			continue
		}
		e.run(phase, delta)
	}
}
