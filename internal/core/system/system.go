package system

import "time"

// Phase defines execution ordering within a single engine tick.
type Phase int

const (
	PhaseClock   Phase = iota // 0: round countdown
	PhaseDecay                // 1: customer patience
	PhaseArrival              // 2: customer generation
)

// System is the interface every periodic game system implements.
// Update runs once per engine tick under the engine's mutation lock;
// systems with a longer natural period keep an internal accumulator.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
