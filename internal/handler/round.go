package handler

import (
	"github.com/foodfrenzy/stand/internal/core/event"
	"github.com/foodfrenzy/stand/internal/world"
)

// StartRound resets the transient round state and transitions to active.
// Valid from idle (first round) and over (play again); a no-op while a
// round is already running.
func StartRound(st *world.State, deps *Deps) {
	if st.Phase == world.PhaseActive {
		return
	}
	st.StartRound(deps.Cfg.RoundDurationSecs, deps.Cfg.InitialRequiredScore, deps.Cfg.ResetCatalogOnRestart)
	event.Emit(deps.Bus, event.RoundStarted{DurationSecs: deps.Cfg.RoundDurationSecs})
}
