package handler

import (
	"go.uber.org/zap"

	"github.com/foodfrenzy/stand/internal/core/event"
	"github.com/foodfrenzy/stand/internal/world"
)

// SelectCustomer picks the customer the player will prepare for.
// Selecting the already-selected customer deselects it (toggle); any
// change of selection discards in-progress work; the player assembles
// one order at a time.
func SelectCustomer(st *world.State, deps *Deps, id int64) {
	if st.Phase != world.PhaseActive {
		return
	}
	if st.SelectedID == id {
		st.ClearSelection()
		return
	}
	if st.GetCustomer(id) == nil {
		deps.Log.Debug("select for unknown customer", zap.Int64("customer_id", id))
		return
	}
	st.ClearSelection()
	st.SelectedID = id
}

// ApplyStep appends one preparation step if it matches the expected next
// step of the selected customer's dish. Anything else is discarded: a
// wrong step never mutates the prep and never undoes prior work.
func ApplyStep(st *world.State, deps *Deps, stepID string) {
	if st.Phase != world.PhaseActive {
		return
	}
	c := st.SelectedCustomer()
	if c == nil {
		event.Emit(deps.Bus, event.StepRejected{StepID: stepID})
		return
	}
	if len(st.CompletedSteps) >= len(c.Steps) {
		// Order already fully assembled; extra steps are discarded.
		event.Emit(deps.Bus, event.StepRejected{CustomerID: c.ID, StepID: stepID})
		return
	}
	expected := c.Steps[len(st.CompletedSteps)]
	if stepID != expected {
		event.Emit(deps.Bus, event.StepRejected{
			CustomerID: c.ID,
			StepID:     stepID,
			Expected:   expected,
		})
		return
	}
	st.CompletedSteps = append(st.CompletedSteps, stepID)
	event.Emit(deps.Bus, event.StepAccepted{
		CustomerID: c.ID,
		StepID:     stepID,
		Done:       len(st.CompletedSteps),
		Total:      len(c.Steps),
	})
}

// Serve submits the assembled steps. Success requires an exact match of
// the full step sequence; on a mismatch the partial prep is retained so
// the player can finish and retry.
func Serve(st *world.State, deps *Deps) {
	if st.Phase != world.PhaseActive {
		return
	}
	c := st.SelectedCustomer()
	if c == nil {
		event.Emit(deps.Bus, event.OrderRejected{})
		return
	}
	if !stepsMatch(st.CompletedSteps, c.Steps) {
		event.Emit(deps.Bus, event.OrderRejected{
			CustomerID: c.ID,
			Done:       len(st.CompletedSteps),
			Total:      len(c.Steps),
		})
		return
	}

	st.RemoveCustomer(c.ID)
	st.ClearSelection()
	st.Score += deps.Cfg.ServeScore
	st.Money += c.Reward
	deps.Log.Info("order served",
		zap.String("dish", c.Dish),
		zap.Int("reward", c.Reward),
		zap.Int("score", st.Score))
	event.Emit(deps.Bus, event.OrderServed{
		CustomerID: c.ID,
		Dish:       c.Dish,
		Score:      st.Score,
		Reward:     c.Reward,
	})
	checkLevelUp(st, deps)
}

// stepsMatch reports element-wise equality of the completed and required
// step sequences.
func stepsMatch(done, required []string) bool {
	if len(done) != len(required) {
		return false
	}
	for i := range done {
		if done[i] != required[i] {
			return false
		}
	}
	return true
}
