package system

import (
	"time"

	"github.com/foodfrenzy/stand/internal/core/event"
	coresys "github.com/foodfrenzy/stand/internal/core/system"
	"github.com/foodfrenzy/stand/internal/world"
)

// DecaySystem decrements every waiting customer's patience once per tick
// and removes those that hit zero. When the selected customer walks out,
// the selection and in-progress prep are cleared in the same mutation, so
// a selected-but-absent customer is never observable.
type DecaySystem struct {
	st  *world.State
	bus *event.Bus
}

func NewDecaySystem(st *world.State, bus *event.Bus) *DecaySystem {
	return &DecaySystem{st: st, bus: bus}
}

func (s *DecaySystem) Phase() coresys.Phase { return coresys.PhaseDecay }

func (s *DecaySystem) Update(dt time.Duration) {
	if s.st.Phase != world.PhaseActive {
		return
	}
	kept := s.st.Customers[:0]
	for _, c := range s.st.Customers {
		c.Patience--
		if c.Patience > 0 {
			kept = append(kept, c)
			continue
		}
		c.Patience = 0
		wasSelected := c.ID == s.st.SelectedID
		if wasSelected {
			s.st.ClearSelection()
		}
		event.Emit(s.bus, event.CustomerAbandoned{
			CustomerID:  c.ID,
			Dish:        c.Dish,
			WasSelected: wasSelected,
		})
	}
	s.st.Customers = kept
}
