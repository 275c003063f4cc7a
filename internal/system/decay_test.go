package system

import (
	"testing"
	"time"

	"github.com/foodfrenzy/stand/internal/core/event"
	"github.com/foodfrenzy/stand/internal/data"
	"github.com/foodfrenzy/stand/internal/world"
)

func newDecayFixture(t *testing.T) (*world.State, *DecaySystem, *event.Bus) {
	t.Helper()
	st := world.NewState(data.DefaultMenu())
	bus := event.NewBus()
	return st, NewDecaySystem(st, bus), bus
}

func seat(st *world.State, patience int) *world.Customer {
	c := &world.Customer{
		ID:       st.NextCustomerID(),
		Dish:     "burger",
		Patience: patience,
		Steps:    []string{"bun", "patty", "topBun"},
		Reward:   10,
	}
	st.AddCustomer(c)
	return c
}

func TestDecayMonotonic(t *testing.T) {
	st, decay, _ := newDecayFixture(t)
	st.StartRound(60, 50, true)
	c := seat(st, 5)

	decay.Update(time.Second)
	decay.Update(time.Second)

	if c.Patience != 3 {
		t.Fatalf("patience = %d, want 3", c.Patience)
	}
	if len(st.Customers) != 1 {
		t.Fatal("customer removed early")
	}
}

func TestDecayRemovesAtZero(t *testing.T) {
	st, decay, bus := newDecayFixture(t)
	var gone []event.CustomerAbandoned
	event.Subscribe(bus, func(ev event.CustomerAbandoned) { gone = append(gone, ev) })

	st.StartRound(60, 50, true)
	short := seat(st, 1)
	long := seat(st, 4)

	decay.Update(time.Second)
	bus.Flush()

	if len(st.Customers) != 1 || st.Customers[0] != long {
		t.Fatalf("queue = %v, want only the patient customer", st.Customers)
	}
	if len(gone) != 1 || gone[0].CustomerID != short.ID || gone[0].WasSelected {
		t.Errorf("abandoned events = %+v", gone)
	}
}

func TestDecayClearsSelectionAtomically(t *testing.T) {
	st, decay, bus := newDecayFixture(t)
	var gone []event.CustomerAbandoned
	event.Subscribe(bus, func(ev event.CustomerAbandoned) { gone = append(gone, ev) })

	st.StartRound(60, 50, true)
	c := seat(st, 1)
	st.SelectedID = c.ID
	st.CompletedSteps = append(st.CompletedSteps, "bun")

	decay.Update(time.Second)
	bus.Flush()

	if st.SelectedID != 0 || len(st.CompletedSteps) != 0 {
		t.Fatal("selection or prep survived the walkout")
	}
	if len(gone) != 1 || !gone[0].WasSelected {
		t.Errorf("abandoned events = %+v, want one with WasSelected", gone)
	}
}

func TestDecayPreservesOrder(t *testing.T) {
	st, decay, _ := newDecayFixture(t)
	st.StartRound(60, 50, true)
	a := seat(st, 5)
	seat(st, 1)
	c := seat(st, 5)

	decay.Update(time.Second)

	if len(st.Customers) != 2 || st.Customers[0] != a || st.Customers[1] != c {
		t.Fatal("removal disturbed arrival order")
	}
}

func TestDecayInactiveNoOp(t *testing.T) {
	st, decay, _ := newDecayFixture(t)
	c := seat(st, 3)
	st.Phase = world.PhaseOver

	decay.Update(time.Second)

	if c.Patience != 3 {
		t.Fatal("patience decayed outside an active round")
	}
}
