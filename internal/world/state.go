package world

import (
	"time"

	"github.com/foodfrenzy/stand/internal/data"
)

// Phase is the round lifecycle state. Every timer callback and player
// intent gates on PhaseActive, so late firings from an ended round are
// no-ops by construction.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseOver:
		return "over"
	}
	return "unknown"
}

// Customer is one waiting order request. Steps and Reward are snapshots
// taken at creation time; later catalog changes never affect a seated
// customer. Mutated only by the decay system (Patience) until removed.
type Customer struct {
	ID       int64
	Dish     string
	Patience int
	Steps    []string
	Reward   int
}

// MenuItem is the runtime view of a catalog entry. Unlocked flips
// false→true at most once per round, via the unlock shop.
type MenuItem struct {
	ID         string
	Name       string
	Price      int
	UnlockCost int
	Unlocked   bool
	Steps      []string
}

// HistoryEntry summarizes one finished round. Most recent first.
type HistoryEntry struct {
	Score   int
	Money   int
	Level   int
	EndedAt time.Time
}

// State holds all mutable game state for the stand. Exclusively owned by
// the engine; accessed only under the engine's mutation lock.
type State struct {
	Phase         Phase
	TimeLeft      int
	Score         int
	Money         int
	Level         int
	RequiredScore int

	// Customers is the active queue in arrival order, bounded by the
	// concurrency cap. No reordering ever happens.
	Customers []*Customer

	// SelectedID is the customer the player is preparing for (0 = none).
	// CompletedSteps is always an order-preserving prefix of the selected
	// customer's Steps, and always empty when SelectedID is 0.
	SelectedID     int64
	CompletedSteps []string

	Menu []*MenuItem

	// History survives round restarts; reset only by process exit.
	History []HistoryEntry

	// LowTimeWarned latches the one-shot low-time notification.
	LowTimeWarned bool

	templates      *data.MenuTable
	nextCustomerID int64
}

// NewState builds an idle state with the catalog in its initial unlock
// configuration.
func NewState(menu *data.MenuTable) *State {
	s := &State{
		Phase:     PhaseIdle,
		templates: menu,
	}
	s.rebuildCatalog()
	return s
}

// rebuildCatalog resets every runtime item to its template unlock state.
func (s *State) rebuildCatalog() {
	s.Menu = s.Menu[:0]
	for _, tmpl := range s.templates.Items() {
		s.Menu = append(s.Menu, &MenuItem{
			ID:         tmpl.ID,
			Name:       tmpl.Name,
			Price:      tmpl.Price,
			UnlockCost: tmpl.UnlockCost,
			Unlocked:   tmpl.Unlocked,
			Steps:      tmpl.Steps,
		})
	}
}

// StartRound resets all transient round state and transitions to active.
// resetCatalog re-locks items per the configured replay policy; history is
// always preserved.
func (s *State) StartRound(durationSecs, requiredScore int, resetCatalog bool) {
	s.Phase = PhaseActive
	s.TimeLeft = durationSecs
	s.Score = 0
	s.Money = 0
	s.Level = 1
	s.RequiredScore = requiredScore
	s.Customers = s.Customers[:0]
	s.SelectedID = 0
	s.CompletedSteps = s.CompletedSteps[:0]
	s.LowTimeWarned = false
	if resetCatalog {
		s.rebuildCatalog()
	}
}

// EndRound freezes the state, records the round summary, and clears the
// transient queue/prep so the terminal state is internally consistent.
func (s *State) EndRound(now time.Time, historyLimit int) HistoryEntry {
	s.Phase = PhaseOver
	entry := HistoryEntry{
		Score:   s.Score,
		Money:   s.Money,
		Level:   s.Level,
		EndedAt: now,
	}
	s.History = append([]HistoryEntry{entry}, s.History...)
	if historyLimit > 0 && len(s.History) > historyLimit {
		s.History = s.History[:historyLimit]
	}
	s.Customers = s.Customers[:0]
	s.SelectedID = 0
	s.CompletedSteps = s.CompletedSteps[:0]
	return entry
}

// NextCustomerID returns a fresh monotonically increasing customer id.
func (s *State) NextCustomerID() int64 {
	s.nextCustomerID++
	return s.nextCustomerID
}

// AddCustomer appends a customer to the active queue.
func (s *State) AddCustomer(c *Customer) {
	s.Customers = append(s.Customers, c)
}

// RemoveCustomer removes a customer by id, preserving queue order.
// Returns the removed customer, or nil if not present.
func (s *State) RemoveCustomer(id int64) *Customer {
	for i, c := range s.Customers {
		if c.ID == id {
			s.Customers = append(s.Customers[:i], s.Customers[i+1:]...)
			return c
		}
	}
	return nil
}

// GetCustomer returns a customer by id, or nil.
func (s *State) GetCustomer(id int64) *Customer {
	for _, c := range s.Customers {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// SelectedCustomer returns the currently selected customer, or nil.
func (s *State) SelectedCustomer() *Customer {
	if s.SelectedID == 0 {
		return nil
	}
	return s.GetCustomer(s.SelectedID)
}

// ClearSelection drops the selection and any in-progress preparation.
func (s *State) ClearSelection() {
	s.SelectedID = 0
	s.CompletedSteps = s.CompletedSteps[:0]
}

// Item returns a runtime menu item by id, or nil.
func (s *State) Item(id string) *MenuItem {
	for _, it := range s.Menu {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// UnlockedItems returns the items currently eligible for order generation,
// in catalog order.
func (s *State) UnlockedItems() []*MenuItem {
	out := make([]*MenuItem, 0, len(s.Menu))
	for _, it := range s.Menu {
		if it.Unlocked {
			out = append(out, it)
		}
	}
	return out
}
