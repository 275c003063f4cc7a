package world

// Snapshot is the read-only view handed to the renderer. Every slice is a
// deep copy; the renderer never aliases live engine state.
type Snapshot struct {
	Phase          Phase
	TimeLeft       int
	Score          int
	Money          int
	Level          int
	RequiredScore  int
	Customers      []CustomerView
	SelectedID     int64
	CompletedSteps []string
	Menu           []MenuItemView
	History        []HistoryEntry
}

// CustomerView mirrors one waiting customer. Steps are included because
// the prep station displays the required sequence to the player.
type CustomerView struct {
	ID       int64
	Dish     string
	Patience int
	Reward   int
	Steps    []string
}

// MenuItemView mirrors one catalog entry with its current unlock state.
type MenuItemView struct {
	ID         string
	Name       string
	Price      int
	UnlockCost int
	Unlocked   bool
	Steps      []string
}

// Snapshot deep-copies the current state.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:          s.Phase,
		TimeLeft:       s.TimeLeft,
		Score:          s.Score,
		Money:          s.Money,
		Level:          s.Level,
		RequiredScore:  s.RequiredScore,
		SelectedID:     s.SelectedID,
		CompletedSteps: append([]string(nil), s.CompletedSteps...),
		History:        append([]HistoryEntry(nil), s.History...),
	}
	snap.Customers = make([]CustomerView, 0, len(s.Customers))
	for _, c := range s.Customers {
		snap.Customers = append(snap.Customers, CustomerView{
			ID:       c.ID,
			Dish:     c.Dish,
			Patience: c.Patience,
			Reward:   c.Reward,
			Steps:    append([]string(nil), c.Steps...),
		})
	}
	snap.Menu = make([]MenuItemView, 0, len(s.Menu))
	for _, it := range s.Menu {
		snap.Menu = append(snap.Menu, MenuItemView{
			ID:         it.ID,
			Name:       it.Name,
			Price:      it.Price,
			UnlockCost: it.UnlockCost,
			Unlocked:   it.Unlocked,
			Steps:      append([]string(nil), it.Steps...),
		})
	}
	return snap
}
