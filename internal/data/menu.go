package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MenuItem is one catalog template entry. Price doubles as the per-order
// reward; Steps is the exact preparation sequence the player must reproduce.
// Duplicate step ids are allowed; order is what matters.
type MenuItem struct {
	ID         string
	Name       string
	Price      int
	UnlockCost int
	Unlocked   bool // starts-unlocked flag; runtime unlock state lives in world
	Steps      []string
}

// MenuTable holds the full dish catalog, indexed by item id.
// Templates are immutable after load.
type MenuTable struct {
	items  map[string]*MenuItem
	sorted []*MenuItem // catalog order from the data file
}

// Get returns a menu item template by id, or nil if not found.
func (t *MenuTable) Get(id string) *MenuItem {
	return t.items[id]
}

// Items returns all templates in catalog order.
func (t *MenuTable) Items() []*MenuItem {
	return t.sorted
}

// Count returns the number of catalog entries.
func (t *MenuTable) Count() int {
	return len(t.sorted)
}

type menuYAMLEntry struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Price      int      `yaml:"price"`
	UnlockCost int      `yaml:"unlock_cost"`
	Unlocked   bool     `yaml:"unlocked"`
	Steps      []string `yaml:"steps"`
}

type menuListFile struct {
	Items []menuYAMLEntry `yaml:"menu"`
}

// LoadMenuTable loads the dish catalog from a YAML file.
func LoadMenuTable(path string) (*MenuTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu_list: %w", err)
	}
	var f menuListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse menu_list: %w", err)
	}

	items := make([]*MenuItem, 0, len(f.Items))
	for i := range f.Items {
		e := f.Items[i]
		items = append(items, &MenuItem{
			ID:         e.ID,
			Name:       e.Name,
			Price:      e.Price,
			UnlockCost: e.UnlockCost,
			Unlocked:   e.Unlocked,
			Steps:      e.Steps,
		})
	}
	return NewMenuTable(items)
}

// NewMenuTable validates a catalog and builds the lookup table.
// Invariants: unique non-empty ids, non-empty step lists, non-negative
// price/unlock cost, and at least one item that starts unlocked (the
// arrival generator would otherwise never produce a customer).
func NewMenuTable(items []*MenuItem) (*MenuTable, error) {
	t := &MenuTable{items: make(map[string]*MenuItem, len(items))}
	anyUnlocked := false
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("menu item %q: empty id", it.Name)
		}
		if _, dup := t.items[it.ID]; dup {
			return nil, fmt.Errorf("menu item %q: duplicate id", it.ID)
		}
		if len(it.Steps) == 0 {
			return nil, fmt.Errorf("menu item %q: no preparation steps", it.ID)
		}
		for _, s := range it.Steps {
			if s == "" {
				return nil, fmt.Errorf("menu item %q: empty step id", it.ID)
			}
		}
		if it.Price <= 0 {
			return nil, fmt.Errorf("menu item %q: price must be positive", it.ID)
		}
		if it.UnlockCost < 0 {
			return nil, fmt.Errorf("menu item %q: negative unlock cost", it.ID)
		}
		if it.Unlocked {
			anyUnlocked = true
		}
		t.items[it.ID] = it
		t.sorted = append(t.sorted, it)
	}
	if len(t.sorted) == 0 {
		return nil, fmt.Errorf("menu catalog is empty")
	}
	if !anyUnlocked {
		return nil, fmt.Errorf("menu catalog has no starting dish")
	}
	return t, nil
}

// DefaultMenu returns the built-in six-dish catalog, used when no data file
// is configured. Mirrors data/yaml/menu_list.yaml.
func DefaultMenu() *MenuTable {
	t, err := NewMenuTable([]*MenuItem{
		{ID: "burger", Name: "Burger", Price: 10, Unlocked: true,
			Steps: []string{"bun", "patty", "topBun"}},
		{ID: "hotdog", Name: "Hot Dog", Price: 8, Unlocked: true,
			Steps: []string{"bun", "sausage", "toppings"}},
		{ID: "fries", Name: "Fries", Price: 5, Unlocked: true,
			Steps: []string{"fries", "salt"}},
		{ID: "iceCream", Name: "Ice Cream", Price: 15, UnlockCost: 200,
			Steps: []string{"scoop", "cone", "sprinkles"}},
		{ID: "premiumBurger", Name: "Premium Burger", Price: 25, UnlockCost: 300,
			Steps: []string{"bun", "patty", "toppings", "patty", "topBun"}},
		{ID: "pizza", Name: "Pizza", Price: 40, UnlockCost: 500,
			Steps: []string{"dough", "sauce", "toppings", "bake"}},
	})
	if err != nil {
		panic(err) // built-in catalog is always valid
	}
	return t
}
