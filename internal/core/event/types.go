package event

import "time"

// Notification events consumed by the renderer / notification collaborator.
// All are fire-and-forget; none require acknowledgment.

// RoundStarted fires when a round transitions to active.
type RoundStarted struct {
	DurationSecs int
}

// RoundEnded fires when the countdown reaches zero.
type RoundEnded struct {
	Score   int
	Money   int
	Level   int
	EndedAt time.Time
}

// CustomerArrived fires when the arrival generator seats a new customer.
type CustomerArrived struct {
	CustomerID int64
	Dish       string
	Reward     int
	Patience   int
}

// CustomerAbandoned fires when a customer's patience runs out.
type CustomerAbandoned struct {
	CustomerID  int64
	Dish        string
	WasSelected bool
}

// StepAccepted fires when an applied step matches the expected next step.
type StepAccepted struct {
	CustomerID int64
	StepID     string
	Done       int // steps completed so far
	Total      int // steps required by the dish
}

// StepRejected fires when a step is discarded: either no customer is
// selected (CustomerID 0, Expected empty) or the step is out of order.
type StepRejected struct {
	CustomerID int64
	StepID     string
	Expected   string
}

// OrderServed fires on a successful serve.
type OrderServed struct {
	CustomerID int64
	Dish       string
	Score      int
	Reward     int
}

// OrderRejected fires when serve is called with no selection or with an
// incomplete/incorrect preparation. The in-progress prep is retained.
type OrderRejected struct {
	CustomerID int64
	Done       int
	Total      int
}

// LevelUp fires when the score threshold is crossed.
type LevelUp struct {
	Level         int
	RequiredScore int // threshold for the next level
}

// ItemUnlocked fires when a dish is bought in the upgrades shop.
type ItemUnlocked struct {
	ItemID string
	Cost   int
}

// TimePurchased fires when currency is exchanged for round time.
type TimePurchased struct {
	Cost     int
	Seconds  int
	TimeLeft int
}

// InsufficientFunds fires when an unlock or time purchase cannot be paid for.
type InsufficientFunds struct {
	Action string // "unlock" or "purchase_time"
	ItemID string // set for unlock attempts
	Cost   int
	Money  int
}

// LowTimeWarning fires once when the countdown first reaches the warning
// threshold. Re-arms if a time purchase lifts the clock back above it.
type LowTimeWarning struct {
	TimeLeft int
}
