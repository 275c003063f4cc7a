// Package engine owns the game state and serializes every mutation,
// periodic ticks and player intents alike, onto one logical sequence.
package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodfrenzy/stand/internal/config"
	"github.com/foodfrenzy/stand/internal/core/event"
	coresys "github.com/foodfrenzy/stand/internal/core/system"
	"github.com/foodfrenzy/stand/internal/data"
	"github.com/foodfrenzy/stand/internal/handler"
	"github.com/foodfrenzy/stand/internal/scripting"
	"github.com/foodfrenzy/stand/internal/system"
	"github.com/foodfrenzy/stand/internal/world"
)

// Engine is the single owner of the game state. A 1-second ticker drives
// the periodic systems; intents run synchronously. Both paths take the
// engine mutex, so no caller ever observes a half-updated state, and both
// gate on the round phase, so callbacks landing after a round has ended
// are no-ops. Notifications queue on the bus during mutation and flush
// after the lock is released.
type Engine struct {
	mu     sync.Mutex
	log    *zap.Logger
	st     *world.State
	runner *coresys.Runner
	bus    *event.Bus
	deps   *handler.Deps

	stop     chan struct{}
	stopOnce sync.Once
}

// New assembles an engine over the given catalog and balance scripts.
// rng may be nil, in which case a time-seeded source is used; tests pass
// a fixed seed for deterministic arrivals.
func New(cfg *config.Config, menu *data.MenuTable, balance *scripting.Engine, rng *rand.Rand, log *zap.Logger) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	st := world.NewState(menu)
	bus := event.NewBus()
	deps := &handler.Deps{
		Cfg:     cfg.Game,
		Log:     log,
		Balance: balance,
		Bus:     bus,
	}

	runner := coresys.NewRunner()
	runner.Register(system.NewClockSystem(st, cfg.Game, bus, log))
	runner.Register(system.NewDecaySystem(st, bus))
	runner.Register(system.NewArrivalSystem(st, cfg.Game, balance, bus, rng, log))

	return &Engine{
		log:    log,
		st:     st,
		runner: runner,
		bus:    bus,
		deps:   deps,
		stop:   make(chan struct{}),
	}
}

// Bus exposes the notification bus for subscriber registration.
func (e *Engine) Bus() *event.Bus {
	return e.bus
}

// Run drives the periodic systems until the context is cancelled or Close
// is called. Call in a goroutine.
func (e *Engine) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-e.stop:
			return
		case <-ticker.C:
			e.Tick(time.Second)
		}
	}
}

// Close stops the Run loop.
func (e *Engine) Close() {
	e.stopOnce.Do(func() { close(e.stop) })
}

// Tick advances the simulation by one step. Exported so tests can drive
// game time deterministically without a wall clock.
func (e *Engine) Tick(dt time.Duration) {
	e.mu.Lock()
	e.runner.Tick(dt)
	e.mu.Unlock()
	e.bus.Flush()
}

// StartRound begins a new round (or a replay after game over).
func (e *Engine) StartRound() {
	e.intent(func() { handler.StartRound(e.st, e.deps) })
}

// SelectCustomer selects or toggle-deselects a waiting customer.
func (e *Engine) SelectCustomer(id int64) {
	e.intent(func() { handler.SelectCustomer(e.st, e.deps, id) })
}

// ApplyStep applies one preparation step to the selected order.
func (e *Engine) ApplyStep(stepID string) {
	e.intent(func() { handler.ApplyStep(e.st, e.deps, stepID) })
}

// Serve submits the assembled order for the selected customer.
func (e *Engine) Serve() {
	e.intent(func() { handler.Serve(e.st, e.deps) })
}

// PurchaseTime exchanges currency for extra round seconds.
func (e *Engine) PurchaseTime() {
	e.intent(func() { handler.PurchaseTime(e.st, e.deps) })
}

// UnlockItem buys a locked menu item in the upgrades shop.
func (e *Engine) UnlockItem(itemID string) {
	e.intent(func() { handler.UnlockItem(e.st, e.deps, itemID) })
}

// Snapshot returns a deep-copied read-only view of the game state.
func (e *Engine) Snapshot() world.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.Snapshot()
}

func (e *Engine) intent(fn func()) {
	e.mu.Lock()
	fn()
	e.mu.Unlock()
	e.bus.Flush()
}
