package system

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/foodfrenzy/stand/internal/config"
	"github.com/foodfrenzy/stand/internal/core/event"
	coresys "github.com/foodfrenzy/stand/internal/core/system"
	"github.com/foodfrenzy/stand/internal/scripting"
	"github.com/foodfrenzy/stand/internal/world"
)

// ArrivalSystem seats a new customer on its own cadence (every
// ArrivalPeriodSecs, tracked with a tick accumulator) while the queue is
// below the concurrency cap.
//
// Dish choice is a two-stage draw: each unlocked item is independently
// admitted with a chance that falls as the level rises and rises with the
// item's price, then one admitted item is picked uniformly. If the roll
// admits nothing the full unlocked set is used instead, so generation never
// stalls while unlocked items exist.
type ArrivalSystem struct {
	st      *world.State
	cfg     config.GameConfig
	balance *scripting.Engine
	bus     *event.Bus
	rng     *rand.Rand
	log     *zap.Logger

	elapsed int // seconds since last generation attempt
}

func NewArrivalSystem(st *world.State, cfg config.GameConfig, balance *scripting.Engine, bus *event.Bus, rng *rand.Rand, log *zap.Logger) *ArrivalSystem {
	return &ArrivalSystem{
		st:      st,
		cfg:     cfg,
		balance: balance,
		bus:     bus,
		rng:     rng,
		log:     log,
	}
}

func (s *ArrivalSystem) Phase() coresys.Phase { return coresys.PhaseArrival }

func (s *ArrivalSystem) Update(dt time.Duration) {
	if s.st.Phase != world.PhaseActive {
		s.elapsed = 0
		return
	}
	s.elapsed++
	if s.elapsed < s.cfg.ArrivalPeriodSecs {
		return
	}
	s.elapsed = 0
	s.generate()
}

func (s *ArrivalSystem) generate() {
	if len(s.st.Customers) >= s.cfg.MaxCustomers {
		return
	}
	unlocked := s.st.UnlockedItems()
	if len(unlocked) == 0 {
		return
	}

	admitted := make([]*world.MenuItem, 0, len(unlocked))
	for _, it := range unlocked {
		chance := s.balance.AdmissionChance(scripting.AdmissionContext{
			Level: s.st.Level,
			Price: it.Price,
		})
		if s.rng.Intn(100) < chance {
			admitted = append(admitted, it)
		}
	}
	if len(admitted) == 0 {
		admitted = unlocked
	}

	item := admitted[s.rng.Intn(len(admitted))]
	patience := s.balance.Patience(scripting.PatienceContext{
		Level: s.st.Level,
		Base:  s.cfg.BasePatienceSecs,
		Min:   s.cfg.MinPatienceSecs,
	})

	c := &world.Customer{
		ID:       s.st.NextCustomerID(),
		Dish:     item.ID,
		Patience: patience,
		Steps:    append([]string(nil), item.Steps...),
		Reward:   item.Price,
	}
	s.st.AddCustomer(c)

	s.log.Debug("customer arrived",
		zap.Int64("customer_id", c.ID),
		zap.String("dish", c.Dish),
		zap.Int("patience", c.Patience))
	event.Emit(s.bus, event.CustomerArrived{
		CustomerID: c.ID,
		Dish:       c.Dish,
		Reward:     c.Reward,
		Patience:   c.Patience,
	})
}
