package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/foodfrenzy/stand/internal/config"
	"github.com/foodfrenzy/stand/internal/core/event"
	coresys "github.com/foodfrenzy/stand/internal/core/system"
	"github.com/foodfrenzy/stand/internal/world"
)

// ClockSystem drives the round countdown. Reaching zero ends the round:
// the state is frozen, the summary is prepended to history, and all other
// systems become no-ops through the phase gate.
type ClockSystem struct {
	st  *world.State
	cfg config.GameConfig
	bus *event.Bus
	log *zap.Logger
	now func() time.Time
}

func NewClockSystem(st *world.State, cfg config.GameConfig, bus *event.Bus, log *zap.Logger) *ClockSystem {
	return &ClockSystem{st: st, cfg: cfg, bus: bus, log: log, now: time.Now}
}

func (s *ClockSystem) Phase() coresys.Phase { return coresys.PhaseClock }

func (s *ClockSystem) Update(dt time.Duration) {
	if s.st.Phase != world.PhaseActive {
		return
	}
	s.st.TimeLeft--
	if s.st.TimeLeft <= 0 {
		s.st.TimeLeft = 0
		entry := s.st.EndRound(s.now(), s.cfg.HistoryLimit)
		s.log.Info("round over",
			zap.Int("score", entry.Score),
			zap.Int("money", entry.Money),
			zap.Int("level", entry.Level))
		event.Emit(s.bus, event.RoundEnded{
			Score:   entry.Score,
			Money:   entry.Money,
			Level:   entry.Level,
			EndedAt: entry.EndedAt,
		})
		return
	}
	if !s.st.LowTimeWarned && s.st.TimeLeft <= s.cfg.LowTimeWarningSecs {
		s.st.LowTimeWarned = true
		event.Emit(s.bus, event.LowTimeWarning{TimeLeft: s.st.TimeLeft})
	}
}
