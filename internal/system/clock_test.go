package system

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/foodfrenzy/stand/internal/config"
	"github.com/foodfrenzy/stand/internal/core/event"
	"github.com/foodfrenzy/stand/internal/data"
	"github.com/foodfrenzy/stand/internal/world"
)

func newClockFixture(t *testing.T) (*world.State, *ClockSystem, *event.Bus) {
	t.Helper()
	st := world.NewState(data.DefaultMenu())
	bus := event.NewBus()
	cfg := config.Default().Game
	return st, NewClockSystem(st, cfg, bus, zap.NewNop()), bus
}

func TestClockCountdown(t *testing.T) {
	st, clock, _ := newClockFixture(t)
	st.StartRound(60, 50, true)

	clock.Update(time.Second)
	clock.Update(time.Second)

	if st.TimeLeft != 58 {
		t.Fatalf("time left = %d, want 58", st.TimeLeft)
	}
	if st.Phase != world.PhaseActive {
		t.Fatalf("phase = %v, want active", st.Phase)
	}
}

func TestClockEndsRound(t *testing.T) {
	st, clock, bus := newClockFixture(t)
	var ended []event.RoundEnded
	event.Subscribe(bus, func(ev event.RoundEnded) { ended = append(ended, ev) })

	st.StartRound(2, 50, true)
	st.Score = 30
	st.Money = 42

	clock.Update(time.Second)
	clock.Update(time.Second)
	bus.Flush()

	if st.Phase != world.PhaseOver {
		t.Fatalf("phase = %v, want over", st.Phase)
	}
	if st.TimeLeft != 0 {
		t.Errorf("time left = %d, want 0", st.TimeLeft)
	}
	if len(st.History) != 1 || st.History[0].Score != 30 || st.History[0].Money != 42 {
		t.Errorf("history = %+v, want one entry with score 30, money 42", st.History)
	}
	if len(ended) != 1 || ended[0].Score != 30 {
		t.Errorf("round ended events = %+v, want one with score 30", ended)
	}
}

func TestClockIdleNoOp(t *testing.T) {
	st, clock, _ := newClockFixture(t)
	st.TimeLeft = 60

	clock.Update(time.Second)

	if st.TimeLeft != 60 {
		t.Fatal("clock ticked outside an active round")
	}
}

func TestClockStaleTickAfterRoundEnd(t *testing.T) {
	st, clock, _ := newClockFixture(t)
	st.StartRound(1, 50, true)

	clock.Update(time.Second)
	if st.Phase != world.PhaseOver {
		t.Fatal("round should be over")
	}
	clock.Update(time.Second)

	if len(st.History) != 1 {
		t.Fatalf("stale tick recorded an extra round: history = %d", len(st.History))
	}
}

func TestClockLowTimeWarningOnce(t *testing.T) {
	st, clock, bus := newClockFixture(t)
	warned := 0
	event.Subscribe(bus, func(event.LowTimeWarning) { warned++ })

	st.StartRound(13, 50, true)
	for i := 0; i < 5; i++ {
		clock.Update(time.Second)
	}
	bus.Flush()

	if st.TimeLeft != 8 {
		t.Fatalf("time left = %d, want 8", st.TimeLeft)
	}
	if warned != 1 {
		t.Fatalf("warning fired %d times, want exactly once", warned)
	}
}
