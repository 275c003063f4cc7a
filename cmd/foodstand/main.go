package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/foodfrenzy/stand/internal/config"
	"github.com/foodfrenzy/stand/internal/core/event"
	"github.com/foodfrenzy/stand/internal/data"
	"github.com/foodfrenzy/stand/internal/engine"
	"github.com/foodfrenzy/stand/internal/scripting"
	"github.com/foodfrenzy/stand/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/stand.toml"
	if p := os.Getenv("FOODSTAND_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Default()
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Load menu catalog
	menu, err := data.LoadMenuTable(cfg.Data.MenuPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load menu: %w", err)
		}
		menu = data.DefaultMenu()
	}
	log.Info("menu catalog loaded", zap.Int("dishes", menu.Count()))

	// 4. Init Lua balance engine
	balance, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("balance scripts: %w", err)
	}
	defer balance.Close()

	// 5. Assemble engine and wire the notification log
	eng := engine.New(cfg, menu, balance, nil, log)
	subscribeNotifications(eng, log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go eng.Run(ctx)
	go autoplay(ctx, eng)

	log.Info("food stand open",
		zap.Int("round_secs", cfg.Game.RoundDurationSecs),
		zap.Int("max_customers", cfg.Game.MaxCustomers))
	eng.StartRound()

	<-ctx.Done()
	eng.Close()
	log.Info("food stand closed")
	return nil
}

// autoplay is a stand-in for the external renderer: it reads snapshots
// and issues the intents a competent player would, so a headless run
// exercises the full rule set.
func autoplay(ctx context.Context, eng *engine.Engine) {
	ticker := time.NewTicker(400 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		snap := eng.Snapshot()
		switch snap.Phase {
		case world.PhaseOver: // play again after a beat
			time.Sleep(2 * time.Second)
			eng.StartRound()
			continue
		case world.PhaseIdle:
			eng.StartRound()
			continue
		}

		// Buy the cheapest affordable locked dish.
		for _, it := range snap.Menu {
			if !it.Unlocked && snap.Money >= it.UnlockCost {
				eng.UnlockItem(it.ID)
				break
			}
		}

		if snap.SelectedID == 0 {
			if len(snap.Customers) > 0 {
				eng.SelectCustomer(snap.Customers[0].ID)
			}
			continue
		}
		for _, c := range snap.Customers {
			if c.ID != snap.SelectedID {
				continue
			}
			if len(snap.CompletedSteps) == len(c.Steps) {
				eng.Serve()
			} else {
				eng.ApplyStep(c.Steps[len(snap.CompletedSteps)])
			}
			break
		}
	}
}

func subscribeNotifications(eng *engine.Engine, log *zap.Logger) {
	bus := eng.Bus()
	event.Subscribe(bus, func(ev event.CustomerArrived) {
		log.Info("new customer",
			zap.Int64("id", ev.CustomerID),
			zap.String("dish", ev.Dish),
			zap.Int("reward", ev.Reward))
	})
	event.Subscribe(bus, func(ev event.CustomerAbandoned) {
		log.Warn("customer walked out",
			zap.Int64("id", ev.CustomerID),
			zap.String("dish", ev.Dish),
			zap.Bool("was_selected", ev.WasSelected))
	})
	event.Subscribe(bus, func(ev event.StepRejected) {
		log.Debug("step rejected",
			zap.String("step", ev.StepID),
			zap.String("expected", ev.Expected))
	})
	event.Subscribe(bus, func(ev event.OrderServed) {
		log.Info("order served",
			zap.String("dish", ev.Dish),
			zap.Int("score", ev.Score))
	})
	event.Subscribe(bus, func(ev event.LevelUp) {
		log.Info("level up", zap.Int("level", ev.Level))
	})
	event.Subscribe(bus, func(ev event.ItemUnlocked) {
		log.Info("dish unlocked", zap.String("item", ev.ItemID), zap.Int("cost", ev.Cost))
	})
	event.Subscribe(bus, func(ev event.TimePurchased) {
		log.Info("time purchased", zap.Int("time_left", ev.TimeLeft))
	})
	event.Subscribe(bus, func(ev event.LowTimeWarning) {
		log.Warn("time running out", zap.Int("time_left", ev.TimeLeft))
	})
	event.Subscribe(bus, func(ev event.RoundEnded) {
		log.Info("round ended",
			zap.Int("score", ev.Score),
			zap.Int("money", ev.Money),
			zap.Int("level", ev.Level))
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
