package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Data    DataConfig    `toml:"data"`
	Scripts ScriptsConfig `toml:"scripts"`
	Logging LoggingConfig `toml:"logging"`
}

// GameConfig holds every tunable of the round rules.
type GameConfig struct {
	RoundDurationSecs    int `toml:"round_duration_secs"`
	MaxCustomers         int `toml:"max_customers"`
	BasePatienceSecs     int `toml:"base_patience_secs"`
	MinPatienceSecs      int `toml:"min_patience_secs"`
	ArrivalPeriodSecs    int `toml:"arrival_period_secs"`
	ServeScore           int `toml:"serve_score"`
	InitialRequiredScore int `toml:"initial_required_score"`
	TimePurchaseCost     int `toml:"time_purchase_cost"`
	TimePurchaseSecs     int `toml:"time_purchase_secs"`
	LowTimeWarningSecs   int `toml:"low_time_warning_secs"`
	HistoryLimit         int `toml:"history_limit"`

	// ResetCatalogOnRestart controls whether "play again" re-locks every menu
	// item that does not start unlocked. When false, unlocks bought in earlier
	// rounds carry over to the next round.
	ResetCatalogOnRestart bool `toml:"reset_catalog_on_restart"`
}

type DataConfig struct {
	MenuPath string `toml:"menu_path"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Game: GameConfig{
			RoundDurationSecs:     60,
			MaxCustomers:          3,
			BasePatienceSecs:      15,
			MinPatienceSecs:       5,
			ArrivalPeriodSecs:     2,
			ServeScore:            10,
			InitialRequiredScore:  50,
			TimePurchaseCost:      50,
			TimePurchaseSecs:      60,
			LowTimeWarningSecs:    10,
			HistoryLimit:          10,
			ResetCatalogOnRestart: true,
		},
		Data: DataConfig{
			MenuPath: "data/yaml/menu_list.yaml",
		},
		Scripts: ScriptsConfig{
			Dir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
