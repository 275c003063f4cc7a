package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Game.RoundDurationSecs != 60 {
		t.Errorf("round duration = %d, want 60", cfg.Game.RoundDurationSecs)
	}
	if cfg.Game.MaxCustomers != 3 {
		t.Errorf("max customers = %d, want 3", cfg.Game.MaxCustomers)
	}
	if cfg.Game.BasePatienceSecs != 15 {
		t.Errorf("base patience = %d, want 15", cfg.Game.BasePatienceSecs)
	}
	if !cfg.Game.ResetCatalogOnRestart {
		t.Error("catalog reset should default to true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stand.toml")
	body := `
[game]
round_duration_secs = 90
max_customers = 5
reset_catalog_on_restart = false

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Game.RoundDurationSecs != 90 {
		t.Errorf("round duration = %d, want 90", cfg.Game.RoundDurationSecs)
	}
	if cfg.Game.MaxCustomers != 5 {
		t.Errorf("max customers = %d, want 5", cfg.Game.MaxCustomers)
	}
	if cfg.Game.ResetCatalogOnRestart {
		t.Error("catalog reset should be overridden to false")
	}
	// Untouched keys keep their defaults.
	if cfg.Game.ServeScore != 10 {
		t.Errorf("serve score = %d, want default 10", cfg.Game.ServeScore)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[game\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
