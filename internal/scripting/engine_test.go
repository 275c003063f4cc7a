package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, dir string) *Engine {
	t.Helper()
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestAdmissionChance(t *testing.T) {
	e := newTestEngine(t, "")

	tests := []struct {
		name  string
		level int
		price int
		want  int
	}{
		{"levelOne", 1, 10, 100},
		{"cheapDishFades", 10, 5, 90},
		{"pricierDishHolds", 10, 40, 99},
		{"clampedAtZero", 1000, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.AdmissionChance(AdmissionContext{Level: tt.level, Price: tt.price})
			if got != tt.want {
				t.Errorf("chance(level=%d, price=%d) = %d, want %d",
					tt.level, tt.price, got, tt.want)
			}
		})
	}
}

func TestPatience(t *testing.T) {
	e := newTestEngine(t, "")

	tests := []struct {
		name  string
		level int
		want  int
	}{
		{"levelOne", 1, 15},
		{"levelFour", 4, 13},
		{"flooredAtMin", 50, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Patience(PatienceContext{Level: tt.level, Base: 15, Min: 5})
			if got != tt.want {
				t.Errorf("patience(level=%d) = %d, want %d", tt.level, got, tt.want)
			}
		})
	}
}

func TestRequiredScore(t *testing.T) {
	e := newTestEngine(t, "")

	if got := e.RequiredScore(LevelContext{Level: 2, Current: 50}); got != 150 {
		t.Errorf("required(2, 50) = %d, want 150", got)
	}
	if got := e.RequiredScore(LevelContext{Level: 3, Current: 150}); got != 300 {
		t.Errorf("required(3, 150) = %d, want 300", got)
	}
}

func TestOverrideScripts(t *testing.T) {
	dir := t.TempDir()
	balanceDir := filepath.Join(dir, "balance")
	if err := os.MkdirAll(balanceDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := `
function patience(ctx)
    return 99
end
`
	if err := os.WriteFile(filepath.Join(balanceDir, "tuning.lua"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	e := newTestEngine(t, dir)
	if got := e.Patience(PatienceContext{Level: 1, Base: 15, Min: 5}); got != 99 {
		t.Errorf("patience = %d, want override value 99", got)
	}
	// Untouched formulas keep their embedded defaults.
	if got := e.RequiredScore(LevelContext{Level: 2, Current: 50}); got != 150 {
		t.Errorf("required = %d, want embedded 150", got)
	}
}

func TestBrokenOverrideRejected(t *testing.T) {
	dir := t.TempDir()
	balanceDir := filepath.Join(dir, "balance")
	if err := os.MkdirAll(balanceDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(balanceDir, "bad.lua"), []byte("function ("), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Fatal("expected error for unparseable script")
	}
}

func TestNonGrowingCurveFallsBack(t *testing.T) {
	dir := t.TempDir()
	balanceDir := filepath.Join(dir, "balance")
	if err := os.MkdirAll(balanceDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	flat := `
function required_score(ctx)
    return ctx.current
end
`
	if err := os.WriteFile(filepath.Join(balanceDir, "flat.lua"), []byte(flat), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	e := newTestEngine(t, dir)
	got := e.RequiredScore(LevelContext{Level: 2, Current: 50})
	if got <= 50 {
		t.Fatalf("required = %d, want strictly above the crossed threshold", got)
	}
}

func TestMissingOverrideDirSkipped(t *testing.T) {
	e := newTestEngine(t, filepath.Join(t.TempDir(), "absent"))
	if got := e.Patience(PatienceContext{Level: 1, Base: 15, Min: 5}); got != 15 {
		t.Errorf("patience = %d, want embedded 15", got)
	}
}
