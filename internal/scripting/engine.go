// Package scripting hosts the tunable balance formulas in Lua. The engine
// ships with embedded defaults and overlays any .lua files found in the
// configured scripts directory, so designers can retune the difficulty
// curve without a rebuild.
package scripting

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed balance.lua
var defaultBalance string

// Engine wraps a single gopher-lua VM for balance calculations.
// Single-goroutine access only (all calls happen under the engine lock).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine, loads the embedded defaults, then any
// overrides from dir/balance. An empty dir skips the overlay entirely.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := vm.DoString(defaultBalance); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load embedded balance script: %w", err)
	}
	if dir != "" {
		if err := e.loadDir(filepath.Join(dir, "balance")); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load balance scripts: %w", err)
		}
	}
	return e, nil
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory. Missing dirs are skipped.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// AdmissionContext holds pre-packed data for an arrival admission roll.
type AdmissionContext struct {
	Level int
	Price int
}

// AdmissionChance calls the Lua admission_chance function and returns a
// percentage in [0,100]. Rarer, pricier dishes keep a higher chance as the
// level climbs.
func (e *Engine) AdmissionChance(ctx AdmissionContext) int {
	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("price", lua.LNumber(ctx.Price))

	n, ok := e.callNumber("admission_chance", t)
	if !ok {
		return fallbackAdmissionChance(ctx.Level, ctx.Price)
	}
	return clampPercent(int(n))
}

// PatienceContext holds pre-packed data for a patience budget calculation.
type PatienceContext struct {
	Level int
	Base  int
	Min   int
}

// Patience calls the Lua patience function: the seconds a new customer
// will wait, shrinking with level down to the floor.
func (e *Engine) Patience(ctx PatienceContext) int {
	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("base", lua.LNumber(ctx.Base))
	t.RawSetString("min", lua.LNumber(ctx.Min))

	n, ok := e.callNumber("patience", t)
	if !ok {
		return fallbackPatience(ctx.Level, ctx.Base, ctx.Min)
	}
	p := int(n)
	if p < ctx.Min {
		p = ctx.Min
	}
	return p
}

// LevelContext holds pre-packed data for a level-curve calculation.
type LevelContext struct {
	Level   int // the level just reached
	Current int // the threshold that was just crossed
}

// RequiredScore calls the Lua required_score function: the score threshold
// for the level after ctx.Level.
func (e *Engine) RequiredScore(ctx LevelContext) int {
	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("current", lua.LNumber(ctx.Current))

	n, ok := e.callNumber("required_score", t)
	if !ok {
		return fallbackRequiredScore(ctx.Level, ctx.Current)
	}
	r := int(n)
	if r <= ctx.Current {
		// A curve that does not grow would re-trigger level-up forever.
		return fallbackRequiredScore(ctx.Level, ctx.Current)
	}
	return r
}

// callNumber invokes a global Lua function with one table argument and
// returns its numeric result. ok is false when the function is missing,
// errors, or returns a non-number; callers fall back to the Go formula.
func (e *Engine) callNumber(name string, arg *lua.LTable) (float64, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("fn", name))
		return 0, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call failed", zap.String("fn", name), zap.Error(err))
		return 0, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	n, isNum := ret.(lua.LNumber)
	if !isNum {
		e.log.Error("lua function returned non-number", zap.String("fn", name))
		return 0, false
	}
	return float64(n), true
}

// Go fallbacks, used when the Lua side is missing or broken. These match
// the shipped balance.lua exactly.

func fallbackAdmissionChance(level, price int) int {
	if price <= 0 {
		return 0
	}
	return clampPercent(100 - (level*5)/price)
}

func fallbackPatience(level, base, min int) int {
	p := base - level/2
	if p < min {
		p = min
	}
	return p
}

func fallbackRequiredScore(newLevel, current int) int {
	return current + 50*newLevel
}

func clampPercent(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
