package game

import (
	"fmt"
	"math/rand"
)

// optionKind controls the pass in which an option is applied.
type optionKind int

const (
	optConfig optionKind = iota // config edits, applied before validation
	optInfra                    // seed, verbose logging
	optState                    // balance, level/wave
	optEntity                   // pre-placed units, enemies, pickups
)

// Option customises an Engine during construction.
type Option struct {
	kind optionKind
	fn   func(*Engine)
}

func applyOptions(e *Engine, opts []Option, kind optionKind) {
	for _, o := range opts {
		if o.kind == kind {
			o.fn(e)
		}
	}
}

// WithConfig edits the configuration before it is validated.
func WithConfig(edit func(*Config)) Option {
	return Option{optConfig, func(e *Engine) {
		edit(&e.cfg)
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return Option{optInfra, func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation RNG, not security
	}}
}

// WithVerbose enables per-shot and per-bite logging.
func WithVerbose(v bool) Option {
	return Option{optInfra, func(e *Engine) {
		e.log = NewSimLog(v)
	}}
}

// WithBalance overrides the starting balance.
func WithBalance(n int) Option {
	return Option{optState, func(e *Engine) {
		e.balance = n
	}}
}

// WithLevel starts the scheduler at (level, wave).
func WithLevel(level, wave int) Option {
	return Option{optState, func(e *Engine) {
		e.waves.Jump(level, wave)
	}}
}

// WithUnit places a unit free of charge.
func WithUnit(kind UnitKind, col, row int) Option {
	return Option{optEntity, func(e *Engine) {
		if _, err := e.place(kind, col, row, false); err != nil {
			e.log.Add(e.tick, "--", "fault", "setup", err.Error(), 0)
		}
	}}
}

// WithEnemy spawns an enemy of kind at x on row, scaled to the current level.
// It does not count against the wave quota.
func WithEnemy(kind EnemyKind, row int, x float64) Option {
	return Option{optEntity, func(e *Engine) {
		if row < 0 || row >= e.cfg.Rows {
			e.log.Add(e.tick, "--", "fault", "setup", fmt.Sprintf("enemy lane %d: %v", row, ErrOutOfBounds), 0)
			return
		}
		e.spawnEnemy(kind, row, x)
	}}
}

// WithCollectible drops a pickup of value at x on row.
func WithCollectible(row int, x float64, value int) Option {
	return Option{optEntity, func(e *Engine) {
		e.spawnCollectible(x, row, value, false)
	}}
}
