package game

import (
	"errors"
	"fmt"
)

// NewTestEngine builds an engine on DefaultConfig with sky drops disabled,
// for use by tests and scripted scenarios. It panics on an invalid config.
//
// Options apply in ordered passes:
//  1. Config edits (WithConfig)
//  2. Infrastructure (seed, verbose)
//  3. State (balance, level/wave)
//  4. Entities (units, enemies, pickups)
func NewTestEngine(opts ...Option) *Engine {
	base := []Option{WithConfig(func(c *Config) { c.SkyDropInterval = 0 })}
	e, err := NewEngine(DefaultConfig(), append(base, opts...)...)
	if err != nil {
		panic(fmt.Sprintf("test engine: %v", err))
	}
	return e
}

// RunTicks advances the simulation n ticks.
func (e *Engine) RunTicks(n int) {
	for i := 0; i < n; i++ {
		e.Step()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (e *Engine) RunUntil(predicate func(*Engine) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		e.Step()
		if predicate(e) {
			return e.tick
		}
	}
	return -1
}

// UnitByID returns the live unit with id.
func (e *Engine) UnitByID(id int) (*Unit, bool) {
	for _, u := range e.units {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// EnemyByID returns the enemy with id, dying or not.
func (e *Engine) EnemyByID(id int) (*Enemy, bool) {
	for _, en := range e.enemies {
		if en.ID == id {
			return en, true
		}
	}
	return nil, false
}

// CheckInvariants verifies that the grid and the unit list agree: every live
// unit sits in exactly the cell that references it, and no cell references
// a missing unit.
func (e *Engine) CheckInvariants() error {
	var errs []error
	if occ := e.grid.Occupied(); occ != len(e.units) {
		errs = append(errs, fmt.Errorf("occupied cells %d != live units %d", occ, len(e.units)))
	}
	seen := map[int]bool{}
	for _, u := range e.units {
		id, ok, err := e.grid.At(u.Col, u.Row)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("%s: %w", u.Label(), err))
		case !ok || id != u.ID:
			errs = append(errs, fmt.Errorf("%s at (%d,%d) but cell holds %d", u.Label(), u.Col, u.Row, id))
		}
		if seen[u.ID] {
			errs = append(errs, fmt.Errorf("%s listed twice", u.Label()))
		}
		seen[u.ID] = true
	}
	for row := 0; row < e.grid.Rows(); row++ {
		for col := 0; col < e.grid.Cols(); col++ {
			id, ok, _ := e.grid.At(col, row)
			if ok && !seen[id] {
				errs = append(errs, fmt.Errorf("cell (%d,%d) references missing unit %d", col, row, id))
			}
		}
	}
	for _, en := range e.enemies {
		if en.HP < 0 || en.HP > en.MaxHP {
			errs = append(errs, fmt.Errorf("%s hp %d outside [0,%d]", en.Label(), en.HP, en.MaxHP))
		}
	}
	return errors.Join(errs...)
}
