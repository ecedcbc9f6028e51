package game

// Snapshot is a read-only copy of engine state handed to policies.
// Mutating it never affects the engine.
type Snapshot struct {
	Tick     int
	Level    int
	Wave     int
	Balance  int
	Spawned  int
	Quota    int
	GameOver bool
	Stats    Stats

	Units        []Unit
	Enemies      []Enemy
	Projectiles  []Projectile
	Collectibles []Collectible

	// Config is shared with the engine; treat it as read-only.
	Config Config

	cells  []int        // unit index+1 per cell, 0 when empty
	locked map[int]bool // cells whose occupant already changed this tick
}

// Snapshot copies the current engine state.
func (e *Engine) Snapshot() *Snapshot {
	s := &Snapshot{
		Tick:         e.tick,
		Level:        e.waves.Level,
		Wave:         e.waves.Wave,
		Balance:      e.balance,
		Spawned:      e.waves.Spawned,
		Quota:        e.waves.Quota,
		GameOver:     e.gameOver,
		Stats:        e.stats,
		Units:        make([]Unit, len(e.units)),
		Enemies:      make([]Enemy, len(e.enemies)),
		Projectiles:  make([]Projectile, len(e.projectiles)),
		Collectibles: make([]Collectible, len(e.collectibles)),
		Config:       e.cfg,
		cells:        make([]int, e.cfg.Cols*e.cfg.Rows),
		locked:       make(map[int]bool, len(e.touched)),
	}
	for cell := range e.touched {
		s.locked[cell] = true
	}
	for i, u := range e.units {
		s.Units[i] = *u
		if e.grid.InBounds(u.Col, u.Row) {
			s.cells[u.Row*e.cfg.Cols+u.Col] = i + 1
		}
	}
	for i, en := range e.enemies {
		s.Enemies[i] = *en
	}
	for i, p := range e.projectiles {
		s.Projectiles[i] = *p
	}
	for i, c := range e.collectibles {
		s.Collectibles[i] = *c
	}
	return s
}

// Cols is the grid width.
func (s *Snapshot) Cols() int { return s.Config.Cols }

// Rows is the grid height.
func (s *Snapshot) Rows() int { return s.Config.Rows }

// UnitAt returns the unit occupying (col,row), if any.
func (s *Snapshot) UnitAt(col, row int) (Unit, bool) {
	if col < 0 || col >= s.Config.Cols || row < 0 || row >= s.Config.Rows {
		return Unit{}, false
	}
	i := s.cells[row*s.Config.Cols+col]
	if i == 0 {
		return Unit{}, false
	}
	return s.Units[i-1], true
}

// Occupied reports whether (col,row) holds a unit. Out-of-range cells count
// as occupied.
func (s *Snapshot) Occupied(col, row int) bool {
	if col < 0 || col >= s.Config.Cols || row < 0 || row >= s.Config.Rows {
		return true
	}
	cell := row*s.Config.Cols + col
	return s.cells[cell] != 0 || s.locked[cell]
}

// Cost returns the placement cost of kind.
func (s *Snapshot) Cost(kind UnitKind) int { return s.Config.Units[kind].Cost }

// Affordable reports whether the balance covers kind.
func (s *Snapshot) Affordable(kind UnitKind) bool {
	def, ok := s.Config.Units[kind]
	return ok && s.Balance >= def.Cost
}

// CountKind counts live units of kind.
func (s *Snapshot) CountKind(kind UnitKind) int {
	n := 0
	for _, u := range s.Units {
		if u.Kind == kind {
			n++
		}
	}
	return n
}

// UnitsInLane counts units of kind in row.
func (s *Snapshot) UnitsInLane(row int, kind UnitKind) int {
	n := 0
	for _, u := range s.Units {
		if u.Row == row && u.Kind == kind {
			n++
		}
	}
	return n
}

// RoleInLane counts units with role in row.
func (s *Snapshot) RoleInLane(row int, role UnitRole) int {
	n := 0
	for _, u := range s.Units {
		if u.Row == row && u.Role == role {
			n++
		}
	}
	return n
}

// LaneUnits counts every unit in row.
func (s *Snapshot) LaneUnits(row int) int {
	n := 0
	for _, u := range s.Units {
		if u.Row == row {
			n++
		}
	}
	return n
}

// EnemiesInLane counts non-dying enemies in row.
func (s *Snapshot) EnemiesInLane(row int) int {
	n := 0
	for _, e := range s.Enemies {
		if e.Lane == row && !e.Dying {
			n++
		}
	}
	return n
}

// LiveEnemies counts non-dying enemies on the field.
func (s *Snapshot) LiveEnemies() int {
	n := 0
	for _, e := range s.Enemies {
		if !e.Dying {
			n++
		}
	}
	return n
}

// FirstCollectible returns the lowest-id active collectible.
func (s *Snapshot) FirstCollectible() (Collectible, bool) {
	for _, c := range s.Collectibles {
		if c.Active {
			return c, true
		}
	}
	return Collectible{}, false
}

// Progress is the flattened (level, wave) score.
func (s *Snapshot) Progress() int {
	return ProgressOf(s.Level, s.Wave, s.Config.WavesPerLevel)
}

// Outcome summarises the snapshot for the adaptation layer.
func (s *Snapshot) Outcome() Outcome {
	return Outcome{
		Level:    s.Level,
		Wave:     s.Wave,
		Progress: s.Progress(),
		Ticks:    s.Tick,
		Stats:    s.Stats,
	}
}
