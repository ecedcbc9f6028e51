package game

import (
	"fmt"
	"math"
	"math/rand"
)

// Engine is the sole mutator of simulation state. It advances one fixed
// tick per Step and applies at most one agent Action between ticks.
type Engine struct {
	cfg   Config
	grid  *Grid
	waves *WaveScheduler
	rng   *rand.Rand
	log   *SimLog

	units        []*Unit
	enemies      []*Enemy
	projectiles  []*Projectile
	collectibles []*Collectible

	tick     int
	balance  int
	gameOver bool
	stats    Stats
	nextID   int

	// touched holds cells whose occupant changed during the current tick.
	touched map[int]struct{}
}

// NewEngine validates cfg and builds an engine at level 1, wave 1.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg: cfg,
		rng: rand.New(rand.NewSource(1)), // #nosec G404 -- simulation RNG, not security
		log: NewSimLog(false),
	}
	applyOptions(e, opts, optConfig)
	if err := e.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	e.Reset()
	applyOptions(e, opts, optInfra)
	applyOptions(e, opts, optState)
	applyOptions(e, opts, optEntity)
	return e, nil
}

// Reset clears the field back to level 1, wave 1 with the starting balance.
// The RNG stream continues so consecutive episodes differ.
func (e *Engine) Reset() {
	e.grid = NewGrid(e.cfg.Cols, e.cfg.Rows)
	e.waves = NewWaveScheduler(e.cfg.Rows, e.cfg.WavesPerLevel)
	e.units = nil
	e.enemies = nil
	e.projectiles = nil
	e.collectibles = nil
	e.tick = 0
	e.balance = e.cfg.StartBalance
	e.gameOver = false
	e.stats = Stats{}
	e.nextID = 0
	e.touched = map[int]struct{}{}
	e.log.Reset()
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// SimLog returns the episode event trail.
func (e *Engine) SimLog() *SimLog { return e.log }

// Tick is the number of ticks stepped since Reset.
func (e *Engine) Tick() int { return e.tick }

// Balance is the current resource balance.
func (e *Engine) Balance() int { return e.balance }

// GameOver reports whether an enemy has breached. It stays true until Reset.
func (e *Engine) GameOver() bool { return e.gameOver }

// Stats returns the cumulative episode counters.
func (e *Engine) Stats() Stats { return e.stats }

// Waves exposes the scheduler for inspection.
func (e *Engine) Waves() *WaveScheduler { return e.waves }

// Grid exposes the placement store for inspection.
func (e *Engine) Grid() *Grid { return e.grid }

// Outcome reports the current level and wave.
func (e *Engine) Outcome() Outcome {
	return Outcome{
		Level:    e.waves.Level,
		Wave:     e.waves.Wave,
		Progress: ProgressOf(e.waves.Level, e.waves.Wave, e.cfg.WavesPerLevel),
		Ticks:    e.tick,
		Stats:    e.stats,
	}
}

func (e *Engine) newID() int {
	e.nextID++
	return e.nextID
}

// Step advances the simulation by one tick. It is a no-op once terminal.
func (e *Engine) Step() {
	if e.gameOver {
		return
	}
	e.tick++
	clear(e.touched)

	e.updateGenerators()
	e.updateAttackers()
	e.updateEnemies()
	e.transitionEnemies()
	if e.checkBreach() {
		return
	}
	e.updateProjectiles()
	e.pruneUnits()
	e.updateCollectibles()
	e.updateWaves()
}

// 1. Resource ticks.
func (e *Engine) updateGenerators() {
	for _, u := range e.units {
		if u.Role != RoleGenerator {
			continue
		}
		u.Cooldown--
		if u.Cooldown > 0 {
			continue
		}
		e.spawnCollectible(u.X, u.Row, e.cfg.GeneratorValue, false)
		u.Cooldown = e.cfg.Units[u.Kind].Cooldown
		e.log.AddVerbose(e.tick, u.Label(), "resource", "produce", fmt.Sprintf("+%d at lane %d", e.cfg.GeneratorValue, u.Row), float64(e.cfg.GeneratorValue))
	}
}

// 2. Attack ticks.
func (e *Engine) updateAttackers() {
	for _, u := range e.units {
		if u.Role != RoleAttacker {
			continue
		}
		if u.Cooldown > 0 {
			u.Cooldown--
		}
		target := e.firingTarget(u)
		if target == nil || u.Cooldown > 0 {
			continue
		}
		def := e.cfg.Units[u.Kind]
		shots := def.Shots
		if shots < 1 {
			shots = 1
		}
		for i := 0; i < shots; i++ {
			e.projectiles = append(e.projectiles, &Projectile{
				ID:     e.newID(),
				X:      u.X - float64(i)*12,
				Lane:   u.Row,
				Speed:  e.cfg.ProjectileSpeed,
				Damage: e.cfg.ProjectileDamage,
				Active: true,
			})
		}
		e.stats.ProjectilesFired += shots
		u.Cooldown = def.Cooldown
		e.log.AddVerbose(e.tick, u.Label(), "unit", "fire", fmt.Sprintf("%d shot(s) at %s", shots, target.Label()), float64(shots))
	}
}

// firingTarget returns the nearest non-dying enemy ahead of u on its lane
// and inside the field.
func (e *Engine) firingTarget(u *Unit) *Enemy {
	var best *Enemy
	for _, en := range e.enemies {
		if en.Dying || en.Lane != u.Row {
			continue
		}
		if en.X <= u.X || en.X > e.cfg.FieldRight {
			continue
		}
		if best == nil || en.X < best.X {
			best = en
		}
	}
	return best
}

// 3. Enemy update.
func (e *Engine) updateEnemies() {
	for _, en := range e.enemies {
		if en.Dying || en.HP <= 0 {
			continue
		}
		if en.AttackCooldown > 0 {
			en.AttackCooldown--
		}
		target := e.meleeTarget(en)
		if target == nil {
			en.Engaged = false
			en.X -= en.Speed
			continue
		}
		en.Engaged = true
		if en.AttackCooldown > 0 {
			continue
		}
		target.HP -= en.Damage
		e.stats.DamageTaken += en.Damage
		en.AttackCooldown = en.AttackPeriod
		e.log.AddVerbose(e.tick, en.Label(), "enemy", "bite", fmt.Sprintf("%s hp %d", target.Label(), target.HP), float64(en.Damage))
	}
}

// meleeTarget returns the closest unit in contact range on the enemy's lane.
func (e *Engine) meleeTarget(en *Enemy) *Unit {
	var best *Unit
	bestDist := math.Inf(1)
	for _, u := range e.units {
		if u.Row != en.Lane || u.HP <= 0 {
			continue
		}
		d := math.Abs(en.X - u.X)
		if d < e.cfg.MeleeRange && d < bestDist {
			best = u
			bestDist = d
		}
	}
	return best
}

// 4. Enemy state transition.
func (e *Engine) transitionEnemies() {
	kept := e.enemies[:0]
	for _, en := range e.enemies {
		switch {
		case en.Dying:
			en.DeathTimer++
		case en.HP <= 0:
			en.Dying = true
			en.Engaged = false
			en.DeathTimer = 0
			e.stats.EnemiesDefeated++
			e.log.Add(e.tick, en.Label(), "enemy", "defeated", fmt.Sprintf("%s lane %d x=%.0f", en.Kind, en.Lane, en.X), en.X)
		}
		if en.Dying && en.DeathTimer > e.cfg.DeathDuration {
			e.log.AddVerbose(e.tick, en.Label(), "enemy", "purged", "", 0)
			continue
		}
		kept = append(kept, en)
	}
	clearTail(e.enemies, len(kept))
	e.enemies = kept
}

// 5. Breach check.
func (e *Engine) checkBreach() bool {
	for _, en := range e.enemies {
		if en.Dying || en.X >= e.cfg.BoundaryX {
			continue
		}
		e.gameOver = true
		e.log.Add(e.tick, en.Label(), "state", "breach", fmt.Sprintf("lane %d level %d wave %d", en.Lane, e.waves.Level, e.waves.Wave), en.X)
		return true
	}
	return false
}

// 6. Projectile update.
func (e *Engine) updateProjectiles() {
	kept := e.projectiles[:0]
	for _, p := range e.projectiles {
		if !p.Active {
			continue
		}
		p.X += p.Speed
		if p.X > e.cfg.FieldRight {
			p.Active = false
			continue
		}
		if target := e.projectileTarget(p); target != nil {
			target.HP -= p.Damage
			if target.HP < 0 {
				target.HP = 0
			}
			e.stats.ProjectileHits++
			e.stats.DamageDealt += p.Damage
			p.Active = false
			continue
		}
		kept = append(kept, p)
	}
	clearTail(e.projectiles, len(kept))
	e.projectiles = kept
}

func (e *Engine) projectileTarget(p *Projectile) *Enemy {
	var best *Enemy
	bestDist := math.Inf(1)
	for _, en := range e.enemies {
		if en.Dying || en.Lane != p.Lane {
			continue
		}
		d := math.Abs(en.X - p.X)
		if d < e.cfg.ProjectileHitRange && d < bestDist {
			best = en
			bestDist = d
		}
	}
	return best
}

// 7. Unit pruning.
func (e *Engine) pruneUnits() {
	kept := e.units[:0]
	for _, u := range e.units {
		if u.HP > 0 {
			kept = append(kept, u)
			continue
		}
		id, ok, err := e.grid.At(u.Col, u.Row)
		switch {
		case err != nil:
			e.log.Add(e.tick, u.Label(), "fault", "prune", err.Error(), 0)
		case !ok || id != u.ID:
			e.log.Add(e.tick, u.Label(), "fault", "prune", fmt.Sprintf("cell (%d,%d) holds %d", u.Col, u.Row, id), 0)
		default:
			_ = e.grid.Remove(u.Col, u.Row)
			e.touched[u.Row*e.cfg.Cols+u.Col] = struct{}{}
		}
		e.stats.UnitsLost++
		e.log.Add(e.tick, u.Label(), "unit", "destroyed", fmt.Sprintf("%s at (%d,%d)", u.Kind, u.Col, u.Row), float64(u.Cost))
	}
	clearTail(e.units, len(kept))
	e.units = kept
}

// 8. Collectible update.
func (e *Engine) updateCollectibles() {
	if e.cfg.SkyDropInterval > 0 && e.tick%e.cfg.SkyDropInterval == 0 {
		col := e.rng.Intn(e.cfg.Cols)
		row := e.rng.Intn(e.cfg.Rows)
		e.spawnCollectible(e.cfg.CellCenterX(col), row, e.cfg.SkyDropValue, true)
	}
	kept := e.collectibles[:0]
	for _, c := range e.collectibles {
		if !c.Active {
			continue
		}
		c.Age++
		if c.Age > e.cfg.CollectLifetime {
			c.Active = false
			e.stats.ResourcesExpired += c.Value
			continue
		}
		kept = append(kept, c)
	}
	clearTail(e.collectibles, len(kept))
	e.collectibles = kept
}

func (e *Engine) spawnCollectible(x float64, lane, value int, sky bool) {
	e.collectibles = append(e.collectibles, &Collectible{
		ID:     e.newID(),
		X:      x,
		Lane:   lane,
		Value:  value,
		Active: true,
		Sky:    sky,
	})
}

// 9. Wave scheduling.
func (e *Engine) updateWaves() {
	if e.waves.Tick() {
		e.spawnEnemy(e.waves.PickKind(e.rng), e.waves.PickLane(e.rng), e.cfg.SpawnX)
	}
	if !e.waves.Complete(e.liveEnemies()) {
		return
	}
	prevLevel, prevWave := e.waves.Level, e.waves.Wave
	levelUp := e.waves.Advance()
	e.stats.WavesCleared++
	e.log.Add(e.tick, "--", "wave", "advance",
		fmt.Sprintf("L%d W%d → L%d W%d", prevLevel, prevWave, e.waves.Level, e.waves.Wave), float64(e.waves.Wave))
	if levelUp {
		e.stats.LevelsCleared++
		e.log.Add(e.tick, "--", "wave", "level_up", fmt.Sprintf("level %d", e.waves.Level), float64(e.waves.Level))
	}
}

func (e *Engine) spawnEnemy(kind EnemyKind, lane int, x float64) *Enemy {
	def := Difficulty(e.waves.Level).Scale(e.cfg.Enemies[kind])
	en := &Enemy{
		ID:             e.newID(),
		Kind:           kind,
		Lane:           lane,
		X:              x,
		HP:             def.MaxHP,
		MaxHP:          def.MaxHP,
		Speed:          def.Speed,
		Damage:         def.Damage,
		AttackPeriod:   def.AttackPeriod,
		AttackCooldown: def.AttackPeriod,
	}
	e.enemies = append(e.enemies, en)
	e.stats.EnemiesSpawned++
	e.log.Add(e.tick, en.Label(), "enemy", "spawn", fmt.Sprintf("%s lane %d hp %d", kind, lane, en.HP), float64(lane))
	return en
}

func (e *Engine) liveEnemies() int {
	n := 0
	for _, en := range e.enemies {
		if !en.Dying {
			n++
		}
	}
	return n
}

// Apply executes an agent action between ticks. A rejected action leaves
// state untouched.
func (e *Engine) Apply(a Action) error {
	if e.gameOver {
		return ErrGameOver
	}
	var err error
	switch a.Kind {
	case ActionWait:
		return nil
	case ActionCollect:
		err = e.collect(a.Target)
	case ActionPlace:
		_, err = e.place(a.Unit, a.Col, a.Row, true)
	default:
		err = fmt.Errorf("unknown action kind %d", a.Kind)
	}
	if err != nil {
		e.stats.RejectedActions++
		e.log.AddVerbose(e.tick, "--", "action", "rejected", fmt.Sprintf("%s: %v", a, err), 0)
		return err
	}
	e.log.Add(e.tick, "--", "action", a.Kind.String(), a.String(), float64(e.balance))
	return nil
}

func (e *Engine) collect(id int) error {
	for i, c := range e.collectibles {
		if c.ID != id || !c.Active {
			continue
		}
		e.balance += c.Value
		e.stats.ResourcesCollected += c.Value
		c.Active = false
		e.collectibles = append(e.collectibles[:i], e.collectibles[i+1:]...)
		return nil
	}
	return fmt.Errorf("collectible %d: %w", id, ErrCollectibleGone)
}

func (e *Engine) place(kind UnitKind, col, row int, charge bool) (*Unit, error) {
	def, ok := e.cfg.Units[kind]
	if !ok {
		return nil, fmt.Errorf("unknown unit kind %d", kind)
	}
	if !e.grid.InBounds(col, row) {
		return nil, fmt.Errorf("place %s at (%d,%d): %w", kind, col, row, ErrOutOfBounds)
	}
	cell := row*e.cfg.Cols + col
	if _, done := e.touched[cell]; done {
		return nil, fmt.Errorf("place %s at (%d,%d) changed this tick: %w", kind, col, row, ErrCellOccupied)
	}
	if _, occupied, _ := e.grid.At(col, row); occupied {
		return nil, fmt.Errorf("place %s at (%d,%d): %w", kind, col, row, ErrCellOccupied)
	}
	if charge && e.balance < def.Cost {
		return nil, fmt.Errorf("place %s needs %d, have %d: %w", kind, def.Cost, e.balance, ErrInsufficientResources)
	}
	u := &Unit{
		ID:       e.newID(),
		Kind:     kind,
		Role:     def.Role,
		Col:      col,
		Row:      row,
		X:        e.cfg.CellCenterX(col),
		HP:       def.MaxHP,
		MaxHP:    def.MaxHP,
		Cooldown: def.Cooldown,
		Cost:     def.Cost,
	}
	if err := e.grid.Place(col, row, u.ID); err != nil {
		return nil, err
	}
	if charge {
		e.balance -= def.Cost
		e.stats.ResourcesSpent += def.Cost
		e.stats.UnitsPlaced++
	}
	e.touched[cell] = struct{}{}
	e.units = append(e.units, u)
	return u, nil
}

// clearTail nils out the pointers past n so purged entities can be collected.
func clearTail[T any](s []*T, n int) {
	for i := n; i < len(s); i++ {
		s[i] = nil
	}
}
