package game

import (
	"errors"
	"fmt"
)

// TicksPerSecond is the fixed logical rate of the simulation.
const TicksPerSecond = 60

const (
	defaultCols            = 9
	defaultRows            = 5
	defaultCellWidth       = 80.0
	defaultGridOriginX     = 120.0
	defaultFieldRight      = 1200.0
	defaultSpawnX          = 1250.0
	defaultBoundaryX       = 100.0
	defaultMeleeRange      = 30.0
	defaultStartBalance    = 350
	defaultWavesPerLevel   = 5
	defaultDeathDuration   = 90  // 1.5s
	defaultCollectLifetime = 720 // 12s
	defaultSkyDropInterval = 600 // 10s
	defaultSkyDropValue    = 25
	defaultGeneratorValue  = 25
	defaultProjectileSpeed = 8.0
	defaultProjectileDmg   = 25
	defaultHitRange        = 25.0
)

// Config holds every tunable of a simulation run. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	Cols        int
	Rows        int
	CellWidth   float64
	GridOriginX float64

	// FieldRight is the rightmost x an attacker will target and the x past
	// which projectiles deactivate.
	FieldRight float64
	SpawnX     float64
	// BoundaryX is the defense line; a non-dying enemy left of it ends the episode.
	BoundaryX  float64
	MeleeRange float64

	StartBalance  int
	WavesPerLevel int

	DeathDuration      int
	CollectLifetime    int
	SkyDropInterval    int // 0 disables natural drops
	SkyDropValue       int
	GeneratorValue     int
	ProjectileSpeed    float64
	ProjectileDamage   int
	ProjectileHitRange float64

	Units   map[UnitKind]UnitDef
	Enemies map[EnemyKind]EnemyDef
}

// DefaultConfig returns the standard 9x5 lawn.
func DefaultConfig() Config {
	return Config{
		Cols:               defaultCols,
		Rows:               defaultRows,
		CellWidth:          defaultCellWidth,
		GridOriginX:        defaultGridOriginX,
		FieldRight:         defaultFieldRight,
		SpawnX:             defaultSpawnX,
		BoundaryX:          defaultBoundaryX,
		MeleeRange:         defaultMeleeRange,
		StartBalance:       defaultStartBalance,
		WavesPerLevel:      defaultWavesPerLevel,
		DeathDuration:      defaultDeathDuration,
		CollectLifetime:    defaultCollectLifetime,
		SkyDropInterval:    defaultSkyDropInterval,
		SkyDropValue:       defaultSkyDropValue,
		GeneratorValue:     defaultGeneratorValue,
		ProjectileSpeed:    defaultProjectileSpeed,
		ProjectileDamage:   defaultProjectileDmg,
		ProjectileHitRange: defaultHitRange,
		Units:              DefaultUnitDefs(),
		Enemies:            DefaultEnemyDefs(),
	}
}

// Validate reports every structural problem in the config.
func (c Config) Validate() error {
	var errs []error
	if c.Cols <= 0 || c.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid must be at least 1x1, got %dx%d", c.Cols, c.Rows))
	}
	if c.CellWidth <= 0 {
		errs = append(errs, fmt.Errorf("cell width must be positive, got %v", c.CellWidth))
	}
	if c.WavesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("waves per level must be positive, got %d", c.WavesPerLevel))
	}
	if c.DeathDuration < 0 || c.CollectLifetime <= 0 {
		errs = append(errs, errors.New("death duration and collectible lifetime must be non-negative"))
	}
	if c.ProjectileSpeed <= 0 {
		errs = append(errs, fmt.Errorf("projectile speed must be positive, got %v", c.ProjectileSpeed))
	}
	for _, k := range AllUnitKinds() {
		d, ok := c.Units[k]
		if !ok {
			errs = append(errs, fmt.Errorf("missing definition for unit %s", k))
			continue
		}
		if d.Cost <= 0 || d.MaxHP <= 0 {
			errs = append(errs, fmt.Errorf("unit %s needs positive cost and hp", k))
		}
	}
	for _, k := range AllEnemyKinds() {
		d, ok := c.Enemies[k]
		if !ok {
			errs = append(errs, fmt.Errorf("missing definition for enemy %s", k))
			continue
		}
		if d.MaxHP <= 0 || d.Speed <= 0 {
			errs = append(errs, fmt.Errorf("enemy %s needs positive hp and speed", k))
		}
	}
	return errors.Join(errs...)
}

// CellCenterX returns the x coordinate of a column's centre.
func (c Config) CellCenterX(col int) float64 {
	return c.GridOriginX + float64(col)*c.CellWidth + c.CellWidth/2
}

// MinUnitCost is the cost of the cheapest placeable kind.
func (c Config) MinUnitCost() int {
	lowest := 0
	for _, k := range AllUnitKinds() {
		cost := c.Units[k].Cost
		if lowest == 0 || cost < lowest {
			lowest = cost
		}
	}
	return lowest
}
