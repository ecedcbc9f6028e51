package game

import (
	"encoding/json"
	"fmt"
	"os"
)

// UnitKind identifies a placeable defender. The declaration order is the
// tie-break order used by the decision engine.
type UnitKind int

const (
	UnitSunflower UnitKind = iota
	UnitPeashooter
	UnitWallnut
	UnitRepeater
	unitKindCount
)

// AllUnitKinds returns every unit kind in enumeration order.
func AllUnitKinds() []UnitKind {
	return []UnitKind{UnitSunflower, UnitPeashooter, UnitWallnut, UnitRepeater}
}

func (k UnitKind) String() string {
	switch k {
	case UnitSunflower:
		return "sunflower"
	case UnitPeashooter:
		return "peashooter"
	case UnitWallnut:
		return "wallnut"
	case UnitRepeater:
		return "repeater"
	default:
		return "unknown"
	}
}

// ParseUnitKind is the inverse of UnitKind.String.
func ParseUnitKind(s string) (UnitKind, error) {
	for _, k := range AllUnitKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown unit kind %q", s)
}

func (k UnitKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *UnitKind) UnmarshalText(b []byte) error {
	v, err := ParseUnitKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// UnitRole is the behaviour class of a unit kind.
type UnitRole int

const (
	RoleGenerator UnitRole = iota
	RoleAttacker
	RoleWall
)

func (r UnitRole) String() string {
	switch r {
	case RoleGenerator:
		return "generator"
	case RoleAttacker:
		return "attacker"
	case RoleWall:
		return "wall"
	default:
		return "unknown"
	}
}

// UnitDef is the static data for one unit kind.
type UnitDef struct {
	Kind     UnitKind `json:"kind"`
	Role     UnitRole `json:"-"`
	Cost     int      `json:"cost"`
	MaxHP    int      `json:"hp"`
	Cooldown int      `json:"cooldown"` // ticks between effects; 0 for walls
	Shots    int      `json:"shots"`    // projectiles per volley (attackers)
}

// EnemyKind identifies an enemy variant.
type EnemyKind int

const (
	EnemyNormal EnemyKind = iota
	EnemyCone
	EnemyFootball
)

// AllEnemyKinds returns every enemy kind in enumeration order.
func AllEnemyKinds() []EnemyKind {
	return []EnemyKind{EnemyNormal, EnemyCone, EnemyFootball}
}

func (k EnemyKind) String() string {
	switch k {
	case EnemyNormal:
		return "normal"
	case EnemyCone:
		return "cone"
	case EnemyFootball:
		return "football"
	default:
		return "unknown"
	}
}

// ParseEnemyKind is the inverse of EnemyKind.String.
func ParseEnemyKind(s string) (EnemyKind, error) {
	for _, k := range AllEnemyKinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown enemy kind %q", s)
}

func (k EnemyKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *EnemyKind) UnmarshalText(b []byte) error {
	v, err := ParseEnemyKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// EnemyDef is the base (level 1) data for one enemy kind.
type EnemyDef struct {
	Kind         EnemyKind `json:"kind"`
	MaxHP        int       `json:"hp"`
	Speed        float64   `json:"speed"` // px per tick
	Damage       int       `json:"damage"`
	AttackPeriod int       `json:"attack_period"` // ticks between bites
}

// DefaultUnitDefs returns the stock unit table.
func DefaultUnitDefs() map[UnitKind]UnitDef {
	return map[UnitKind]UnitDef{
		UnitSunflower:  {Kind: UnitSunflower, Role: RoleGenerator, Cost: 50, MaxHP: 80, Cooldown: 600},
		UnitPeashooter: {Kind: UnitPeashooter, Role: RoleAttacker, Cost: 100, MaxHP: 100, Cooldown: 90, Shots: 1},
		UnitWallnut:    {Kind: UnitWallnut, Role: RoleWall, Cost: 50, MaxHP: 400},
		UnitRepeater:   {Kind: UnitRepeater, Role: RoleAttacker, Cost: 200, MaxHP: 150, Cooldown: 90, Shots: 2},
	}
}

// DefaultEnemyDefs returns the stock enemy table.
func DefaultEnemyDefs() map[EnemyKind]EnemyDef {
	return map[EnemyKind]EnemyDef{
		EnemyNormal:   {Kind: EnemyNormal, MaxHP: 120, Speed: 0.35, Damage: 3, AttackPeriod: 60},
		EnemyCone:     {Kind: EnemyCone, MaxHP: 280, Speed: 0.35, Damage: 3, AttackPeriod: 60},
		EnemyFootball: {Kind: EnemyFootball, MaxHP: 600, Speed: 0.6, Damage: 3, AttackPeriod: 60},
	}
}

func defaultRole(k UnitKind) UnitRole {
	return DefaultUnitDefs()[k].Role
}

// Definitions is the on-disk override file for unit and enemy stats.
type Definitions struct {
	Units   []UnitDef  `json:"units"`
	Enemies []EnemyDef `json:"enemies"`
}

// LoadDefinitions reads a JSON definitions file.
func LoadDefinitions(path string) (Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definitions{}, fmt.Errorf("failed to read definitions file: %w", err)
	}
	var defs Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return Definitions{}, fmt.Errorf("failed to unmarshal definitions: %w", err)
	}
	return defs, nil
}

// Apply returns a copy of cfg with the listed kinds replaced. Kinds absent
// from the file keep their current stats.
func (d Definitions) Apply(cfg Config) Config {
	units := make(map[UnitKind]UnitDef, len(cfg.Units))
	for k, v := range cfg.Units {
		units[k] = v
	}
	for _, u := range d.Units {
		u.Role = defaultRole(u.Kind)
		if u.Role == RoleAttacker && u.Shots == 0 {
			u.Shots = 1
		}
		units[u.Kind] = u
	}
	enemies := make(map[EnemyKind]EnemyDef, len(cfg.Enemies))
	for k, v := range cfg.Enemies {
		enemies[k] = v
	}
	for _, e := range d.Enemies {
		enemies[e.Kind] = e
	}
	cfg.Units = units
	cfg.Enemies = enemies
	return cfg
}
