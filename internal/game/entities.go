package game

import "fmt"

// Unit is a placed defender.
type Unit struct {
	ID       int
	Kind     UnitKind
	Role     UnitRole
	Col      int
	Row      int
	X        float64
	HP       int
	MaxHP    int
	Cooldown int // ticks until the next effect
	Cost     int
}

// Label is the short id used in logs, e.g. "U7".
func (u *Unit) Label() string { return fmt.Sprintf("U%d", u.ID) }

// Enemy advances right to left along a single lane.
type Enemy struct {
	ID             int
	Kind           EnemyKind
	Lane           int
	X              float64
	HP             int
	MaxHP          int
	Speed          float64
	Damage         int
	AttackPeriod   int
	AttackCooldown int
	Engaged        bool

	// Dying enemies never move or bite again.
	Dying      bool
	DeathTimer int
}

func (e *Enemy) Label() string { return fmt.Sprintf("E%d", e.ID) }

// Active reports whether the enemy still participates in combat.
func (e *Enemy) Active() bool { return !e.Dying }

// Projectile travels left to right along a lane.
type Projectile struct {
	ID     int
	X      float64
	Lane   int
	Speed  float64
	Damage int
	Active bool
}

// Collectible is a resource pickup waiting on the lawn.
type Collectible struct {
	ID     int
	X      float64
	Lane   int
	Value  int
	Age    int
	Active bool
	Sky    bool // natural drop rather than generator output
}
