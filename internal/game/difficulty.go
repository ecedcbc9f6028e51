package game

import "math"

// Multipliers scale base enemy stats and spawn pacing for a level.
type Multipliers struct {
	HP            float64
	Speed         float64
	Damage        float64
	SpawnInterval float64
}

// Difficulty returns the multipliers for level (1-based). Levels below 1
// are treated as 1.
func Difficulty(level int) Multipliers {
	if level < 1 {
		level = 1
	}
	l := float64(level - 1)
	return Multipliers{
		HP:            1 + 0.2*l,
		Speed:         1 + 0.1*l,
		Damage:        1 + 0.15*l,
		SpawnInterval: math.Max(0.5, 1-0.08*l),
	}
}

// Scale applies the multipliers to a base enemy definition.
func (m Multipliers) Scale(def EnemyDef) EnemyDef {
	def.MaxHP = int(math.Round(float64(def.MaxHP) * m.HP))
	if def.MaxHP < 1 {
		def.MaxHP = 1
	}
	def.Speed *= m.Speed
	def.Damage = int(math.Round(float64(def.Damage) * m.Damage))
	if def.Damage < 1 {
		def.Damage = 1
	}
	return def
}
