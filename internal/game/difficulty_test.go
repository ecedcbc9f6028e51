package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficulty_LevelOneIsIdentity(t *testing.T) {
	m := Difficulty(1)
	assert.Equal(t, Multipliers{HP: 1, Speed: 1, Damage: 1, SpawnInterval: 1}, m)
	assert.Equal(t, m, Difficulty(0), "levels below 1 clamp to 1")
}

func TestDifficulty_Scaling(t *testing.T) {
	m := Difficulty(3)
	assert.InDelta(t, 1.4, m.HP, 1e-9)
	assert.InDelta(t, 1.2, m.Speed, 1e-9)
	assert.InDelta(t, 1.3, m.Damage, 1e-9)
	assert.InDelta(t, 0.84, m.SpawnInterval, 1e-9)
}

func TestDifficulty_SpawnIntervalFloor(t *testing.T) {
	assert.InDelta(t, 0.5, Difficulty(8).SpawnInterval, 1e-9)
	assert.InDelta(t, 0.5, Difficulty(50).SpawnInterval, 1e-9)
}

func TestDifficulty_IsPure(t *testing.T) {
	for level := 1; level <= 10; level++ {
		assert.Equal(t, Difficulty(level), Difficulty(level))
	}
}

func TestMultipliers_Scale(t *testing.T) {
	base := DefaultEnemyDefs()[EnemyNormal]
	scaled := Difficulty(3).Scale(base)
	assert.Equal(t, 168, scaled.MaxHP)
	assert.InDelta(t, 0.42, scaled.Speed, 1e-9)
	assert.Equal(t, 4, scaled.Damage)
	assert.Equal(t, base.AttackPeriod, scaled.AttackPeriod)
}
