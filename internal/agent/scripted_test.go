package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

func TestScripted_OpensWithSunflowers(t *testing.T) {
	s := game.NewTestEngine().Snapshot()
	a := Scripted(s)
	require.Equal(t, game.ActionPlace, a.Kind)
	assert.Equal(t, game.UnitSunflower, a.Unit)
	assert.Equal(t, 0, a.Col)
}

func TestScripted_DefendsContestedLaneFirst(t *testing.T) {
	s := game.NewTestEngine(
		game.WithUnit(game.UnitSunflower, 0, 0),
		game.WithUnit(game.UnitSunflower, 0, 1),
		game.WithEnemy(game.EnemyNormal, 3, 1000),
	).Snapshot()
	a := Scripted(s)
	require.Equal(t, game.ActionPlace, a.Kind)
	assert.Equal(t, game.UnitPeashooter, a.Unit)
	assert.Equal(t, 3, a.Row)
}

func TestScripted_WaitsWhenBroke(t *testing.T) {
	s := game.NewTestEngine(game.WithBalance(0)).Snapshot()
	assert.Equal(t, game.Wait(), Scripted(s))
}
