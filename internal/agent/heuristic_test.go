package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// Scenario: fresh board, full starting balance.
func TestDecide_OpeningPlacesCheapestKind(t *testing.T) {
	s := game.NewTestEngine().Snapshot()
	require.Equal(t, 350, s.Balance)
	require.Equal(t, 1, s.Wave)

	a := Decide(s, DefaultGenome())
	require.Equal(t, game.ActionPlace, a.Kind, "must not wait with 350 banked")
	assert.Equal(t, s.Config.MinUnitCost(), s.Cost(a.Unit))
	assert.Equal(t, game.Place(game.UnitSunflower, 0, 0), a)
}

// Scenario: a live enemy in an undefended lane.
func TestScore_ContestedLaneBeatsEmptyLane(t *testing.T) {
	s := game.NewTestEngine(game.WithEnemy(game.EnemyNormal, 2, 900)).Snapshot()
	g := DefaultGenome()

	for _, kind := range []game.UnitKind{game.UnitPeashooter, game.UnitRepeater} {
		for col := 0; col < s.Cols(); col++ {
			contested := Score(s, g, kind, col, 2)
			quiet := Score(s, g, kind, col, 0)
			assert.Greater(t, contested, quiet, "%s col %d", kind, col)
		}
	}

	a := Decide(s, g)
	require.Equal(t, game.ActionPlace, a.Kind)
	assert.Equal(t, 2, a.Row)
	assert.Equal(t, game.RoleAttacker, s.Config.Units[a.Unit].Role)
}

// Scenario: broke, nothing to pick up.
func TestDecide_WaitsWhenNothingAffordable(t *testing.T) {
	s := game.NewTestEngine(game.WithBalance(25)).Snapshot()
	assert.Equal(t, game.Wait(), Decide(s, DefaultGenome()))

	d := Evaluate(s, DefaultGenome())
	assert.Equal(t, 0, d.Evaluated)
}

func TestDecide_CollectsLowestIDFirst(t *testing.T) {
	e := game.NewTestEngine(
		game.WithCollectible(3, 500, 25),
		game.WithCollectible(1, 200, 25),
	)
	s := e.Snapshot()
	a := Decide(s, DefaultGenome())
	require.Equal(t, game.ActionCollect, a.Kind)
	assert.Equal(t, s.Collectibles[0].ID, a.Target)
}

func TestDecide_IsDeterministic(t *testing.T) {
	e := game.NewTestEngine(
		game.WithSeed(3),
		game.WithUnit(game.UnitPeashooter, 2, 1),
		game.WithUnit(game.UnitSunflower, 0, 0),
		game.WithEnemy(game.EnemyCone, 1, 700),
		game.WithEnemy(game.EnemyNormal, 4, 1100),
	)
	s := e.Snapshot()
	g := DefaultGenome().Scale(WeightAggressive, 1.7)

	first := Evaluate(s, g)
	for i := 0; i < 20; i++ {
		require.Equal(t, first, Evaluate(s, g))
	}
}

func TestDecide_NeverTargetsOccupiedOrUnaffordable(t *testing.T) {
	opts := []game.Option{game.WithBalance(60)}
	for row := 0; row < 5; row++ {
		opts = append(opts, game.WithUnit(game.UnitWallnut, 0, row))
	}
	s := game.NewTestEngine(opts...).Snapshot()
	a := Decide(s, DefaultGenome())
	require.Equal(t, game.ActionPlace, a.Kind)
	assert.False(t, s.Occupied(a.Col, a.Row))
	assert.LessOrEqual(t, s.Cost(a.Unit), 60)
}

func TestDecide_AppliesCleanly(t *testing.T) {
	e := game.NewTestEngine(game.WithSeed(8))
	g := DefaultGenome()
	for i := 0; i < 6000 && !e.GameOver(); i++ {
		e.Step()
		if e.Tick()%30 == 0 {
			require.NoError(t, e.Apply(Decide(e.Snapshot(), g)), "T=%d", e.Tick())
		}
	}
}

func TestScore_SunflowerPriorityWeightMatters(t *testing.T) {
	s := game.NewTestEngine().Snapshot()
	low := Score(s, DefaultGenome().With(WeightSunflowerPriority, 0.5), game.UnitSunflower, 0, 0)
	high := Score(s, DefaultGenome().With(WeightSunflowerPriority, 2.0), game.UnitSunflower, 0, 0)
	assert.Greater(t, high, low)
}

func TestScore_EscalatesWithLevel(t *testing.T) {
	g := DefaultGenome()
	l1 := game.NewTestEngine().Snapshot()
	l3 := game.NewTestEngine(game.WithLevel(3, 1)).Snapshot()
	assert.Greater(t, Score(l3, g, game.UnitWallnut, 6, 2), Score(l1, g, game.UnitWallnut, 6, 2))
}
