package learn

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Lawn-Sense/internal/agent"
	"github.com/Garsondee/Lawn-Sense/internal/game"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvolution(interval int, seed int64) *Evolution {
	cfg := DefaultEvolutionConfig()
	cfg.Interval = interval
	return NewEvolution(cfg, rand.New(rand.NewSource(seed)), quietLogger()) // #nosec G404 -- test
}

func outcomeAt(progress int) game.Outcome {
	level := (progress-1)/5 + 1
	wave := (progress-1)%5 + 1
	return game.Outcome{Level: level, Wave: wave, Progress: progress}
}

func TestEvolution_AggressiveTrendsUpWithRisingScores(t *testing.T) {
	ev := newTestEvolution(0, 1)
	start := ev.Genome.Get(agent.WeightAggressive)
	prev := start
	for p := 1; p <= 16; p++ {
		ev.Record("ep", outcomeAt(p))
		cur := ev.Genome.Get(agent.WeightAggressive)
		require.GreaterOrEqual(t, cur, prev, "aggressive fell after progress %d", p)
		prev = cur
	}
	assert.Greater(t, prev, start)
	assert.Equal(t, 16, ev.BestScore)
	assert.Equal(t, 4, ev.BestLevel)
}

func TestEvolution_SingleUpdateNeverZeroesAWeight(t *testing.T) {
	ev := newTestEvolution(1, 7)
	for i := 0; i < 500; i++ {
		before := ev.Genome
		ev.Record("ep", outcomeAt(1+i%20))
		for _, id := range agent.AllWeights() {
			v := ev.Genome.Get(id)
			require.Greater(t, v, 0.0, "%s after episode %d", id, i)
			require.GreaterOrEqual(t, v, before.Get(id)*0.9*0.9-1e-9, "%s dropped too far in one update", id)
		}
	}
}

func TestEvolution_VeryEarlyBandRules(t *testing.T) {
	ev := newTestEvolution(0, 1)
	ev.Record("ep", outcomeAt(1))
	g := ev.Genome
	assert.InDelta(t, 0.9, g.Get(agent.WeightSunflowerPriority), 1e-9)
	assert.InDelta(t, 0.92, g.Get(agent.WeightEarlyDefense), 1e-9)
	assert.InDelta(t, 0.99, g.Get(agent.WeightRowCoverage), 1e-9)
	assert.InDelta(t, 0.6, g.Get(agent.WeightAggressive), 1e-9)
	assert.Equal(t, 1, g.Version)
}

func TestEvolution_MutatesOncePerGeneration(t *testing.T) {
	ev := newTestEvolution(5, 3)
	for i := 0; i < 4; i++ {
		ev.Record("ep", outcomeAt(4))
	}
	assert.Equal(t, 0, ev.Generation)
	ev.Record("ep", outcomeAt(4))
	assert.Equal(t, 1, ev.Generation)
	for i := 0; i < 10; i++ {
		ev.Record("ep", outcomeAt(4))
	}
	assert.Equal(t, 3, ev.Generation)
}

func TestEvolution_HistoryWindow(t *testing.T) {
	ev := newTestEvolution(0, 1)
	for i := 0; i < 60; i++ {
		ev.Record("ep", outcomeAt(2))
	}
	assert.Len(t, ev.History, 50)
	assert.Equal(t, 60, ev.Episodes)
	assert.InDelta(t, 2.0, ev.Average(), 1e-9)
}
