package episode

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Lawn-Sense/internal/game"
	"github.com/Garsondee/Lawn-Sense/internal/learn"
)

// recordingPolicy waits on every decision and remembers the lifecycle calls.
type recordingPolicy struct {
	begun     []string
	decisions int
	ended     []game.Outcome
	finalOver []bool
}

func (p *recordingPolicy) Name() string { return "recording" }

func (p *recordingPolicy) BeginEpisode(id string) { p.begun = append(p.begun, id) }

func (p *recordingPolicy) Decide(*game.Snapshot) game.Action {
	p.decisions++
	return game.Wait()
}

func (p *recordingPolicy) EndEpisode(final *game.Snapshot, out game.Outcome) {
	p.ended = append(p.ended, out)
	p.finalOver = append(p.finalOver, final.GameOver)
}

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("ep-%d", n)
	}
}

func newController(t *testing.T, e *game.Engine, p learn.Policy, cfg Config) *Controller {
	t.Helper()
	c, err := New(e, p, cfg, WithLogger(quiet()), WithIDSource(sequentialIDs()))
	require.NoError(t, err)
	return c
}

func TestRunEpisode_BreachEndsEpisodeAndReportsOutcome(t *testing.T) {
	p := &recordingPolicy{}
	e := game.NewTestEngine(game.WithEnemy(game.EnemyNormal, 2, 100.2))
	c := newController(t, e, p, DefaultConfig())

	r, err := c.RunEpisode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ep-1", r.ID)
	assert.Equal(t, 1, r.Outcome.Ticks)
	assert.False(t, r.Capped)
	assert.Equal(t, []string{"ep-1"}, p.begun)
	require.Len(t, p.ended, 1)
	assert.Equal(t, 1, p.ended[0].Level)
	assert.Equal(t, 1, p.ended[0].Wave)
	assert.Equal(t, []bool{true}, p.finalOver)
}

func TestRunEpisode_StepCapAborts(t *testing.T) {
	p := &recordingPolicy{}
	c := newController(t, game.NewTestEngine(), p, Config{DecisionInterval: 30, MaxTicks: 300})

	r, err := c.RunEpisode(context.Background())
	require.NoError(t, err)
	assert.True(t, r.Capped)
	assert.Equal(t, 300, r.Outcome.Ticks)
	// Decisions happen on ticks 30..270; tick 300 ends the episode first.
	assert.Equal(t, 9, r.Decisions)
	assert.Equal(t, 9, p.decisions)
	assert.Len(t, p.ended, 1)
}

func TestRunEpisode_ResetsBetweenEpisodes(t *testing.T) {
	p := &recordingPolicy{}
	e := game.NewTestEngine(game.WithEnemy(game.EnemyNormal, 2, 100.2))
	c := newController(t, e, p, Config{DecisionInterval: 30, MaxTicks: 120})

	results, err := c.Run(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 1, results[0].Outcome.Ticks, "first episode plays the seeded breach")
	for _, r := range results[1:] {
		assert.True(t, r.Capped)
		assert.Equal(t, 120, r.Outcome.Ticks)
	}
	assert.Equal(t, []string{"ep-1", "ep-2", "ep-3"}, p.begun)
	assert.Equal(t, []int{1, 2, 3}, []int{results[0].Index, results[1].Index, results[2].Index})
	assert.Len(t, c.Results(), 3)
}

func TestRunEpisode_Cancelled(t *testing.T) {
	p := &recordingPolicy{}
	c := newController(t, game.NewTestEngine(), p, DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := c.Run(ctx, 5)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
	assert.Empty(t, p.ended, "abandoned episodes are not reported to the policy")
}

func TestTick_AbandonMidEpisode(t *testing.T) {
	p := &recordingPolicy{}
	e := game.NewTestEngine()
	c := newController(t, e, p, DefaultConfig())
	for i := 0; i < 50; i++ {
		_, done := c.Tick()
		require.False(t, done)
	}
	assert.Equal(t, "ep-1", c.EpisodeID())
	c.Abandon()
	assert.Equal(t, "", c.EpisodeID())
	assert.Equal(t, 0, e.Tick())
	assert.Empty(t, p.ended)
}

func TestNew_RejectsBadConfig(t *testing.T) {
	e := game.NewTestEngine()
	_, err := New(e, &recordingPolicy{}, Config{DecisionInterval: 0})
	assert.Error(t, err)
	_, err = New(e, &recordingPolicy{}, Config{DecisionInterval: 30, MaxTicks: -1})
	assert.Error(t, err)
	_, err = New(nil, &recordingPolicy{}, DefaultConfig())
	assert.Error(t, err)
}

func TestRun_EvolutionPolicyLearnsAcrossEpisodes(t *testing.T) {
	rng := rand.New(rand.NewSource(5)) // #nosec G404 -- test
	evo := learn.NewEvolution(learn.DefaultEvolutionConfig(), rng, quiet())
	p := learn.NewEvolutionPolicy(evo)
	e := game.NewTestEngine(game.WithSeed(5))
	c := newController(t, e, p, Config{DecisionInterval: 30, MaxTicks: 3000})

	results, err := c.Run(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, 5, evo.Episodes)
	assert.Equal(t, 1, evo.Generation)
	assert.Equal(t, 6, evo.Genome.Version, "one band update per episode plus one mutation")
	for _, r := range results {
		assert.Zero(t, r.Rejected, "heuristic actions always apply")
	}
}

func TestRun_ValuePolicyAppliesLegalActions(t *testing.T) {
	rng := rand.New(rand.NewSource(9)) // #nosec G404 -- test
	p, err := learn.NewValuePolicy(learn.DefaultValueConfig(), rng, quiet())
	require.NoError(t, err)
	c := newController(t, game.NewTestEngine(game.WithSeed(9)), p, Config{DecisionInterval: 30, MaxTicks: 3000})

	results, err := c.Run(context.Background(), 3)
	require.NoError(t, err)
	for _, r := range results {
		assert.Zero(t, r.Rejected)
	}
	assert.Equal(t, 3, p.Episodes)
}
