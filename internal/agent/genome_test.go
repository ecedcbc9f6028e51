package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenome_Defaults(t *testing.T) {
	g := DefaultGenome()
	assert.Equal(t, 0, g.Version)
	assert.InDelta(t, 1.0, g.Get(WeightSunflowerPriority), 1e-9)
	assert.InDelta(t, 0.8, g.Get(WeightEarlyDefense), 1e-9)
	assert.InDelta(t, 0.9, g.Get(WeightRowCoverage), 1e-9)
	assert.InDelta(t, 0.7, g.Get(WeightWallnutTiming), 1e-9)
	assert.InDelta(t, 1.0, g.Get(WeightPeashooterDensity), 1e-9)
	assert.InDelta(t, 0.5, g.Get(WeightAdaptToWaves), 1e-9)
	assert.InDelta(t, 0.6, g.Get(WeightAggressive), 1e-9)
}

func TestGenome_ChangesProduceNewVersion(t *testing.T) {
	g := DefaultGenome()
	h := g.Scale(WeightAggressive, 1.1)

	assert.InDelta(t, 0.6, g.Get(WeightAggressive), 1e-9, "original untouched")
	assert.InDelta(t, 0.66, h.Get(WeightAggressive), 1e-9)
	assert.Equal(t, g.Version+1, h.Version)

	k := h.Apply(map[WeightID]float64{WeightSunflowerPriority: 0.9, WeightEarlyDefense: 1.15})
	assert.Equal(t, h.Version+1, k.Version, "batch apply is one version")
	assert.InDelta(t, 0.92, k.Get(WeightEarlyDefense), 1e-9)
}

func TestGenome_ClampsPositive(t *testing.T) {
	g := DefaultGenome().With(WeightRowCoverage, -3)
	assert.InDelta(t, MinWeight, g.Get(WeightRowCoverage), 1e-9)

	g = g.Scale(WeightRowCoverage, 0)
	assert.Greater(t, g.Get(WeightRowCoverage), 0.0)

	g = g.With(WeightRowCoverage, 1e9)
	assert.InDelta(t, MaxWeight, g.Get(WeightRowCoverage), 1e-9)
}

func TestGenome_JSON(t *testing.T) {
	g := DefaultGenome().With(WeightAggressive, 0.9)
	b, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"aggressive":0.9`)

	var back Genome
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, g, back)

	var partial Genome
	require.NoError(t, json.Unmarshal([]byte(`{"version":4,"weights":{"aggressive":2}}`), &partial))
	assert.Equal(t, 4, partial.Version)
	assert.InDelta(t, 2.0, partial.Get(WeightAggressive), 1e-9)
	assert.InDelta(t, 1.0, partial.Get(WeightSunflowerPriority), 1e-9)

	assert.Error(t, json.Unmarshal([]byte(`{"weights":{"bogus":1}}`), &partial))
}

func TestGenome_Valid(t *testing.T) {
	require.NoError(t, DefaultGenome().Valid())
	require.NoError(t, DefaultGenome().With(WeightAggressive, -1).Valid(), "setters clamp")

	var zero Genome
	assert.Error(t, zero.Valid())
}
