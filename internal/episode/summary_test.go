package episode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

func result(i, level, wave int, capped bool) Result {
	return Result{
		ID:    "0123456789abcdef",
		Index: i,
		Outcome: game.Outcome{
			Level:    level,
			Wave:     wave,
			Progress: game.ProgressOf(level, wave, 5),
			Ticks:    1000 * i,
			Stats:    game.Stats{UnitsPlaced: 2, ProjectilesFired: 4, ProjectileHits: 3},
		},
		Rejected: 1,
		Capped:   capped,
	}
}

func TestSummarise(t *testing.T) {
	rs := []Result{
		result(1, 1, 1, false),
		result(2, 1, 2, false),
		result(3, 1, 4, false),
		result(4, 2, 3, true),
	}
	a := Summarise(rs, 2)
	assert.Equal(t, 4, a.Episodes)
	assert.Equal(t, 8, a.BestProgress)
	assert.Equal(t, 2, a.BestLevel)
	assert.InDelta(t, 3.75, a.AvgProgress, 1e-9)
	assert.InDelta(t, 2500, a.AvgTicks, 1e-9)
	assert.Equal(t, 1, a.CappedRuns)
	assert.Equal(t, 4, a.Rejected)
	assert.Equal(t, 8, a.Stats.UnitsPlaced)
	assert.InDelta(t, 1.5, a.FirstProgress, 1e-9)
	assert.InDelta(t, 6, a.LastProgress, 1e-9)
	assert.Equal(t, 2, a.Bands[game.BandVeryEarly])
	assert.Equal(t, 1, a.Bands[game.BandEarly])
	assert.Equal(t, 1, a.Bands[game.BandModerate])

	out := a.Format()
	assert.Contains(t, out, "episodes=4 best_progress=8 best_level=2 capped=1")
	assert.Contains(t, out, "trend=+4.50")
	assert.Contains(t, out, "accuracy=75%")
	assert.Contains(t, out, "bands: very_early=2 early=1 moderate=1")
}

func TestSummarise_Empty(t *testing.T) {
	a := Summarise(nil, 10)
	assert.Equal(t, 0, a.Episodes)
	assert.Contains(t, a.Format(), "bands: none")
}

func TestFormatResult(t *testing.T) {
	line := FormatResult(result(4, 2, 3, true))
	assert.Contains(t, line, "#4")
	assert.Contains(t, line, "01234567 L2 W3")
	assert.Contains(t, line, "band=moderate")
	assert.Contains(t, line, " capped")
}
