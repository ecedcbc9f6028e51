package agent

import (
	"fmt"
	"math"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// Decision is the outcome of one scoring pass.
type Decision struct {
	Action game.Action
	Score  float64
	// Evaluated is the number of affordable (kind, cell) pairs scored.
	Evaluated int
}

func (d Decision) String() string {
	if d.Action.Kind != game.ActionPlace {
		return d.Action.String()
	}
	return fmt.Sprintf("%s score=%.1f of %d", d.Action, d.Score, d.Evaluated)
}

// Decide returns the next action for snapshot s under genome g. It is a pure
// function of its inputs.
func Decide(s *game.Snapshot, g Genome) game.Action {
	return Evaluate(s, g).Action
}

// Evaluate scores every empty cell for every affordable kind and returns the
// best placement. Pending pickups always win; with nothing affordable the
// result is Wait.
//
// Scan order is col ascending, then row, then kind in enumeration order. Only
// a strictly higher score replaces the current best, so the first candidate
// scanned wins ties.
func Evaluate(s *game.Snapshot, g Genome) Decision {
	if c, ok := s.FirstCollectible(); ok {
		return Decision{Action: game.Collect(c.ID)}
	}

	best := Decision{Action: game.Wait(), Score: math.Inf(-1)}
	check := func(kind game.UnitKind, col, row int, u float64) {
		best.Evaluated++
		if u > best.Score {
			best.Action = game.Place(kind, col, row)
			best.Score = u
		}
	}

	kinds := game.AllUnitKinds()
	for col := 0; col < s.Cols(); col++ {
		for row := 0; row < s.Rows(); row++ {
			if s.Occupied(col, row) {
				continue
			}
			for _, kind := range kinds {
				if !s.Affordable(kind) {
					continue
				}
				check(kind, col, row, Score(s, g, kind, col, row))
			}
		}
	}
	if best.Evaluated == 0 {
		best.Score = 0
	}
	return best
}

// Score rates placing kind at (col,row). Higher is better; the value is only
// meaningful relative to other candidates on the same snapshot.
func Score(s *game.Snapshot, g Genome, kind game.UnitKind, col, row int) float64 {
	ld := 0.2 * float64(s.Level-1)
	enemies := s.EnemiesInLane(row)
	var score float64

	switch kind {
	// --- Sunflower: economy first, back columns, diminishing with count.
	case game.UnitSunflower:
		score = 50*g.Get(WeightSunflowerPriority) +
			float64(3-col)*10 -
			float64(s.CountKind(game.UnitSunflower))*5 +
			float64(s.Level)*3

	// --- Peashooter: lane coverage near the middle, urgent in contested lanes.
	case game.UnitPeashooter:
		score = 60*g.Get(WeightRowCoverage) + float64(5-absInt(col-4))*5
		if enemies > 0 {
			score *= 1.5 + ld
			score += 10 * g.Get(WeightAggressive)
		}
		score -= float64(s.UnitsInLane(row, game.UnitPeashooter)) * 20 / g.Get(WeightPeashooterDensity)
		if s.Wave <= 2 && col <= 3 {
			score *= g.Get(WeightEarlyDefense) * (1 + 0.5*ld)
		}

	// --- Wallnut: shields armed lanes, pushed toward the front.
	case game.UnitWallnut:
		score = 40 * g.Get(WeightWallnutTiming)
		if s.RoleInLane(row, game.RoleAttacker) > 0 {
			score *= 2
		}
		score += float64(col) * 3
		score -= float64(s.UnitsInLane(row, game.UnitWallnut)) * 25
		score *= 1 + 0.8*ld

	// --- Repeater: only worth its price where the lane is under pressure.
	case game.UnitRepeater:
		score = 60*g.Get(WeightRowCoverage) + float64(5-absInt(col-4))*5 - 15
		if enemies > 0 {
			score *= 2.0 + ld
			score += 10 * g.Get(WeightAggressive)
		}
		score -= float64(s.RoleInLane(row, game.RoleAttacker)) * 25 / g.Get(WeightPeashooterDensity)
		if s.Wave <= 2 && col <= 3 {
			score *= g.Get(WeightEarlyDefense) * (1 + 0.5*ld)
		}

	default:
		return math.Inf(-1)
	}

	if kind != game.UnitSunflower {
		if s.Level >= 3 {
			score *= 1.4
		}
		if s.Wave >= 4 {
			score *= 1 + 0.6*g.Get(WeightAdaptToWaves)
		}
	}
	return score
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
