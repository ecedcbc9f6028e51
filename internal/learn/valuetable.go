package learn

import (
	"math"
	"math/rand"
)

// ValueConfig holds the value-table learning parameters.
type ValueConfig struct {
	LearningRate float64 // alpha
	Discount     float64 // gamma
	Epsilon      float64 // starting exploration rate
	EpsilonMin   float64
	EpsilonDecay float64 // multiplied in after every decision
	InitSpread   float64 // unseen entries start uniform in [-InitSpread, InitSpread]

	RewardFormula  string
	ProgressWeight float64
}

// DefaultValueConfig returns the stock learning parameters.
func DefaultValueConfig() ValueConfig {
	return ValueConfig{
		LearningRate:   0.1,
		Discount:       0.95,
		Epsilon:        0.3,
		EpsilonMin:     0.05,
		EpsilonDecay:   0.995,
		InitSpread:     0.1,
		ProgressWeight: DefaultProgressWeight,
	}
}

// ValueTable maps discretised states to per-macro value estimates. Rows are
// created lazily on first visit.
type ValueTable struct {
	Q map[StateKey]map[Macro]float64

	cfg ValueConfig
	rng *rand.Rand
}

// NewValueTable creates an empty table.
func NewValueTable(cfg ValueConfig, rng *rand.Rand) *ValueTable {
	return &ValueTable{Q: map[StateKey]map[Macro]float64{}, cfg: cfg, rng: rng}
}

// Len is the number of visited states.
func (vt *ValueTable) Len() int { return len(vt.Q) }

// row returns the estimates for key, initialising unseen entries.
func (vt *ValueTable) row(key StateKey) map[Macro]float64 {
	r, ok := vt.Q[key]
	if !ok {
		r = make(map[Macro]float64, macroCount)
		vt.Q[key] = r
	}
	for _, m := range AllMacros() {
		if _, seen := r[m]; !seen {
			r[m] = (vt.rng.Float64()*2 - 1) * vt.cfg.InitSpread
		}
	}
	return r
}

// Value returns the estimate for (key, m).
func (vt *ValueTable) Value(key StateKey, m Macro) float64 {
	return vt.row(key)[m]
}

// MaxValue returns the best estimate over every macro in key.
func (vt *ValueTable) MaxValue(key StateKey) float64 {
	best := math.Inf(-1)
	for _, v := range vt.row(key) {
		best = math.Max(best, v)
	}
	return best
}

// Best returns the highest-valued macro among legal. Ties go to the macro
// listed first.
func (vt *ValueTable) Best(key StateKey, legal []Macro) Macro {
	r := vt.row(key)
	best := MacroWait
	bestVal := math.Inf(-1)
	for _, m := range legal {
		if v := r[m]; v > bestVal {
			best = m
			bestVal = v
		}
	}
	return best
}

// Update moves Q(key, m) toward reward + gamma * max Q(next).
func (vt *ValueTable) Update(key StateKey, m Macro, reward float64, next StateKey) float64 {
	target := reward + vt.cfg.Discount*vt.MaxValue(next)
	r := vt.row(key)
	r[m] += vt.cfg.LearningRate * (target - r[m])
	return r[m]
}
