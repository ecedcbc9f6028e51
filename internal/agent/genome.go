package agent

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// WeightID names one tunable weight of a Genome.
type WeightID int

const (
	WeightSunflowerPriority WeightID = iota
	WeightEarlyDefense
	WeightRowCoverage
	WeightWallnutTiming
	WeightPeashooterDensity
	WeightAdaptToWaves
	WeightAggressive
	weightCount
)

// Weight bounds. Every adapter clamps into this range so no weight can be
// driven to zero or negative.
const (
	MinWeight = 0.05
	MaxWeight = 20.0
)

// AllWeights returns every weight id in declaration order.
func AllWeights() []WeightID {
	ids := make([]WeightID, weightCount)
	for i := range ids {
		ids[i] = WeightID(i)
	}
	return ids
}

func (w WeightID) String() string {
	switch w {
	case WeightSunflowerPriority:
		return "sunflower_priority"
	case WeightEarlyDefense:
		return "early_defense"
	case WeightRowCoverage:
		return "row_coverage"
	case WeightWallnutTiming:
		return "wallnut_timing"
	case WeightPeashooterDensity:
		return "peashooter_density"
	case WeightAdaptToWaves:
		return "adapt_to_waves"
	case WeightAggressive:
		return "aggressive"
	default:
		return "unknown"
	}
}

// ParseWeightID is the inverse of WeightID.String.
func ParseWeightID(s string) (WeightID, error) {
	for _, id := range AllWeights() {
		if id.String() == s {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown weight %q", s)
}

// Genome is the heuristic agent's weight vector. It is a value type:
// every change returns a new Genome with a bumped Version.
type Genome struct {
	Version int
	weights [weightCount]float64
}

// DefaultGenome returns the stock weights at version 0.
func DefaultGenome() Genome {
	var g Genome
	g.weights[WeightSunflowerPriority] = 1.0
	g.weights[WeightEarlyDefense] = 0.8
	g.weights[WeightRowCoverage] = 0.9
	g.weights[WeightWallnutTiming] = 0.7
	g.weights[WeightPeashooterDensity] = 1.0
	g.weights[WeightAdaptToWaves] = 0.5
	g.weights[WeightAggressive] = 0.6
	return g
}

// Get returns the value of weight id.
func (g Genome) Get(id WeightID) float64 {
	if id < 0 || id >= weightCount {
		return 0
	}
	return g.weights[id]
}

// With returns a copy with weight id set to v, clamped to [MinWeight, MaxWeight].
func (g Genome) With(id WeightID, v float64) Genome {
	if id < 0 || id >= weightCount {
		return g
	}
	g.weights[id] = clampWeight(v)
	g.Version++
	return g
}

// Scale returns a copy with weight id multiplied by factor.
func (g Genome) Scale(id WeightID, factor float64) Genome {
	return g.With(id, g.Get(id)*factor)
}

// Apply returns a copy with every listed factor applied as one new version.
func (g Genome) Apply(factors map[WeightID]float64) Genome {
	if len(factors) == 0 {
		return g
	}
	for id, f := range factors {
		if id < 0 || id >= weightCount {
			continue
		}
		g.weights[id] = clampWeight(g.weights[id] * f)
	}
	g.Version++
	return g
}

func clampWeight(v float64) float64 {
	if math.IsNaN(v) {
		return MinWeight
	}
	return math.Max(MinWeight, math.Min(MaxWeight, v))
}

// Valid reports an error if any weight lies outside [MinWeight, MaxWeight].
// The zero Genome is not valid.
func (g Genome) Valid() error {
	for _, id := range AllWeights() {
		v := g.weights[id]
		if math.IsNaN(v) || v < MinWeight || v > MaxWeight {
			return fmt.Errorf("weight %s=%v out of range", id, v)
		}
	}
	return nil
}

// Map returns the weights keyed by name.
func (g Genome) Map() map[string]float64 {
	m := make(map[string]float64, weightCount)
	for _, id := range AllWeights() {
		m[id.String()] = g.weights[id]
	}
	return m
}

func (g Genome) String() string {
	names := make([]string, 0, weightCount)
	for _, id := range AllWeights() {
		names = append(names, fmt.Sprintf("%s=%.3f", id, g.weights[id]))
	}
	sort.Strings(names)
	return fmt.Sprintf("v%d %v", g.Version, names)
}

type genomeJSON struct {
	Version int                `json:"version"`
	Weights map[string]float64 `json:"weights"`
}

func (g Genome) MarshalJSON() ([]byte, error) {
	return json.Marshal(genomeJSON{Version: g.Version, Weights: g.Map()})
}

// UnmarshalJSON starts from DefaultGenome so weights missing from the input
// keep their stock values. Unknown names are an error.
func (g *Genome) UnmarshalJSON(b []byte) error {
	var raw genomeJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := DefaultGenome()
	out.Version = raw.Version
	for name, v := range raw.Weights {
		id, err := ParseWeightID(name)
		if err != nil {
			return err
		}
		out.weights[id] = clampWeight(v)
	}
	*g = out
	return nil
}
