package learn

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/Garsondee/Lawn-Sense/internal/agent"
	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// EvolutionConfig controls the genome adapter.
type EvolutionConfig struct {
	// Interval is the number of episodes per generation; each generation
	// boundary mutates one random weight. 0 disables mutation.
	Interval     int
	MutationLow  float64
	MutationHigh float64
	HistorySize  int
}

// DefaultEvolutionConfig returns the stock adapter settings.
func DefaultEvolutionConfig() EvolutionConfig {
	return EvolutionConfig{
		Interval:     5,
		MutationLow:  0.9,
		MutationHigh: 1.1,
		HistorySize:  50,
	}
}

// bandFactors are the per-band weight multipliers applied after every episode.
var bandFactors = map[game.Band]map[agent.WeightID]float64{
	game.BandVeryEarly: {
		agent.WeightSunflowerPriority: 0.9,
		agent.WeightEarlyDefense:      1.15,
		agent.WeightRowCoverage:       1.1,
	},
	game.BandEarly: {
		agent.WeightSunflowerPriority: 0.95,
		agent.WeightPeashooterDensity: 1.08,
	},
	game.BandModerate: {
		agent.WeightSunflowerPriority: 1.03,
		agent.WeightAggressive:        1.05,
	},
	game.BandStrong: {
		agent.WeightAggressive:        1.1,
		agent.WeightSunflowerPriority: 1.05,
	},
}

// EpisodeRecord is one entry of the adapter's rolling history.
type EpisodeRecord struct {
	ID         string    `json:"id"`
	Generation int       `json:"generation"`
	Level      int       `json:"level"`
	Wave       int       `json:"wave"`
	Progress   int       `json:"progress"`
	Ticks      int       `json:"ticks"`
	FinishedAt time.Time `json:"finished_at"`
}

// Evolution adapts a Genome from episode outcomes: band rules nudge weights
// after every episode and a random mutation fires once per generation.
type Evolution struct {
	Genome     agent.Genome
	Generation int
	Episodes   int
	BestScore  int
	BestLevel  int
	History    []EpisodeRecord

	cfg    EvolutionConfig
	rng    *rand.Rand
	logger *slog.Logger
	now    func() time.Time
}

// NewEvolution starts from the default genome.
func NewEvolution(cfg EvolutionConfig, rng *rand.Rand, logger *slog.Logger) *Evolution {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evolution{
		Genome: agent.DefaultGenome(),
		cfg:    cfg,
		rng:    rng,
		logger: logger,
		now:    time.Now,
	}
}

// Record folds one finished episode into the genome.
func (ev *Evolution) Record(id string, out game.Outcome) {
	ev.Episodes++
	ev.History = append(ev.History, EpisodeRecord{
		ID:         id,
		Generation: ev.Generation,
		Level:      out.Level,
		Wave:       out.Wave,
		Progress:   out.Progress,
		Ticks:      out.Ticks,
		FinishedAt: ev.now().UTC(),
	})
	if n := ev.cfg.HistorySize; n > 0 && len(ev.History) > n {
		ev.History = append(ev.History[:0:0], ev.History[len(ev.History)-n:]...)
	}
	if out.Progress > ev.BestScore {
		ev.BestScore = out.Progress
		ev.logger.Info("new best episode", "progress", out.Progress, "level", out.Level, "wave", out.Wave)
	}
	if out.Level > ev.BestLevel {
		ev.BestLevel = out.Level
	}

	band := out.Band()
	ev.Genome = ev.Genome.Apply(bandFactors[band])
	ev.logger.Debug("genome adapted", "band", band.String(), "genome", ev.Genome.String())

	if ev.cfg.Interval > 0 && ev.Episodes%ev.cfg.Interval == 0 {
		ev.mutate()
	}
}

func (ev *Evolution) mutate() {
	ev.Generation++
	ids := agent.AllWeights()
	id := ids[ev.rng.Intn(len(ids))]
	factor := ev.cfg.MutationLow + ev.rng.Float64()*(ev.cfg.MutationHigh-ev.cfg.MutationLow)
	ev.Genome = ev.Genome.Scale(id, factor)
	ev.logger.Info("generation evolved",
		"generation", ev.Generation,
		"weight", id.String(),
		"factor", factor,
		"value", ev.Genome.Get(id))
}

// Average returns the mean progress over the retained history.
func (ev *Evolution) Average() float64 {
	if len(ev.History) == 0 {
		return 0
	}
	sum := 0
	for _, h := range ev.History {
		sum += h.Progress
	}
	return float64(sum) / float64(len(ev.History))
}
