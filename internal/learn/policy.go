package learn

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/Garsondee/Lawn-Sense/internal/agent"
	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// Policy chooses actions for one episode at a time and learns from the
// result. Implementations are selected when the episode controller is built.
type Policy interface {
	Name() string
	BeginEpisode(id string)
	Decide(s *game.Snapshot) game.Action
	EndEpisode(final *game.Snapshot, out game.Outcome)
}

// --- Evolution: heuristic scoring with an adapting genome.

// EvolutionPolicy plays with agent.Decide and adapts its genome between
// episodes.
type EvolutionPolicy struct {
	Evo *Evolution
	id  string
}

// NewEvolutionPolicy wraps ev.
func NewEvolutionPolicy(ev *Evolution) *EvolutionPolicy {
	return &EvolutionPolicy{Evo: ev}
}

func (p *EvolutionPolicy) Name() string { return "evolution" }

func (p *EvolutionPolicy) BeginEpisode(id string) { p.id = id }

func (p *EvolutionPolicy) Decide(s *game.Snapshot) game.Action {
	return agent.Decide(s, p.Evo.Genome)
}

func (p *EvolutionPolicy) EndEpisode(_ *game.Snapshot, out game.Outcome) {
	p.Evo.Record(p.id, out)
}

// --- Value table: epsilon-greedy over macro actions.

// ValuePolicy learns macro values with a one-step temporal-difference update
// on every decision and once more on the terminal snapshot.
type ValuePolicy struct {
	Table    *ValueTable
	Epsilon  float64
	Episodes int

	cfg    ValueConfig
	reward *Reward
	rng    *rand.Rand
	logger *slog.Logger

	prev      *game.Snapshot
	prevKey   StateKey
	prevMacro Macro
	episodeR  float64
}

// NewValuePolicy compiles the reward formula and builds an empty table.
func NewValuePolicy(cfg ValueConfig, rng *rand.Rand, logger *slog.Logger) (*ValuePolicy, error) {
	r, err := NewReward(cfg.RewardFormula, cfg.ProgressWeight)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ValuePolicy{
		Table:   NewValueTable(cfg, rng),
		Epsilon: cfg.Epsilon,
		cfg:     cfg,
		reward:  r,
		rng:     rng,
		logger:  logger,
	}, nil
}

func (p *ValuePolicy) Name() string { return "value" }

func (p *ValuePolicy) BeginEpisode(string) {
	p.prev = nil
	p.episodeR = 0
}

// Decide learns from the transition since the previous decision, then picks
// the next macro.
func (p *ValuePolicy) Decide(s *game.Snapshot) game.Action {
	key := Discretize(s)
	p.learn(s, key)

	legal := Legal(s)
	var m Macro
	if p.rng.Float64() < p.Epsilon {
		m = legal[p.rng.Intn(len(legal))]
	} else {
		m = p.Table.Best(key, legal)
	}
	p.Epsilon = max(p.cfg.EpsilonMin, p.Epsilon*p.cfg.EpsilonDecay)

	a, ok := Resolve(s, m)
	if !ok {
		m, a = MacroWait, game.Wait()
	}
	p.prev, p.prevKey, p.prevMacro = s, key, m
	return a
}

func (p *ValuePolicy) learn(next *game.Snapshot, key StateKey) {
	if p.prev == nil {
		return
	}
	r, err := p.reward.Transition(p.prev, next, p.prevMacro)
	if err != nil {
		p.logger.Error("reward evaluation failed", "error", err)
		return
	}
	p.episodeR += r
	p.Table.Update(p.prevKey, p.prevMacro, r, key)
}

// EndEpisode applies the final transition so the terminal penalty is learned.
func (p *ValuePolicy) EndEpisode(final *game.Snapshot, out game.Outcome) {
	p.learn(final, Discretize(final))
	p.prev = nil
	p.Episodes++
	p.logger.Info("value episode finished",
		"episode", p.Episodes,
		"progress", out.Progress,
		"return", p.episodeR,
		"epsilon", p.Epsilon,
		"states", p.Table.Len())
}

// --- Scripted baseline.

// ScriptedPolicy plays the fixed-priority baseline and never learns.
type ScriptedPolicy struct{}

func (ScriptedPolicy) Name() string { return "scripted" }

func (ScriptedPolicy) BeginEpisode(string) {}

func (ScriptedPolicy) Decide(s *game.Snapshot) game.Action { return agent.Scripted(s) }

func (ScriptedPolicy) EndEpisode(*game.Snapshot, game.Outcome) {}

// New builds a policy by name: "evolution", "value" or "scripted".
func New(name string, rng *rand.Rand, logger *slog.Logger) (Policy, error) {
	switch name {
	case "evolution":
		return NewEvolutionPolicy(NewEvolution(DefaultEvolutionConfig(), rng, logger)), nil
	case "value":
		vp, err := NewValuePolicy(DefaultValueConfig(), rng, logger)
		if err != nil {
			return nil, err
		}
		return vp, nil
	case "scripted":
		return ScriptedPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown policy %q (want evolution, value or scripted)", name)
	}
}
