package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Lawn-Sense/internal/episode"
	"github.com/Garsondee/Lawn-Sense/internal/game"
	"github.com/Garsondee/Lawn-Sense/internal/learn"
)

type options struct {
	runs             int
	episodes         int
	maxTicks         int
	decisionInterval int
	seedBase         int64
	seedStep         int64
	policy           string
	formula          string
	progressWeight   float64
	statePath        string
	defsPath         string
	window           int
	copy             bool
	verbose          bool
}

type runStats struct {
	runIndex int
	seed     int64
	policy   string
	detail   string

	results []episode.Result
	agg     episode.Aggregate

	firstBreachTick int
	firstLevelUp    int // episode index of the first level-2 finish, -1 if none
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 1, "number of independent training runs")
	flag.IntVar(&o.episodes, "episodes", 50, "episodes per run")
	flag.IntVar(&o.maxTicks, "max-ticks", 36000, "tick cap per episode")
	flag.IntVar(&o.decisionInterval, "decision-interval", 30, "ticks between policy decisions")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&o.policy, "policy", "evolution", "policy: evolution, value or scripted")
	flag.StringVar(&o.formula, "reward", "", "reward formula for the value policy (default built in)")
	flag.Float64Var(&o.progressWeight, "progress-weight", learn.DefaultProgressWeight, "weight of the progress term in the default reward")
	flag.StringVar(&o.statePath, "state", "", "load learned state before and save it after training (single run only)")
	flag.StringVar(&o.defsPath, "defs", "", "optional JSON unit/enemy definitions")
	flag.IntVar(&o.window, "window", 10, "episodes in the first/last trend windows")
	flag.BoolVar(&o.copy, "copy", false, "copy the report to the clipboard")
	flag.BoolVar(&o.verbose, "verbose", false, "log every episode")
	flag.Parse()

	if err := validate(o); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := game.DefaultConfig()
	if o.defsPath != "" {
		defs, err := game.LoadDefinitions(o.defsPath)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		cfg = defs.Apply(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var report strings.Builder
	out := io.MultiWriter(os.Stdout, &report)

	fmt.Fprintf(out, "=== Headless Training Report ===\n")
	fmt.Fprintf(out, "policy=%s runs=%d episodes=%d max_ticks=%d decision_interval=%d seed_base=%d seed_step=%d\n\n",
		o.policy, o.runs, o.episodes, o.maxTicks, o.decisionInterval, o.seedBase, o.seedStep)

	all := make([]runStats, 0, o.runs)
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		rs, err := runTraining(ctx, o, cfg, i+1, seed, logger)
		if err != nil && !errors.Is(err, context.Canceled) {
			fmt.Printf("error: run %d: %v\n", i+1, err)
			os.Exit(1)
		}
		all = append(all, rs)
		printRun(out, rs)
		if err != nil {
			fmt.Fprintf(out, "interrupted after %d episodes\n", len(rs.results))
			break
		}
	}
	printAggregate(out, all, o.window)

	if o.copy {
		if err := clipboard.WriteAll(report.String()); err != nil {
			logger.Warn("clipboard copy failed", "error", err)
		} else {
			fmt.Println("(report copied to clipboard)")
		}
	}
}

func validate(o options) error {
	switch {
	case o.runs <= 0:
		return errors.New("-runs must be > 0")
	case o.episodes <= 0:
		return errors.New("-episodes must be > 0")
	case o.maxTicks <= 0:
		return errors.New("-max-ticks must be > 0")
	case o.decisionInterval <= 0:
		return errors.New("-decision-interval must be > 0")
	case o.statePath != "" && o.runs != 1:
		return errors.New("-state needs -runs=1")
	}
	switch o.policy {
	case "evolution", "value", "scripted":
	default:
		return fmt.Errorf("unsupported policy %q (supported: evolution, value, scripted)", o.policy)
	}
	if o.formula != "" {
		if _, err := learn.NewReward(o.formula, o.progressWeight); err != nil {
			return err
		}
	}
	return nil
}

func buildPolicy(o options, rng *rand.Rand, logger *slog.Logger) (learn.Policy, error) {
	if o.policy != "value" {
		return learn.New(o.policy, rng, logger)
	}
	vc := learn.DefaultValueConfig()
	vc.RewardFormula = o.formula
	vc.ProgressWeight = o.progressWeight
	return learn.NewValuePolicy(vc, rng, logger)
}

func runTraining(ctx context.Context, o options, cfg game.Config, runIndex int, seed int64, logger *slog.Logger) (runStats, error) {
	rs := runStats{runIndex: runIndex, seed: seed, policy: o.policy, firstBreachTick: -1, firstLevelUp: -1}

	engine, err := game.NewEngine(cfg, game.WithSeed(seed))
	if err != nil {
		return rs, err
	}
	rng := rand.New(rand.NewSource(seed ^ 0x5eed)) // #nosec G404 -- simulation randomness, not security
	policy, err := buildPolicy(o, rng, logger)
	if err != nil {
		return rs, err
	}
	learn.LoadPolicyOrDefaults(o.statePath, policy, logger)
	ctl, err := episode.New(engine, policy, episode.Config{
		DecisionInterval: o.decisionInterval,
		MaxTicks:         o.maxTicks,
	}, episode.WithLogger(logger))
	if err != nil {
		return rs, err
	}

	var runErr error
	for i := 0; i < o.episodes; i++ {
		r, err := ctl.RunEpisode(ctx)
		if err != nil {
			runErr = err
			break
		}
		rs.results = append(rs.results, r)
		if rs.firstBreachTick < 0 {
			if e, ok := engine.SimLog().LastOf("state", "breach"); ok {
				rs.firstBreachTick = e.Tick
			}
		}
		if rs.firstLevelUp < 0 && r.Outcome.Level > 1 {
			rs.firstLevelUp = r.Index
		}
	}
	rs.agg = episode.Summarise(rs.results, o.window)
	rs.detail = policyDetail(policy)

	if o.statePath != "" && len(rs.results) > 0 {
		if err := learn.SavePolicy(o.statePath, policy); err != nil {
			return rs, err
		}
	}
	return rs, runErr
}

func policyDetail(p learn.Policy) string {
	switch pp := p.(type) {
	case *learn.EvolutionPolicy:
		ev := pp.Evo
		return fmt.Sprintf("generation=%d best=%d best_level=%d avg=%.2f genome=%s",
			ev.Generation, ev.BestScore, ev.BestLevel, ev.Average(), ev.Genome)
	case *learn.ValuePolicy:
		return fmt.Sprintf("states=%d epsilon=%.3f episodes=%d", pp.Table.Len(), pp.Epsilon, pp.Episodes)
	default:
		return "static"
	}
}

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	for _, r := range rs.results {
		fmt.Fprintln(w, episode.FormatResult(r))
	}
	fmt.Fprintf(w, "phase_markers: first_breach_tick=%d first_level_up_episode=%d\n", rs.firstBreachTick, rs.firstLevelUp)
	fmt.Fprint(w, rs.agg.Format())
	fmt.Fprintf(w, "policy: %s\n\n", rs.detail)
}

func printAggregate(w io.Writer, all []runStats, window int) {
	var results []episode.Result
	best := 0
	bestRun := 0
	improved := 0
	for _, rs := range all {
		results = append(results, rs.results...)
		if rs.agg.BestProgress > best {
			best = rs.agg.BestProgress
			bestRun = rs.runIndex
		}
		if rs.agg.LastProgress > rs.agg.FirstProgress {
			improved++
		}
	}
	fmt.Fprintf(w, "=== Aggregate (%d runs) ===\n", len(all))
	fmt.Fprint(w, episode.Summarise(results, window).Format())
	fmt.Fprintf(w, "best_run=%d best_progress=%d runs_improved=%d/%d\n", bestRun, best, improved, len(all))
}
