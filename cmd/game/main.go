package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Lawn-Sense/internal/episode"
	"github.com/Garsondee/Lawn-Sense/internal/game"
	"github.com/Garsondee/Lawn-Sense/internal/learn"
	"github.com/Garsondee/Lawn-Sense/internal/view"
)

func main() {
	var (
		policyName string
		seed       int64
		statePath  string
		defsPath   string
		verbose    bool
	)
	flag.StringVar(&policyName, "policy", "evolution", "policy: evolution, value or scripted")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "RNG seed")
	flag.StringVar(&statePath, "state", "", "load and save learned policy state at this path")
	flag.StringVar(&defsPath, "defs", "", "optional JSON unit/enemy definitions")
	flag.BoolVar(&verbose, "verbose", false, "record per-tick events in the event panel")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := game.DefaultConfig()
	if defsPath != "" {
		defs, err := game.LoadDefinitions(defsPath)
		if err != nil {
			log.Fatal(err)
		}
		cfg = defs.Apply(cfg)
	}
	engine, err := game.NewEngine(cfg, game.WithSeed(seed), game.WithVerbose(verbose))
	if err != nil {
		log.Fatal(err)
	}

	rng := rand.New(rand.NewSource(seed + 1)) // #nosec G404 -- simulation randomness, not security
	policy, err := learn.New(policyName, rng, logger)
	if err != nil {
		log.Fatal(err)
	}
	learn.LoadPolicyOrDefaults(statePath, policy, logger)

	ctl, err := episode.New(engine, policy, episode.DefaultConfig(), episode.WithLogger(logger))
	if err != nil {
		log.Fatal(err)
	}
	v := view.New(ctl, logger)

	ebiten.SetWindowTitle("Lawn Sense")
	w, h := v.Size()
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}

	if statePath != "" {
		if err := learn.SavePolicy(statePath, policy); err != nil {
			log.Fatal(err)
		}
		logger.Info("policy state saved", "path", statePath)
	}
}
