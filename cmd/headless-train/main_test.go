package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Garsondee/Lawn-Sense/internal/episode"
	"github.com/Garsondee/Lawn-Sense/internal/game"
)

func baseOptions() options {
	return options{
		runs:             1,
		episodes:         3,
		maxTicks:         900,
		decisionInterval: 30,
		seedBase:         42,
		seedStep:         1,
		policy:           "evolution",
		progressWeight:   0.1,
		window:           1,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestValidate(t *testing.T) {
	if err := validate(baseOptions()); err != nil {
		t.Fatalf("expected base options to validate, got %v", err)
	}

	cases := map[string]func(*options){
		"runs":     func(o *options) { o.runs = 0 },
		"episodes": func(o *options) { o.episodes = -1 },
		"policy":   func(o *options) { o.policy = "oracle" },
		"state":    func(o *options) { o.runs = 2; o.statePath = "x.json" },
		"formula":  func(o *options) { o.policy = "value"; o.formula = "Progress +" },
	}
	for name, edit := range cases {
		o := baseOptions()
		edit(&o)
		if err := validate(o); err == nil {
			t.Fatalf("%s: expected a validation error", name)
		}
	}
}

func TestRunTraining_EvolutionRecordsEveryEpisode(t *testing.T) {
	o := baseOptions()
	rs, err := runTraining(context.Background(), o, game.DefaultConfig(), 1, 42, quietLogger())
	if err != nil {
		t.Fatalf("runTraining: %v", err)
	}
	if len(rs.results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(rs.results))
	}
	for _, r := range rs.results {
		if !r.Capped || r.Outcome.Ticks != 900 {
			t.Fatalf("expected capped 900-tick episodes, got %+v", r)
		}
	}
	if !strings.Contains(rs.detail, "generation=0") {
		t.Fatalf("expected evolution detail, got %q", rs.detail)
	}
}

func TestRunTraining_ValuePolicyWithCustomReward(t *testing.T) {
	o := baseOptions()
	o.policy = "value"
	o.formula = "GameOver ? -10.0 : ActionBonus"
	rs, err := runTraining(context.Background(), o, game.DefaultConfig(), 1, 7, quietLogger())
	if err != nil {
		t.Fatalf("runTraining: %v", err)
	}
	if !strings.Contains(rs.detail, "episodes=3") {
		t.Fatalf("expected value detail with 3 episodes, got %q", rs.detail)
	}
}

func TestRunTraining_CancelledStopsEarly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rs, err := runTraining(ctx, baseOptions(), game.DefaultConfig(), 1, 1, quietLogger())
	if err == nil {
		t.Fatal("expected cancellation error")
	}
	if len(rs.results) != 0 {
		t.Fatalf("expected no results, got %d", len(rs.results))
	}
}

func TestRunTraining_SavesState(t *testing.T) {
	o := baseOptions()
	o.episodes = 1
	o.statePath = filepath.Join(t.TempDir(), "evo.json")
	if _, err := runTraining(context.Background(), o, game.DefaultConfig(), 1, 3, quietLogger()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	rs, err := runTraining(context.Background(), o, game.DefaultConfig(), 1, 3, quietLogger())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !strings.Contains(rs.detail, "best=1") {
		t.Fatalf("expected restored best score, got %q", rs.detail)
	}
}

func TestRunTraining_UnreadableStateTrainsFromDefaults(t *testing.T) {
	o := baseOptions()
	// A directory passes the existence check but cannot be read as state.
	o.statePath = t.TempDir()
	rs, err := runTraining(context.Background(), o, game.DefaultConfig(), 1, 5, quietLogger())
	if len(rs.results) != 3 {
		t.Fatalf("expected training to run all 3 episodes, got %d", len(rs.results))
	}
	if !strings.Contains(rs.detail, "generation=0") {
		t.Fatalf("expected default evolution state, got %q", rs.detail)
	}
	// Saving over a directory still fails and is reported.
	if err == nil {
		t.Fatal("expected the save error to be returned")
	}
}

func TestPrintAggregate(t *testing.T) {
	mk := func(progress int) episode.Result {
		return episode.Result{Outcome: game.Outcome{Level: 1, Wave: progress, Progress: progress}}
	}
	all := []runStats{
		{runIndex: 1, agg: episode.Summarise([]episode.Result{mk(1), mk(2)}, 1), results: []episode.Result{mk(1), mk(2)}},
		{runIndex: 2, agg: episode.Summarise([]episode.Result{mk(4), mk(3)}, 1), results: []episode.Result{mk(4), mk(3)}},
	}
	var buf bytes.Buffer
	printAggregate(&buf, all, 1)
	out := buf.String()
	if !strings.Contains(out, "best_run=2 best_progress=4 runs_improved=1/2") {
		t.Fatalf("unexpected aggregate:\n%s", out)
	}
	if !strings.Contains(out, "episodes=4") {
		t.Fatalf("expected 4 episodes in aggregate:\n%s", out)
	}
}
