package episode

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// Aggregate folds a batch of results into headline numbers.
type Aggregate struct {
	Episodes      int
	BestProgress  int
	BestLevel     int
	AvgProgress   float64
	AvgTicks      float64
	CappedRuns    int
	Rejected      int
	Stats         game.Stats
	Bands         map[game.Band]int
	FirstProgress float64 // mean progress over the first window
	LastProgress  float64 // mean progress over the last window
}

// Summarise computes an Aggregate. window sizes the first/last comparison
// and is clamped to half the batch.
func Summarise(results []Result, window int) Aggregate {
	agg := Aggregate{Episodes: len(results), Bands: map[game.Band]int{}}
	if len(results) == 0 {
		return agg
	}
	progSum, tickSum := 0, 0
	for _, r := range results {
		o := r.Outcome
		progSum += o.Progress
		tickSum += o.Ticks
		agg.BestProgress = max(agg.BestProgress, o.Progress)
		agg.BestLevel = max(agg.BestLevel, o.Level)
		agg.Rejected += r.Rejected
		if r.Capped {
			agg.CappedRuns++
		}
		agg.Bands[o.Band()]++
		agg.Stats = agg.Stats.Add(o.Stats)
	}
	agg.AvgProgress = float64(progSum) / float64(len(results))
	agg.AvgTicks = float64(tickSum) / float64(len(results))

	window = min(max(window, 1), max(len(results)/2, 1))
	agg.FirstProgress = meanProgress(results[:window])
	agg.LastProgress = meanProgress(results[len(results)-window:])
	return agg
}

func meanProgress(rs []Result) float64 {
	if len(rs) == 0 {
		return 0
	}
	sum := 0
	for _, r := range rs {
		sum += r.Outcome.Progress
	}
	return float64(sum) / float64(len(rs))
}

// FormatResult renders one result as a single report line.
func FormatResult(r Result) string {
	o := r.Outcome
	capped := ""
	if r.Capped {
		capped = " capped"
	}
	return fmt.Sprintf("#%-4d %s L%d W%d progress=%-3d band=%-10s ticks=%-6d placed=%-3d lost=%-3d defeated=%-4d decisions=%d rejected=%d%s",
		r.Index, shortID(r.ID), o.Level, o.Wave, o.Progress, o.Band(), o.Ticks,
		o.Stats.UnitsPlaced, o.Stats.UnitsLost, o.Stats.EnemiesDefeated,
		r.Decisions, r.Rejected, capped)
}

// Format renders the aggregate as a multi-line block.
func (a Aggregate) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "episodes=%d best_progress=%d best_level=%d capped=%d\n",
		a.Episodes, a.BestProgress, a.BestLevel, a.CappedRuns)
	fmt.Fprintf(&b, "avg_progress=%.2f avg_ticks=%.0f first_window=%.2f last_window=%.2f trend=%+.2f\n",
		a.AvgProgress, a.AvgTicks, a.FirstProgress, a.LastProgress, a.LastProgress-a.FirstProgress)
	fmt.Fprintf(&b, "totals: placed=%d lost=%d spawned=%d defeated=%d collected=%d expired=%d rejected=%d accuracy=%.0f%%\n",
		a.Stats.UnitsPlaced, a.Stats.UnitsLost, a.Stats.EnemiesSpawned, a.Stats.EnemiesDefeated,
		a.Stats.ResourcesCollected, a.Stats.ResourcesExpired, a.Rejected, a.Stats.Accuracy()*100)

	bands := make([]game.Band, 0, len(a.Bands))
	for band := range a.Bands {
		bands = append(bands, band)
	}
	sort.Slice(bands, func(i, j int) bool { return bands[i] < bands[j] })
	parts := make([]string, 0, len(bands))
	for _, band := range bands {
		parts = append(parts, fmt.Sprintf("%s=%d", band, a.Bands[band]))
	}
	if len(parts) == 0 {
		parts = append(parts, "none")
	}
	fmt.Fprintf(&b, "bands: %s\n", strings.Join(parts, " "))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
