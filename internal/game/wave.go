package game

import (
	"math"
	"math/rand"
)

const (
	firstWaveInterval = 20 * TicksPerSecond
	baseWaveInterval  = 8 * TicksPerSecond
	minWaveInterval   = 3 * TicksPerSecond
	waveIntervalStep  = TicksPerSecond / 2
	baseActiveLanes   = 3
	footballMinWave   = 3
	footballChance    = 0.15
)

// WaveParams records the pacing a wave started with.
type WaveParams struct {
	Level    int
	Wave     int
	Quota    int
	Interval int
	Lanes    []int
}

// WaveScheduler decides when and where enemies spawn and when a wave is
// complete. It never touches entities itself.
type WaveScheduler struct {
	Level   int
	Wave    int
	Spawned int
	Quota   int
	Timer   int

	// Interval is the spawn spacing in ticks for the current wave.
	Interval int

	rows          int
	wavesPerLevel int
	lanes         []int
	history       []WaveParams
}

// NewWaveScheduler starts at level 1, wave 1.
func NewWaveScheduler(rows, wavesPerLevel int) *WaveScheduler {
	ws := &WaveScheduler{rows: rows, wavesPerLevel: wavesPerLevel}
	ws.start(1, 1)
	return ws
}

// WaveQuota is the number of enemies wave n spawns: 3 for the first wave,
// 3+n after that.
func WaveQuota(wave int) int {
	if wave <= 1 {
		return 3
	}
	return 3 + wave
}

// WaveInterval is the spawn spacing in ticks for (level, wave).
func WaveInterval(level, wave int) int {
	base := firstWaveInterval
	if level > 1 || wave > 1 {
		base = baseWaveInterval - waveIntervalStep*wave
		if base < minWaveInterval {
			base = minWaveInterval
		}
	}
	ticks := int(math.Round(float64(base) * Difficulty(level).SpawnInterval))
	if ticks < 1 {
		ticks = 1
	}
	return ticks
}

// ActiveLanes returns the centred window of rows eligible for spawns in a wave.
func ActiveLanes(rows, wave int) []int {
	n := baseActiveLanes + wave - 1
	if n > rows {
		n = rows
	}
	if n < 1 {
		n = 1
	}
	start := (rows - n) / 2
	lanes := make([]int, n)
	for i := range lanes {
		lanes[i] = start + i
	}
	return lanes
}

func (ws *WaveScheduler) start(level, wave int) {
	ws.Level = level
	ws.Wave = wave
	ws.Spawned = 0
	ws.Timer = 0
	ws.Quota = WaveQuota(wave)
	ws.Interval = WaveInterval(level, wave)
	ws.lanes = ActiveLanes(ws.rows, wave)
	ws.history = append(ws.history, WaveParams{
		Level:    level,
		Wave:     wave,
		Quota:    ws.Quota,
		Interval: ws.Interval,
		Lanes:    append([]int(nil), ws.lanes...),
	})
}

// Lanes returns the rows enemies may spawn in this wave.
func (ws *WaveScheduler) Lanes() []int { return ws.lanes }

// History returns the parameters of every wave started so far.
func (ws *WaveScheduler) History() []WaveParams { return ws.history }

// Tick advances the spawn timer and reports whether an enemy is due.
func (ws *WaveScheduler) Tick() bool {
	ws.Timer++
	if ws.Spawned >= ws.Quota || ws.Timer < ws.Interval {
		return false
	}
	ws.Timer = 0
	ws.Spawned++
	return true
}

// Complete reports whether the wave may advance given the number of
// non-dying enemies on the field.
func (ws *WaveScheduler) Complete(liveEnemies int) bool {
	return ws.Spawned >= ws.Quota && liveEnemies == 0
}

// Advance moves to the next wave, rolling into the next level after the
// last wave of a level. It reports whether the level changed.
func (ws *WaveScheduler) Advance() bool {
	if ws.Wave >= ws.wavesPerLevel {
		ws.start(ws.Level+1, 1)
		return true
	}
	ws.start(ws.Level, ws.Wave+1)
	return false
}

// Jump restarts the scheduler at an arbitrary point. Used by test setups.
func (ws *WaveScheduler) Jump(level, wave int) {
	ws.history = ws.history[:0]
	ws.start(level, wave)
}

// PickLane chooses a spawn lane uniformly among the active lanes.
func (ws *WaveScheduler) PickLane(rng *rand.Rand) int {
	return ws.lanes[rng.Intn(len(ws.lanes))]
}

// PickKind rolls the enemy variant for the current wave.
func (ws *WaveScheduler) PickKind(rng *rand.Rand) EnemyKind {
	if ws.Wave >= footballMinWave && rng.Float64() < footballChance {
		return EnemyFootball
	}
	coneChance := math.Min(0.2+0.05*float64(ws.Wave), 0.5)
	if rng.Float64() < coneChance {
		return EnemyCone
	}
	return EnemyNormal
}
