package view

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Lawn-Sense/internal/episode"
	"github.com/Garsondee/Lawn-Sense/internal/game"
	"github.com/Garsondee/Lawn-Sense/internal/learn"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func newTestViewer(t *testing.T, opts ...game.Option) *Viewer {
	t.Helper()
	e := game.NewTestEngine(opts...)
	ctl, err := episode.New(e, learn.ScriptedPolicy{}, episode.Config{DecisionInterval: 30, MaxTicks: 600},
		episode.WithLogger(quiet()))
	require.NoError(t, err)
	return New(ctl, quiet())
}

func TestEventLog_RingKeepsNewest(t *testing.T) {
	el := NewEventLog()
	for i := 0; i < logMaxEntries+15; i++ {
		el.Add(EventEntry{Tick: i, Message: fmt.Sprint(i)})
	}
	got := el.Recent()
	require.Len(t, got, logMaxEntries)
	assert.Equal(t, 15, got[0].Tick)
	assert.Equal(t, logMaxEntries+14, got[len(got)-1].Tick)
}

func TestEventLog_AddSim(t *testing.T) {
	el := NewEventLog()
	el.AddSim(game.SimLogEntry{Tick: 7, Entity: "E3", Category: "enemy", Key: "spawn", Value: "normal lane 2"})
	got := el.Recent()
	require.Len(t, got, 1)
	assert.Equal(t, EventEntry{Tick: 7, Label: "E3", Category: "enemy", Message: "spawn normal lane 2"}, got[0])
}

func TestSpeedControls(t *testing.T) {
	v := newTestViewer(t)
	assert.Equal(t, 1.0, v.simSpeed)

	v.faster()
	v.faster()
	v.faster()
	v.faster()
	assert.Equal(t, 8.0, v.simSpeed, "clamped at the top")

	for range speeds {
		v.slower()
	}
	assert.Equal(t, 0.0, v.simSpeed)
	assert.Equal(t, "PAUSED", speedLabel(v.simSpeed))

	v.togglePause()
	assert.Equal(t, 1.0, v.simSpeed)
	v.slower()
	assert.Equal(t, "0.5x", speedLabel(v.simSpeed))
}

func TestStep_MirrorsEventsAndMarksEpisodeEnd(t *testing.T) {
	v := newTestViewer(t, game.WithEnemy(game.EnemyNormal, 1, 100.2))
	v.step()

	got := v.events.Recent()
	require.NotEmpty(t, got)
	last := got[len(got)-1]
	assert.Equal(t, "episode", last.Category)
	assert.Contains(t, last.Message, "#1 end L1 W1")
	assert.Equal(t, 0, v.logCursor)

	var breach bool
	for _, e := range got {
		if e.Category == "state" && strings.HasPrefix(e.Message, "breach") {
			breach = true
		}
	}
	assert.True(t, breach, "breach entry mirrored before the engine resets")

	// The next step starts a fresh episode.
	v.step()
	assert.Equal(t, 1, v.ctl.Engine().Tick())
}

func TestCopySummary(t *testing.T) {
	v := newTestViewer(t)
	var copied string
	v.copyText = func(s string) error {
		copied = s
		return nil
	}
	for i := 0; i < 700; i++ {
		v.step()
	}
	v.copySummary()
	assert.Contains(t, copied, "policy=scripted")
	assert.Contains(t, copied, "--- Episodes ---")
	assert.Contains(t, copied, "capped")
	assert.Equal(t, "summary copied", v.status)

	v.copyText = func(string) error { return errors.New("no clipboard") }
	v.copySummary()
	assert.Equal(t, "copy failed", v.status)
}

func TestHUDLines(t *testing.T) {
	v := newTestViewer(t)
	lines := v.hudLines(v.ctl.Engine().Snapshot())
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[0], "policy scripted")
	assert.Contains(t, lines[0], "balance 350")
	assert.Contains(t, lines[1], "SIM 1x")
}
