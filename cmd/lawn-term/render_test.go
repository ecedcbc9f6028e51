package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

func TestRenderLane_PlacesGlyphs(t *testing.T) {
	e := game.NewTestEngine(
		game.WithUnit(game.UnitPeashooter, 0, 2),
		game.WithEnemy(game.EnemyCone, 2, 1000),
		game.WithCollectible(2, 600, 25),
	)
	s := e.Snapshot()
	strip := string(renderLane(s, 2, 50))
	if len([]rune(strip)) != 50 {
		t.Fatalf("expected 50 cells, got %d", len(strip))
	}
	for _, want := range []string{"|", "P", "c", "$"} {
		if !strings.Contains(strip, want) {
			t.Fatalf("lane 2 missing %q: %s", want, strip)
		}
	}
	if strings.Index(strip, "P") > strings.Index(strip, "c") {
		t.Fatalf("unit must render left of the enemy: %s", strip)
	}
	if other := string(renderLane(s, 0, 50)); strings.ContainsAny(other, "Pc$") {
		t.Fatalf("lane 0 should be empty apart from the boundary: %s", other)
	}
}

func TestColumn_Clamps(t *testing.T) {
	cfg := game.DefaultConfig()
	if c := column(-50, cfg, 40); c != 0 {
		t.Fatalf("expected 0, got %d", c)
	}
	if c := column(cfg.SpawnX*2, cfg, 40); c != 39 {
		t.Fatalf("expected 39, got %d", c)
	}
}

func TestStatusLine(t *testing.T) {
	s := game.NewTestEngine().Snapshot()
	if got := statusLine(s, "value", 3, 6, false); !strings.Contains(got, "value #3") || !strings.Contains(got, "[6x]") {
		t.Fatalf("unexpected status line: %s", got)
	}
	if got := statusLine(s, "value", 3, 6, true); !strings.Contains(got, "[PAUSED]") {
		t.Fatalf("expected paused marker: %s", got)
	}
}
