package main

import (
	"fmt"
	"math"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// glyphs for units on the lane strip.
var unitGlyph = map[game.UnitKind]rune{
	game.UnitSunflower:  'S',
	game.UnitPeashooter: 'P',
	game.UnitWallnut:    'W',
	game.UnitRepeater:   'R',
}

var enemyGlyph = map[game.EnemyKind]rune{
	game.EnemyNormal:   'z',
	game.EnemyCone:     'c',
	game.EnemyFootball: 'f',
}

// column maps a simulation x onto a strip of width cells spanning 0..SpawnX.
func column(x float64, cfg game.Config, width int) int {
	c := int(math.Floor(x / cfg.SpawnX * float64(width-1)))
	return min(max(c, 0), width-1)
}

// renderLane draws one lane as a strip of runes. Later layers overwrite
// earlier ones: boundary, units, projectiles, collectibles, enemies.
func renderLane(s *game.Snapshot, row, width int) []rune {
	cfg := s.Config
	strip := make([]rune, width)
	for i := range strip {
		strip[i] = '.'
	}
	strip[column(cfg.BoundaryX, cfg, width)] = '|'
	for _, u := range s.Units {
		if u.Row == row {
			strip[column(cfg.CellCenterX(u.Col), cfg, width)] = unitGlyph[u.Kind]
		}
	}
	for _, p := range s.Projectiles {
		if p.Active && p.Lane == row {
			strip[column(p.X, cfg, width)] = '-'
		}
	}
	for _, c := range s.Collectibles {
		if c.Active && c.Lane == row {
			strip[column(c.X, cfg, width)] = '$'
		}
	}
	for _, en := range s.Enemies {
		if en.Lane != row {
			continue
		}
		g := enemyGlyph[en.Kind]
		if en.Dying {
			g = 'x'
		}
		strip[column(en.X, cfg, width)] = g
	}
	return strip
}

func statusLine(s *game.Snapshot, policy string, episodeN int, speed int, paused bool) string {
	state := fmt.Sprintf("%dx", speed)
	if paused {
		state = "PAUSED"
	}
	return fmt.Sprintf("%s #%d  T=%d  L%d W%d  %d/%d spawned  balance %d  [%s]",
		policy, episodeN, s.Tick, s.Level, s.Wave, s.Spawned, s.Quota, s.Balance, state)
}
