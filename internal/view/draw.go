package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

func (v *Viewer) drawField(screen *ebiten.Image, s *game.Snapshot) {
	cfg := s.Config
	fw := float32(v.fieldW)

	// Alternating lane stripes.
	for row := 0; row < s.Rows(); row++ {
		shade := uint8(40)
		if row%2 == 1 {
			shade = 48
		}
		vector.FillRect(screen, 0, laneY(row), fw, laneHeight, color.RGBA{R: 26, G: shade + 20, B: 24, A: 255}, false)
	}

	// Placement grid.
	gridCol := color.RGBA{R: 70, G: 100, B: 60, A: 120}
	for col := 0; col < s.Cols(); col++ {
		x := screenX(cfg.GridOriginX + float64(col)*cfg.CellWidth)
		for row := 0; row < s.Rows(); row++ {
			vector.StrokeRect(screen, x, laneY(row), float32(cfg.CellWidth), laneHeight, 1, gridCol, false)
		}
	}

	// Defense boundary.
	bx := screenX(cfg.BoundaryX)
	top := laneY(0)
	bottom := laneY(s.Rows())
	vector.StrokeLine(screen, bx, top, bx, bottom, 2, color.RGBA{R: 200, G: 60, B: 50, A: 200}, false)

	for _, u := range s.Units {
		v.drawUnit(screen, cfg, u)
	}
	for _, p := range s.Projectiles {
		if !p.Active {
			continue
		}
		vector.FillCircle(screen, screenX(p.X), laneY(p.Lane)+laneHeight/2-10, 5, color.RGBA{R: 150, G: 240, B: 90, A: 255}, true)
	}
	for _, en := range s.Enemies {
		drawEnemy(screen, en)
	}
	for _, c := range s.Collectibles {
		if !c.Active {
			continue
		}
		clr := color.RGBA{R: 255, G: 230, B: 90, A: 230}
		if c.Sky {
			clr = color.RGBA{R: 255, G: 250, B: 170, A: 230}
		}
		cy := laneY(c.Lane) + 20
		vector.FillCircle(screen, screenX(c.X), cy, 9, clr, true)
		vector.StrokeCircle(screen, screenX(c.X), cy, 10, 1, color.RGBA{R: 180, G: 140, B: 30, A: 255}, true)
	}

	if s.GameOver {
		vector.FillRect(screen, 0, top, fw, bottom-top, color.RGBA{R: 120, G: 0, B: 0, A: 90}, false)
		text.Draw(screen, "BREACHED", v.face, v.fieldW/2-28, int(top+bottom)/2, color.White)
	}
}

func (v *Viewer) drawUnit(screen *ebiten.Image, cfg game.Config, u game.Unit) {
	x := screenX(cfg.GridOriginX + float64(u.Col)*cfg.CellWidth)
	y := laneY(u.Row)
	pad := float32(12)
	w := float32(cfg.CellWidth) - 2*pad
	h := float32(laneHeight) - 2*pad
	vector.FillRect(screen, x+pad, y+pad, w, h, unitColor(u.Kind), false)
	drawHealthBar(screen, x+pad, y+pad-6, w, u.HP, u.MaxHP)
	text.Draw(screen, u.Kind.String()[:1], v.face, int(x+pad)+3, int(y+pad)+13, color.Black)
}

func drawEnemy(screen *ebiten.Image, en game.Enemy) {
	clr := enemyColor(en.Kind)
	if en.Dying {
		clr.A = 70
	}
	x := screenX(en.X)
	y := laneY(en.Lane)
	vector.FillRect(screen, x-12, y+14, 24, laneHeight-28, clr, false)
	if en.Engaged && !en.Dying {
		vector.StrokeRect(screen, x-13, y+13, 26, laneHeight-26, 2, color.RGBA{R: 255, G: 80, B: 60, A: 255}, false)
	}
	if !en.Dying {
		drawHealthBar(screen, x-12, y+8, 24, en.HP, en.MaxHP)
	}
}

func drawHealthBar(screen *ebiten.Image, x, y, w float32, hp, maxHP int) {
	if maxHP <= 0 {
		return
	}
	frac := float32(max(hp, 0)) / float32(maxHP)
	vector.FillRect(screen, x, y, w, 3, color.RGBA{R: 50, G: 20, B: 20, A: 220}, false)
	vector.FillRect(screen, x, y, w*frac, 3, color.RGBA{R: 90, G: 220, B: 90, A: 255}, false)
}

func (v *Viewer) hudLines(s *game.Snapshot) []string {
	lines := []string{
		fmt.Sprintf("policy %s  episode #%d  T=%d  level %d wave %d  spawned %d/%d  balance %d",
			v.ctl.Policy().Name(), len(v.ctl.Results())+1, s.Tick, s.Level, s.Wave, s.Spawned, s.Quota, s.Balance),
		fmt.Sprintf("SIM %s  P=pause  ,/. speed  N=next episode  C=copy summary  H=hide", speedLabel(v.simSpeed)),
	}
	if last, ok := v.ctl.Last(); ok {
		lines = append(lines, fmt.Sprintf("last: L%d W%d progress %d in %d ticks",
			last.Outcome.Level, last.Outcome.Wave, last.Outcome.Progress, last.Outcome.Ticks))
	}
	if v.status != "" && s.Tick-v.statusTick < 3*game.TicksPerSecond && s.Tick >= v.statusTick {
		lines = append(lines, v.status)
	}
	return lines
}

func (v *Viewer) drawHUD(screen *ebiten.Image, s *game.Snapshot) {
	vector.FillRect(screen, 0, 0, float32(v.fieldW), hudHeight, color.RGBA{R: 8, G: 12, B: 8, A: 230}, false)
	vector.StrokeLine(screen, 0, hudHeight-1, float32(v.fieldW), hudHeight-1, 1, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)
	for i, line := range v.hudLines(s) {
		text.Draw(screen, line, v.face, 8, 14+i*14, color.RGBA{R: 220, G: 225, B: 210, A: 255})
	}
}
