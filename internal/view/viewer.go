// Package view renders a training run in an ebiten window: the lawn, the
// current episode's units and enemies, a HUD, and a scrolling event panel.
package view

import (
	"fmt"
	"image/color"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Lawn-Sense/internal/episode"
	"github.com/Garsondee/Lawn-Sense/internal/game"
)

const (
	laneHeight = 96
	hudHeight  = 64
	fieldPadX  = 20
)

// speeds are the selectable simulation multipliers; 0 pauses.
var speeds = []float64{0, 0.5, 1, 2, 4, 8}

// Viewer implements ebiten.Game on top of an episode controller.
type Viewer struct {
	ctl    *episode.Controller
	events *EventLog
	face   font.Face
	logger *slog.Logger

	fieldW int
	width  int
	height int

	simSpeed  float64
	tickAccum float64
	prevKeys  map[ebiten.Key]bool
	showHUD   bool

	logCursor int // SimLog entries already mirrored into events

	status     string
	statusTick int

	copyText func(string) error
}

// New builds a viewer for ctl.
func New(ctl *episode.Controller, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	cfg := ctl.Engine().Config()
	fieldW := int(cfg.SpawnX) + 2*fieldPadX
	v := &Viewer{
		ctl:      ctl,
		events:   NewEventLog(),
		face:     basicfont.Face7x13,
		logger:   logger,
		fieldW:   fieldW,
		width:    fieldW + logPanelWidth,
		height:   hudHeight + cfg.Rows*laneHeight,
		simSpeed: 1,
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
		copyText: clipboard.WriteAll,
	}
	return v
}

// Size returns the window size the viewer lays out to.
func (v *Viewer) Size() (int, int) { return v.width, v.height }

func (v *Viewer) Update() error {
	v.handleInput()
	if v.simSpeed <= 0 {
		return nil
	}
	v.tickAccum += v.simSpeed
	for v.tickAccum >= 1.0 {
		v.tickAccum -= 1.0
		v.step()
	}
	return nil
}

// step advances the controller one tick and mirrors new events.
func (v *Viewer) step() {
	r, done := v.ctl.Tick()
	v.syncEvents()
	if done {
		v.events.Add(EventEntry{
			Tick:     r.Outcome.Ticks,
			Label:    "--",
			Category: "episode",
			Message:  fmt.Sprintf("#%d end L%d W%d progress %d", r.Index, r.Outcome.Level, r.Outcome.Wave, r.Outcome.Progress),
		})
		// The next Tick resets the engine and its log.
		v.logCursor = 0
	}
}

func (v *Viewer) syncEvents() {
	entries := v.ctl.Engine().SimLog().Entries()
	if v.logCursor > len(entries) {
		v.logCursor = 0
	}
	for _, e := range entries[v.logCursor:] {
		v.events.AddSim(e)
	}
	v.logCursor = len(entries)
}

func (v *Viewer) pressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !v.prevKeys[k]
}

// handleInput processes edge-triggered key presses.
func (v *Viewer) handleInput() {
	cur := map[ebiten.Key]bool{}
	if v.pressed(cur, ebiten.KeyP) {
		v.togglePause()
	}
	if v.pressed(cur, ebiten.KeyComma) {
		v.slower()
	}
	if v.pressed(cur, ebiten.KeyPeriod) {
		v.faster()
	}
	if v.pressed(cur, ebiten.KeyH) {
		v.showHUD = !v.showHUD
	}
	if v.pressed(cur, ebiten.KeyC) {
		v.copySummary()
	}
	if v.pressed(cur, ebiten.KeyN) {
		v.ctl.Abandon()
		v.logCursor = 0
		v.setStatus("episode abandoned")
	}
	v.prevKeys = cur
}

func (v *Viewer) togglePause() {
	if v.simSpeed > 0 {
		v.simSpeed = 0
	} else {
		v.simSpeed = 1
	}
}

func (v *Viewer) slower() {
	for i := len(speeds) - 1; i > 0; i-- {
		if speeds[i] <= v.simSpeed {
			v.simSpeed = speeds[i-1]
			return
		}
	}
}

func (v *Viewer) faster() {
	for _, s := range speeds {
		if s > v.simSpeed {
			v.simSpeed = s
			return
		}
	}
}

func (v *Viewer) setStatus(msg string) {
	v.status = msg
	v.statusTick = v.ctl.Engine().Tick()
}

// Summary is the text copied to the clipboard: the current field state and
// the results of every finished episode.
func (v *Viewer) Summary() string {
	var b strings.Builder
	e := v.ctl.Engine()
	fmt.Fprintf(&b, "policy=%s episode=%s\n", v.ctl.Policy().Name(), v.ctl.EpisodeID())
	b.WriteString(e.SimLog().Summary(e.Snapshot()))
	results := v.ctl.Results()
	if len(results) > 0 {
		b.WriteString("--- Episodes ---\n")
		for _, r := range results {
			b.WriteString(episode.FormatResult(r))
			b.WriteByte('\n')
		}
		b.WriteString(episode.Summarise(results, 10).Format())
	}
	return b.String()
}

func (v *Viewer) copySummary() {
	if err := v.copyText(v.Summary()); err != nil {
		v.logger.Warn("clipboard copy failed", "error", err)
		v.setStatus("copy failed")
		return
	}
	v.setStatus("summary copied")
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 14, G: 16, B: 12, A: 255})
	s := v.ctl.Engine().Snapshot()
	v.drawField(screen, s)
	v.events.Draw(screen, v.face, v.fieldW, v.height)
	if v.showHUD {
		v.drawHUD(screen, s)
	}
}

func (v *Viewer) Layout(_, _ int) (int, int) {
	return v.width, v.height
}

var _ ebiten.Game = (*Viewer)(nil)

// speedLabel renders the current multiplier for the HUD.
func speedLabel(speed float64) string {
	switch speed {
	case 0:
		return "PAUSED"
	case 0.5:
		return "0.5x"
	default:
		return fmt.Sprintf("%.0fx", speed)
	}
}

// laneY is the top edge of row on screen.
func laneY(row int) float32 { return float32(hudHeight + row*laneHeight) }

// screenX maps a simulation x coordinate to the screen.
func screenX(x float64) float32 { return float32(x) + fieldPadX }

func unitColor(k game.UnitKind) color.RGBA {
	switch k {
	case game.UnitSunflower:
		return color.RGBA{R: 240, G: 210, B: 60, A: 255}
	case game.UnitPeashooter:
		return color.RGBA{R: 80, G: 200, B: 80, A: 255}
	case game.UnitWallnut:
		return color.RGBA{R: 160, G: 110, B: 60, A: 255}
	case game.UnitRepeater:
		return color.RGBA{R: 40, G: 150, B: 90, A: 255}
	default:
		return color.RGBA{R: 200, G: 200, B: 200, A: 255}
	}
}

func enemyColor(k game.EnemyKind) color.RGBA {
	switch k {
	case game.EnemyCone:
		return color.RGBA{R: 220, G: 130, B: 50, A: 255}
	case game.EnemyFootball:
		return color.RGBA{R: 200, G: 50, B: 50, A: 255}
	default:
		return color.RGBA{R: 130, G: 140, B: 160, A: 255}
	}
}
