package view

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

const (
	logPanelWidth = 340
	logMaxEntries = 80
	logLineHeight = 14
)

// EventEntry is a single line in the event panel.
type EventEntry struct {
	Tick     int
	Label    string // entity label, e.g. "U3", "E12", or "" for field events
	Category string
	Message  string
}

// EventLog is a ring buffer of recent simulation events rendered on-screen.
type EventLog struct {
	entries []EventEntry
	head    int
	count   int
}

// NewEventLog creates an event log with a fixed capacity.
func NewEventLog() *EventLog {
	return &EventLog{entries: make([]EventEntry, logMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (el *EventLog) Add(e EventEntry) {
	el.entries[el.head] = e
	el.head = (el.head + 1) % logMaxEntries
	if el.count < logMaxEntries {
		el.count++
	}
}

// AddSim mirrors a SimLog entry.
func (el *EventLog) AddSim(e game.SimLogEntry) {
	msg := e.Key
	if e.Value != "" {
		msg += " " + e.Value
	}
	el.Add(EventEntry{Tick: e.Tick, Label: e.Entity, Category: e.Category, Message: msg})
}

// Len is the number of retained entries.
func (el *EventLog) Len() int { return el.count }

// Recent returns entries oldest first.
func (el *EventLog) Recent() []EventEntry {
	out := make([]EventEntry, el.count)
	for i := 0; i < el.count; i++ {
		idx := (el.head - el.count + i + logMaxEntries) % logMaxEntries
		out[i] = el.entries[idx]
	}
	return out
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case "state", "fault":
		return color.RGBA{R: 220, G: 70, B: 60, A: 255}
	case "wave":
		return color.RGBA{R: 230, G: 200, B: 80, A: 255}
	case "unit":
		return color.RGBA{R: 210, G: 140, B: 70, A: 255}
	case "action":
		return color.RGBA{R: 90, G: 190, B: 110, A: 255}
	case "episode":
		return color.RGBA{R: 120, G: 160, B: 230, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

// Draw renders the panel at panelX, newest entries at the bottom.
func (el *EventLog) Draw(screen *ebiten.Image, face font.Face, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, logPanelWidth, float32(panelH), color.RGBA{R: 12, G: 14, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 60, G: 80, B: 50, A: 255}, false)
	vector.FillRect(screen, float32(panelX), 0, logPanelWidth, 18, color.RGBA{R: 24, G: 34, B: 20, A: 255}, false)
	text.Draw(screen, "EVENTS", face, panelX+8, 13, color.White)

	entries := el.Recent()
	maxVisible := (panelH - 26) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	y := 22
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), logPanelWidth-4, logLineHeight, color.RGBA{R: 30, G: 40, B: 28, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, categoryColor(e.Category), false)
		line := fmt.Sprintf("%5d %-4s %s", e.Tick, e.Label, e.Message)
		text.Draw(screen, line, face, panelX+12, y+11, color.RGBA{R: 210, G: 215, B: 205, A: 255})
		y += logLineHeight
	}
}
