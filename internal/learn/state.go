package learn

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Garsondee/Lawn-Sense/internal/game"
)

// Bin thresholds: a value's bin is the number of thresholds it reaches.
var (
	resourceBins = []int{50, 150, 300, 500}
	enemyBins    = []int{1, 3, 5, 10}
	waveBins     = []int{1, 3, 5, 10}
)

const maxLaneCount = 9

// StateKey is the discretised view of a snapshot used to index the value
// table. It is comparable and encodes to a stable text form for persistence.
type StateKey struct {
	Resource int
	Enemies  int
	// Wave bins the wave within the current level.
	Wave int
	// Lanes holds one digit per row: units in that row, capped at 9.
	Lanes string
}

// Discretize maps a snapshot onto its StateKey.
func Discretize(s *game.Snapshot) StateKey {
	var lanes strings.Builder
	for row := 0; row < s.Rows(); row++ {
		n := s.LaneUnits(row)
		if n > maxLaneCount {
			n = maxLaneCount
		}
		lanes.WriteByte(byte('0' + n))
	}
	return StateKey{
		Resource: binOf(s.Balance, resourceBins),
		Enemies:  binOf(s.LiveEnemies(), enemyBins),
		Wave:     binOf(s.Wave, waveBins),
		Lanes:    lanes.String(),
	}
}

func binOf(v int, thresholds []int) int {
	n := 0
	for _, t := range thresholds {
		if v >= t {
			n++
		}
	}
	return n
}

func (k StateKey) String() string {
	return fmt.Sprintf("r%d|e%d|w%d|%s", k.Resource, k.Enemies, k.Wave, k.Lanes)
}

func (k StateKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *StateKey) UnmarshalText(b []byte) error {
	parts := strings.Split(string(b), "|")
	if len(parts) != 4 {
		return fmt.Errorf("state key %q: want 4 fields", b)
	}
	var out StateKey
	for i, dst := range []*int{&out.Resource, &out.Enemies, &out.Wave} {
		if len(parts[i]) < 2 {
			return fmt.Errorf("state key %q: field %d too short", b, i)
		}
		v, err := strconv.Atoi(parts[i][1:])
		if err != nil {
			return fmt.Errorf("state key %q: %w", b, err)
		}
		*dst = v
	}
	for _, c := range parts[3] {
		if c < '0' || c > '9' {
			return fmt.Errorf("state key %q: bad lane digit %q", b, c)
		}
	}
	out.Lanes = parts[3]
	*k = out
	return nil
}

// Macro is a coarse action the value table chooses between. Each resolves
// to a concrete game.Action against a snapshot.
type Macro int

const (
	MacroWait Macro = iota
	MacroCollect
	MacroSunflowerBack
	MacroPeashooterMid
	MacroWallnutFront
	MacroRepeaterMid
	macroCount
)

// AllMacros returns every macro in tie-break order.
func AllMacros() []Macro {
	ms := make([]Macro, macroCount)
	for i := range ms {
		ms[i] = Macro(i)
	}
	return ms
}

func (m Macro) String() string {
	switch m {
	case MacroWait:
		return "wait"
	case MacroCollect:
		return "collect"
	case MacroSunflowerBack:
		return "sunflower_back"
	case MacroPeashooterMid:
		return "peashooter_mid"
	case MacroWallnutFront:
		return "wallnut_front"
	case MacroRepeaterMid:
		return "repeater_mid"
	default:
		return "unknown"
	}
}

func (m Macro) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Macro) UnmarshalText(b []byte) error {
	for _, c := range AllMacros() {
		if c.String() == string(b) {
			*m = c
			return nil
		}
	}
	return fmt.Errorf("unknown macro %q", b)
}

type band struct {
	kind game.UnitKind
	cols []int
}

var macroBands = map[Macro]band{
	MacroSunflowerBack: {game.UnitSunflower, []int{0, 1}},
	MacroPeashooterMid: {game.UnitPeashooter, []int{2, 3, 4}},
	MacroWallnutFront:  {game.UnitWallnut, []int{6, 7}},
	MacroRepeaterMid:   {game.UnitRepeater, []int{2, 3, 4}},
}

// Resolve turns m into a concrete action, or false when it is not legal in s.
// Placement macros pick the first empty cell in their column band, scanning
// columns then rows.
func Resolve(s *game.Snapshot, m Macro) (game.Action, bool) {
	switch m {
	case MacroWait:
		return game.Wait(), true
	case MacroCollect:
		c, ok := s.FirstCollectible()
		if !ok {
			return game.Action{}, false
		}
		return game.Collect(c.ID), true
	}
	b, ok := macroBands[m]
	if !ok || !s.Affordable(b.kind) {
		return game.Action{}, false
	}
	for _, col := range b.cols {
		for row := 0; row < s.Rows(); row++ {
			if !s.Occupied(col, row) {
				return game.Place(b.kind, col, row), true
			}
		}
	}
	return game.Action{}, false
}

// Legal lists the macros that resolve in s, in tie-break order. Wait is
// always legal.
func Legal(s *game.Snapshot) []Macro {
	out := make([]Macro, 0, macroCount)
	for _, m := range AllMacros() {
		if _, ok := Resolve(s, m); ok {
			out = append(out, m)
		}
	}
	return out
}
