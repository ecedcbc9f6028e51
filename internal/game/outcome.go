package game

import "fmt"

// Outcome is what an episode reports to the adaptation layer.
type Outcome struct {
	Level int
	Wave  int
	// Progress is (Level-1)*wavesPerLevel + Wave.
	Progress int
	Ticks    int
	Stats    Stats
}

// ProgressOf flattens (level, wave) into a single score.
func ProgressOf(level, wave, wavesPerLevel int) int {
	return (level-1)*wavesPerLevel + wave
}

// Band buckets episode progress for weight adaptation.
type Band int

const (
	BandVeryEarly Band = iota
	BandEarly
	BandModerate
	BandStrong
)

func (b Band) String() string {
	switch b {
	case BandVeryEarly:
		return "very_early"
	case BandEarly:
		return "early"
	case BandModerate:
		return "moderate"
	case BandStrong:
		return "strong"
	default:
		return "unknown"
	}
}

// BandOf maps a progress score to its band.
func BandOf(progress int) Band {
	switch {
	case progress < 3:
		return BandVeryEarly
	case progress < 7:
		return BandEarly
	case progress < 12:
		return BandModerate
	default:
		return BandStrong
	}
}

// Band returns the outcome's progress band.
func (o Outcome) Band() Band { return BandOf(o.Progress) }

func (o Outcome) String() string {
	return fmt.Sprintf("level %d wave %d (progress %d, %s) after %d ticks",
		o.Level, o.Wave, o.Progress, o.Band(), o.Ticks)
}
