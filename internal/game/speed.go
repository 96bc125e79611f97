package game

import (
	"time"
)

// SpeedCalculator derives a scroll speed from note density.
// Denser sequences fall slower to preserve reaction time, and
// long holds slow the field slightly.
type SpeedCalculator struct {
	// Multiplier is an engine tuning constant, not a law.
	// Observed sensible values sit between 2.5 and 4.
	Multiplier float64
}

func NewSpeedCalculator() *SpeedCalculator {
	return &SpeedCalculator{Multiplier: 3.0}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Speed computes units-per-second from sorted notes. Fewer than
// two notes degenerates to the default speed.
func (c *SpeedCalculator) Speed(notes []Note, defaultSpeed float64) float64 {
	if len(notes) < 2 {
		return defaultSpeed * c.Multiplier
	}

	minGap := time.Duration(0)
	var gapSum time.Duration
	var maxDuration time.Duration
	for i := 1; i < len(notes); i++ {
		gap := notes[i].Time - notes[i-1].Time
		gapSum += gap
		if gap > 0 && (minGap == 0 || gap < minGap) {
			minGap = gap
		}
		if notes[i-1].Duration > maxDuration {
			maxDuration = notes[i-1].Duration
		}
	}
	if d := notes[len(notes)-1].Duration; d > maxDuration {
		maxDuration = d
	}
	avgGap := gapSum / time.Duration(len(notes)-1)

	speedFactor := clampf(minGap.Seconds()*0.7+0.3, 0, 1)
	avgFactor := clampf(avgGap.Seconds()*0.5+0.5, 0, 1)
	durationFactor := 1 - maxDuration.Seconds()*0.1
	if durationFactor < 0.7 {
		durationFactor = 0.7
	}

	combined := 0.6*speedFactor + 0.25*avgFactor + 0.15*durationFactor
	speed := clampf(defaultSpeed*combined, 0.5*defaultSpeed, 1.5*defaultSpeed)
	return speed * c.Multiplier
}
