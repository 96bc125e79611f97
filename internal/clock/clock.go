// Package clock estimates elapsed playback time without querying
// the audio backend every frame. Backend queries are jittery and
// comparatively expensive, so the clock dead-reckons on the wall
// clock and blends toward the authoritative time periodically.
package clock

import (
	"log"
	"time"
)

// Source is the authoritative playback clock, typically an audio
// stream. A negative CurrentTime signals a backend anomaly.
type Source interface {
	CurrentTime() time.Duration
	Playing() bool
}

type AudioClock struct {
	source Source
	now    func() time.Time

	seeded     bool
	estimate   time.Duration
	lastWall   time.Time
	lastActual time.Duration

	calls    int
	interval int
	blend    float64
}

func New(source Source) *AudioClock {
	return &AudioClock{
		source:   source,
		now:      time.Now,
		interval: 30,
		blend:    0.05,
	}
}

// SetCorrectionInterval adjusts how many estimates pass between
// corrections against the source. The performance monitor raises
// this under load.
func (c *AudioClock) SetCorrectionInterval(n int) {
	if n < 1 {
		n = 1
	}
	c.interval = n
}

// SetNow replaces the wall clock, for tests.
func (c *AudioClock) SetNow(now func() time.Time) {
	c.now = now
}

// Estimate returns the smoothed elapsed playback time. The result
// never decreases while the source is playing; anomalous source
// readings freeze the correction rather than propagate.
func (c *AudioClock) Estimate() time.Duration {
	wall := c.now()

	if !c.seeded {
		actual := c.source.CurrentTime()
		if actual < 0 {
			// Backend not ready, report zero until it is.
			return 0
		}
		c.seeded = true
		c.estimate = actual
		c.lastActual = actual
		c.lastWall = wall
		return c.estimate
	}

	delta := wall.Sub(c.lastWall)
	c.lastWall = wall
	if !c.source.Playing() {
		return c.estimate
	}
	c.estimate += delta

	c.calls++
	if c.calls%c.interval == 0 {
		c.correct()
	}
	return c.estimate
}

func (c *AudioClock) correct() {
	actual := c.source.CurrentTime()
	if actual < 0 || actual < c.lastActual {
		log.Printf("audio clock anomaly: backend reported %v after %v", actual, c.lastActual)
		return
	}
	c.lastActual = actual

	blended := time.Duration((1-c.blend)*float64(c.estimate) + c.blend*float64(actual))
	// Converge without ever running backwards: if the backend is
	// behind the estimate, hold position until it catches up.
	if blended > c.estimate {
		c.estimate = blended
	}
}
