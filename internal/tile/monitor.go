package tile

import (
	"time"
)

type Tier uint8

const (
	TierHigh Tier = iota
	TierMedium
	TierLow
)

const monitorWindow = 60

// Monitor tracks a rolling average frame rate and buckets it into
// three tiers. The tiers scale the per-frame update budget and
// the audio clock correction interval, trading timing precision
// for frame-rate stability under load.
type Monitor struct {
	samples [monitorWindow]time.Duration
	sum     time.Duration
	index   int
	count   int
}

func (m *Monitor) Sample(dt time.Duration) {
	if dt <= 0 {
		return
	}
	if m.count == monitorWindow {
		m.sum -= m.samples[m.index]
	} else {
		m.count++
	}
	m.samples[m.index] = dt
	m.sum += dt
	m.index = (m.index + 1) % monitorWindow
}

func (m *Monitor) FPS() float64 {
	if m.count == 0 || m.sum <= 0 {
		return 60
	}
	avg := m.sum / time.Duration(m.count)
	return float64(time.Second) / float64(avg)
}

func (m *Monitor) Tier() Tier {
	fps := m.FPS()
	switch {
	case fps >= 50:
		return TierHigh
	case fps >= 30:
		return TierMedium
	}
	return TierLow
}

// Budget scales the per-frame full-update budget by tier.
func (m *Monitor) Budget(base int) int {
	b := base
	switch m.Tier() {
	case TierMedium:
		b = base * 2 / 3
	case TierLow:
		b = base / 2
	}
	if b < 1 {
		b = 1
	}
	return b
}

// CorrectionInterval stretches the clock correction interval when
// frames are slow, fewer backend queries under load.
func (m *Monitor) CorrectionInterval(base int) int {
	switch m.Tier() {
	case TierMedium:
		return base * 2
	case TierLow:
		return base * 3
	}
	return base
}
