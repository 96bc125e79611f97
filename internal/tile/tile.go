package tile

import (
	"time"

	"git.lost.host/meutraa/tilefall/internal/game"
)

type Status uint8

const (
	StatusWaiting Status = iota
	StatusActive
	StatusHolding
	StatusHit
	StatusMissed
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusHolding:
		return "holding"
	case StatusHit:
		return "hit"
	case StatusMissed:
		return "missed"
	case StatusExpired:
		return "expired"
	}
	return "waiting"
}

// Tile is the transient on-screen instance of exactly one note.
// Tiles live in the pool while Waiting and are lent to the
// lifecycle manager for the rest of their states.
type Tile struct {
	note   *game.Note
	status Status
	lane   int

	y                 float64
	movementStartY    float64
	movementEndY      float64
	movementStartTime time.Duration
	movementDuration  time.Duration

	touchStart   time.Duration
	touchEnd     time.Duration
	holdRating   game.Rating
	heldDistance float64

	skipped int // frames since last full position update

	slot       int
	generation uint32
}

func (t *Tile) Note() *game.Note { return t.note }
func (t *Tile) Status() Status   { return t.status }
func (t *Tile) Lane() int        { return t.lane }
func (t *Tile) Y() float64       { return t.y }
func (t *Tile) Handle() Handle   { return Handle{slot: t.slot, generation: t.generation} }

func (t *Tile) bind(n *game.Note, startY, endY float64, startTime, duration time.Duration) {
	t.note = n
	t.lane = n.Lane
	t.status = StatusActive
	t.y = startY
	t.movementStartY = startY
	t.movementEndY = endY
	t.movementStartTime = startTime
	t.movementDuration = duration
	t.touchStart = 0
	t.touchEnd = 0
	t.holdRating = game.RatingNone
	t.heldDistance = 0
	t.skipped = 0
}

// Advance recomputes the position as a pure function of game time.
// Movement is a linear interpolation, not a fire-and-forget
// animation, so miss detection can sample exact positions.
func (t *Tile) Advance(now time.Duration) {
	t.skipped = 0
	if now <= t.movementStartTime {
		t.y = t.movementStartY
		return
	}
	if t.movementDuration <= 0 {
		t.y = t.movementEndY
		return
	}
	r := float64(now-t.movementStartTime) / float64(t.movementDuration)
	if r > 1 {
		r = 1
	}
	t.y = t.movementStartY + (t.movementEndY-t.movementStartY)*r
}

// Tap evaluates a press. Only valid while Active; any other status
// is a no-op rating Miss. A press outside the cool window leaves
// the tile untouched so a better-timed press can still land.
func (t *Tile) Tap(now time.Duration, w game.Windows, compensation float64) game.Rating {
	if t.status != StatusActive {
		return game.RatingMiss
	}
	diff := now - t.note.Time
	rating := w.Rate(diff, compensation)
	if rating == game.RatingMiss {
		return game.RatingMiss
	}
	t.touchStart = now
	if t.note.Kind == game.KindHold {
		t.holdRating = rating
		t.status = StatusHolding
	} else {
		t.status = StatusHit
	}
	return rating
}

// Release resolves a hold by how closely the held duration matches
// the note duration. Only valid while Holding.
func (t *Tile) Release(now time.Duration, w game.HoldWindows, compensation float64) game.Rating {
	if t.status != StatusHolding {
		return game.RatingMiss
	}
	t.touchEnd = now
	held := now - t.touchStart
	ratio := 0.0
	if t.note.Duration > 0 {
		ratio = float64(held) / float64(t.note.Duration)
	}
	if ratio > 1 {
		ratio = 1
	}
	t.status = StatusHit
	return w.Rate(ratio, compensation)
}

// Miss transitions unconditionally; the caller reports the rating
// exactly once.
func (t *Tile) Miss() {
	t.status = StatusMissed
}

// HoldProgress measures held distance for the hold progress bar,
// monotonically increasing and clamped to the tile height.
func (t *Tile) HoldProgress(now time.Duration, height float64) float64 {
	if t.status != StatusHolding || t.note.Duration <= 0 {
		return t.heldDistance
	}
	d := float64(now-t.touchStart) / float64(t.note.Duration) * height
	if d > height {
		d = height
	}
	if d > t.heldDistance {
		t.heldDistance = d
	}
	return t.heldDistance
}
