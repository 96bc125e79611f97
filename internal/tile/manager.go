// Package tile owns the lifecycle of on-screen tiles: spawning
// ahead of their hit time, driving their position from the audio
// clock, detecting misses, recycling into the pool and answering
// per-lane hit queries.
package tile

import (
	"log"
	"sort"
	"time"

	"git.lost.host/meutraa/tilefall/internal/game"
)

// Clock supplies the authoritative game time. When nil, the
// manager falls back to integrating frame deltas.
type Clock interface {
	Estimate() time.Duration
}

// RatingFunc receives resolved note ratings. Observers are
// fire-and-forget and must not call back into the manager.
type RatingFunc func(lane int, rating game.Rating)

type Geometry struct {
	SpawnY         float64 // where tiles appear
	TargetY        float64 // the hit line
	MissY          float64 // active tiles past this are missed
	RecycleY       float64 // tiles past this return to the pool
	TileHeight     float64
	MovementBuffer float64 // extra travel past the recycle line
}

type Config struct {
	Lanes        int
	Geometry     Geometry
	ScrollSpeed  float64 // units per second
	LookAhead    time.Duration
	PoolSize     int
	MaxPoolSize  int
	Windows      game.Windows
	HoldWindows  game.HoldWindows
	UpdateBudget int
	Autoplay     bool
}

// A tile may skip at most this many position updates in a row
// when the frame budget is exceeded.
const maxSkippedFrames = 3

type Manager struct {
	cfg      Config
	clock    Clock
	onRating RatingFunc

	pool    *Pool
	monitor Monitor

	notes  []game.Note
	next   int
	active []*Tile
	held   map[int]Handle

	gameTime time.Duration
	frameDt  time.Duration
	starved  bool
}

func NewManager(cfg Config, clk Clock, onRating RatingFunc) *Manager {
	if cfg.Lanes < 1 {
		cfg.Lanes = 4
	}
	if cfg.Windows == (game.Windows{}) {
		cfg.Windows = game.DefaultWindows()
	}
	if cfg.HoldWindows == (game.HoldWindows{}) {
		cfg.HoldWindows = game.DefaultHoldWindows()
	}
	if cfg.UpdateBudget < 1 {
		cfg.UpdateBudget = 24
	}
	if cfg.ScrollSpeed <= 0 {
		cfg.ScrollSpeed = 36
	}
	if cfg.PoolSize < 1 {
		cfg.PoolSize = 32
	}
	if cfg.MaxPoolSize < cfg.PoolSize {
		cfg.MaxPoolSize = cfg.PoolSize
	}
	return &Manager{
		cfg:      cfg,
		clock:    clk,
		onRating: onRating,
		pool:     NewPool(cfg.PoolSize, cfg.MaxPoolSize),
		held:     map[int]Handle{},
	}
}

// Load binds a processed, time-sorted note sequence and resets all
// play state. The pool is enlarged up front from an estimate of
// simultaneously visible tiles so play does not allocate.
func (m *Manager) Load(notes []game.Note) {
	m.notes = notes
	m.next = 0
	m.active = m.active[:0]
	m.held = map[int]Handle{}
	m.gameTime = 0
	m.starved = false

	g := m.cfg.Geometry
	if len(notes) > 1 && m.cfg.ScrollSpeed > 0 {
		span := notes[len(notes)-1].Time - notes[0].Time
		avgGap := span / time.Duration(len(notes)-1)
		perNote := m.cfg.ScrollSpeed * avgGap.Seconds()
		if perNote > 0 {
			visible := g.RecycleY - g.SpawnY
			est := int(visible/perNote) + 1
			for m.pool.Size() < est && m.pool.Size() < m.pool.max {
				m.pool.grow()
			}
		}
	}
}

func (m *Manager) Active() []*Tile         { return m.active }
func (m *Manager) GameTime() time.Duration { return m.gameTime }
func (m *Manager) Monitor() *Monitor       { return &m.monitor }
func (m *Manager) Pool() *Pool             { return m.pool }

// Done reports whether every note has been spawned and resolved.
func (m *Manager) Done() bool {
	return m.next >= len(m.notes) && len(m.active) == 0
}

// Tick advances one frame: clock, spawning, positions, misses,
// recycling, strictly in that order. A tile is never recycled in
// the tick it was spawned, and misses are detected before a stale
// tile can occupy a recycled slot.
func (m *Manager) Tick(dt time.Duration) {
	m.frameDt = dt
	m.monitor.Sample(dt)
	if nil != m.clock {
		m.gameTime = m.clock.Estimate()
	} else {
		m.gameTime += dt
	}
	m.spawnDue()
	m.updatePositions()
	if m.cfg.Autoplay {
		m.autoplay()
	}
	m.detectMisses()
	m.recycle()
}

func (m *Manager) emit(lane int, r game.Rating) {
	if nil != m.onRating {
		m.onRating(lane, r)
	}
}

// spawnDue binds tiles to every note inside the look-ahead
// window. Pool exhaustion applies backpressure: the note stays
// queued for the next tick, and only once its hit window has
// passed entirely unspawned does it score a Miss.
func (m *Manager) spawnDue() {
	g := m.cfg.Geometry
	total := (g.RecycleY - g.SpawnY) + g.TileHeight + g.MovementBuffer
	toTarget := g.TargetY - g.SpawnY
	travelTotal := time.Duration(total / m.cfg.ScrollSpeed * float64(time.Second))
	travelToTarget := time.Duration(toTarget / m.cfg.ScrollSpeed * float64(time.Second))

	for m.next < len(m.notes) {
		n := &m.notes[m.next]
		if n.Time > m.gameTime+m.cfg.LookAhead {
			break
		}
		if n.Time+m.cfg.Windows.Cool < m.gameTime {
			// Never spawned and no longer hittable.
			m.emit(n.Lane, game.RatingMiss)
			m.next++
			continue
		}
		t, ok := m.pool.Acquire()
		if !ok {
			if !m.starved {
				log.Printf("tile pool exhausted at %v tiles, delaying spawn", m.pool.Size())
				m.starved = true
			}
			break
		}
		m.starved = false
		// Schedule so the tile reaches the target exactly at the
		// hit instant. A start time already in the past simply
		// begins the interpolation part-way through.
		start := n.Time - travelToTarget
		t.bind(n, g.SpawnY, g.SpawnY+total, start, travelTotal)
		t.Advance(m.gameTime)
		m.active = append(m.active, t)
		m.next++
	}
}

// nearLine tiles are always updated in full so miss detection at
// the hit line never degrades, whatever the frame budget.
func (m *Manager) nearLine(t *Tile) bool {
	d := t.note.Time - m.gameTime
	if d < 0 {
		d = -d
	}
	return d <= 2*m.cfg.Windows.Cool
}

func (m *Manager) updatePositions() {
	budget := m.monitor.Budget(m.cfg.UpdateBudget)
	if len(m.active) <= budget {
		for _, t := range m.active {
			t.Advance(m.gameTime)
		}
		return
	}
	// Over budget: the tiles nearest their hit instant are updated
	// first, the rest drain over subsequent frames but are never
	// starved past maxSkippedFrames.
	sort.SliceStable(m.active, func(i, j int) bool {
		di := m.active[i].note.Time - m.gameTime
		if di < 0 {
			di = -di
		}
		dj := m.active[j].note.Time - m.gameTime
		if dj < 0 {
			dj = -dj
		}
		return di < dj
	})
	for i, t := range m.active {
		if i < budget || t.skipped >= maxSkippedFrames || m.nearLine(t) {
			t.Advance(m.gameTime)
		} else {
			t.skipped++
		}
	}
}

// autoplay taps and releases tiles at their exact note times.
func (m *Manager) autoplay() {
	for _, t := range m.active {
		if t.status != StatusActive || t.note.Time > m.gameTime {
			continue
		}
		r := t.Tap(t.note.Time, m.cfg.Windows, 1.0)
		if t.status == StatusHolding {
			m.held[t.lane] = t.Handle()
		} else {
			m.emit(t.lane, r)
		}
	}
	for lane, h := range m.held {
		t, ok := m.pool.Resolve(h)
		if !ok {
			delete(m.held, lane)
			continue
		}
		if t.status == StatusHolding && m.gameTime >= t.note.End() {
			r := t.Release(t.note.End(), m.cfg.HoldWindows, 1.0)
			delete(m.held, lane)
			m.emit(lane, r)
		}
	}
}

func (m *Manager) detectMisses() {
	for _, t := range m.active {
		if t.status == StatusActive && t.y > m.cfg.Geometry.MissY {
			t.Miss()
			m.emit(t.lane, game.RatingMiss)
		}
	}
}

// recycle is unconditional: any tile past the recycle line goes
// back to the pool whatever its status, or the pool starves. An
// open hold is released first so no held-lane entry survives.
func (m *Manager) recycle() {
	g := m.cfg.Geometry
	comp := m.cfg.Windows.Compensation(m.frameDt)
	keep := m.active[:0]
	for _, t := range m.active {
		if t.y < g.RecycleY+g.TileHeight {
			keep = append(keep, t)
			continue
		}
		switch t.status {
		case StatusHolding:
			r := t.Release(m.gameTime, m.cfg.HoldWindows, comp)
			if h, ok := m.held[t.lane]; ok && h == t.Handle() {
				delete(m.held, t.lane)
			}
			m.emit(t.lane, r)
		case StatusActive:
			// Miss detection should already have fired; a tile
			// recycled unresolved is marked so rather than hit.
			t.status = StatusExpired
		}
		m.pool.Release(t)
	}
	m.active = keep
}

// HandleLaneTouch routes a press or release on a lane to the best
// candidate tile. Presses select the active tile whose note time
// is closest to now; releases resolve the remembered hold. A
// press that lands on nothing returns Miss without consuming a
// note.
func (m *Manager) HandleLaneTouch(lane int, start bool) game.Rating {
	comp := m.cfg.Windows.Compensation(m.frameDt)

	if !start {
		h, ok := m.held[lane]
		if !ok {
			return game.RatingMiss
		}
		delete(m.held, lane)
		t, ok := m.pool.Resolve(h)
		if !ok {
			return game.RatingMiss
		}
		r := t.Release(m.gameTime, m.cfg.HoldWindows, comp)
		m.emit(lane, r)
		return r
	}

	var best *Tile
	var bestDiff time.Duration
	for _, t := range m.active {
		if t.lane != lane || t.status != StatusActive {
			continue
		}
		d := t.note.Time - m.gameTime
		if d < 0 {
			d = -d
		}
		if nil == best || d < bestDiff {
			best, bestDiff = t, d
		}
	}
	if nil == best {
		return game.RatingMiss
	}
	r := best.Tap(m.gameTime, m.cfg.Windows, comp)
	switch {
	case best.status == StatusHolding:
		m.held[lane] = best.Handle()
	case r != game.RatingMiss:
		m.emit(lane, r)
	}
	return r
}
