package tile

// Pool is a slot arena of reusable tiles. Acquire and release are
// O(1) via a free list, and generation counters invalidate stale
// handles to recycled tiles.
type Pool struct {
	tiles []*Tile
	free  []int
	max   int
}

// Handle refers to a pooled tile at a specific generation. Resolve
// fails once the tile has been recycled.
type Handle struct {
	slot       int
	generation uint32
}

func NewPool(size, max int) *Pool {
	if size < 1 {
		size = 1
	}
	if max < size {
		max = size
	}
	p := &Pool{
		tiles: make([]*Tile, 0, size),
		free:  make([]int, 0, size),
		max:   max,
	}
	for i := 0; i < size; i++ {
		p.grow()
	}
	return p
}

func (p *Pool) grow() {
	slot := len(p.tiles)
	p.tiles = append(p.tiles, &Tile{slot: slot})
	p.free = append(p.free, slot)
}

// Acquire lends a waiting tile out of the pool, growing by one
// when empty and below the maximum. Reports false on exhaustion.
func (p *Pool) Acquire() (*Tile, bool) {
	if len(p.free) == 0 {
		if len(p.tiles) >= p.max {
			return nil, false
		}
		p.grow()
	}
	slot := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	return p.tiles[slot], true
}

// Release returns a tile to the pool. The note reference is
// cleared so no dangling cross-reference survives recycling.
func (p *Pool) Release(t *Tile) {
	t.note = nil
	t.status = StatusWaiting
	t.generation++
	p.free = append(p.free, t.slot)
}

// Resolve returns the tile for a handle if it has not been
// recycled since the handle was taken.
func (p *Pool) Resolve(h Handle) (*Tile, bool) {
	if h.slot < 0 || h.slot >= len(p.tiles) {
		return nil, false
	}
	t := p.tiles[h.slot]
	if t.generation != h.generation || t.status == StatusWaiting {
		return nil, false
	}
	return t, true
}

func (p *Pool) Free() int { return len(p.free) }
func (p *Pool) Size() int { return len(p.tiles) }
func (p *Pool) Max() int  { return p.max }
