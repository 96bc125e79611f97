package tile

import (
	"testing"

	"git.lost.host/meutraa/tilefall/internal/game"
)

func TestPoolConservation(t *testing.T) {
	p := NewPool(4, 4)
	out := []*Tile{}
	for {
		tl, ok := p.Acquire()
		if !ok {
			break
		}
		out = append(out, tl)
		if p.Free()+len(out) != p.Size() {
			t.Log("free", p.Free(), "lent", len(out), "size", p.Size())
			t.Fail()
		}
	}
	if len(out) != 4 {
		t.Log("acquired", len(out))
		t.Fail()
	}
	for _, tl := range out {
		p.Release(tl)
	}
	if p.Free() != p.Size() {
		t.Log("free after releasing all", p.Free())
		t.Fail()
	}
}

func TestPoolGrowsToMax(t *testing.T) {
	p := NewPool(1, 3)
	for i := 0; i < 3; i++ {
		if _, ok := p.Acquire(); !ok {
			t.Log("acquire", i, "failed below max")
			t.Fail()
		}
	}
	if _, ok := p.Acquire(); ok {
		t.Log("acquire succeeded past max")
		t.Fail()
	}
	if p.Size() != 3 {
		t.Log("size", p.Size())
		t.Fail()
	}
}

func TestPoolHandleInvalidation(t *testing.T) {
	p := NewPool(1, 1)
	tl, _ := p.Acquire()
	tl.bind(&game.Note{}, 0, 10, 0, 1)
	h := tl.Handle()
	if _, ok := p.Resolve(h); !ok {
		t.Log("live handle did not resolve")
		t.Fail()
	}
	p.Release(tl)
	if _, ok := p.Resolve(h); ok {
		t.Log("stale handle resolved after recycle")
		t.Fail()
	}
	// The note reference is cleared on recycle
	if tl.Note() != nil {
		t.Log("note reference survived recycle")
		t.Fail()
	}
}
