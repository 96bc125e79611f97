package game

import (
	"testing"
	"time"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func TestConvertSortedAndLaneBound(t *testing.T) {
	p := NewProcessor()
	raw := []RawNote{
		{Midi: 99, Time: 2.0, Duration: 0.1},
		{Midi: 96, Time: 0.5, Duration: 0.1},
		{Midi: 120, Time: 1.0, Duration: 0.1},
		{Midi: 0, Time: 1.2, Duration: 0.1},
		{Midi: 97, Time: 0.5, Duration: 0.1},
	}
	notes := p.Convert(raw, nil)
	if len(notes) != len(raw) {
		t.Log("length", len(notes))
		t.Fail()
	}
	for i, n := range notes {
		if i > 0 && notes[i-1].Time > n.Time {
			t.Log("unsorted at", i, notes[i-1].Time, n.Time)
			t.Fail()
		}
		if n.Lane < 0 || n.Lane >= p.LaneCount {
			t.Log("lane out of bounds", n.Lane)
			t.Fail()
		}
	}
	// Equal times keep their original order
	if notes[0].Pitch != 96 || notes[1].Pitch != 97 {
		t.Log("sort not stable:", notes[0].Pitch, notes[1].Pitch)
		t.Fail()
	}
}

func TestConvertKinds(t *testing.T) {
	p := NewProcessor()
	raw := []RawNote{
		{Midi: 96, Time: 0.0, Duration: 0.1},
		{Midi: 97, Time: 1.0, Duration: 0.301},
		{Midi: 98, Time: 2.0, Duration: 0.3},
		{Midi: 99, Time: 3.0, Duration: 0.05, Type: "slide"},
	}
	notes := p.Convert(raw, nil)
	expected := []NoteKind{KindTap, KindHold, KindTap, KindSlide}
	for i, k := range expected {
		if notes[i].Kind != k {
			t.Log("note", i, "kind", notes[i].Kind, "expected", k)
			t.Fail()
		}
	}
}

// Two notes sharing t=1.05 are not a distinct next time for the
// note at t=1.0; its duration caps against t=1.3 instead.
func TestConvertDuplicateTimeCapping(t *testing.T) {
	p := NewProcessor()
	raw := []RawNote{
		{Midi: 96, Time: 1.0},
		{Midi: 97, Time: 1.05},
		{Midi: 98, Time: 1.05},
		{Midi: 99, Time: 1.3},
	}
	notes := p.Convert(raw, nil)
	if notes[0].Duration != ms(230) {
		t.Log("duration", notes[0].Duration, "expected", ms(230))
		t.Fail()
	}
	// Final note with no duration gets the fixed default
	if notes[3].Duration != ms(200) {
		t.Log("final duration", notes[3].Duration, "expected", ms(200))
		t.Fail()
	}
}

func TestConvertDurationCapInvariant(t *testing.T) {
	p := NewProcessor()
	raw := []RawNote{
		{Midi: 96, Time: 0.0, Duration: 5.0},
		{Midi: 97, Time: 0.1},
		{Midi: 98, Time: 0.15},
		{Midi: 99, Time: 2.0},
	}
	notes := p.Convert(raw, nil)
	for i := 0; i < len(notes)-1; i++ {
		n := notes[i]
		if n.Kind == KindHold {
			continue
		}
		if n.Duration > ms(230) {
			t.Log("note", i, "duration above cap:", n.Duration)
			t.Fail()
		}
	}
}

func TestConvertReusesBuffer(t *testing.T) {
	p := NewProcessor()
	raw := []RawNote{
		{Midi: 96, Time: 0.0},
		{Midi: 97, Time: 1.0},
	}
	reuse := make([]Note, 0, 16)
	notes := p.Convert(raw, reuse)
	if cap(notes) != cap(reuse) {
		t.Log("buffer not reused, cap", cap(notes))
		t.Fail()
	}
	// Idempotent given identical input
	fresh := p.Convert(raw, nil)
	for i := range fresh {
		if fresh[i] != notes[i] {
			t.Log("not idempotent at", i)
			t.Fail()
		}
	}
}

func BenchmarkConvert(b *testing.B) {
	p := NewProcessor()
	raw := make([]RawNote, 1000)
	for i := range raw {
		raw[i] = RawNote{Midi: 96 + i%4, Time: float64(i) * 0.2, Duration: 0.1}
	}
	var notes []Note
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		notes = p.Convert(raw, notes)
	}
}
