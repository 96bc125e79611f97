package game

import (
	"log"
	"sort"
	"time"
)

// Processor converts imported raw notes into gameplay notes:
// lane assignment, tap/hold classification, stable time ordering
// and effective on-screen duration.
type Processor struct {
	LaneCount   int
	PitchOffset int // MIDI pitch of lane 0, an export convention

	HoldThreshold time.Duration // raw durations above this are holds
	TapCap        time.Duration // longest effective tap duration
	FinalDuration time.Duration // fallback for the last note
}

func NewProcessor() *Processor {
	return &Processor{
		LaneCount:     4,
		PitchOffset:   96,
		HoldThreshold: 300 * time.Millisecond,
		TapCap:        230 * time.Millisecond,
		FinalDuration: 200 * time.Millisecond,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Convert maps raw notes into the destination buffer, reusing its
// capacity where possible. Idempotent given identical input.
func (p *Processor) Convert(raw []RawNote, reuse []Note) []Note {
	notes := reuse[:0]

	for _, r := range raw {
		lane := r.Midi - p.PitchOffset
		if lane < 0 || lane >= p.LaneCount {
			log.Printf("note at %.3fs: pitch %v maps outside lanes, clamping", r.Time, r.Midi)
			if lane < 0 {
				lane = 0
			} else {
				lane = p.LaneCount - 1
			}
		}
		d := seconds(r.Duration)
		kind := KindTap
		switch {
		case r.Type == "slide":
			kind = KindSlide
		case d > p.HoldThreshold:
			kind = KindHold
		}
		notes = append(notes, Note{
			Pitch:         r.Midi,
			Time:          seconds(r.Time),
			Lane:          lane,
			Duration:      d,
			DurationTicks: r.DurationTicks,
			Velocity:      r.Velocity,
			Kind:          kind,
		})
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Time < notes[j].Time
	})

	// Cap non-hold durations to the gap to the next distinct time,
	// skipping every neighbour sharing the exact same time.
	for i := range notes {
		n := &notes[i]
		if n.Kind == KindHold {
			continue
		}
		j := i + 1
		for j < len(notes) && notes[j].Time == n.Time {
			j++
		}
		// A duplicated pair ahead is not a distinct time either,
		// look one further in that case.
		if j+1 < len(notes) && notes[j].Time == notes[j+1].Time {
			j += 2
		}
		if j < len(notes) {
			gap := notes[j].Time - n.Time
			if gap > p.TapCap {
				gap = p.TapCap
			}
			n.Duration = gap
		} else if n.Duration <= 0 {
			n.Duration = p.FinalDuration
		}
	}

	return notes
}
