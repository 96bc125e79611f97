package beatmap

import (
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/tilefall/internal/game"
)

// ImportMIDI extracts raw notes from a standard MIDI file. Note
// on/off events are paired per pitch and tick positions converted
// to seconds through the tempo map.
func ImportMIDI(file string) ([]game.RawNote, error) {
	rd, err := smf.ReadFile(file)
	if nil != err {
		return nil, err
	}
	ticks, ok := rd.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: %v uses a non-metric time format", game.ErrValidation, file)
	}
	tempos := rd.TempoChanges()

	type open struct {
		tick     int64
		velocity uint8
	}

	raw := []game.RawNote{}
	for _, track := range rd.Tracks {
		var abs int64
		pending := map[uint8]open{}
		for _, ev := range track {
			abs += int64(ev.Delta)
			var ch, key, vel uint8
			if ev.Message.GetNoteStart(&ch, &key, &vel) {
				pending[key] = open{tick: abs, velocity: vel}
				continue
			}
			if ev.Message.GetNoteEnd(&ch, &key) {
				o, ok := pending[key]
				if !ok {
					continue
				}
				delete(pending, key)
				start := tickSeconds(tempos, ticks, o.tick)
				end := tickSeconds(tempos, ticks, abs)
				raw = append(raw, game.RawNote{
					Midi:          int(key),
					Time:          start,
					Duration:      end - start,
					DurationTicks: int(abs - o.tick),
					Velocity:      int(o.velocity),
				})
			}
		}
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Time < raw[j].Time
	})
	return raw, nil
}

// tickSeconds converts an absolute tick to seconds under the last
// tempo change at or before it. 120 BPM when the file has none.
func tickSeconds(tempos smf.TempoChanges, ticks smf.MetricTicks, tick int64) float64 {
	bpm := 120.0
	baseTick := int64(0)
	baseMicro := int64(0)
	for _, tc := range tempos {
		if tc.AbsTicks > tick {
			break
		}
		bpm = tc.BPM
		baseTick = tc.AbsTicks
		baseMicro = tc.AbsTimeMicroSec
	}
	perQuarter := 60.0 / bpm
	quarters := float64(tick-baseTick) / float64(ticks.Ticks4th())
	return float64(baseMicro)/1e6 + quarters*perQuarter
}
