package beatmap

import (
	"encoding/json"
	"fmt"
	"os"
	"path"

	"git.lost.host/meutraa/tilefall/internal/game"
)

// DefaultParser reads the on-disk beatmap schema
// { "metadata": {...}, "notes": [...] } and converts its notes
// into gameplay order. A beatmap with no inline notes but a
// midiPath takes its raw notes from the MIDI file instead.
type DefaultParser struct {
	Processor *game.Processor
}

type beatmapFile struct {
	Metadata game.Metadata  `json:"metadata"`
	Notes    []game.RawNote `json:"notes"`
}

func (p *DefaultParser) Parse(file string) (*game.Beatmap, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}

	var bf beatmapFile
	if err := json.Unmarshal(data, &bf); nil != err {
		return nil, fmt.Errorf("%w: %v", game.ErrValidation, err)
	}
	if err := bf.Metadata.Validate(); nil != err {
		return nil, err
	}

	raw := bf.Notes
	if len(raw) == 0 {
		midiFile := bf.Metadata.MidiPath
		if !path.IsAbs(midiFile) {
			midiFile = path.Join(path.Dir(file), midiFile)
		}
		raw, err = ImportMIDI(midiFile)
		if nil != err {
			return nil, err
		}
	}

	proc := p.Processor
	if nil == proc {
		proc = game.NewProcessor()
	}
	return &game.Beatmap{
		Metadata: bf.Metadata,
		Notes:    proc.Convert(raw, nil),
	}, nil
}
