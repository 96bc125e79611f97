package game

import (
	"errors"
	"fmt"
	"time"
)

var ErrValidation = errors.New("invalid beatmap")

type NoteKind uint8

const (
	KindTap NoteKind = iota
	KindHold
	KindSlide
)

func (k NoteKind) String() string {
	switch k {
	case KindHold:
		return "hold"
	case KindSlide:
		return "slide"
	}
	return "tap"
}

// RawNote is a note as imported, before lane assignment and
// duration derivation. Times are in seconds, matching the
// on-disk beatmap schema.
type RawNote struct {
	Midi          int     `json:"midi"`
	Time          float64 `json:"time"`
	Lane          int     `json:"lane"`
	Duration      float64 `json:"duration"`
	DurationTicks int     `json:"durationTicks"`
	Velocity      int     `json:"velocity"`
	Type          string  `json:"type"`
}

// Note is immutable once processed.
type Note struct {
	Pitch         int
	Time          time.Duration
	Lane          int
	Duration      time.Duration
	DurationTicks int
	Velocity      int
	Kind          NoteKind
}

func (n *Note) End() time.Duration {
	return n.Time + n.Duration
}

type Metadata struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Artist         string  `json:"artist"`
	BPM            float64 `json:"bpm"`
	Difficulty     int     `json:"difficulty"`
	DifficultyName string  `json:"difficultyName"`
	AudioPath      string  `json:"audioPath"`
	MidiPath       string  `json:"midiPath"`
}

func (m *Metadata) Validate() error {
	missing := ""
	switch {
	case m.ID == "":
		missing = "id"
	case m.Title == "":
		missing = "title"
	case m.Artist == "":
		missing = "artist"
	case m.BPM <= 0:
		missing = "bpm"
	case m.Difficulty <= 0:
		missing = "difficulty"
	case m.DifficultyName == "":
		missing = "difficultyName"
	case m.AudioPath == "":
		missing = "audioPath"
	case m.MidiPath == "":
		missing = "midiPath"
	}
	if missing != "" {
		return fmt.Errorf("%w: missing metadata field %q", ErrValidation, missing)
	}
	return nil
}

type Beatmap struct {
	Metadata Metadata
	Notes    []Note
}
