// Package audio wraps beep playback behind the small surface the
// core reads: transport control and the current stream time.
package audio

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
)

type Source interface {
	Play()
	Pause()
	Resume()
	Stop()
	CurrentTime() time.Duration
	Playing() bool
}

type BeepSource struct {
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	started  bool
}

func Open(file string) (*BeepSource, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch path.Ext(file) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported audio format: %v", file)
	}
	if nil != err {
		return nil, err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/60)); nil != err {
		streamer.Close()
		return nil, err
	}

	return &BeepSource{
		streamer: streamer,
		format:   format,
		ctrl:     &beep.Ctrl{Streamer: streamer},
	}, nil
}

func (s *BeepSource) Play() {
	if s.started {
		return
	}
	s.started = true
	speaker.Play(s.ctrl)
}

func (s *BeepSource) Pause() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

func (s *BeepSource) Resume() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *BeepSource) Stop() {
	speaker.Clear()
	if err := s.streamer.Close(); nil != err {
		// Already closed or backend gone, nothing to do.
		return
	}
}

// CurrentTime reports the stream position. Negative only when the
// backend misbehaves; callers treat that as an anomaly.
func (s *BeepSource) CurrentTime() time.Duration {
	if !s.started {
		return 0
	}
	speaker.Lock()
	pos := s.streamer.Position()
	speaker.Unlock()
	if pos < 0 {
		return -1
	}
	return s.format.SampleRate.D(pos)
}

func (s *BeepSource) Playing() bool {
	if !s.started {
		return false
	}
	speaker.Lock()
	paused := s.ctrl.Paused
	pos := s.streamer.Position()
	n := s.streamer.Len()
	speaker.Unlock()
	return !paused && pos < n
}
