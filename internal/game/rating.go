package game

import (
	"time"
)

type Rating uint8

const (
	RatingNone Rating = iota
	RatingPerfect
	RatingGreat
	RatingCool
	RatingMiss
)

func (r Rating) String() string {
	switch r {
	case RatingPerfect:
		return "Perfect"
	case RatingGreat:
		return "Great"
	case RatingCool:
		return "Cool"
	case RatingMiss:
		return "Miss"
	}
	return "None"
}

const targetFrameTime = time.Second / 60

// Windows holds the nominal tap timing windows. The windows are
// widened by the frame-time compensation factor so low refresh
// rates are not punished for timer granularity.
type Windows struct {
	Perfect time.Duration
	Great   time.Duration
	Cool    time.Duration

	// CompensationCap bounds how far a long frame can widen the
	// windows, 1.0 disables compensation entirely.
	CompensationCap float64
}

func DefaultWindows() Windows {
	return Windows{
		Perfect:         100 * time.Millisecond,
		Great:           300 * time.Millisecond,
		Cool:            500 * time.Millisecond,
		CompensationCap: 2.0,
	}
}

// Compensation converts the duration of the current frame into a
// window scaling factor in [1, CompensationCap].
func (w Windows) Compensation(frameTime time.Duration) float64 {
	if frameTime <= targetFrameTime {
		return 1.0
	}
	c := float64(frameTime) / float64(targetFrameTime)
	if w.CompensationCap >= 1.0 && c > w.CompensationCap {
		c = w.CompensationCap
	}
	return c
}

func scale(d time.Duration, c float64) time.Duration {
	return time.Duration(float64(d) * c)
}

// Rate classifies an absolute timing error against the compensated
// windows. Errors beyond the cool window rate Miss.
func (w Windows) Rate(diff time.Duration, compensation float64) Rating {
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff <= scale(w.Perfect, compensation):
		return RatingPerfect
	case diff <= scale(w.Great, compensation):
		return RatingGreat
	case diff <= scale(w.Cool, compensation):
		return RatingCool
	}
	return RatingMiss
}

// HoldWindows holds the duration-ratio thresholds for hold note
// release rating. A ratio below Cool still rates Cool: releasing a
// hold early scores, unlike missing a tap.
type HoldWindows struct {
	Perfect float64
	Great   float64
	Cool    float64
}

func DefaultHoldWindows() HoldWindows {
	return HoldWindows{Perfect: 0.95, Great: 0.7, Cool: 0.4}
}

func (w HoldWindows) Rate(ratio float64, compensation float64) Rating {
	if compensation < 1.0 {
		compensation = 1.0
	}
	switch {
	case ratio >= w.Perfect/compensation:
		return RatingPerfect
	case ratio >= w.Great/compensation:
		return RatingGreat
	}
	return RatingCool
}
