package game

import (
	"testing"
	"time"
)

var ratingTests = map[time.Duration]Rating{
	0:        RatingPerfect,
	ms(40):   RatingPerfect,
	-ms(40):  RatingPerfect,
	ms(100):  RatingPerfect,
	ms(101):  RatingGreat,
	ms(250):  RatingGreat,
	ms(300):  RatingGreat,
	ms(450):  RatingCool,
	ms(500):  RatingCool,
	ms(501):  RatingMiss,
	-ms(800): RatingMiss,
}

func TestWindowsRate(t *testing.T) {
	w := DefaultWindows()
	for diff, expected := range ratingTests {
		if r := w.Rate(diff, 1.0); r != expected {
			t.Log("diff", diff, "rated", r, "expected", expected)
			t.Fail()
		}
	}
}

func TestWindowsCompensation(t *testing.T) {
	w := DefaultWindows()
	// At or below the 60fps target no widening happens
	if c := w.Compensation(time.Second / 120); c != 1.0 {
		t.Log("fast frame compensation", c)
		t.Fail()
	}
	// A 30fps frame doubles the windows
	c := w.Compensation(time.Second / 30)
	if c < 1.99 || c > 2.01 {
		t.Log("30fps compensation", c)
		t.Fail()
	}
	if r := w.Rate(ms(150), c); r != RatingPerfect {
		t.Log("compensated 150ms rated", r)
		t.Fail()
	}
	// Capped, frames cannot widen windows without bound
	if c := w.Compensation(time.Second); c != w.CompensationCap {
		t.Log("uncapped compensation", c)
		t.Fail()
	}
}

var holdTests = map[float64]Rating{
	1.0:  RatingPerfect,
	0.97: RatingPerfect,
	0.95: RatingPerfect,
	0.8:  RatingGreat,
	0.7:  RatingGreat,
	0.5:  RatingCool,
	// Releasing early still scores, unlike a tap miss
	0.1: RatingCool,
	0.0: RatingCool,
}

func TestHoldWindowsRate(t *testing.T) {
	w := DefaultHoldWindows()
	for ratio, expected := range holdTests {
		if r := w.Rate(ratio, 1.0); r != expected {
			t.Log("ratio", ratio, "rated", r, "expected", expected)
			t.Fail()
		}
	}
}
