package game

import (
	"testing"
)

func TestComboSequence(t *testing.T) {
	var c ComboState
	ratings := []Rating{
		RatingPerfect, RatingPerfect, RatingPerfect, RatingPerfect, RatingPerfect,
		RatingMiss,
		RatingPerfect, RatingPerfect, RatingPerfect,
	}
	expected := []int{1, 2, 3, 4, 5, 0, 1, 2, 3}
	for i, r := range ratings {
		c.Apply(r)
		if c.Count != expected[i] {
			t.Log("step", i, "count", c.Count, "expected", expected[i])
			t.Fail()
		}
	}
	if c.MaxCount != 5 {
		t.Log("max combo", c.MaxCount)
		t.Fail()
	}
}

func TestComboMaxNeverDecreases(t *testing.T) {
	var c ComboState
	prevMax := 0
	ratings := []Rating{
		RatingPerfect, RatingMiss, RatingGreat, RatingCool,
		RatingMiss, RatingMiss, RatingPerfect,
	}
	for _, r := range ratings {
		c.Apply(r)
		if c.MaxCount < prevMax {
			t.Log("max combo decreased to", c.MaxCount)
			t.Fail()
		}
		prevMax = c.MaxCount
	}
}

func TestAccuracyBounds(t *testing.T) {
	histories := [][]Rating{
		{},
		{RatingPerfect},
		{RatingMiss},
		{RatingPerfect, RatingGreat, RatingCool, RatingMiss},
		{RatingCool, RatingCool, RatingCool},
	}
	for _, history := range histories {
		var c ComboState
		for _, r := range history {
			c.Apply(r)
		}
		a := c.Accuracy()
		if a < 0 || a > 100 {
			t.Log("accuracy out of bounds", a, "for", history)
			t.Fail()
		}
	}
}

func TestAccuracyValues(t *testing.T) {
	var c ComboState
	if c.Accuracy() != 100 {
		t.Log("empty accuracy", c.Accuracy())
		t.Fail()
	}
	c.Apply(RatingPerfect)
	if c.Accuracy() != 100 {
		t.Log("all perfect accuracy", c.Accuracy())
		t.Fail()
	}
	c.Apply(RatingMiss)
	// (100 + 0) / 2 notes
	if c.Accuracy() != 50 {
		t.Log("half miss accuracy", c.Accuracy())
		t.Fail()
	}
	// RatingNone is ignored entirely
	c.Apply(RatingNone)
	if c.TotalNotes() != 2 {
		t.Log("none counted as a note")
		t.Fail()
	}
}
