package score

import (
	"git.lost.host/meutraa/tilefall/internal/game"
)

// Observer receives resolved ratings per lane. Observers are
// fire-and-forget; they must not block or call back into the
// evaluator.
type Observer func(lane int, rating game.Rating)

type ComboObserver func(combo int)

type Evaluator interface {
	ValidateTap(lane int, rating game.Rating) game.Rating
	Combo() game.ComboState
	Accuracy() int
	Score(maxPossibleCombo int) int
}

type DefaultEvaluator struct {
	combo game.ComboState

	observers      []Observer
	comboObservers []ComboObserver

	// Bonus caps; the bonuses scale proportionally up to these.
	ComboBonusCap    int
	AccuracyBonusCap int
}

func NewEvaluator() *DefaultEvaluator {
	return &DefaultEvaluator{
		ComboBonusCap:    1000,
		AccuracyBonusCap: 1000,
	}
}

func (e *DefaultEvaluator) Subscribe(o Observer) {
	e.observers = append(e.observers, o)
}

func (e *DefaultEvaluator) SubscribeCombo(o ComboObserver) {
	e.comboObservers = append(e.comboObservers, o)
}

// ValidateTap folds a rating into the combo state and notifies
// observers. Pure pass-through of the rating itself.
func (e *DefaultEvaluator) ValidateTap(lane int, rating game.Rating) game.Rating {
	if rating == game.RatingNone {
		return rating
	}
	e.combo.Apply(rating)
	for _, o := range e.observers {
		o(lane, rating)
	}
	for _, o := range e.comboObservers {
		o(e.combo.Count)
	}
	return rating
}

func (e *DefaultEvaluator) Combo() game.ComboState {
	return e.combo
}

func (e *DefaultEvaluator) Accuracy() int {
	return e.combo.Accuracy()
}

// Score is the weighted hit total plus proportionally capped
// combo and accuracy bonuses.
func (e *DefaultEvaluator) Score(maxPossibleCombo int) int {
	c := e.combo
	base := c.PerfectCount*100 + c.GreatCount*80 + c.CoolCount*50
	comboBonus := 0
	if maxPossibleCombo > 0 {
		comboBonus = e.ComboBonusCap * c.MaxCount / maxPossibleCombo
	}
	accuracyBonus := e.AccuracyBonusCap * c.Accuracy() / 100
	return base + comboBonus + accuracyBonus
}
