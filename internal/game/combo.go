package game

type ComboState struct {
	Count        int
	MaxCount     int
	PerfectCount int
	GreatCount   int
	CoolCount    int
	MissCount    int
	LastRating   Rating
}

// Apply folds a rating into the combo statistics. Any Miss resets
// the running count; MaxCount never decreases.
func (c *ComboState) Apply(r Rating) {
	switch r {
	case RatingPerfect:
		c.PerfectCount++
		c.Count++
	case RatingGreat:
		c.GreatCount++
		c.Count++
	case RatingCool:
		c.CoolCount++
		c.Count++
	case RatingMiss:
		c.MissCount++
		c.Count = 0
	default:
		return
	}
	c.LastRating = r
	if c.Count > c.MaxCount {
		c.MaxCount = c.Count
	}
}

func (c *ComboState) TotalNotes() int {
	return c.PerfectCount + c.GreatCount + c.CoolCount + c.MissCount
}

// Accuracy is a weighted percentage of the rating counts, rounded.
// Zero notes attempted is not a failure, it reports 100.
func (c *ComboState) Accuracy() int {
	total := c.TotalNotes()
	if total == 0 {
		return 100
	}
	weighted := c.PerfectCount*100 + c.GreatCount*80 + c.CoolCount*50
	return (weighted + total/2) / total
}
