package models

// Result is the outcome of one quiz attempt.
type Result struct {
	Subject Subject
	Score   int
	Total   int
}

func (r Result) Percentage() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Score) / float64(r.Total) * 100
}

type Rating string

const (
	RatingPerfect       Rating = "Perfect Score! 🏆"
	RatingExcellent     Rating = "Excellent Performance! 👍"
	RatingGood          Rating = "Good Job! Keep Practicing! 📚"
	RatingNeedsPractice Rating = "Need More Practice! 🔍"
)

func (r Result) Rating() Rating {
	p := r.Percentage()
	switch {
	case p == 100:
		return RatingPerfect
	case p >= 80:
		return RatingExcellent
	case p >= 60:
		return RatingGood
	default:
		return RatingNeedsPractice
	}
}
