package quiz

import (
	"math/rand"
	"time"

	"quizapp/backend/models"
)

// NewRand returns a time-seeded source for sampling.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Shuffle returns a shuffled copy of questions (Fisher-Yates). Each
// question keeps its options and answer index together.
func Shuffle(questions []models.Question, r *rand.Rand) []models.Question {
	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// Sample draws n distinct questions uniformly without replacement.
func Sample(questions []models.Question, n int, r *rand.Rand) ([]models.Question, error) {
	if n > len(questions) {
		return nil, ErrInsufficientQuestions
	}
	return Shuffle(questions, r)[:n], nil
}
