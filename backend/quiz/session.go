package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"quizapp/backend/models"
)

// QuestionsPerAttempt is how many questions every attempt asks.
const QuestionsPerAttempt = 5

var (
	ErrInsufficientQuestions = errors.New("not enough questions in bank")
	ErrSessionFinished       = errors.New("quiz session already finished")
)

type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeWrong
	// OutcomeInvalid is non-numeric or out-of-range input. It scores no
	// point and the session moves on.
	OutcomeInvalid
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Session is one attempt at a subject.
type Session struct {
	Subject   models.Subject
	Questions []models.Question
	Outcomes  []Outcome

	current int
	score   int
}

// Start samples QuestionsPerAttempt questions for subject from bank.
func Start(bank *Bank, subject models.Subject, r *rand.Rand) (*Session, error) {
	questions, err := bank.QuestionsFor(subject)
	if err != nil {
		return nil, err
	}

	sampled, err := Sample(questions, QuestionsPerAttempt, r)
	if err != nil {
		return nil, fmt.Errorf("%s has %d questions, need %d: %w", subject, len(questions), QuestionsPerAttempt, err)
	}

	return &Session{
		Subject:   subject,
		Questions: sampled,
		Outcomes:  make([]Outcome, 0, len(sampled)),
	}, nil
}

// ParseAnswer converts 1-based input to a 0-based option index. ok is
// false for non-numeric input or an index outside the options.
func ParseAnswer(input string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	idx := n - 1
	if idx < 0 || idx >= models.OptionsPerQuestion {
		return 0, false
	}
	return idx, true
}

func (s *Session) Done() bool {
	return s.current >= len(s.Questions)
}

// Position is the 1-based number of the current question.
func (s *Session) Position() int {
	return s.current + 1
}

func (s *Session) Current() (models.Question, error) {
	if s.Done() {
		return models.Question{}, ErrSessionFinished
	}
	return s.Questions[s.current], nil
}

// Answer grades input against the current question and advances.
func (s *Session) Answer(input string) (Outcome, error) {
	q, err := s.Current()
	if err != nil {
		return OutcomeInvalid, err
	}

	var outcome Outcome
	idx, ok := ParseAnswer(input)
	switch {
	case !ok:
		outcome = OutcomeInvalid
	case idx == q.Answer:
		outcome = OutcomeCorrect
		s.score++
	default:
		outcome = OutcomeWrong
	}

	s.Outcomes = append(s.Outcomes, outcome)
	s.current++
	return outcome, nil
}

// Result reports the score over the questions attempted so far.
func (s *Session) Result() models.Result {
	return models.Result{
		Subject: s.Subject,
		Score:   s.score,
		Total:   len(s.Outcomes),
	}
}
