package models

import (
	"errors"
	"fmt"
	"strings"
)

const OptionsPerQuestion = 4

var ErrInvalidQuestion = errors.New("invalid question")

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("%w: %q has %d options, want %d", ErrInvalidQuestion, q.Question, len(q.Options), OptionsPerQuestion)
	}
	if q.Answer < 0 || q.Answer >= len(q.Options) {
		return fmt.Errorf("%w: %q answer index %d out of range", ErrInvalidQuestion, q.Question, q.Answer)
	}
	return nil
}

func (q Question) CorrectOption() string {
	return q.Options[q.Answer]
}
