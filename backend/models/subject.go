package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSubject = errors.New("unknown subject")

type Subject string

const (
	SubjectPython Subject = "Python"
	SubjectDSA    Subject = "DSA"
	SubjectDBMS   Subject = "DBMS"
)

// Subjects returns the fixed subject set in menu order.
func Subjects() []Subject {
	return []Subject{SubjectPython, SubjectDSA, SubjectDBMS}
}

func (s Subject) Valid() bool {
	for _, known := range Subjects() {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSubject matches a subject name case-insensitively.
func ParseSubject(name string) (Subject, error) {
	name = strings.TrimSpace(name)
	for _, s := range Subjects() {
		if strings.EqualFold(name, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSubject, name)
}
