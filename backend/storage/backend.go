package storage

import (
	"errors"

	"quizapp/backend/models"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
	// ErrCorruptRecord wraps any failure to decode a persisted record.
	ErrCorruptRecord = errors.New("corrupt record")
)

// Backend persists users keyed by username. Every mutating call is
// written through to durable storage before it returns. Implementations
// are not safe for concurrent processes.
type Backend interface {
	Create(u *models.User) error
	Get(username string) (*models.User, error)
	Update(u *models.User) error
	List() ([]models.User, error)
	Close() error
}
