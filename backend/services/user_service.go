package services

import (
	"errors"
	"fmt"
	"strings"

	"quizapp/backend/config"
	"quizapp/backend/models"
	"quizapp/backend/storage"
	"quizapp/backend/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUsername    = errors.New("invalid username")
)

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Username string
	Password string
}

// UserHandle identifies a logged-in user for the rest of the session.
type UserHandle struct {
	Username string
	Name     string
	Token    string
}

type UserService struct {
	store  storage.Backend
	hasher PasswordHasher
	cfg    *config.Config
}

func NewUserService(store storage.Backend, hasher PasswordHasher, cfg *config.Config) *UserService {
	if hasher == nil {
		hasher = PlainHasher{}
	}
	return &UserService{store: store, hasher: hasher, cfg: cfg}
}

// HasherFor picks the password hasher the config asks for.
func HasherFor(cfg *config.Config) PasswordHasher {
	if cfg.HashPasswords {
		return BcryptHasher{}
	}
	return PlainHasher{}
}

func (s *UserService) Register(in RegisterInput) error {
	username := strings.TrimSpace(in.Username)
	if err := validateUsername(username); err != nil {
		return err
	}

	password, err := s.hasher.Hash(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.NewUser(username, in.Name, in.Email, in.Phone, password)
	if err := s.store.Create(user); err != nil {
		return err
	}
	return nil
}

func (s *UserService) Authenticate(username, password string) (*UserHandle, error) {
	user, err := s.store.Get(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Matches(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken(user.Username, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	return &UserHandle{Username: user.Username, Name: user.Name, Token: token}, nil
}

// UpdateBestScore keeps the higher of the stored and the new percentage
// and returns the stored best after the write.
func (s *UserService) UpdateBestScore(username string, subject models.Subject, percentage float64) (float64, error) {
	if !subject.Valid() {
		return 0, fmt.Errorf("%w: %q", models.ErrUnknownSubject, subject)
	}

	user, err := s.store.Get(username)
	if err != nil {
		return 0, err
	}

	prev := user.BestScore(subject)
	best := user.RaiseScore(subject, percentage)
	if best == prev {
		return best, nil
	}

	if err := s.store.Update(user); err != nil {
		return 0, fmt.Errorf("save best score: %w", err)
	}
	return best, nil
}

func (s *UserService) Profile(username string) (*models.User, error) {
	return s.store.Get(username)
}

func (s *UserService) Users() ([]models.User, error) {
	return s.store.List()
}

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUsername)
	}
	if strings.ContainsAny(username, `/\:|`) || strings.HasPrefix(username, ".") {
		return fmt.Errorf("%w: %q contains reserved characters", ErrInvalidUsername, username)
	}
	return nil
}
