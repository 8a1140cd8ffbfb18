package storage

import (
	"sort"

	"quizapp/backend/models"
)

// MemoryBackend keeps users in process memory. Data is lost on exit.
type MemoryBackend struct {
	users map[string]*models.User
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{users: make(map[string]*models.User)}
}

func (m *MemoryBackend) Create(u *models.User) error {
	if _, exists := m.users[u.Username]; exists {
		return ErrUsernameTaken
	}
	m.users[u.Username] = u.Clone()
	return nil
}

func (m *MemoryBackend) Get(username string) (*models.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u.Clone(), nil
}

func (m *MemoryBackend) Update(u *models.User) error {
	if _, ok := m.users[u.Username]; !ok {
		return ErrUserNotFound
	}
	m.users[u.Username] = u.Clone()
	return nil
}

func (m *MemoryBackend) List() ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *MemoryBackend) Close() error { return nil }
