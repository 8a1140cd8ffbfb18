package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"quizapp/backend/models"
)

type jsonUser struct {
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Phone    string             `json:"phone"`
	Password string             `json:"password"`
	Scores   map[string]float64 `json:"scores"`
}

// JSONBackend stores every user in one JSON document keyed by username.
// The document is re-read on every call and rewritten on every mutation.
type JSONBackend struct {
	path string
}

func NewJSONBackend(path string) (*JSONBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return &JSONBackend{path: path}, nil
}

func (j *JSONBackend) load() (map[string]jsonUser, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]jsonUser), nil
	}
	if err != nil {
		return nil, err
	}

	users := make(map[string]jsonUser)
	if len(data) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, j.path, err)
	}
	return users, nil
}

func (j *JSONBackend) save(users map[string]jsonUser) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(j.path, data)
}

func (j *JSONBackend) Create(u *models.User) error {
	users, err := j.load()
	if err != nil {
		return err
	}
	if _, exists := users[u.Username]; exists {
		return ErrUsernameTaken
	}
	users[u.Username] = toJSONUser(u)
	return j.save(users)
}

func (j *JSONBackend) Get(username string) (*models.User, error) {
	users, err := j.load()
	if err != nil {
		return nil, err
	}
	rec, ok := users[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return fromJSONUser(username, rec), nil
}

func (j *JSONBackend) Update(u *models.User) error {
	users, err := j.load()
	if err != nil {
		return err
	}
	if _, ok := users[u.Username]; !ok {
		return ErrUserNotFound
	}
	users[u.Username] = toJSONUser(u)
	return j.save(users)
}

func (j *JSONBackend) List() ([]models.User, error) {
	users, err := j.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.User, 0, len(users))
	for name, rec := range users {
		out = append(out, *fromJSONUser(name, rec))
	}
	sort.Slice(out, func(i, k int) bool { return out[i].Username < out[k].Username })
	return out, nil
}

func (j *JSONBackend) Close() error { return nil }

func toJSONUser(u *models.User) jsonUser {
	c := u.Clone()
	return jsonUser{
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Password: c.Password,
		Scores:   c.Scores,
	}
}

func fromJSONUser(username string, rec jsonUser) *models.User {
	u := &models.User{
		Username: username,
		Name:     rec.Name,
		Email:    rec.Email,
		Phone:    rec.Phone,
		Password: rec.Password,
		Scores:   rec.Scores,
	}
	u.FillScores()
	return u
}

// writeFileAtomic replaces path so that an interrupted write never leaves
// a truncated file behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
