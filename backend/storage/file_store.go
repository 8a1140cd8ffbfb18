package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"quizapp/backend/models"
)

const userFileExt = ".txt"

// FileBackend stores one text file per user:
//
//	Name:Alice
//	Email:alice@example.com
//	Phone:555
//	Password:pw1
//	Scores:Python:0,DSA:0,DBMS:0
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

func (f *FileBackend) path(username string) (string, error) {
	if username == "" || strings.ContainsAny(username, `/\`) || strings.HasPrefix(username, ".") {
		return "", fmt.Errorf("username %q cannot be used as a file name", username)
	}
	return filepath.Join(f.dir, username+userFileExt), nil
}

func (f *FileBackend) Create(u *models.User) error {
	p, err := f.path(u.Username)
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return writeFileAtomic(p, encodeUserFile(u))
}

func (f *FileBackend) Get(username string) (*models.User, error) {
	p, err := f.path(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return readUserFile(p, username)
}

func (f *FileBackend) Update(u *models.User) error {
	p, err := f.path(u.Username)
	if err != nil {
		return ErrUserNotFound
	}
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}
	return writeFileAtomic(p, encodeUserFile(u))
}

func (f *FileBackend) List() ([]models.User, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, err
	}

	var out []models.User
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), userFileExt) {
			continue
		}
		username := strings.TrimSuffix(e.Name(), userFileExt)
		u, err := readUserFile(filepath.Join(f.dir, e.Name()), username)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *FileBackend) Close() error { return nil }

func encodeUserFile(u *models.User) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Name:%s\n", u.Name)
	fmt.Fprintf(&b, "Email:%s\n", u.Email)
	fmt.Fprintf(&b, "Phone:%s\n", u.Phone)
	fmt.Fprintf(&b, "Password:%s\n", u.Password)

	scores := make([]string, 0, len(u.Scores))
	for _, s := range orderedSubjects(u.Scores) {
		scores = append(scores, s+":"+strconv.FormatFloat(u.Scores[s], 'g', -1, 64))
	}
	fmt.Fprintf(&b, "Scores:%s\n", strings.Join(scores, ","))
	return []byte(b.String())
}

// orderedSubjects lists the fixed subjects first, then any extra keys sorted.
func orderedSubjects(scores map[string]float64) []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range models.Subjects() {
		if _, ok := scores[string(s)]; ok {
			out = append(out, string(s))
			seen[string(s)] = true
		}
	}
	var extra []string
	for k := range scores {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func readUserFile(path, username string) (*models.User, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fields := make(map[string]string)
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%w: %s:%d: missing ':'", ErrCorruptRecord, path, lineNo)
		}
		fields[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	for _, key := range []string{"Name", "Email", "Phone", "Password", "Scores"} {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: %s: missing %s", ErrCorruptRecord, path, key)
		}
	}

	scores, err := parseScores(fields["Scores"])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, path, err)
	}

	u := &models.User{
		Username: username,
		Name:     fields["Name"],
		Email:    fields["Email"],
		Phone:    fields["Phone"],
		Password: fields["Password"],
		Scores:   scores,
	}
	u.FillScores()
	return u, nil
}

func parseScores(raw string) (map[string]float64, error) {
	scores := make(map[string]float64)
	if strings.TrimSpace(raw) == "" {
		return scores, nil
	}
	for _, part := range strings.Split(raw, ",") {
		idx := strings.LastIndex(part, ":")
		if idx <= 0 {
			return nil, fmt.Errorf("bad score entry %q", part)
		}
		v, err := strconv.ParseFloat(part[idx+1:], 64)
		if err != nil {
			return nil, fmt.Errorf("bad score entry %q: %v", part, err)
		}
		scores[part[:idx]] = v
	}
	return scores, nil
}
