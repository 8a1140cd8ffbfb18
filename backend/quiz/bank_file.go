package quiz

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"quizapp/backend/models"
)

const (
	fieldSep        = "|"
	legacyOptionSep = ","
)

var ErrBadQuestionFile = errors.New("bad question file")

// QuestionFile is where a subject's questions live inside dir.
func QuestionFile(dir string, subject models.Subject) string {
	return filepath.Join(dir, string(subject)+"_quiz.txt")
}

// SeedDir writes one file per subject from bank. Existing files are left
// untouched so edits survive restarts. It returns the subjects it wrote.
func SeedDir(dir string, bank *Bank) ([]models.Subject, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var written []models.Subject
	for _, subject := range models.Subjects() {
		path := QuestionFile(dir, subject)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return written, err
		}

		questions, err := bank.QuestionsFor(subject)
		if err != nil {
			return written, err
		}
		if err := writeQuestionFile(path, questions); err != nil {
			return written, err
		}
		written = append(written, subject)
	}
	return written, nil
}

func writeQuestionFile(path string, questions []models.Question) error {
	var b strings.Builder
	for _, q := range questions {
		fields := append([]string{q.Question}, q.Options...)
		for _, f := range fields {
			if strings.Contains(f, fieldSep) || strings.ContainsAny(f, "\r\n") {
				return fmt.Errorf("%w: %q cannot be stored in a line", ErrBadQuestionFile, f)
			}
		}
		fields = append(fields, strconv.Itoa(q.Answer))
		b.WriteString(strings.Join(fields, fieldSep))
		b.WriteByte('\n')
	}

	// O_EXCL: never clobber a file that appeared since the Stat.
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(b.String()); err != nil {
		file.Close()
		os.Remove(path)
		return err
	}
	return file.Close()
}

// LoadDir reads every subject's question file from dir.
func LoadDir(dir string) (*Bank, error) {
	questions := make(map[models.Subject][]models.Question)
	for _, subject := range models.Subjects() {
		qs, err := ParseQuestionFile(QuestionFile(dir, subject))
		if err != nil {
			return nil, err
		}
		questions[subject] = qs
	}
	return NewBank(questions)
}

// LoadOrSeed seeds dir with the built-in questions where files are missing,
// then loads it. An empty dir means the built-in bank.
func LoadOrSeed(dir string) (*Bank, error) {
	if dir == "" {
		return DefaultBank(), nil
	}
	if _, err := SeedDir(dir, DefaultBank()); err != nil {
		return nil, err
	}
	return LoadDir(dir)
}

// ParseQuestionFile reads lines of the form question|opt1|opt2|opt3|opt4|answer.
// The older question|opt1,opt2,opt3,opt4|answer form is accepted as long as
// the comma split yields exactly four options.
func ParseQuestionFile(path string) ([]models.Question, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question file: %w", err)
	}
	defer file.Close()

	var questions []models.Question
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		q, err := parseQuestionLine(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrBadQuestionFile, path, lineNo, err)
		}
		questions = append(questions, q)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading question file: %w", err)
	}

	return questions, nil
}

func parseQuestionLine(line string) (models.Question, error) {
	parts := strings.Split(line, fieldSep)
	if len(parts) == 3 {
		options := strings.Split(parts[1], legacyOptionSep)
		if len(options) != models.OptionsPerQuestion {
			return models.Question{}, fmt.Errorf("want %d comma separated options, got %d", models.OptionsPerQuestion, len(options))
		}
		parts = append(append([]string{parts[0]}, options...), parts[2])
	}
	if len(parts) != models.OptionsPerQuestion+2 {
		return models.Question{}, fmt.Errorf("want %d fields, got %d", models.OptionsPerQuestion+2, len(parts))
	}

	answer, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil {
		return models.Question{}, fmt.Errorf("invalid answer index: %v", err)
	}

	q := models.Question{
		Question: strings.TrimSpace(parts[0]),
		Options:  make([]string, 0, models.OptionsPerQuestion),
		Answer:   answer,
	}
	for _, opt := range parts[1 : len(parts)-1] {
		q.Options = append(q.Options, strings.TrimSpace(opt))
	}

	if err := q.Validate(); err != nil {
		return models.Question{}, err
	}
	return q, nil
}
