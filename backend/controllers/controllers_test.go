package controllers

import (
	"bytes"
	"errors"
	"io"
	"log"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapp/backend/config"
	"quizapp/backend/console"
	"quizapp/backend/leaderboard"
	"quizapp/backend/middleware"
	"quizapp/backend/models"
	"quizapp/backend/quiz"
	"quizapp/backend/services"
	"quizapp/backend/storage"
)

var testCfg = &config.Config{JWTSecret: "testsecret", SessionTTL: time.Hour}

// firstOptionBank has five questions per subject, all answered by option 1.
func firstOptionBank(t *testing.T) *quiz.Bank {
	t.Helper()
	questions := make(map[models.Subject][]models.Question)
	for _, s := range models.Subjects() {
		for i := 0; i < quiz.QuestionsPerAttempt; i++ {
			questions[s] = append(questions[s], models.Question{
				Question: string(s) + " question",
				Options:  []string{"right", "wrong a", "wrong b", "wrong c"},
				Answer:   0,
			})
		}
	}
	bank, err := quiz.NewBank(questions)
	require.NoError(t, err)
	return bank
}

func newUsers(t *testing.T) *services.UserService {
	t.Helper()
	users := services.NewUserService(storage.NewMemoryBackend(), services.PlainHasher{}, testCfg)
	require.NoError(t, users.Register(services.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Phone:    "555-0100",
		Username: "alice",
		Password: "pw",
	}))
	return users
}

func loggedIn(t *testing.T, users *services.UserService, input string, out io.Writer) *console.Ctx {
	t.Helper()
	handle, err := users.Authenticate("alice", "pw")
	require.NoError(t, err)
	c := console.NewCtx(strings.NewReader(input), out)
	middleware.SetUser(c, handle)
	return c
}

type failingBoard struct{ leaderboard.Board }

func (failingBoard) Record(models.Subject, string, float64) error {
	return errors.New("redis down")
}

func TestRegister(t *testing.T) {
	users := newUsers(t)
	ac := NewAuthController(users, log.New(io.Discard, "", 0))

	tests := map[string]struct {
		username string
		want     string
	}{
		"new user":  {"bob", "Registration Successful!"},
		"duplicate": {"alice", "Username already exists!"},
		"bad name":  {"../bob", "Invalid username!"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			input := "Bob\nbob@example.com\n555\n" + tt.username + "\nsecret\n"
			require.NoError(t, ac.Register(console.NewCtx(strings.NewReader(input), &out)))
			assert.Contains(t, out.String(), "--- REGISTER ---")
			assert.Contains(t, out.String(), tt.want)
		})
	}

	_, err := users.Authenticate("bob", "secret")
	assert.NoError(t, err)
}

func TestRegisterEOF(t *testing.T) {
	ac := NewAuthController(newUsers(t), log.New(io.Discard, "", 0))
	err := ac.Register(console.NewCtx(strings.NewReader("Bob\n"), io.Discard))
	assert.ErrorIs(t, err, io.EOF)
}

func TestLogin(t *testing.T) {
	users := newUsers(t)
	ac := NewAuthController(users, log.New(io.Discard, "", 0))

	var seen string
	session := console.NewMenu("session")
	session.Add("1", "Who", func(c *console.Ctx) error {
		h, ok := middleware.CurrentUser(c)
		require.True(t, ok)
		seen = h.Username
		return nil
	})
	session.Exit("2", "Logout", nil)
	ac.Session = session

	var out bytes.Buffer
	c := console.NewCtx(strings.NewReader("alice\nwrong\nalice\npw\n1\n2\n"), &out)

	require.NoError(t, ac.Login(c))
	assert.Contains(t, out.String(), "Invalid Credentials!")

	require.NoError(t, ac.Login(c))
	assert.Contains(t, out.String(), "Login Successful!")
	assert.Equal(t, "alice", seen)

	_, ok := middleware.CurrentUser(c)
	assert.False(t, ok)
}

func TestAttemptScoresAndSavesBest(t *testing.T) {
	users := newUsers(t)
	qc := NewQuizController(users, firstOptionBank(t), leaderboard.NewStoreBoard(users), rand.New(rand.NewSource(1)), log.New(io.Discard, "", 0))

	var out bytes.Buffer
	c := loggedIn(t, users, "1\n1\n1\n2\nx\n", &out)
	require.NoError(t, qc.Attempt(models.SubjectPython)(c))

	text := out.String()
	assert.Contains(t, text, "--- Python QUIZ ---")
	assert.Contains(t, text, "Q1: Python question\n1. right\n2. wrong a\n")
	assert.Contains(t, text, "Your answer (1-4): ")
	assert.Equal(t, 3, strings.Count(text, "Correct!"))
	assert.Contains(t, text, "Wrong! Correct answer was: right")
	assert.Contains(t, text, "Invalid input!")
	assert.Contains(t, text, "Python Quiz Score: 3/5\nPercentage: 60.0%\n"+string(models.RatingGood))

	user, err := users.Profile("alice")
	require.NoError(t, err)
	assert.Equal(t, 60.0, user.BestScore(models.SubjectPython))

	// A worse attempt keeps the best.
	c = loggedIn(t, users, "2\n2\n2\n2\n2\n", io.Discard)
	require.NoError(t, qc.Attempt(models.SubjectPython)(c))
	user, err = users.Profile("alice")
	require.NoError(t, err)
	assert.Equal(t, 60.0, user.BestScore(models.SubjectPython))
}

func TestAttemptAbandonedOnEOF(t *testing.T) {
	users := newUsers(t)
	qc := NewQuizController(users, firstOptionBank(t), leaderboard.NewStoreBoard(users), nil, log.New(io.Discard, "", 0))

	c := loggedIn(t, users, "1\n1\n", io.Discard)
	assert.ErrorIs(t, qc.Attempt(models.SubjectDSA)(c), io.EOF)

	user, err := users.Profile("alice")
	require.NoError(t, err)
	assert.Zero(t, user.BestScore(models.SubjectDSA))
}

func TestAttemptSurvivesLeaderboardFailure(t *testing.T) {
	users := newUsers(t)
	var logs bytes.Buffer
	qc := NewQuizController(users, firstOptionBank(t), failingBoard{}, nil, log.New(&logs, "", 0))

	c := loggedIn(t, users, "1\n1\n1\n1\n1\n", io.Discard)
	require.NoError(t, qc.Attempt(models.SubjectDBMS)(c))
	assert.Contains(t, logs.String(), "redis down")

	user, err := users.Profile("alice")
	require.NoError(t, err)
	assert.Equal(t, 100.0, user.BestScore(models.SubjectDBMS))
}

func TestAttemptNeedsUser(t *testing.T) {
	users := newUsers(t)
	qc := NewQuizController(users, firstOptionBank(t), leaderboard.NewStoreBoard(users), nil, log.New(io.Discard, "", 0))
	err := qc.Attempt(models.SubjectDSA)(console.NewCtx(strings.NewReader(""), io.Discard))
	assert.ErrorIs(t, err, console.ErrExitMenu)
}

func TestProfileAndScores(t *testing.T) {
	users := newUsers(t)
	_, err := users.UpdateBestScore("alice", models.SubjectDSA, 80)
	require.NoError(t, err)

	var out bytes.Buffer
	c := loggedIn(t, users, "", &out)
	require.NoError(t, NewUserController(users).Profile(c))
	require.NoError(t, NewProgressController(users).Scores(c))

	text := out.String()
	assert.Contains(t, text, "Username: alice\nName: Alice\nEmail: alice@example.com\nPhone: 555-0100\n")
	assert.NotContains(t, text, "pw")
	assert.Contains(t, text, "Python: 0.0%\nDSA: 80.0%\nDBMS: 0.0%\n")
}

func TestLeaderboardShow(t *testing.T) {
	users := newUsers(t)
	require.NoError(t, users.Register(services.RegisterInput{Name: "Bob", Username: "bob", Password: "pw"}))
	_, err := users.UpdateBestScore("bob", models.SubjectPython, 100)
	require.NoError(t, err)
	_, err = users.UpdateBestScore("alice", models.SubjectPython, 40)
	require.NoError(t, err)

	var out bytes.Buffer
	lc := NewLeaderboardController(leaderboard.NewStoreBoard(users))
	require.NoError(t, lc.Show(console.NewCtx(strings.NewReader(""), &out)))

	assert.Contains(t, out.String(), "Python\n  1. bob 100.0%\n  2. alice 40.0%\n")
}
