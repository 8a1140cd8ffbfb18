package routes

import (
	"bytes"
	"io"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapp/backend/config"
	"quizapp/backend/console"
	"quizapp/backend/leaderboard"
	"quizapp/backend/models"
	"quizapp/backend/quiz"
	"quizapp/backend/services"
	"quizapp/backend/storage"
)

func newApp(cfg *config.Config, logs io.Writer) *App {
	users := services.NewUserService(storage.NewMemoryBackend(), services.PlainHasher{}, cfg)
	return &App{
		Cfg:    cfg,
		Users:  users,
		Bank:   quiz.DefaultBank(),
		Board:  leaderboard.NewStoreBoard(users),
		Logger: log.New(logs, "", 0),
		Rand:   rand.New(rand.NewSource(7)),
	}
}

func TestFullSession(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", SessionTTL: time.Hour}
	var logs bytes.Buffer
	app := newApp(cfg, &logs)

	input := []string{"1", "Alice", "alice@example.com", "555", "alice", "pw"}
	input = append(input, "2", "alice", "pw")
	input = append(input, "1", "1", "1", "1", "1", "1")
	input = append(input, "5", "6", "7", "9", "4", "3")

	var out bytes.Buffer
	require.NoError(t, SetupRoutes(app).Run(console.NewCtx(strings.NewReader(strings.Join(input, "\n")+"\n"), &out)))

	text := out.String()
	assert.Contains(t, text, "--- QUIZ APPLICATION ---\n1. Register\n2. Login\n3. Exit\nChoose option (1-3): ")
	assert.Contains(t, text, "Registration Successful!")
	assert.Contains(t, text, "Login Successful!")
	assert.Contains(t, text, "Choose a Subject:\n1. Python\n2. DSA\n3. DBMS\n4. Logout\n5. My scores\n6. Leaderboard\n7. Profile\n")
	assert.Contains(t, text, "--- Python QUIZ ---")
	assert.Contains(t, text, "Python Quiz Score: ")
	assert.Contains(t, text, "--- MY BEST SCORES ---")
	assert.Contains(t, text, "--- LEADERBOARD ---")
	assert.Contains(t, text, "Name: Alice")
	assert.Contains(t, text, "Invalid option!")
	assert.True(t, strings.HasSuffix(text, "Goodbye! 👋\n"))

	assert.Contains(t, logs.String(), `alice "Python"`)
	assert.Contains(t, logs.String(), `- "Register"`)
}

func TestPerfectPythonAttemptStoresFullScore(t *testing.T) {
	const seed = 42
	cfg := &config.Config{JWTSecret: "testsecret", SessionTTL: time.Hour}
	app := newApp(cfg, io.Discard)
	app.Rand = rand.New(rand.NewSource(seed))

	// Same seed, same sample: the menu run asks these questions in this order.
	preview, err := quiz.Start(app.Bank, models.SubjectPython, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	input := []string{"1", "Alice", "alice@example.com", "555", "alice", "pw1"}
	input = append(input, "2", "alice", "pw1", "1")
	for _, q := range preview.Questions {
		input = append(input, strconv.Itoa(q.Answer+1))
	}
	input = append(input, "4", "3")

	var out bytes.Buffer
	require.NoError(t, SetupRoutes(app).Run(console.NewCtx(strings.NewReader(strings.Join(input, "\n")+"\n"), &out)))

	text := out.String()
	assert.Equal(t, quiz.QuestionsPerAttempt, strings.Count(text, "Correct!"))
	assert.Contains(t, text, "Python Quiz Score: 5/5\nPercentage: 100.0%\n"+string(models.RatingPerfect))

	user, err := app.Users.Profile("alice")
	require.NoError(t, err)
	assert.Equal(t, 100.0, user.BestScore(models.SubjectPython))
	assert.Zero(t, user.BestScore(models.SubjectDSA))
}

func TestExpiredSessionReturnsToTopMenu(t *testing.T) {
	cfg := &config.Config{JWTSecret: "testsecret", SessionTTL: -time.Minute}
	app := newApp(cfg, io.Discard)
	require.NoError(t, app.Users.Register(services.RegisterInput{Username: "alice", Password: "pw"}))

	var out bytes.Buffer
	input := "2\nalice\npw\n5\n3\n"
	require.NoError(t, SetupRoutes(app).Run(console.NewCtx(strings.NewReader(input), &out)))

	assert.Contains(t, out.String(), "Session expired")
	assert.NotContains(t, out.String(), "--- MY BEST SCORES ---")

	user, err := app.Users.Profile("alice")
	require.NoError(t, err)
	assert.Zero(t, user.BestScore(models.SubjectPython))
}

func TestEOFStopsTheMenu(t *testing.T) {
	app := newApp(&config.Config{JWTSecret: "testsecret", SessionTTL: time.Hour}, io.Discard)
	err := SetupRoutes(app).Run(console.NewCtx(strings.NewReader("2\nalice\n"), io.Discard))
	assert.ErrorIs(t, err, io.EOF)
}
