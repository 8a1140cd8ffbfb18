package routes

import (
	"log"
	"math/rand"

	"quizapp/backend/config"
	"quizapp/backend/console"
	"quizapp/backend/controllers"
	"quizapp/backend/leaderboard"
	"quizapp/backend/middleware"
	"quizapp/backend/models"
	"quizapp/backend/quiz"
	"quizapp/backend/services"
)

// App holds what the menus are built from.
type App struct {
	Cfg    *config.Config
	Users  *services.UserService
	Bank   *quiz.Bank
	Board  leaderboard.Board
	Logger *log.Logger

	// Rand drives question sampling. Nil seeds from the clock.
	Rand *rand.Rand
}

// SetupRoutes builds the top-level menu and the menu shown after login.
func SetupRoutes(app *App) *console.Menu {
	logging := middleware.LoggingMiddleware(app.Logger, app.Cfg.LogColors)
	authMiddleware := middleware.AuthMiddleware(app.Cfg)

	// Logged-in menu
	quizController := controllers.NewQuizController(app.Users, app.Bank, app.Board, app.Rand, app.Logger)
	progressController := controllers.NewProgressController(app.Users)
	leaderboardController := controllers.NewLeaderboardController(app.Board)
	userController := controllers.NewUserController(app.Users)

	session := console.NewMenu("Choose a Subject:")
	session.Use(logging, authMiddleware)
	for i, subject := range models.Subjects() {
		session.Add(key(i), string(subject), quizController.Attempt(subject))
	}
	session.Exit("4", "Logout", nil)
	session.Add("5", "My scores", progressController.Scores)
	session.Add("6", "Leaderboard", leaderboardController.Show)
	session.Add("7", "Profile", userController.Profile)

	// Top menu
	authController := controllers.NewAuthController(app.Users, app.Logger)
	authController.Session = session

	top := console.NewMenu("--- QUIZ APPLICATION ---")
	top.Use(logging)
	top.Add("1", "Register", authController.Register)
	top.Add("2", "Login", authController.Login)
	top.Exit("3", "Exit", func(c *console.Ctx) error {
		c.Println("Goodbye! 👋")
		return nil
	})

	return top
}

func key(i int) string {
	return string(rune('1' + i))
}
