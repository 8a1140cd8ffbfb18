package controllers

import (
	"fmt"
	"log"
	"math/rand"

	"quizapp/backend/console"
	"quizapp/backend/leaderboard"
	"quizapp/backend/middleware"
	"quizapp/backend/models"
	"quizapp/backend/quiz"
	"quizapp/backend/services"
	"quizapp/backend/utils"
)

type QuizController struct {
	Users  *services.UserService
	Bank   *quiz.Bank
	Board  leaderboard.Board
	Rand   *rand.Rand
	Logger *log.Logger
}

func NewQuizController(users *services.UserService, bank *quiz.Bank, board leaderboard.Board, r *rand.Rand, logger *log.Logger) *QuizController {
	if r == nil {
		r = quiz.NewRand()
	}
	return &QuizController{Users: users, Bank: bank, Board: board, Rand: r, Logger: logger}
}

// Attempt returns a handler running one quiz on subject for the
// logged-in user. Running out of input abandons the attempt unsaved.
func (qc *QuizController) Attempt(subject models.Subject) console.Handler {
	return func(c *console.Ctx) error {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			return console.ErrExitMenu
		}

		session, err := quiz.Start(qc.Bank, subject, qc.Rand)
		if err != nil {
			return err
		}

		utils.Section(c.Out(), fmt.Sprintf("%s QUIZ", subject))

		for !session.Done() {
			q, err := session.Current()
			if err != nil {
				return err
			}

			c.Printf("\nQ%d: %s\n", session.Position(), q.Question)
			for j, option := range q.Options {
				c.Printf("%d. %s\n", j+1, option)
			}

			input, err := c.Prompt(fmt.Sprintf("Your answer (1-%d): ", len(q.Options)))
			if err != nil {
				return err
			}

			outcome, err := session.Answer(input)
			if err != nil {
				return err
			}
			switch outcome {
			case quiz.OutcomeCorrect:
				c.Println("Correct!")
			case quiz.OutcomeWrong:
				c.Printf("Wrong! Correct answer was: %s\n", q.CorrectOption())
			default:
				c.Println("Invalid input!")
			}
		}

		result := session.Result()
		printResult(c, result)

		best, err := qc.Users.UpdateBestScore(user.Username, subject, result.Percentage())
		if err != nil {
			return err
		}
		qc.Logger.Printf("user %q scored %d/%d on %s (best %.1f)", user.Username, result.Score, result.Total, subject, best)

		if err := qc.Board.Record(subject, user.Username, best); err != nil {
			qc.Logger.Printf("leaderboard record failed: %v", err)
		}
		return nil
	}
}

func printResult(c *console.Ctx, r models.Result) {
	utils.Section(c.Out(), "QUIZ RESULT")
	c.Printf("%s Quiz Score: %d/%d\n", r.Subject, r.Score, r.Total)
	c.Printf("Percentage: %s\n", utils.Percent(r.Percentage()))
	c.Println(string(r.Rating()))
}
