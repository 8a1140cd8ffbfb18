package controllers

import (
	"quizapp/backend/console"
	"quizapp/backend/leaderboard"
	"quizapp/backend/models"
	"quizapp/backend/utils"
)

// DefaultLeaderboardSize is how many users are listed per subject.
const DefaultLeaderboardSize = 5

type LeaderboardController struct {
	Board leaderboard.Board
	Limit int
}

func NewLeaderboardController(board leaderboard.Board) *LeaderboardController {
	return &LeaderboardController{Board: board, Limit: DefaultLeaderboardSize}
}

func (lc *LeaderboardController) Show(c *console.Ctx) error {
	utils.Section(c.Out(), "LEADERBOARD")

	for _, subject := range models.Subjects() {
		entries, err := lc.Board.Top(subject, lc.Limit)
		if err != nil {
			return err
		}

		c.Printf("\n%s\n", subject)
		if len(entries) == 0 {
			c.Println("  no scores yet")
			continue
		}
		for _, e := range entries {
			c.Printf("  %d. %s %s\n", e.Rank, e.Username, utils.Percent(e.Best))
		}
	}
	return nil
}
