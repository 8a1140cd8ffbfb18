package controllers

import (
	"quizapp/backend/console"
	"quizapp/backend/middleware"
	"quizapp/backend/models"
	"quizapp/backend/services"
	"quizapp/backend/utils"
)

type ProgressController struct {
	Users *services.UserService
}

func NewProgressController(users *services.UserService) *ProgressController {
	return &ProgressController{Users: users}
}

// Scores lists the best percentage per subject for the logged-in user.
func (pc *ProgressController) Scores(c *console.Ctx) error {
	handle, ok := middleware.CurrentUser(c)
	if !ok {
		return console.ErrExitMenu
	}

	user, err := pc.Users.Profile(handle.Username)
	if err != nil {
		return err
	}

	utils.Section(c.Out(), "MY BEST SCORES")
	for _, subject := range models.Subjects() {
		c.Printf("%s: %s\n", subject, utils.Percent(user.BestScore(subject)))
	}
	return nil
}
