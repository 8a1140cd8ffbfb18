package controllers

import (
	"quizapp/backend/console"
	"quizapp/backend/middleware"
	"quizapp/backend/services"
	"quizapp/backend/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

// Profile shows the contact details of the logged-in user. The password
// is never printed.
func (uc *UserController) Profile(c *console.Ctx) error {
	handle, ok := middleware.CurrentUser(c)
	if !ok {
		return console.ErrExitMenu
	}

	user, err := uc.Users.Profile(handle.Username)
	if err != nil {
		return err
	}

	utils.Section(c.Out(), "PROFILE")
	c.Printf("Username: %s\n", user.Username)
	c.Printf("Name: %s\n", user.Name)
	c.Printf("Email: %s\n", user.Email)
	c.Printf("Phone: %s\n", user.Phone)
	return nil
}
