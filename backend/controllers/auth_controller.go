package controllers

import (
	"errors"
	"log"

	"quizapp/backend/console"
	"quizapp/backend/middleware"
	"quizapp/backend/services"
	"quizapp/backend/storage"
	"quizapp/backend/utils"
)

type AuthController struct {
	Users  *services.UserService
	Logger *log.Logger

	// Session is the menu a user gets after logging in.
	Session *console.Menu
}

func NewAuthController(users *services.UserService, logger *log.Logger) *AuthController {
	return &AuthController{Users: users, Logger: logger}
}

// Register asks for the account details and creates the user.
func (ac *AuthController) Register(c *console.Ctx) error {
	utils.Section(c.Out(), "REGISTER")

	var in services.RegisterInput
	fields := []struct {
		label string
		dst   *string
	}{
		{"Name: ", &in.Name},
		{"Email: ", &in.Email},
		{"Phone: ", &in.Phone},
		{"Username: ", &in.Username},
		{"Password: ", &in.Password},
	}
	for _, f := range fields {
		v, err := c.Prompt(f.label)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	err := ac.Users.Register(in)
	switch {
	case errors.Is(err, storage.ErrUsernameTaken):
		utils.Error(c.Out(), "Username already exists!")
		return nil
	case errors.Is(err, services.ErrInvalidUsername):
		utils.Error(c.Out(), "Invalid username! It must not be empty, start with '.' or contain / \\ : |")
		return nil
	case err != nil:
		return err
	}

	ac.Logger.Printf("registered user %q", in.Username)
	utils.Success(c.Out(), "Registration Successful!")
	return nil
}

// Login checks the credentials and runs the session menu for the user.
func (ac *AuthController) Login(c *console.Ctx) error {
	utils.Section(c.Out(), "LOGIN")

	username, err := c.Prompt("Username: ")
	if err != nil {
		return err
	}
	password, err := c.Prompt("Password: ")
	if err != nil {
		return err
	}

	handle, err := ac.Users.Authenticate(username, password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		utils.Error(c.Out(), "Invalid Credentials!")
		return nil
	}
	if err != nil {
		return err
	}

	utils.Success(c.Out(), "Login Successful!")
	ac.Logger.Printf("user %q logged in", handle.Username)

	if ac.Session == nil {
		return nil
	}

	middleware.SetUser(c, handle)
	defer middleware.SetUser(c, nil)

	return ac.Session.Run(c)
}
