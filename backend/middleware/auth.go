package middleware

import (
	"quizapp/backend/config"
	"quizapp/backend/console"
	"quizapp/backend/services"
	"quizapp/backend/utils"
)

const userKey = "user"

func SetUser(c *console.Ctx, h *services.UserHandle) {
	if h == nil {
		c.Locals(userKey, nil)
		return
	}
	c.Locals(userKey, h)
}

func CurrentUser(c *console.Ctx) (*services.UserHandle, bool) {
	h, ok := c.Locals(userKey).(*services.UserHandle)
	return h, ok && h != nil
}

// AuthMiddleware only lets a handler run for a logged-in user whose
// session token is still valid. Otherwise the menu is left.
func AuthMiddleware(cfg *config.Config) console.Middleware {
	return func(next console.Handler) console.Handler {
		return func(c *console.Ctx) error {
			h, ok := CurrentUser(c)
			if !ok {
				utils.Error(c.Out(), "Please log in first.")
				return console.ErrExitMenu
			}

			username, err := utils.ExtractUsernameFromToken(h.Token, cfg)
			if err != nil || username != h.Username {
				SetUser(c, nil)
				utils.Error(c.Out(), "Session expired, please log in again.")
				return console.ErrExitMenu
			}

			return next(c)
		}
	}
}
