package middleware

import (
	"log"
	"time"

	"quizapp/backend/console"
	"quizapp/backend/utils"
)

// LoggingMiddleware logs every menu action with the user, latency and
// error. With colors the error field is shown red or green.
func LoggingMiddleware(logger *log.Logger, enableColors bool) console.Middleware {
	return func(next console.Handler) console.Handler {
		return func(c *console.Ctx) error {
			start := time.Now()

			err := next(c)

			user := "-"
			if h, ok := CurrentUser(c); ok {
				user = h.Username
			}

			format := "[%s] %s %q %v err=%v"
			if enableColors {
				format = "[%s] %s %q %v " + utils.OutcomeColor(err) + "err=%v\033[0m"
			}

			logger.Printf(
				format,
				time.Now().Format("2006-01-02 15:04:05"),
				user,
				c.Action,
				time.Since(start),
				err,
			)

			return err
		}
	}
}
