package utils

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// LoggerConfig controls where and how the application logs.
type LoggerConfig struct {
	// text or json
	Format string
	// Defaults to os.Stderr so the menus on stdout stay readable.
	Output io.Writer
	// Colored prefix for terminals.
	EnableColors bool
}

// InitLogger builds the application logger.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	prefix := "[Quiz App] "

	var logger *log.Logger
	if cfg.Format == "json" {
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.LUTC)
	} else {
		if cfg.EnableColors {
			prefix = "\033[36m" + prefix + "\033[0m"
		}
		logger = log.New(cfg.Output, prefix, log.LstdFlags|log.Lshortfile|log.LUTC)
	}

	return logger
}

// OpenLogFile opens path for appending, creating its directory.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

// OutcomeColor picks a terminal color for a logged action result.
func OutcomeColor(err error) string {
	if err != nil {
		return "\033[31m" // red
	}
	return "\033[32m" // green
}
