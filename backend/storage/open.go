package storage

import (
	"fmt"
	"log"
	"path/filepath"

	"quizapp/backend/config"
	"quizapp/backend/utils"
)

// Open returns the backend named by cfg.StoreDriver.
func Open(cfg *config.Config, logger *log.Logger) (Backend, error) {
	switch cfg.StoreDriver {
	case "json", "":
		return NewJSONBackend(filepath.Join(cfg.DataDir, "users.json"))
	case "files":
		return NewFileBackend(filepath.Join(cfg.DataDir, "users"))
	case "bolt":
		return NewBoltBackend(filepath.Join(cfg.DataDir, "users.db"))
	case "postgres", "sqlite":
		db, err := utils.InitDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		return NewGormBackend(db)
	case "memory":
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
