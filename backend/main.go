package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"quizapp/backend/config"
	"quizapp/backend/console"
	"quizapp/backend/leaderboard"
	"quizapp/backend/quiz"
	"quizapp/backend/routes"
	"quizapp/backend/services"
	"quizapp/backend/storage"
	"quizapp/backend/utils"
)

func main() {
	app := &cli.App{
		Name:  "quizapp",
		Usage: "console quiz on Python, DSA and DBMS",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "driver", Usage: "user store: json, files, bolt, postgres, sqlite, memory"},
			&cli.StringFlag{Name: "data-dir", Usage: "directory for user data"},
			&cli.StringFlag{Name: "questions-dir", Usage: "directory of <Subject>_quiz.txt files, seeded when missing"},
			&cli.BoolFlag{Name: "hash-passwords", Usage: "store bcrypt hashes instead of plain passwords"},
			&cli.StringFlag{Name: "redis-addr", Usage: "mirror the leaderboard into redis at this address"},
			&cli.StringFlag{Name: "log-file", Usage: "append logs to this file instead of stderr"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run(c *cli.Context) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlags(c, cfg)

	// Initialize logger
	loggerCfg := utils.LoggerConfig{Format: cfg.LogFormat, EnableColors: cfg.LogColors}
	if cfg.LogFile != "" {
		f, err := utils.OpenLogFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		loggerCfg.Output = f
	}
	logger := utils.InitLogger(loggerCfg)

	// Initialize storage
	store, err := storage.Open(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing %s store: %w", cfg.StoreDriver, err)
	}
	defer store.Close()

	bank, err := quiz.LoadOrSeed(cfg.QuestionsDir)
	if err != nil {
		return fmt.Errorf("loading questions: %w", err)
	}

	users := services.NewUserService(store, services.HasherFor(cfg), cfg)

	var board leaderboard.Board = leaderboard.NewStoreBoard(users)
	if cfg.RedisAddr != "" {
		board = redisBoard(cfg, users, logger, board)
		if rb, ok := board.(*leaderboard.RedisBoard); ok {
			defer rb.Close()
		}
	}

	// Setup menus
	menu := routes.SetupRoutes(&routes.App{
		Cfg:    cfg,
		Users:  users,
		Bank:   bank,
		Board:  board,
		Logger: logger,
	})

	logger.Printf("starting with %s store", cfg.StoreDriver)

	err = menu.Run(console.NewCtx(os.Stdin, os.Stdout))
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// redisBoard mirrors the leaderboard into redis, keeping fallback when
// redis is unreachable.
func redisBoard(cfg *config.Config, users *services.UserService, logger *log.Logger, fallback leaderboard.Board) leaderboard.Board {
	client, err := leaderboard.Connect(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Printf("redis unavailable at %s, ranking from the store: %v", cfg.RedisAddr, err)
		return fallback
	}

	rb := leaderboard.NewRedisBoard(client, users)
	all, err := users.Users()
	if err != nil {
		logger.Printf("could not list users for leaderboard sync: %v", err)
		return rb
	}
	if err := rb.Sync(all); err != nil {
		logger.Printf("leaderboard sync failed: %v", err)
	}
	return rb
}

func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("driver") {
		cfg.StoreDriver = c.String("driver")
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
		if os.Getenv("SQLITE_PATH") == "" {
			cfg.SQLitePath = cfg.DataDir + "/quiz.db"
		}
	}
	if c.IsSet("questions-dir") {
		cfg.QuestionsDir = c.String("questions-dir")
	}
	if c.IsSet("hash-passwords") {
		cfg.HashPasswords = c.Bool("hash-passwords")
	}
	if c.IsSet("redis-addr") {
		cfg.RedisAddr = c.String("redis-addr")
	}
	if c.IsSet("log-file") {
		cfg.LogFile = c.String("log-file")
	}
}
