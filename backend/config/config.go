package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	StoreDriver  string // json, files, bolt, postgres, sqlite, memory
	DataDir      string
	QuestionsDir string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret     string
	SessionTTL    time.Duration
	HashPasswords bool

	RedisAddr     string
	RedisPassword string

	LogFormat string
	LogFile   string
	LogColors bool
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	dataDir := getEnv("DATA_DIR", "data")

	return &Config{
		StoreDriver:   getEnv("STORE_DRIVER", "json"),
		DataDir:       dataDir,
		QuestionsDir:  getEnv("QUESTIONS_DIR", "quizzes"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBName:        getEnv("DB_NAME", "quiz_app"),
		SQLitePath:    getEnv("SQLITE_PATH", dataDir+"/quiz.db"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		SessionTTL:    getDuration("SESSION_TTL", 12*time.Hour),
		HashPasswords: getBool("HASH_PASSWORDS", false),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogColors:     getBool("LOG_COLORS", false),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean for %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Invalid duration for %s=%q, using %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}
