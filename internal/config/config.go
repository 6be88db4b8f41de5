package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Progress ProgressConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	JWTSecret string
}

// ProgressConfig tunes the XP ledger. RepeatCompletionXP controls whether
// finishing an already-completed lab grants XP again (off by default).
type ProgressConfig struct {
	FullScoreXP        int
	PartialScoreXP     int
	ReducedScoreXP     int
	FirstCompletionXP  int
	RepeatCompletionXP bool
}

// SessionConfig controls the in-memory session store lifetimes.
type SessionConfig struct {
	TTLMinutes     int
	CleanupMinutes int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Progress: ProgressConfig{
			FullScoreXP:        getEnvAsInt("XP_FULL_SCORE", 100),
			PartialScoreXP:     getEnvAsInt("XP_PARTIAL_SCORE", 80),
			ReducedScoreXP:     getEnvAsInt("XP_REDUCED_SCORE", 60),
			FirstCompletionXP:  getEnvAsInt("XP_FIRST_COMPLETION_BONUS", 50),
			RepeatCompletionXP: getEnvAsBool("XP_REPEAT_COMPLETION", false),
		},
		Session: SessionConfig{
			TTLMinutes:     getEnvAsInt("SESSION_TTL_MINUTES", 60),
			CleanupMinutes: getEnvAsInt("SESSION_CLEANUP_MINUTES", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
