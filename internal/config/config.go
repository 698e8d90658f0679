package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config keeps runtime settings for the service.
type Config struct {
	HTTPAddr         string
	DatabaseURL      string
	LogMode          string
	GinMode          string
	DefaultUserID    string
	SchedulerEnabled bool
	TelegramToken    string
	TelegramChatID   int64
}

// Load reads configuration from the environment, after an optional .env file,
// with sane defaults.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	cfg := Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":3001"),
		DatabaseURL:   getEnv("DATABASE_URL", "daily_tasks.db"),
		LogMode:       getEnv("LOG_MODE", "dev"),
		GinMode:       getEnv("GIN_MODE", ""),
		DefaultUserID: getEnv("DEFAULT_USER_ID", "default_user"),
		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
	}

	enabled, err := parseBool(getEnv("SCHEDULER_ENABLED", "true"))
	if err != nil {
		return cfg, fmt.Errorf("SCHEDULER_ENABLED: %w", err)
	}
	cfg.SchedulerEnabled = enabled

	if raw := strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("TELEGRAM_CHAT_ID must be an integer: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return cfg, fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// NewLogger builds a production logger for LOG_MODE=prod and a development one otherwise.
func NewLogger(mode string) (*zap.Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}
	return cfg.Build()
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", raw)
}
