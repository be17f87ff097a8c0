package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	TelegramToken string
	GeminiAPIKey  string
	GeminiModel   string
	MongoURI      string
	MongoDB       string
	MongoColl     string
	Port          string
	LogLevel      string

	// Optional scheduled report push. Both must be set to enable it.
	ReportCron   string
	ReportChatID int64
}

// Load loads configuration from environment variables. A .env file is
// optional; real environment variables take precedence either way.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash-lite"),
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDB:       getEnv("MONGODB_DB", "expenses"),
		MongoColl:     getEnv("MONGODB_COLLECTION", "expenses"),
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ReportCron:    os.Getenv("REPORT_CRON"),
	}

	if chatID := os.Getenv("REPORT_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid REPORT_CHAT_ID %q: %w", chatID, err)
		}
		cfg.ReportChatID = id
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI not set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
