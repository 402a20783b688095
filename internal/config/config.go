package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds everything the bot reads from the environment. Credentials
// stay here; domain packages receive already-built clients.
type Config struct {
	TelegramToken string

	AuditProvider string
	GeminiAPIKey  string
	OpenAIAPIKey  string
	AuditTimeout  time.Duration

	DatabaseDriver string
	DatabaseDSN    string

	HTTPAddr string
}

// Load reads the .env file (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using system environment")
	}

	cfg := &Config{
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		AuditProvider:  getEnv("AUDIT_PROVIDER", ProviderGemini),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		AuditTimeout:   getEnvDuration("AUDIT_TIMEOUT", 90*time.Second),
		DatabaseDriver: getEnv("DATABASE_DRIVER", DriverMemory),
		DatabaseDSN:    getEnv("DATABASE_DSN", ""),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	switch cfg.AuditProvider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when AUDIT_PROVIDER=%s", ProviderGemini)
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when AUDIT_PROVIDER=%s", ProviderOpenAI)
		}
	default:
		return nil, fmt.Errorf("unknown AUDIT_PROVIDER: %s", cfg.AuditProvider)
	}

	switch cfg.DatabaseDriver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required when DATABASE_DRIVER=%s", cfg.DatabaseDriver)
		}
	default:
		return nil, fmt.Errorf("unknown DATABASE_DRIVER: %s", cfg.DatabaseDriver)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.Warnf("invalid duration for %s: %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
