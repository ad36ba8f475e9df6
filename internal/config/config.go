package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppPort       string
	AppEnv        string
	DatabaseURL   string
	AdminEmail    string
	SMTPAddress   string
	SMTPHost      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFrom      string
	NotifyTimeout time.Duration
}

// Production reports whether the app runs in production mode. Non-production
// responses may include error detail.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", "3500"),
		AppEnv:        getEnv("APP_ENV", "development"),
		DatabaseURL:   getEnv("DATABASE_URL", "data.db"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "orders@mangal.store"),
		SMTPAddress:   getEnv("SMTP_ADDRESS", "smtp.gmail.com:587"),
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:      getEnv("SMTP_FROM", ""),
		NotifyTimeout: getEnvDuration("NOTIFY_TIMEOUT_SECONDS", 10) * time.Second,
	}

	if cfg.AppPort == "" {
		log.Fatal("APP_PORT must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback int) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return time.Duration(parsed)
		}
	}
	return time.Duration(fallback)
}
