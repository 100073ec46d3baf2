package config

import (
	"fmt"
	"os"
)

// Config carries the environment-provided settings for the server.
type Config struct {
	ListenAddr string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	JWTSecret string

	UploadDir     string
	UploadBaseURL string

	// TelegramBotToken enables the Telegram notifier when set.
	TelegramBotToken string
}

// Load reads the configuration from the environment, applying development
// defaults for everything except the JWT secret.
func Load() (*Config, error) {
	cfg := &Config{
		ListenAddr:       getenv("LISTEN_ADDR", ":8080"),
		DBHost:           getenv("DB_HOST", "localhost"),
		DBUser:           getenv("DB_USER", "user"),
		DBPassword:       getenv("DB_PASSWORD", "password"),
		DBName:           getenv("DB_NAME", "skillswapdb"),
		DBPort:           getenv("DB_PORT", "5432"),
		RedisAddr:        getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		UploadDir:        getenv("UPLOAD_DIR", "uploads/message-uploads"),
		UploadBaseURL:    getenv("UPLOAD_BASE_URL", "http://localhost:8080/uploads/message-uploads"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not set")
	}
	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
