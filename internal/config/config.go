// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds everything the process needs to run. Values come from
// the environment, with .env files as a local-development convenience.
type Config struct {
	NotionAPIKey  string `validate:"required"`
	DatabaseID    string `validate:"required"`
	WebhookSecret string `validate:"required"`

	Addr          string        `validate:"required"`
	CheckInterval time.Duration `validate:"gt=0"`
	WebServerMode bool
}

var validate = validator.New()

// Load reads .env files (without overriding variables provided by the
// runtime) and assembles a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := &Config{
		NotionAPIKey:  os.Getenv("NOTION_API_KEY"),
		DatabaseID:    os.Getenv("DATABASE_ID"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		Addr:          getEnv("APP_ADDR", ":8080"),
		CheckInterval: 60 * time.Second,
		WebServerMode: true,
	}

	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("CHECK_INTERVAL must be a number of seconds: %w", err)
		}
		cfg.CheckInterval = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("WEB_SERVER_MODE"); v != "" {
		mode, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("WEB_SERVER_MODE must be a boolean: %w", err)
		}
		cfg.WebServerMode = mode
	}

	if err := validate.Struct(cfg); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			return nil, fmt.Errorf("invalid configuration: %s failed %q", fe.Field(), fe.Tag())
		}
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
