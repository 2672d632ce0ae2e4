package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings.
type Config struct {
	Port string
	Env  string

	PromptCooldown time.Duration
	IntentTTL      time.Duration

	CommerceProvider       string
	CommerceBaseURL        string
	CommerceAPIKey         string
	CommerceRequestTimeout time.Duration

	CatalogPath string
	RedisURL    string

	OrderEventsTopicARN string
}

// LoadConfig reads configuration from the environment, with a .env file as a
// development convenience.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; system environment wins anyway.
	_ = godotenv.Load()

	cooldownMs, err := getEnvInt64("PROMPT_COOLDOWN_MS", 300000)
	if err != nil {
		return nil, err
	}
	ttlMs, err := getEnvInt64("INTENT_TTL_MS", 900000)
	if err != nil {
		return nil, err
	}
	timeoutSec, err := getEnvInt64("COMMERCE_TIMEOUT_SECONDS", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                   getEnv("PORT", "8080"),
		Env:                    getEnv("ENV", "development"),
		PromptCooldown:         time.Duration(cooldownMs) * time.Millisecond,
		IntentTTL:              time.Duration(ttlMs) * time.Millisecond,
		CommerceProvider:       getEnv("COMMERCE_PROVIDER", "mock"),
		CommerceBaseURL:        os.Getenv("COMMERCE_BASE_URL"),
		CommerceAPIKey:         os.Getenv("COMMERCE_API_KEY"),
		CommerceRequestTimeout: time.Duration(timeoutSec) * time.Second,
		CatalogPath:            os.Getenv("CATALOG_PATH"),
		RedisURL:               os.Getenv("REDIS_URL"),
		OrderEventsTopicARN:    os.Getenv("ORDER_EVENTS_TOPIC_ARN"),
	}

	if cfg.PromptCooldown <= 0 || cfg.IntentTTL <= 0 {
		return nil, fmt.Errorf("PROMPT_COOLDOWN_MS and INTENT_TTL_MS must be positive")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) (int64, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
