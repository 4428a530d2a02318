package main

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port                string
	Env                 string
	MongoURL            string
	MongoDB             string
	RedisURL            string
	CartTTL             time.Duration
	EmailWebhookURL     string
	EmailWebhookTimeout time.Duration
}

func LoadConfig() Config {
	return Config{
		Port:                getEnv("PORT", "8080"),
		Env:                 getEnv("ENV", "development"),
		MongoURL:            getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDB:             getEnv("MONGO_DB", "prettyyou"),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379"),
		CartTTL:             getDurationEnv("CART_TTL_HOURS", 24*7) * time.Hour,
		EmailWebhookURL:     os.Getenv("EMAIL_WEBHOOK_URL"),
		EmailWebhookTimeout: getDurationEnv("EMAIL_WEBHOOK_TIMEOUT_SECONDS", 5) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDurationEnv(key string, fallback int64) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.ParseInt(val, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
