package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	DatabaseURL    string
	SessionBackend string
	RedisAddr      string
	RedisPassword  string
	AutoMigrate    bool
	Environment    string

	SessionTTL        time.Duration
	SessionCookieName string
	DisplayCookieName string

	RateLimitPerMinute        int
	RateLimitBurst            int
	AccountRateLimitPerMinute int
	AccountRateLimitBurst     int
}

func Load() Config {
	return Config{
		Port:           readString("AUTH_PORT", "8081"),
		DatabaseURL:    os.Getenv("DB_DSN"),
		SessionBackend: readString("SESSION_BACKEND", "postgres"),
		RedisAddr:      readString("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		AutoMigrate:    os.Getenv("AUTO_MIGRATE") == "true",
		Environment:    readString("APP_ENV", "development"),

		SessionTTL:        time.Duration(readInt("SESSION_TTL_SECONDS", 604800)) * time.Second,
		SessionCookieName: readString("SESSION_COOKIE_NAME", "sdvm_session"),
		DisplayCookieName: readString("DISPLAY_COOKIE_NAME", "sdvm_user"),

		RateLimitPerMinute:        readInt("AUTH_RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:            readInt("AUTH_RATE_LIMIT_BURST", 30),
		AccountRateLimitPerMinute: readInt("AUTH_ACCOUNT_RATE_LIMIT_PER_MIN", 10),
		AccountRateLimitBurst:     readInt("AUTH_ACCOUNT_RATE_LIMIT_BURST", 5),
	}
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

func readString(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
