package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	APIBaseURL      string
	AppURL          string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	SessionSecret   string
	SessionTTL      time.Duration
	UpstreamTimeout time.Duration
	CookieDomain    string
	CookieSecure    bool
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		APIBaseURL:      getEnv("NEST_API_URL", "http://localhost:3000/api"),
		AppURL:          getEnv("APP_URL", "http://localhost:8080"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/causajusta?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		SessionSecret:   getEnv("SESSION_SECRET", "change-me"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		CookieDomain:    os.Getenv("COOKIE_DOMAIN"),
		CookieSecure:    getEnv("COOKIE_SECURE", "false") == "true",
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
