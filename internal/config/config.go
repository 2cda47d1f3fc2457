package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	DatabaseDSN     string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	SecretKey       string
	AlphaVantageKey string
	AlphaVantageURL string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "stockfolio.db"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		SecretKey:       getEnv("SECRET_KEY", "you-will-never-guess"),
		AlphaVantageKey: getEnv("ALPHA_VANTAGE_API_KEY", "your_api_key_here"),
		AlphaVantageURL: getEnv("ALPHA_VANTAGE_URL", "https://www.alphavantage.co/query"),
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
