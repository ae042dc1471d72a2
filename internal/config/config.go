package config

import (
	"flag"
	"os"
)

type Config struct {
	Port         string
	DatabaseURL  string
	RedisURL     string
	GeminiAPIKey string
	GeminiModel  string
	LogLevel     string
}

func Load() *Config {
	config := &Config{
		Port:        getEnvWithDefault("PORT", "8080"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		GeminiModel: getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash"),
	}

	// Optional: empty DATABASE_URL selects the in-memory store, empty
	// REDIS_URL disables the analysis cache
	config.DatabaseURL = getEnvWithDefault("DATABASE_URL", "")
	config.RedisURL = getEnvWithDefault("REDIS_URL", "")

	// Optional Gemini key; without it the suggestion engine degrades to
	// error-level suggestions instead of failing analyses
	config.GeminiAPIKey = getEnvWithDefault("GEMINI_API_KEY", "")

	// Command line flags override environment
	flag.StringVar(&config.Port, "port", config.Port, "Server port")
	flag.StringVar(&config.LogLevel, "log-level", config.LogLevel, "Log level")
	flag.Parse()

	return config
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
