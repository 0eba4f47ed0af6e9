// Package config resolves service configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	CloudinaryURL string
	RedisAddr     string
	RedisPassword string
	TempDir       string
}

// Load reads .env if present, then the environment. DatabaseURL and
// RedisAddr may be empty: the service then runs with the in-memory store
// and a disabled status publisher.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          GetEnv("PORT", "8000"),
		DatabaseURL:   GetEnv("DATABASE_URL", ""),
		CloudinaryURL: GetEnv("CLOUDINARY_URL", ""),
		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		TempDir:       GetEnv("UPLOAD_TEMP_DIR", "./uploads/temp"),
	}
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
