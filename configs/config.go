package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// ConfigInt reads an integer setting, falling back when unset or malformed.
func ConfigInt(key string, fallback int) int {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: %s is not a valid integer (%q), using default %d", key, raw, fallback)
		return fallback
	}
	return value
}
