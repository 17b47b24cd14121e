// Package config reads server settings from the environment, with an
// optional .env file for local runs.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings. DatabaseURL may be empty, in which
// case uploads are kept in memory only.
type Config struct {
	Port           string
	DatabaseURL    string
	CategoriesFile string
}

// Load reads a .env file if present and then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CategoriesFile: getEnv("CATEGORIES_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
