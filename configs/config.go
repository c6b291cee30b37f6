package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

// MustConfig is Config for values the process cannot run without.
func MustConfig(key string) string {
	v := Config(key)
	if v == "" {
		log.Fatalf("🔥 Missing required environment variable: %s", key)
	}
	return v
}
