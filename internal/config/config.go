package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName          string
	DatabaseURL      string
	GroqAPIKey       string
	EncryptionKey    string
	Port             string
	Env              string
	DemoAutoSchedule string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		AppName:          os.Getenv("APP_NAME"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		EncryptionKey:    os.Getenv("ENCRYPTION_KEY"),
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("ENV"),
		DemoAutoSchedule: os.Getenv("DEMO_AUTO_SCHEDULE"),
	}

	// Default values
	if cfg.AppName == "" {
		cfg.AppName = "MissTera AI Agent"
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.Env == "" {
		cfg.Env = "production"
	}

	return cfg
}
