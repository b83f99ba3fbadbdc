package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPPort        string
	BackendBaseURL  string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Optional operator credentials for unattended sign-in at boot.
	OperatorEmail    string
	OperatorPassword string
}

func Load() *Config {
	return &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8090"),
		BackendBaseURL:   getEnv("POS_BACKEND_URL", "http://localhost:8080"),
		RequestTimeout:   30 * time.Second,
		ShutdownTimeout:  10 * time.Second,
		OperatorEmail:    os.Getenv("POS_OPERATOR_EMAIL"),
		OperatorPassword: os.Getenv("POS_OPERATOR_PASSWORD"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
