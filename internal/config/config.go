package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Client  ClientConfig
	Backend BackendConfig
	Logging LoggingConfig
}

type ClientConfig struct {
	BaseURL         string
	CredentialsPath string
	PollInterval    time.Duration
}

type BackendConfig struct {
	Port              string
	Host              string
	ShutdownTimeout   time.Duration
	IdempotencyDBPath string
	WorkerPoolSize    int
	MaxRetries        int
	ChannelBufferSize int
}

type LoggingConfig struct {
	Level string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values")
	}

	return &Config{
		Client: ClientConfig{
			BaseURL:         getEnv("BACKEND_URL", "http://127.0.0.1:8000"),
			CredentialsPath: getEnv("API_KEY_FILE", defaultCredentialsPath()),
			PollInterval:    getDurationEnv("POLL_INTERVAL", 8*time.Second),
		},
		Backend: BackendConfig{
			Port:              getEnv("SERVER_PORT", "8000"),
			Host:              getEnv("SERVER_HOST", "0.0.0.0"),
			ShutdownTimeout:   getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),
			IdempotencyDBPath: getEnv("IDEMPOTENCY_DB", "switchpay-idempotency.db"),
			WorkerPoolSize:    getIntEnv("WORKER_POOL_SIZE", 4),
			MaxRetries:        getIntEnv("MAX_RETRIES", 5),
			ChannelBufferSize: getIntEnv("EVENT_CHANNEL_BUFFER_SIZE", 1000),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

func defaultCredentialsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".switchpay-api-key"
	}
	return filepath.Join(home, ".switchpay", "api_key")
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid duration for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}

	return value
}
