package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Pending session storage: sql, file or redis
	StoreBackend  string
	StoreDir      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RecordingsPath string
	PromptsPath    string
	UploadMaxSize  int64

	APIBaseURL    string
	APIToken      string
	SyncInterval  time.Duration
	UploadTimeout time.Duration

	LogLevel  string
	LogFormat string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	NotifyEmail  string

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./ssdcollector.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		StoreBackend:  getEnv("STORE_BACKEND", "sql"),
		StoreDir:      getEnv("STORE_DIR", "./data"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RecordingsPath: getEnv("RECORDINGS_DIR", "./data/recordings"),
		PromptsPath:    getEnv("PROMPTS_DIR", "./data/prompts"),
		UploadMaxSize:  25 * 1024 * 1024, // 25MB

		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:3000"),
		APIToken:      getEnv("API_TOKEN", ""),
		SyncInterval:  getEnvDuration("SYNC_INTERVAL", 5*time.Minute),
		UploadTimeout: getEnvDuration("UPLOAD_TIMEOUT", 2*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "SSD Collector"),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", ""),

		Debug: getEnvBool("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
