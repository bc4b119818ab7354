package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration, loaded from .env and the environment.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Pulse   PulseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type CatalogConfig struct {
	Path string // empty uses the builtin catalog
}

type PulseConfig struct {
	BaseURL string // sentiment backend; empty disables pulse lookups
	Timeout time.Duration
}

type LoggingConfig struct {
	Level         string
	Format        string
	FilePath      string
	RotationSize  int
	RetentionDays int
}

// Load reads envFiles (default .env) if present, then the environment.
func Load(envFiles ...string) (*Config, error) {
	// A missing .env is fine; values can come from the environment.
	_ = godotenv.Load(envFiles...)

	pulseTimeout, err := getDuration("PULSE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	rotation, err := getInt("LOG_ROTATION_MB", 50)
	if err != nil {
		return nil, err
	}
	retention, err := getInt("LOG_RETENTION_DAYS", 14)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 45 * time.Second,
		},
		Catalog: CatalogConfig{
			Path: getEnv("CATALOG_PATH", ""),
		},
		Pulse: PulseConfig{
			BaseURL: getEnv("PULSE_BASE_URL", "http://localhost:8000/api/v1"),
			Timeout: pulseTimeout,
		},
		Logging: LoggingConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        getEnv("LOG_FORMAT", "pretty"),
			FilePath:      getEnv("LOG_FILE_PATH", ""),
			RotationSize:  rotation,
			RetentionDays: retention,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
