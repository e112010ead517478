package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Redis  RedisConfig
	Watch  WatchConfig
	App    AppConfig
}

type ServerConfig struct {
	Host        string
	Port        string
	CORSOrigins []string
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

type StoreConfig struct {
	Backend string
	Path    string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type WatchConfig struct {
	Debounce   time.Duration
	ResyncSpec string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("HOST", "0.0.0.0"),
			Port:        getEnv("PORT", "3000"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		},
		Store: StoreConfig{
			Backend: strings.ToLower(getEnv("CONFIG_STORE", StoreFile)),
			Path:    getEnv("CONFIG_PATH", defaultConfigPath()),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Watch: WatchConfig{
			Debounce:   time.Duration(getEnvAsInt("WATCH_DEBOUNCE_MS", 300)) * time.Millisecond,
			ResyncSpec: getEnv("WATCH_RESYNC_SPEC", "@every 1m"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "0.1.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Server.Port)
	}

	switch c.Store.Backend {
	case StoreFile:
		if c.Store.Path == "" {
			return fmt.Errorf("CONFIG_PATH is required for the file store")
		}
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis store")
		}
	default:
		return fmt.Errorf("CONFIG_STORE must be %q or %q, got %q", StoreFile, StoreRedis, c.Store.Backend)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("WATCH_DEBOUNCE_MS must not be negative")
	}

	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".bealin", "config.yaml")
	}
	return filepath.Join(home, ".bealin", "config.yaml")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
