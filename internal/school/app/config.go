package app

import (
	"os"
	"time"
)

type Config struct {
	ListenAddr string // Optional: HTTP bind address (default: 127.0.0.1:7707, loopback only)
	Issuer     string // Optional: issuer claim for session tokens (default: homeroom)

	StoreDriver    string // Optional: shared record store driver (memory, sqlite, redis) (default: sqlite)
	SQLitePath     string // Optional: path to the SQLite database file (default: ./homeroom.db)
	RedisURL       string // Optional: Redis connection URL (default: redis://localhost:6379/0)
	RedisNamespace string // Optional: key prefix isolating this school on a shared Redis (default: homeroom)

	SecretPath string // Optional: path to the per-machine secret file (default: ./machine.secret)
	SlotPath   string // Optional: path to the durable session slot (default: ./session.slot)

	AdminUsername string // Optional: admin account seeded on first run against an empty store
	AdminPassword string // Optional: password for the seeded admin account
	AdminName     string // Optional: display name for the seeded admin (default: Administrator)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		ListenAddr: getEnvOrDefault("HOMEROOM_LISTEN_ADDR", "127.0.0.1:7707"),
		Issuer:     getEnvOrDefault("HOMEROOM_ISSUER", "homeroom"),

		StoreDriver:    getEnvOrDefault("HOMEROOM_STORE_DRIVER", "sqlite"),
		SQLitePath:     getEnvOrDefault("HOMEROOM_SQLITE_PATH", "homeroom.db"),
		RedisURL:       getEnvOrDefault("HOMEROOM_REDIS_URL", "redis://localhost:6379/0"),
		RedisNamespace: getEnvOrDefault("HOMEROOM_REDIS_NAMESPACE", "homeroom"),

		SecretPath: getEnvOrDefault("HOMEROOM_SECRET_PATH", "machine.secret"),
		SlotPath:   getEnvOrDefault("HOMEROOM_SLOT_PATH", "session.slot"),

		AdminUsername: os.Getenv("HOMEROOM_ADMIN_USERNAME"),
		AdminPassword: os.Getenv("HOMEROOM_ADMIN_PASSWORD"),
		AdminName:     os.Getenv("HOMEROOM_ADMIN_NAME"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
