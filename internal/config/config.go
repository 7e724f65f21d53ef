// internal/config/config.go
//
// Environment-driven configuration shared by the server and the terminal client.
// Callers load a `.env` file (godotenv) before calling Load.
//
// Environment variables:
//   PORT            HTTP port (default 5175)
//   LOG_LEVEL       zerolog level name (default info)
//   STORE_DRIVER    memory | sqlite | redis | postgres
//   SQLITE_PATH     database file for the sqlite driver (default ./data/scramble.db)
//   REDIS_ADDR      host:port for the redis driver (default localhost:6379)
//   REDIS_PASSWORD, REDIS_DB
//   DATABASE_URL    connection string, required for the postgres driver
//   WORDS_FILE      optional vocabulary file; embedded list when unset
//   JWT_SECRET      signs player cookies (default dev_secret_change_me)
//   COOKIE_NAME     player cookie name (default scramble_player)
//   CLIENT_ORIGIN   CORS origin (default http://localhost:5173)
//   NODE_ENV        "production" enables Secure cookies
//   SESSION_CACHE_SIZE  player sessions kept in memory (default 10000)

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	Port     string
	LogLevel zerolog.Level

	StoreDriver   string
	SQLitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string

	WordsFile string

	JWTSecret    string
	CookieName   string
	ClientOrigin string
	Production   bool

	SessionCacheSize int
}

// Load reads the environment. defaultDriver is used when STORE_DRIVER is unset.
func Load(defaultDriver string) (Config, error) {
	c := Config{
		Port:          getEnv("PORT", "5175"),
		StoreDriver:   getEnv("STORE_DRIVER", defaultDriver),
		SQLitePath:    getEnv("SQLITE_PATH", "./data/scramble.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		WordsFile:     os.Getenv("WORDS_FILE"),
		JWTSecret:     getEnv("JWT_SECRET", "dev_secret_change_me"),
		CookieName:    getEnv("COOKIE_NAME", "scramble_player"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:    os.Getenv("NODE_ENV") == "production",
	}

	lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	c.LogLevel = lvl

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, fmt.Errorf("invalid REDIS_DB %q", v)
		}
		c.RedisDB = n
	}

	c.SessionCacheSize = 10000
	if v := os.Getenv("SESSION_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid SESSION_CACHE_SIZE %q", v)
		}
		c.SessionCacheSize = n
	}

	switch c.StoreDriver {
	case DriverMemory, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_DRIVER %q", c.StoreDriver)
	}

	if c.Production && c.JWTSecret == "dev_secret_change_me" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
