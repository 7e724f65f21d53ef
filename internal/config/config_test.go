package config_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/scramble/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "STORE_DRIVER", "SQLITE_PATH", "REDIS_ADDR",
		"REDIS_PASSWORD", "REDIS_DB", "DATABASE_URL", "WORDS_FILE",
		"JWT_SECRET", "COOKIE_NAME", "CLIENT_ORIGIN", "NODE_ENV",
		"SESSION_CACHE_SIZE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c, err := config.Load(config.DriverMemory)
	require.NoError(t, err)

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, zerolog.InfoLevel, c.LogLevel)
	assert.Equal(t, config.DriverMemory, c.StoreDriver)
	assert.Equal(t, "./data/scramble.db", c.SQLitePath)
	assert.Equal(t, "scramble_player", c.CookieName)
	assert.False(t, c.Production)
	assert.Equal(t, 10000, c.SessionCacheSize)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "debug")

	c, err := config.Load(config.DriverSQLite)
	require.NoError(t, err)

	assert.Equal(t, config.DriverRedis, c.StoreDriver)
	assert.Equal(t, "cache:6380", c.RedisAddr)
	assert.Equal(t, 2, c.RedisDB)
	assert.Equal(t, zerolog.DebugLevel, c.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":         {"STORE_DRIVER": "etcd"},
		"postgres without url":   {"STORE_DRIVER": "postgres"},
		"bad redis db":           {"REDIS_DB": "two"},
		"bad log level":          {"LOG_LEVEL": "loud"},
		"zero session cache":     {"SESSION_CACHE_SIZE": "0"},
		"default secret in prod": {"NODE_ENV": "production"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load(config.DriverMemory)
			assert.Error(t, err)
		})
	}
}
