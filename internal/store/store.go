// internal/store/store.go
//
// Key/value persistence for game sessions.
// Implementations: memory (this package), SQLite, Redis, Postgres.
// Open selects one from configuration; WithPrefix namespaces keys so many
// sessions can share one backend.

package store

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/scramble/internal/config"
)

// KV is a flat byte-valued key/value store.
type KV interface {
	// Get returns the value for key and whether it exists.
	// A missing key is reported via ok=false, not an error.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set persists or replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error

	io.Closer
}

// Open builds the KV named by cfg.StoreDriver.
func Open(ctx context.Context, cfg config.Config) (KV, error) {
	var (
		kv  KV
		err error
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		kv = NewMemory()
	case config.DriverSQLite:
		var s *SQLite
		if s, err = OpenSQLite(ctx, cfg.SQLitePath); err == nil {
			kv = s
		}
	case config.DriverRedis:
		var r *Redis
		if r, err = NewRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}); err == nil {
			kv = r
		}
	case config.DriverPostgres:
		var p *Postgres
		if p, err = OpenPostgres(ctx, cfg.DatabaseURL); err == nil {
			kv = p
		}
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	return kv, nil
}

// prefixed prepends a fixed namespace to every key.
type prefixed struct {
	kv     KV
	prefix string
}

// WithPrefix returns a view of kv where every key is prefixed.
// Closing the view does not close kv.
func WithPrefix(kv KV, prefix string) KV {
	return &prefixed{kv: kv, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Close() error { return nil }

// CloseQuietly closes kv and logs any error.
func CloseQuietly(kv KV) {
	if err := kv.Close(); err != nil {
		log.Warn().Err(err).Msg("close store")
	}
}
