// Package redis keeps values as plain Redis strings.
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/introspection"
	"github.com/redis/go-redis/v9"

	"github.com/aretw0/notepad/pkg/core"
)

const (
	ErrorFailedToGet   = "failed to get value from redis"
	ErrorFailedToSet   = "failed to set value in redis"
	ErrorFailedToClose = "failed to close redis connection"
)

// Config holds the connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
	Logger   *slog.Logger
}

// Storage implements core.Storage with a Redis client. Values never expire.
type Storage struct {
	client *redis.Client
	config Config
	logger *slog.Logger
}

// Open connects to Redis and verifies the connection with a PING.
func Open(ctx context.Context, cfg Config) (*Storage, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Storage{client: client, config: cfg, logger: logger}, nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		s.logger.Error(ErrorFailedToGet, "key", key, "error", err)
		return "", false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	return value, true, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		s.logger.Error(ErrorFailedToSet, "key", key, "error", err)
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}
	s.logger.Debug("wrote value", "key", key, "bytes", len(value))
	return nil
}

// Close closes the connection pool.
func (s *Storage) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

// StorageState exposes internal state for observability.
type StorageState struct {
	Addr       string `json:"addr"`
	DB         int    `json:"db"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

// State implements introspection.Introspectable.
func (s *Storage) State() any {
	stats := s.client.PoolStats()
	return StorageState{
		Addr:       s.config.Addr,
		DB:         s.config.DB,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "redis"
}

var _ core.Storage = (*Storage)(nil)
var _ introspection.Introspectable = (*Storage)(nil)
var _ introspection.Component = (*Storage)(nil)
