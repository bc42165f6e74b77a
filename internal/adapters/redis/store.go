// Package redis persists the hardware-configuration bundle in Redis, for
// deployments where sessions roam between hosts.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/labscript-ai/labscript/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.ConfigStore using Redis.
type Store struct {
	client *backend.Client
	key    string
	ttl    time.Duration
}

// Option configures the Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithTTL sets an expiration on the entry. Zero means no expiration.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// New creates a Redis store with its own client.
func New(address, password string, db int, opts ...Option) *Store {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(client, opts...)
}

// NewFromClient creates a Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		key:    "labscript:hardware_config",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Save writes the bundle under the fixed key.
func (s *Store) Save(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save config to redis: %w", err)
	}
	return nil
}

// Load reads the bundle.
func (s *Store) Load(ctx context.Context) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to load config from redis: %w", err)
	}
	return val, nil
}

// Clear removes the entry.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear config in redis: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
