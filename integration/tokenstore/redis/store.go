// Package redis implements tokenstore.Store on top of Redis.
package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/neurogrid/storefront/core/logger"
	"github.com/neurogrid/storefront/core/tokenstore"
)

// DefaultKey is used when no key is configured.
const DefaultKey = "storefront:token"

// Client is the subset of go-redis commands the store needs.
// *goredis.Client and *goredis.ClusterClient satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// Store keeps the bearer token under a single Redis key.
type Store struct {
	client Client
	key    string
	logger *slog.Logger
}

var _ tokenstore.Store = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKey sets the Redis key. Use one key per device or client install.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used to report backend failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Redis-backed token store.
func New(client Client, opts ...Option) *Store {
	s := &Store{
		client: client,
		key:    DefaultKey,
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read implements tokenstore.Store. Backend errors read as absent.
func (s *Store) Read(ctx context.Context) (string, bool) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false
	}
	if err != nil {
		s.logger.Warn("token read failed, treating as empty",
			logger.Component("tokenstore.redis"),
			logger.Error(err),
		)
		return "", false
	}
	return token, token != ""
}

// Write implements tokenstore.Store. The key never expires.
func (s *Store) Write(ctx context.Context, token string) error {
	if token == "" {
		return tokenstore.ErrEmptyToken
	}
	return s.client.Set(ctx, s.key, token, 0).Err()
}

// Clear implements tokenstore.Store.
func (s *Store) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}
