package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/charmbracelet/log"
	backend "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// Redis keeps phrase lists in Redis, msgpack encoded, so several server
// processes can share results.
type Redis struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
	logger *log.Logger
	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

type Option func(*Redis)

// WithTTL sets the expiration of cached entries.
func WithTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// WithLogger replaces the "cache" logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Redis) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRedis connects lazily; errors show up on first use and count as misses.
func NewRedis(address, password string, db int, opts ...Option) *Redis {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisFromClient(rdb, opts...)
}

// NewRedisFromClient wraps an existing client.
func NewRedisFromClient(client *backend.Client, opts ...Option) *Redis {
	r := &Redis{
		client: client,
		prefix: "anagram:",
		logger: logger.New("cache"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Ping checks the connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, key string) ([]string, bool) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, backend.Nil) {
			r.errors.Add(1)
			r.logger.Warnf("Redis cache get %q: %v", key, err)
		}
		r.misses.Add(1)
		return nil, false
	}

	var phrases []string
	if err := msgpack.Unmarshal(data, &phrases); err != nil {
		r.errors.Add(1)
		r.logger.Warnf("Corrupt cache entry %q: %v", key, err)
		r.misses.Add(1)
		return nil, false
	}
	if phrases == nil {
		phrases = []string{}
	}
	r.hits.Add(1)
	return phrases, true
}

func (r *Redis) Set(ctx context.Context, key string, phrases []string) {
	data, err := msgpack.Marshal(phrases)
	if err != nil {
		r.errors.Add(1)
		r.logger.Errorf("Encoding cache entry %q: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, r.key(key), data, r.ttl).Err(); err != nil {
		r.errors.Add(1)
		r.logger.Warnf("Redis cache set %q: %v", key, err)
	}
}

func (r *Redis) Stats() map[string]int {
	return map[string]int{
		"hits":   int(r.hits.Load()),
		"misses": int(r.misses.Load()),
		"errors": int(r.errors.Load()),
	}
}

// Close closes the redis client.
func (r *Redis) Close() error {
	return r.client.Close()
}
