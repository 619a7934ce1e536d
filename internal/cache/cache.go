// Package cache stores generated phrase lists so repeated queries skip the search.
package cache

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/bastiangx/anagramserve/pkg/anagram"
	"github.com/bastiangx/anagramserve/pkg/config"
)

// Cache is safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, phrases []string)
	Stats() map[string]int
	Close() error
}

// Key builds the cache key of a query. Queries with the same letters share
// their phrases, so the key is the sorted normalized letters plus the limit.
func Key(query string, limit int) string {
	letters := []byte(anagram.Normalize(query))
	slices.Sort(letters)
	return string(letters) + "|" + strconv.Itoa(limit)
}

// New picks the backend named in cfg.
func New(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case config.CacheNone, "":
		return Nop{}, nil
	case config.CacheMemory:
		return NewMemory(cfg.MaxEntries), nil
	case config.CacheRedis:
		return NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			WithTTL(cfg.TTL()), WithPrefix(cfg.Prefix)), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]string, bool) { return nil, false }
func (Nop) Set(context.Context, string, []string)        {}
func (Nop) Stats() map[string]int                        { return map[string]int{} }
func (Nop) Close() error                                 { return nil }
