package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/bastiangx/anagramserve/pkg/config"
	"github.com/charmbracelet/log"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, Key("cat", 0), Key("ACT", 0))
	assert.Equal(t, Key("t.a.c", 0), Key("cat", 0))
	assert.NotEqual(t, Key("cat", 0), Key("cat", 5))
	assert.NotEqual(t, Key("cat", 0), Key("cats", 0))
	assert.Equal(t, "act|0", Key("Cat!", 0))
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4)

	_, ok := m.Get(ctx, "a")
	assert.False(t, ok)

	m.Set(ctx, "a", []string{"x", "y"})
	got, ok := m.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, got)

	// callers cannot mutate the stored copy
	got[0] = "changed"
	again, _ := m.Get(ctx, "a")
	assert.Equal(t, "x", again[0])

	stats := m.Stats()
	assert.Equal(t, 1, stats["entries"])
	assert.Equal(t, 2, stats["hits"])
	assert.Equal(t, 1, stats["misses"])
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)

	m.Set(ctx, "a", []string{"1"})
	m.Set(ctx, "b", []string{"2"})
	_, _ = m.Get(ctx, "a")
	m.Set(ctx, "c", []string{"3"})

	_, ok := m.Get(ctx, "b")
	assert.False(t, ok)
	_, ok = m.Get(ctx, "a")
	assert.True(t, ok)
	_, ok = m.Get(ctx, "c")
	assert.True(t, ok)
	assert.Equal(t, 2, m.Stats()["entries"])
}

func TestMemoryEmptyListIsHit(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)
	m.Set(ctx, "xyz|0", []string{})

	got, ok := m.Get(ctx, "xyz|0")
	assert.True(t, ok)
	assert.Empty(t, got)
}

func newTestRedis(t *testing.T, opts ...Option) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	r := NewRedisFromClient(client, opts...)
	t.Cleanup(func() { r.Close() })
	return r, mr
}

func TestRedisGetSet(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, WithPrefix("test:"))
	require.NoError(t, r.Ping(ctx))

	_, ok := r.Get(ctx, "act|0")
	assert.False(t, ok)

	r.Set(ctx, "act|0", []string{"act", "cat", "tac"})
	assert.True(t, mr.Exists("test:act|0"))

	got, ok := r.Get(ctx, "act|0")
	require.True(t, ok)
	assert.Equal(t, []string{"act", "cat", "tac"}, got)

	r.Set(ctx, "xyz|0", []string{})
	got, ok = r.Get(ctx, "xyz|0")
	require.True(t, ok)
	assert.Equal(t, []string{}, got)

	stats := r.Stats()
	assert.Equal(t, 2, stats["hits"])
	assert.Equal(t, 1, stats["misses"])
	assert.Equal(t, 0, stats["errors"])
}

func TestRedisTTL(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, WithTTL(time.Minute))

	r.Set(ctx, "k", []string{"v"})
	assert.Equal(t, time.Minute, mr.TTL("anagram:k"))

	mr.FastForward(2 * time.Minute)
	_, ok := r.Get(ctx, "k")
	assert.False(t, ok)
}

func TestRedisCorruptEntry(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	require.NoError(t, mr.Set("anagram:bad", "\xc1not msgpack"))

	_, ok := r.Get(ctx, "bad")
	assert.False(t, ok)
	assert.Equal(t, 1, r.Stats()["errors"])
}

func TestCacheLoggers(t *testing.T) {
	assert.Equal(t, "cache", NewMemory(1).logger.GetPrefix())

	var buf bytes.Buffer
	l := logger.NewWithConfig(&buf, "rcache", log.InfoLevel, false, false, log.TextFormatter)
	r, mr := newTestRedis(t, WithLogger(l))
	assert.Equal(t, "rcache", r.logger.GetPrefix())
	require.NoError(t, mr.Set("anagram:bad", "\xc1"))

	_, ok := r.Get(context.Background(), "bad")
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "Corrupt cache entry")
}

func TestRedisUnavailable(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t)
	mr.Close()

	r.Set(ctx, "k", []string{"v"})
	_, ok := r.Get(ctx, "k")
	assert.False(t, ok)
	assert.GreaterOrEqual(t, r.Stats()["errors"], 2)
}

func TestNew(t *testing.T) {
	c, err := New(config.CacheConfig{Backend: config.CacheNone})
	require.NoError(t, err)
	assert.IsType(t, Nop{}, c)

	c, err = New(config.CacheConfig{Backend: config.CacheMemory, MaxEntries: 8})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, c)

	c, err = New(config.CacheConfig{Backend: config.CacheRedis, RedisAddr: "localhost:0"})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, c)
	assert.NoError(t, c.Close())

	_, err = New(config.CacheConfig{Backend: "memcached"})
	assert.Error(t, err)
}
