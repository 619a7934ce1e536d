package server

import (
	"context"
	"testing"

	"github.com/bastiangx/anagramserve/internal/cache"
	"github.com/bastiangx/anagramserve/internal/metrics"
	"github.com/bastiangx/anagramserve/pkg/dictionary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = []string{"dog", "god", "go", "do", "g", "o", "d", "a", "cat", "act", "tac"}

func newTestService(opts Options, c cache.Cache) *Service {
	dict := dictionary.FromWords(testWords, dictionary.WithMinWordLength(1))
	return NewService(dict, c, metrics.New(), opts)
}

func TestServiceValidate(t *testing.T) {
	s := newTestService(Options{MaxQueryLength: 5}, nil)

	assert.ErrorIs(t, s.Validate(""), ErrMissingQuery)
	assert.ErrorIs(t, s.Validate("abcdef"), ErrQueryTooLong)
	assert.NoError(t, s.Validate("abcde"))
	// runes, not bytes
	assert.NoError(t, s.Validate("éééé"))
}

func TestServiceAnagrams(t *testing.T) {
	s := newTestService(Options{MaxQueryLength: 20}, nil)

	result, err := s.Anagrams(context.Background(), "cat", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"act", "cat", "tac"}, result.Phrases)
	assert.False(t, result.Cached)

	result, err = s.Anagrams(context.Background(), "xyz", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{}, result.Phrases)
}

func TestServiceLimits(t *testing.T) {
	s := newTestService(Options{MaxResults: 4}, nil)
	ctx := context.Background()

	result, err := s.Anagrams(ctx, "god", 0)
	require.NoError(t, err)
	assert.Len(t, result.Phrases, 4)

	result, err = s.Anagrams(ctx, "god", 2)
	require.NoError(t, err)
	assert.Len(t, result.Phrases, 2)

	result, err = s.Anagrams(ctx, "god", 10)
	require.NoError(t, err)
	assert.Len(t, result.Phrases, 4)

	unlimited := newTestService(Options{}, nil)
	result, err = unlimited.Anagrams(ctx, "god", 0)
	require.NoError(t, err)
	assert.Len(t, result.Phrases, 12)
}

func TestServiceCache(t *testing.T) {
	mem := cache.NewMemory(8)
	s := newTestService(Options{}, mem)
	ctx := context.Background()

	first, err := s.Anagrams(ctx, "cat", 0)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	// same letters, same entry
	second, err := s.Anagrams(ctx, "T-A-C", 0)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Phrases, second.Phrases)

	assert.Equal(t, 1, mem.Stats()["hits"])
}

func TestServiceInfo(t *testing.T) {
	s := newTestService(Options{MaxQueryLength: 9, MaxResults: 3}, cache.NewMemory(2))
	info := s.Info()

	assert.Equal(t, 11, info["words"])
	assert.Equal(t, 1, info["minWordLength"])
	assert.Equal(t, 9, info["maxQueryLength"])
	assert.Equal(t, 3, info["maxResults"])
	assert.Equal(t, 2, info["cache_maxEntries"])
	assert.True(t, s.Known("Cat"))
	assert.False(t, s.Known("cow"))
}
