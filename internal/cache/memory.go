package cache

import (
	"context"
	"math"
	"slices"
	"sync"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/charmbracelet/log"
)

// Memory is an in-process LRU keyed by Key. Recency is tracked with a
// logical clock, the oldest entry is evicted when the cache is full.
type Memory struct {
	entries     map[string][]string
	accessTime  map[string]int64
	accessCount int64
	hits        int
	misses      int
	maxEntries  int
	logger      *log.Logger
	mu          sync.Mutex
}

// NewMemory returns a cache holding at most maxEntries phrase lists.
func NewMemory(maxEntries int) *Memory {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Memory{
		entries:    make(map[string][]string, maxEntries),
		accessTime: make(map[string]int64, maxEntries),
		maxEntries: maxEntries,
		logger:     logger.New("cache"),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	phrases, ok := m.entries[key]
	if !ok {
		m.misses++
		return nil, false
	}
	m.hits++
	m.markAccessed(key)
	return slices.Clone(phrases), true
}

func (m *Memory) Set(_ context.Context, key string, phrases []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.evictLRU()
	}
	m.entries[key] = slices.Clone(phrases)
	m.markAccessed(key)
}

func (m *Memory) Stats() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return map[string]int{
		"entries":    len(m.entries),
		"maxEntries": m.maxEntries,
		"hits":       m.hits,
		"misses":     m.misses,
	}
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) markAccessed(key string) {
	m.accessCount++
	m.accessTime[key] = m.accessCount
}

func (m *Memory) evictLRU() {
	var oldestKey string
	var oldestTime int64 = math.MaxInt64

	for key, accessTime := range m.accessTime {
		if accessTime < oldestTime {
			oldestTime = accessTime
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(m.entries, oldestKey)
		delete(m.accessTime, oldestKey)
		m.logger.Debugf("Evicted %q from result cache", oldestKey)
	}
}
