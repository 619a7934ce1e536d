package server

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/anagramserve/internal/cache"
	"github.com/bastiangx/anagramserve/internal/metrics"
	"github.com/charmbracelet/log"
)

var (
	ErrMissingQuery = errors.New("missing query")
	ErrQueryTooLong = errors.New("query too long")
)

// Generator is the part of the dictionary the servers need.
type Generator interface {
	GenerateN(query string, limit int) []string
	Contains(word string) bool
	Size() int
	MinWordLength() int
}

// Options are the limits applied before a query reaches the dictionary.
type Options struct {
	// MaxQueryLength is counted in runes of the raw query.
	MaxQueryLength int
	// MaxResults caps the phrases of one query, 0 for no cap.
	MaxResults int
}

// Result is one answered query.
type Result struct {
	Phrases []string
	Elapsed time.Duration
	Cached  bool
}

// Service validates queries and runs them through the cache and the dictionary.
// It is shared by the HTTP and IPC transports.
type Service struct {
	dict    Generator
	cache   cache.Cache
	metrics *metrics.Metrics
	opts    Options
}

// NewService wires a dictionary with an optional cache and metrics.
func NewService(dict Generator, c cache.Cache, m *metrics.Metrics, opts Options) *Service {
	if c == nil {
		c = cache.Nop{}
	}
	if m == nil {
		m = metrics.New()
	}
	m.SetDictionaryWords(dict.Size())
	return &Service{dict: dict, cache: c, metrics: m, opts: opts}
}

// Validate checks a raw query against the configured limits.
func (s *Service) Validate(query string) error {
	if query == "" {
		s.metrics.ObserveRejected("missing")
		return ErrMissingQuery
	}
	if s.opts.MaxQueryLength > 0 && utf8.RuneCountInString(query) > s.opts.MaxQueryLength {
		s.metrics.ObserveRejected("too_long")
		return ErrQueryTooLong
	}
	return nil
}

// Anagrams validates query and returns its phrases. limit > 0 lowers the
// configured result cap for this call.
func (s *Service) Anagrams(ctx context.Context, query string, limit int) (Result, error) {
	if err := s.Validate(query); err != nil {
		return Result{}, err
	}

	limit = s.effectiveLimit(limit)
	key := cache.Key(query, limit)

	start := time.Now()
	if phrases, ok := s.cache.Get(ctx, key); ok {
		s.metrics.ObserveCache(true)
		return Result{Phrases: phrases, Elapsed: time.Since(start), Cached: true}, nil
	}
	s.metrics.ObserveCache(false)

	phrases := s.dict.GenerateN(query, limit)
	elapsed := time.Since(start)
	s.metrics.ObserveSearch(elapsed, len(phrases))
	log.Debugf("Generated %d phrases for %q in %v", len(phrases), query, elapsed)

	s.cache.Set(ctx, key, phrases)
	return Result{Phrases: phrases, Elapsed: elapsed}, nil
}

func (s *Service) effectiveLimit(limit int) int {
	ceiling := s.opts.MaxResults
	switch {
	case limit <= 0:
		return ceiling
	case ceiling <= 0 || limit < ceiling:
		return limit
	default:
		return ceiling
	}
}

// Known reports whether word is a dictionary word.
func (s *Service) Known(word string) bool {
	return s.dict.Contains(word)
}

// Info summarizes the loaded dictionary and limits.
func (s *Service) Info() map[string]int {
	info := map[string]int{
		"words":          s.dict.Size(),
		"minWordLength":  s.dict.MinWordLength(),
		"maxQueryLength": s.opts.MaxQueryLength,
		"maxResults":     s.opts.MaxResults,
	}
	for k, v := range s.cache.Stats() {
		info["cache_"+k] = v
	}
	return info
}

// Metrics returns the collectors the service reports to.
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}
