// Package dictionary owns the anagram trie built from a word list and exposes
// phrase generation to the servers and the CLI.
package dictionary

import (
	"iter"
	"sort"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/bastiangx/anagramserve/pkg/anagram"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// DefaultMinWordLength is used when no threshold is given.
const DefaultMinWordLength = 1

// Dictionary is built once and read-only afterwards, so it can be shared
// between goroutines. Every search gets its own letter counts and path.
type Dictionary struct {
	root          *anagram.Node
	index         *patricia.Trie
	minWordLength int
	stats         LoadStats
	logger        *log.Logger
}

// Option configures a Dictionary at build time.
type Option func(*Dictionary)

// WithMinWordLength sets the shortest word allowed inside a phrase.
// Values below 1 fall back to DefaultMinWordLength.
func WithMinWordLength(n int) Option {
	return func(d *Dictionary) {
		if n < 1 {
			n = DefaultMinWordLength
		}
		d.minWordLength = n
	}
}

// WithLogger replaces the "dict" logger used while loading.
func WithLogger(l *log.Logger) Option {
	return func(d *Dictionary) {
		if l != nil {
			d.logger = l
		}
	}
}

func newDictionary(opts ...Option) *Dictionary {
	d := &Dictionary{
		root:          anagram.NewTrie(),
		index:         patricia.NewTrie(),
		minWordLength: DefaultMinWordLength,
		logger:        logger.New("dict"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// FromWords builds a Dictionary from an in-memory word list.
func FromWords(words []string, opts ...Option) *Dictionary {
	d := newDictionary(opts...)
	for _, w := range words {
		d.stats.Lines++
		if !d.add(w) {
			d.stats.Skipped++
		}
	}
	return d
}

// add inserts one raw word and returns false when it normalizes to nothing.
func (d *Dictionary) add(raw string) bool {
	token := anagram.Normalize(raw)
	if token == "" {
		return false
	}
	d.root.Insert(token)

	key := patricia.Prefix(token)
	if item := d.index.Get(key); item != nil {
		d.index.Set(key, item.(int)+1)
		return true
	}
	d.index.Insert(key, 1)
	d.stats.Words++
	return true
}

// Generate returns every anagram phrase of query. The slice is never nil.
func (d *Dictionary) Generate(query string) []string {
	return anagram.Generate(d.root, query, d.minWordLength)
}

// GenerateN returns at most limit phrases, limit <= 0 means all of them.
func (d *Dictionary) GenerateN(query string, limit int) []string {
	if limit <= 0 {
		return d.Generate(query)
	}
	results := []string{}
	for phrase := range d.Anagrams(query) {
		results = append(results, phrase)
		if len(results) >= limit {
			break
		}
	}
	return results
}

// Anagrams returns the lazy phrase sequence for query.
func (d *Dictionary) Anagrams(query string) iter.Seq[string] {
	return anagram.Search(d.root, query, d.minWordLength)
}

// Contains reports whether word, once normalized, is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	token := anagram.Normalize(word)
	if token == "" {
		return false
	}
	return d.index.Match(patricia.Prefix(token))
}

// Occurrences returns how many source lines normalized to word.
func (d *Dictionary) Occurrences(word string) int {
	token := anagram.Normalize(word)
	if token == "" {
		return 0
	}
	if item := d.index.Get(patricia.Prefix(token)); item != nil {
		return item.(int)
	}
	return 0
}

// Words lists the dictionary words starting with prefix in lexical order.
// limit <= 0 returns all matches.
func (d *Dictionary) Words(prefix string, limit int) []string {
	words := []string{}
	visit := func(p patricia.Prefix, item patricia.Item) error {
		words = append(words, string(p))
		return nil
	}

	token := anagram.Normalize(prefix)
	var err error
	if token == "" {
		err = d.index.Visit(visit)
	} else {
		err = d.index.VisitSubtree(patricia.Prefix(token), visit)
	}
	if err != nil {
		return words
	}

	sort.Strings(words)
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words
}

// Size returns the number of distinct normalized words.
func (d *Dictionary) Size() int {
	return d.stats.Words
}

// MinWordLength returns the configured threshold.
func (d *Dictionary) MinWordLength() int {
	return d.minWordLength
}

// Stats returns the figures collected while building.
func (d *Dictionary) Stats() LoadStats {
	return d.stats
}

// Root exposes the underlying trie, read-only.
func (d *Dictionary) Root() *anagram.Node {
	return d.root
}
