package anagram

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lowercases text and keeps only [a-z0-9].
// Everything else, including whitespace, punctuation and accented
// letters, is dropped. The trie and the queries share this domain.
func Normalize(text string) string {
	lower := cases.Lower(language.Und).String(text)

	var b strings.Builder
	b.Grow(len(lower))
	for i := 0; i < len(lower); i++ {
		if c := lower[i]; isTokenByte(c) {
			b.WriteByte(c)
		}
	}
	return b.String()
}

func isTokenByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
