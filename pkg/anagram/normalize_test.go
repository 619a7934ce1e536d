package anagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"cat", "cat"},
		{"CaT", "cat"},
		{"C@A#T!", "cat"},
		{"C@T!", "ct"},
		{"  hello world\n", "helloworld"},
		{"don't", "dont"},
		{"word2vec", "word2vec"},
		{"café", "caf"},
		{"ÜBER", "ber"},
		{"", ""},
		{"!!! ???", ""},
		{"\tR2-D2\r\n", "r2d2"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Hello, World!", "A man, a plan", "x-Y_z 9"} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}
