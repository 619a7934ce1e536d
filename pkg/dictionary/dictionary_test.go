package dictionary

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWordList(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeWordList(t, "words.txt", "a\ncat\nact\ntac\n")

	d, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, d.Size())
	assert.Equal(t, []string{"act", "cat", "tac"}, d.Generate("cat"))
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	d, err := Load(path)
	require.Error(t, err)
	assert.Nil(t, d)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, path, le.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, IsLoadError(err))
	assert.Contains(t, err.Error(), "missing.txt")
}

func TestLoadDirectory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestBuildReadFailure(t *testing.T) {
	_, err := Build(failingReader{})
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestBuildSkipsEmptyLines(t *testing.T) {
	d, err := Build(strings.NewReader("cat\n\n   \n!!!\nACT\r\nCat\n"))
	require.NoError(t, err)

	stats := d.Stats()
	assert.Equal(t, 6, stats.Lines)
	assert.Equal(t, 3, stats.Skipped)
	assert.Equal(t, 2, stats.Words)
	assert.Equal(t, 2, d.Occurrences("cat"))
	assert.Equal(t, 1, d.Occurrences("act"))
	assert.Equal(t, 0, d.Occurrences("dog"))
}

func TestBuildNormalizesWholeLine(t *testing.T) {
	d, err := Build(strings.NewReader("Ice Cream\n"))
	require.NoError(t, err)

	assert.True(t, d.Contains("icecream"))
	assert.False(t, d.Contains("ice"))
}

func TestMinWordLength(t *testing.T) {
	words := []string{"a", "cat", "act"}

	d := FromWords(words, WithMinWordLength(2))
	assert.Equal(t, 2, d.MinWordLength())
	assert.Equal(t, []string{"act", "cat"}, d.Generate("cat"))

	d = FromWords(words, WithMinWordLength(0))
	assert.Equal(t, DefaultMinWordLength, d.MinWordLength())
}

func TestGenerateEdgeCases(t *testing.T) {
	d := FromWords([]string{"dog", "god", "go", "do", "g", "o", "d"})

	assert.Equal(t, []string{}, d.Generate(""))
	assert.Equal(t, []string{}, d.Generate("#$%"))
	assert.Equal(t, []string{}, d.Generate("xyz"))
	assert.Len(t, d.Generate("god"), 12)
	assert.Equal(t, d.Generate("god"), d.Generate("G-O-D"))
}

func TestGenerateMembership(t *testing.T) {
	d := FromWords([]string{"listen", "silent", "enlist", "tin", "lens", "is", "ten", "nil", "set", "net", "lit"}, WithMinWordLength(2))

	for _, phrase := range d.Generate("silent listen") {
		for _, token := range strings.Fields(phrase) {
			assert.True(t, d.Contains(token), "token %q of %q", token, phrase)
			assert.GreaterOrEqual(t, len(token), 2)
		}
	}
}

func TestGenerateN(t *testing.T) {
	d := FromWords([]string{"dog", "god", "go", "do", "g", "o", "d"})

	all := d.Generate("god")
	assert.Equal(t, all[:5], d.GenerateN("god", 5))
	assert.Equal(t, all, d.GenerateN("god", 0))
	assert.Equal(t, all, d.GenerateN("god", 100))
	assert.Equal(t, []string{}, d.GenerateN("", 3))
}

func TestAnagramsLazy(t *testing.T) {
	d := FromWords([]string{"dog", "god", "go", "do", "g", "o", "d"})

	count := 0
	for range d.Anagrams("god") {
		count++
	}
	assert.Equal(t, 12, count)
}

func TestIdempotentBuild(t *testing.T) {
	once := FromWords([]string{"dog", "god", "go"})
	twice := FromWords([]string{"dog", "god", "go", "dog", "GOD", "go"})

	assert.Equal(t, once.Size(), twice.Size())
	assert.Equal(t, once.Generate("odg"), twice.Generate("odg"))
	assert.Equal(t, once.Root().Count(), twice.Root().Count())
}

func TestWords(t *testing.T) {
	d := FromWords([]string{"cat", "cats", "catalog", "dog", "car"})

	assert.Equal(t, []string{"cat", "catalog", "cats"}, d.Words("cat", 0))
	assert.Equal(t, []string{"car", "cat"}, d.Words("ca", 2))
	assert.Equal(t, []string{"car", "cat", "catalog", "cats", "dog"}, d.Words("", 0))
	assert.Equal(t, []string{}, d.Words("zebra", 0))
}

func TestDetectFileFormat(t *testing.T) {
	assert.Equal(t, FormatText, DetectFileFormat("words.txt"))
	assert.Equal(t, FormatText, DetectFileFormat("/usr/share/dict/words"))
	assert.Equal(t, FormatUnknown, DetectFileFormat("dict_0001.bin"))

	info, ok := GetFormatInfo(FormatText)
	require.True(t, ok)
	assert.Contains(t, info.Extensions, ".txt")
}

func TestDictionaryLogger(t *testing.T) {
	assert.Equal(t, "dict", FromWords(nil).logger.GetPrefix())

	var buf bytes.Buffer
	l := logger.NewWithConfig(&buf, "words", log.DebugLevel, false, false, log.TextFormatter)
	path := writeWordList(t, "empty.txt", "!!!\n\n")

	d, err := Load(path, WithLogger(l))
	require.NoError(t, err)
	assert.Equal(t, 0, d.Size())
	assert.Contains(t, buf.String(), "contains no usable words")
	assert.Contains(t, buf.String(), "Loaded dictionary")
	assert.Contains(t, buf.String(), "words")
}
