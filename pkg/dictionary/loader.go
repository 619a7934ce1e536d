package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// maxLineSize bounds a single line of the word list.
const maxLineSize = 1024 * 1024

// LoadError is returned when the word list cannot be opened or read.
// Without a dictionary there is nothing to serve, callers treat it as fatal.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dictionary %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is, or wraps, a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// LoadStats describes one build of a dictionary.
type LoadStats struct {
	Lines    int
	Words    int
	Skipped  int
	Duration time.Duration
}

// Load opens the word list at path and builds a Dictionary from it, one word per line.
func Load(path string, opts ...Option) (*Dictionary, error) {
	if err := ValidateFileFormat(path, FormatText); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer file.Close()

	d, err := build(path, file, opts...)
	if err != nil {
		return nil, err
	}
	d.logger.Debugf("Loaded dictionary %s: %d words from %d lines in %v",
		path, d.stats.Words, d.stats.Lines, d.stats.Duration)
	return d, nil
}

// Build reads words from r, one per line, and returns the resulting Dictionary.
func Build(r io.Reader, opts ...Option) (*Dictionary, error) {
	return build("<reader>", r, opts...)
}

func build(name string, r io.Reader, opts ...Option) (*Dictionary, error) {
	start := time.Now()
	d := newDictionary(opts...)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		d.stats.Lines++
		if !d.add(scanner.Text()) {
			d.stats.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}

	d.stats.Duration = time.Since(start)
	if d.stats.Words == 0 {
		d.logger.Warnf("Dictionary %s contains no usable words", name)
	}
	return d, nil
}
