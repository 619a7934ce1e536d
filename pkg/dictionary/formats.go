package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bastiangx/anagramserve/internal/logger"
)

// FileFormat represents the supported word list formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // Plain text, one word per line
)

// FormatInfo contains metadata about a word list format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".dic", ".lst", ".words", ""},
	},
}

// ValidateFileFormat checks that filename is a regular, readable file.
// An unexpected extension is only worth a warning, any text file works.
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, expected a word list", filename)
	}

	lg := logger.New("dict")
	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("unknown format: %v", expectedFormat)
	}

	if DetectFileFormat(filename) != expectedFormat {
		lg.Warnf("File %s has unusual extension for %s (expected one of %q)",
			filename, formatInfo.Description, formatInfo.Extensions)
	}
	if fileInfo.Size() == 0 {
		lg.Warnf("Word list %s is empty", filename)
	}
	return nil
}

// DetectFileFormat guesses the format of filename from its extension
func DetectFileFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		if slices.Contains(info.Extensions, ext) {
			return format
		}
	}
	return FormatUnknown
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
