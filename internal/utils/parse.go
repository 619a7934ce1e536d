package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ConfigFormat is picked from the file extension
type ConfigFormat string

const (
	FormatTOML ConfigFormat = "toml"
	FormatYAML ConfigFormat = "yaml"
	FormatJSON ConfigFormat = "json"
)

// DetectConfigFormat maps a file extension to a format, TOML by default
func DetectConfigFormat(path string) ConfigFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// LoadTOMLFile loads and parses a TOML file into the provided struct
func LoadTOMLFile(configPath string, config any) error {
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return err
	}
	return nil
}

// LoadConfigFile decodes configPath into config using the format of its extension
func LoadConfigFile(configPath string, config any) error {
	format := DetectConfigFormat(configPath)
	if format == FormatTOML {
		return LoadTOMLFile(configPath, config)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}
	if err := unmarshal(format, data, config); err != nil {
		log.Warnf("%s parsing error in config file %s: %v. Attempting partial recovery...",
			strings.ToUpper(string(format)), configPath, err)
		return err
	}
	return nil
}

func unmarshal(format ConfigFormat, data []byte, out any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	case FormatJSON:
		return json.Unmarshal(data, out)
	default:
		_, err := toml.Decode(string(data), out)
		return err
	}
}

// ParseConfigWithRecovery parses a config file into a generic map so that
// the valid parts of a file with type errors can still be used
func ParseConfigWithRecovery(configPath string) (map[string]any, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	tempConfig := make(map[string]any)
	if err := unmarshal(DetectConfigFormat(configPath), data, &tempConfig); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return tempConfig, nil
}

// ExtractSection extracts a specific section from parsed config data
func ExtractSection(data map[string]any, sectionName string) (map[string]any, bool) {
	section, ok := data[sectionName].(map[string]any)
	return section, ok
}

// DecodeSection copies the keys of a parsed section onto out.
// Values are converted weakly ("8080" -> 8080) and fields that fail keep
// their current value. The returned error lists the rejected keys.
func DecodeSection(section map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "toml",
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	return decoder.Decode(section)
}

// ExtractInt64 safely extracts an integer value from a map.
// TOML yields int64, YAML int and JSON float64.
func ExtractInt64(data map[string]any, key string) (int, bool) {
	switch val := data[key].(type) {
	case int64:
		return int(val), true
	case int:
		return val, true
	case float64:
		return int(val), true
	}
	return 0, false
}

// ExtractString safely extracts a string value from a map
func ExtractString(data map[string]any, key string) (string, bool) {
	val, ok := data[key].(string)
	return val, ok
}
