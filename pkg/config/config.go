/*
Package config manages the TOML (or YAML/JSON) config for AnagramServe.

The file is created with defaults when missing. A file with type errors is
recovered section by section, keys that cannot be used keep their defaults.
The flat keys of the older config.json layout (dictionary_txt,
minimum_word_length, max_allowed_word_length, listen_address, listen_port)
are still accepted and override the sectioned values.
*/
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bastiangx/anagramserve/internal/utils"
	"github.com/charmbracelet/log"
)

// Cache backends
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server" yaml:"server" json:"server"`
	Dict   DictConfig   `toml:"dict" yaml:"dict" json:"dict"`
	Cache  CacheConfig  `toml:"cache" yaml:"cache" json:"cache"`
	CLI    CliConfig    `toml:"cli" yaml:"cli" json:"cli"`

	// flat keys of older config.json files
	DictionaryTxt        *string `toml:"dictionary_txt,omitempty" yaml:"dictionary_txt,omitempty" json:"dictionary_txt,omitempty"`
	MinimumWordLength    *int    `toml:"minimum_word_length,omitempty" yaml:"minimum_word_length,omitempty" json:"minimum_word_length,omitempty"`
	MaxAllowedWordLength *int    `toml:"max_allowed_word_length,omitempty" yaml:"max_allowed_word_length,omitempty" json:"max_allowed_word_length,omitempty"`
	ListenAddress        *string `toml:"listen_address,omitempty" yaml:"listen_address,omitempty" json:"listen_address,omitempty"`
	ListenPort           *int    `toml:"listen_port,omitempty" yaml:"listen_port,omitempty" json:"listen_port,omitempty"`
}

// ServerConfig has HTTP and IPC options.
type ServerConfig struct {
	ListenAddress        string `toml:"listen_address" yaml:"listen_address" json:"listen_address"`
	ListenPort           int    `toml:"listen_port" yaml:"listen_port" json:"listen_port"`
	MaxAllowedWordLength int    `toml:"max_allowed_word_length" yaml:"max_allowed_word_length" json:"max_allowed_word_length"`
	MaxResults           int    `toml:"max_results" yaml:"max_results" json:"max_results"`
	ShutdownTimeoutSecs  int    `toml:"shutdown_timeout_seconds" yaml:"shutdown_timeout_seconds" json:"shutdown_timeout_seconds"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path              string `toml:"path" yaml:"path" json:"path"`
	MinimumWordLength int    `toml:"minimum_word_length" yaml:"minimum_word_length" json:"minimum_word_length"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Backend       string `toml:"backend" yaml:"backend" json:"backend"`
	MaxEntries    int    `toml:"max_entries" yaml:"max_entries" json:"max_entries"`
	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr" json:"redis_addr"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password" json:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db" json:"redis_db"`
	TTLSeconds    int    `toml:"ttl_seconds" yaml:"ttl_seconds" json:"ttl_seconds"`
	Prefix        string `toml:"prefix" yaml:"prefix" json:"prefix"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int `toml:"default_limit" yaml:"default_limit" json:"default_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddress:        "",
			ListenPort:           8080,
			MaxAllowedWordLength: 20,
			MaxResults:           0,
			ShutdownTimeoutSecs:  5,
		},
		Dict: DictConfig{
			Path:              "words.txt",
			MinimumWordLength: 3,
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			MaxEntries: 1024,
			RedisAddr:  "localhost:6379",
			RedisDB:    0,
			TTLSeconds: 3600,
			Prefix:     "anagram:",
		},
		CLI: CliConfig{
			DefaultLimit: 50,
		},
	}
}

// Addr returns host:port for the HTTP listener.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.ListenAddress, strconv.Itoa(s.ListenPort))
}

// ShutdownTimeout returns the graceful shutdown deadline.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSecs) * time.Second
}

// TTL returns the cache entry lifetime, 0 means no expiry.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// GetDefaultConfigPath returns the default path for config.toml in the
// platform config dir (XDG_CONFIG_HOME, APPDATA or ~/.config), falling back
// to a writable location when that dir cannot be used.
func GetDefaultConfigPath() (string, error) {
	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		return "", err
	}
	return pathResolver.GetConfigPath("config.toml")
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/anagramserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML, YAML or JSON file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadConfigFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.applyLegacy()
	config.Validate()
	return config, nil
}

// tryPartialParse keeps whatever can be decoded from a file that failed strict parsing
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseConfigWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	sections := map[string]any{
		"server": &config.Server,
		"dict":   &config.Dict,
		"cache":  &config.Cache,
		"cli":    &config.CLI,
	}
	for name, target := range sections {
		section, ok := utils.ExtractSection(tempConfig, name)
		if !ok {
			continue
		}
		if err := utils.DecodeSection(section, target); err != nil {
			log.Warnf("Ignoring invalid keys in [%s]: %v", name, err)
		}
	}
	extractLegacy(tempConfig, config)

	config.applyLegacy()
	config.Validate()
	return config, nil
}

// extractLegacy picks the flat keys out of a generic map
func extractLegacy(data map[string]any, config *Config) {
	if val, ok := utils.ExtractString(data, "dictionary_txt"); ok {
		config.DictionaryTxt = &val
	}
	if val, ok := utils.ExtractInt64(data, "minimum_word_length"); ok {
		config.MinimumWordLength = &val
	}
	if val, ok := utils.ExtractInt64(data, "max_allowed_word_length"); ok {
		config.MaxAllowedWordLength = &val
	}
	if val, ok := utils.ExtractString(data, "listen_address"); ok {
		config.ListenAddress = &val
	}
	if val, ok := utils.ExtractInt64(data, "listen_port"); ok {
		config.ListenPort = &val
	}
}

// applyLegacy moves flat keys into their sections and clears them
func (c *Config) applyLegacy() {
	if c.DictionaryTxt != nil {
		c.Dict.Path = *c.DictionaryTxt
	}
	if c.MinimumWordLength != nil {
		c.Dict.MinimumWordLength = *c.MinimumWordLength
	}
	if c.MaxAllowedWordLength != nil {
		c.Server.MaxAllowedWordLength = *c.MaxAllowedWordLength
	}
	if c.ListenAddress != nil {
		c.Server.ListenAddress = *c.ListenAddress
	}
	if c.ListenPort != nil {
		c.Server.ListenPort = *c.ListenPort
	}
	c.DictionaryTxt, c.MinimumWordLength, c.MaxAllowedWordLength = nil, nil, nil
	c.ListenAddress, c.ListenPort = nil, nil
}

// Validate resets out of range values to their defaults.
func (c *Config) Validate() {
	def := DefaultConfig()

	if c.Server.ListenPort < 1 || c.Server.ListenPort > 65535 {
		log.Warnf("Invalid listen_port %d, using %d", c.Server.ListenPort, def.Server.ListenPort)
		c.Server.ListenPort = def.Server.ListenPort
	}
	if c.Server.MaxAllowedWordLength < 1 {
		log.Warnf("Invalid max_allowed_word_length %d, using %d", c.Server.MaxAllowedWordLength, def.Server.MaxAllowedWordLength)
		c.Server.MaxAllowedWordLength = def.Server.MaxAllowedWordLength
	}
	if c.Server.MaxResults < 0 {
		c.Server.MaxResults = 0
	}
	if c.Server.ShutdownTimeoutSecs < 1 {
		c.Server.ShutdownTimeoutSecs = def.Server.ShutdownTimeoutSecs
	}
	if c.Dict.Path == "" {
		c.Dict.Path = def.Dict.Path
	}
	if c.Dict.MinimumWordLength < 1 {
		log.Warnf("Invalid minimum_word_length %d, using %d", c.Dict.MinimumWordLength, def.Dict.MinimumWordLength)
		c.Dict.MinimumWordLength = def.Dict.MinimumWordLength
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	case "":
		c.Cache.Backend = CacheNone
	default:
		log.Warnf("Unknown cache backend %q, using %q", c.Cache.Backend, def.Cache.Backend)
		c.Cache.Backend = def.Cache.Backend
	}
	if c.Cache.MaxEntries < 1 {
		c.Cache.MaxEntries = def.Cache.MaxEntries
	}
	if c.Cache.TTLSeconds < 0 {
		c.Cache.TTLSeconds = 0
	}
	if c.CLI.DefaultLimit < 0 {
		c.CLI.DefaultLimit = 0
	}
}

// SaveConfig saves into a file, format picked by extension
func SaveConfig(config *Config, configPath string) error {
	if err := utils.SaveConfigFile(config, configPath); err != nil {
		return fmt.Errorf("failed to save config %s: %w", configPath, err)
	}
	return nil
}

// GetActiveConfigPath returns the absolute path of the loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}
