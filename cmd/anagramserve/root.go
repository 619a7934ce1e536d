package main

import (
	"fmt"
	"os"

	"github.com/bastiangx/anagramserve/internal/cache"
	"github.com/bastiangx/anagramserve/internal/logger"
	"github.com/bastiangx/anagramserve/internal/metrics"
	"github.com/bastiangx/anagramserve/internal/utils"
	"github.com/bastiangx/anagramserve/pkg/config"
	"github.com/bastiangx/anagramserve/pkg/dictionary"
	"github.com/bastiangx/anagramserve/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "anagramserve",
	Short: "AnagramServe finds every multi-word anagram of a phrase",
	Long:  `AnagramServe builds a letter trie from a word list and serves anagram phrases over HTTP, msgpack IPC or an interactive prompt.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		level, _ := cmd.Flags().GetString("log-level")
		logger.Setup(debug, level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (toml, yaml or json)")
	rootCmd.PersistentFlags().String("dict", "", "Word list to load, one word per line")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Toggle debug mode")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level without -d: debug, info, warn or error")
	rootCmd.PersistentFlags().Int("min", 0, "Minimum length of every word in a phrase")
}

// app is everything a command needs once the dictionary is loaded
type app struct {
	config  *config.Config
	dict    *dictionary.Dictionary
	cache   cache.Cache
	metrics *metrics.Metrics
	service *server.Service
}

// setup loads the config and the dictionary, applying flag overrides.
// A dictionary that cannot be loaded is fatal.
func setup(cmd *cobra.Command) *app {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, activePath, err := config.LoadConfigWithPriority(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config at: %s", config.GetActiveConfigPath(activePath))

	if cmd.Flags().Changed("dict") {
		cfg.Dict.Path, _ = cmd.Flags().GetString("dict")
	}
	if cmd.Flags().Changed("min") {
		cfg.Dict.MinimumWordLength, _ = cmd.Flags().GetInt("min")
	}
	cfg.Validate()

	dictPath := cfg.Dict.Path
	if pathResolver, err := utils.NewPathResolver(); err != nil {
		log.Warnf("Failed to initialize path resolver: %v", err)
	} else {
		dictPath = pathResolver.GetDictPath(cfg.Dict.Path)
	}

	dict, err := dictionary.Load(dictPath, dictionary.WithMinWordLength(cfg.Dict.MinimumWordLength))
	if err != nil {
		log.Fatalf("%v", err)
	}
	stats := dict.Stats()
	log.Infof("Loaded %s words from %s in %s", utils.FormatWithCommas(stats.Words), dictPath,
		utils.FormatElapsed(stats.Duration))

	c, err := cache.New(cfg.Cache)
	if err != nil {
		log.Warnf("Result cache disabled: %v", err)
		c = cache.Nop{}
	}
	if r, ok := c.(*cache.Redis); ok {
		if err := r.Ping(cmd.Context()); err != nil {
			log.Warnf("Redis at %s is not reachable, queries will not be cached: %v", cfg.Cache.RedisAddr, err)
		}
	}

	m := metrics.New()
	service := server.NewService(dict, c, m, server.Options{
		MaxQueryLength: cfg.Server.MaxAllowedWordLength,
		MaxResults:     cfg.Server.MaxResults,
	})

	return &app{config: cfg, dict: dict, cache: c, metrics: m, service: service}
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		log.Warnf("Closing cache: %v", err)
	}
}
