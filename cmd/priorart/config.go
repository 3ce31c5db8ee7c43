package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/poiesic/priorart/docstore"
	"github.com/poiesic/priorart/search"
)

// Config mirrors the optional YAML config file. Explicitly set flags
// override anything read from it.
type Config struct {
	DataDir          string `yaml:"data_dir"`
	Pattern          string `yaml:"pattern"`
	Field            string `yaml:"field"`
	TopK             int    `yaml:"top_k"`
	VocabularySize   int    `yaml:"vocabulary_size"`
	MinDocFreq       int    `yaml:"min_doc_freq"`
	FilterIncomplete bool   `yaml:"filter_incomplete"`
	PoolSize         int    `yaml:"pool_size"`
	Watch            bool   `yaml:"watch"`
	WatchDebounceMs  int    `yaml:"write_debounce_ms"`
	LogLevel         string `yaml:"log_level"`
}

func defaultConfig() *Config {
	return &Config{
		DataDir:         "data/patent_data_small",
		Pattern:         docstore.DefaultPattern,
		Field:           search.DefaultField,
		TopK:            search.DefaultTopK,
		VocabularySize:  search.DefaultVocabularySize,
		MinDocFreq:      search.DefaultMinDocFreq,
		WatchDebounceMs: 500,
		LogLevel:        "info",
	}
}

func readConfig(cfgPath string) (*Config, error) {
	cfgFile, err := os.Open(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("unable to open config file: %w", err)
	}
	defer cfgFile.Close()

	cfg := defaultConfig()
	dec := yaml.NewDecoder(cfgFile)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

// loadConfig resolves the effective configuration: defaults, then the
// config file when given, then explicitly set flags.
func loadConfig(c *cli.Context) (*Config, error) {
	cfg := defaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := readConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("field") {
		cfg.Field = c.String("field")
	}
	if c.IsSet("filter-incomplete") {
		cfg.FilterIncomplete = c.Bool("filter-incomplete")
	}
	if c.IsSet("pool-size") {
		cfg.PoolSize = c.Int("pool-size")
	}
	if c.IsSet("watch") {
		cfg.Watch = c.Bool("watch")
	}

	// An explicit --log-level already took effect in the Before hook.
	if !c.IsSet("log-level") && cfg.LogLevel != "" {
		if err := applyLogLevel(cfg.LogLevel); err != nil {
			return nil, err
		}
	}

	if cfg.Field == "" {
		cfg.Field = search.DefaultField
	}
	if cfg.TopK < 1 {
		cfg.TopK = search.DefaultTopK
	}
	return cfg, nil
}

// resolveTopK prefers an explicit --top-k over the config value.
func resolveTopK(c *cli.Context, cfg *Config) int {
	if c.IsSet("top-k") {
		return c.Int("top-k")
	}
	return cfg.TopK
}
