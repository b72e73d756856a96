// Package config loads the frameseq configuration from a YAML file, applying
// defaults and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/geofduf/frame-sequence/sequence"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding file values.
const (
	EnvChunkSize     = "FRAMESEQ_CHUNK_SIZE"
	EnvChunkStrategy = "FRAMESEQ_CHUNK_STRATEGY"
	EnvLogLevel      = "FRAMESEQ_LOG_LEVEL"
)

// Config holds all frameseq settings.
type Config struct {
	Chunking ChunkingConfig `yaml:"chunking"`
	Logging  LoggingConfig  `yaml:"logging"`

	// Presets maps names to spec strings, referenced as @name on the command line.
	Presets map[string]string `yaml:"presets,omitempty"`
}

// ChunkingConfig holds the defaults applied to sequences given on the command line.
type ChunkingConfig struct {
	Size      int               `yaml:"size"`       // 0 means a single chunk
	Strategy  sequence.Strategy `yaml:"strategy"`   // linear, cycle, cycle_progressions, progressions
	MaxChunks int               `yaml:"max_chunks"` // 0 means no cap
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level    string `yaml:"level"`    // debug, info, warn, error
	Encoding string `yaml:"encoding"` // json or console
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Chunking: ChunkingConfig{
			Strategy: sequence.StrategyLinear,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Load reads the configuration at path. A missing file yields the defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks value ranges and that every preset parses.
func (c *Config) Validate() error {
	if c.Chunking.Size < 0 {
		return fmt.Errorf("chunking.size must not be negative, got %d", c.Chunking.Size)
	}
	if c.Chunking.MaxChunks < 0 {
		return fmt.Errorf("chunking.max_chunks must not be negative, got %d", c.Chunking.MaxChunks)
	}
	if _, err := zap.ParseAtomicLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Encoding {
	case "json", "console":
	default:
		return fmt.Errorf("logging.encoding must be json or console, got %q", c.Logging.Encoding)
	}
	for name, spec := range c.Presets {
		if _, err := sequence.NewFromSpec(spec); err != nil {
			return fmt.Errorf("preset %q: %w", name, err)
		}
	}
	return nil
}

// Store returns a store holding every preset with the chunking defaults applied.
func (c *Config) Store() (*sequence.Store, error) {
	store := sequence.NewStore()
	for name, spec := range c.Presets {
		s, err := sequence.NewFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		c.Chunking.Apply(s)
		store.Add(name, s)
	}
	return store, nil
}

// Apply sets the chunk size and strategy of s, then caps its chunk count.
func (c ChunkingConfig) Apply(s *sequence.Sequence) {
	s.SetChunkSize(c.Size)
	s.SetChunkStrategy(c.Strategy)
	if c.MaxChunks > 0 {
		s.CapChunkCount(c.MaxChunks)
	}
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvChunkSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvChunkSize, err)
		}
		c.Chunking.Size = n
	}
	if v := os.Getenv(EnvChunkStrategy); v != "" {
		x, err := sequence.ParseStrategy(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvChunkStrategy, err)
		}
		c.Chunking.Strategy = x
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	return nil
}
