// Package config loads skosexpand configuration from YAML files with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/skosexpand/cache"
	"github.com/poiesic/skosexpand/expansion"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKOSEXPAND_"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the top-level application configuration.
type Config struct {
	Thesaurus ThesaurusConfig `yaml:"thesaurus"`
	Expansion ExpansionConfig `yaml:"expansion"`
	Cache     CacheConfig     `yaml:"cache"`
	Workers   WorkersConfig   `yaml:"workers"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ThesaurusConfig locates the thesaurus and its optional snapshot store.
type ThesaurusConfig struct {
	Source      string `yaml:"source"`
	SnapshotDir string `yaml:"snapshotDir"`
}

// ExpansionConfig selects how tokens are expanded.
type ExpansionConfig struct {
	Mode     string   `yaml:"mode"`
	Policy   []string `yaml:"policy"`
	Depth    int      `yaml:"depth"`
	MaxDepth int      `yaml:"maxDepth"`
	Language string   `yaml:"language"`
}

// CacheConfig selects the expansion cache store.
type CacheConfig struct {
	Mode     string `yaml:"mode"`
	Capacity int    `yaml:"capacity"`
}

// WorkersConfig sizes the batch expansion pool.
type WorkersConfig struct {
	PoolSize int `yaml:"poolSize"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides. It returns a Config populated with defaults for any missing values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	exp := expansion.DefaultConfig()
	return &Config{
		Expansion: ExpansionConfig{
			Mode:     exp.Kind.String(),
			Policy:   strings.Split(exp.Policy.String(), "|"),
			Depth:    exp.Depth,
			MaxDepth: exp.MaxDepth,
		},
		Cache: CacheConfig{
			Mode:     cache.ModeUnbounded.String(),
			Capacity: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if _, err := c.Expansion.Build(); err != nil {
		return fmt.Errorf("%w: expansion: %w", ErrInvalidConfig, err)
	}
	mode, err := cache.ParseMode(c.Cache.Mode)
	if err != nil {
		return fmt.Errorf("%w: cache: %w", ErrInvalidConfig, err)
	}
	if mode == cache.ModeBounded && c.Cache.Capacity <= 0 {
		return fmt.Errorf("%w: cache: %w", ErrInvalidConfig, cache.ErrInvalidCapacity)
	}
	if c.Workers.PoolSize < 0 {
		return fmt.Errorf("%w: workers: pool size %d", ErrInvalidConfig, c.Workers.PoolSize)
	}
	if _, err := c.Logging.SlogLevel(); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: logging: unknown format %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Build converts the section into a validated expansion config.
func (e ExpansionConfig) Build() (*expansion.Config, error) {
	kind, err := expansion.ParseKind(e.Mode)
	if err != nil {
		return nil, err
	}
	policy, err := expansion.ParsePolicy(e.Policy...)
	if err != nil {
		return nil, err
	}
	cfg := expansion.NewConfig(
		expansion.WithKind(kind),
		expansion.WithPolicy(policy),
		expansion.WithDepth(e.Depth),
		expansion.WithDepthCap(e.MaxDepth),
		expansion.WithLanguage(e.Language),
	)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CacheMode parses the configured cache mode.
func (c CacheConfig) CacheMode() (cache.Mode, error) {
	return cache.ParseMode(c.Mode)
}

// Size returns the pool size, defaulting to half the CPUs (at least one).
func (w WorkersConfig) Size() int {
	if w.PoolSize > 0 {
		return w.PoolSize
	}
	return max(1, runtime.NumCPU()/2)
}

// SlogLevel parses Level as a slog level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, err
	}
	return level, nil
}

// applyEnvOverrides reads SKOSEXPAND_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "THESAURUS_SOURCE"); v != "" {
		cfg.Thesaurus.Source = v
	}
	if v := os.Getenv(EnvPrefix + "SNAPSHOT_DIR"); v != "" {
		cfg.Thesaurus.SnapshotDir = v
	}
	if v := os.Getenv(EnvPrefix + "EXPANSION_MODE"); v != "" {
		cfg.Expansion.Mode = v
	}
	if v := os.Getenv(EnvPrefix + "EXPANSION_POLICY"); v != "" {
		cfg.Expansion.Policy = strings.Split(v, ",")
	}
	if v := os.Getenv(EnvPrefix + "EXPANSION_DEPTH"); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			cfg.Expansion.Depth = depth
		}
	}
	if v := os.Getenv(EnvPrefix + "EXPANSION_MAX_DEPTH"); v != "" {
		if depth, err := strconv.Atoi(v); err == nil {
			cfg.Expansion.MaxDepth = depth
		}
	}
	if v := os.Getenv(EnvPrefix + "EXPANSION_LANGUAGE"); v != "" {
		cfg.Expansion.Language = v
	}
	if v := os.Getenv(EnvPrefix + "CACHE_MODE"); v != "" {
		cfg.Cache.Mode = v
	}
	if v := os.Getenv(EnvPrefix + "CACHE_CAPACITY"); v != "" {
		if capacity, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Capacity = capacity
		}
	}
	if v := os.Getenv(EnvPrefix + "WORKERS_POOL_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			cfg.Workers.PoolSize = size
		}
	}
	if v := os.Getenv(EnvPrefix + "LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvPrefix + "LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
