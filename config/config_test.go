package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/skosexpand/cache"
	"github.com/poiesic/skosexpand/expansion"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skosexpand.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "label", cfg.Expansion.Mode)
	assert.Equal(t, []string{"labels", "broader"}, cfg.Expansion.Policy)
	assert.Equal(t, 1, cfg.Expansion.Depth)
	assert.Equal(t, 2, cfg.Expansion.MaxDepth)
	assert.Equal(t, "unbounded", cfg.Cache.Mode)
	assert.Equal(t, "info", cfg.Logging.Level)

	exp, err := cfg.Expansion.Build()
	require.NoError(t, err)
	assert.Equal(t, expansion.DefaultConfig(), exp)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
thesaurus:
  source: testdata/ukat_examples.ttl
  snapshotDir: /var/lib/skosexpand
expansion:
  mode: uri
  policy: [labels, narrower, related]
  depth: 2
  maxDepth: 3
  language: EN-gb
cache:
  mode: bounded
  capacity: 500
workers:
  poolSize: 4
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "testdata/ukat_examples.ttl", cfg.Thesaurus.Source)
	assert.Equal(t, "/var/lib/skosexpand", cfg.Thesaurus.SnapshotDir)
	assert.Equal(t, 4, cfg.Workers.Size())

	exp, err := cfg.Expansion.Build()
	require.NoError(t, err)
	assert.Equal(t, expansion.KindURI, exp.Kind)
	assert.Equal(t, expansion.PolicyLabels|expansion.PolicyNarrower|expansion.PolicyRelated, exp.Policy)
	assert.Equal(t, 2, exp.Depth)
	assert.Equal(t, 3, exp.MaxDepth)
	assert.Equal(t, "en-GB", exp.Language)

	mode, err := cfg.Cache.CacheMode()
	require.NoError(t, err)
	assert.Equal(t, cache.ModeBounded, mode)
	assert.Equal(t, 500, cfg.Cache.Capacity)

	level, err := cfg.Logging.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "expansion:\n  depth: 0\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Expansion.Depth)
	assert.Equal(t, 2, cfg.Expansion.MaxDepth)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "expansion: [unclosed"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SKOSEXPAND_THESAURUS_SOURCE", "/data/thesaurus.nt")
	t.Setenv("SKOSEXPAND_SNAPSHOT_DIR", "/tmp/snapshots")
	t.Setenv("SKOSEXPAND_EXPANSION_MODE", "uri")
	t.Setenv("SKOSEXPAND_EXPANSION_POLICY", "broader,related")
	t.Setenv("SKOSEXPAND_EXPANSION_DEPTH", "2")
	t.Setenv("SKOSEXPAND_EXPANSION_MAX_DEPTH", "4")
	t.Setenv("SKOSEXPAND_EXPANSION_LANGUAGE", "fr")
	t.Setenv("SKOSEXPAND_CACHE_MODE", "bounded")
	t.Setenv("SKOSEXPAND_CACHE_CAPACITY", "64")
	t.Setenv("SKOSEXPAND_WORKERS_POOL_SIZE", "3")
	t.Setenv("SKOSEXPAND_LOGGING_LEVEL", "warn")
	t.Setenv("SKOSEXPAND_LOGGING_FORMAT", "json")

	path := writeConfig(t, "thesaurus:\n  source: from-file.ttl\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/data/thesaurus.nt", cfg.Thesaurus.Source)
	assert.Equal(t, "/tmp/snapshots", cfg.Thesaurus.SnapshotDir)
	assert.Equal(t, "uri", cfg.Expansion.Mode)
	assert.Equal(t, []string{"broader", "related"}, cfg.Expansion.Policy)
	assert.Equal(t, 2, cfg.Expansion.Depth)
	assert.Equal(t, 4, cfg.Expansion.MaxDepth)
	assert.Equal(t, "fr", cfg.Expansion.Language)
	assert.Equal(t, "bounded", cfg.Cache.Mode)
	assert.Equal(t, 64, cfg.Cache.Capacity)
	assert.Equal(t, 3, cfg.Workers.PoolSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("SKOSEXPAND_EXPANSION_DEPTH", "deep")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Expansion.Depth)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Expansion.Mode = "iri" }},
		{"unknown policy", func(c *Config) { c.Expansion.Policy = []string{"sideways"} }},
		{"negative depth", func(c *Config) { c.Expansion.Depth = -1 }},
		{"negative max depth", func(c *Config) { c.Expansion.MaxDepth = -2 }},
		{"unknown cache mode", func(c *Config) { c.Cache.Mode = "lru" }},
		{"bounded without capacity", func(c *Config) { c.Cache.Mode = "bounded"; c.Cache.Capacity = 0 }},
		{"negative pool", func(c *Config) { c.Workers.PoolSize = -1 }},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestWorkersConfig_Size(t *testing.T) {
	assert.GreaterOrEqual(t, WorkersConfig{}.Size(), 1)
	assert.Equal(t, 7, WorkersConfig{PoolSize: 7}.Size())
}
