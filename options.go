package skosexpand

import (
	"log/slog"
	"runtime"

	"github.com/poiesic/skosexpand/cache"
	"github.com/poiesic/skosexpand/expansion"
	"github.com/poiesic/skosexpand/metrics"
	"github.com/poiesic/skosexpand/parser"
	"github.com/poiesic/skosexpand/storage"
)

// Option configures a Thesaurus.
type Option func(*options) error

type options struct {
	config        *expansion.Config
	cacheMode     cache.Mode
	cacheCapacity int
	poolSize      int
	snapshotDir   string
	snapshots     storage.SnapshotRepository
	metrics       *metrics.Metrics
	onDiag        parser.DiagnosticHandler
	logger        *slog.Logger
}

func defaultOptions() *options {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	return &options{
		config:    expansion.DefaultConfig(),
		cacheMode: cache.ModeUnbounded,
		poolSize:  poolSize,
		logger:    slog.Default(),
	}
}

// WithConfig sets the expansion configuration used by Expand.
// Default is expansion.DefaultConfig().
func WithConfig(cfg *expansion.Config) Option {
	return func(o *options) error {
		if cfg == nil {
			cfg = expansion.DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		o.config = cfg
		return nil
	}
}

// WithCacheMode selects the expansion cache implementation.
// Default is cache.ModeUnbounded.
func WithCacheMode(mode cache.Mode) Option {
	return func(o *options) error {
		o.cacheMode = mode
		return nil
	}
}

// WithCacheCapacity sets the entry limit of a bounded cache.
func WithCacheCapacity(capacity int) Option {
	return func(o *options) error {
		o.cacheCapacity = capacity
		return nil
	}
}

// WithPoolSize sets the worker pool size for batch expansion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *options) error {
		if size < 1 {
			size = 1
		}
		o.poolSize = size
		return nil
	}
}

// WithSnapshotDir enables snapshot reuse backed by a badger database in dir.
func WithSnapshotDir(dir string) Option {
	return func(o *options) error {
		o.snapshotDir = dir
		return nil
	}
}

// WithSnapshotRepository enables snapshot reuse backed by repo.
// The repository is not closed by the Thesaurus.
func WithSnapshotRepository(repo storage.SnapshotRepository) Option {
	return func(o *options) error {
		o.snapshots = repo
		return nil
	}
}

// WithMetrics records load, cache and expansion metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) error {
		o.metrics = m
		return nil
	}
}

// WithDiagnosticHandler receives every statement skipped while parsing.
func WithDiagnosticHandler(fn parser.DiagnosticHandler) Option {
	return func(o *options) error {
		o.onDiag = fn
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}
