package cache

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/poiesic/skosexpand/expansion"
	"github.com/poiesic/skosexpand/metrics"
)

// Mode selects the eviction behavior of a Cache.
type Mode int

const (
	// ModeUnbounded keeps every entry until Purge.
	ModeUnbounded Mode = iota
	// ModeBounded keeps at most Capacity entries, evicting by admission policy.
	ModeBounded
)

func (m Mode) String() string {
	switch m {
	case ModeUnbounded:
		return "unbounded"
	case ModeBounded:
		return "bounded"
	default:
		return "unknown"
	}
}

// ParseMode parses "unbounded" or "bounded".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unbounded", "":
		return ModeUnbounded, nil
	case "bounded":
		return ModeBounded, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// ComputeFunc produces the result for a request on a cache miss.
// It must be deterministic.
type ComputeFunc func(expansion.Request) expansion.Result

// Stats reports cache activity.
type Stats struct {
	Mode   Mode
	Hits   int64
	Misses int64
	// Entries is the number of cached results, or -1 when the store cannot tell.
	Entries int
}

// Cache memoizes expansion results per request. Concurrent misses on the
// same request share a single computation.
type Cache struct {
	compute  ComputeFunc
	mode     Mode
	capacity int
	store    store
	group    singleflight.Group
	metrics  *metrics.Metrics
	logger   *slog.Logger
	hits     atomic.Int64
	misses   atomic.Int64
}

// Option configures a Cache.
type Option func(*Cache) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// WithMode sets the eviction mode.
// Default is ModeUnbounded.
func WithMode(mode Mode) Option {
	return func(c *Cache) error {
		if mode != ModeUnbounded && mode != ModeBounded {
			return fmt.Errorf("%w: %d", ErrUnknownMode, mode)
		}
		c.mode = mode
		return nil
	}
}

// WithCapacity sets the maximum number of entries in bounded mode.
func WithCapacity(capacity int) Option {
	return func(c *Cache) error {
		c.capacity = capacity
		return nil
	}
}

// WithMetrics records hits and misses in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Cache) error {
		c.metrics = m
		return nil
	}
}

// New creates a cache in front of compute.
func New(compute ComputeFunc, opts ...Option) (*Cache, error) {
	if compute == nil {
		return nil, ErrComputeRequired
	}

	c := &Cache{
		compute: compute,
		mode:    ModeUnbounded,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.logger = c.logger.With("component", "expansion-cache")

	switch c.mode {
	case ModeBounded:
		if c.capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		s, err := newBoundedStore(c.capacity)
		if err != nil {
			return nil, fmt.Errorf("creating bounded cache: %w", err)
		}
		c.store = s
	default:
		c.store = newMapStore()
	}
	return c, nil
}

// GetOrCompute returns the cached result for req, computing and storing it
// on a miss.
func (c *Cache) GetOrCompute(req expansion.Request) expansion.Result {
	key := buildKey(req)
	if result, ok := c.store.get(key); ok {
		c.hits.Add(1)
		c.metrics.CacheHit()
		return result
	}

	c.misses.Add(1)
	c.metrics.CacheMiss()
	val, _, _ := c.group.Do(key, func() (any, error) {
		if result, ok := c.store.get(key); ok {
			return result, nil
		}
		result := c.compute(req)
		c.store.set(key, result)
		return result, nil
	})
	return val.(expansion.Result)
}

// Purge drops every entry. Counters are kept.
func (c *Cache) Purge() {
	c.store.purge()
	c.logger.Debug("cache purged")
}

// Close releases the store. The cache must not be used afterwards.
func (c *Cache) Close() {
	c.store.close()
}

// Stats returns hit and miss counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Mode:    c.mode,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.store.len(),
	}
}

// buildKey encodes every request field. The language is length-prefixed and
// the token goes last, so separators inside either cannot collide.
func buildKey(req expansion.Request) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(int(req.Kind)))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(int(req.Policy)))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(req.Depth))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(len(req.Language)))
	sb.WriteByte(':')
	sb.WriteString(req.Language)
	sb.WriteByte('|')
	sb.WriteString(req.Token)
	return sb.String()
}
