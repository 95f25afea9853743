package cache

import (
	"sync"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/poiesic/skosexpand/expansion"
)

type store interface {
	get(key string) (expansion.Result, bool)
	set(key string, result expansion.Result)
	purge()
	len() int
	close()
}

// mapStore never evicts.
type mapStore struct {
	mu      sync.RWMutex
	entries map[string]expansion.Result
}

func newMapStore() *mapStore {
	return &mapStore{entries: make(map[string]expansion.Result)}
}

func (s *mapStore) get(key string) (expansion.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.entries[key]
	return r, ok
}

func (s *mapStore) set(key string, result expansion.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = result
}

func (s *mapStore) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.entries)
}

func (s *mapStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *mapStore) close() {}

// boundedStore caps the entry count with ristretto. Every entry costs 1, so
// MaxCost is the capacity. The admission policy may reject a write.
type boundedStore struct {
	cache *ristretto.Cache[string, expansion.Result]
}

func newBoundedStore(capacity int) (*boundedStore, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, expansion.Result]{
		NumCounters: int64(capacity) * 10,
		MaxCost:     int64(capacity),
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &boundedStore{cache: c}, nil
}

func (s *boundedStore) get(key string) (expansion.Result, bool) {
	return s.cache.Get(key)
}

func (s *boundedStore) set(key string, result expansion.Result) {
	if s.cache.Set(key, result, 1) {
		s.cache.Wait()
	}
}

func (s *boundedStore) purge() {
	s.cache.Clear()
}

func (s *boundedStore) len() int {
	return -1
}

func (s *boundedStore) close() {
	s.cache.Close()
}
