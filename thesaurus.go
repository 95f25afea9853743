// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package skosexpand

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/skosexpand/cache"
	"github.com/poiesic/skosexpand/expansion"
	"github.com/poiesic/skosexpand/graph"
	"github.com/poiesic/skosexpand/index"
	"github.com/poiesic/skosexpand/storage"
	"github.com/poiesic/skosexpand/storage/badger"
)

// Thesaurus is a loaded SKOS thesaurus ready to expand tokens.
// All methods are safe for concurrent use.
type Thesaurus struct {
	source    string
	opts      *options
	state     atomic.Pointer[state]
	pool      *ants.Pool
	snapshots storage.SnapshotRepository
	backend   *badger.Backend // owned, nil unless WithSnapshotDir
	reloadMu  sync.Mutex
	closed    atomic.Bool
	logger    *slog.Logger
}

// Stats describes the published thesaurus.
type Stats struct {
	Source      string
	Fingerprint string
	// Origin is metrics.OriginParsed or metrics.OriginSnapshot.
	Origin      string
	Graph       graph.Stats
	LabelKeys   int
	Diagnostics int
	Cache       cache.Stats
	Generation  uint64
	LoadedAt    time.Time
}

// NewThesaurus loads the thesaurus stored at path.
// Returns an error wrapping core.ErrSourceUnavailable when the file cannot be
// read or is empty, and core.ErrEmptyGraph when it holds no concept.
func NewThesaurus(path string, opts ...Option) (*Thesaurus, error) {
	if path == "" {
		return nil, ErrSourceRequired
	}
	t, err := newThesaurus(path, opts)
	if err != nil {
		return nil, err
	}

	st, err := t.loadFile(context.Background(), path)
	if err != nil {
		t.release()
		return nil, err
	}
	t.publish(st)
	return t, nil
}

// LoadReader loads a thesaurus from r. Snapshots are not used and Reload
// returns ErrNoSource; use ReloadReader instead.
func LoadReader(r io.Reader, opts ...Option) (*Thesaurus, error) {
	t, err := newThesaurus("", opts)
	if err != nil {
		return nil, err
	}

	st, err := t.loadReader(r, "reader")
	if err != nil {
		t.release()
		return nil, err
	}
	t.publish(st)
	return t, nil
}

func newThesaurus(source string, opts []Option) (*Thesaurus, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.snapshotDir != "" && o.snapshots != nil {
		return nil, ErrConflictingSnapshotOptions
	}

	t := &Thesaurus{
		source:    source,
		opts:      o,
		snapshots: o.snapshots,
		logger:    o.logger,
	}

	pool, err := ants.NewPool(o.poolSize)
	if err != nil {
		return nil, err
	}
	t.pool = pool

	if o.snapshotDir != "" {
		backend, err := badger.OpenBackend(o.snapshotDir, false)
		if err != nil {
			t.release()
			return nil, err
		}
		t.backend = backend
		t.snapshots = badger.NewSnapshotRepository(backend)
	}
	return t, nil
}

// Config returns a copy of the expansion configuration.
func (t *Thesaurus) Config() expansion.Config {
	return *t.opts.config
}

// Expand expands token with the configured kind, policy, depth and language.
func (t *Thesaurus) Expand(token string) expansion.Result {
	return t.ExpandRequest(t.opts.config.Request(token))
}

// ExpandRequest expands a fully specified request. Depths above the
// configured maximum are clamped. A closed thesaurus yields empty results.
func (t *Thesaurus) ExpandRequest(req expansion.Request) expansion.Result {
	st := t.acquire()
	if st == nil {
		return expansion.Result{}
	}
	defer st.release()
	return st.cache.GetOrCompute(req)
}

// Seeds returns the sorted URIs of the concepts token resolves to under the
// configured kind and language.
func (t *Thesaurus) Seeds(token string) []string {
	st := t.acquire()
	if st == nil {
		return nil
	}
	defer st.release()
	return st.engine.Seeds(t.opts.config.Request(token))
}

// ExpandAll expands every request on the worker pool. Results are returned in
// request order. All requests observe the same published graph.
func (t *Thesaurus) ExpandAll(ctx context.Context, reqs []expansion.Request) ([]expansion.Result, error) {
	st := t.acquire()
	if st == nil {
		return nil, ErrClosed
	}
	defer st.release()

	results := make([]expansion.Result, len(reqs))
	var wg sync.WaitGroup
	for i, req := range reqs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		err := t.pool.Submit(func() {
			defer wg.Done()
			results[i] = st.cache.GetOrCompute(req)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()
	return results, nil
}

// Reload re-reads the source file and publishes the new graph together with
// a fresh cache. On failure the previous thesaurus stays in service.
func (t *Thesaurus) Reload(ctx context.Context) error {
	if t.source == "" {
		return ErrNoSource
	}
	t.reloadMu.Lock()
	defer t.reloadMu.Unlock()
	if t.closed.Load() {
		return ErrClosed
	}

	st, err := t.loadFile(ctx, t.source)
	if err != nil {
		t.logger.Error("reload failed, keeping current thesaurus", "source", t.source, "err", err)
		return err
	}
	t.publish(st)
	return nil
}

// ReloadReader replaces the thesaurus with the one read from r.
// On failure the previous thesaurus stays in service.
func (t *Thesaurus) ReloadReader(ctx context.Context, r io.Reader) error {
	t.reloadMu.Lock()
	defer t.reloadMu.Unlock()
	if t.closed.Load() {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	st, err := t.loadReader(r, "reader")
	if err != nil {
		t.logger.Error("reload failed, keeping current thesaurus", "err", err)
		return err
	}
	t.publish(st)
	return nil
}

// Graph returns the published concept graph.
func (t *Thesaurus) Graph() *graph.Graph {
	st := t.state.Load()
	if st == nil {
		return nil
	}
	return st.graph
}

// Index returns the published label index.
func (t *Thesaurus) Index() *index.LabelIndex {
	st := t.state.Load()
	if st == nil {
		return nil
	}
	return st.index
}

// Stats returns statistics for the published thesaurus.
func (t *Thesaurus) Stats() Stats {
	st := t.acquire()
	if st == nil {
		return Stats{Source: t.source}
	}
	defer st.release()

	return Stats{
		Source:      st.source,
		Fingerprint: st.fingerprint,
		Origin:      st.origin,
		Graph:       st.graph.Stats(),
		LabelKeys:   st.index.Keys(),
		Diagnostics: st.diagnostics,
		Cache:       st.cache.Stats(),
		Generation:  st.generation,
		LoadedAt:    st.loadedAt,
	}
}

// Close releases the worker pool, the cache and an owned snapshot store.
// The thesaurus should not be used after calling Close.
func (t *Thesaurus) Close() error {
	t.reloadMu.Lock()
	defer t.reloadMu.Unlock()
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	if old := t.state.Swap(nil); old != nil {
		old.retire()
	}
	return t.release()
}

func (t *Thesaurus) release() error {
	if t.pool != nil {
		t.pool.Release()
	}
	if t.backend == nil {
		return nil
	}
	if err := t.snapshots.Close(); err != nil {
		t.logger.Error("error closing snapshot repository", "err", err)
	}
	if err := t.backend.Close(); err != nil {
		t.logger.Error("error closing snapshot store", "err", err)
		return err
	}
	return nil
}

var generations atomic.Uint64

func (t *Thesaurus) publish(st *state) {
	st.generation = generations.Add(1)
	if old := t.state.Swap(st); old != nil {
		old.retire()
	}
	t.logger.Info("thesaurus published",
		"source", st.source,
		"origin", st.origin,
		"concepts", st.graph.Len(),
		"generation", st.generation)
}

// acquire returns the published state with a reference held, or nil after
// Close. Callers must release the state.
func (t *Thesaurus) acquire() *state {
	for {
		st := t.state.Load()
		if st == nil {
			return nil
		}
		st.refs.Add(1)
		if t.state.Load() == st {
			return st
		}
		st.release()
	}
}

// state is one published generation of the thesaurus. Its cache is closed
// once the state is retired and no caller holds a reference.
type state struct {
	graph       *graph.Graph
	index       *index.LabelIndex
	engine      *expansion.Engine
	cache       *cache.Cache
	source      string
	fingerprint string
	origin      string
	diagnostics int
	loadedAt    time.Time
	generation  uint64

	refs      atomic.Int64
	retired   atomic.Bool
	closeOnce sync.Once
}

func (s *state) release() {
	if s.refs.Add(-1) == 0 && s.retired.Load() {
		s.close()
	}
}

func (s *state) retire() {
	s.retired.Store(true)
	if s.refs.Load() == 0 {
		s.close()
	}
}

func (s *state) close() {
	s.closeOnce.Do(s.cache.Close)
}
