package skosexpand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/poiesic/skosexpand/cache"
	"github.com/poiesic/skosexpand/core"
	"github.com/poiesic/skosexpand/expansion"
	"github.com/poiesic/skosexpand/graph"
	"github.com/poiesic/skosexpand/index"
	"github.com/poiesic/skosexpand/metrics"
	"github.com/poiesic/skosexpand/parser"
	"github.com/poiesic/skosexpand/storage"
)

// loadFile builds a state from the file at path. With a snapshot repository
// configured, a snapshot of an identical source replaces parsing.
func (t *Thesaurus) loadFile(ctx context.Context, path string) (*state, error) {
	start := time.Now()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSourceUnavailable, err)
	}
	defer f.Close()

	if t.snapshots == nil {
		return t.parse(f, path, "", start)
	}

	fingerprint, n, err := core.Fingerprint(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSourceUnavailable, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: source is empty", core.ErrSourceUnavailable)
	}

	if st, ok := t.fromSnapshot(ctx, fingerprint, path, start); ok {
		return st, nil
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrSourceUnavailable, err)
	}
	st, err := t.parse(f, path, fingerprint, start)
	if err != nil {
		return nil, err
	}
	t.saveSnapshot(ctx, st)
	return st, nil
}

func (t *Thesaurus) loadReader(r io.Reader, source string) (*state, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil reader", core.ErrSourceUnavailable)
	}
	return t.parse(r, source, "", time.Now())
}

// parse builds a state from serialized triples.
// A source failure takes precedence over an empty graph.
func (t *Thesaurus) parse(r io.Reader, source, fingerprint string, start time.Time) (*state, error) {
	p, err := parser.New(
		parser.WithLogger(t.logger),
		parser.WithDiagnosticHandler(func(pe *core.ParseError) {
			t.opts.metrics.ParseDiagnostic()
			if t.opts.onDiag != nil {
				t.opts.onDiag(pe)
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	stream := p.Parse(r)
	g, buildErr := graph.Build(stream.Triples(), graph.WithLogger(t.logger))
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if buildErr != nil {
		return nil, buildErr
	}

	if n := len(stream.Diagnostics()); n > 0 {
		t.logger.Warn("skipped malformed statements", "source", source, "skipped", n, "statements", stream.Statements())
	}

	st, err := t.newState(g, metrics.OriginParsed)
	if err != nil {
		return nil, err
	}
	st.source = source
	st.fingerprint = fingerprint
	st.diagnostics = len(stream.Diagnostics())
	t.opts.metrics.ObserveLoad(metrics.OriginParsed, g.Len(), time.Since(start).Seconds())
	return st, nil
}

// fromSnapshot rebuilds a state from a stored snapshot. Any snapshot failure
// falls back to parsing.
func (t *Thesaurus) fromSnapshot(ctx context.Context, fingerprint, source string, start time.Time) (*state, bool) {
	meta, concepts, err := t.snapshots.LoadSnapshot(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			t.logger.Warn("error loading snapshot, parsing source", "fingerprint", fingerprint, "err", err)
		}
		return nil, false
	}

	g, err := graph.FromConcepts(concepts, graph.WithLogger(t.logger))
	if err != nil {
		t.logger.Warn("unusable snapshot, parsing source", "fingerprint", fingerprint, "err", err)
		return nil, false
	}

	st, err := t.newState(g, metrics.OriginSnapshot)
	if err != nil {
		t.logger.Warn("error building state from snapshot", "fingerprint", fingerprint, "err", err)
		return nil, false
	}
	st.source = source
	st.fingerprint = fingerprint
	t.logger.Debug("loaded thesaurus snapshot", "fingerprint", fingerprint, "created_at", meta.CreatedAt)
	t.opts.metrics.ObserveLoad(metrics.OriginSnapshot, g.Len(), time.Since(start).Seconds())
	return st, true
}

// saveSnapshot stores the parsed graph. Failures are logged only.
func (t *Thesaurus) saveSnapshot(ctx context.Context, st *state) {
	meta := &core.SnapshotMeta{Fingerprint: st.fingerprint, Source: st.source}
	concepts := slices.Collect(st.graph.Concepts())
	if err := t.snapshots.SaveSnapshot(ctx, meta, concepts); err != nil {
		t.logger.Warn("error saving snapshot", "fingerprint", st.fingerprint, "err", err)
		return
	}
	t.logger.Debug("saved thesaurus snapshot", "fingerprint", st.fingerprint, "concepts", meta.Concepts)
}

// newState indexes g and wires a fresh engine and cache around it.
func (t *Thesaurus) newState(g *graph.Graph, origin string) (*state, error) {
	idx := index.Build(g)

	engine, err := expansion.NewEngine(g, idx,
		expansion.WithLogger(t.logger),
		expansion.WithMaxDepth(t.opts.config.MaxDepth),
	)
	if err != nil {
		return nil, err
	}

	m := t.opts.metrics
	compute := func(req expansion.Request) expansion.Result {
		result := engine.Expand(req)
		m.ObserveExpansion(req.Kind.String(), len(result.Terms))
		return result
	}

	c, err := cache.New(compute,
		cache.WithLogger(t.logger),
		cache.WithMode(t.opts.cacheMode),
		cache.WithCapacity(t.opts.cacheCapacity),
		cache.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}

	return &state{
		graph:    g,
		index:    idx,
		engine:   engine,
		cache:    c,
		origin:   origin,
		loadedAt: time.Now().UTC(),
	}, nil
}
