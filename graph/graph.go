package graph

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/poiesic/skosexpand/core"
)

// Graph is the in-memory concept model of a thesaurus.
// A Graph is immutable once built and safe for concurrent reads. Concepts
// returned by Get and Concepts must not be modified.
type Graph struct {
	concepts map[string]*core.Concept
	uris     []string
	stats    Stats
}

// Stats summarizes a built graph.
type Stats struct {
	Concepts   int
	PrefLabels int
	AltLabels  int
	// Edges counts directed relation entries, both directions included.
	Edges int
	// Repaired counts inverse edges inserted during the build.
	Repaired int
	// SelfLoops counts self-referencing relations that were dropped.
	SelfLoops int
	// Demoted counts duplicate preferred labels stored as alternative labels.
	Demoted int
}

// Option configures a graph build.
type Option func(*builder) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// Build consumes a triple stream and returns the finished graph.
// Every subject and every relation object becomes a concept. Missing inverse
// edges are inserted and self-referencing relations are dropped.
// Returns core.ErrEmptyGraph when the stream yields no concept.
func Build(triples iter.Seq[core.Triple], opts ...Option) (*Graph, error) {
	b, err := newBuilder(opts)
	if err != nil {
		return nil, err
	}

	for t := range triples {
		c := b.concept(t.Subject)
		switch t.Predicate {
		case core.PredicatePrefLabel:
			b.addPrefLabel(c, core.Label{Text: t.Object.Value, Lang: t.Object.Lang})
		case core.PredicateAltLabel:
			b.addAltLabel(c, core.Label{Text: t.Object.Value, Lang: t.Object.Lang})
		default:
			if kind, ok := t.Predicate.Relation(); ok {
				b.addRelation(c, kind, t.Object.Value)
			}
		}
	}

	return b.finish()
}

// FromConcepts rebuilds a graph from previously exported concepts, applying
// the same repair and verification as Build. The input is not retained.
func FromConcepts(concepts []*core.Concept, opts ...Option) (*Graph, error) {
	b, err := newBuilder(opts)
	if err != nil {
		return nil, err
	}

	for _, src := range concepts {
		if src == nil {
			continue
		}
		c := b.concept(src.URI)
		for _, l := range src.PrefLabels {
			b.addPrefLabel(c, l)
		}
		for _, l := range src.AltLabels {
			b.addAltLabel(c, l)
		}
		for _, kind := range core.RelationKinds {
			for _, uri := range src.Relations(kind) {
				b.addRelation(c, kind, uri)
			}
		}
	}

	return b.finish()
}

// Get returns the concept identified by uri.
func (g *Graph) Get(uri string) (*core.Concept, bool) {
	c, ok := g.concepts[uri]
	return c, ok
}

// Neighbors returns the sorted URIs linked to uri by kind.
// Unknown URIs and missing relations yield an empty result.
func (g *Graph) Neighbors(uri string, kind core.RelationKind) []string {
	c, ok := g.concepts[uri]
	if !ok {
		return nil
	}
	return c.Relations(kind)
}

// Len returns the number of concepts.
func (g *Graph) Len() int {
	return len(g.concepts)
}

// Concepts iterates over all concepts ordered by URI.
func (g *Graph) Concepts() iter.Seq[*core.Concept] {
	return func(yield func(*core.Concept) bool) {
		for _, uri := range g.uris {
			if !yield(g.concepts[uri]) {
				return
			}
		}
	}
}

// Stats returns build statistics.
func (g *Graph) Stats() Stats {
	return g.stats
}

// Verify checks the structural invariants of the graph: every relation
// target exists, carries the inverse edge, and no concept relates to itself.
func (g *Graph) Verify() error {
	for _, uri := range g.uris {
		c := g.concepts[uri]
		if err := core.ValidateConcept(c); err != nil {
			return fmt.Errorf("%w: %w", core.ErrInconsistentGraph, err)
		}
		for _, kind := range core.RelationKinds {
			targets := c.Relations(kind)
			if !slices.IsSorted(targets) {
				return fmt.Errorf("%w: %s %s edges not sorted", core.ErrInconsistentGraph, uri, kind)
			}
			for _, target := range targets {
				other, ok := g.concepts[target]
				if !ok {
					return fmt.Errorf("%w: %s %s points at unknown concept %s", core.ErrInconsistentGraph, uri, kind, target)
				}
				if !other.HasRelation(kind.Inverse(), uri) {
					return fmt.Errorf("%w: %s %s %s has no %s inverse", core.ErrInconsistentGraph, uri, kind, target, kind.Inverse())
				}
			}
		}
	}
	return nil
}

type builder struct {
	logger   *slog.Logger
	concepts map[string]*core.Concept
	stats    Stats
}

func newBuilder(opts []Option) (*builder, error) {
	b := &builder{
		logger:   slog.Default(),
		concepts: make(map[string]*core.Concept),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *builder) concept(uri string) *core.Concept {
	c, ok := b.concepts[uri]
	if !ok {
		c = &core.Concept{URI: uri}
		b.concepts[uri] = c
	}
	return c
}

// addPrefLabel keeps one preferred label per language. Later ones become
// alternative labels.
func (b *builder) addPrefLabel(c *core.Concept, label core.Label) {
	if core.ValidateLabel(label) != nil {
		return
	}
	for _, existing := range c.PrefLabels {
		if existing.Lang != label.Lang {
			continue
		}
		if existing.Text != label.Text {
			b.logger.Debug("demoting duplicate preferred label", "uri", c.URI, "label", label.Text, "lang", label.Lang, "kept", existing.Text)
			b.stats.Demoted++
			b.addAltLabel(c, label)
		}
		return
	}
	c.PrefLabels = append(c.PrefLabels, label)
}

func (b *builder) addAltLabel(c *core.Concept, label core.Label) {
	if core.ValidateLabel(label) != nil || slices.Contains(c.AltLabels, label) {
		return
	}
	c.AltLabels = append(c.AltLabels, label)
}

func (b *builder) addRelation(c *core.Concept, kind core.RelationKind, uri string) {
	if uri == "" {
		return
	}
	if uri == c.URI {
		b.logger.Warn("dropping self-referencing relation", "uri", c.URI, "relation", kind)
		b.stats.SelfLoops++
		return
	}
	b.concept(uri)
	c.SetRelations(kind, append(c.Relations(kind), uri))
}

func (b *builder) finish() (*Graph, error) {
	if len(b.concepts) == 0 {
		return nil, core.ErrEmptyGraph
	}

	uris := make([]string, 0, len(b.concepts))
	for uri, c := range b.concepts {
		uris = append(uris, uri)
		for _, kind := range core.RelationKinds {
			rel := c.Relations(kind)
			slices.Sort(rel)
			c.SetRelations(kind, slices.Compact(rel))
		}
	}
	slices.Sort(uris)

	// Targets are never the source itself, so inserting into the target's
	// slices does not disturb the slice being ranged over.
	for _, uri := range uris {
		c := b.concepts[uri]
		for _, kind := range core.RelationKinds {
			inverse := kind.Inverse()
			for _, target := range c.Relations(kind) {
				other := b.concepts[target]
				rel := other.Relations(inverse)
				pos, found := slices.BinarySearch(rel, uri)
				if found {
					continue
				}
				other.SetRelations(inverse, slices.Insert(rel, pos, uri))
				b.stats.Repaired++
				b.logger.Debug("repaired missing inverse edge", "uri", target, "relation", inverse, "target", uri)
			}
		}
	}

	for _, uri := range uris {
		c := b.concepts[uri]
		b.stats.PrefLabels += len(c.PrefLabels)
		b.stats.AltLabels += len(c.AltLabels)
		for _, kind := range core.RelationKinds {
			b.stats.Edges += len(c.Relations(kind))
		}
	}
	b.stats.Concepts = len(uris)

	g := &Graph{
		concepts: b.concepts,
		uris:     uris,
		stats:    b.stats,
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}

	b.logger.Info("concept graph built",
		"concepts", g.stats.Concepts,
		"edges", g.stats.Edges,
		"repaired", g.stats.Repaired,
		"self_loops", g.stats.SelfLoops)
	return g, nil
}
