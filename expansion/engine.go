package expansion

import (
	"log/slog"

	"github.com/poiesic/skosexpand/core"
	"github.com/poiesic/skosexpand/graph"
	"github.com/poiesic/skosexpand/index"
)

// Request describes one token to expand. Request is comparable and serves
// as a cache key.
type Request struct {
	Token    string
	Kind     Kind
	Policy   Policy
	Depth    int // Relation hops; 0 collects seed labels only
	Language string
}

// Result holds the distinct expansion terms of a request, in traversal order.
// Results may be shared between callers and must not be modified.
type Result struct {
	Terms []string
	// Seeds are the URIs the token resolved to, sorted.
	Seeds []string
}

// Empty reports whether the expansion produced no terms.
func (r Result) Empty() bool {
	return len(r.Terms) == 0
}

// Engine expands tokens against an immutable graph and label index.
// Expand is a pure read and safe for concurrent use.
type Engine struct {
	graph    *graph.Graph
	index    *index.LabelIndex
	maxDepth int
	logger   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithMaxDepth caps the depth of every request.
// Default is 2.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) error {
		if depth < 0 {
			return ErrInvalidDepth
		}
		e.maxDepth = depth
		return nil
	}
}

// NewEngine creates an expansion engine.
func NewEngine(g *graph.Graph, idx *index.LabelIndex, opts ...Option) (*Engine, error) {
	if g == nil {
		return nil, ErrGraphRequired
	}
	if idx == nil {
		return nil, ErrIndexRequired
	}

	e := &Engine{
		graph:    g,
		index:    idx,
		maxDepth: DefaultConfig().MaxDepth,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// MaxDepth returns the depth cap.
func (e *Engine) MaxDepth() int {
	return e.maxDepth
}

// Expand resolves req to seed concepts and collects expansion terms.
// An unknown token yields an empty result, never an error.
func (e *Engine) Expand(req Request) Result {
	return e.ExpandWithMonitor(req, nil)
}

// ExpandWithMonitor is Expand with tracing hooks.
func (e *Engine) ExpandWithMonitor(req Request, monitor Monitor) Result {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(req)

	depth := e.clampDepth(req.Depth)
	seeds := e.Seeds(req)
	monitor.Seeds(seeds)

	out := newCollector()

	if req.Policy.Has(PolicyLabels) || depth == 0 {
		exclude := index.Normalize(req.Token)
		for _, uri := range seeds {
			c, _ := e.graph.Get(uri)
			for _, labels := range [][]core.Label{c.PrefLabels, c.AltLabels} {
				for _, l := range labels {
					if core.LangMatches(l.Lang, req.Language) && index.Normalize(l.Text) != exclude {
						out.add(l.Text)
					}
				}
			}
		}
	}

	// One walk and one visited set for the whole call: each hop follows every
	// requested relation, and no concept is entered twice.
	kinds := req.Policy.Relations()
	visited := make(map[string]struct{}, len(seeds))
	for _, uri := range seeds {
		visited[uri] = struct{}{}
	}

	frontier := seeds
	for hop := 1; hop <= depth && len(kinds) > 0 && len(frontier) > 0; hop++ {
		var next []string
		for _, kind := range kinds {
			for _, uri := range frontier {
				for _, neighbor := range e.graph.Neighbors(uri, kind) {
					if _, seen := visited[neighbor]; seen {
						continue
					}
					visited[neighbor] = struct{}{}
					monitor.Visit(neighbor, kind, hop)
					next = append(next, neighbor)

					c, _ := e.graph.Get(neighbor)
					for _, l := range c.PrefLabelFor(req.Language) {
						out.add(l.Text)
					}
				}
			}
		}
		frontier = next
	}

	result := Result{Terms: out.terms, Seeds: seeds}
	monitor.Finish(result)
	return result
}

// Seeds resolves req.Token to the sorted URIs of its seed concepts.
func (e *Engine) Seeds(req Request) []string {
	switch req.Kind {
	case KindURI:
		if _, ok := e.graph.Get(req.Token); ok {
			return []string{req.Token}
		}
		return nil
	default:
		matches := e.index.Lookup(req.Token, req.Language)
		if len(matches) == 0 {
			return nil
		}
		uris := make([]string, len(matches))
		for i, m := range matches {
			uris[i] = m.URI
		}
		return uris
	}
}

func (e *Engine) clampDepth(depth int) int {
	switch {
	case depth < 0:
		return 0
	case depth > e.maxDepth:
		e.logger.Debug("clamping expansion depth", "requested", depth, "max", e.maxDepth)
		return e.maxDepth
	default:
		return depth
	}
}

// collector keeps the first spelling of every distinct normalized term.
type collector struct {
	seen  map[string]struct{}
	terms []string
}

func newCollector() *collector {
	return &collector{seen: make(map[string]struct{})}
}

func (c *collector) add(text string) {
	key := index.Normalize(text)
	if key == "" {
		return
	}
	if _, ok := c.seen[key]; ok {
		return
	}
	c.seen[key] = struct{}{}
	c.terms = append(c.terms, text)
}
