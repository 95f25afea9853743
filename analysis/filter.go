package analysis

import (
	"context"
	"log/slog"

	"github.com/poiesic/skosexpand/expansion"
)

// Expander expands a batch of requests, returning results in request order.
// *skosexpand.Thesaurus implements Expander.
type Expander interface {
	ExpandAll(ctx context.Context, reqs []expansion.Request) ([]expansion.Result, error)
}

// Filter injects expansion terms into token streams.
type Filter struct {
	expander Expander
	config   expansion.Config
	logger   *slog.Logger
}

// Option configures a Filter.
type Option func(*Filter) error

// WithConfig sets the expansion configuration applied to every token.
// Default is the expander's own configuration when it exposes one, otherwise
// expansion.DefaultConfig().
func WithConfig(cfg *expansion.Config) Option {
	return func(f *Filter) error {
		if cfg == nil {
			cfg = expansion.DefaultConfig()
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		f.config = *cfg
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(f *Filter) error {
		if logger == nil {
			logger = slog.Default()
		}
		f.logger = logger
		return nil
	}
}

// NewFilter creates a filter backed by expander.
func NewFilter(expander Expander, opts ...Option) (*Filter, error) {
	if expander == nil {
		return nil, ErrExpanderRequired
	}

	f := &Filter{
		expander: expander,
		config:   *expansion.DefaultConfig(),
		logger:   slog.Default(),
	}
	if configured, ok := expander.(interface{ Config() expansion.Config }); ok {
		f.config = configured.Config()
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Analyze tokenizes text according to the configured kind and applies the
// filter. URI mode treats the whole value as one token.
func (f *Filter) Analyze(ctx context.Context, text string) ([]Token, error) {
	var tokens []Token
	if f.config.Kind == expansion.KindURI {
		tokens = Keyword(text)
	} else {
		tokens = Tokenize(text)
	}
	return f.Apply(ctx, tokens)
}

// Apply returns tokens with the expansions of each token inserted directly
// after it, sharing its position and offsets. Tokens already marked as
// expansions pass through unexpanded. Each distinct term is expanded once.
func (f *Filter) Apply(ctx context.Context, tokens []Token) ([]Token, error) {
	slot := make(map[string]int, len(tokens))
	var reqs []expansion.Request
	for _, tok := range tokens {
		if tok.Expansion {
			continue
		}
		if _, ok := slot[tok.Term]; ok {
			continue
		}
		slot[tok.Term] = len(reqs)
		reqs = append(reqs, f.config.Request(tok.Term))
	}
	if len(reqs) == 0 {
		return tokens, nil
	}

	results, err := f.expander.ExpandAll(ctx, reqs)
	if err != nil {
		return nil, err
	}

	out := make([]Token, 0, len(tokens))
	injected := 0
	for _, tok := range tokens {
		out = append(out, tok)
		if tok.Expansion {
			continue
		}
		for _, term := range results[slot[tok.Term]].Terms {
			out = append(out, Token{
				Term:      term,
				Position:  tok.Position,
				Start:     tok.Start,
				End:       tok.End,
				Expansion: true,
			})
			injected++
		}
	}

	f.logger.Debug("expanded token stream", "tokens", len(tokens), "distinct", len(reqs), "injected", injected)
	return out, nil
}
