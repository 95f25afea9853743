package parser

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/poiesic/skosexpand/core"
)

// DiagnosticHandler receives every statement the parser skips.
type DiagnosticHandler func(*core.ParseError)

// Parser turns Turtle or N-Triples text into SKOS triples.
// A Parser holds no per-source state and may be shared.
type Parser struct {
	logger *slog.Logger
	onDiag DiagnosticHandler
}

// Option configures a Parser.
type Option func(*Parser) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithDiagnosticHandler registers a callback invoked for each skipped statement.
func WithDiagnosticHandler(fn DiagnosticHandler) Option {
	return func(p *Parser) error {
		p.onDiag = fn
		return nil
	}
}

// New creates a parser.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Parse prepares a lazy triple stream over r. Nothing is read until the
// stream is iterated.
func (p *Parser) Parse(r io.Reader) *Stream {
	return &Stream{
		parser:   p,
		lex:      newLexer(r),
		prefixes: make(map[string]string),
	}
}

// Stream is a single-pass sequence of triples read from one source.
type Stream struct {
	parser   *Parser
	lex      *lexer
	prefixes map[string]string
	base     string
	tok      token

	consumed    bool
	err         error
	diagnostics []*core.ParseError
	statements  int
}

// Err returns core.ErrSourceUnavailable (wrapped) if the source could not be
// read or held no data. It is only meaningful after Triples is exhausted.
func (s *Stream) Err() error {
	return s.err
}

// Diagnostics returns the statements skipped so far.
func (s *Stream) Diagnostics() []*core.ParseError {
	return s.diagnostics
}

// Statements returns the number of statements parsed successfully so far.
func (s *Stream) Statements() int {
	return s.statements
}

// Triples yields every recognized SKOS triple in document order.
// Triples of a statement are yielded only once the whole statement parsed;
// a malformed statement yields nothing. The sequence can be ranged over once.
func (s *Stream) Triples() iter.Seq[core.Triple] {
	return func(yield func(core.Triple) bool) {
		if s.consumed {
			return
		}
		s.consumed = true

		var buf []core.Triple
		for {
			first := s.advance()
			if first.kind == tokEOF {
				s.finish()
				return
			}

			var err error
			buf = buf[:0]
			switch first.kind {
			case tokPrefix:
				err = s.parsePrefix(first)
			case tokBase:
				err = s.parseBase(first)
			default:
				buf, err = s.parseTriples(first, buf)
			}
			if err != nil {
				s.report(first.line, err)
				s.recover()
				continue
			}

			s.statements++
			for _, t := range buf {
				if !yield(t) {
					return
				}
			}
		}
	}
}

func (s *Stream) advance() token {
	s.tok = s.lex.next()
	return s.tok
}

func (s *Stream) finish() {
	switch {
	case s.lex.err != nil:
		s.err = fmt.Errorf("%w: %w", core.ErrSourceUnavailable, s.lex.err)
	case s.lex.read == 0:
		s.err = fmt.Errorf("%w: source is empty", core.ErrSourceUnavailable)
	}
}

func (s *Stream) report(line int, err error) {
	pe := &core.ParseError{Line: line, Reason: err.Error()}
	s.diagnostics = append(s.diagnostics, pe)
	s.parser.logger.Warn("skipping malformed statement", "line", line, "reason", pe.Reason)
	if s.parser.onDiag != nil {
		s.parser.onDiag(pe)
	}
}

// recover discards tokens up to the end of the broken statement.
func (s *Stream) recover() {
	tok := s.tok
	for {
		switch {
		case tok.kind == tokDot, tok.kind == tokEOF:
			return
		case tok.kind == tokError && tok.terminal:
			return
		}
		tok = s.advance()
	}
}

func unexpected(tok token, want string) error {
	if tok.kind == tokError {
		return errors.New(tok.value)
	}
	return fmt.Errorf("expected %s, got %s", want, tok.kind)
}

func (s *Stream) parsePrefix(directive token) error {
	name := s.advance()
	if name.kind != tokPName || !strings.HasSuffix(name.value, ":") {
		return unexpected(name, "prefix name")
	}
	iri := s.advance()
	if iri.kind != tokIRI {
		return unexpected(iri, "IRI")
	}
	if !directive.sparql {
		if dot := s.advance(); dot.kind != tokDot {
			return unexpected(dot, "'.'")
		}
	}
	s.prefixes[strings.TrimSuffix(name.value, ":")] = s.resolveIRI(iri.value)
	return nil
}

func (s *Stream) parseBase(directive token) error {
	iri := s.advance()
	if iri.kind != tokIRI {
		return unexpected(iri, "IRI")
	}
	if !directive.sparql {
		if dot := s.advance(); dot.kind != tokDot {
			return unexpected(dot, "'.'")
		}
	}
	s.base = s.resolveIRI(iri.value)
	return nil
}

func (s *Stream) parseTriples(first token, buf []core.Triple) ([]core.Triple, error) {
	subject, err := s.iriValue(first, "subject")
	if err != nil {
		return buf, err
	}

	tok := s.advance()
	for {
		predicate, err := s.predicateValue(tok)
		if err != nil {
			return buf, err
		}

		for {
			object, err := s.objectValue(s.advance())
			if err != nil {
				return buf, err
			}
			t, keep, err := makeTriple(subject, predicate, object)
			if err != nil {
				return buf, err
			}
			if keep {
				buf = append(buf, t)
			}

			sep := s.advance()
			if sep.kind == tokComma {
				continue
			}
			if sep.kind == tokDot {
				return buf, nil
			}
			if sep.kind != tokSemicolon {
				return buf, unexpected(sep, "'.', ';' or ','")
			}
			break
		}

		// Repeated and trailing semicolons are legal
		tok = s.advance()
		for tok.kind == tokSemicolon {
			tok = s.advance()
		}
		if tok.kind == tokDot {
			return buf, nil
		}
	}
}

func (s *Stream) iriValue(tok token, role string) (string, error) {
	switch tok.kind {
	case tokIRI:
		return s.resolveIRI(tok.value), nil
	case tokPName:
		return s.expand(tok.value)
	case tokBlank:
		return "", fmt.Errorf("blank node %s not supported", role)
	default:
		return "", unexpected(tok, role)
	}
}

func (s *Stream) predicateValue(tok token) (string, error) {
	if tok.kind == tokA {
		return core.RDFType, nil
	}
	return s.iriValue(tok, "predicate")
}

func (s *Stream) objectValue(tok token) (core.Term, error) {
	if tok.kind == tokLiteral {
		return core.Literal(tok.value, core.NormalizeLang(tok.lang)), nil
	}
	iri, err := s.iriValue(tok, "object")
	if err != nil {
		return core.Term{}, err
	}
	return core.IRI(iri), nil
}

// makeTriple maps a parsed statement onto the recognized predicate set.
// keep is false for triples outside that set.
func makeTriple(subject, predicateIRI string, object core.Term) (core.Triple, bool, error) {
	predicate := core.PredicateFromIRI(predicateIRI)
	t := core.Triple{Subject: subject, Predicate: predicate, Object: object}

	switch {
	case predicate == core.PredicateUnknown:
		return t, false, nil
	case predicate == core.PredicateType:
		return t, !object.Literal && object.Value == core.SKOSConcept, nil
	case predicate.IsLabel():
		if !object.Literal {
			return t, false, fmt.Errorf("%s requires a literal object", predicate)
		}
		if strings.TrimSpace(object.Value) == "" {
			return t, false, fmt.Errorf("%s is empty", predicate)
		}
		return t, true, nil
	default:
		if object.Literal {
			return t, false, fmt.Errorf("%s requires an IRI object", predicate)
		}
		return t, true, nil
	}
}

func (s *Stream) expand(pname string) (string, error) {
	prefix, local, _ := strings.Cut(pname, ":")
	ns, ok := s.prefixes[prefix]
	if !ok {
		return "", fmt.Errorf("undefined prefix %q", prefix+":")
	}
	return ns + local, nil
}

func (s *Stream) resolveIRI(iri string) string {
	if s.base == "" || hasScheme(iri) {
		return iri
	}
	return s.base + iri
}

func hasScheme(iri string) bool {
	i := strings.IndexByte(iri, ':')
	return i > 0 && !strings.ContainsAny(iri[:i], "/?#")
}
