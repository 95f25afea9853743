package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIRI
	tokPName
	tokLiteral
	tokA
	tokPrefix
	tokBase
	tokDot
	tokSemicolon
	tokComma
	tokBlank
	tokError
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIRI:
		return "IRI"
	case tokPName:
		return "prefixed name"
	case tokLiteral:
		return "literal"
	case tokA:
		return "'a'"
	case tokPrefix:
		return "prefix directive"
	case tokBase:
		return "base directive"
	case tokDot:
		return "'.'"
	case tokSemicolon:
		return "';'"
	case tokComma:
		return "','"
	case tokBlank:
		return "blank node"
	default:
		return "invalid token"
	}
}

type token struct {
	kind  tokenKind
	value string
	lang  string
	line  int
	// sparql marks PREFIX/BASE directives, which take no terminating dot.
	sparql bool
	// terminal marks errors that already consumed the rest of the line.
	terminal bool
}

// lexer splits a Turtle/N-Triples document into tokens, reading lazily.
type lexer struct {
	r       *bufio.Reader
	line    int
	read    int64
	err     error
	pending []token
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r), line: 1}
}

func (l *lexer) readRune() (rune, bool) {
	ch, size, err := l.r.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = err
		}
		return 0, false
	}
	l.read += int64(size)
	if ch == '\n' {
		l.line++
	}
	return ch, true
}

// unreadRune pushes back the rune returned by the immediately preceding readRune.
func (l *lexer) unreadRune(ch rune) {
	if err := l.r.UnreadRune(); err == nil && ch == '\n' {
		l.line--
	}
}

func (l *lexer) skipLine() {
	for {
		ch, ok := l.readRune()
		if !ok || ch == '\n' {
			return
		}
	}
}

func (l *lexer) errorf(terminal bool, format string, args ...any) token {
	return token{kind: tokError, value: fmt.Sprintf(format, args...), line: l.line, terminal: terminal}
}

func (l *lexer) next() token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}
	for {
		ch, ok := l.readRune()
		if !ok {
			return token{kind: tokEOF, line: l.line}
		}
		switch {
		case unicode.IsSpace(ch):
			continue
		case ch == '#':
			l.skipLine()
			continue
		case ch == '<':
			return l.lexIRI()
		case ch == '"' || ch == '\'':
			return l.lexLiteral(ch)
		case ch == '.':
			return token{kind: tokDot, line: l.line}
		case ch == ';':
			return token{kind: tokSemicolon, line: l.line}
		case ch == ',':
			return token{kind: tokComma, line: l.line}
		case strings.ContainsRune("[]()", ch):
			return token{kind: tokBlank, value: string(ch), line: l.line}
		default:
			return l.lexWord(ch)
		}
	}
}

func (l *lexer) lexIRI() token {
	line := l.line
	var sb strings.Builder
	for {
		ch, ok := l.readRune()
		if !ok {
			return l.errorf(true, "unterminated IRI")
		}
		if ch == '>' {
			return token{kind: tokIRI, value: sb.String(), line: line}
		}
		if ch == '\n' {
			return l.errorf(true, "unterminated IRI")
		}
		if unicode.IsSpace(ch) {
			return l.errorf(false, "whitespace in IRI")
		}
		sb.WriteRune(ch)
	}
}

func (l *lexer) lexLiteral(quote rune) token {
	line := l.line
	long := false

	ch, ok := l.readRune()
	if ok && ch == quote {
		ch2, ok2 := l.readRune()
		if ok2 && ch2 == quote {
			long = true
		} else {
			if ok2 {
				l.unreadRune(ch2)
			}
			return l.lexLiteralSuffix(token{kind: tokLiteral, line: line})
		}
	} else if ok {
		l.unreadRune(ch)
	}

	var sb strings.Builder
	for {
		ch, ok := l.readRune()
		if !ok {
			return l.errorf(true, "unterminated string literal")
		}
		switch {
		case ch == '\\':
			r, err := l.readEscape()
			if err != nil {
				return l.errorf(l.skipLiteral(quote, long), "%v", err)
			}
			sb.WriteRune(r)
		case ch == quote && !long:
			return l.lexLiteralSuffix(token{kind: tokLiteral, value: sb.String(), line: line})
		case ch == quote:
			n := 1
			for n < 3 {
				c, ok := l.readRune()
				if !ok {
					break
				}
				if c != quote {
					l.unreadRune(c)
					break
				}
				n++
			}
			if n == 3 {
				return l.lexLiteralSuffix(token{kind: tokLiteral, value: sb.String(), line: line})
			}
			sb.WriteString(strings.Repeat(string(quote), n))
		case ch == '\n' && !long:
			return l.errorf(true, "unterminated string literal")
		default:
			sb.WriteRune(ch)
		}
	}
}

// skipLiteral discards the remainder of a broken literal and reports
// whether it ran into the end of the line.
func (l *lexer) skipLiteral(quote rune, long bool) bool {
	for {
		ch, ok := l.readRune()
		if !ok {
			return true
		}
		if ch == quote {
			return false
		}
		if ch == '\n' && !long {
			return true
		}
	}
}

// lexLiteralSuffix reads an optional @lang tag or ^^datatype after a literal.
// Datatypes are accepted and discarded.
func (l *lexer) lexLiteralSuffix(tok token) token {
	ch, ok := l.readRune()
	if !ok {
		return tok
	}
	switch ch {
	case '@':
		var sb strings.Builder
		for {
			c, ok := l.readRune()
			if !ok {
				break
			}
			if c != '-' && !isASCIIAlnum(c) {
				l.unreadRune(c)
				break
			}
			sb.WriteRune(c)
		}
		if sb.Len() == 0 {
			return l.errorf(false, "empty language tag")
		}
		tok.lang = sb.String()
		return tok
	case '^':
		if c, ok := l.readRune(); !ok || c != '^' {
			return l.errorf(false, "expected '^^' before datatype")
		}
		c, ok := l.readRune()
		if !ok {
			return l.errorf(true, "missing datatype")
		}
		var dt token
		if c == '<' {
			dt = l.lexIRI()
		} else {
			dt = l.lexWord(c)
		}
		if dt.kind != tokIRI && dt.kind != tokPName {
			if dt.kind == tokError {
				return dt
			}
			return l.errorf(false, "invalid datatype")
		}
		return tok
	default:
		l.unreadRune(ch)
		return tok
	}
}

func (l *lexer) readEscape() (rune, error) {
	ch, ok := l.readRune()
	if !ok {
		return 0, fmt.Errorf("unterminated escape sequence")
	}
	switch ch {
	case 't':
		return '\t', nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case '"', '\'', '\\':
		return ch, nil
	case 'u', 'U':
		digits := 4
		if ch == 'U' {
			digits = 8
		}
		var sb strings.Builder
		for range digits {
			c, ok := l.readRune()
			if !ok {
				return 0, fmt.Errorf("truncated unicode escape")
			}
			sb.WriteRune(c)
		}
		code, err := strconv.ParseUint(sb.String(), 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid unicode escape \\%c%s", ch, sb.String())
		}
		return rune(code), nil
	default:
		return 0, fmt.Errorf("invalid escape sequence \\%c", ch)
	}
}

func (l *lexer) lexWord(first rune) token {
	line := l.line
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		ch, ok := l.readRune()
		if !ok {
			break
		}
		if unicode.IsSpace(ch) || strings.ContainsRune(`<>"'{}[](),;#`, ch) {
			l.unreadRune(ch)
			break
		}
		sb.WriteRune(ch)
	}

	word := sb.String()
	// A trailing '.' terminates the statement rather than belonging to the name
	for len(word) > 1 && strings.HasSuffix(word, ".") {
		word = word[:len(word)-1]
		l.pending = append(l.pending, token{kind: tokDot, line: l.line})
	}

	switch {
	case word == "a":
		return token{kind: tokA, line: line}
	case word == "@prefix":
		return token{kind: tokPrefix, line: line}
	case word == "@base":
		return token{kind: tokBase, line: line}
	case strings.EqualFold(word, "PREFIX"):
		return token{kind: tokPrefix, line: line, sparql: true}
	case strings.EqualFold(word, "BASE"):
		return token{kind: tokBase, line: line, sparql: true}
	case strings.HasPrefix(word, "@"):
		return token{kind: tokError, value: fmt.Sprintf("unknown directive %q", word), line: line}
	case strings.HasPrefix(word, "_:"):
		return token{kind: tokBlank, value: word, line: line}
	case word == "true" || word == "false" || strings.ContainsRune("0123456789+-", first):
		return token{kind: tokLiteral, value: word, line: line}
	case strings.Contains(word, ":"):
		return token{kind: tokPName, value: word, line: line}
	default:
		return token{kind: tokError, value: fmt.Sprintf("unexpected token %q", word), line: line}
	}
}

func isASCIIAlnum(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')
}
