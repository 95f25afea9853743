package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one term of an analyzed text.
type Token struct {
	Term string
	// Position is the ordinal of the token. Injected expansions share the
	// position of the token they expand.
	Position int
	// Start and End are byte offsets into the analyzed text.
	Start int
	End   int
	// Expansion marks tokens injected by a Filter.
	Expansion bool
}

// Tokenize splits text into runs of letters, digits and combining marks.
// Terms keep their original casing; matching is case-insensitive downstream.
func Tokenize(text string) []Token {
	var tokens []Token
	start := -1
	for i, r := range text {
		if isTermRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, Token{Term: text[start:i], Position: len(tokens), Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Term: text[start:], Position: len(tokens), Start: start, End: len(text)})
	}
	return tokens
}

// Keyword returns the whole value, trimmed of surrounding space, as a single
// token. A blank value yields no token.
func Keyword(text string) []Token {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	start := strings.Index(text, trimmed)
	return []Token{{Term: trimmed, Start: start, End: start + len(trimmed)}}
}

func isTermRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r))
}
