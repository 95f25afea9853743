package index

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/poiesic/skosexpand/core"
	"github.com/poiesic/skosexpand/graph"
)

// Match is one concept carrying a looked-up label.
type Match struct {
	URI       string
	Preferred bool
}

type entry struct {
	uri       string
	lang      string
	preferred bool
}

// LabelIndex maps normalized label text to the concepts carrying it.
// It is derived from a graph, never mutated after Build, and safe for
// concurrent reads.
type LabelIndex struct {
	entries map[string][]entry
	labels  int
}

// Build indexes every preferred and alternative label of g.
func Build(g *graph.Graph) *LabelIndex {
	idx := &LabelIndex{
		entries: make(map[string][]entry),
	}
	for c := range g.Concepts() {
		idx.add(c.URI, c.PrefLabels, true)
		idx.add(c.URI, c.AltLabels, false)
	}
	return idx
}

func (x *LabelIndex) add(uri string, labels []core.Label, preferred bool) {
	for _, l := range labels {
		key := Normalize(l.Text)
		if key == "" {
			continue
		}
		x.entries[key] = append(x.entries[key], entry{uri: uri, lang: l.Lang, preferred: preferred})
		x.labels++
	}
}

// Lookup returns the concepts carrying text as a label, ordered by URI.
// A non-empty language restricts matches to labels tagged with that language
// or one of its regional variants; untagged labels always match. A concept
// carrying text both as preferred and alternative label appears once, as
// preferred.
func (x *LabelIndex) Lookup(text, language string) []Match {
	entries := x.entries[Normalize(text)]
	if len(entries) == 0 {
		return nil
	}

	var matches []Match
	for _, e := range entries {
		if !core.LangMatches(e.lang, language) {
			continue
		}
		i := slices.IndexFunc(matches, func(m Match) bool { return m.URI == e.uri })
		if i < 0 {
			matches = append(matches, Match{URI: e.uri, Preferred: e.preferred})
			continue
		}
		matches[i].Preferred = matches[i].Preferred || e.preferred
	}

	slices.SortFunc(matches, func(a, b Match) int {
		return strings.Compare(a.URI, b.URI)
	})
	return matches
}

// Keys returns the number of distinct normalized labels.
func (x *LabelIndex) Keys() int {
	return len(x.entries)
}

// Labels returns the number of indexed labels.
func (x *LabelIndex) Labels() int {
	return x.labels
}

// Normalize trims text, collapses inner whitespace runs to one space and
// applies Unicode case folding.
func Normalize(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return ""
	}
	return cases.Fold().String(text)
}
