package index

import (
	"slices"
	"testing"

	"github.com/poiesic/skosexpand/core"
	"github.com/poiesic/skosexpand/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func label(s string, p core.Predicate, text, lang string) core.Triple {
	return core.Triple{Subject: s, Predicate: p, Object: core.Literal(text, lang)}
}

func buildIndex(t *testing.T, triples ...core.Triple) *LabelIndex {
	t.Helper()
	g, err := graph.Build(slices.Values(triples))
	require.NoError(t, err)
	return Build(g)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"weapons", "weapons"},
		{"Weapons", "weapons"},
		{"  Military   Equipment\t", "military equipment"},
		{"STRASSE", "strasse"},
		{"ÉPÉE", "épée"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	idx := buildIndex(t,
		label("c1", core.PredicatePrefLabel, "weapons", "en"),
		label("c1", core.PredicateAltLabel, "arms", "en"),
	)

	want := []Match{{URI: "c1", Preferred: true}}
	assert.Equal(t, want, idx.Lookup("weapons", ""))
	assert.Equal(t, want, idx.Lookup("Weapons", ""))
	assert.Equal(t, want, idx.Lookup("  WEAPONS ", ""))
	assert.Equal(t, []Match{{URI: "c1", Preferred: false}}, idx.Lookup("Arms", ""))
	assert.Empty(t, idx.Lookup("armour", ""))
	assert.Empty(t, idx.Lookup("", ""))
}

func TestLookup_SharedLabel(t *testing.T) {
	idx := buildIndex(t,
		label("c2", core.PredicateAltLabel, "arms", "en"),
		label("c1", core.PredicatePrefLabel, "arms", "en"),
		label("c1", core.PredicateAltLabel, "Arms", "en"),
		label("c3", core.PredicatePrefLabel, "limbs", "en"),
	)

	assert.Equal(t, []Match{
		{URI: "c1", Preferred: true},
		{URI: "c2", Preferred: false},
	}, idx.Lookup("arms", ""))
	assert.Equal(t, 2, idx.Keys())
	assert.Equal(t, 4, idx.Labels())
}

func TestLookup_LanguageFilter(t *testing.T) {
	idx := buildIndex(t,
		label("c1", core.PredicatePrefLabel, "colour", "en-GB"),
		label("c2", core.PredicatePrefLabel, "colour", "fr"),
		label("c3", core.PredicatePrefLabel, "colour", ""),
	)

	tests := []struct {
		lang string
		want []string
	}{
		{"", []string{"c1", "c2", "c3"}},
		{"en", []string{"c1", "c3"}},
		{"en-GB", []string{"c1", "c3"}},
		{"EN-gb", []string{"c1", "c3"}},
		{"en-US", []string{"c3"}},
		{"fr", []string{"c2", "c3"}},
		{"de", []string{"c3"}},
	}

	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			var uris []string
			for _, m := range idx.Lookup("Colour", tt.lang) {
				uris = append(uris, m.URI)
			}
			assert.Equal(t, tt.want, uris)
		})
	}
}
