package expansion

import (
	"fmt"
	"slices"
	"sync"
	"testing"

	"github.com/poiesic/skosexpand/core"
	"github.com/poiesic/skosexpand/graph"
	"github.com/poiesic/skosexpand/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ukat = "http://www.ukat.org.uk/thesaurus/concept/"

func pref(s, text, lang string) core.Triple {
	return core.Triple{Subject: s, Predicate: core.PredicatePrefLabel, Object: core.Literal(text, lang)}
}

func alt(s, text, lang string) core.Triple {
	return core.Triple{Subject: s, Predicate: core.PredicateAltLabel, Object: core.Literal(text, lang)}
}

func rel(s string, p core.Predicate, o string) core.Triple {
	return core.Triple{Subject: s, Predicate: p, Object: core.IRI(o)}
}

func newEngine(t *testing.T, triples []core.Triple, opts ...Option) *Engine {
	t.Helper()
	g, err := graph.Build(slices.Values(triples))
	require.NoError(t, err)
	e, err := NewEngine(g, index.Build(g), opts...)
	require.NoError(t, err)
	return e
}

// weaponsThesaurus is a small excerpt shaped like UKAT:
//
//	military equipment
//	└── weapons (arms)
//	    ├── spearhead
//	    └── swords ── related ── armour
func weaponsThesaurus() []core.Triple {
	return []core.Triple{
		pref(ukat+"c0", "military equipment", "en"),
		pref(ukat+"c1", "weapons", "en"),
		alt(ukat+"c1", "arms", "en"),
		pref(ukat+"c1", "armes", "fr"),
		pref(ukat+"c2", "spearhead", "en"),
		pref(ukat+"c3", "swords", "en"),
		pref(ukat+"c4", "armour", "en"),
		alt(ukat+"c5", "arms", "en"),
		pref(ukat+"c5", "limbs", "en"),
		rel(ukat+"c1", core.PredicateBroader, ukat+"c0"),
		rel(ukat+"c2", core.PredicateBroader, ukat+"c1"),
		rel(ukat+"c1", core.PredicateNarrower, ukat+"c3"),
		rel(ukat+"c3", core.PredicateRelated, ukat+"c4"),
	}
}

func TestNewEngine(t *testing.T) {
	g, err := graph.Build(slices.Values(weaponsThesaurus()))
	require.NoError(t, err)
	idx := index.Build(g)

	t.Run("valid configuration", func(t *testing.T) {
		e, err := NewEngine(g, idx)
		require.NoError(t, err)
		assert.Equal(t, 2, e.MaxDepth())
	})

	t.Run("custom max depth", func(t *testing.T) {
		e, err := NewEngine(g, idx, WithMaxDepth(5), WithLogger(nil))
		require.NoError(t, err)
		assert.Equal(t, 5, e.MaxDepth())
	})

	t.Run("negative max depth", func(t *testing.T) {
		_, err := NewEngine(g, idx, WithMaxDepth(-1))
		assert.ErrorIs(t, err, ErrInvalidDepth)
	})

	t.Run("nil graph", func(t *testing.T) {
		_, err := NewEngine(nil, idx)
		assert.Equal(t, ErrGraphRequired, err)
	})

	t.Run("nil index", func(t *testing.T) {
		_, err := NewEngine(g, nil)
		assert.Equal(t, ErrIndexRequired, err)
	})
}

func TestExpand_SeedLabels(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())

	// A URI token never equals a label, so nothing is excluded and the
	// alternative label is returned alongside the preferred ones.
	t.Run("uri token at depth zero keeps alternative labels", func(t *testing.T) {
		result := e.Expand(Request{Token: ukat + "c1", Kind: KindURI, Policy: PolicyLabels, Depth: 0})
		assert.Equal(t, []string{"weapons", "armes", "arms"}, result.Terms)
		assert.Equal(t, []string{ukat + "c1"}, result.Seeds)
	})

	t.Run("label token excludes itself", func(t *testing.T) {
		result := e.Expand(Request{Token: "spearhead", Policy: PolicyLabels, Depth: 0})
		assert.True(t, result.Empty())
		assert.Equal(t, []string{ukat + "c2"}, result.Seeds)
	})

	t.Run("preferred label query returns its synonyms", func(t *testing.T) {
		result := e.Expand(Request{Token: "weapons", Policy: PolicyLabels, Depth: 0, Language: "en"})
		assert.Equal(t, []string{"arms"}, result.Terms)
	})

	t.Run("depth zero collects labels whatever the policy", func(t *testing.T) {
		result := e.Expand(Request{Token: ukat + "c2", Kind: KindURI, Policy: PolicyBroader, Depth: 0})
		assert.Equal(t, []string{"spearhead"}, result.Terms)
	})

	t.Run("negative depth acts as zero", func(t *testing.T) {
		result := e.Expand(Request{Token: ukat + "c2", Kind: KindURI, Policy: PolicyBroader, Depth: -3})
		assert.Equal(t, []string{"spearhead"}, result.Terms)
	})
}

func TestExpand_SharedLabelUnion(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())

	result := e.Expand(Request{Token: "Arms", Policy: PolicyLabels, Depth: 0, Language: "en"})
	assert.Equal(t, []string{ukat + "c1", ukat + "c5"}, result.Seeds)
	assert.Equal(t, []string{"weapons", "limbs"}, result.Terms)
}

func TestExpand_Broader(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())

	tests := []struct {
		depth int
		want  []string
	}{
		{1, []string{"weapons"}},
		{2, []string{"weapons", "military equipment"}},
		{3, []string{"weapons", "military equipment"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("depth %d", tt.depth), func(t *testing.T) {
			result := e.Expand(Request{Token: "spearhead", Policy: PolicyBroader, Depth: tt.depth, Language: "en"})
			assert.Equal(t, tt.want, result.Terms)
		})
	}
}

func TestExpand_DepthClamped(t *testing.T) {
	triples := []core.Triple{pref("l0", "level 0", "")}
	for i := 1; i <= 6; i++ {
		triples = append(triples,
			pref(fmt.Sprintf("l%d", i), fmt.Sprintf("level %d", i), ""),
			rel(fmt.Sprintf("l%d", i-1), core.PredicateBroader, fmt.Sprintf("l%d", i)),
		)
	}

	e := newEngine(t, triples)
	result := e.Expand(Request{Token: "l0", Kind: KindURI, Policy: PolicyBroader, Depth: 6})
	assert.Equal(t, []string{"level 1", "level 2"}, result.Terms)

	deep := newEngine(t, triples, WithMaxDepth(6))
	result = deep.Expand(Request{Token: "l0", Kind: KindURI, Policy: PolicyBroader, Depth: 6})
	assert.Len(t, result.Terms, 6)
}

func TestExpand_NarrowerAndRelated(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())

	result := e.Expand(Request{Token: "military equipment", Policy: PolicyNarrower, Depth: 2, Language: "en"})
	assert.Equal(t, []string{"weapons", "spearhead", "swords"}, result.Terms)

	result = e.Expand(Request{Token: "armour", Policy: PolicyRelated, Depth: 1})
	assert.Equal(t, []string{"swords"}, result.Terms)

	result = e.Expand(Request{Token: "swords", Policy: PolicyAll, Depth: 1, Language: "en"})
	assert.Equal(t, []string{"weapons", "armour"}, result.Terms)
}

func TestExpand_CombinedPolicyWalksOnce(t *testing.T) {
	e := newEngine(t, []core.Triple{
		pref("s", "ess", ""),
		pref("x", "ex", ""),
		pref("r", "are", ""),
		pref("y", "why", ""),
		rel("s", core.PredicateBroader, "x"),
		rel("s", core.PredicateRelated, "r"),
		rel("r", core.PredicateRelated, "x"),
		rel("x", core.PredicateRelated, "y"),
	}, WithMaxDepth(3))

	related := e.Expand(Request{Token: "s", Kind: KindURI, Policy: PolicyRelated, Depth: 3})
	assert.Equal(t, []string{"are", "ex", "why"}, related.Terms)

	rec := &visitRecorder{}
	combined := e.ExpandWithMonitor(Request{Token: "s", Kind: KindURI, Policy: PolicyBroader | PolicyRelated, Depth: 3}, rec)
	assert.Equal(t, []string{"ex", "are", "why"}, combined.Terms)
	assert.Equal(t, []string{"x", "r", "y"}, rec.visits)
	assert.Equal(t, []int{1, 1, 2}, rec.hops)
}

func TestExpand_CombinedPolicyIsSuperset(t *testing.T) {
	singles := []Policy{PolicyLabels, PolicyBroader, PolicyNarrower, PolicyRelated}
	fixtures := map[string]struct {
		engine *Engine
		tokens []Request
	}{
		"weapons": {
			engine: newEngine(t, weaponsThesaurus(), WithMaxDepth(3)),
			tokens: []Request{{Token: "arms"}, {Token: "swords"}, {Token: "military equipment"}, {Token: "spearhead"}},
		},
		"cyclic": {
			engine: newEngine(t, cyclicThesaurus(12), WithMaxDepth(3)),
			tokens: []Request{{Token: "n0", Kind: KindURI}, {Token: "n5", Kind: KindURI}},
		},
	}

	for name, fx := range fixtures {
		for _, base := range fx.tokens {
			for depth := 1; depth <= 3; depth++ {
				for combined := Policy(1); combined <= PolicyAll; combined++ {
					req := base
					req.Policy, req.Depth = combined, depth
					got := fx.engine.Expand(req).Terms

					for _, single := range singles {
						if !combined.Has(single) {
							continue
						}
						req.Policy = single
						for _, term := range fx.engine.Expand(req).Terms {
							assert.Contains(t, got, term, "%s: %s %s depth %d lost a term of %s", name, base.Token, combined, depth, single)
						}
					}
				}
			}
		}
	}
}

func TestExpand_LanguageFilter(t *testing.T) {
	e := newEngine(t, []core.Triple{
		pref("c1", "colour", "en"),
		pref("c1", "couleur", "fr"),
		pref("c2", "paint", "en"),
		pref("c2", "peinture", "fr"),
		pref("c3", "pigment", ""),
		rel("c1", core.PredicateNarrower, "c2"),
		rel("c1", core.PredicateNarrower, "c3"),
	})

	result := e.Expand(Request{Token: "couleur", Policy: PolicyLabels | PolicyNarrower, Depth: 1, Language: "fr"})
	assert.Equal(t, []string{"peinture", "pigment"}, result.Terms)

	result = e.Expand(Request{Token: "couleur", Policy: PolicyNarrower, Depth: 1, Language: "en"})
	assert.True(t, result.Empty())
	assert.Empty(t, result.Seeds)

	result = e.Expand(Request{Token: "couleur", Policy: PolicyLabels | PolicyNarrower, Depth: 1})
	assert.Equal(t, []string{"colour", "paint", "peinture", "pigment"}, result.Terms)
}

func TestExpand_DeduplicatesByNormalizedText(t *testing.T) {
	e := newEngine(t, []core.Triple{
		pref("a", "Lance", ""),
		pref("b", "lance", ""),
		pref("c", "  LANCE ", ""),
		pref("s", "spear", ""),
		rel("s", core.PredicateRelated, "a"),
		rel("s", core.PredicateRelated, "b"),
		rel("s", core.PredicateRelated, "c"),
	})

	result := e.Expand(Request{Token: "spear", Policy: PolicyRelated, Depth: 1})
	assert.Equal(t, []string{"Lance"}, result.Terms)
}

func TestExpand_NoMatch(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())

	for _, req := range []Request{
		{Token: "catapult", Policy: PolicyAll, Depth: 2},
		{Token: ukat + "c99", Kind: KindURI, Policy: PolicyAll, Depth: 2},
		{Token: "", Policy: PolicyAll, Depth: 2},
		{Token: "weapons", Policy: 0, Depth: 1},
	} {
		result := e.Expand(req)
		assert.True(t, result.Empty(), "%+v", req)
	}
}

func TestExpand_Idempotent(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())
	req := Request{Token: "weapons", Policy: PolicyAll, Depth: 2}

	first := e.Expand(req)
	second := e.Expand(req)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Terms)
}

func TestExpand_Concurrent(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())
	req := Request{Token: "arms", Policy: PolicyAll, Depth: 2}
	want := e.Expand(req)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = e.Expand(req)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

type visitRecorder struct {
	noopMonitor
	seeds  []string
	visits []string
	hops   []int
}

func (r *visitRecorder) Seeds(uris []string) {
	r.seeds = uris
}

func (r *visitRecorder) Visit(uri string, _ core.RelationKind, hop int) {
	r.visits = append(r.visits, uri)
	r.hops = append(r.hops, hop)
}

// A ring with chords in every relation kind: each concept links to the next
// two by broader, back by narrower, and across by related.
func cyclicThesaurus(n int) []core.Triple {
	var triples []core.Triple
	name := func(i int) string { return fmt.Sprintf("n%d", (i+n)%n) }
	for i := range n {
		triples = append(triples,
			pref(name(i), "node "+name(i), ""),
			rel(name(i), core.PredicateBroader, name(i+1)),
			rel(name(i), core.PredicateBroader, name(i+2)),
			rel(name(i), core.PredicateNarrower, name(i+3)),
			rel(name(i), core.PredicateRelated, name(i+n/2)),
		)
	}
	return triples
}

func TestExpand_NoRevisitOnCycles(t *testing.T) {
	e := newEngine(t, cyclicThesaurus(12), WithMaxDepth(5))

	for _, policy := range []Policy{PolicyBroader, PolicyNarrower, PolicyRelated, PolicyAll} {
		for depth := 0; depth <= 5; depth++ {
			t.Run(fmt.Sprintf("%s depth %d", policy, depth), func(t *testing.T) {
				rec := &visitRecorder{}
				result := e.ExpandWithMonitor(Request{Token: "n0", Kind: KindURI, Policy: policy, Depth: depth}, rec)

				assert.Equal(t, []string{"n0"}, rec.seeds)
				assert.NotContains(t, rec.visits, "n0")

				unique := slices.Clone(rec.visits)
				slices.Sort(unique)
				assert.Len(t, slices.Compact(unique), len(rec.visits), "revisited a concept")

				for _, hop := range rec.hops {
					assert.LessOrEqual(t, hop, depth)
				}
				if depth == 0 {
					assert.Empty(t, rec.visits)
				}
				assert.LessOrEqual(t, len(result.Terms), 12)
			})
		}
	}
}

func TestExpand_MonitorSeesWholeCall(t *testing.T) {
	e := newEngine(t, weaponsThesaurus())
	rec := &recordingMonitor{}

	result := e.ExpandWithMonitor(Request{Token: "spearhead", Policy: PolicyBroader, Depth: 2}, rec)
	assert.Equal(t, "spearhead", rec.started.Token)
	assert.Equal(t, result, rec.finished)
	assert.Equal(t, []string{ukat + "c1", ukat + "c0"}, rec.visited)
}

type recordingMonitor struct {
	started  Request
	visited  []string
	finished Result
}

func (m *recordingMonitor) Start(req Request) { m.started = req }
func (m *recordingMonitor) Seeds(_ []string) {}
func (m *recordingMonitor) Visit(uri string, _ core.RelationKind, _ int) { m.visited = append(m.visited, uri) }
func (m *recordingMonitor) Finish(result Result) { m.finished = result }
