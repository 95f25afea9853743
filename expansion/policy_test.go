package expansion

import (
	"testing"

	"github.com/poiesic/skosexpand/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  Policy
	}{
		{"single", []string{"labels"}, PolicyLabels},
		{"several args", []string{"labels", "Broader"}, PolicyLabels | PolicyBroader},
		{"comma list", []string{"narrower, related"}, PolicyNarrower | PolicyRelated},
		{"pipe list", []string{"labels|broader"}, PolicyLabels | PolicyBroader},
		{"all", []string{"all"}, PolicyAll},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePolicy(tt.input...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown name", func(t *testing.T) {
		_, err := ParsePolicy("labels", "sideways")
		assert.ErrorIs(t, err, ErrUnknownPolicy)
	})
}

func TestPolicy(t *testing.T) {
	p := PolicyLabels | PolicyRelated | PolicyBroader

	assert.True(t, p.Has(PolicyLabels))
	assert.True(t, p.Has(PolicyLabels|PolicyRelated))
	assert.False(t, p.Has(PolicyNarrower))
	assert.False(t, p.Has(0))

	assert.Equal(t, []core.RelationKind{core.RelationBroader, core.RelationRelated}, p.Relations())
	assert.Empty(t, PolicyLabels.Relations())

	assert.Equal(t, "labels|broader|related", p.String())
	assert.Equal(t, "none", Policy(0).String())

	roundTrip, err := ParsePolicy(p.String())
	require.NoError(t, err)
	assert.Equal(t, p, roundTrip)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("URI")
	require.NoError(t, err)
	assert.Equal(t, KindURI, k)
	assert.Equal(t, "uri", k.String())

	k, err = ParseKind("")
	require.NoError(t, err)
	assert.Equal(t, KindLabel, k)

	_, err = ParseKind("iri")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, KindLabel, cfg.Kind)
		assert.Equal(t, PolicyLabels|PolicyBroader, cfg.Policy)
		assert.Equal(t, 1, cfg.Depth)
		assert.Equal(t, 2, cfg.MaxDepth)
	})

	t.Run("options", func(t *testing.T) {
		cfg := NewConfig(
			WithKind(KindURI),
			WithPolicy(PolicyNarrower),
			WithDepth(2),
			WithDepthCap(4),
			WithLanguage("EN-gb"),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, "en-GB", cfg.Language)

		req := cfg.Request("http://example.org/c1")
		assert.Equal(t, Request{
			Token:    "http://example.org/c1",
			Kind:     KindURI,
			Policy:   PolicyNarrower,
			Depth:    2,
			Language: "en-GB",
		}, req)
	})

	t.Run("invalid", func(t *testing.T) {
		assert.ErrorIs(t, NewConfig(WithDepth(-1)).Validate(), ErrInvalidDepth)
		assert.ErrorIs(t, NewConfig(WithDepthCap(-1)).Validate(), ErrInvalidDepth)
		assert.ErrorIs(t, NewConfig(WithKind(Kind(9))).Validate(), ErrUnknownKind)
		assert.ErrorIs(t, NewConfig(WithPolicy(Policy(64))).Validate(), ErrUnknownPolicy)
	})
}
