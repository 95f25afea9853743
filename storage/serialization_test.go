package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/poiesic/skosexpand/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalConcept(t *testing.T) {
	concept := &core.Concept{
		URI: "http://www.ukat.org.uk/thesaurus/concept/859",
		PrefLabels: []core.Label{
			{Text: "weapons", Lang: "en"},
			{Text: "Waffen", Lang: "de"},
		},
		AltLabels: []core.Label{{Text: "arms"}},
		Broader:   []string{"http://www.ukat.org.uk/thesaurus/concept/5060"},
		Narrower: []string{
			"http://www.ukat.org.uk/thesaurus/concept/1000",
			"http://www.ukat.org.uk/thesaurus/concept/1001",
		},
		Related: []string{},
	}

	decoded, err := UnmarshalConcept(MarshalConcept(concept))
	require.NoError(t, err)
	assert.Equal(t, concept, decoded)
	assert.Empty(t, decoded.Related)
}

func TestUnmarshalConcept_Invalid(t *testing.T) {
	data := MarshalConcept(&core.Concept{
		URI:        "http://example.org/c1",
		PrefLabels: []core.Label{{Text: "weapons"}},
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := UnmarshalConcept(data[:len(data)-2])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSerializationFailed))
	})

	t.Run("trailing bytes", func(t *testing.T) {
		_, err := UnmarshalConcept(append(data, 0x01))
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})
}

func TestMarshalUnmarshalSnapshotMeta(t *testing.T) {
	meta := &core.SnapshotMeta{
		Fingerprint: "0123456789abcdef0123456789abcdef",
		Source:      "testdata/ukat_examples.ttl",
		Concepts:    42,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	decoded, err := UnmarshalSnapshotMeta(MarshalSnapshotMeta(meta))
	require.NoError(t, err)
	assert.Equal(t, meta.Fingerprint, decoded.Fingerprint)
	assert.Equal(t, meta.Source, decoded.Source)
	assert.Equal(t, meta.Concepts, decoded.Concepts)
	assert.True(t, meta.CreatedAt.Equal(decoded.CreatedAt))
}
