package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"
	"io"
	"slices"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// SKOS and RDF vocabulary IRIs recognized by the thesaurus loader.
const (
	SKOSNamespace = "http://www.w3.org/2004/02/skos/core#"
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	SKOSConcept   = SKOSNamespace + "Concept"
	SKOSPrefLabel = SKOSNamespace + "prefLabel"
	SKOSAltLabel  = SKOSNamespace + "altLabel"
	SKOSBroader   = SKOSNamespace + "broader"
	SKOSNarrower  = SKOSNamespace + "narrower"
	SKOSRelated   = SKOSNamespace + "related"
	RDFType       = RDFNamespace + "type"
)

// Fingerprint hashes everything readable from r with BLAKE2b-128 and returns
// the digest as lowercase hex. Used to key persisted graph snapshots.
func Fingerprint(r io.Reader) (string, int64, error) {
	h, err := blake2b.New(16, nil)
	if err != nil {
		return "", 0, err
	}
	n, err := io.Copy(h, r)
	if err != nil {
		return "", n, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// RelationKind identifies a directed concept-to-concept relation.
type RelationKind uint8

const (
	// RelationBroader points at a more general concept.
	RelationBroader RelationKind = iota + 1
	// RelationNarrower points at a more specific concept.
	RelationNarrower
	// RelationRelated is the symmetric associative relation.
	RelationRelated
)

// RelationKinds lists every relation kind in traversal order.
var RelationKinds = []RelationKind{RelationBroader, RelationNarrower, RelationRelated}

func (k RelationKind) String() string {
	switch k {
	case RelationBroader:
		return "broader"
	case RelationNarrower:
		return "narrower"
	case RelationRelated:
		return "related"
	default:
		return "unknown"
	}
}

// Inverse returns the relation stored on the other end of an edge.
func (k RelationKind) Inverse() RelationKind {
	switch k {
	case RelationBroader:
		return RelationNarrower
	case RelationNarrower:
		return RelationBroader
	default:
		return k
	}
}

// Predicate is the subset of the SKOS vocabulary the loader understands.
type Predicate uint8

const (
	PredicateUnknown Predicate = iota
	PredicatePrefLabel
	PredicateAltLabel
	PredicateBroader
	PredicateNarrower
	PredicateRelated
	PredicateType
)

var predicateIRIs = map[string]Predicate{
	SKOSPrefLabel: PredicatePrefLabel,
	SKOSAltLabel:  PredicateAltLabel,
	SKOSBroader:   PredicateBroader,
	SKOSNarrower:  PredicateNarrower,
	SKOSRelated:   PredicateRelated,
	RDFType:       PredicateType,
}

// PredicateFromIRI maps a full predicate IRI to a Predicate.
// Unrecognized IRIs map to PredicateUnknown.
func PredicateFromIRI(iri string) Predicate {
	return predicateIRIs[iri]
}

func (p Predicate) String() string {
	switch p {
	case PredicatePrefLabel:
		return "prefLabel"
	case PredicateAltLabel:
		return "altLabel"
	case PredicateBroader:
		return "broader"
	case PredicateNarrower:
		return "narrower"
	case PredicateRelated:
		return "related"
	case PredicateType:
		return "type"
	default:
		return "unknown"
	}
}

// Relation returns the relation kind a predicate asserts, if any.
func (p Predicate) Relation() (RelationKind, bool) {
	switch p {
	case PredicateBroader:
		return RelationBroader, true
	case PredicateNarrower:
		return RelationNarrower, true
	case PredicateRelated:
		return RelationRelated, true
	default:
		return 0, false
	}
}

// IsLabel reports whether the predicate attaches a label literal.
func (p Predicate) IsLabel() bool {
	return p == PredicatePrefLabel || p == PredicateAltLabel
}

// Term is the object position of a triple: an IRI or a literal.
type Term struct {
	Value   string
	Lang    string // Language tag, literals only
	Literal bool
}

// IRI builds an IRI term.
func IRI(value string) Term {
	return Term{Value: value}
}

// Literal builds a literal term with an optional language tag.
func Literal(value, lang string) Term {
	return Term{Value: value, Lang: lang, Literal: true}
}

// Triple is a single (subject, predicate, object) statement.
type Triple struct {
	Subject   string
	Predicate Predicate
	Object    Term
}

// Label is a concept label with an optional language tag.
type Label struct {
	Text string
	Lang string
}

// Concept is a node of the thesaurus graph.
// Relation slices hold concept URIs, sorted and free of duplicates once the
// concept belongs to a built graph.
type Concept struct {
	URI        string
	PrefLabels []Label
	AltLabels  []Label
	Broader    []string
	Narrower   []string
	Related    []string
}

// Relations returns the URIs linked to c by kind.
func (c *Concept) Relations(kind RelationKind) []string {
	switch kind {
	case RelationBroader:
		return c.Broader
	case RelationNarrower:
		return c.Narrower
	case RelationRelated:
		return c.Related
	default:
		return nil
	}
}

// SetRelations replaces the URIs linked to c by kind.
func (c *Concept) SetRelations(kind RelationKind, uris []string) {
	switch kind {
	case RelationBroader:
		c.Broader = uris
	case RelationNarrower:
		c.Narrower = uris
	case RelationRelated:
		c.Related = uris
	}
}

// HasRelation reports whether c links to uri by kind.
func (c *Concept) HasRelation(kind RelationKind, uri string) bool {
	_, found := slices.BinarySearch(c.Relations(kind), uri)
	return found
}

// PrefLabelFor returns the preferred labels visible under a language filter.
// An empty filter returns every preferred label.
func (c *Concept) PrefLabelFor(lang string) []Label {
	if lang == "" {
		return c.PrefLabels
	}
	var out []Label
	for _, l := range c.PrefLabels {
		if LangMatches(l.Lang, lang) {
			out = append(out, l)
		}
	}
	return out
}

// SnapshotMeta describes a persisted copy of a parsed thesaurus.
type SnapshotMeta struct {
	Fingerprint string
	Source      string
	Concepts    int
	CreatedAt   time.Time
}
