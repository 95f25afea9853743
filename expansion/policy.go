package expansion

import (
	"fmt"
	"strings"

	"github.com/poiesic/skosexpand/core"
)

// Policy selects what an expansion collects. Policies combine with |.
type Policy uint8

const (
	// PolicyLabels collects the seed concepts' own preferred and alternative labels.
	PolicyLabels Policy = 1 << iota
	// PolicyBroader walks broader edges.
	PolicyBroader
	// PolicyNarrower walks narrower edges.
	PolicyNarrower
	// PolicyRelated walks related edges.
	PolicyRelated

	PolicyAll = PolicyLabels | PolicyBroader | PolicyNarrower | PolicyRelated
)

var policyNames = []struct {
	policy Policy
	name   string
}{
	{PolicyLabels, "labels"},
	{PolicyBroader, "broader"},
	{PolicyNarrower, "narrower"},
	{PolicyRelated, "related"},
}

// Has reports whether every bit of q is set in p.
func (p Policy) Has(q Policy) bool {
	return q != 0 && p&q == q
}

// Relations returns the relation kinds p walks, in traversal order.
func (p Policy) Relations() []core.RelationKind {
	var kinds []core.RelationKind
	for _, kind := range core.RelationKinds {
		if p.Has(PolicyFor(kind)) {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

func (p Policy) String() string {
	var names []string
	for _, pn := range policyNames {
		if p.Has(pn.policy) {
			names = append(names, pn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// PolicyFor returns the policy bit that walks kind.
func PolicyFor(kind core.RelationKind) Policy {
	switch kind {
	case core.RelationBroader:
		return PolicyBroader
	case core.RelationNarrower:
		return PolicyNarrower
	case core.RelationRelated:
		return PolicyRelated
	default:
		return 0
	}
}

// ParsePolicy combines policy names. Each argument may itself hold several
// names separated by commas or '|'. "all" selects every policy.
func ParsePolicy(names ...string) (Policy, error) {
	var p Policy
	for _, arg := range names {
		for _, name := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == '|' }) {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			if name == "all" {
				p |= PolicyAll
				continue
			}
			found := false
			for _, pn := range policyNames {
				if pn.name == name {
					p |= pn.policy
					found = true
					break
				}
			}
			if !found {
				return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
			}
		}
	}
	return p, nil
}

// Kind says how a token is resolved to seed concepts.
type Kind uint8

const (
	// KindLabel resolves a token through the label index.
	KindLabel Kind = iota
	// KindURI treats the token as a concept URI.
	KindURI
)

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindURI:
		return "uri"
	default:
		return "unknown"
	}
}

// ParseKind parses "label" or "uri".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "label", "":
		return KindLabel, nil
	case "uri":
		return KindURI, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}
