// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// ValidateConcept validates a Concept according to domain rules.
//
// Validation rules:
//   - URI must not be empty
//   - Every label must have non-blank text
//   - No relation may point back at the concept itself
//
// NOT validated:
//   - Whether related URIs exist (checked by the graph builder)
//   - Inverse edges (repaired by the graph builder)
func ValidateConcept(concept *Concept) error {
	if concept == nil {
		return fmt.Errorf("%w: concept is nil", ErrInvalidConcept)
	}

	if strings.TrimSpace(concept.URI) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidConcept, ErrEmptyConceptURI)
	}

	for _, labels := range [][]Label{concept.PrefLabels, concept.AltLabels} {
		for _, l := range labels {
			if err := ValidateLabel(l); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidConcept, concept.URI, err)
			}
		}
	}

	for _, kind := range RelationKinds {
		for _, uri := range concept.Relations(kind) {
			if uri == concept.URI {
				return fmt.Errorf("%w: %s %s: %w", ErrInvalidConcept, concept.URI, kind, ErrSelfReference)
			}
		}
	}

	return nil
}

// ValidateLabel checks that a label carries text.
func ValidateLabel(label Label) error {
	if strings.TrimSpace(label.Text) == "" {
		return ErrEmptyLabel
	}
	return nil
}
