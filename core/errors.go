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
	"errors"
	"fmt"
)

// Load and build errors
var (
	// ErrSourceUnavailable indicates the thesaurus source could not be opened or read,
	// or contained no data at all.
	ErrSourceUnavailable = errors.New("thesaurus source unavailable")

	// ErrMalformedStatement indicates a single statement could not be parsed.
	ErrMalformedStatement = errors.New("malformed statement")

	// ErrEmptyGraph indicates the build produced zero usable concepts.
	ErrEmptyGraph = errors.New("concept graph is empty")

	// ErrInconsistentGraph indicates a broken graph invariant. It is a programming fault.
	ErrInconsistentGraph = errors.New("concept graph is inconsistent")
)

// Domain validation errors
var (
	// ErrInvalidConcept indicates a Concept failed validation.
	ErrInvalidConcept = errors.New("invalid concept")

	// ErrEmptyConceptURI indicates the concept URI is empty.
	ErrEmptyConceptURI = errors.New("concept URI cannot be empty")

	// ErrEmptyLabel indicates a label has no text.
	ErrEmptyLabel = errors.New("label text cannot be empty")

	// ErrSelfReference indicates a concept relates to itself.
	ErrSelfReference = errors.New("concept cannot relate to itself")
)

// ParseError describes one statement skipped by the parser.
type ParseError struct {
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, ErrMalformedStatement, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedStatement
}
