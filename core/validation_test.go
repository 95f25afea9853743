package core

import (
	"errors"
	"testing"
)

func TestValidateConcept(t *testing.T) {
	tests := []struct {
		name    string
		concept *Concept
		wantErr error
	}{
		{
			name: "valid concept",
			concept: &Concept{
				URI:        "http://example.org/c1",
				PrefLabels: []Label{{Text: "weapons", Lang: "en"}},
				AltLabels:  []Label{{Text: "arms"}},
				Broader:    []string{"http://example.org/c0"},
			},
			wantErr: nil,
		},
		{
			name:    "valid concept without labels",
			concept: &Concept{URI: "http://example.org/c1"},
			wantErr: nil,
		},
		{
			name:    "nil concept",
			concept: nil,
			wantErr: ErrInvalidConcept,
		},
		{
			name:    "empty URI",
			concept: &Concept{URI: "  "},
			wantErr: ErrEmptyConceptURI,
		},
		{
			name: "blank alternative label",
			concept: &Concept{
				URI:       "http://example.org/c1",
				AltLabels: []Label{{Text: " "}},
			},
			wantErr: ErrEmptyLabel,
		},
		{
			name: "self-referential narrower edge",
			concept: &Concept{
				URI:      "http://example.org/c1",
				Narrower: []string{"http://example.org/c1"},
			},
			wantErr: ErrSelfReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateConcept(tt.concept)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateConcept() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateConcept() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConcept) {
				t.Errorf("ValidateConcept() error = %v, should wrap ErrInvalidConcept", err)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := error(&ParseError{Line: 7, Reason: "expected object"})
	if !errors.Is(err, ErrMalformedStatement) {
		t.Errorf("ParseError should unwrap to ErrMalformedStatement")
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Line != 7 {
		t.Errorf("errors.As failed for ParseError: %v", err)
	}
	if got, want := err.Error(), "line 7: malformed statement: expected object"; got != want {
		t.Errorf("ParseError.Error() = %q, want %q", got, want)
	}
}
