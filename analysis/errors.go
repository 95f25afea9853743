package analysis

import "errors"

var (
	// ErrExpanderRequired is returned when a filter is created without an expander.
	ErrExpanderRequired = errors.New("expander required")
)
