// Package index provides the label lookup used to resolve natural-language
// tokens to thesaurus concepts.
package index
