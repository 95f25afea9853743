package core

import (
	"strings"

	"golang.org/x/text/language"
)

// NormalizeLang canonicalizes a BCP 47 language tag ("EN-gb" becomes "en-GB").
// Tags that do not parse are lowercased and returned as-is.
func NormalizeLang(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return strings.ToLower(tag)
	}
	return t.String()
}

// LangMatches reports whether a label language satisfies a language filter.
// Untagged labels and empty filters match everything. A filter without a
// region matches every regional variant ("en" matches "en-GB").
func LangMatches(labelLang, filter string) bool {
	if filter == "" || labelLang == "" {
		return true
	}
	labelLang = strings.ToLower(labelLang)
	filter = strings.ToLower(filter)
	return labelLang == filter || strings.HasPrefix(labelLang, filter+"-")
}
