// Package normalize holds the canonical casing rules applied to registry and
// document text before it is stored.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Upper trims s and converts it to upper case. Used for names and codes.
func Upper(s string) string {
	return cases.Upper(language.Italian).String(strings.TrimSpace(s))
}

// Lower trims s and converts it to lower case. Used for email addresses.
func Lower(s string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(s))
}

// Title trims s, collapses inner whitespace and title-cases every word.
// Used for place names (address, city).
func Title(s string) string {
	// cases.Caser is stateful, build a fresh one per call.
	return cases.Title(language.Italian).String(strings.Join(strings.Fields(s), " "))
}

// UpperPtr applies Upper to an optional value, mapping blanks to nil.
func UpperPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := Upper(*s)
	if v == "" {
		return nil
	}
	return &v
}
