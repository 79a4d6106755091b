// Package sanitize normalises customer supplied free text before it is stored.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/unicode/norm"
)

var strict = bluemonday.StrictPolicy()

// Text strips markup, converts to NFC and trims surrounding whitespace.
// Entities escaped by the policy are decoded again so "A & B" survives as typed.
func Text(s string) string {
	s = norm.NFC.String(s)
	s = strict.Sanitize(s)
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}

// TextPtr applies Text and maps an empty result to nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := Text(*s)
	if out == "" {
		return nil
	}
	return &out
}
