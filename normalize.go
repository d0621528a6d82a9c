package main

import (
	"html"
	"regexp"
	"strings"
)

// Truncation limits per call site. These are display bounds, not parsing
// limits; see shorten.
const (
	maxRecapLen    = 220
	maxGenericLen  = 280
	maxExcerptLen  = 300
	maxMainIdeaLen = 140
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// cleanText strips tag-like markup and collapses whitespace. It is
// deliberately permissive: feed excerpts frequently contain broken HTML
// and this must never fail, so no real markup parser is involved.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = tagPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// shorten cuts s to at most max runes, appending a single ellipsis when
// anything was removed. Rune-based so multi-byte source languages are
// not cut mid-character.
func shorten(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	cut := strings.TrimRight(string(runes[:max-1]), " ")
	return cut + "…"
}
