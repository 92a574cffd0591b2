// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
)

var (
	// Matches spaces, underscores, and slashes (for replacement with dashes).
	wordSeparatorRe = regexp.MustCompile(`[\s_/]+`)
	// Matches non-alphanumeric characters (except dashes).
	nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9-]`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
)

// NormalizeSlug converts a game name to the canonical slug used for file
// names and search fallback. Lutris rows normally carry a slug already;
// this is the fallback for rows that don't.
//
// Normalization rules:
//  1. Trim whitespace and lowercase
//  2. Replace spaces and underscores with dashes
//  3. Remove non-alphanumeric characters (except dashes)
//  4. Collapse multiple dashes
//  5. Trim leading/trailing dashes
//
// Examples:
//
//	"Hollow Knight"   → "hollow-knight"
//	"NieR:Automata™"  → "nierautomata"
//	"  HADES  "       → "hades"
func NormalizeSlug(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = nonAlphanumericRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SearchTerm converts a slug back into the human-readable form sent to the
// SteamGridDB autocomplete endpoint: every dash becomes a space.
func SearchTerm(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}
