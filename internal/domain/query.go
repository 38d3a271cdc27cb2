package domain

import "strings"

// Query is a free-text search request from the launcher.
type Query struct {
	Raw  string // as typed
	Term string // normalized: trimmed, lowercased, inner whitespace collapsed
}

// NewQuery normalizes raw launcher input into a Query.
func NewQuery(raw string) Query {
	return Query{Raw: raw, Term: Normalize(raw)}
}

// Normalize lowercases the input and collapses runs of whitespace into
// single spaces.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
