// Package everseek builds queries in the Everything search syntax and the
// HTTP parameters that carry them to the engine's built-in web server.
package everseek

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort selects the engine-side result ordering.
type Sort string

// Sort keys supported by the engine's HTTP interface.
const (
	SortName         Sort = "name"
	SortPath         Sort = "path"
	SortSize         Sort = "size"
	SortDateModified Sort = "date_modified"
)

// Query is a fluent builder for a single engine search.
type Query struct {
	term       string
	extensions []string

	// Match flags.
	matchCase bool
	wholeWord bool
	matchPath bool
	regex     bool

	sort       Sort
	descending bool

	max    int
	offset int
}

// NewQuery creates a builder over a raw search term. The term is used as
// given; callers interleave wildcards themselves when they want
// subsequence matching (see Interleave).
func NewQuery(term string) *Query {
	return &Query{term: term, sort: SortName}
}

// Extensions restricts results to files with one of the given extensions
// (bare suffixes without dots).
func (q *Query) Extensions(exts ...string) *Query {
	q.extensions = append(q.extensions, exts...)
	return q
}

// MatchCase makes the search case sensitive.
func (q *Query) MatchCase() *Query {
	q.matchCase = true
	return q
}

// WholeWord matches whole words only.
func (q *Query) WholeWord() *Query {
	q.wholeWord = true
	return q
}

// MatchPath matches against the full path instead of the name alone.
func (q *Query) MatchPath() *Query {
	q.matchPath = true
	return q
}

// Regex treats the term as a regular expression.
func (q *Query) Regex() *Query {
	q.regex = true
	return q
}

// SortBy sets the engine-side result ordering.
func (q *Query) SortBy(s Sort) *Query {
	q.sort = s
	return q
}

// Descending reverses the sort order.
func (q *Query) Descending() *Query {
	q.descending = true
	return q
}

// Max caps the number of results the engine returns.
func (q *Query) Max(n int) *Query {
	q.max = n
	return q
}

// Offset skips the first n results (paging).
func (q *Query) Offset(n int) *Query {
	q.offset = n
	return q
}

// Build renders the search expression: an optional file/extension filter
// followed by the term.
func (q *Query) Build() string {
	var parts []string
	if len(q.extensions) > 0 {
		parts = append(parts, "file:", "ext:"+strings.Join(q.extensions, ";"))
	}
	if q.term != "" {
		parts = append(parts, q.term)
	}
	return strings.Join(parts, " ")
}

// Values renders the full HTTP parameter set for the engine's web server:
// the search expression, JSON output, the path/size/date columns, match
// flags, sort and paging.
func (q *Query) Values() url.Values {
	v := url.Values{}
	v.Set("search", q.Build())
	v.Set("json", "1")
	v.Set("path_column", "1")
	v.Set("size_column", "1")
	v.Set("date_modified_column", "1")

	if q.matchCase {
		v.Set("case", "1")
	}
	if q.wholeWord {
		v.Set("wholeword", "1")
	}
	if q.matchPath {
		v.Set("path", "1")
	}
	if q.regex {
		v.Set("regex", "1")
	}

	if q.sort != "" {
		v.Set("sort", string(q.sort))
	}
	if q.descending {
		v.Set("ascending", "0")
	}

	if q.max > 0 {
		v.Set("count", strconv.Itoa(q.max))
	}
	if q.offset > 0 {
		v.Set("offset", strconv.Itoa(q.offset))
	}

	return v
}

// Interleave expands a term so each character may appear anywhere in a
// name, in order: "tcmd" becomes "*t*c*m*d*". Spaces act as plain
// wildcards between the surrounding characters.
func Interleave(term string) string {
	var runes []string
	for _, r := range term {
		if r == ' ' {
			continue
		}
		runes = append(runes, string(r))
	}
	if len(runes) == 0 {
		return ""
	}
	return "*" + strings.Join(runes, "*") + "*"
}
