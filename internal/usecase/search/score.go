package search

import (
	"math"
	"sort"
	"strings"
)

// The rate is a product of independent penalties; 0 is a perfect match and
// anything above the configured cutoff is discarded. Each factor keeps the
// scale of the others: absolute distance dominates, the remaining terms
// push near-misses apart.

// rate scores a candidate basename against the query term. Lower is better.
func rate(term, base string) float64 {
	unqTerm := uniqueLetters(term)
	unqBase := uniqueLetters(base)

	r := distanceRelative(unqTerm, unqBase) * float64(distance(unqTerm, unqBase))
	r *= math.Sqrt(float64(distance(term, head(base, len([]rune(term))))) + 1)
	r *= math.Sqrt(missingLettersRel(term, base) + 1)
	r /= float64(commonHead(term, base)) + 1
	r *= tokenSortRatio(term, base)
	return r
}

// distance is the optimal-string-alignment distance: Levenshtein where a
// single swap of adjacent runes counts as one edit. Unlike unrestricted
// Damerau-Levenshtein no substring is edited twice, so e.g.
// distance("ca", "abc") is 3, not 2.
func distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if t := prev2[j-2] + 1; t < cur[j] {
					cur[j] = t
				}
			}
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[lb]
}

// distanceRelative normalizes the distance by the shorter input.
func distanceRelative(a, b string) float64 {
	shorter := len([]rune(a))
	if lb := len([]rune(b)); lb < shorter {
		shorter = lb
	}
	if shorter == 0 {
		return 0
	}
	return float64(distance(a, b)) / float64(shorter)
}

// uniqueLetters keeps the first occurrence of each rune, preserving order.
func uniqueLetters(s string) string {
	seen := make(map[rune]struct{}, len(s))
	var b strings.Builder
	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		b.WriteRune(r)
	}
	return b.String()
}

// missingLetters counts distinct runes of term absent from base.
func missingLetters(term, base string) int {
	baseSet := make(map[rune]struct{}, len(base))
	for _, r := range base {
		baseSet[r] = struct{}{}
	}
	missing := 0
	for _, r := range uniqueLetters(term) {
		if _, ok := baseSet[r]; !ok {
			missing++
		}
	}
	return missing
}

// missingLettersRel normalizes missing letters by the term length.
func missingLettersRel(term, base string) float64 {
	l := len([]rune(term))
	if l == 0 {
		return 0
	}
	return float64(missingLetters(term, base)) / float64(l)
}

// commonHead is the length of the shared prefix of term and base.
func commonHead(term, base string) int {
	rt, rb := []rune(term), []rune(base)
	n := len(rt)
	if len(rb) < n {
		n = len(rb)
	}
	for i := 0; i < n; i++ {
		if rt[i] != rb[i] {
			return i
		}
	}
	return n
}

// head returns the first n runes of s.
func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// tokenSortRatio is a similarity in [0,1]: tokens of both inputs are
// sorted and rejoined, then compared by normalized Levenshtein distance.
// Word order does not matter ("cmd total" matches "total cmd").
func tokenSortRatio(a, b string) float64 {
	sa := sortTokens(a)
	sb := sortTokens(b)

	longer := len([]rune(sa))
	if lb := len([]rune(sb)); lb > longer {
		longer = lb
	}
	if longer == 0 {
		return 1
	}
	return 1 - float64(distance(sa, sb))/float64(longer)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
