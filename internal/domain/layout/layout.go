// Package layout transliterates queries typed with a Cyrillic keyboard
// layout into the Latin characters at the same key positions, so a query
// typed without switching layouts still finds the intended file.
package layout

import "strings"

// ЙЦУКЕН rows mapped position-by-position onto QWERTY rows.
const (
	cyrillic = "йцукенгшщзфывапролдячсмить"
	latin    = "qwertyuiopasdfghjklzxcvbnm"
)

var toLatin = func() map[rune]rune {
	m := make(map[rune]rune, len(latin))
	lat := []rune(latin)
	for i, r := range []rune(cyrillic) {
		m[r] = lat[i]
	}
	return m
}()

// IsCyrillic reports whether every letter of s (ignoring spaces) belongs to
// the mapped Cyrillic set. Mixed-script input is left alone.
func IsCyrillic(s string) bool {
	seen := false
	for _, r := range strings.ToLower(s) {
		if r == ' ' {
			continue
		}
		if _, ok := toLatin[r]; !ok {
			return false
		}
		seen = true
	}
	return seen
}

// Translate replaces every mapped Cyrillic rune with its QWERTY
// counterpart. Unmapped runes pass through unchanged.
func Translate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if lat, ok := toLatin[r]; ok {
			b.WriteRune(lat)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
