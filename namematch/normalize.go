// Package namematch resolves inconsistent rider name spellings to canonical
// identities: normalization for exact comparison, edit distance for fuzzy
// comparison, and a confidence-tiered matcher over the two.
package namematch

import (
	"regexp"
	"strings"
)

// diacritics maps accented characters seen in rider names to base letters.
// Input is lowercased before the table applies, so only lowercase keys exist.
// Anything not listed passes through unchanged.
var diacritics = map[rune]rune{
	'á': 'a', 'à': 'a', 'â': 'a', 'ä': 'a', 'ã': 'a', 'å': 'a', 'ā': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e', 'ę': 'e', 'ė': 'e',
	'í': 'i', 'ì': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i',
	'ó': 'o', 'ò': 'o', 'ô': 'o', 'ö': 'o', 'õ': 'o', 'ø': 'o',
	'ú': 'u', 'ù': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ů': 'u',
	'ñ': 'n', 'ń': 'n', 'ç': 'c', 'č': 'c', 'ć': 'c',
	'š': 's', 'ş': 's', 'ž': 'z', 'ż': 'z', 'ź': 'z',
	'đ': 'd', 'ð': 'd', 'ģ': 'g', 'ķ': 'k', 'ļ': 'l', 'ł': 'l',
	'ř': 'r', 'ť': 't', 'ý': 'y', 'ņ': 'n',
}

var parenthetical = regexp.MustCompile(`\([^)]*\)`)

// Normalize canonicalizes a rider name for comparison: lowercase, strip
// diacritics, drop parenthesized nicknames, drop initials' periods, collapse
// whitespace. Total and idempotent; the raw name is kept elsewhere for display.
func Normalize(raw string) string {
	s := strings.ToLower(raw)

	s = strings.Map(func(r rune) rune {
		if base, ok := diacritics[r]; ok {
			return base
		}
		return r
	}, s)

	s = parenthetical.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ".", "")

	return strings.Join(strings.Fields(s), " ")
}
