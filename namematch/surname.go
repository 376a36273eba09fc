package namematch

import "strings"

// Surname extraction is convention-driven and deliberately kept in two named
// policies rather than inline slicing, so either convention can be swapped
// without touching the matcher. Both are fragile for multi-word surnames
// ("van der Poel" abbreviates to "M. van der Poel" but the canonical first
// token is just "van"); the matcher's edit-distance tolerance absorbs most of
// that, and the rest is what the review tiers exist for.

// ExternalSurname derives the normalized surname key from an abbreviated
// external name like "T. Pogačar": everything after the first ". " is the
// surname. Names without the initial pattern are used whole.
func ExternalSurname(name string) string {
	if _, after, ok := strings.Cut(name, ". "); ok {
		return Normalize(after)
	}
	return Normalize(name)
}

// CanonicalSurname derives the normalized surname key from a persisted
// canonical name, which by convention is stored "surname firstname…": the
// first whitespace-delimited token is the surname.
func CanonicalSurname(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return Normalize(fields[0])
}
