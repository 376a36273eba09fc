package namematch

import "github.com/padraicbc/classicsapi/models"

// Confidence classifies fuzzy-match quality by edit distance.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "no-match"
)

// Thresholds are the tier bounds on edit distance. Distance 0 is always high;
// anything above LowMax is no-match. Policy values, not algorithm constants.
type Thresholds struct {
	MediumMax int
	LowMax    int
}

// DefaultThresholds returns the standard 1–2 medium, 3–4 low tiering.
func DefaultThresholds() Thresholds {
	return Thresholds{MediumMax: 2, LowMax: 4}
}

// Tier maps an edit distance onto a confidence tier.
func (t Thresholds) Tier(distance int) Confidence {
	switch {
	case distance == 0:
		return ConfidenceHigh
	case distance <= t.MediumMax:
		return ConfidenceMedium
	case distance <= t.LowMax:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// MatchResult is the outcome of matching one external name against a
// candidate pool. With an empty pool, Rider is the zero value and Distance is
// negative: callers must check Confidence before using Rider. A no-match or
// low result must never drive a write; it is surfaced for review.
type MatchResult struct {
	ExternalName string       `json:"externalName"`
	Rider        models.Rider `json:"rider"`
	Confidence   Confidence   `json:"confidence"`
	Distance     int          `json:"distance"`
}

// Matcher picks the nearest candidate by surname edit distance. Greedy, not
// globally optimal: each name is matched independently.
type Matcher struct {
	thresholds Thresholds
}

// NewMatcher returns a Matcher using the given tier thresholds.
func NewMatcher(t Thresholds) *Matcher {
	return &Matcher{thresholds: t}
}

// FindBestMatch returns the candidate whose canonical surname is closest to
// the external name's surname. Ties keep the first-encountered candidate, so
// the result is deterministic for a deterministic candidate order. Pure;
// absence of a good match is expressed through Confidence, never an error.
func (m *Matcher) FindBestMatch(externalName string, candidates []models.Rider) MatchResult {
	key := ExternalSurname(externalName)

	result := MatchResult{
		ExternalName: externalName,
		Confidence:   ConfidenceNone,
		Distance:     -1,
	}

	for _, r := range candidates {
		d := Distance(key, CanonicalSurname(r.Name))
		if result.Distance < 0 || d < result.Distance {
			result.Rider = r
			result.Distance = d
		}
	}

	if result.Distance >= 0 {
		result.Confidence = m.thresholds.Tier(result.Distance)
	}
	return result
}
