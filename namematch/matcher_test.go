package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/classicsapi/models"
)

func riders(names ...string) []models.Rider {
	out := make([]models.Rider, len(names))
	for i, n := range names {
		out[i] = models.Rider{ID: n, Name: n}
	}
	return out
}

func TestExternalSurname(t *testing.T) {
	assert.Equal(t, "pogacar", ExternalSurname("T. Pogačar"))
	assert.Equal(t, "van der poel", ExternalSurname("M. van der Poel"))
	// No "<initial>. " pattern: the whole string is the key.
	assert.Equal(t, "wout van aert", ExternalSurname("Wout van Aert"))
	assert.Equal(t, "", ExternalSurname(""))
}

func TestCanonicalSurname(t *testing.T) {
	assert.Equal(t, "pogacar", CanonicalSurname("pogacar tadej"))
	assert.Equal(t, "kung", CanonicalSurname("küng stefan"))
	assert.Equal(t, "", CanonicalSurname("   "))
}

func TestFindBestMatchHigh(t *testing.T) {
	m := NewMatcher(DefaultThresholds())
	pool := riders("pogacar tadej", "van der poel mathieu", "pedersen mads")

	res := m.FindBestMatch("T. Pogačar", pool)

	assert.Equal(t, ConfidenceHigh, res.Confidence)
	assert.Equal(t, 0, res.Distance)
	assert.Equal(t, "pogacar tadej", res.Rider.Name)
}

func TestFindBestMatchEmptyPool(t *testing.T) {
	m := NewMatcher(DefaultThresholds())

	res := m.FindBestMatch("X. Nomatch", nil)

	assert.Equal(t, ConfidenceNone, res.Confidence)
	assert.Negative(t, res.Distance)
	assert.Empty(t, res.Rider.ID, "placeholder candidate must be the zero value")
}

func TestFindBestMatchTieKeepsFirst(t *testing.T) {
	m := NewMatcher(DefaultThresholds())
	// Both surnames are distance 1 from "koolj".
	pool := riders("koolx aaa", "kooly bbb")

	res := m.FindBestMatch("O. Koolj", pool)

	require.Equal(t, 1, res.Distance)
	assert.Equal(t, "koolx aaa", res.Rider.Name)
}

func TestFindBestMatchTiers(t *testing.T) {
	m := NewMatcher(DefaultThresholds())

	tests := []struct {
		external string
		want     Confidence
		distance int
	}{
		{"K. Pogacar", ConfidenceHigh, 0},
		{"K. Pogacra", ConfidenceMedium, 2},
		{"K. Pogr", ConfidenceLow, 3},
		{"K. Zzzzzzzzzzz", ConfidenceNone, 11},
	}

	pool := riders("pogacar tadej")
	for _, tt := range tests {
		res := m.FindBestMatch(tt.external, pool)
		assert.Equal(t, tt.want, res.Confidence, "external %q", tt.external)
		assert.Equal(t, tt.distance, res.Distance, "external %q", tt.external)
	}
}

func TestThresholdsArePolicy(t *testing.T) {
	strict := NewMatcher(Thresholds{MediumMax: 1, LowMax: 2})
	pool := riders("pogacar tadej")

	// Distance 2: medium under defaults, low under the strict thresholds.
	res := strict.FindBestMatch("K. Pogacra", pool)
	assert.Equal(t, ConfidenceLow, res.Confidence)

	res = NewMatcher(DefaultThresholds()).FindBestMatch("K. Pogacra", pool)
	assert.Equal(t, ConfidenceMedium, res.Confidence)
}
