package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"pogacar", "pogacar", 0},
		{"", "", 0},
		{"", "pogacar", 7},
		{"pogacar", "", 7},
		{"kooji", "kooy", 2},
		{"kitten", "sitting", 3},
		{"vingegaard", "vingegard", 1},
		{"a", "b", 1},
		{"abc", "cba", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Distance(tt.a, tt.b), "distance(%q, %q)", tt.a, tt.b)
		assert.Equal(t, tt.want, Distance(tt.b, tt.a), "distance is symmetric for unit costs")
	}
}

func TestDistanceAfterNormalization(t *testing.T) {
	// Diacritic variants collapse to distance zero once normalized.
	assert.Equal(t, 0, Distance(Normalize("pogačar"), "pogacar"))
	assert.Equal(t, 0, Distance(Normalize("Küng"), Normalize("kung")))
}

func TestDistanceRunes(t *testing.T) {
	// Distance counts runes, not bytes.
	assert.Equal(t, 1, Distance("pogačar", "pogacar"))
}
