package namematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "POGACAR Tadej", "pogacar tadej"},
		{"diacritics", "Pogačar Tadej", "pogacar tadej"},
		{"nickname stripped", "Óscar (El Pistolero)", "oscar"},
		{"initial period removed", "T. Pogačar", "t pogacar"},
		{"whitespace collapsed", "  van  der   Poel ", "van der poel"},
		{"latvian diacritics", "Skujiņš Toms", "skujins toms"},
		{"unmapped characters pass through", "D'hoore Jolien", "d'hoore jolien"},
		{"empty", "", ""},
		{"only parenthetical", "(nobody)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Óscar (El Pistolero)",
		"T. Pogačar",
		"  Mathieu   van der Poel  ",
		"GROSSSCHARTNER Felix",
		"",
		"J. Vingegaard (DK)",
	}

	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "normalize should be idempotent for %q", in)
	}
}
