package pricematch

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/padraicbc/classicsapi/models"
	"github.com/padraicbc/classicsapi/namematch"
)

func snapshot() []models.Rider {
	return []models.Rider{
		{ID: "r1", Name: "pogacar tadej"},
		{ID: "r2", Name: "van der poel mathieu"},
		{ID: "r3", Name: "van aert wout"},
		{ID: "r4", Name: "pedersen mads"},
	}
}

func newBatch(overrides Overrides) *Batch {
	return NewBatch(namematch.NewMatcher(namematch.DefaultThresholds()), overrides)
}

func TestRunFuzzyMatch(t *testing.T) {
	matches := newBatch(nil).Run([]Entry{
		{Name: "T. Pogačar", Price: 7000000},
		{Name: "M. Pedersen", Price: 4500000},
	}, snapshot())

	require.Len(t, matches, 2)
	assert.Equal(t, "r1", matches[0].Rider.ID)
	assert.Equal(t, namematch.ConfidenceHigh, matches[0].Confidence)
	assert.Equal(t, 7000000, matches[0].Price)
	assert.False(t, matches[0].Overridden)
	assert.Equal(t, "r4", matches[1].Rider.ID)
}

func TestRunOverrideWins(t *testing.T) {
	// "W. van Aert" fuzzy-matches the wrong surname token ("van"), which is
	// exactly what the override table exists for.
	overrides := Overrides{"W. van Aert": "van aert wout"}

	matches := newBatch(overrides).Run([]Entry{
		{Name: "W. van Aert", Price: 4500000},
	}, snapshot())

	require.Len(t, matches, 1)
	assert.Equal(t, "r3", matches[0].Rider.ID)
	assert.Equal(t, namematch.ConfidenceHigh, matches[0].Confidence)
	assert.True(t, matches[0].Overridden)
}

func TestRunOverrideMissingRiderFallsBack(t *testing.T) {
	overrides := Overrides{"T. Pogačar": "no such rider"}

	matches := newBatch(overrides).Run([]Entry{
		{Name: "T. Pogačar", Price: 7000000},
	}, snapshot())

	require.Len(t, matches, 1)
	assert.False(t, matches[0].Overridden)
	assert.Equal(t, "r1", matches[0].Rider.ID, "fuzzy match still finds the rider")
}

func TestRunNoMatch(t *testing.T) {
	matches := newBatch(nil).Run([]Entry{
		{Name: "X. Zzzzzzzzzz", Price: 1000000},
	}, snapshot())

	require.Len(t, matches, 1)
	assert.Equal(t, namematch.ConfidenceNone, matches[0].Confidence)
	// The nearest candidate is still reported so reviewers can eyeball it;
	// confidence alone decides whether the row is usable.
	assert.NotEmpty(t, matches[0].Rider.ID)
	assert.Greater(t, matches[0].Distance, namematch.DefaultThresholds().LowMax)
}

func TestReportPriceRows(t *testing.T) {
	report := &Report{Matches: newBatch(Overrides{"W. van Aert": "van aert wout"}).Run([]Entry{
		{Name: "M. Pedersen", Price: 4500000},
		{Name: "T. Pogačar", Price: 7000000},
		{Name: "W. van Aert", Price: 4500000},
		{Name: "X. Zzzzzzzzzz", Price: 1000000},
	}, snapshot())}

	rows := report.PriceRows("scorito-2026")

	// No-match rows never reach the seed file; output sorts amount desc.
	require.Len(t, rows, 3)
	assert.Equal(t, "r1", rows[0].RiderID)
	assert.Equal(t, 7000000, rows[0].AmountEUR)
	assert.Equal(t, "scorito-2026", rows[0].Source)
	for _, row := range rows {
		assert.NotEmpty(t, row.RiderID)
	}
}

func TestReportPrint(t *testing.T) {
	report := &Report{Matches: newBatch(nil).Run([]Entry{
		{Name: "T. Pogačar", Price: 7000000},
		{Name: "X. Zzzzzzzzzz", Price: 1000000},
	}, snapshot())}

	var buf bytes.Buffer
	report.Print(&buf)
	out := buf.String()

	assert.Contains(t, out, "HIGH CONFIDENCE MATCHES")
	assert.Contains(t, out, "pogacar tadej")
	assert.Contains(t, out, "NO MATCH")
	assert.Contains(t, out, "High confidence: 1")
	assert.Contains(t, out, "No match: 1")
}

func TestArtifactsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	report := &Report{Matches: newBatch(nil).Run([]Entry{
		{Name: "T. Pogačar", Price: 7000000},
	}, snapshot())}

	jsonPath := filepath.Join(dir, "matches.json")
	require.NoError(t, report.WriteJSON(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var decoded []Match
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "T. Pogačar", decoded[0].ExternalName)

	yamlPath := filepath.Join(dir, "prices.yaml")
	require.NoError(t, report.WritePricesYAML(yamlPath, "scorito-2026"))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var rows []PriceRow
	require.NoError(t, yaml.Unmarshal(data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "r1", rows[0].RiderID)
}

func TestLoadEntriesAndOverrides(t *testing.T) {
	dir := t.TempDir()

	pricesPath := filepath.Join(dir, "prices.yaml")
	require.NoError(t, os.WriteFile(pricesPath, []byte(
		"- name: T. Pogačar\n  price: 7000000\n- name: M. Pedersen\n  price: 4500000\n"), 0o644))

	entries, err := LoadEntries(pricesPath)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "T. Pogačar", entries[0].Name)
	assert.Equal(t, 7000000, entries[0].Price)

	overridesPath := filepath.Join(dir, "overrides.yaml")
	require.NoError(t, os.WriteFile(overridesPath, []byte(
		"W. van Aert: van aert wout\n"), 0o644))

	overrides, err := LoadOverrides(overridesPath)
	require.NoError(t, err)
	assert.Equal(t, "van aert wout", overrides["W. van Aert"])

	// Absent override file means no overrides, not an error.
	overrides, err = LoadOverrides(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, overrides)
}
