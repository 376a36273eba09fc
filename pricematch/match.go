// Package pricematch links an external price list to canonical riders. The
// external source abbreviates names ("T. Pogačar"), so linking goes through
// the fuzzy surname matcher, with a manual override table for the names the
// matcher is known to get wrong. Output is a reviewable artifact, never
// ingested without review.
package pricematch

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/padraicbc/classicsapi/models"
	"github.com/padraicbc/classicsapi/namematch"
)

// Entry is one external price-list line: abbreviated rider name and price.
type Entry struct {
	Name  string `yaml:"name" json:"name"`
	Price int    `yaml:"price" json:"price"`
}

// Overrides maps external names directly to canonical normalized rider names.
// Any name present here bypasses the fuzzy matcher entirely.
type Overrides map[string]string

// Match is one price entry resolved against the rider snapshot.
type Match struct {
	namematch.MatchResult

	Price      int  `json:"price"`
	Overridden bool `json:"overridden,omitempty"`
}

// Batch resolves price entries against a rider snapshot.
type Batch struct {
	matcher   *namematch.Matcher
	overrides Overrides
}

// NewBatch returns a Batch using the given matcher and override table.
func NewBatch(m *namematch.Matcher, overrides Overrides) *Batch {
	return &Batch{matcher: m, overrides: overrides}
}

// Run matches every entry in order. An override resolves by exact canonical
// name and yields a high-confidence match; an override naming a rider absent
// from the snapshot falls back to the fuzzy matcher.
func (b *Batch) Run(entries []Entry, riders []models.Rider) []Match {
	matches := make([]Match, 0, len(entries))
	for _, e := range entries {
		if canonical, ok := b.overrides[e.Name]; ok {
			if rider := riderByName(riders, canonical); rider != nil {
				matches = append(matches, Match{
					MatchResult: namematch.MatchResult{
						ExternalName: e.Name,
						Rider:        *rider,
						Confidence:   namematch.ConfidenceHigh,
						Distance:     0,
					},
					Price:      e.Price,
					Overridden: true,
				})
				continue
			}
		}

		matches = append(matches, Match{
			MatchResult: b.matcher.FindBestMatch(e.Name, riders),
			Price:       e.Price,
		})
	}
	return matches
}

func riderByName(riders []models.Rider, name string) *models.Rider {
	for i := range riders {
		if riders[i].Name == name {
			return &riders[i]
		}
	}
	return nil
}

// LoadEntries reads the external price list from a YAML file.
func LoadEntries(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prices %s: %w", path, err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse prices %s: %w", path, err)
	}
	return entries, nil
}

// LoadOverrides reads the manual override table from a YAML file. A missing
// path means no overrides.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return Overrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Overrides{}, nil
		}
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}
	var overrides Overrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse overrides %s: %w", path, err)
	}
	return overrides, nil
}
