package pricematch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/padraicbc/classicsapi/namematch"
)

// PriceRow is one line of the generated price-seed file: a reviewed,
// rider-linked price ready for ingestion via the prices seed endpoint.
type PriceRow struct {
	RiderID      string `yaml:"riderId" json:"riderId"`
	RiderName    string `yaml:"riderName" json:"riderName"`
	ExternalName string `yaml:"externalName" json:"externalName"`
	AmountEUR    int    `yaml:"amountEUR" json:"amountEUR"`
	Source       string `yaml:"source" json:"source"`
}

// Report groups a batch run's matches for review and artifact output.
type Report struct {
	Matches []Match
}

// Tier returns the matches in one confidence tier, in input order.
func (r *Report) Tier(c namematch.Confidence) []Match {
	var out []Match
	for _, m := range r.Matches {
		if m.Confidence == c {
			out = append(out, m)
		}
	}
	return out
}

// Print writes the tiered review report: high matches are safe, medium and
// low need a human eye, no-match means the rider is missing or misspelled.
func (r *Report) Print(w io.Writer) {
	sections := []struct {
		title string
		tier  namematch.Confidence
	}{
		{"HIGH CONFIDENCE MATCHES", namematch.ConfidenceHigh},
		{"MEDIUM CONFIDENCE MATCHES (REVIEW)", namematch.ConfidenceMedium},
		{"LOW CONFIDENCE MATCHES (REVIEW)", namematch.ConfidenceLow},
		{"NO MATCHES", namematch.ConfidenceNone},
	}

	for _, s := range sections {
		fmt.Fprintf(w, "=== %s ===\n", s.title)
		for _, m := range r.Tier(s.tier) {
			if s.tier == namematch.ConfidenceNone {
				fmt.Fprintf(w, "  %-25s -> NO MATCH\n", m.ExternalName)
				continue
			}
			fmt.Fprintf(w, "  %-25s -> %-30s (distance: %d)\n",
				m.ExternalName, m.Rider.Name, m.Distance)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "=== SUMMARY ===")
	fmt.Fprintf(w, "High confidence: %d\n", len(r.Tier(namematch.ConfidenceHigh)))
	fmt.Fprintf(w, "Medium confidence: %d\n", len(r.Tier(namematch.ConfidenceMedium)))
	fmt.Fprintf(w, "Low confidence: %d\n", len(r.Tier(namematch.ConfidenceLow)))
	fmt.Fprintf(w, "No match: %d\n", len(r.Tier(namematch.ConfidenceNone)))
}

// PriceRows converts the ingestable subset of the report – high-confidence
// and overridden matches only – into price-seed rows, sorted by amount
// descending. Medium, low and no-match entries never produce rows.
func (r *Report) PriceRows(source string) []PriceRow {
	var rows []PriceRow
	for _, m := range r.Matches {
		if m.Confidence != namematch.ConfidenceHigh {
			continue
		}
		rows = append(rows, PriceRow{
			RiderID:      m.Rider.ID,
			RiderName:    m.Rider.Name,
			ExternalName: m.ExternalName,
			AmountEUR:    m.Price,
			Source:       source,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AmountEUR > rows[j].AmountEUR
	})
	return rows
}

// WriteJSON saves the full match list as a JSON artifact.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r.Matches, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// WritePricesYAML generates the price-seed YAML from the ingestable matches.
func (r *Report) WritePricesYAML(path, source string) error {
	data, err := yaml.Marshal(r.PriceRows(source))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
