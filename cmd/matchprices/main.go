// cmd/matchprices/main.go
// Offline batch that links an external price list to canonical riders using
// the fuzzy surname matcher, printing a tiered review report and writing the
// match artifacts. Nothing is ingested here; the generated YAML is seeded via
// the API after review.
//
// Usage:
//
//	go run ./cmd/matchprices -prices config/scorito-prices.yaml \
//	    -overrides config/price-overrides.yaml -out config
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/padraicbc/classicsapi/config"
	bundb "github.com/padraicbc/classicsapi/db"
	"github.com/padraicbc/classicsapi/namematch"
	"github.com/padraicbc/classicsapi/pricematch"
	"github.com/padraicbc/classicsapi/store"
)

func main() {
	pricesPath := flag.String("prices", "", "external price list YAML (required)")
	overridesPath := flag.String("overrides", "", "manual override table YAML (optional)")
	outDir := flag.String("out", "config", "output directory for the match JSON and generated price YAML")
	flag.Parse()

	if *pricesPath == "" {
		log.Fatal("-prices is required")
	}

	entries, err := pricematch.LoadEntries(*pricesPath)
	if err != nil {
		log.Fatal(err)
	}
	overrides, err := pricematch.LoadOverrides(*overridesPath)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	riders, err := store.New(db).AllRiders(context.Background())
	if err != nil {
		log.Fatal("load riders:", err)
	}
	log.Printf("loaded %d riders, matching %d price entries", len(riders), len(entries))

	matcher := namematch.NewMatcher(namematch.Thresholds{
		MediumMax: cfg.MatchMediumMax,
		LowMax:    cfg.MatchLowMax,
	})
	batch := pricematch.NewBatch(matcher, overrides)

	report := &pricematch.Report{Matches: batch.Run(entries, riders)}
	report.Print(os.Stdout)

	matchesPath := filepath.Join(*outDir, "price-matches.json")
	if err := report.WriteJSON(matchesPath); err != nil {
		log.Fatal("write matches:", err)
	}
	log.Printf("matches saved to %s", matchesPath)

	yamlPath := filepath.Join(*outDir, filepath.Base(cfg.PricesFile))
	if err := report.WritePricesYAML(yamlPath, cfg.PriceSource); err != nil {
		log.Fatal("write prices yaml:", err)
	}
	log.Printf("generated %d price rows in %s",
		len(report.PriceRows(cfg.PriceSource)), yamlPath)
}
