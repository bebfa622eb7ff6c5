package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"farmprice/internal/model"
	"farmprice/internal/snapshot"

	"github.com/shopspring/decimal"
)

// generateSampleSnapshot writes a gzipped catalogue that the server can
// seed its last known listing from when the price service is down.
// Tomato is quoted in three markets (10, 20, 30), potato in one (25) and
// onion in none, so the average prices are 20, 25 and 0.
func main() {
	out := flag.String("out", "data/snapshots/catalogue.json.gz", "snapshot file to write")
	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*out), 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	observed := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	quote := func(id, name string, price, previous int64) model.MarketQuote {
		return model.MarketQuote{
			MarketID:      id,
			MarketName:    name,
			Price:         decimal.NewFromInt(price),
			PreviousPrice: decimal.NewFromInt(previous),
			ObservedAt:    observed,
		}
	}

	catalogue := &snapshot.Catalogue{
		GeneratedAt: time.Now().UTC(),
		ProductPrices: []model.ProductPrices{
			{
				Product: model.Product{ID: "tomato", Name: "Tomato", BaseUnit: "kg", Priority: 1, IsInDemand: true},
				MarketPrices: []model.MarketQuote{
					quote("m1", "Mysuru", 10, 8),
					quote("m2", "Mandya", 20, 20),
					quote("m3", "Hassan", 30, 0),
				},
			},
			{
				Product:      model.Product{ID: "potato", Name: "Potato", BaseUnit: "kg", Priority: 2},
				MarketPrices: []model.MarketQuote{quote("m1", "Mysuru", 25, 20)},
			},
			{
				Product:      model.Product{ID: "onion", Name: "Onion", BaseUnit: "kg", Priority: 3},
				MarketPrices: []model.MarketQuote{},
			},
		},
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *out, err)
	}
	defer f.Close()

	if err := snapshot.Encode(f, catalogue); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Created %s with %d products\n", *out, len(catalogue.ProductPrices))
}
