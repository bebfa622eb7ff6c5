// Package snapshot keeps a gzipped JSON copy of the product listing so the
// home grid can still be served while the upstream price API is down.
package snapshot

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"farmprice/internal/model"
)

// Catalogue is the on-disk snapshot format.
type Catalogue struct {
	GeneratedAt   time.Time             `json:"generatedAt"`
	ProductPrices []model.ProductPrices `json:"productPrices"`
}

// Loader defines the interface for loading catalogue snapshots.
type Loader interface {
	// Load reads a gzipped catalogue snapshot.
	Load(ctx context.Context, path string) (*Catalogue, error)
}

// Decode reads a gzipped JSON catalogue from r.
func Decode(r io.Reader) (*Catalogue, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var catalogue Catalogue
	if err := json.NewDecoder(gzipReader).Decode(&catalogue); err != nil {
		return nil, fmt.Errorf("failed to decode catalogue: %w", err)
	}

	return &catalogue, nil
}

// Encode writes catalogue to w as gzipped JSON.
func Encode(w io.Writer, catalogue *Catalogue) error {
	gzipWriter := gzip.NewWriter(w)

	if err := json.NewEncoder(gzipWriter).Encode(catalogue); err != nil {
		gzipWriter.Close()
		return fmt.Errorf("failed to encode catalogue: %w", err)
	}

	if err := gzipWriter.Close(); err != nil {
		return fmt.Errorf("failed to flush gzip writer: %w", err)
	}

	return nil
}
