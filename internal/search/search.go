// Package search implements the fuzzy product-name filter behind the home grid.
package search

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// DefaultThreshold is the similarity threshold used by the home grid.
const DefaultThreshold = 0.3

// MaxQueryRunes bounds the query length. Scoring cost grows with it, so
// longer queries are cut to this many runes.
const MaxQueryRunes = 64

// Filter returns the items whose name approximately matches query.
//
// A blank query returns items unchanged. Otherwise each name is scored by the
// edit distance between the query and the closest window of the name,
// relative to the query length; names scoring at most threshold are kept,
// best first, with ties in input order. Threshold is clamped to [0, 1]; zero
// keeps only exact case-insensitive substring matches. Only the first
// MaxQueryRunes runes of query are used.
func Filter[T any](items []T, name func(T) string, query string, threshold float64) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}

	threshold = math.Max(0, math.Min(1, threshold))
	folder := cases.Fold()
	q := folder.String(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) > MaxQueryRunes {
		q = string([]rune(q)[:MaxQueryRunes])
	}

	type hit struct {
		index int
		score float64
	}

	hits := make([]hit, 0, len(items))
	for i, item := range items {
		score := Score(folder.String(name(item)), q)
		if score <= threshold {
			hits = append(hits, hit{index: i, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].score < hits[j].score
	})

	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = items[h.index]
	}
	return out
}

// Score returns the normalised edit distance between query and the
// best-matching window of text: 0 for a substring match, 1 or more when
// nothing in text resembles query. Callers fold case beforehand.
func Score(text, query string) float64 {
	m := utf8.RuneCountInString(query)
	if m == 0 {
		return 0
	}
	if strings.Contains(text, query) {
		return 0
	}

	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return 1
	}

	// A window more than m runes longer or shorter than the query cannot
	// beat a distance of m, so only lengths in [1, 2m] are tried.
	best := m
	for length := 1; length <= min(n, 2*m); length++ {
		if abs(length-m) >= best {
			continue
		}
		for start := 0; start+length <= n; start++ {
			dist := levenshtein.ComputeDistance(query, string(runes[start:start+length]))
			if dist < best {
				best = dist
				if best == 0 {
					return 0
				}
			}
		}
	}

	return float64(best) / float64(m)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
