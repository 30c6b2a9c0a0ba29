// Package search - Query strategy tests
package search

import (
	"context"
	"testing"

	"pricing-truth/core/types"
	"pricing-truth/internal/errors"
)

type stubSearcher struct {
	queries []string
	results map[string][]types.SourceDocument
	failOn  map[string]bool
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]types.SourceDocument, error) {
	s.queries = append(s.queries, query)
	if s.failOn[query] {
		return nil, errors.Search("stubbed failure", nil)
	}
	return s.results[query], nil
}

// TestDiscoverPricingSourcesQueries proves the product, alternatives, and
// per-competitor queries all run
func TestDiscoverPricingSourcesQueries(t *testing.T) {
	stub := &stubSearcher{results: map[string][]types.SourceDocument{}}
	strategy := NewQueryStrategy(stub)

	product := types.ProductInput{
		Name:           "Acme",
		CurrentPrice:   "$99/month",
		CompetitorURLs: []string{"https://rival.com/pricing", "not a url"},
	}
	strategy.DiscoverPricingSources(context.Background(), product)

	expected := []string{
		"Acme pricing plans",
		"Acme alternatives competitors pricing",
		"rival.com pricing plans",
	}
	if len(stub.queries) != len(expected) {
		t.Fatalf("Expected %d queries, got %v", len(expected), stub.queries)
	}
	for i, want := range expected {
		if stub.queries[i] != want {
			t.Errorf("Query %d: expected %q, got %q", i, want, stub.queries[i])
		}
	}
}

// TestDiscoverPricingSourcesFrontLoadsAndDedupes proves pricing URLs come
// first and repeats across queries are dropped
func TestDiscoverPricingSourcesFrontLoadsAndDedupes(t *testing.T) {
	pricingPage := types.SourceDocument{URL: "https://rival.com/pricing", Title: "Pricing"}
	aboutPage := types.SourceDocument{URL: "https://rival.com/about", Title: "About"}

	stub := &stubSearcher{results: map[string][]types.SourceDocument{
		"Acme pricing plans":                   {aboutPage, pricingPage},
		"Acme alternatives competitors pricing": {pricingPage},
	}}
	strategy := NewQueryStrategy(stub)

	sources := strategy.DiscoverPricingSources(context.Background(), types.ProductInput{Name: "Acme"})
	if len(sources) != 2 {
		t.Fatalf("Expected 2 deduplicated sources, got %d", len(sources))
	}
	if sources[0].URL != "https://rival.com/pricing" {
		t.Errorf("Expected pricing page front-loaded, got %s", sources[0].URL)
	}
}

// TestDiscoverPricingSourcesSkipsFailedQueries proves one failed query never
// aborts discovery
func TestDiscoverPricingSourcesSkipsFailedQueries(t *testing.T) {
	stub := &stubSearcher{
		results: map[string][]types.SourceDocument{
			"Acme alternatives competitors pricing": {{URL: "https://other.io/plans"}},
		},
		failOn: map[string]bool{"Acme pricing plans": true},
	}
	strategy := NewQueryStrategy(stub)

	sources := strategy.DiscoverPricingSources(context.Background(), types.ProductInput{Name: "Acme"})
	if len(sources) != 1 || sources[0].URL != "https://other.io/plans" {
		t.Errorf("Expected surviving query's sources, got %v", sources)
	}
}
