// Package search - Pricing discovery query strategy
package search

import (
	"context"
	"fmt"
	neturl "net/url"
	"strings"

	"go.uber.org/zap"

	"pricing-truth/core/types"
	"pricing-truth/internal/logging"
)

// pricingURLKeywords mark URLs likely to be pricing pages; those results
// are front-loaded so the aggregator sees them first.
var pricingURLKeywords = []string{"/pricing", "/plans", "price", "pricing"}

// Searcher is the query interface the strategy needs, satisfied by *Client.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.SourceDocument, error)
}

// QueryStrategy generates and executes pricing-related search queries for a
// product and its competitors.
type QueryStrategy struct {
	client Searcher
	log    *zap.Logger
}

// NewQueryStrategy creates a query strategy over the given searcher.
func NewQueryStrategy(client Searcher) *QueryStrategy {
	return &QueryStrategy{
		client: client,
		log:    logging.Named("query-strategy"),
	}
}

// DiscoverPricingSources runs the discovery queries for the product:
// product pricing, competitor/alternative pricing, and one query per
// explicitly supplied competitor URL. Individual query failures are logged
// and skipped; discovery never aborts on a single bad query.
func (s *QueryStrategy) DiscoverPricingSources(ctx context.Context, product types.ProductInput) []types.SourceDocument {
	seen := make(map[string]bool)
	var all []types.SourceDocument

	queries := []string{
		fmt.Sprintf("%s pricing plans", product.Name),
		fmt.Sprintf("%s alternatives competitors pricing", product.Name),
	}
	for _, competitorURL := range product.CompetitorURLs {
		if parsed, err := neturl.Parse(competitorURL); err == nil && parsed.Host != "" {
			queries = append(queries, fmt.Sprintf("%s pricing plans", parsed.Host))
		}
	}

	for _, query := range queries {
		sources, err := s.client.Search(ctx, query)
		if err != nil {
			s.log.Warn("discovery query failed, continuing",
				zap.String("query", query), zap.Error(err))
			continue
		}
		all = append(all, filterPricingURLs(sources, seen)...)
	}
	return all
}

// filterPricingURLs drops already-seen URLs and front-loads pricing pages.
func filterPricingURLs(sources []types.SourceDocument, seen map[string]bool) []types.SourceDocument {
	var pricing, other []types.SourceDocument

	for _, source := range sources {
		if seen[source.URL] {
			continue
		}
		seen[source.URL] = true

		urlLower := strings.ToLower(source.URL)
		isPricingURL := false
		for _, keyword := range pricingURLKeywords {
			if strings.Contains(urlLower, keyword) {
				isPricingURL = true
				break
			}
		}
		if isPricingURL {
			pricing = append(pricing, source)
		} else {
			other = append(other, source)
		}
	}
	return append(pricing, other...)
}
