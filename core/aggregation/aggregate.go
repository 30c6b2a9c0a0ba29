// Package aggregation groups retrieved source documents by competitor domain
// and assembles one CompetitorPricing record per domain, then filters the
// records down to the set legitimately comparable to the subject product.
package aggregation

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"pricing-truth/core/extraction"
	"pricing-truth/core/parsing"
	"pricing-truth/core/types"
	"pricing-truth/internal/logging"
)

// maxEvidenceSnippets caps the snippets retained on a competitor record.
const maxEvidenceSnippets = 10

// AggregateCompetitorPricing groups sources by normalized domain and builds
// one CompetitorPricing record per domain. Documents with unparseable URLs
// are skipped silently. Missing data is never filled in with assumptions;
// it surfaces as gaps on the record.
func AggregateCompetitorPricing(sources []types.SourceDocument, fxRates map[string]float64, seatCount int, vocab *extraction.Vocabulary) []types.CompetitorPricing {
	domainSources := make(map[string][]types.SourceDocument)
	var domainOrder []string

	for _, source := range sources {
		domain := normalizeDomain(source.URL)
		if domain == "" {
			continue
		}
		if _, seen := domainSources[domain]; !seen {
			domainOrder = append(domainOrder, domain)
		}
		domainSources[domain] = append(domainSources[domain], source)
	}

	records := make([]types.CompetitorPricing, 0, len(domainOrder))
	for _, domain := range domainOrder {
		record := buildCompetitorRecord(domain, domainSources[domain], fxRates, seatCount, vocab)
		if err := record.Validate(); err != nil {
			logging.Warn("dropping invalid competitor record",
				zap.String("domain", domain), zap.Error(err))
			continue
		}
		records = append(records, record)
	}
	return records
}

// normalizeDomain extracts the host from a URL and strips a leading "www.".
// Returns "" for unparseable URLs.
func normalizeDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

func buildCompetitorRecord(domain string, sources []types.SourceDocument, fxRates map[string]float64, seatCount int, vocab *extraction.Vocabulary) types.CompetitorPricing {
	var contents []string
	for _, source := range sources {
		if source.Content != "" {
			contents = append(contents, source.Content)
		}
	}
	allContent := strings.Join(contents, " ")

	if allContent == "" {
		// No content: keep the record so the gap is visible downstream
		return types.CompetitorPricing{
			Domain:              domain,
			ExtractedPriceTexts: []string{},
			EvidenceSnippets:    []string{},
			Gaps:                []string{"No pricing content found in sources"},
		}
	}

	snippets := extraction.ExtractPricingSnippets(sources)
	priceTexts := extraction.ExtractPriceTexts(snippets)
	attrs := extraction.ExtractAttributes(allContent, vocab)

	var normalized *float64
	var cadence types.Cadence
	var gaps []string

	// First price text that normalizes to a positive monthly value wins.
	// Gaps from every failed attempt are kept.
	for _, priceText := range priceTexts {
		parsed := parsing.ParsePriceInContext(priceText, snippetContext(priceText, snippets))
		if parsed == nil {
			continue
		}
		result := parsing.NormalizeToMonthlyUSD(*parsed, fxRates, seatCount)
		if !result.OK() {
			gaps = append(gaps, result.Gaps...)
			continue
		}
		monthly := result.MonthlyUSD
		normalized = &monthly
		cadence = parsed.Cadence
		break
	}

	if normalized == nil && len(gaps) == 0 {
		gaps = append(gaps, "Could not normalize any price (missing cadence, FX rate, or seat count)")
	}
	if gaps == nil {
		gaps = []string{}
	}

	if len(snippets) > maxEvidenceSnippets {
		snippets = snippets[:maxEvidenceSnippets]
	}

	return types.CompetitorPricing{
		Domain:               domain,
		ExtractedPriceTexts:  priceTexts,
		EvidenceSnippets:     snippets,
		NormalizedMonthlyUSD: normalized,
		Cadence:              cadence,
		Gaps:                 gaps,
		Category:             attrs.Category,
		TargetCustomer:       attrs.TargetCustomer,
		KeyFeatures:          attrs.KeyFeatures,
		ProductDescription:   attrs.Description,
		ProblemStatement:     attrs.ProblemStatement,
		DecisionContext:      attrs.DecisionContext,
		PaymentModel:         attrs.PaymentModel,
	}
}

// snippetContext returns the first snippet containing the price text, used
// as cadence-detection context when the price text itself states none.
func snippetContext(priceText string, snippets []string) string {
	for _, snippet := range snippets {
		if strings.Contains(snippet, priceText) {
			return snippet
		}
	}
	return ""
}
