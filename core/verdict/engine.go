// Package verdict computes the deterministic, evidence-only pricing verdict.
// No LLM is involved anywhere in this package; every number in the output is
// traceable to the evidence bundle.
package verdict

import (
	"fmt"
	"math"

	"pricing-truth/core/aggregation"
	"pricing-truth/core/parsing"
	"pricing-truth/core/types"
)

// Config holds the verdict engine's heuristic constants. The 20% band and
// the confidence weights are tuning knobs, not derived values.
type Config struct {
	// FairBandPct is the ± percentage band around the competitor average
	// classified as FAIR
	FairBandPct float64 `json:"fair_band_pct"`

	// MinComparable is the minimum comparable competitors required
	MinComparable int `json:"min_comparable"`

	// CompetitorWeight, ConsistencyWeight, EvidenceWeight blend the
	// confidence signals; they sum to 1
	CompetitorWeight  float64 `json:"competitor_weight"`
	ConsistencyWeight float64 `json:"consistency_weight"`
	EvidenceWeight    float64 `json:"evidence_weight"`

	// CompetitorSaturation is the comparable count at full competitor score
	CompetitorSaturation float64 `json:"competitor_saturation"`

	// EvidenceSaturation is the source count at full evidence score
	EvidenceSaturation float64 `json:"evidence_saturation"`

	// VarianceScale normalizes the price variance for the consistency score
	VarianceScale float64 `json:"variance_scale"`

	// Filter configures the comparability filter
	Filter aggregation.FilterConfig `json:"filter"`
}

// DefaultConfig returns the default verdict constants.
func DefaultConfig() Config {
	return Config{
		FairBandPct:          20.0,
		MinComparable:        2,
		CompetitorWeight:     0.5,
		ConsistencyWeight:    0.3,
		EvidenceWeight:       0.2,
		CompetitorSaturation: 5.0,
		EvidenceSaturation:   10.0,
		VarianceScale:        10000.0,
		Filter:               aggregation.DefaultFilterConfig(),
	}
}

// Citation caps for the two UNDETERMINABLE and terminal paths.
const (
	insufficientCitationCap = 10
	verdictCitationCap      = 20
)

// ComputeVerdict computes the pricing verdict from evidence alone. It is a
// pure function of its inputs: same product, bundle, rates, and seat count
// always produce the same verdict.
func ComputeVerdict(product types.ProductInput, bundle types.EvidenceBundle, fxRates map[string]float64, seatCount int, cfg Config) types.PricingVerdict {
	parsed := parsing.ParsePrice(product.CurrentPrice)
	if parsed == nil {
		return types.PricingVerdict{
			Status:          types.StatusUndeterminable,
			Confidence:      0.0,
			KeyReasons:      []string{"Could not parse current product price"},
			Gaps:            []string{"Current price format not recognized"},
			Citations:       []string{},
			CompetitorCount: 0,
			EvidenceBundle:  bundle,
		}
	}

	normalized := parsing.NormalizeToMonthlyUSD(*parsed, fxRates, seatCount)
	if !normalized.OK() {
		return types.PricingVerdict{
			Status:          types.StatusUndeterminable,
			Confidence:      0.0,
			KeyReasons:      []string{"Could not normalize current product price"},
			Gaps:            normalized.Gaps,
			Citations:       []string{},
			CompetitorCount: 0,
			EvidenceBundle:  bundle,
		}
	}
	currentMonthlyUSD := normalized.MonthlyUSD

	comparable := aggregation.GetComparableCompetitors(product, currentMonthlyUSD, bundle.CompetitorPricing, cfg.Filter)

	if len(comparable) < cfg.MinComparable {
		gaps := []string{"Insufficient competitor data for comparison"}
		gaps = append(gaps, collectGaps(bundle.CompetitorPricing)...)
		return types.PricingVerdict{
			Status:     types.StatusUndeterminable,
			Confidence: 0.0,
			KeyReasons: []string{fmt.Sprintf(
				"Only %d comparable competitor(s) found. Need at least %d for comparison.",
				len(comparable), cfg.MinComparable)},
			Gaps:            gaps,
			Citations:       sourceURLs(bundle.Sources, insufficientCitationCap),
			CompetitorCount: len(comparable),
			EvidenceBundle:  bundle,
		}
	}

	prices := make([]float64, 0, len(comparable))
	for _, comp := range comparable {
		prices = append(prices, *comp.NormalizedMonthlyUSD)
	}

	avg, minPrice, maxPrice := priceStats(prices)
	diffPct := (currentMonthlyUSD - avg) / avg * 100

	var status types.VerdictStatus
	var reason string
	switch {
	case diffPct < -cfg.FairBandPct:
		status = types.StatusUnderpriced
		reason = fmt.Sprintf(
			"Current price ($%.2f/month) is %.1f%% below average competitor price ($%.2f/month)",
			currentMonthlyUSD, math.Abs(diffPct), avg)
	case diffPct > cfg.FairBandPct:
		status = types.StatusOverpriced
		reason = fmt.Sprintf(
			"Current price ($%.2f/month) is %.1f%% above average competitor price ($%.2f/month)",
			currentMonthlyUSD, diffPct, avg)
	default:
		status = types.StatusFair
		reason = fmt.Sprintf(
			"Current price ($%.2f/month) is within reasonable range of competitor prices ($%.2f-$%.2f/month)",
			currentMonthlyUSD, minPrice, maxPrice)
	}

	return types.PricingVerdict{
		Status:          status,
		Confidence:      calculateConfidence(len(comparable), prices, len(bundle.Sources), cfg),
		KeyReasons:      []string{reason},
		Gaps:            collectGaps(bundle.CompetitorPricing),
		Citations:       sourceURLs(bundle.Sources, verdictCitationCap),
		CompetitorCount: len(comparable),
		EvidenceBundle:  bundle,
	}
}

// calculateConfidence blends three signals: how many comparable competitors
// exist, how consistent their prices are, and how much evidence backs them.
func calculateConfidence(competitorCount int, prices []float64, evidenceCount int, cfg Config) float64 {
	competitorScore := math.Min(float64(competitorCount)/cfg.CompetitorSaturation, 1.0)

	// Lower price variance means higher consistency. The single-price case
	// is unreachable behind the min-comparable gate but stays defined.
	consistencyScore := 0.5
	if len(prices) > 1 {
		variance := populationVariance(prices)
		consistencyScore = 1.0 - math.Min(variance/cfg.VarianceScale, 1.0)
	}

	evidenceScore := math.Min(float64(evidenceCount)/cfg.EvidenceSaturation, 1.0)

	confidence := cfg.CompetitorWeight*competitorScore +
		cfg.ConsistencyWeight*consistencyScore +
		cfg.EvidenceWeight*evidenceScore
	return math.Min(math.Max(confidence, 0.0), 1.0)
}

func populationVariance(prices []float64) float64 {
	mean := 0.0
	for _, p := range prices {
		mean += p
	}
	mean /= float64(len(prices))

	variance := 0.0
	for _, p := range prices {
		variance += (p - mean) * (p - mean)
	}
	return variance / float64(len(prices))
}

func priceStats(prices []float64) (avg, min, max float64) {
	min, max = prices[0], prices[0]
	for _, p := range prices {
		avg += p
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	avg /= float64(len(prices))
	return avg, min, max
}

// collectGaps gathers gap strings from every competitor record, comparable
// or not; they all limit confidence in the verdict.
func collectGaps(competitors []types.CompetitorPricing) []string {
	gaps := []string{}
	for _, comp := range competitors {
		gaps = append(gaps, comp.Gaps...)
	}
	return gaps
}

func sourceURLs(sources []types.SourceDocument, limit int) []string {
	urls := make([]string, 0, limit)
	for _, source := range sources {
		if len(urls) >= limit {
			break
		}
		urls = append(urls, source.URL)
	}
	return urls
}
