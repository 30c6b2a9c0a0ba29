// Package aggregation - Comparability filter
package aggregation

import (
	"strings"

	"pricing-truth/core/types"
)

// FilterConfig holds the comparability filter's heuristic constants. They
// are tuning knobs, not hard invariants; callers may override any of them.
type FilterConfig struct {
	// PriceSimilarityFactor F bounds the price band [subject/F, subject*F]
	PriceSimilarityFactor float64 `json:"price_similarity_factor"`

	// UsagePriceCeiling marks subject prices that look usage-based; below
	// it the price band is widened to avoid over-filtering
	UsagePriceCeiling float64 `json:"usage_price_ceiling"`

	// UsageBandWidening multiplies F when the subject price looks usage-based
	UsageBandWidening float64 `json:"usage_band_widening"`

	// GroupThreshold is the acceptance threshold when competitive-group
	// fields are available for scoring
	GroupThreshold float64 `json:"group_threshold"`

	// LegacyOnlyThreshold is the more permissive threshold used when the
	// subject supplies no competitive-group fields
	LegacyOnlyThreshold float64 `json:"legacy_only_threshold"`

	// NonProductScoreOverride admits a known non-product domain anyway when
	// its total score reaches this value
	NonProductScoreOverride float64 `json:"non_product_score_override"`

	// NameBonusOverride admits a candidate on name-to-domain evidence alone
	NameBonusOverride float64 `json:"name_bonus_override"`

	// BarePriceRatioMin/Max bound the raw price ratio admitting
	// competitors when legacy-only scoring has no attribute pair
	BarePriceRatioMin float64 `json:"bare_price_ratio_min"`
	BarePriceRatioMax float64 `json:"bare_price_ratio_max"`

	// NonProductDomainPatterns are substrings marking forums, blogs, doc
	// sites, and social networks
	NonProductDomainPatterns []string `json:"non_product_domain_patterns"`

	// NonProductTLDs are top-level domains treated as non-product
	NonProductTLDs []string `json:"non_product_tlds"`
}

// DefaultFilterConfig returns the default heuristic constants.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		PriceSimilarityFactor:   5.0,
		UsagePriceCeiling:       1.0,
		UsageBandWidening:       4.0,
		GroupThreshold:          0.4,
		LegacyOnlyThreshold:     0.15,
		NonProductScoreOverride: 0.5,
		NameBonusOverride:       0.3,
		BarePriceRatioMin:       0.5,
		BarePriceRatioMax:       2.0,
		NonProductDomainPatterns: []string{
			"reddit", "quora", "stackoverflow", "stackexchange",
			"facebook", "twitter", "linkedin", "youtube", "instagram",
			"wikipedia", "medium.com", "github", "news.ycombinator",
			"blog", "forum", "docs.", "support.", "community.", "help.",
		},
		NonProductTLDs: []string{".edu", ".gov"},
	}
}

// Scoring weights for the competitive-group and legacy attribute scorers.
const (
	problemWeight  = 0.4
	decisionWeight = 0.3
	paymentWeight  = 0.1

	categoryWeight = 0.4
	customerWeight = 0.3
	featuresWeight = 0.3

	// fallbackDiscount reduces a similarity matched against a fallback
	// field (description for problem, target customer for decision context)
	fallbackDiscount = 0.5

	// Combination weights when a competitive-group score exists
	groupWeightInTotal       = 1.0
	legacyWeightWithGroup    = 0.2
	nameWeightWithGroup      = 0.1
	legacyWeightGroupZero    = 0.7
	nameBonusWeightGroupZero = 0.3

	// Payment model scores
	paymentExactScore      = 1.0
	paymentCompatibleScore = 0.5

	// Name bonus tiers
	nameBonusDirect  = 0.5
	nameBonusPartial = 0.3
)

// paymentModelGroups buckets payment models into compatibility groups.
var paymentModelGroups = map[string]string{
	"subscription": "recurring",
	"per-seat":     "recurring",
	"freemium":     "recurring",
	"monthly":      "recurring",
	"one-time":     "one-time",
	"lifetime":     "one-time",
	"usage-based":  "usage",
	"pay-as-you-go": "usage",
	"metered":      "usage",
}

// CandidateScore is the scoring breakdown for one competitor candidate.
// Keeping the components visible keeps the threshold logic testable.
type CandidateScore struct {
	// Group is the competitive-group score (problem/decision/payment)
	Group float64

	// Legacy is the category/customer/features attribute score
	Legacy float64

	// NameBonus is the product-name-to-domain bonus, at most 0.5
	NameBonus float64

	// Total is the combined score
	Total float64

	// Threshold is the effective acceptance threshold for this candidate
	Threshold float64

	// LegacyOnly marks scoring without competitive-group fields
	LegacyOnly bool
}

// Accepted reports whether the candidate clears its effective threshold.
func (s CandidateScore) Accepted() bool {
	return s.Total >= s.Threshold
}

// ScoreCandidate scores one competitor against the subject product.
//
// When the subject supplies any competitive-group field, the group score
// leads and legacy/name contribute at reduced weight; a zero group score
// falls back to a legacy/name blend. Without any competitive-group field,
// scoring is legacy-only with a more permissive threshold.
func ScoreCandidate(product types.ProductInput, comp types.CompetitorPricing, cfg FilterConfig) CandidateScore {
	score := CandidateScore{
		Legacy:    legacyAttributeScore(product, comp),
		NameBonus: nameDomainBonus(product.Name, comp.Domain),
	}

	if product.HasCompetitiveGroupFields() {
		score.Group = competitiveGroupScore(product, comp)
		score.Threshold = cfg.GroupThreshold
		if score.Group > 0 {
			score.Total = groupWeightInTotal*score.Group +
				legacyWeightWithGroup*score.Legacy +
				nameWeightWithGroup*score.NameBonus
		} else {
			score.Total = legacyWeightGroupZero*score.Legacy +
				nameBonusWeightGroupZero*score.NameBonus
		}
		return score
	}

	score.LegacyOnly = true
	score.Threshold = cfg.LegacyOnlyThreshold
	score.Total = score.Legacy + score.NameBonus
	return score
}

// competitiveGroupScore matches problem statement, decision context, and
// payment model. Weights for the fields the subject actually supplies are
// renormalized to sum to 1.
func competitiveGroupScore(product types.ProductInput, comp types.CompetitorPricing) float64 {
	var sum, weightTotal float64

	if product.ProblemStatement != "" {
		switch {
		case comp.ProblemStatement != "":
			sum += problemWeight * TextSimilarity(product.ProblemStatement, comp.ProblemStatement)
		case comp.ProductDescription != "":
			sum += problemWeight * fallbackDiscount * TextSimilarity(product.ProblemStatement, comp.ProductDescription)
		}
		weightTotal += problemWeight
	}

	if product.DecisionContext != "" {
		switch {
		case comp.DecisionContext != "":
			sum += decisionWeight * TextSimilarity(product.DecisionContext, comp.DecisionContext)
		case comp.TargetCustomer != "":
			sum += decisionWeight * fallbackDiscount * TextSimilarity(product.DecisionContext, comp.TargetCustomer)
		}
		weightTotal += decisionWeight
	}

	if product.PaymentModel != "" {
		sum += paymentWeight * paymentModelMatch(product.PaymentModel, comp.PaymentModel)
		weightTotal += paymentWeight
	}

	if weightTotal == 0 {
		return 0.0
	}
	return sum / weightTotal
}

// paymentModelMatch scores exact matches at 1.0 and compatible-group
// matches (e.g. subscription vs per-seat, both recurring) at 0.5.
func paymentModelMatch(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return paymentExactScore
	}
	groupA, okA := paymentModelGroups[a]
	groupB, okB := paymentModelGroups[b]
	if okA && okB && groupA == groupB {
		return paymentCompatibleScore
	}
	return 0.0
}

// legacyAttributeScore matches category, target customer, and feature
// overlap. Weights for the fields the subject supplies are renormalized;
// a competitor missing the counterpart field contributes zero.
func legacyAttributeScore(product types.ProductInput, comp types.CompetitorPricing) float64 {
	var sum, weightTotal float64

	if product.Category != "" {
		sum += categoryWeight * partialFieldMatch(product.Category, comp.Category)
		weightTotal += categoryWeight
	}
	if product.TargetCustomer != "" {
		sum += customerWeight * partialFieldMatch(product.TargetCustomer, comp.TargetCustomer)
		weightTotal += customerWeight
	}
	if len(product.KeyFeatures) > 0 {
		sum += featuresWeight * featureOverlap(product.KeyFeatures, comp.KeyFeatures)
		weightTotal += featuresWeight
	}

	if weightTotal == 0 {
		return 0.0
	}
	return sum / weightTotal
}

// legacyPairsAvailable reports whether the subject and competitor share at
// least one attribute pair the legacy scorer can compare. Without one the
// legacy score is vacuously zero and says nothing about comparability.
func legacyPairsAvailable(product types.ProductInput, comp types.CompetitorPricing) bool {
	if product.Category != "" && comp.Category != "" {
		return true
	}
	if product.TargetCustomer != "" && comp.TargetCustomer != "" {
		return true
	}
	return len(product.KeyFeatures) > 0 && len(comp.KeyFeatures) > 0
}

// partialFieldMatch scores exact (case-insensitive) matches at 1.0 and
// substring containment at 0.5.
func partialFieldMatch(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return 0.5
	}
	return 0.0
}

// featureOverlap scores feature-list overlap: exact feature matches count
// fully, substring matches count half, scaled by the larger list size.
func featureOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	var matched float64
	for _, fa := range a {
		best := 0.0
		for _, fb := range b {
			if m := partialFieldMatch(fa, fb); m > best {
				best = m
			}
		}
		matched += best
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return matched / float64(larger)
}

var nonAlnum = func(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}

// nameDomainBonus captures direct-brand matches between the product name and
// a competitor domain (e.g. "ChatGPT" vs "chatgpt.com"). At most 0.5.
func nameDomainBonus(name, domain string) float64 {
	normName := strings.ToLower(name)
	normName = strings.Join(strings.FieldsFunc(normName, nonAlnum), "")
	if normName == "" || domain == "" {
		return 0.0
	}

	domain = strings.ToLower(domain)
	labels := strings.Split(domain, ".")
	base := labels[0]
	if len(labels) >= 2 {
		base = labels[len(labels)-2]
	}

	if normName == base {
		return nameBonusDirect
	}
	if len(normName) >= 3 && len(base) >= 3 &&
		(strings.Contains(base, normName) || strings.Contains(normName, base)) {
		return nameBonusDirect
	}

	// Partial credit: a distinctive name token appearing in the domain
	for _, token := range strings.FieldsFunc(strings.ToLower(name), nonAlnum) {
		if len(token) >= 4 && strings.Contains(domain, token) {
			return nameBonusPartial
		}
	}
	return 0.0
}

// isNonProductDomain flags forums, blogs, doc sites, and social networks by
// substring and TLD heuristics.
func isNonProductDomain(domain string, cfg FilterConfig) bool {
	domain = strings.ToLower(domain)
	for _, pattern := range cfg.NonProductDomainPatterns {
		if strings.Contains(domain, pattern) {
			return true
		}
	}
	for _, tld := range cfg.NonProductTLDs {
		if strings.HasSuffix(domain, tld) {
			return true
		}
	}
	return false
}

// GetComparableCompetitors selects the competitors legitimately comparable
// to the subject product.
//
// Stage 1 keeps records with a normalized price. Stage 2 (when a positive
// subject price is supplied) keeps prices inside [subject/F, subject*F],
// widening F for usage-based-looking subject prices. Stage 3 applies the
// similarity scoring, the non-product-domain gate, and the bare-price
// fallback when legacy-only scoring has no attribute pair to work with.
func GetComparableCompetitors(product types.ProductInput, subjectMonthlyUSD float64, competitors []types.CompetitorPricing, cfg FilterConfig) []types.CompetitorPricing {
	var comparable []types.CompetitorPricing

	for _, comp := range competitors {
		if comp.NormalizedMonthlyUSD == nil {
			continue
		}
		price := *comp.NormalizedMonthlyUSD

		if subjectMonthlyUSD > 0 {
			factor := cfg.PriceSimilarityFactor
			if subjectMonthlyUSD < cfg.UsagePriceCeiling {
				factor *= cfg.UsageBandWidening
			}
			if price < subjectMonthlyUSD/factor || price > subjectMonthlyUSD*factor {
				continue
			}
		}

		score := ScoreCandidate(product, comp, cfg)

		if isNonProductDomain(comp.Domain, cfg) &&
			score.Total < cfg.NonProductScoreOverride &&
			score.NameBonus < cfg.NameBonusOverride {
			continue
		}

		if score.Accepted() {
			comparable = append(comparable, comp)
			continue
		}

		// Bare-price fallback: when no attribute pair exists to score, a raw
		// price in the same ballpark (or a direct name hit) keeps the
		// comparison usable.
		if score.LegacyOnly && !legacyPairsAvailable(product, comp) {
			if score.NameBonus >= cfg.NameBonusOverride {
				comparable = append(comparable, comp)
				continue
			}
			if subjectMonthlyUSD > 0 {
				ratio := price / subjectMonthlyUSD
				if ratio >= cfg.BarePriceRatioMin && ratio <= cfg.BarePriceRatioMax {
					comparable = append(comparable, comp)
				}
			}
		}
	}

	return comparable
}
