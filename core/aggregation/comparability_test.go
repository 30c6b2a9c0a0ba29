// Package aggregation - Comparability filter tests
package aggregation

import (
	"testing"

	"pricing-truth/core/types"
)

func pricedCompetitor(domain string, monthly float64) types.CompetitorPricing {
	return types.CompetitorPricing{
		Domain:               domain,
		ExtractedPriceTexts:  []string{},
		EvidenceSnippets:     []string{},
		NormalizedMonthlyUSD: &monthly,
		Gaps:                 []string{},
	}
}

// TestGetComparableCompetitorsPriceBand proves wildly different prices are
// excluded while same-ballpark prices survive
func TestGetComparableCompetitorsPriceBand(t *testing.T) {
	product := types.ProductInput{Name: "Acme", CurrentPrice: "$100/month"}
	competitors := []types.CompetitorPricing{
		pricedCompetitor("cheap.com", 5),     // below 100/5
		pricedCompetitor("mid.com", 99),      // inside band
		pricedCompetitor("similar.com", 150), // inside band
		pricedCompetitor("luxury.com", 2000), // above 100*5
	}

	got := GetComparableCompetitors(product, 100, competitors, DefaultFilterConfig())

	domains := make(map[string]bool)
	for _, comp := range got {
		domains[comp.Domain] = true
	}
	if domains["cheap.com"] || domains["luxury.com"] {
		t.Errorf("Expected out-of-band prices excluded, got %v", domains)
	}
	if !domains["mid.com"] {
		t.Errorf("Expected mid.com admitted via bare-price fallback, got %v", domains)
	}
	if !domains["similar.com"] {
		t.Errorf("Expected similar.com admitted via bare-price fallback, got %v", domains)
	}
}

// TestBarePriceFallbackRatioBounds proves the [0.5, 2.0] ratio bounds are
// inclusive for attribute-less competitors
func TestBarePriceFallbackRatioBounds(t *testing.T) {
	product := types.ProductInput{Name: "Acme", CurrentPrice: "$50/month"}
	competitors := []types.CompetitorPricing{
		pricedCompetitor("exactlyhalf.com", 25),    // ratio 0.5 inclusive
		pricedCompetitor("exactlydouble.com", 100), // ratio 2.0 inclusive
		pricedCompetitor("justover.com", 101),      // ratio > 2.0
	}

	got := GetComparableCompetitors(product, 50, competitors, DefaultFilterConfig())

	domains := make(map[string]bool)
	for _, comp := range got {
		domains[comp.Domain] = true
	}
	if !domains["exactlyhalf.com"] || !domains["exactlydouble.com"] {
		t.Errorf("Expected inclusive ratio bounds, got %v", domains)
	}
	if domains["justover.com"] {
		t.Errorf("Expected ratio above 2.0 excluded, got %v", domains)
	}
}

// TestBarePriceFallbackIgnoresCompetitorAttributes proves a name-and-price-only
// subject still gets in-band competitors even when extraction attached
// attributes to them, since there is nothing on the subject side to score
func TestBarePriceFallbackIgnoresCompetitorAttributes(t *testing.T) {
	product := types.ProductInput{Name: "Acme PM", CurrentPrice: "$50/month"}
	comp := pricedCompetitor("rival.com", 99)
	comp.TargetCustomer = "Teams"
	comp.PaymentModel = "subscription"

	got := GetComparableCompetitors(product, 50, []types.CompetitorPricing{comp}, DefaultFilterConfig())
	if len(got) != 1 {
		t.Fatalf("Expected attributed competitor admitted via bare-price fallback, got %v", got)
	}
}

// TestBarePriceFallbackRequiresNoScoredPair proves the fallback stays off when
// the subject and competitor share an attribute the scorer already judged
func TestBarePriceFallbackRequiresNoScoredPair(t *testing.T) {
	product := types.ProductInput{Name: "Acme", CurrentPrice: "$50/month", Category: "Accounting"}
	comp := pricedCompetitor("editpro.com", 60)
	comp.Category = "Video Editing"

	got := GetComparableCompetitors(product, 50, []types.CompetitorPricing{comp}, DefaultFilterConfig())
	if len(got) != 0 {
		t.Errorf("Expected mismatched category to keep the competitor excluded, got %v", got)
	}
}

// TestGetComparableCompetitorsSkipsUnpriced proves records without a
// normalized price never pass
func TestGetComparableCompetitorsSkipsUnpriced(t *testing.T) {
	product := types.ProductInput{Name: "Acme", CurrentPrice: "$100/month"}
	unpriced := types.CompetitorPricing{Domain: "mystery.com", Gaps: []string{"No pricing content found in sources"}}

	got := GetComparableCompetitors(product, 100, []types.CompetitorPricing{unpriced}, DefaultFilterConfig())
	if len(got) != 0 {
		t.Errorf("Expected unpriced competitor excluded, got %v", got)
	}
}

// TestNonProductDomainGate proves forums and socials are excluded unless the
// evidence is strong
func TestNonProductDomainGate(t *testing.T) {
	product := types.ProductInput{Name: "Acme", CurrentPrice: "$100/month"}
	reddit := pricedCompetitor("reddit.com", 99)

	got := GetComparableCompetitors(product, 100, []types.CompetitorPricing{reddit}, DefaultFilterConfig())
	if len(got) != 0 {
		t.Errorf("Expected reddit.com gated out, got %v", got)
	}
}

// TestNameDomainBonus covers the brand-match tiers
func TestNameDomainBonus(t *testing.T) {
	tests := []struct {
		name     string
		product  string
		domain   string
		expected float64
	}{
		{"direct base label match", "ChatGPT", "chatgpt.com", 0.5},
		{"two-label domain base match", "Linear", "linear.app", 0.5},
		{"containment match", "Notion AI", "notion.so", 0.5},
		{"partial token match", "SuperDesk Helpdesk", "superdesk-alternatives.io", 0.3},
		{"no match", "Acme", "unrelated.com", 0.0},
		{"empty name", "", "chatgpt.com", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nameDomainBonus(tt.product, tt.domain); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestNameBonusAdmitsDirectBrandMatch proves a direct brand hit admits an
// attribute-less competitor regardless of score
func TestNameBonusAdmitsDirectBrandMatch(t *testing.T) {
	product := types.ProductInput{Name: "Zenledger", CurrentPrice: "$400/month"}
	brand := pricedCompetitor("zenledger.io", 450)

	got := GetComparableCompetitors(product, 400, []types.CompetitorPricing{brand}, DefaultFilterConfig())
	if len(got) != 1 {
		t.Fatalf("Expected brand-match admission, got %v", got)
	}
}

// TestScoreCandidateGroupMode proves competitive-group fields drive scoring
// when the subject supplies them
func TestScoreCandidateGroupMode(t *testing.T) {
	product := types.ProductInput{
		Name:             "Acme",
		ProblemStatement: "scattered task tracking across spreadsheets",
		DecisionContext:  "Engineering managers choosing team tools",
		PaymentModel:     "subscription",
	}
	comp := types.CompetitorPricing{
		Domain:           "rival.com",
		ProblemStatement: "scattered task tracking across spreadsheets",
		DecisionContext:  "Engineering managers choosing team tools",
		PaymentModel:     "subscription",
	}

	score := ScoreCandidate(product, comp, DefaultFilterConfig())
	if score.LegacyOnly {
		t.Fatal("Expected group-mode scoring")
	}
	if score.Group != 1.0 {
		t.Errorf("Expected perfect group score, got %v", score.Group)
	}
	if !score.Accepted() {
		t.Errorf("Expected acceptance at total %v against threshold %v", score.Total, score.Threshold)
	}
}

// TestScoreCandidateFallbackFields proves description and target customer
// stand in at a discount for missing group fields
func TestScoreCandidateFallbackFields(t *testing.T) {
	product := types.ProductInput{
		Name:             "Acme",
		ProblemStatement: "scattered task tracking",
	}
	direct := types.CompetitorPricing{
		Domain:           "direct.com",
		ProblemStatement: "scattered task tracking",
	}
	viaFallback := types.CompetitorPricing{
		Domain:             "fallback.com",
		ProductDescription: "scattered task tracking",
	}

	cfg := DefaultFilterConfig()
	directScore := ScoreCandidate(product, direct, cfg)
	fallbackScore := ScoreCandidate(product, viaFallback, cfg)

	if directScore.Group != 1.0 {
		t.Errorf("Expected direct group score 1.0, got %v", directScore.Group)
	}
	if fallbackScore.Group != 0.5 {
		t.Errorf("Expected discounted fallback score 0.5, got %v", fallbackScore.Group)
	}
}

// TestScoreCandidateLegacyOnly proves the permissive threshold applies when
// the subject has no competitive-group fields
func TestScoreCandidateLegacyOnly(t *testing.T) {
	product := types.ProductInput{
		Name:     "Acme",
		Category: "Project Management",
	}
	comp := types.CompetitorPricing{
		Domain:   "rival.com",
		Category: "Project Management",
	}

	score := ScoreCandidate(product, comp, DefaultFilterConfig())
	if !score.LegacyOnly {
		t.Fatal("Expected legacy-only scoring")
	}
	if score.Threshold != 0.15 {
		t.Errorf("Expected permissive threshold 0.15, got %v", score.Threshold)
	}
	if score.Legacy != 1.0 {
		t.Errorf("Expected renormalized category-only score 1.0, got %v", score.Legacy)
	}
	if !score.Accepted() {
		t.Error("Expected acceptance")
	}
}

// TestPaymentModelMatch covers exact, compatible-group, and unrelated models
func TestPaymentModelMatch(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"subscription", "subscription", 1.0},
		{"subscription", "per-seat", 0.5},
		{"Subscription", "SUBSCRIPTION", 1.0},
		{"one-time", "lifetime", 0.5},
		{"usage-based", "metered", 0.5},
		{"subscription", "one-time", 0.0},
		{"", "subscription", 0.0},
		{"bespoke", "artisanal", 0.0},
	}
	for _, tt := range tests {
		if got := paymentModelMatch(tt.a, tt.b); got != tt.expected {
			t.Errorf("paymentModelMatch(%q, %q): expected %v, got %v", tt.a, tt.b, tt.expected, got)
		}
	}
}

// TestUsageBandWidening proves sub-dollar subject prices widen the band
func TestUsageBandWidening(t *testing.T) {
	product := types.ProductInput{Name: "Acme", CurrentPrice: "$0.50/month", Category: "Analytics"}
	// 0.50 * 5 = 2.50 would exclude a $9 competitor; widening to 5*4=20
	// admits prices up to $10
	comp := pricedCompetitor("metered.com", 9)
	comp.Category = "Analytics"

	got := GetComparableCompetitors(product, 0.50, []types.CompetitorPricing{comp}, DefaultFilterConfig())
	if len(got) != 1 {
		t.Fatalf("Expected widened band to admit $9 competitor, got %v", got)
	}
}
