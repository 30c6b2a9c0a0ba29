// Package types - Construction invariant tests
package types

import (
	"testing"
)

// TestNewParsedPriceRejectsNonPositive proves a zero or negative amount
// never constructs
func TestNewParsedPriceRejectsNonPositive(t *testing.T) {
	for _, amount := range []float64{0, -1, -99.99} {
		if _, err := NewParsedPrice(amount, "USD", CadenceMonth, false, "$0"); err == nil {
			t.Errorf("Expected rejection of amount %v", amount)
		}
	}
	parsed, err := NewParsedPrice(99, "USD", CadenceMonth, false, "$99/month")
	if err != nil {
		t.Fatalf("Expected valid construction, got %v", err)
	}
	if parsed.Amount != 99 || parsed.Currency != "USD" {
		t.Errorf("Unexpected parsed price: %+v", parsed)
	}
}

// TestNormalizedPriceOK proves the gaps/sentinel invariant
func TestNormalizedPriceOK(t *testing.T) {
	ok := NormalizedPrice{MonthlyUSD: 99, Gaps: []string{}}
	if !ok.OK() {
		t.Error("Expected OK with no gaps")
	}
	failed := NormalizedPrice{MonthlyUSD: 0, Gaps: []string{"Missing cadence (month/year unknown)"}}
	if failed.OK() {
		t.Error("Expected not OK with gaps")
	}
}

// TestCompetitorPricingValidate proves the positive-price invariant
func TestCompetitorPricingValidate(t *testing.T) {
	if err := (CompetitorPricing{}).Validate(); err == nil {
		t.Error("Expected domain to be required")
	}

	bad := -1.0
	comp := CompetitorPricing{Domain: "rival.com", NormalizedMonthlyUSD: &bad}
	if err := comp.Validate(); err == nil {
		t.Error("Expected non-positive normalized price rejected")
	}

	good := 99.0
	comp = CompetitorPricing{Domain: "rival.com", NormalizedMonthlyUSD: &good}
	if err := comp.Validate(); err != nil {
		t.Errorf("Expected valid record, got %v", err)
	}
}

// TestHasAttributes proves attribute presence detection across fields
func TestHasAttributes(t *testing.T) {
	if (CompetitorPricing{Domain: "a.com"}).HasAttributes() {
		t.Error("Expected no attributes on a bare record")
	}
	if !(CompetitorPricing{Domain: "a.com", Category: "CRM"}).HasAttributes() {
		t.Error("Expected category to count as an attribute")
	}
	if !(CompetitorPricing{Domain: "a.com", KeyFeatures: []string{"sso"}}).HasAttributes() {
		t.Error("Expected features to count as an attribute")
	}
}

// TestPricingVerdictValidate proves the confidence and status invariants
func TestPricingVerdictValidate(t *testing.T) {
	valid := PricingVerdict{Status: StatusFair, Confidence: 0.5}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid verdict, got %v", err)
	}

	invalid := []PricingVerdict{
		{Status: StatusFair, Confidence: 1.5},
		{Status: StatusFair, Confidence: -0.1},
		{Status: "MAYBE", Confidence: 0.5},
		{Status: StatusFair, Confidence: 0.5, CompetitorCount: -1},
	}
	for i, v := range invalid {
		if err := v.Validate(); err == nil {
			t.Errorf("Case %d: expected validation failure for %+v", i, v)
		}
	}
}

// TestHasCompetitiveGroupFields proves the scoring-mode switch
func TestHasCompetitiveGroupFields(t *testing.T) {
	if (ProductInput{Name: "Acme", Category: "CRM"}).HasCompetitiveGroupFields() {
		t.Error("Expected category alone not to enable group scoring")
	}
	if !(ProductInput{Name: "Acme", ProblemStatement: "x"}).HasCompetitiveGroupFields() {
		t.Error("Expected problem statement to enable group scoring")
	}
	if !(ProductInput{Name: "Acme", PaymentModel: "subscription"}).HasCompetitiveGroupFields() {
		t.Error("Expected payment model to enable group scoring")
	}
}
