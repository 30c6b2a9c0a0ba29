// Package types - Price records
package types

import (
	"pricing-truth/internal/errors"
)

// Cadence is the billing period a price refers to.
type Cadence string

const (
	CadenceMonth   Cadence = "month"
	CadenceYear    Cadence = "year"
	CadenceDay     Cadence = "day"
	CadenceWeek    Cadence = "week"
	CadenceOneTime Cadence = "one-time"

	// CadenceUnknown means no cadence could be detected
	CadenceUnknown Cadence = ""
)

// String returns the string representation
func (c Cadence) String() string {
	return string(c)
}

// ParsedPrice is a price expression parsed into structure. Created
// transiently by the parser; never persisted standalone.
type ParsedPrice struct {
	// Amount is the numeric amount, always > 0
	Amount float64 `json:"amount"`

	// Currency is the ISO currency code (defaults to USD when unstated)
	Currency string `json:"currency"`

	// Cadence is the billing period, CadenceUnknown if not detected
	Cadence Cadence `json:"cadence,omitempty"`

	// PerSeat is true for per-seat/per-user/per-license pricing
	PerSeat bool `json:"per_seat"`

	// RawText is the verbatim source text the price was parsed from
	RawText string `json:"raw_text"`
}

// NewParsedPrice constructs a ParsedPrice, rejecting non-positive amounts.
func NewParsedPrice(amount float64, currency string, cadence Cadence, perSeat bool, rawText string) (ParsedPrice, error) {
	if amount <= 0 {
		return ParsedPrice{}, errors.Input("price amount must be positive")
	}
	return ParsedPrice{
		Amount:   amount,
		Currency: currency,
		Cadence:  cadence,
		PerSeat:  perSeat,
		RawText:  rawText,
	}, nil
}

// NormalizedPrice is a price converted to a monthly-USD basis.
//
// Invariant: Gaps non-empty <=> MonthlyUSD is the 0.0 sentinel (normalization
// failed); Gaps empty <=> MonthlyUSD > 0 and is a real normalized value.
type NormalizedPrice struct {
	// MonthlyUSD is the normalized monthly USD amount, 0.0 when normalization failed
	MonthlyUSD float64 `json:"monthly_usd"`

	// Original is the parsed price this was derived from
	Original ParsedPrice `json:"original_price"`

	// Method tags how the normalization was performed
	Method string `json:"normalization_method"`

	// Gaps lists the specific facts that prevented normalization
	Gaps []string `json:"gaps"`
}

// OK reports whether normalization succeeded. Callers must never read
// MonthlyUSD as a real price when OK is false.
func (n NormalizedPrice) OK() bool {
	return len(n.Gaps) == 0
}

// CompetitorPricing is one record per competitor domain, built once per
// analysis run by the aggregator and never mutated after construction.
type CompetitorPricing struct {
	// Domain is the competitor domain (host, leading "www." stripped)
	Domain string `json:"domain"`

	// ExtractedPriceTexts are the verbatim price expressions found in sources
	ExtractedPriceTexts []string `json:"extracted_price_texts"`

	// EvidenceSnippets are verbatim snippets containing pricing evidence,
	// capped to the first 10 retained
	EvidenceSnippets []string `json:"evidence_snippets"`

	// NormalizedMonthlyUSD is the normalized monthly USD price, nil when no
	// extracted price could be normalized. Strictly positive when present.
	NormalizedMonthlyUSD *float64 `json:"normalized_monthly_usd,omitempty"`

	// Cadence is the cadence of the price that normalized, if known
	Cadence Cadence `json:"cadence,omitempty"`

	// Gaps lists reasons normalization attempts failed
	Gaps []string `json:"gaps"`

	// Category is the product category extracted from sources
	Category string `json:"category,omitempty"`

	// TargetCustomer is the customer segment extracted from sources
	TargetCustomer string `json:"target_customer,omitempty"`

	// KeyFeatures are features extracted from sources
	KeyFeatures []string `json:"key_features,omitempty"`

	// ProductDescription is a brief description extracted from sources
	ProductDescription string `json:"product_description,omitempty"`

	// ProblemStatement is the problem the competitor product solves
	ProblemStatement string `json:"problem_statement,omitempty"`

	// DecisionContext describes who decides, when, and why
	DecisionContext string `json:"decision_context,omitempty"`

	// PaymentModel is the payment model extracted from sources
	PaymentModel string `json:"payment_model,omitempty"`
}

// Validate enforces construction invariants. A non-positive normalized price
// is a programmer error, not an expected runtime outcome.
func (c CompetitorPricing) Validate() error {
	if c.Domain == "" {
		return errors.Input("competitor pricing requires a domain")
	}
	if c.NormalizedMonthlyUSD != nil && *c.NormalizedMonthlyUSD <= 0 {
		return errors.Inputf("normalized price must be positive, got %f for %s", *c.NormalizedMonthlyUSD, c.Domain)
	}
	return nil
}

// HasAttributes reports whether any descriptive attribute was extracted.
func (c CompetitorPricing) HasAttributes() bool {
	return c.Category != "" ||
		c.TargetCustomer != "" ||
		len(c.KeyFeatures) > 0 ||
		c.ProductDescription != "" ||
		c.ProblemStatement != "" ||
		c.DecisionContext != "" ||
		c.PaymentModel != ""
}
