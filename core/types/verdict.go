// Package types - Verdict records
package types

import (
	"pricing-truth/internal/errors"
)

// VerdictStatus is the terminal classification of a pricing analysis.
type VerdictStatus string

const (
	StatusUnderpriced    VerdictStatus = "UNDERPRICED"
	StatusFair           VerdictStatus = "FAIR"
	StatusOverpriced     VerdictStatus = "OVERPRICED"
	StatusUndeterminable VerdictStatus = "UNDETERMINABLE"
)

// String returns the string representation
func (s VerdictStatus) String() string {
	return string(s)
}

// EvidenceBundle is the immutable aggregate passed through the pipeline:
// the product input, every retrieved source, every competitor record, and
// any top-level extraction gaps.
type EvidenceBundle struct {
	// ProductInput is the original product input
	ProductInput ProductInput `json:"product_input"`

	// Sources are the retrieved source documents
	Sources []SourceDocument `json:"sources"`

	// CompetitorPricing holds one record per competitor domain
	CompetitorPricing []CompetitorPricing `json:"competitor_pricing"`

	// ExtractionGaps are gaps in evidence extraction at the bundle level
	ExtractionGaps []string `json:"extraction_gaps"`
}

// PricingVerdict is the terminal artifact of the core pipeline,
// consumed by report writers.
type PricingVerdict struct {
	// Status is the verdict classification
	Status VerdictStatus `json:"status"`

	// Confidence is in [0, 1]
	Confidence float64 `json:"confidence"`

	// KeyReasons are the human-readable reasons for the verdict
	KeyReasons []string `json:"key_reasons"`

	// Gaps are data gaps that limit confidence
	Gaps []string `json:"gaps"`

	// Citations are URLs cited as evidence
	Citations []string `json:"citations"`

	// CompetitorCount is the number of competitors with comparable pricing
	CompetitorCount int `json:"competitor_count"`

	// EvidenceBundle is the full evidence the verdict was derived from
	EvidenceBundle EvidenceBundle `json:"evidence_bundle"`
}

// Validate enforces verdict invariants.
func (v PricingVerdict) Validate() error {
	if v.Confidence < 0.0 || v.Confidence > 1.0 {
		return errors.Inputf("confidence must be between 0.0 and 1.0, got %f", v.Confidence)
	}
	if v.CompetitorCount < 0 {
		return errors.Inputf("competitor count must be >= 0, got %d", v.CompetitorCount)
	}
	switch v.Status {
	case StatusUnderpriced, StatusFair, StatusOverpriced, StatusUndeterminable:
	default:
		return errors.Inputf("unknown verdict status %q", string(v.Status))
	}
	return nil
}
