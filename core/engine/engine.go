// Package engine wires the evidence-to-verdict pipeline: aggregation of
// retrieved sources into competitor records, comparability filtering, and
// the deterministic verdict computation. One Engine may serve many runs;
// each run is an independent, synchronous computation over its own inputs.
package engine

import (
	"go.uber.org/zap"

	"pricing-truth/core/aggregation"
	"pricing-truth/core/extraction"
	"pricing-truth/core/parsing"
	"pricing-truth/core/types"
	"pricing-truth/core/verdict"
	"pricing-truth/internal/logging"
)

// Options configures an analysis engine.
type Options struct {
	// FXRates maps currency codes to USD multipliers. Nil uses the static
	// built-in table.
	FXRates map[string]float64

	// SeatCount is the seat count for per-seat pricing, 0 when not supplied
	SeatCount int

	// Vocabulary overrides the attribute extraction lookup tables
	Vocabulary *extraction.Vocabulary

	// Verdict configures the verdict engine and comparability filter
	Verdict verdict.Config
}

// DefaultOptions returns engine defaults.
func DefaultOptions() Options {
	return Options{
		FXRates: parsing.DefaultFXRates(),
		Verdict: verdict.DefaultConfig(),
	}
}

// Engine runs complete analysis passes.
type Engine struct {
	opts Options
	log  *zap.Logger
}

// New creates an engine with the given options.
func New(opts Options) *Engine {
	return &Engine{
		opts: opts,
		log:  logging.Named("engine"),
	}
}

// BuildEvidence aggregates sources into an evidence bundle for the product.
func (e *Engine) BuildEvidence(product types.ProductInput, sources []types.SourceDocument) types.EvidenceBundle {
	competitors := aggregation.AggregateCompetitorPricing(sources, e.opts.FXRates, e.opts.SeatCount, e.opts.Vocabulary)

	var extractionGaps []string
	if len(sources) == 0 {
		extractionGaps = append(extractionGaps, "No sources retrieved")
	}
	if extractionGaps == nil {
		extractionGaps = []string{}
	}

	e.log.Debug("evidence assembled",
		zap.Int("sources", len(sources)),
		zap.Int("competitors", len(competitors)))

	return types.EvidenceBundle{
		ProductInput:      product,
		Sources:           sources,
		CompetitorPricing: competitors,
		ExtractionGaps:    extractionGaps,
	}
}

// Analyze runs the full pipeline: evidence assembly then verdict.
func (e *Engine) Analyze(product types.ProductInput, sources []types.SourceDocument) types.PricingVerdict {
	bundle := e.BuildEvidence(product, sources)
	return e.Verdict(product, bundle)
}

// Verdict computes the verdict for a pre-built evidence bundle.
func (e *Engine) Verdict(product types.ProductInput, bundle types.EvidenceBundle) types.PricingVerdict {
	result := verdict.ComputeVerdict(product, bundle, e.opts.FXRates, e.opts.SeatCount, e.opts.Verdict)
	e.log.Info("verdict computed",
		zap.String("status", result.Status.String()),
		zap.Float64("confidence", result.Confidence),
		zap.Int("comparable_competitors", result.CompetitorCount))
	return result
}
