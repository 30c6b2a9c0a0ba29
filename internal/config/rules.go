// Package config - HCL rules file
//
// The heuristic lookup tables (FX rates, scoring thresholds, extraction
// vocabularies, non-product domain patterns) are open sets. A rules file
// lets operators extend them without touching the matching logic:
//
//	fx_rate "EUR" { rate = 1.08 }
//
//	thresholds {
//	  price_similarity_factor = 4.0
//	  fair_band_pct           = 15.0
//	}
//
//	vocab {
//	  categories          = ["Observability Platform"]
//	  feature_keywords    = ["log retention"]
//	  non_product_domains = ["slant.co"]
//	}
package config

import (
	"github.com/hashicorp/hcl/v2/hclsimple"

	"pricing-truth/core/extraction"
	"pricing-truth/internal/errors"
)

type rulesFile struct {
	FXRates    []fxRateBlock    `hcl:"fx_rate,block"`
	Thresholds *thresholdsBlock `hcl:"thresholds,block"`
	Vocab      *vocabBlock      `hcl:"vocab,block"`
}

type fxRateBlock struct {
	Currency string  `hcl:"currency,label"`
	Rate     float64 `hcl:"rate"`
}

type thresholdsBlock struct {
	PriceSimilarityFactor *float64 `hcl:"price_similarity_factor,optional"`
	SimilarityThreshold   *float64 `hcl:"similarity_threshold,optional"`
	LegacyThreshold       *float64 `hcl:"legacy_threshold,optional"`
	FairBandPct           *float64 `hcl:"fair_band_pct,optional"`
	MinComparable         *int     `hcl:"min_comparable,optional"`
}

type vocabBlock struct {
	Categories        []string `hcl:"categories,optional"`
	CustomerSegments  []string `hcl:"customer_segments,optional"`
	FeatureKeywords   []string `hcl:"feature_keywords,optional"`
	NonProductDomains []string `hcl:"non_product_domains,optional"`
}

// ApplyRulesFile overlays a rules file onto the config and vocabulary.
// FX rates are merged (new currencies added, existing ones replaced);
// vocabulary lists are appended; thresholds replace their defaults.
func ApplyRulesFile(cfg *Config, vocab *extraction.Vocabulary, path string) error {
	var rules rulesFile
	if err := hclsimple.DecodeFile(path, nil, &rules); err != nil {
		return errors.Config("decoding rules file", err)
	}

	for _, fx := range rules.FXRates {
		if fx.Rate <= 0 {
			return errors.Newf(errors.TypeConfig, "fx_rate %q must be positive, got %f", fx.Currency, fx.Rate)
		}
		cfg.Pricing.FXRates[fx.Currency] = fx.Rate
	}

	if t := rules.Thresholds; t != nil {
		if t.PriceSimilarityFactor != nil {
			cfg.Analysis.Filter.PriceSimilarityFactor = *t.PriceSimilarityFactor
		}
		if t.SimilarityThreshold != nil {
			cfg.Analysis.Filter.GroupThreshold = *t.SimilarityThreshold
		}
		if t.LegacyThreshold != nil {
			cfg.Analysis.Filter.LegacyOnlyThreshold = *t.LegacyThreshold
		}
		if t.FairBandPct != nil {
			cfg.Analysis.FairBandPct = *t.FairBandPct
		}
		if t.MinComparable != nil {
			cfg.Analysis.MinComparable = *t.MinComparable
		}
	}

	if v := rules.Vocab; v != nil && vocab != nil {
		vocab.Categories = append(v.Categories, vocab.Categories...)
		vocab.CustomerSegments = append(v.CustomerSegments, vocab.CustomerSegments...)
		vocab.FeatureKeywords = append(v.FeatureKeywords, vocab.FeatureKeywords...)
		cfg.Analysis.Filter.NonProductDomainPatterns = append(
			cfg.Analysis.Filter.NonProductDomainPatterns, v.NonProductDomains...)
	}

	return nil
}
