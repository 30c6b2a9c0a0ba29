// Package config - Rules file tests
package config

import (
	"os"
	"path/filepath"
	"testing"

	"pricing-truth/core/extraction"
	"pricing-truth/internal/errors"
)

func writeRules(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.hcl")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Writing rules file failed: %v", err)
	}
	return path
}

// TestApplyRulesFile proves FX rates merge, thresholds override, and vocab
// lists extend
func TestApplyRulesFile(t *testing.T) {
	path := writeRules(t, `
fx_rate "EUR" {
  rate = 1.08
}

fx_rate "CHF" {
  rate = 1.12
}

thresholds {
  price_similarity_factor = 4.0
  fair_band_pct           = 15.0
  min_comparable          = 3
}

vocab {
  categories          = ["Observability Platform"]
  feature_keywords    = ["log retention"]
  non_product_domains = ["slant.co"]
}
`)

	cfg := Default()
	vocab := extraction.DefaultVocabulary()
	if err := ApplyRulesFile(cfg, vocab, path); err != nil {
		t.Fatalf("ApplyRulesFile failed: %v", err)
	}

	if cfg.Pricing.FXRates["EUR"] != 1.08 {
		t.Errorf("Expected EUR overridden to 1.08, got %v", cfg.Pricing.FXRates["EUR"])
	}
	if cfg.Pricing.FXRates["CHF"] != 1.12 {
		t.Errorf("Expected CHF added, got %v", cfg.Pricing.FXRates["CHF"])
	}
	if cfg.Pricing.FXRates["USD"] != 1.0 {
		t.Errorf("Expected untouched USD rate, got %v", cfg.Pricing.FXRates["USD"])
	}
	if cfg.Analysis.Filter.PriceSimilarityFactor != 4.0 {
		t.Errorf("Expected factor 4.0, got %v", cfg.Analysis.Filter.PriceSimilarityFactor)
	}
	if cfg.Analysis.FairBandPct != 15.0 {
		t.Errorf("Expected fair band 15.0, got %v", cfg.Analysis.FairBandPct)
	}
	if cfg.Analysis.MinComparable != 3 {
		t.Errorf("Expected min comparable 3, got %d", cfg.Analysis.MinComparable)
	}
	if vocab.Categories[0] != "Observability Platform" {
		t.Errorf("Expected custom category front-loaded, got %v", vocab.Categories[0])
	}
	found := false
	for _, pattern := range cfg.Analysis.Filter.NonProductDomainPatterns {
		if pattern == "slant.co" {
			found = true
		}
	}
	if !found {
		t.Error("Expected slant.co appended to non-product patterns")
	}
}

// TestApplyRulesFileRejectsBadRate proves non-positive FX rates are rejected
func TestApplyRulesFileRejectsBadRate(t *testing.T) {
	path := writeRules(t, `
fx_rate "EUR" {
  rate = -1.0
}
`)
	err := ApplyRulesFile(Default(), extraction.DefaultVocabulary(), path)
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("Expected config error, got %v", err)
	}
}

// TestApplyRulesFileMissing proves a missing file is a config error
func TestApplyRulesFileMissing(t *testing.T) {
	err := ApplyRulesFile(Default(), extraction.DefaultVocabulary(), filepath.Join(t.TempDir(), "nope.hcl"))
	if !errors.IsType(err, errors.TypeConfig) {
		t.Fatalf("Expected config error, got %v", err)
	}
}
