// Package llm - Enrichment tests
package llm

import (
	"context"
	"strings"
	"testing"

	"pricing-truth/core/types"
	"pricing-truth/internal/errors"
)

type stubChat struct {
	response string
	err      error
	prompt   string
}

func (s *stubChat) Chat(ctx context.Context, preamble, message string) (string, error) {
	s.prompt = message
	return s.response, s.err
}

func baseVerdict() types.PricingVerdict {
	return types.PricingVerdict{
		Status:          types.StatusFair,
		Confidence:      0.7,
		KeyReasons:      []string{"Current price ($99.00/month) is within reasonable range of competitor prices ($89.00-$110.00/month)"},
		Gaps:            []string{},
		Citations:       []string{"https://rival.com/pricing"},
		CompetitorCount: 2,
		EvidenceBundle: types.EvidenceBundle{
			ProductInput: types.ProductInput{Name: "Acme", CurrentPrice: "$99/month"},
			CompetitorPricing: []types.CompetitorPricing{
				{Domain: "rival.com", EvidenceSnippets: []string{"Pro plan is $110/month"}},
			},
		},
	}
}

// TestEnhanceAppendsInsights proves model insights land in KeyReasons while
// everything else stays untouched
func TestEnhanceAppendsInsights(t *testing.T) {
	stub := &stubChat{response: `{"additional_insights": ["Competitor rival.com charges $110/month per its pricing page"]}`}
	enhancer := NewEnhancer(stub)

	original := baseVerdict()
	enhanced, err := enhancer.Enhance(context.Background(), original)
	if err != nil {
		t.Fatalf("Enhance failed: %v", err)
	}

	if len(enhanced.KeyReasons) != 2 {
		t.Fatalf("Expected appended insight, got %v", enhanced.KeyReasons)
	}
	if enhanced.KeyReasons[0] != original.KeyReasons[0] {
		t.Error("Expected original reasons preserved in order")
	}
	if enhanced.Status != original.Status || enhanced.Confidence != original.Confidence {
		t.Error("Expected status and confidence untouched")
	}
	if len(original.KeyReasons) != 1 {
		t.Error("Expected the original verdict left unmodified")
	}
}

// TestEnhanceFailureReturnsOriginal proves any chat failure hands back the
// deterministic verdict with a typed error
func TestEnhanceFailureReturnsOriginal(t *testing.T) {
	stub := &stubChat{err: errors.New(errors.TypeLLM, "model unavailable")}
	enhancer := NewEnhancer(stub)

	original := baseVerdict()
	got, err := enhancer.Enhance(context.Background(), original)
	if !errors.IsType(err, errors.TypeLLM) {
		t.Fatalf("Expected LLM error, got %v", err)
	}
	if len(got.KeyReasons) != 1 || got.KeyReasons[0] != original.KeyReasons[0] {
		t.Error("Expected the original verdict returned untouched")
	}
}

// TestEnhanceBadJSONReturnsOriginal proves unparseable model output never
// corrupts the verdict
func TestEnhanceBadJSONReturnsOriginal(t *testing.T) {
	stub := &stubChat{response: "I think the price looks fair overall."}
	enhancer := NewEnhancer(stub)

	got, err := enhancer.Enhance(context.Background(), baseVerdict())
	if !errors.IsType(err, errors.TypeLLM) {
		t.Fatalf("Expected LLM error, got %v", err)
	}
	if len(got.KeyReasons) != 1 {
		t.Errorf("Expected verdict untouched, got %v", got.KeyReasons)
	}
}

// TestParseInsightsCodeFences proves fenced JSON responses are tolerated
func TestParseInsightsCodeFences(t *testing.T) {
	raw := "```json\n{\"additional_insights\": [\"a\", \"  \", \"b\"]}\n```"
	insights, err := parseInsights(raw)
	if err != nil {
		t.Fatalf("parseInsights failed: %v", err)
	}
	if len(insights) != 2 || insights[0] != "a" || insights[1] != "b" {
		t.Errorf("Expected blank-filtered insights, got %v", insights)
	}
}

// TestBuildReasoningPromptBudget proves the prompt stays within its evidence
// budget and carries the verdict facts
func TestBuildReasoningPromptBudget(t *testing.T) {
	verdict := baseVerdict()
	long := strings.Repeat("x", 300)
	var comps []types.CompetitorPricing
	for i := 0; i < 8; i++ {
		comps = append(comps, types.CompetitorPricing{
			Domain:           "c.com",
			EvidenceSnippets: []string{long, long, long, long, long},
		})
	}
	verdict.EvidenceBundle.CompetitorPricing = comps

	stub := &stubChat{response: `{"additional_insights": []}`}
	enhancer := NewEnhancer(stub)
	if _, err := enhancer.Enhance(context.Background(), verdict); err != nil {
		t.Fatalf("Enhance failed: %v", err)
	}

	if !strings.Contains(stub.prompt, "Verdict Status: FAIR") {
		t.Error("Expected verdict status in the prompt")
	}
	if !strings.Contains(stub.prompt, "$99/month") {
		t.Error("Expected the current price in the prompt")
	}
	if count := strings.Count(stub.prompt, "xxx..."); count > 10 {
		t.Errorf("Expected at most 10 snippets in the prompt, got %d", count)
	}
	if strings.Contains(stub.prompt, strings.Repeat("x", 201)) {
		t.Error("Expected snippets truncated to the budget")
	}
}
