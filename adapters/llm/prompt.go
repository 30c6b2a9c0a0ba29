// Package llm - Reasoning prompt construction
package llm

import (
	"fmt"
	"strings"

	"pricing-truth/core/types"
)

// Prompt budget limits keep the call bounded and cheap.
const (
	maxPromptCompetitors     = 5
	maxSnippetsPerCompetitor = 3
	maxPromptSnippets        = 10
	maxPromptSnippetLength   = 200
	maxPromptGaps            = 5
)

// systemPreamble forbids estimation or invention. The model may only
// restate and connect evidence it was shown.
const systemPreamble = "You are a pricing analysis assistant. You MUST ONLY use " +
	"the provided evidence. You MUST NOT estimate, guess, or invent any prices, " +
	"benchmarks, or data. Every conclusion must reference specific evidence. " +
	"If data is missing, explicitly state the uncertainty. " +
	"You MUST respond with valid JSON only."

// buildReasoningPrompt assembles the evidence-constrained prompt from the
// verdict and its bundle.
func buildReasoningPrompt(verdict types.PricingVerdict) string {
	product := verdict.EvidenceBundle.ProductInput

	var snippets []string
	for i, comp := range verdict.EvidenceBundle.CompetitorPricing {
		if i >= maxPromptCompetitors {
			break
		}
		for j, snippet := range comp.EvidenceSnippets {
			if j >= maxSnippetsPerCompetitor {
				break
			}
			snippets = append(snippets, snippet)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the pricing verdict for %s (%s).\n\n", product.Name, product.URL)
	fmt.Fprintf(&b, "Current Price: %s\n", product.CurrentPrice)
	fmt.Fprintf(&b, "Verdict Status: %s\n", verdict.Status)
	fmt.Fprintf(&b, "Confidence: %.2f\n\n", verdict.Confidence)

	b.WriteString("Competitor Pricing Evidence:\n")
	if len(snippets) == 0 {
		b.WriteString("- No evidence snippets available\n")
	}
	for i, snippet := range snippets {
		if i >= maxPromptSnippets {
			break
		}
		if len(snippet) > maxPromptSnippetLength {
			snippet = snippet[:maxPromptSnippetLength] + "..."
		}
		fmt.Fprintf(&b, "- %s\n", snippet)
	}

	b.WriteString("\nGaps in Data:\n")
	if len(verdict.Gaps) == 0 {
		b.WriteString("- No gaps identified\n")
	}
	for i, gap := range verdict.Gaps {
		if i >= maxPromptGaps {
			break
		}
		fmt.Fprintf(&b, "- %s\n", gap)
	}

	b.WriteString("\nCurrent Reasoning:\n")
	if len(verdict.KeyReasons) == 0 {
		b.WriteString("- No reasons provided\n")
	}
	for _, reason := range verdict.KeyReasons {
		fmt.Fprintf(&b, "- %s\n", reason)
	}

	b.WriteString("\nProvide additional insights based ONLY on the evidence above. " +
		"Do NOT estimate or invent any data.\n" +
		"Return ONLY valid JSON with this exact structure:\n" +
		`{"additional_insights": ["insight 1", "insight 2"]}` + "\n" +
		"Each insight should be a string referencing specific evidence. " +
		"Do not include any text outside the JSON.\n")

	return b.String()
}
