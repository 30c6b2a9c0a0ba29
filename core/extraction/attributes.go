// Package extraction - Heuristic product attribute extraction
package extraction

import (
	"regexp"
	"strings"
)

// maxFeatures caps the extracted feature list.
const maxFeatures = 10

// maxPhraseLength caps captured phrasal attributes.
const maxPhraseLength = 200

// Attributes is the best-effort structured guess derived from source
// content. Fields are empty when no heuristic matched. Attributes are used
// only for competitor matching, never for price computation.
type Attributes struct {
	Category         string
	TargetCustomer   string
	KeyFeatures      []string
	Description      string
	ProblemStatement string
	DecisionContext  string
	PaymentModel     string
}

// Phrasal cue patterns. First match wins per field.
var (
	descriptionRe = regexp.MustCompile(`(?i)([A-Za-z][^.!?\n]{0,80}\bis\s+an?\s+[^.!?\n]{5,160})`)

	problemRe = regexp.MustCompile(`(?i)(?:solves|helps\s+(?:you|your\s+team|teams|businesses|companies)\s+(?:to\s+)?)([^.!?\n]{10,160})`)

	decisionRe = regexp.MustCompile(`(?i)(?:designed|built|ideal|perfect|made)\s+for\s+([^.!?\n]{5,120})`)

	customerFallbackRe = regexp.MustCompile(`(?i)\bfor\s+((?:small\s+|large\s+|growing\s+)?(?:businesses|teams|enterprises|startups|agencies|freelancers|individuals|developers|marketers))\b`)
)

// ExtractAttributes derives descriptive product attributes from the
// concatenated content of one competitor's (or the product's) sources.
// Returns the all-empty default when content is empty. A nil vocabulary
// falls back to the built-in tables.
func ExtractAttributes(content string, vocab *Vocabulary) Attributes {
	var attrs Attributes
	if content == "" {
		return attrs
	}
	if vocab == nil {
		vocab = DefaultVocabulary()
	}

	contentLower := strings.ToLower(content)

	// Category: first known category appearing in the content
	for _, category := range vocab.Categories {
		if strings.Contains(contentLower, strings.ToLower(category)) {
			attrs.Category = category
			break
		}
	}

	// Target customer: known segments first, phrasal cue as fallback
	for _, segment := range vocab.CustomerSegments {
		if strings.Contains(contentLower, strings.ToLower(segment)) {
			attrs.TargetCustomer = segment
			break
		}
	}
	if attrs.TargetCustomer == "" {
		if m := customerFallbackRe.FindStringSubmatch(content); m != nil {
			attrs.TargetCustomer = strings.TrimSpace(m[1])
		}
	}

	// Features: every known keyword present, deduplicated case-insensitively
	seen := make(map[string]bool)
	for _, keyword := range vocab.FeatureKeywords {
		if len(attrs.KeyFeatures) >= maxFeatures {
			break
		}
		keywordLower := strings.ToLower(keyword)
		if seen[keywordLower] {
			continue
		}
		if strings.Contains(contentLower, keywordLower) {
			seen[keywordLower] = true
			attrs.KeyFeatures = append(attrs.KeyFeatures, keyword)
		}
	}

	attrs.Description = capturePhrase(descriptionRe, content)
	attrs.ProblemStatement = capturePhrase(problemRe, content)
	attrs.DecisionContext = capturePhrase(decisionRe, content)

	// Payment model: first cue group with a hit wins
	for _, rule := range vocab.PaymentModels {
		for _, cue := range rule.Cues {
			if strings.Contains(contentLower, cue) {
				attrs.PaymentModel = rule.Model
				break
			}
		}
		if attrs.PaymentModel != "" {
			break
		}
	}

	return attrs
}

func capturePhrase(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	phrase := strings.TrimSpace(m[1])
	if len(phrase) > maxPhraseLength {
		phrase = phrase[:maxPhraseLength]
	}
	return phrase
}
