// Package extraction provides rule-based pricing snippet and attribute
// extraction. Every extracted span is a verbatim substring of some source
// document's content; nothing here generates text.
package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"pricing-truth/core/types"
)

// maxSnippetLength caps snippets to keep downstream prompts safe.
const maxSnippetLength = 500

// minSnippetLength discards spans too short to carry evidence.
const minSnippetLength = 10

// contextWindow is the number of bytes captured either side of a match.
const contextWindow = 50

// Pricing match heuristics, applied in order to every document.
var snippetPatterns = []*regexp.Regexp{
	// Currency symbol followed by a number, optionally with a cadence suffix
	regexp.MustCompile(`(?i)[€$£¥₹]\s*\d+(?:[.,]\d+)?(?:\s*/\s*(?:month|year|mo|yr|day|wk))?`),

	// "starts at" / "from" phrases with a price
	regexp.MustCompile(`(?i)(?:starts?\s+at|from|beginning\s+at)\s+[€$£¥₹]\s*\d+(?:[.,]\d+)?`),

	// Numeric amount with a per-period phrase
	regexp.MustCompile(`(?i)\d+(?:[.,]\d+)?\s*(?:USD|EUR|GBP|JPY|INR)?\s*(?:per|/)\s*(?:month|year|mo|yr|day|wk)`),

	// Price ranges such as "$99-$199"
	regexp.MustCompile(`(?i)[€$£¥₹]\s*\d+(?:[.,]\d+)?\s*[-–—]\s*[€$£¥₹]?\s*\d+(?:[.,]\d+)?`),
}

// pricingKeywords flag lines worth keeping when a currency amount co-occurs.
var pricingKeywords = []string{"price", "pricing", "cost", "plan", "tier", "subscription"}

// keywordLineRe requires a currency amount on a keyword line.
var keywordLineRe = regexp.MustCompile(`[€$£¥₹]\s*\d+|\d+\s*(?:USD|EUR|GBP|JPY|INR)`)

// priceTextRe narrows a snippet to just the price-expression substrings,
// keeping per-seat markers and cadence suffixes attached to the amount.
var priceTextRe = regexp.MustCompile(`(?i)[€$£¥₹]\s*\d+(?:[.,]\d+)?(?:\s*(?:per|/)\s*(?:seat|user|license))?(?:\s*(?:USD|EUR|GBP|JPY|INR)?\s*(?:per|/)\s*(?:month|year|mo|yr|day|wk))?`)

// ExtractPricingSnippets pulls verbatim pricing-related spans out of the
// given sources. Results are truncated to maxSnippetLength (with an ellipsis
// marker) and deduplicated preserving first-seen order across all heuristics
// and all documents.
func ExtractPricingSnippets(sources []types.SourceDocument) []string {
	var snippets []string
	for _, source := range sources {
		if source.Content == "" {
			continue
		}
		snippets = append(snippets, extractWithHeuristics(source.Content)...)
	}

	seen := make(map[string]bool, len(snippets))
	unique := make([]string, 0, len(snippets))
	for _, snippet := range snippets {
		truncated := truncateSnippet(snippet)
		if seen[truncated] {
			continue
		}
		seen[truncated] = true
		unique = append(unique, truncated)
	}
	return unique
}

func extractWithHeuristics(content string) []string {
	var snippets []string

	for _, pattern := range snippetPatterns {
		for _, loc := range pattern.FindAllStringIndex(content, -1) {
			start := runeBoundary(content, loc[0]-contextWindow)
			end := runeBoundary(content, loc[1]+contextWindow)
			snippet := strings.TrimSpace(content[start:end])
			if len(snippet) > minSnippetLength {
				snippets = append(snippets, snippet)
			}
		}
	}

	// Line scan: pricing keywords co-occurring with a currency amount
	for _, line := range strings.Split(content, "\n") {
		lineLower := strings.ToLower(line)
		keyworded := false
		for _, keyword := range pricingKeywords {
			if strings.Contains(lineLower, keyword) {
				keyworded = true
				break
			}
		}
		if !keyworded {
			continue
		}
		if !keywordLineRe.MatchString(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if len(trimmed) > minSnippetLength {
			snippets = append(snippets, trimmed)
		}
	}

	return snippets
}

// runeBoundary clamps an index into [0, len(s)] and backs it off to the
// nearest rune start so windows never split a multibyte character.
func runeBoundary(s string, i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

func truncateSnippet(snippet string) string {
	if len(snippet) <= maxSnippetLength {
		return snippet
	}
	cut := runeBoundary(snippet, maxSnippetLength-3)
	return snippet[:cut] + "..."
}

// ExtractPriceTexts narrows snippets to just the price-expression substrings
// (amount plus optional currency/cadence suffix), deduplicated preserving
// first-seen order. These feed the price parser.
func ExtractPriceTexts(snippets []string) []string {
	seen := make(map[string]bool)
	var priceTexts []string
	for _, snippet := range snippets {
		for _, match := range priceTextRe.FindAllString(snippet, -1) {
			priceText := strings.TrimSpace(match)
			if priceText == "" || seen[priceText] {
				continue
			}
			seen[priceText] = true
			priceTexts = append(priceTexts, priceText)
		}
	}
	return priceTexts
}
