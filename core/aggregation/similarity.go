// Package aggregation - Text similarity primitive
package aggregation

import (
	"strings"

	"github.com/agext/levenshtein"
)

// Blend weights for the non-trivial similarity case.
const (
	jaccardWeight = 0.6
	charSeqWeight = 0.4
)

var levParams = levenshtein.NewParams()

// TextSimilarity scores two free-text phrases in [0, 1]. Exact match scores
// 1.0; substring containment scores the shorter/longer length ratio; anything
// else blends Jaccard word overlap with character-sequence similarity.
func TextSimilarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		shorter, longer := len(a), len(b)
		if shorter > longer {
			shorter, longer = longer, shorter
		}
		return float64(shorter) / float64(longer)
	}
	return jaccardWeight*jaccardWords(a, b) + charSeqWeight*levenshtein.Similarity(a, b, levParams)
}

// jaccardWords computes word-set overlap between two lowercased phrases.
func jaccardWords(a, b string) float64 {
	wordsA := strings.Fields(a)
	wordsB := strings.Fields(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0.0
	}

	setA := make(map[string]bool, len(wordsA))
	for _, w := range wordsA {
		setA[w] = true
	}
	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	intersection := 0
	for w := range setA {
		if setB[w] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
