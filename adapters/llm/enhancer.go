// Package llm provides optional narrative enrichment of a computed verdict.
// The enrichment is strictly best-effort: the deterministic verdict is
// computed before any model call, and a failed or unavailable model returns
// it untouched.
package llm

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"go.uber.org/zap"

	"pricing-truth/core/types"
	"pricing-truth/internal/errors"
	"pricing-truth/internal/logging"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "command-r"

// callTimeout bounds the single enrichment call.
const callTimeout = 30 * time.Second

// ChatClient abstracts the chat model call so the enhancer is testable
// without network access.
type ChatClient interface {
	Chat(ctx context.Context, preamble, message string) (string, error)
}

// CohereChat implements ChatClient against the Cohere chat API.
type CohereChat struct {
	client *cohereclient.Client
	model  string
}

// NewCohereChat creates a Cohere-backed chat client.
func NewCohereChat(apiKey, model string) *CohereChat {
	if model == "" {
		model = DefaultModel
	}
	return &CohereChat{
		client: cohereclient.NewClient(cohereclient.WithToken(apiKey)),
		model:  model,
	}
}

// Chat sends one chat turn and returns the model's text response.
func (c *CohereChat) Chat(ctx context.Context, preamble, message string) (string, error) {
	temperature := 0.3
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Model:       &c.model,
		Message:     message,
		Preamble:    &preamble,
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// Enhancer appends model-written insights to a verdict's reasons.
type Enhancer struct {
	chat ChatClient
	log  *zap.Logger
}

// NewEnhancer creates an enhancer over the given chat client.
func NewEnhancer(chat ChatClient) *Enhancer {
	return &Enhancer{
		chat: chat,
		log:  logging.Named("llm"),
	}
}

type insightsResponse struct {
	AdditionalInsights []string `json:"additional_insights"`
}

// Enhance runs one bounded enrichment call and returns the verdict with the
// model's insights appended to KeyReasons. Status, confidence, gaps,
// citations, and the evidence bundle are never modified. On any failure the
// ORIGINAL verdict is returned along with a typed LLM error the caller may
// surface or swallow.
func (e *Enhancer) Enhance(ctx context.Context, verdict types.PricingVerdict) (types.PricingVerdict, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	prompt := buildReasoningPrompt(verdict)
	raw, err := e.chat.Chat(ctx, systemPreamble, prompt)
	if err != nil {
		return verdict, errors.LLM("chat call failed", err)
	}

	insights, err := parseInsights(raw)
	if err != nil {
		return verdict, err
	}
	if len(insights) == 0 {
		return verdict, nil
	}

	e.log.Debug("verdict enriched", zap.Int("insights", len(insights)))

	enhanced := verdict
	enhanced.KeyReasons = append(append([]string{}, verdict.KeyReasons...), insights...)
	return enhanced, nil
}

// parseInsights decodes the model's JSON, tolerating markdown code fences.
func parseInsights(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var decoded insightsResponse
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, errors.LLM("model response was not valid insight JSON", err)
	}

	insights := make([]string, 0, len(decoded.AdditionalInsights))
	for _, insight := range decoded.AdditionalInsights {
		insight = strings.TrimSpace(insight)
		if insight != "" {
			insights = append(insights, insight)
		}
	}
	return insights, nil
}
