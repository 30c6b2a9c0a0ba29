// Package search provides the web-search retrieval client that feeds the
// evidence pipeline. It is a thin client against a Tavily-style search API
// with retry-on-timeout, rate limiting, and URL deduplication.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"pricing-truth/core/types"
	"pricing-truth/internal/errors"
	"pricing-truth/internal/logging"
)

// Config holds search client configuration
type Config struct {
	// BaseURL is the search API base URL
	BaseURL string `json:"base_url"`

	// APIKey authenticates against the search API
	APIKey string `json:"-"`

	// Timeout bounds a single request
	Timeout time.Duration `json:"timeout"`

	// MaxAttempts caps retries for timeout/network errors
	MaxAttempts int `json:"max_attempts"`

	// BackoffMin and BackoffMax bound the exponential retry backoff
	BackoffMin time.Duration `json:"backoff_min"`
	BackoffMax time.Duration `json:"backoff_max"`

	// RequestsPerSecond rate-limits outgoing queries
	RequestsPerSecond float64 `json:"requests_per_second"`

	// SearchDepth is the API search depth ("basic" or "advanced")
	SearchDepth string `json:"search_depth"`

	// MaxResults caps results per query
	MaxResults int `json:"max_results"`

	// IncludeRawContent requests raw page content
	IncludeRawContent bool `json:"include_raw_content"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.tavily.com",
		Timeout:           30 * time.Second,
		MaxAttempts:       3,
		BackoffMin:        2 * time.Second,
		BackoffMax:        10 * time.Second,
		RequestsPerSecond: 2,
		SearchDepth:       "basic",
		MaxResults:        10,
		IncludeRawContent: true,
	}
}

// Client is the search API client
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewClient creates a search client
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		log:     logging.Named("search"),
	}
}

type searchRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Score         *float64 `json:"score"`
	PublishedDate string   `json:"published_date"`
}

// Search queries the API and returns deduplicated source documents.
// Timeouts and network errors are retried with exponential backoff up to
// MaxAttempts; HTTP-level errors are not retried.
func (c *Client) Search(ctx context.Context, query string) ([]types.SourceDocument, error) {
	if c.cfg.APIKey == "" {
		return nil, errors.Auth("search API key is required but not set")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Search("rate limiter wait", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		sources, err := c.doSearch(ctx, query)
		if err == nil {
			return dedupeByURL(sources), nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
		if attempt == c.cfg.MaxAttempts {
			break
		}

		backoff := c.cfg.BackoffMin << (attempt - 1)
		if backoff > c.cfg.BackoffMax {
			backoff = c.cfg.BackoffMax
		}
		c.log.Warn("search request failed, retrying",
			zap.String("query", query),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, errors.Search("search cancelled", ctx.Err())
		case <-time.After(backoff):
		}
	}
	return nil, errors.Wrapf(errors.TypeSearch, lastErr, "search failed after %d attempts", c.cfg.MaxAttempts)
}

func (c *Client) doSearch(ctx context.Context, query string) ([]types.SourceDocument, error) {
	payload := searchRequest{
		APIKey:            c.cfg.APIKey,
		Query:             query,
		SearchDepth:       c.cfg.SearchDepth,
		MaxResults:        c.cfg.MaxResults,
		IncludeRawContent: c.cfg.IncludeRawContent,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Internal("encoding search request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Internal("building search request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, errors.Auth("search API authentication failed, check your API key")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.Newf(errors.TypeSearch, "search API error: %d - %s", resp.StatusCode, string(detail))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.Search("decoding search response", err)
	}

	sources := make([]types.SourceDocument, 0, len(decoded.Results))
	for _, result := range decoded.Results {
		// Skip malformed entries but keep processing the rest
		if result.URL == "" {
			continue
		}
		sources = append(sources, types.SourceDocument{
			URL:           result.URL,
			Title:         result.Title,
			Content:       result.Content,
			Score:         result.Score,
			PublishedDate: result.PublishedDate,
		})
	}
	return sources, nil
}

// isRetryable reports whether an error is a timeout or network-level
// failure. API-level errors (auth, bad request) are never retried.
func isRetryable(err error) bool {
	if errors.IsType(err, errors.TypeAuth) ||
		errors.IsType(err, errors.TypeSearch) ||
		errors.IsType(err, errors.TypeInternal) {
		return false
	}
	var urlErr *neturl.Error
	if ok := asURLError(err, &urlErr); ok {
		return true
	}
	return false
}

// asURLError unwraps to a *url.Error without importing errors twice.
func asURLError(err error, target **neturl.Error) bool {
	for err != nil {
		if e, ok := err.(*neturl.Error); ok {
			*target = e
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}

// dedupeByURL drops documents whose scheme://host/path was already seen,
// ignoring query strings and fragments.
func dedupeByURL(sources []types.SourceDocument) []types.SourceDocument {
	seen := make(map[string]bool, len(sources))
	deduped := make([]types.SourceDocument, 0, len(sources))
	for _, source := range sources {
		key := source.URL
		if parsed, err := neturl.Parse(source.URL); err == nil {
			key = fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, parsed.Path)
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, source)
	}
	return deduped
}
