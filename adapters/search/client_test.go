// Package search - Search client tests
package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"pricing-truth/internal/errors"
)

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	cfg.MaxAttempts = 2
	cfg.BackoffMin = time.Millisecond
	cfg.BackoffMax = 2 * time.Millisecond
	cfg.RequestsPerSecond = 1000
	return cfg
}

// TestSearchParsesResults proves the response maps onto source documents
// and malformed entries are skipped
func TestSearchParsesResults(t *testing.T) {
	score := 0.91
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("Expected /search path, got %s", r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Request body does not parse: %v", err)
		}
		if req.APIKey != "test-key" || req.Query != "acme pricing" {
			t.Errorf("Unexpected request payload: %+v", req)
		}
		json.NewEncoder(w).Encode(searchResponse{Results: []searchResult{
			{URL: "https://rival.com/pricing", Title: "Pricing", Content: "$99/month", Score: &score},
			{URL: "", Title: "Malformed", Content: "skipped"},
			{URL: "https://other.io/plans", Title: "Plans", Content: "$49/month"},
		}})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	sources, err := client.Search(context.Background(), "acme pricing")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources (malformed skipped), got %d", len(sources))
	}
	if sources[0].URL != "https://rival.com/pricing" {
		t.Errorf("Unexpected first source: %+v", sources[0])
	}
	if sources[0].Score == nil || *sources[0].Score != 0.91 {
		t.Errorf("Expected score preserved, got %v", sources[0].Score)
	}
}

// TestSearchDedupesByURL proves duplicate URLs differing only in query
// string collapse to one document
func TestSearchDedupesByURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(searchResponse{Results: []searchResult{
			{URL: "https://rival.com/pricing", Title: "A", Content: "x"},
			{URL: "https://rival.com/pricing?ref=search", Title: "B", Content: "y"},
			{URL: "https://rival.com/pricing#plans", Title: "C", Content: "z"},
		}})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	sources, err := client.Search(context.Background(), "acme pricing")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(sources) != 1 {
		t.Fatalf("Expected 1 deduplicated source, got %d", len(sources))
	}
	if sources[0].Title != "A" {
		t.Errorf("Expected first occurrence kept, got %+v", sources[0])
	}
}

// TestSearchMissingAPIKey proves a missing key fails fast without a request
func TestSearchMissingAPIKey(t *testing.T) {
	cfg := testConfig("http://unused.invalid")
	cfg.APIKey = ""
	client := NewClient(cfg)

	_, err := client.Search(context.Background(), "acme pricing")
	if !errors.IsType(err, errors.TypeAuth) {
		t.Fatalf("Expected auth error, got %v", err)
	}
}

// TestSearchUnauthorizedNotRetried proves a 401 maps to an auth error after
// exactly one attempt
func TestSearchUnauthorizedNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Search(context.Background(), "acme pricing")
	if !errors.IsType(err, errors.TypeAuth) {
		t.Fatalf("Expected auth error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", calls)
	}
}

// TestSearchServerErrorNotRetried proves API-level errors are terminal
func TestSearchServerErrorNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.Search(context.Background(), "acme pricing")
	if !errors.IsType(err, errors.TypeSearch) {
		t.Fatalf("Expected search error, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("Expected exactly 1 attempt, got %d", calls)
	}
}

// TestSearchNetworkErrorRetried proves connection failures are retried up to
// the attempt cap
func TestSearchNetworkErrorRetried(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	unreachable := server.URL
	server.Close()

	client := NewClient(testConfig(unreachable))
	_, err := client.Search(context.Background(), "acme pricing")
	if err == nil {
		t.Fatal("Expected an error against a closed server")
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("Expected exhausted retries in the error, got %v", err)
	}
}
