// Package httpapi exposes the analysis pipeline over HTTP. Callers POST a
// product plus pre-retrieved sources and receive the JSON report envelope;
// retrieval stays on the caller's side of the boundary.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pricing-truth/core/engine"
	"pricing-truth/core/output"
	"pricing-truth/core/types"
	"pricing-truth/internal/logging"
)

// Config holds HTTP adapter configuration
type Config struct {
	// Address to listen on
	Address string `json:"address"`

	// ReadTimeout for requests
	ReadTimeout time.Duration `json:"read_timeout"`

	// WriteTimeout for responses
	WriteTimeout time.Duration `json:"write_timeout"`

	// MaxBodySize limits request body size
	MaxBodySize int64 `json:"max_body_size"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Address:      ":8080",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		MaxBodySize:  10 * 1024 * 1024, // 10MB
	}
}

// Adapter is the HTTP adapter
type Adapter struct {
	engine *engine.Engine
	config *Config
	server *http.Server
	log    *zap.Logger
}

// New creates a new HTTP adapter
func New(eng *engine.Engine, config *Config) *Adapter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Adapter{
		engine: eng,
		config: config,
		log:    logging.Named("httpapi"),
	}
}

// Router returns the HTTP handler
func (a *Adapter) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc("POST /api/v1/analyze", a.handleAnalyze)

	var handler http.Handler = mux
	handler = a.loggingMiddleware(handler)
	handler = a.recoveryMiddleware(handler)
	return handler
}

// Start starts the HTTP server
func (a *Adapter) Start() error {
	a.server = &http.Server{
		Addr:         a.config.Address,
		Handler:      a.Router(),
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
	}
	a.log.Info("http api listening", zap.String("address", a.config.Address))
	return a.server.ListenAndServe()
}

// Shutdown gracefully stops the server
func (a *Adapter) Shutdown(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

func (a *Adapter) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AnalyzeRequest is the analyze endpoint's request body.
type AnalyzeRequest struct {
	// Product is the subject product
	Product types.ProductInput `json:"product"`

	// Sources are the pre-retrieved source documents
	Sources []types.SourceDocument `json:"sources"`
}

func (a *Adapter) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Product.Name == "" || req.Product.CurrentPrice == "" {
		writeError(w, http.StatusBadRequest, "product name and current_price are required")
		return
	}

	result := a.engine.Analyze(req.Product, req.Sources)
	if err := result.Validate(); err != nil {
		writeError(w, http.StatusInternalServerError, "verdict validation failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, output.NewReport(result))
}

func (a *Adapter) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		a.log.Info("request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

func (a *Adapter) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				a.log.Error("handler panic", zap.Any("panic", rec))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
