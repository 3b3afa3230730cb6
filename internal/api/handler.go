package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/zombar/claritylens/internal/analyzer"
	"github.com/zombar/claritylens/internal/database"
	"github.com/zombar/claritylens/internal/metrics"
	"github.com/zombar/claritylens/internal/models"
	"github.com/zombar/claritylens/internal/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EnhanceEnqueuer enqueues AI enhancement work for a saved analysis.
type EnhanceEnqueuer interface {
	EnqueueEnhanceAnalysis(ctx context.Context, analysisID, text, sourceURL string) (string, error)
}

// Handler handles HTTP requests.
type Handler struct {
	db          *database.DB
	analyzer    *analyzer.Analyzer
	queueClient EnhanceEnqueuer
	metrics     *metrics.Metrics
	mux         *http.ServeMux
}

// NewHandler creates a new API handler with CORS support and metrics.
// queueClient may be nil, in which case analyses are never enhanced.
func NewHandler(db *database.DB, textAnalyzer *analyzer.Analyzer, queueClient EnhanceEnqueuer, m *metrics.Metrics) http.Handler {
	h := &Handler{
		db:          db,
		analyzer:    textAnalyzer,
		queueClient: queueClient,
		metrics:     m,
		mux:         http.NewServeMux(),
	}

	h.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	var handler http.Handler = h.mux
	if m != nil {
		handler = m.HTTPMiddleware(handler)
	}
	return c.Handler(handler)
}

// setupRoutes configures all API routes.
func (h *Handler) setupRoutes() {
	h.mux.Handle("/metrics", promhttp.Handler()) // Prometheus metrics endpoint
	h.mux.HandleFunc("/api/analyze", h.handleAnalyze)
	h.mux.HandleFunc("/api/analyses", h.handleListAnalyses)
	h.mux.HandleFunc("/api/analyses/", h.handleAnalysisOperations)
	h.mux.HandleFunc("/api/search", h.handleSearchByCategory)
	h.mux.HandleFunc("/health", h.handleHealth)
}

// handleHealth handles health check requests.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleAnalyze runs the rule-based pipeline synchronously and, when a
// queue client is configured and the text clears the depth gate, enqueues
// AI enhancement to run in the background.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		respondError(w, "Text field is required", http.StatusBadRequest)
		return
	}

	tracing.SetSpanAttributes(r.Context(),
		attribute.Int("text.length", len(req.Text)))

	analysisID := uuid.New().String()

	ctx, span := otel.Tracer("claritylens").Start(r.Context(), "analyzer.analyze",
		trace.WithAttributes(
			attribute.String("analysis.id", analysisID),
			attribute.Int("text.length", len(req.Text)),
		))
	start := time.Now()
	result := h.analyzer.Analyze(ctx, req.Text, req.SourceURL)
	span.End()

	if h.metrics != nil {
		h.metrics.AnalysesTotal.WithLabelValues(string(result.Depth)).Inc()
		h.metrics.AnalysisDuration.WithLabelValues(string(result.Depth)).Observe(time.Since(start).Seconds())
	}

	now := time.Now()
	analysis := &models.Analysis{
		ID:        analysisID,
		Text:      req.Text,
		SourceURL: req.SourceURL,
		Result:    *result,
		CreatedAt: now,
		UpdatedAt: now,
	}

	ctx, saveSpan := otel.Tracer("claritylens").Start(r.Context(), "database.save_analysis",
		trace.WithAttributes(attribute.String("analysis.id", analysisID)))
	err := h.db.SaveAnalysis(analysis)
	saveSpan.End()
	if err != nil {
		respondError(w, fmt.Sprintf("Failed to save analysis: %v", err), http.StatusInternalServerError)
		return
	}

	enhancementQueued := false
	if h.queueClient != nil && result.WordCount >= analyzer.ThresholdBasic {
		if _, err := h.queueClient.EnqueueEnhanceAnalysis(ctx, analysisID, req.Text, req.SourceURL); err != nil {
			// The rule-based analysis already succeeded; degrade rather
			// than fail the request.
			tracing.SetSpanAttributes(ctx, attribute.String("enqueue.error", err.Error()))
		} else {
			enhancementQueued = true
		}
	}

	respondJSON(w, map[string]interface{}{
		"analysis":           analysis,
		"enhancement_queued": enhancementQueued,
	}, http.StatusCreated)
}

// handleListAnalyses handles listing all analyses with pagination.
func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	resultChan := make(chan []*models.Analysis)
	errorChan := make(chan error)

	go func() {
		analyses, err := h.db.ListAnalyses(limit, offset)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- analyses
	}()

	select {
	case analyses := <-resultChan:
		if analyses == nil {
			analyses = []*models.Analysis{}
		}
		respondJSON(w, analyses, http.StatusOK)
	case err := <-errorChan:
		respondError(w, err.Error(), http.StatusInternalServerError)
	case <-time.After(30 * time.Second):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

// handleAnalysisOperations handles GET and DELETE for specific analyses.
func (h *Handler) handleAnalysisOperations(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/api/analyses/"):]
	if id == "" {
		respondError(w, "Analysis ID is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getAnalysis(w, r, id)
	case http.MethodDelete:
		h.deleteAnalysis(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// getAnalysis retrieves a specific analysis.
func (h *Handler) getAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	resultChan := make(chan *models.Analysis)
	errorChan := make(chan error)

	go func() {
		analysis, err := h.db.GetAnalysis(id)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- analysis
	}()

	select {
	case analysis := <-resultChan:
		respondJSON(w, analysis, http.StatusOK)
	case err := <-errorChan:
		if err == database.ErrNotFound {
			respondError(w, err.Error(), http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
	case <-time.After(30 * time.Second):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

// deleteAnalysis deletes a specific analysis.
func (h *Handler) deleteAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	errorChan := make(chan error)
	doneChan := make(chan bool)

	go func() {
		if err := h.db.DeleteAnalysis(id); err != nil {
			errorChan <- err
			return
		}
		doneChan <- true
	}()

	select {
	case <-doneChan:
		w.WriteHeader(http.StatusNoContent)
	case err := <-errorChan:
		if err == database.ErrNotFound {
			respondError(w, err.Error(), http.StatusNotFound)
		} else {
			respondError(w, err.Error(), http.StatusInternalServerError)
		}
	case <-time.After(30 * time.Second):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

// handleSearchByCategory handles searching analyses by reflection category.
func (h *Handler) handleSearchByCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	category := r.URL.Query().Get("category")
	if category == "" {
		respondError(w, "Category parameter is required", http.StatusBadRequest)
		return
	}

	resultChan := make(chan []*models.Analysis)
	errorChan := make(chan error)

	go func() {
		analyses, err := h.db.SearchByCategory(category)
		if err != nil {
			errorChan <- err
			return
		}
		resultChan <- analyses
	}()

	select {
	case analyses := <-resultChan:
		if analyses == nil {
			analyses = []*models.Analysis{}
		}
		respondJSON(w, analyses, http.StatusOK)
	case err := <-errorChan:
		respondError(w, err.Error(), http.StatusInternalServerError)
	case <-time.After(30 * time.Second):
		respondError(w, "Request timeout", http.StatusRequestTimeout)
	}
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
