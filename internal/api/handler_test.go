package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/zombar/claritylens/internal/analyzer"
	"github.com/zombar/claritylens/internal/database"
	"github.com/zombar/claritylens/internal/models"
)

// mockQueueClient implements EnhanceEnqueuer for testing
type mockQueueClient struct {
	enqueued []string
}

func (m *mockQueueClient) EnqueueEnhanceAnalysis(ctx context.Context, analysisID, text, sourceURL string) (string, error) {
	m.enqueued = append(m.enqueued, analysisID)
	return "mock-task-id", nil
}

func setupTestHandler(t *testing.T) (*Handler, *database.DB, *mockQueueClient) {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mockQueue := &mockQueueClient{}

	// Metrics stay nil here: collectors register globally and would
	// collide across tests.
	handler := &Handler{
		db:          db,
		analyzer:    analyzer.New(analyzer.Config{}),
		queueClient: mockQueue,
		mux:         http.NewServeMux(),
	}
	handler.setupRoutes()

	return handler, db, mockQueue
}

func TestHealthEndpoint(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response["status"])
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	handler, db, mockQueue := setupTestHandler(t)

	reqBody := map[string]string{
		"text":       "Scientists at the university published a study showing that regular exercise improves cognitive performance in older adults. The data suggests a strong correlation between activity levels and memory retention over the five year observation period.",
		"source_url": "https://news.example.com/exercise-study",
	}

	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Analysis          *models.Analysis `json:"analysis"`
		EnhancementQueued bool             `json:"enhancement_queued"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Analysis == nil || response.Analysis.ID == "" {
		t.Fatal("Expected analysis with ID in response")
	}
	if response.Analysis.Result.Results == nil {
		t.Error("Expected rule-based results to be present")
	}
	if !response.EnhancementQueued {
		t.Error("Expected enhancement to be queued for long text")
	}
	if len(mockQueue.enqueued) != 1 {
		t.Errorf("Expected 1 enqueued task, got %d", len(mockQueue.enqueued))
	}

	// The record must be retrievable afterwards.
	stored, err := db.GetAnalysis(response.Analysis.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve stored analysis: %v", err)
	}
	if stored.SourceURL != reqBody["source_url"] {
		t.Errorf("Expected source URL %q, got %q", reqBody["source_url"], stored.SourceURL)
	}
}

func TestAnalyzeEndpointShortText(t *testing.T) {
	handler, _, mockQueue := setupTestHandler(t)

	body, _ := json.Marshal(map[string]string{"text": "Too short."})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Analysis          *models.Analysis `json:"analysis"`
		EnhancementQueued bool             `json:"enhancement_queued"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.EnhancementQueued {
		t.Error("Expected no enhancement for text below the depth gate")
	}
	if len(mockQueue.enqueued) != 0 {
		t.Errorf("Expected 0 enqueued tasks, got %d", len(mockQueue.enqueued))
	}
}

func TestAnalyzeEndpointValidation(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	tests := []struct {
		name       string
		method     string
		body       string
		wantStatus int
	}{
		{"empty text", http.MethodPost, `{"text":""}`, http.StatusBadRequest},
		{"whitespace text", http.MethodPost, `{"text":"   "}`, http.StatusBadRequest},
		{"invalid json", http.MethodPost, `{not json`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/analyze", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()

			handler.mux.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestGetAnalysisEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)

	analysis := analyzeAndStore(t, handler, db)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/"+analysis.ID, nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Analysis
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if got.ID != analysis.ID {
		t.Errorf("Expected ID %s, got %s", analysis.ID, got.ID)
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses/does-not-exist", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestDeleteAnalysisEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)

	analysis := analyzeAndStore(t, handler, db)

	req := httptest.NewRequest(http.MethodDelete, "/api/analyses/"+analysis.ID, nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", w.Code)
	}

	if _, err := db.GetAnalysis(analysis.ID); err != database.ErrNotFound {
		t.Errorf("Expected analysis to be deleted, got %v", err)
	}
}

func TestListAnalysesEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)

	analyzeAndStore(t, handler, db)
	analyzeAndStore(t, handler, db)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses?limit=1", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var analyses []*models.Analysis
	if err := json.NewDecoder(w.Body).Decode(&analyses); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(analyses) != 1 {
		t.Errorf("Expected 1 analysis with limit 1, got %d", len(analyses))
	}
}

func TestListAnalysesEmpty(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	// Empty list must serialize as [], not null.
	if body := bytes.TrimSpace(w.Body.Bytes()); string(body) != "[]" {
		t.Errorf("Expected empty array, got %s", body)
	}
}

func TestSearchByCategoryEndpoint(t *testing.T) {
	handler, db, _ := setupTestHandler(t)

	analysis := analyzeAndStore(t, handler, db)

	categories := analysis.Result.Results.Reflection.Categories
	if len(categories) == 0 {
		t.Fatal("Expected reflection categories on stored analysis")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/search?category="+categories[0], nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var analyses []*models.Analysis
	if err := json.NewDecoder(w.Body).Decode(&analyses); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(analyses) != 1 {
		t.Errorf("Expected 1 match, got %d", len(analyses))
	}
}

func TestSearchMissingCategory(t *testing.T) {
	handler, _, _ := setupTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

// analyzeAndStore runs a full analysis through the handler and returns
// the stored record.
func analyzeAndStore(t *testing.T, handler *Handler, db *database.DB) *models.Analysis {
	t.Helper()

	body, _ := json.Marshal(map[string]string{
		"text": "Experts claim the new policy will obviously destroy the local economy. Everyone knows this kind of regulation always leads to disaster, and anyone who disagrees is simply not paying attention to the facts on the ground.",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create analysis: %d %s", w.Code, w.Body.String())
	}

	var response struct {
		Analysis *models.Analysis `json:"analysis"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	stored, err := db.GetAnalysis(response.Analysis.ID)
	if err != nil {
		t.Fatalf("Failed to retrieve stored analysis: %v", err)
	}
	return stored
}
