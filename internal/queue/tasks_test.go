package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/zombar/claritylens/internal/ai"
	"github.com/zombar/claritylens/internal/analyzer"
	"github.com/zombar/claritylens/internal/database"
	"github.com/zombar/claritylens/internal/metrics"
	"github.com/zombar/claritylens/internal/models"
)

// Collectors register globally, so the package shares one set.
var testMetrics = metrics.New("claritylens_queue_test")

type fakeEnhancer struct {
	annotation *models.AIAnnotation
	err        error
	calls      int
}

func (f *fakeEnhancer) Enhance(ctx context.Context, text, sourceURL string) (*models.AIAnnotation, error) {
	f.calls++
	return f.annotation, f.err
}

func setupTestWorker(t *testing.T, enhancer analyzer.Enhancer) (*Worker, *database.DB) {
	t.Helper()

	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	w := &Worker{
		db:       db,
		analyzer: analyzer.New(analyzer.Config{}),
		enhancer: enhancer,
		logger:   slog.Default(),
		metrics:  testMetrics,
	}

	return w, db
}

func saveTestAnalysis(t *testing.T, db *database.DB, id string) *models.Analysis {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	analysis := &models.Analysis{
		ID:   id,
		Text: "Scientists report that the new treatment reduced symptoms in most patients during the trial.",
		Result: models.CompositeAnalysis{
			Depth:          models.DepthStandard,
			WordCount:      15,
			CompositeScore: 60,
			Results: &models.AnalysisResults{
				Reflection: &models.ReflectionBundle{
					Questions:  []string{"What evidence supports the central argument?"},
					Categories: []string{"general"},
					Synthesis:  "Read critically.",
				},
			},
			AnalyzedAt: now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := db.SaveAnalysis(analysis); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}
	return analysis
}

func enhanceTask(t *testing.T, analysisID, text string) *asynq.Task {
	t.Helper()

	payload := EnhancePayload{
		AnalysisID: analysisID,
		Text:       text,
		EnqueuedAt: time.Now().UnixNano(),
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	return asynq.NewTask(TypeEnhanceAnalysis, payloadBytes)
}

func TestHandleEnhanceAnalysisSuccess(t *testing.T) {
	enhancer := &fakeEnhancer{
		annotation: &models.AIAnnotation{
			OverallAssessment: "Measured reporting with limited sourcing.",
			Purpose:           "inform",
			CredibilityScore:  80,
		},
	}
	w, db := setupTestWorker(t, enhancer)
	analysis := saveTestAnalysis(t, db, "a1")

	err := w.handleEnhanceAnalysis(context.Background(), enhanceTask(t, "a1", analysis.Text))
	if err != nil {
		t.Fatalf("Unexpected handler error: %v", err)
	}

	if enhancer.calls != 1 {
		t.Errorf("Expected 1 enhancer call, got %d", enhancer.calls)
	}

	got, err := db.GetAnalysis("a1")
	if err != nil {
		t.Fatalf("Failed to get analysis: %v", err)
	}
	if got.Result.AI == nil {
		t.Fatal("Expected AI annotation to be stored")
	}
	if got.Result.AI.CredibilityScore != 80 {
		t.Errorf("Expected AI credibility 80, got %d", got.Result.AI.CredibilityScore)
	}
	if got.Result.AIError != "" {
		t.Errorf("Expected no AI error, got %q", got.Result.AIError)
	}

	// Blended score pulls toward the AI credibility score.
	base := w.analyzer.CompositeScore(got.Result.Results)
	want := w.analyzer.BlendScore(base, 80)
	if got.Result.CompositeScore != want {
		t.Errorf("Expected blended score %d, got %d", want, got.Result.CompositeScore)
	}
}

func TestHandleEnhanceAnalysisTerminalError(t *testing.T) {
	enhancer := &fakeEnhancer{
		err: &ai.Error{Kind: ai.ErrKindAuth, Status: 401, Message: "invalid API key"},
	}
	w, db := setupTestWorker(t, enhancer)
	analysis := saveTestAnalysis(t, db, "a1")

	// Terminal errors must not be retried.
	err := w.handleEnhanceAnalysis(context.Background(), enhanceTask(t, "a1", analysis.Text))
	if err != nil {
		t.Fatalf("Expected nil for terminal error, got %v", err)
	}

	got, err := db.GetAnalysis("a1")
	if err != nil {
		t.Fatalf("Failed to get analysis: %v", err)
	}
	if got.Result.AIError == "" {
		t.Error("Expected AI error to be recorded")
	}
	if got.Result.AI != nil {
		t.Error("Expected no AI annotation")
	}
}

func TestHandleEnhanceAnalysisRetriableError(t *testing.T) {
	enhancer := &fakeEnhancer{
		err: &ai.Error{Kind: ai.ErrKindServer, Status: 503, Message: "service unavailable"},
	}
	w, db := setupTestWorker(t, enhancer)
	analysis := saveTestAnalysis(t, db, "a1")

	err := w.handleEnhanceAnalysis(context.Background(), enhanceTask(t, "a1", analysis.Text))
	if err == nil {
		t.Fatal("Expected error to be returned for retriable failure")
	}

	// Record stays untouched so the retry starts from the same state.
	got, getErr := db.GetAnalysis("a1")
	if getErr != nil {
		t.Fatalf("Failed to get analysis: %v", getErr)
	}
	if got.Result.AIError != "" {
		t.Errorf("Expected no recorded AI error yet, got %q", got.Result.AIError)
	}
}

func TestHandleEnhanceAnalysisMissingRecord(t *testing.T) {
	w, _ := setupTestWorker(t, &fakeEnhancer{})

	err := w.handleEnhanceAnalysis(context.Background(), enhanceTask(t, "missing", "some text"))
	if err == nil {
		t.Fatal("Expected error for missing analysis record")
	}
}

func TestHandleEnhanceAnalysisInvalidPayload(t *testing.T) {
	w, _ := setupTestWorker(t, &fakeEnhancer{})

	task := asynq.NewTask(TypeEnhanceAnalysis, []byte("{not json"))
	err := w.handleEnhanceAnalysis(context.Background(), task)
	if err == nil {
		t.Fatal("Expected error for invalid payload")
	}
}

func TestEnhanceRetryDelay(t *testing.T) {
	task := asynq.NewTask(TypeEnhanceAnalysis, nil)
	testErr := errors.New("boom")

	tests := []struct {
		n    int
		want time.Duration
	}{
		{0, 30 * time.Second},
		{1, 1 * time.Minute},
		{5, 20 * time.Minute},
		{9, 4 * time.Hour},
		{20, 4 * time.Hour}, // past the schedule, stays at the cap
	}

	for _, tt := range tests {
		if got := enhanceRetryDelay(tt.n, testErr, task); got != tt.want {
			t.Errorf("enhanceRetryDelay(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}

	// Other task types use the short schedule.
	other := asynq.NewTask("claritylens:other", nil)
	if got := enhanceRetryDelay(0, testErr, other); got != 1*time.Minute {
		t.Errorf("enhanceRetryDelay(0) for other task = %v, want 1m", got)
	}
}
