package database

import (
	"testing"
	"time"

	"github.com/zombar/claritylens/internal/models"
)

// setupTestDB creates an in-memory SQLite database with migrations applied.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// testAnalysis builds a minimal analysis record with the given reflection
// categories attached.
func testAnalysis(id string, categories ...string) *models.Analysis {
	now := time.Now().UTC().Truncate(time.Second)

	result := models.CompositeAnalysis{
		Depth:          models.DepthStandard,
		WordCount:      42,
		CompositeScore: 55,
		Results: &models.AnalysisResults{
			Reflection: &models.ReflectionBundle{
				Questions:  []string{"What evidence supports the central argument?"},
				Categories: categories,
				Synthesis:  "Read critically and verify key claims independently.",
			},
		},
		AnalyzedAt: now,
	}

	return &models.Analysis{
		ID:        id,
		Text:      "The quick brown fox jumps over the lazy dog near the riverbank.",
		SourceURL: "https://example.com/article",
		Result:    result,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
