package database

import (
	"testing"
)

func TestSaveAndGetAnalysis(t *testing.T) {
	db := setupTestDB(t)

	analysis := testAnalysis("a1", "high_bias", "general")
	if err := db.SaveAnalysis(analysis); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}

	got, err := db.GetAnalysis("a1")
	if err != nil {
		t.Fatalf("Failed to get analysis: %v", err)
	}

	if got.Text != analysis.Text {
		t.Errorf("Expected text %q, got %q", analysis.Text, got.Text)
	}
	if got.SourceURL != analysis.SourceURL {
		t.Errorf("Expected source URL %q, got %q", analysis.SourceURL, got.SourceURL)
	}
	if got.Result.CompositeScore != analysis.Result.CompositeScore {
		t.Errorf("Expected composite score %d, got %d", analysis.Result.CompositeScore, got.Result.CompositeScore)
	}
	if got.Result.Results == nil || got.Result.Results.Reflection == nil {
		t.Fatal("Expected reflection bundle to round-trip")
	}
	if len(got.Result.Results.Reflection.Categories) != 2 {
		t.Errorf("Expected 2 categories, got %d", len(got.Result.Results.Reflection.Categories))
	}
}

func TestGetAnalysisNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetAnalysis("missing")
	if err != ErrNotFound {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestSaveAnalysisUpsert(t *testing.T) {
	db := setupTestDB(t)

	analysis := testAnalysis("a1", "general")
	if err := db.SaveAnalysis(analysis); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}

	// Simulate the worker updating the record after AI enhancement.
	analysis.Result.CompositeScore = 72
	analysis.Result.Results.Reflection.Categories = []string{"general", "low_credibility"}
	if err := db.SaveAnalysis(analysis); err != nil {
		t.Fatalf("Failed to update analysis: %v", err)
	}

	got, err := db.GetAnalysis("a1")
	if err != nil {
		t.Fatalf("Failed to get analysis: %v", err)
	}
	if got.Result.CompositeScore != 72 {
		t.Errorf("Expected updated composite score 72, got %d", got.Result.CompositeScore)
	}

	// Category rows must be replaced, not duplicated.
	matches, err := db.SearchByCategory("general")
	if err != nil {
		t.Fatalf("Failed to search by category: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("Expected 1 match for general, got %d", len(matches))
	}
}

func TestListAnalyses(t *testing.T) {
	db := setupTestDB(t)

	for _, id := range []string{"a1", "a2", "a3"} {
		analysis := testAnalysis(id, "general")
		if err := db.SaveAnalysis(analysis); err != nil {
			t.Fatalf("Failed to save analysis %s: %v", id, err)
		}
	}

	analyses, err := db.ListAnalyses(2, 0)
	if err != nil {
		t.Fatalf("Failed to list analyses: %v", err)
	}
	if len(analyses) != 2 {
		t.Errorf("Expected 2 analyses with limit 2, got %d", len(analyses))
	}

	analyses, err = db.ListAnalyses(10, 2)
	if err != nil {
		t.Fatalf("Failed to list analyses with offset: %v", err)
	}
	if len(analyses) != 1 {
		t.Errorf("Expected 1 analysis with offset 2, got %d", len(analyses))
	}
}

func TestSearchByCategory(t *testing.T) {
	db := setupTestDB(t)

	if err := db.SaveAnalysis(testAnalysis("a1", "high_emotion", "general")); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}
	if err := db.SaveAnalysis(testAnalysis("a2", "general")); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}

	matches, err := db.SearchByCategory("high_emotion")
	if err != nil {
		t.Fatalf("Failed to search by category: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("Expected 1 match for high_emotion, got %d", len(matches))
	}
	if matches[0].ID != "a1" {
		t.Errorf("Expected match a1, got %s", matches[0].ID)
	}

	matches, err = db.SearchByCategory("general")
	if err != nil {
		t.Fatalf("Failed to search by category: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Expected 2 matches for general, got %d", len(matches))
	}

	matches, err = db.SearchByCategory("fallacies_detected")
	if err != nil {
		t.Fatalf("Failed to search by category: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected 0 matches, got %d", len(matches))
	}
}

func TestDeleteAnalysis(t *testing.T) {
	db := setupTestDB(t)

	if err := db.SaveAnalysis(testAnalysis("a1", "general")); err != nil {
		t.Fatalf("Failed to save analysis: %v", err)
	}

	if err := db.DeleteAnalysis("a1"); err != nil {
		t.Fatalf("Failed to delete analysis: %v", err)
	}

	if _, err := db.GetAnalysis("a1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}

	// Category rows cascade with the parent record.
	matches, err := db.SearchByCategory("general")
	if err != nil {
		t.Fatalf("Failed to search by category: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected 0 matches after delete, got %d", len(matches))
	}

	if err := db.DeleteAnalysis("a1"); err != ErrNotFound {
		t.Errorf("Expected ErrNotFound for second delete, got %v", err)
	}
}
