package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zombar/claritylens/internal/models"
)

// ErrNotFound is returned when no analysis matches the requested ID.
var ErrNotFound = fmt.Errorf("analysis not found")

// SaveAnalysis stores an analysis along with its reflection categories.
// Existing records with the same ID are replaced, which lets the worker
// update a record after AI enhancement completes.
func (db *DB) SaveAnalysis(analysis *models.Analysis) error {
	resultJSON, err := json.Marshal(analysis.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analyses (id, text, source_url, result, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			source_url = excluded.source_url,
			result = excluded.result,
			updated_at = excluded.updated_at
	`, analysis.ID, analysis.Text, analysis.SourceURL, string(resultJSON), analysis.CreatedAt, analysis.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM reflection_categories WHERE analysis_id = ?", analysis.ID); err != nil {
		return fmt.Errorf("failed to clear reflection categories: %w", err)
	}

	for _, category := range reflectionCategories(&analysis.Result) {
		_, err = tx.Exec(`
			INSERT INTO reflection_categories (analysis_id, category)
			VALUES (?, ?)
		`, analysis.ID, category)
		if err != nil {
			return fmt.Errorf("failed to insert reflection category: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAnalysis retrieves an analysis by ID.
func (db *DB) GetAnalysis(id string) (*models.Analysis, error) {
	var (
		text       string
		sourceURL  string
		resultJSON string
		createdAt  time.Time
		updatedAt  time.Time
	)

	err := db.conn.QueryRow(`
		SELECT text, source_url, result, created_at, updated_at
		FROM analyses
		WHERE id = ?
	`, id).Scan(&text, &sourceURL, &resultJSON, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var result models.CompositeAnalysis
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}

	return &models.Analysis{
		ID:        id,
		Text:      text,
		SourceURL: sourceURL,
		Result:    result,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// ListAnalyses retrieves analyses ordered newest first, with pagination.
func (db *DB) ListAnalyses(limit, offset int) ([]*models.Analysis, error) {
	rows, err := db.conn.Query(`
		SELECT id, text, source_url, result, created_at, updated_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// SearchByCategory retrieves all analyses whose reflection questions
// were triggered by the given category.
func (db *DB) SearchByCategory(category string) ([]*models.Analysis, error) {
	rows, err := db.conn.Query(`
		SELECT DISTINCT a.id, a.text, a.source_url, a.result, a.created_at, a.updated_at
		FROM analyses a
		INNER JOIN reflection_categories rc ON a.id = rc.analysis_id
		WHERE rc.category = ?
		ORDER BY a.created_at DESC
	`, category)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses by category: %w", err)
	}
	defer rows.Close()

	return scanAnalyses(rows)
}

// DeleteAnalysis deletes an analysis by ID. Reflection categories are
// removed by the foreign key cascade.
func (db *DB) DeleteAnalysis(id string) error {
	result, err := db.conn.Exec("DELETE FROM analyses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func scanAnalyses(rows *sql.Rows) ([]*models.Analysis, error) {
	var analyses []*models.Analysis
	for rows.Next() {
		var (
			id         string
			text       string
			sourceURL  string
			resultJSON string
			createdAt  time.Time
			updatedAt  time.Time
		)

		if err := rows.Scan(&id, &text, &sourceURL, &resultJSON, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		var result models.CompositeAnalysis
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		analyses = append(analyses, &models.Analysis{
			ID:        id,
			Text:      text,
			SourceURL: sourceURL,
			Result:    result,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return analyses, nil
}

func reflectionCategories(result *models.CompositeAnalysis) []string {
	if result.Results == nil || result.Results.Reflection == nil {
		return nil
	}
	return result.Results.Reflection.Categories
}
