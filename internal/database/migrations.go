package database

import (
	"fmt"
	"log"
)

// Migration represents a single schema migration.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_analyses_table",
		SQL: `
			CREATE TABLE IF NOT EXISTS analyses (
				id TEXT PRIMARY KEY,
				text TEXT NOT NULL,
				source_url TEXT NOT NULL DEFAULT '',
				result TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				updated_at TIMESTAMP NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at DESC);
		`,
	},
	{
		Version: 2,
		Name:    "create_schema_version_table",
		SQL: `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`,
	},
	{
		Version: 3,
		Name:    "create_reflection_categories_table",
		SQL: `
			CREATE TABLE IF NOT EXISTS reflection_categories (
				analysis_id TEXT NOT NULL REFERENCES analyses(id) ON DELETE CASCADE,
				category TEXT NOT NULL,
				PRIMARY KEY (analysis_id, category)
			);
			CREATE INDEX IF NOT EXISTS idx_reflection_categories_category ON reflection_categories(category);
		`,
	},
}

// Migrate applies any pending migrations in order.
func (db *DB) Migrate() error {
	// Ensure the version table exists before reading from it.
	if _, err := db.conn.Exec(migrations[1].SQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err := db.conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	applied := 0
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Printf("Applying migration %d: %s", migration.Version, migration.Name)

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if _, err := tx.Exec(migration.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		applied++
	}

	if applied > 0 {
		log.Printf("Applied %d migration(s), schema now at version %d", applied, migrations[len(migrations)-1].Version)
	}

	return nil
}
