package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	// Create the schema_version table if it does not exist.
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS plant_types (
			name                       TEXT PRIMARY KEY,
			watering_frequency_days    INTEGER,
			fertilizing_frequency_days INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS plants (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL UNIQUE,
			type_name  TEXT REFERENCES plant_types(name),
			created_at TEXT NOT NULL
		)`,

		// Append-only: rows are only ever inserted by the log command.
		`CREATE TABLE IF NOT EXISTS care_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			plant_id   TEXT NOT NULL REFERENCES plants(id),
			event_type TEXT NOT NULL,
			event_date TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS care_preferences (
			plant_id                   TEXT PRIMARY KEY REFERENCES plants(id),
			watering_frequency_days    INTEGER,
			fertilizing_frequency_days INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS schedule_suggestions (
			id                      TEXT PRIMARY KEY,
			plant_id                TEXT NOT NULL REFERENCES plants(id),
			suggested_interval_days INTEGER NOT NULL,
			current_interval_days   INTEGER NOT NULL,
			confidence_score        REAL NOT NULL,
			detected_at             TEXT NOT NULL,
			dismissed_at            TEXT,
			accepted_at             TEXT
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_care_events_plant_type_date
			ON care_events(plant_id, event_type, event_date)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_plant
			ON schedule_suggestions(plant_id)`,

		// At most one unresolved suggestion per plant. The engine defends
		// against duplicates too, but this index is the arbiter under
		// concurrent check-then-insert races.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_suggestions_one_active
			ON schedule_suggestions(plant_id)
			WHERE dismissed_at IS NULL AND accepted_at IS NULL`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	// Set schema version.
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
