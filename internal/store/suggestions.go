package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leafbook/plantwatch/internal/schedule"
)

// ErrSuggestionResolved is returned when an accept or dismiss update finds
// the row already resolved. It is the storage-side safety net behind the
// engine's own already-resolved guard: whichever resolution lands first
// wins, the second caller gets this error instead of silently overwriting.
var ErrSuggestionResolved = errors.New("suggestion already resolved")

// ActiveSuggestion pairs a pending suggestion with its plant's name for
// display.
type ActiveSuggestion struct {
	schedule.Suggestion
	PlantName string `json:"plant_name"`
}

// InsertSuggestion inserts a new pending suggestion unless the plant
// already has one. The check and insert run in one transaction, and the
// partial unique index on active suggestions resolves any remaining race:
// a constraint hit is reported as created=false, never as two rows.
func (db *DB) InsertSuggestion(s *schedule.Suggestion) (created bool, err error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow(
		`SELECT id FROM schedule_suggestions
		 WHERE plant_id = ? AND dismissed_at IS NULL AND accepted_at IS NULL`,
		s.PlantID,
	).Scan(&existing)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, err
	}

	_, err = tx.Exec(
		`INSERT INTO schedule_suggestions
		 (id, plant_id, suggested_interval_days, current_interval_days,
		  confidence_score, detected_at, dismissed_at, accepted_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, NULL)`,
		s.ID, s.PlantID, s.SuggestedIntervalDays, s.CurrentIntervalDays,
		s.ConfidenceScore, s.DetectedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return false, nil
		}
		return false, err
	}

	return true, tx.Commit()
}

// GetSuggestion returns a suggestion by ID, or nil if it does not exist.
func (db *DB) GetSuggestion(id string) (*schedule.Suggestion, error) {
	row := db.conn.QueryRow(
		`SELECT id, plant_id, suggested_interval_days, current_interval_days,
			confidence_score, detected_at, dismissed_at, accepted_at
		 FROM schedule_suggestions WHERE id = ?`, id)
	return scanSuggestion(row)
}

// GetActiveSuggestion returns the plant's pending suggestion, or nil.
func (db *DB) GetActiveSuggestion(plantID string) (*schedule.Suggestion, error) {
	row := db.conn.QueryRow(
		`SELECT id, plant_id, suggested_interval_days, current_interval_days,
			confidence_score, detected_at, dismissed_at, accepted_at
		 FROM schedule_suggestions
		 WHERE plant_id = ? AND dismissed_at IS NULL AND accepted_at IS NULL`,
		plantID)
	return scanSuggestion(row)
}

// ListActiveSuggestions returns all pending suggestions with their plant
// names, newest detection first.
func (db *DB) ListActiveSuggestions() ([]ActiveSuggestion, error) {
	rows, err := db.conn.Query(
		`SELECT s.id, s.plant_id, s.suggested_interval_days, s.current_interval_days,
			s.confidence_score, s.detected_at, s.dismissed_at, s.accepted_at, p.name
		 FROM schedule_suggestions s
		 JOIN plants p ON p.id = s.plant_id
		 WHERE s.dismissed_at IS NULL AND s.accepted_at IS NULL
		 ORDER BY s.detected_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var active []ActiveSuggestion
	for rows.Next() {
		var a ActiveSuggestion
		var detectedAt string
		var dismissedAt, acceptedAt sql.NullString
		if err := rows.Scan(
			&a.ID, &a.PlantID, &a.SuggestedIntervalDays, &a.CurrentIntervalDays,
			&a.ConfidenceScore, &detectedAt, &dismissedAt, &acceptedAt, &a.PlantName,
		); err != nil {
			return nil, err
		}
		a.DetectedAt, _ = time.Parse(time.RFC3339, detectedAt)
		a.DismissedAt = timePtrFromNull(dismissedAt)
		a.AcceptedAt = timePtrFromNull(acceptedAt)
		active = append(active, a)
	}
	return active, rows.Err()
}

// SaveResolution persists an accepted or dismissed suggestion. The update
// only applies while the row is still pending; if another caller resolved
// it first, ErrSuggestionResolved is returned and the row is untouched.
func (db *DB) SaveResolution(s schedule.Suggestion) error {
	if s.State() == schedule.StatePending {
		return fmt.Errorf("suggestion %s is still pending", s.ID)
	}

	result, err := db.conn.Exec(
		`UPDATE schedule_suggestions
		 SET dismissed_at = ?, accepted_at = ?
		 WHERE id = ? AND dismissed_at IS NULL AND accepted_at IS NULL`,
		nullableTime(s.DismissedAt), nullableTime(s.AcceptedAt), s.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSuggestionResolved
	}
	return nil
}

func scanSuggestion(row *sql.Row) (*schedule.Suggestion, error) {
	var s schedule.Suggestion
	var detectedAt string
	var dismissedAt, acceptedAt sql.NullString
	err := row.Scan(
		&s.ID, &s.PlantID, &s.SuggestedIntervalDays, &s.CurrentIntervalDays,
		&s.ConfidenceScore, &detectedAt, &dismissedAt, &acceptedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.DetectedAt, _ = time.Parse(time.RFC3339, detectedAt)
	s.DismissedAt = timePtrFromNull(dismissedAt)
	s.AcceptedAt = timePtrFromNull(acceptedAt)
	return &s, nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func timePtrFromNull(v sql.NullString) *time.Time {
	if !v.Valid {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil
	}
	return &t
}
