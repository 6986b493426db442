package store

import (
	"database/sql"
	"time"
)

// InsertCareEvent appends a care event for a plant. Events are never
// updated or deleted through this layer.
func (db *DB) InsertCareEvent(plantID, eventType string, eventDate time.Time) (*CareEvent, error) {
	result, err := db.conn.Exec(
		"INSERT INTO care_events (plant_id, event_type, event_date) VALUES (?, ?, ?)",
		plantID, eventType, eventDate.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &CareEvent{
		ID:        id,
		PlantID:   plantID,
		EventType: eventType,
		EventDate: eventDate.UTC(),
	}, nil
}

// ListEventDates returns the dates of a plant's events of one kind in
// ascending order, the ordering the interval analyzer expects.
func (db *DB) ListEventDates(plantID, eventType string) ([]time.Time, error) {
	rows, err := db.conn.Query(
		`SELECT event_date FROM care_events
		 WHERE plant_id = ? AND event_type = ?
		 ORDER BY event_date ASC`,
		plantID, eventType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, t)
	}
	return dates, rows.Err()
}

// LatestEventDate returns the most recent event date of one kind for a
// plant, or nil if none has been logged.
func (db *DB) LatestEventDate(plantID, eventType string) (*time.Time, error) {
	row := db.conn.QueryRow(
		`SELECT event_date FROM care_events
		 WHERE plant_id = ? AND event_type = ?
		 ORDER BY event_date DESC LIMIT 1`,
		plantID, eventType,
	)

	var raw string
	err := row.Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CountEvents returns the number of events of one kind for a plant.
func (db *DB) CountEvents(plantID, eventType string) (int, error) {
	row := db.conn.QueryRow(
		"SELECT COUNT(*) FROM care_events WHERE plant_id = ? AND event_type = ?",
		plantID, eventType,
	)
	var n int
	err := row.Scan(&n)
	return n, err
}
