package store

import "database/sql"

// GetPreference returns a plant's care preference row, or nil if the plant
// has no overrides at all.
func (db *DB) GetPreference(plantID string) (*CarePreference, error) {
	row := db.conn.QueryRow(
		`SELECT plant_id, watering_frequency_days, fertilizing_frequency_days
		 FROM care_preferences WHERE plant_id = ?`, plantID)

	var p CarePreference
	var watering, fertilizing sql.NullInt64
	err := row.Scan(&p.PlantID, &watering, &fertilizing)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.WateringFrequencyDays = intPtrFromNull(watering)
	p.FertilizingFrequencyDays = intPtrFromNull(fertilizing)
	return &p, nil
}

// SetWateringOverride upserts the watering override for a plant. A nil
// days clears the override back to the fallback layers.
func (db *DB) SetWateringOverride(plantID string, days *int) error {
	_, err := db.conn.Exec(
		`INSERT INTO care_preferences (plant_id, watering_frequency_days)
		 VALUES (?, ?)
		 ON CONFLICT(plant_id) DO UPDATE SET
			watering_frequency_days = excluded.watering_frequency_days`,
		plantID, nullableInt(days),
	)
	return err
}

// SetFertilizingOverride upserts the fertilizing override for a plant.
func (db *DB) SetFertilizingOverride(plantID string, days *int) error {
	_, err := db.conn.Exec(
		`INSERT INTO care_preferences (plant_id, fertilizing_frequency_days)
		 VALUES (?, ?)
		 ON CONFLICT(plant_id) DO UPDATE SET
			fertilizing_frequency_days = excluded.fertilizing_frequency_days`,
		plantID, nullableInt(days),
	)
	return err
}
