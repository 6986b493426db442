package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// CreatePlant inserts a new plant and returns it. typeName may be empty.
func (db *DB) CreatePlant(name, typeName string) (*Plant, error) {
	p := &Plant{
		ID:        uuid.NewString(),
		Name:      name,
		TypeName:  typeName,
		CreatedAt: time.Now().UTC(),
	}

	var tn sql.NullString
	if typeName != "" {
		tn = sql.NullString{String: typeName, Valid: true}
	}
	_, err := db.conn.Exec(
		"INSERT INTO plants (id, name, type_name, created_at) VALUES (?, ?, ?, ?)",
		p.ID, p.Name, tn, p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlant returns a plant by ID, or nil if it does not exist.
func (db *DB) GetPlant(id string) (*Plant, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, type_name, created_at FROM plants WHERE id = ?", id)
	return scanPlant(row)
}

// GetPlantByName returns a plant by its unique name, or nil.
func (db *DB) GetPlantByName(name string) (*Plant, error) {
	row := db.conn.QueryRow(
		"SELECT id, name, type_name, created_at FROM plants WHERE name = ?", name)
	return scanPlant(row)
}

// ListPlants returns all plants ordered by name.
func (db *DB) ListPlants() ([]Plant, error) {
	rows, err := db.conn.Query(
		"SELECT id, name, type_name, created_at FROM plants ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plants []Plant
	for rows.Next() {
		var p Plant
		var tn sql.NullString
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &tn, &createdAt); err != nil {
			return nil, err
		}
		p.TypeName = tn.String
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

func scanPlant(row *sql.Row) (*Plant, error) {
	var p Plant
	var tn sql.NullString
	var createdAt string
	err := row.Scan(&p.ID, &p.Name, &tn, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.TypeName = tn.String
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

// UpsertPlantType creates or updates a plant type's recommended intervals.
// Nil fields keep the existing recommendation, so setting one interval never
// clears the other.
func (db *DB) UpsertPlantType(pt *PlantType) error {
	_, err := db.conn.Exec(
		`INSERT INTO plant_types (name, watering_frequency_days, fertilizing_frequency_days)
		 VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			watering_frequency_days = COALESCE(excluded.watering_frequency_days, watering_frequency_days),
			fertilizing_frequency_days = COALESCE(excluded.fertilizing_frequency_days, fertilizing_frequency_days)`,
		pt.Name, nullableInt(pt.WateringFrequencyDays), nullableInt(pt.FertilizingFrequencyDays),
	)
	return err
}

// GetPlantType returns a plant type by name, or nil if it does not exist.
func (db *DB) GetPlantType(name string) (*PlantType, error) {
	row := db.conn.QueryRow(
		`SELECT name, watering_frequency_days, fertilizing_frequency_days
		 FROM plant_types WHERE name = ?`, name)

	var pt PlantType
	var watering, fertilizing sql.NullInt64
	err := row.Scan(&pt.Name, &watering, &fertilizing)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pt.WateringFrequencyDays = intPtrFromNull(watering)
	pt.FertilizingFrequencyDays = intPtrFromNull(fertilizing)
	return &pt, nil
}

// ListPlantTypes returns all plant types ordered by name.
func (db *DB) ListPlantTypes() ([]PlantType, error) {
	rows, err := db.conn.Query(
		`SELECT name, watering_frequency_days, fertilizing_frequency_days
		 FROM plant_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []PlantType
	for rows.Next() {
		var pt PlantType
		var watering, fertilizing sql.NullInt64
		if err := rows.Scan(&pt.Name, &watering, &fertilizing); err != nil {
			return nil, err
		}
		pt.WateringFrequencyDays = intPtrFromNull(watering)
		pt.FertilizingFrequencyDays = intPtrFromNull(fertilizing)
		types = append(types, pt)
	}
	return types, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func intPtrFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
