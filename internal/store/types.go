// Package store provides SQLite database access for plants, care events,
// preferences, and schedule suggestions.
package store

import "time"

// Care event kinds. "watered" and "fertilized" drive scheduling; the rest
// are journal entries.
const (
	EventWatered    = "watered"
	EventFertilized = "fertilized"
	EventRepotted   = "repotted"
	EventPruned     = "pruned"
	EventMisted     = "misted"
)

// EventTypes lists every kind the log command accepts.
var EventTypes = []string{EventWatered, EventFertilized, EventRepotted, EventPruned, EventMisted}

// Plant is an individually tracked plant.
type Plant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TypeName  string    `json:"type_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PlantType holds the recommended care intervals for a species/type. Either
// frequency may be nil when the type carries no recommendation for that
// care kind.
type PlantType struct {
	Name                     string `json:"name"`
	WateringFrequencyDays    *int   `json:"watering_frequency_days,omitempty"`
	FertilizingFrequencyDays *int   `json:"fertilizing_frequency_days,omitempty"`
}

// CareEvent is one logged care action. Rows are append-only.
type CareEvent struct {
	ID        int64     `json:"id"`
	PlantID   string    `json:"plant_id"`
	EventType string    `json:"event_type"`
	EventDate time.Time `json:"event_date"`
}

// CarePreference holds a plant's per-kind interval overrides. A nil
// frequency means "no override, fall back to the type recommendation or the
// product default".
type CarePreference struct {
	PlantID                  string `json:"plant_id"`
	WateringFrequencyDays    *int   `json:"watering_frequency_days,omitempty"`
	FertilizingFrequencyDays *int   `json:"fertilizing_frequency_days,omitempty"`
}
