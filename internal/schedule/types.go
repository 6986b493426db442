// Package schedule implements the care scheduling and suggestion engine:
// interval resolution, due-status derivation, watering-pattern analysis, and
// the suggestion lifecycle. Everything in this package is a pure function of
// its arguments — callers inject the current time and perform all storage.
package schedule

import "time"

// TaskStatus describes how a care task stands relative to its schedule.
type TaskStatus string

const (
	// StatusNotStarted means no event of this kind has been logged yet, or
	// no interval could be resolved.
	StatusNotStarted TaskStatus = "not_started"

	// StatusOK means the next due date is comfortably in the future.
	StatusOK TaskStatus = "ok"

	// StatusDueSoon means the due date falls within the due-soon window.
	StatusDueSoon TaskStatus = "due_soon"

	// StatusOverdue means the due date has passed.
	StatusOverdue TaskStatus = "overdue"
)

// DisplayText returns the human-readable label for a status.
func (s TaskStatus) DisplayText() string {
	switch s {
	case StatusOverdue:
		return "Overdue"
	case StatusDueSoon:
		return "Due soon"
	case StatusNotStarted:
		return "Not tracked yet"
	default:
		return "All set"
	}
}

// IntervalSource identifies which configuration layer supplied an interval.
type IntervalSource string

const (
	// SourceOverride means the user set an explicit per-plant frequency.
	SourceOverride IntervalSource = "override"

	// SourceRecommended means the plant type's recommendation applied.
	SourceRecommended IntervalSource = "recommended"

	// SourceDefault means the product default applied.
	SourceDefault IntervalSource = "default"
)

// EffectiveInterval is the care frequency actually in force for a plant
// after applying fallback precedence. Computed, never persisted.
type EffectiveInterval struct {
	Days   int            `json:"days"`
	Source IntervalSource `json:"source"`
}

// DueTask is the per-plant care summary shown on the dashboard. Computed
// from events and preferences on every call; there is no persisted status.
type DueTask struct {
	PlantID                  string     `json:"plant_id"`
	PlantName                string     `json:"plant_name"`
	PlantTypeName            string     `json:"plant_type_name,omitempty"`
	WateringStatus           TaskStatus `json:"watering_status"`
	WateringFrequencyDays    int        `json:"watering_frequency_days"`
	LastWateredAt            *time.Time `json:"last_watered_at,omitempty"`
	WaterDueAt               *time.Time `json:"water_due_at,omitempty"`
	FertilizingStatus        TaskStatus `json:"fertilizing_status"`
	FertilizingFrequencyDays int        `json:"fertilizing_frequency_days"`
	LastFertilizedAt         *time.Time `json:"last_fertilized_at,omitempty"`
	FertilizeDueAt           *time.Time `json:"fertilize_due_at,omitempty"`
}
