package schedule

import (
	"fmt"
	"time"
)

// SuggestionState is the lifecycle state of a schedule suggestion.
type SuggestionState string

const (
	// StatePending means the suggestion is awaiting a user decision.
	StatePending SuggestionState = "pending"

	// StateAccepted and StateDismissed are terminal.
	StateAccepted  SuggestionState = "accepted"
	StateDismissed SuggestionState = "dismissed"
)

// Suggestion is a proposed schedule change detected from watering history.
// It is an immutable value: Accept and Dismiss return updated copies rather
// than mutating in place, so the already-resolved guard is a plain state
// check. Persistence is the caller's job.
type Suggestion struct {
	ID                    string     `json:"id"`
	PlantID               string     `json:"plant_id"`
	SuggestedIntervalDays int        `json:"suggested_interval_days"`
	CurrentIntervalDays   int        `json:"current_interval_days"`
	ConfidenceScore       float64    `json:"confidence_score"`
	DetectedAt            time.Time  `json:"detected_at"`
	DismissedAt           *time.Time `json:"dismissed_at,omitempty"`
	AcceptedAt            *time.Time `json:"accepted_at,omitempty"`
}

// State derives the lifecycle state from the resolution timestamps.
func (s Suggestion) State() SuggestionState {
	switch {
	case s.AcceptedAt != nil:
		return StateAccepted
	case s.DismissedAt != nil:
		return StateDismissed
	default:
		return StatePending
	}
}

// InvalidStateError reports an accept or dismiss attempt on a suggestion
// that has already been resolved. It usually indicates a race between two
// callers or a stale view; the first resolution stands.
type InvalidStateError struct {
	State SuggestionState
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("suggestion already %s", e.State)
}

// MaybeCreate constructs a new pending suggestion for the plant, or returns
// nil when the analysis found nothing worth suggesting or an active
// suggestion already exists. hasActive is treated as untrusted input so the
// call is safe to repeat; the storage layer's uniqueness constraint on
// active suggestions is the final arbiter, and the caller must serialize
// the check-then-insert around it.
func MaybeCreate(id, plantID string, analysis Analysis, currentDays int, hasActive bool, now time.Time) *Suggestion {
	if !analysis.ShouldSuggest || hasActive {
		return nil
	}
	return &Suggestion{
		ID:                    id,
		PlantID:               plantID,
		SuggestedIntervalDays: analysis.SuggestedDays,
		CurrentIntervalDays:   currentDays,
		ConfidenceScore:       analysis.Confidence,
		DetectedAt:            now,
	}
}

// Accept marks the suggestion accepted and returns the updated value along
// with the interval the caller must promote into the plant's watering
// override. The engine itself writes nothing. Fails with
// *InvalidStateError if the suggestion was already resolved.
func (s Suggestion) Accept(now time.Time) (Suggestion, int, error) {
	if s.State() != StatePending {
		return s, 0, &InvalidStateError{State: s.State()}
	}
	s.AcceptedAt = &now
	return s, s.SuggestedIntervalDays, nil
}

// Dismiss marks the suggestion dismissed. No override is written. Same
// already-resolved guard as Accept.
func (s Suggestion) Dismiss(now time.Time) (Suggestion, error) {
	if s.State() != StatePending {
		return s, &InvalidStateError{State: s.State()}
	}
	s.DismissedAt = &now
	return s, nil
}
