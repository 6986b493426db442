package schedule

import "time"

// DueResult is the outcome of a due-status computation for one care kind.
type DueResult struct {
	Status TaskStatus `json:"status"`
	DueAt  *time.Time `json:"due_at,omitempty"`
}

// Status derives the due status for one care kind from the effective
// interval and the most recent matching event.
//
// Comparison is day-granular: both lastEventAt and now are truncated to
// calendar dates (UTC) first, so an event logged this morning never reads
// as overdue by the evening. The due date is lastEventAt plus the interval.
//
//   - overdue:  due date strictly before today
//   - due_soon: due date within soonWindowDays of today, inclusive
//   - ok:       due date further out than the due-soon window
//
// A nil lastEventAt or a non-positive interval yields not_started with no
// due date.
func Status(intervalDays int, lastEventAt *time.Time, now time.Time, soonWindowDays int) DueResult {
	if lastEventAt == nil || intervalDays <= 0 {
		return DueResult{Status: StatusNotStarted}
	}

	last := truncateToDay(*lastEventAt)
	today := truncateToDay(now)
	dueAt := last.AddDate(0, 0, intervalDays)

	res := DueResult{DueAt: &dueAt}
	switch {
	case dueAt.Before(today):
		res.Status = StatusOverdue
	case !dueAt.After(today.AddDate(0, 0, soonWindowDays)):
		res.Status = StatusDueSoon
	default:
		res.Status = StatusOK
	}
	return res
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
