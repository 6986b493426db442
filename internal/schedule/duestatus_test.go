package schedule

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStatus_NotStartedWithoutEvent(t *testing.T) {
	got := Status(7, nil, date(2026, 3, 10), 1)
	if got.Status != StatusNotStarted {
		t.Errorf("expected not_started, got %s", got.Status)
	}
	if got.DueAt != nil {
		t.Errorf("expected nil due date, got %v", got.DueAt)
	}
}

func TestStatus_NotStartedWithoutInterval(t *testing.T) {
	last := date(2026, 3, 1)
	for _, interval := range []int{0, -5} {
		got := Status(interval, &last, date(2026, 3, 10), 1)
		if got.Status != StatusNotStarted {
			t.Errorf("interval %d: expected not_started, got %s", interval, got.Status)
		}
	}
}

func TestStatus_DueSoonBoundary(t *testing.T) {
	// Watered 6 days ago on a 7-day schedule: due tomorrow, inside the
	// 1-day window.
	last := date(2026, 3, 4)
	got := Status(7, &last, date(2026, 3, 10), 1)
	if got.Status != StatusDueSoon {
		t.Errorf("expected due_soon, got %s", got.Status)
	}
	want := date(2026, 3, 11)
	if got.DueAt == nil || !got.DueAt.Equal(want) {
		t.Errorf("expected due at %v, got %v", want, got.DueAt)
	}
}

func TestStatus_DueTodayIsDueSoon(t *testing.T) {
	last := date(2026, 3, 3)
	got := Status(7, &last, date(2026, 3, 10), 1)
	if got.Status != StatusDueSoon {
		t.Errorf("expected due_soon for a task due today, got %s", got.Status)
	}
}

func TestStatus_Overdue(t *testing.T) {
	// Watered 8 days ago on a 7-day schedule.
	last := date(2026, 3, 2)
	got := Status(7, &last, date(2026, 3, 10), 1)
	if got.Status != StatusOverdue {
		t.Errorf("expected overdue, got %s", got.Status)
	}
}

func TestStatus_OK(t *testing.T) {
	last := date(2026, 3, 9)
	got := Status(7, &last, date(2026, 3, 10), 1)
	if got.Status != StatusOK {
		t.Errorf("expected ok, got %s", got.Status)
	}
}

func TestStatus_SameDayEventIgnoresTimeOfDay(t *testing.T) {
	// Watered at 08:00, checked at 23:00 the same day on a 1-day interval.
	// Day truncation must keep this out of overdue.
	last := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	got := Status(1, &last, now, 1)
	if got.Status == StatusOverdue {
		t.Error("same-day event must not be overdue later that day")
	}
}

func TestStatus_MonotonicProgression(t *testing.T) {
	// As now advances, status moves ok -> due_soon -> overdue and never
	// regresses.
	last := date(2026, 3, 1)
	rank := map[TaskStatus]int{StatusOK: 0, StatusDueSoon: 1, StatusOverdue: 2}

	prev := -1
	for day := 1; day <= 20; day++ {
		now := last.AddDate(0, 0, day)
		got := Status(7, &last, now, 1)
		r, ok := rank[got.Status]
		if !ok {
			t.Fatalf("day %d: unexpected status %s", day, got.Status)
		}
		if r < prev {
			t.Errorf("day %d: status regressed to %s", day, got.Status)
		}
		prev = r
	}
}

func TestStatus_WiderSoonWindow(t *testing.T) {
	last := date(2026, 3, 1)
	now := date(2026, 3, 5)
	// Due on the 8th: outside a 1-day window but inside a 3-day window.
	if got := Status(7, &last, now, 1); got.Status != StatusOK {
		t.Errorf("window 1: expected ok, got %s", got.Status)
	}
	if got := Status(7, &last, now, 3); got.Status != StatusDueSoon {
		t.Errorf("window 3: expected due_soon, got %s", got.Status)
	}
}
