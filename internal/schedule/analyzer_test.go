package schedule

import (
	"testing"
	"time"
)

// eventsWithGaps builds an ascending event history where consecutive events
// are separated by the given gaps in days.
func eventsWithGaps(gaps ...int) []time.Time {
	dates := []time.Time{date(2026, 1, 1)}
	for _, g := range gaps {
		dates = append(dates, dates[len(dates)-1].AddDate(0, 0, g))
	}
	return dates
}

func TestAnalyzeIntervals_InsufficientHistory(t *testing.T) {
	events := eventsWithGaps(7, 7)
	got := AnalyzeIntervals(events, 10, DefaultTuning)
	if got.ShouldSuggest {
		t.Error("3 events must not produce a suggestion")
	}
	if got.DataPointsUsed != 0 {
		t.Errorf("expected no data points used, got %d", got.DataPointsUsed)
	}
}

func TestAnalyzeIntervals_EmptyHistory(t *testing.T) {
	got := AnalyzeIntervals(nil, 7, DefaultTuning)
	if got.ShouldSuggest {
		t.Error("empty history must not produce a suggestion")
	}
}

func TestAnalyzeIntervals_SteadyRhythmSuggestsChange(t *testing.T) {
	// Six waterings every 7 days against a 10-day schedule.
	events := eventsWithGaps(7, 7, 7, 7, 7)
	got := AnalyzeIntervals(events, 10, DefaultTuning)

	if !got.ShouldSuggest {
		t.Fatal("expected a suggestion")
	}
	if got.SuggestedDays != 7 {
		t.Errorf("expected suggested 7, got %d", got.SuggestedDays)
	}
	if got.Confidence != 100 {
		t.Errorf("perfectly steady rhythm should score 100, got %.0f", got.Confidence)
	}
}

func TestAnalyzeIntervals_MedianResistsOutlier(t *testing.T) {
	// One 20-day gap (missed watering) among 7-day gaps: the suggestion
	// must be the 7-day median, not the ~9.6-day mean.
	events := eventsWithGaps(7, 7, 7, 7, 20)
	got := AnalyzeIntervals(events, 10, DefaultTuning)

	if !got.ShouldSuggest {
		t.Fatal("expected a suggestion")
	}
	if got.SuggestedDays != 7 {
		t.Errorf("expected median 7, got %d", got.SuggestedDays)
	}
}

func TestAnalyzeIntervals_NoSuggestionWithinMateriality(t *testing.T) {
	// Detected 7 vs current 8: a 1-day difference is noise.
	events := eventsWithGaps(7, 7, 7, 7, 7)
	got := AnalyzeIntervals(events, 8, DefaultTuning)

	if got.ShouldSuggest {
		t.Error("1-day difference must not trigger a suggestion")
	}
	if got.DetectedMedian != 7 {
		t.Errorf("expected detected median 7, got %d", got.DetectedMedian)
	}
}

func TestAnalyzeIntervals_ErraticRhythmFailsConfidenceBar(t *testing.T) {
	events := eventsWithGaps(2, 25, 3, 28, 4, 30)
	got := AnalyzeIntervals(events, 7, DefaultTuning)

	if got.ShouldSuggest {
		t.Errorf("erratic history (confidence %.0f) must not suggest", got.Confidence)
	}
	if got.Confidence >= DefaultTuning.MinConfidence {
		t.Errorf("expected confidence below %.0f, got %.0f",
			DefaultTuning.MinConfidence, got.Confidence)
	}
}

func TestAnalyzeIntervals_DiscardsDataGaps(t *testing.T) {
	// A 200-day tracking lapse is a data gap, not a rhythm, and must not
	// poison the sample.
	events := eventsWithGaps(7, 7, 200, 7, 7)
	got := AnalyzeIntervals(events, 10, DefaultTuning)

	if !got.ShouldSuggest {
		t.Fatal("expected a suggestion from the surviving 7-day gaps")
	}
	if got.SuggestedDays != 7 {
		t.Errorf("expected 7, got %d", got.SuggestedDays)
	}
	if got.DataPointsUsed != 4 {
		t.Errorf("expected 4 gaps after filtering, got %d", got.DataPointsUsed)
	}
}

func TestAnalyzeIntervals_SameDayDuplicatesFiltered(t *testing.T) {
	events := eventsWithGaps(7, 0, 7, 7, 7)
	got := AnalyzeIntervals(events, 10, DefaultTuning)
	if !got.ShouldSuggest || got.SuggestedDays != 7 {
		t.Errorf("expected suggestion of 7 despite a same-day duplicate, got %+v", got)
	}
}

func TestAnalyzeIntervals_TooFewValidGaps(t *testing.T) {
	// Five events but two gaps are invalid, leaving only three.
	events := eventsWithGaps(7, 0, 200, 7)
	got := AnalyzeIntervals(events, 10, DefaultTuning)
	if got.ShouldSuggest {
		t.Error("fewer than 4 valid gaps must abort the analysis")
	}
}

func TestAnalyzeIntervals_ConfidenceDecreasesWithDispersion(t *testing.T) {
	steady := AnalyzeIntervals(eventsWithGaps(7, 7, 7, 7, 7), 12, DefaultTuning)
	wobbly := AnalyzeIntervals(eventsWithGaps(5, 9, 6, 8, 7), 12, DefaultTuning)

	if steady.Confidence <= wobbly.Confidence {
		t.Errorf("steady confidence %.0f should exceed wobbly %.0f",
			steady.Confidence, wobbly.Confidence)
	}
}

func TestAnalyzeIntervals_ConfidenceBounded(t *testing.T) {
	for _, gaps := range [][]int{
		{7, 7, 7, 7, 7},
		{2, 25, 3, 28, 4, 30},
		{1, 60, 2, 55, 3, 58},
	} {
		got := AnalyzeIntervals(eventsWithGaps(gaps...), 10, DefaultTuning)
		if got.Confidence < 0 || got.Confidence > 100 {
			t.Errorf("gaps %v: confidence %.1f out of bounds", gaps, got.Confidence)
		}
	}
}

func TestAnalyzeIntervals_Deterministic(t *testing.T) {
	events := eventsWithGaps(6, 8, 7, 9, 7, 20)
	a := AnalyzeIntervals(events, 12, DefaultTuning)
	b := AnalyzeIntervals(events, 12, DefaultTuning)
	if a != b {
		t.Errorf("same input produced different results: %+v vs %+v", a, b)
	}
}

func TestAnalyzeIntervals_CustomTuning(t *testing.T) {
	opts := DefaultTuning
	opts.MaterialityDays = 5

	events := eventsWithGaps(7, 7, 7, 7, 7)
	got := AnalyzeIntervals(events, 10, opts)
	if got.ShouldSuggest {
		t.Error("3-day difference must not pass a 5-day materiality threshold")
	}
}
