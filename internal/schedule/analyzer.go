package schedule

import (
	"math"
	"sort"
	"time"
)

// Tuning holds the analyzer thresholds. The shape of the analysis is fixed;
// the constants are a product-policy knob surfaced through configuration.
type Tuning struct {
	// MinEvents is the minimum number of events required before any
	// analysis is attempted.
	MinEvents int

	// MaterialityDays is the minimum difference between the detected and
	// the current interval required to bother suggesting a change.
	MaterialityDays int

	// MinConfidence is the confidence floor (0-100) below which no
	// suggestion is made even when the difference is material.
	MinConfidence float64

	// MaxGapDays is the longest gap between consecutive events still
	// treated as a real care rhythm rather than a data gap.
	MaxGapDays int

	// SpreadWeight scales how hard gap dispersion pulls confidence down.
	SpreadWeight float64

	// DataPointBonusCap limits the confidence bonus for large samples.
	DataPointBonusCap int
}

// DefaultTuning mirrors the thresholds the product shipped with.
var DefaultTuning = Tuning{
	MinEvents:         5,
	MaterialityDays:   2,
	MinConfidence:     40,
	MaxGapDays:        90,
	SpreadWeight:      8,
	DataPointBonusCap: 10,
}

// Analysis is the result of analyzing a plant's watering history against
// its configured interval.
type Analysis struct {
	// ShouldSuggest reports whether a schedule change is worth proposing.
	ShouldSuggest bool `json:"should_suggest"`

	// SuggestedDays is the proposed interval. Zero when ShouldSuggest is
	// false.
	SuggestedDays int `json:"suggested_days,omitempty"`

	// Confidence is 0-100; higher means a more regular watering rhythm.
	Confidence float64 `json:"confidence"`

	// DetectedMedian is the median interval observed in the history after
	// outlier removal, whether or not it triggered a suggestion.
	DetectedMedian int `json:"detected_median,omitempty"`

	// DataPointsUsed is the number of gaps that survived filtering.
	DataPointsUsed int `json:"data_points_used"`
}

// AnalyzeIntervals examines a chronological watering history and decides
// whether the user's actual rhythm differs enough from the configured
// interval to suggest a change.
//
// eventDates must be sorted ascending. Fewer than MinEvents events is an
// expected, common case and simply yields ShouldSuggest=false.
//
// Gaps between consecutive events are the sample. Non-positive gaps and
// gaps beyond MaxGapDays (vacations, tracking lapses) are discarded, then
// Tukey-fence outliers (1.5×IQR) are removed so that one missed watering in
// an otherwise steady rhythm cannot skew the result. The suggestion is the
// rounded median of what remains; confidence falls with the sample's
// standard deviation and rises slightly with its size.
func AnalyzeIntervals(eventDates []time.Time, currentIntervalDays int, opts Tuning) Analysis {
	if len(eventDates) < opts.MinEvents {
		return Analysis{}
	}

	gaps := make([]float64, 0, len(eventDates)-1)
	for i := 0; i < len(eventDates)-1; i++ {
		days := daysBetween(eventDates[i], eventDates[i+1])
		if days > 0 && days <= opts.MaxGapDays {
			gaps = append(gaps, float64(days))
		}
	}

	if len(gaps) < opts.MinEvents-1 {
		return Analysis{DataPointsUsed: len(gaps)}
	}

	filtered := removeOutliersIQR(gaps)
	if len(filtered) < 3 {
		return Analysis{DataPointsUsed: len(filtered)}
	}

	detected := int(math.Round(median(filtered)))
	res := Analysis{
		DetectedMedian: detected,
		DataPointsUsed: len(filtered),
	}

	diff := detected - currentIntervalDays
	if diff < 0 {
		diff = -diff
	}
	if diff < opts.MaterialityDays {
		return res
	}

	res.Confidence = confidence(filtered, opts)
	if res.Confidence < opts.MinConfidence {
		return res
	}

	res.ShouldSuggest = true
	res.SuggestedDays = detected
	return res
}

// confidence scores sample consistency on a 0-100 scale: it starts at 100,
// loses SpreadWeight points per day of standard deviation, and gains one
// point per data point up to DataPointBonusCap.
func confidence(gaps []float64, opts Tuning) float64 {
	bonus := float64(len(gaps))
	if bonus > float64(opts.DataPointBonusCap) {
		bonus = float64(opts.DataPointBonusCap)
	}
	raw := 100 - stdDev(gaps)*opts.SpreadWeight + bonus
	return math.Max(0, math.Min(100, math.Round(raw)))
}

// daysBetween returns the whole-day distance between two instants.
func daysBetween(a, b time.Time) int {
	return int(math.Round(math.Abs(b.Sub(a).Hours()) / 24))
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 != 0 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// removeOutliersIQR drops values outside the Tukey fences
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Small samples pass through untouched, as
// does a sample whose quartiles coincide.
func removeOutliersIQR(values []float64) []float64 {
	if len(values) < 4 {
		return values
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	q1 := median(sorted[:len(sorted)/2])
	q3 := median(sorted[(len(sorted)+1)/2:])
	iqr := q3 - q1
	if iqr == 0 {
		return values
	}

	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr
	kept := make([]float64, 0, len(values))
	for _, v := range values {
		if v >= lower && v <= upper {
			kept = append(kept, v)
		}
	}
	return kept
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	return math.Sqrt(sq / float64(len(values)))
}
