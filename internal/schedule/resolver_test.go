package schedule

import "testing"

func intPtr(v int) *int { return &v }

func TestResolveInterval_OverrideWins(t *testing.T) {
	got := ResolveInterval(intPtr(10), intPtr(5), 7)
	if got.Days != 10 {
		t.Errorf("expected override 10, got %d", got.Days)
	}
	if got.Source != SourceOverride {
		t.Errorf("expected source override, got %s", got.Source)
	}
}

func TestResolveInterval_OverrideWinsRegardlessOfOthers(t *testing.T) {
	cases := []struct {
		name        string
		recommended *int
	}{
		{"nil recommended", nil},
		{"smaller recommended", intPtr(3)},
		{"larger recommended", intPtr(30)},
		{"invalid recommended", intPtr(-1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveInterval(intPtr(12), tc.recommended, 7)
			if got.Days != 12 || got.Source != SourceOverride {
				t.Errorf("got %+v, want override 12", got)
			}
		})
	}
}

func TestResolveInterval_RecommendedFallback(t *testing.T) {
	got := ResolveInterval(nil, intPtr(14), 7)
	if got.Days != 14 || got.Source != SourceRecommended {
		t.Errorf("got %+v, want recommended 14", got)
	}
}

func TestResolveInterval_DefaultFallback(t *testing.T) {
	got := ResolveInterval(nil, nil, 7)
	if got.Days != 7 || got.Source != SourceDefault {
		t.Errorf("got %+v, want default 7", got)
	}
}

func TestResolveInterval_MalformedValuesFallThrough(t *testing.T) {
	cases := []struct {
		name        string
		override    *int
		recommended *int
		wantDays    int
		wantSource  IntervalSource
	}{
		{"zero override", intPtr(0), intPtr(14), 14, SourceRecommended},
		{"negative override", intPtr(-3), intPtr(14), 14, SourceRecommended},
		{"zero override and recommended", intPtr(0), intPtr(0), 30, SourceDefault},
		{"negative everywhere", intPtr(-1), intPtr(-5), 30, SourceDefault},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveInterval(tc.override, tc.recommended, 30)
			if got.Days != tc.wantDays || got.Source != tc.wantSource {
				t.Errorf("got %+v, want %d from %s", got, tc.wantDays, tc.wantSource)
			}
		})
	}
}
