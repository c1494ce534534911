package daterange

import (
	"testing"
	"time"
)

func TestComputeRanges_WindowShape(t *testing.T) {
	now := time.Date(2026, 1, 8, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		key  string
		days int
	}{
		{"d1", 1},
		{"d7", 7},
		{"d28", 28},
		{"d90", 90},
		{"d180", 180},
		{"d365", 365},
		{"bogus", 7},
		{"", 7},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			ranges := ComputeRanges(now, tt.key)

			if ranges.Days != tt.days {
				t.Errorf("Days = %d, want %d", ranges.Days, tt.days)
			}

			currentStart := mustParse(t, ranges.Current.StartDate)
			currentEnd := mustParse(t, ranges.Current.EndDate)
			previousStart := mustParse(t, ranges.Previous.StartDate)
			previousEnd := mustParse(t, ranges.Previous.EndDate)

			// Current window ends at UTC yesterday
			wantEnd := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)
			if !currentEnd.Equal(wantEnd) {
				t.Errorf("Current.EndDate = %s, want %s", ranges.Current.EndDate, wantEnd.Format("2006-01-02"))
			}

			// Both windows span exactly tt.days days
			if got := daysBetween(currentStart, currentEnd); got != tt.days {
				t.Errorf("current window spans %d days, want %d", got, tt.days)
			}
			if got := daysBetween(previousStart, previousEnd); got != tt.days {
				t.Errorf("previous window spans %d days, want %d", got, tt.days)
			}

			// Windows are contiguous and non-overlapping
			if !previousEnd.AddDate(0, 0, 1).Equal(currentStart) {
				t.Errorf("previous window ends %s, expected the day before %s", ranges.Previous.EndDate, ranges.Current.StartDate)
			}
		})
	}
}

func TestComputeRanges_Exact7Day(t *testing.T) {
	now := time.Date(2026, 1, 8, 0, 0, 0, 0, time.UTC)
	ranges := ComputeRanges(now, "d7")

	if ranges.Current.StartDate != "2026-01-01" || ranges.Current.EndDate != "2026-01-07" {
		t.Errorf("current = %s..%s, want 2026-01-01..2026-01-07", ranges.Current.StartDate, ranges.Current.EndDate)
	}
	if ranges.Previous.StartDate != "2025-12-25" || ranges.Previous.EndDate != "2025-12-31" {
		t.Errorf("previous = %s..%s, want 2025-12-25..2025-12-31", ranges.Previous.StartDate, ranges.Previous.EndDate)
	}
}

func TestBuildDateList(t *testing.T) {
	t.Run("SevenConsecutiveDays", func(t *testing.T) {
		dates := BuildDateList("2026-01-29", 7)
		want := []string{
			"2026-01-29", "2026-01-30", "2026-01-31",
			"2026-02-01", "2026-02-02", "2026-02-03", "2026-02-04",
		}
		if len(dates) != len(want) {
			t.Fatalf("got %d dates, want %d", len(dates), len(want))
		}
		for i := range want {
			if dates[i] != want[i] {
				t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
			}
		}
	})

	t.Run("MatchesWindowLength", func(t *testing.T) {
		now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
		for _, key := range []string{"d1", "d7", "d28", "d90", "d180", "d365"} {
			ranges := ComputeRanges(now, key)
			dates := BuildDateList(ranges.Current.StartDate, ranges.Days)
			if len(dates) != ranges.Days {
				t.Errorf("%s: got %d dates, want %d", key, len(dates), ranges.Days)
			}
			if len(dates) > 0 && dates[len(dates)-1] != ranges.Current.EndDate {
				t.Errorf("%s: last date %s, want %s", key, dates[len(dates)-1], ranges.Current.EndDate)
			}
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		if dates := BuildDateList("not-a-date", 7); dates != nil {
			t.Errorf("expected nil for malformed start date, got %v", dates)
		}
		if dates := BuildDateList("2026-01-01", 0); dates != nil {
			t.Errorf("expected nil for zero days, got %v", dates)
		}
	})
}

func TestNormalizeWindows(t *testing.T) {
	tests := []struct {
		name          string
		key           string
		wantDashboard string
		wantDetail    string
	}{
		{"SharedKey", "d28", "d28", "d28"},
		{"DetailOnlyKey", "d365", "d7", "d365"},
		{"UnknownKey", "weekly", "d7", "d7"},
		{"Empty", "", "d7", "d7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDashboardWindow(tt.key); got != tt.wantDashboard {
				t.Errorf("NormalizeDashboardWindow(%q) = %s, want %s", tt.key, got, tt.wantDashboard)
			}
			if got := NormalizeDetailWindow(tt.key); got != tt.wantDetail {
				t.Errorf("NormalizeDetailWindow(%q) = %s, want %s", tt.key, got, tt.wantDetail)
			}
		})
	}
}

func mustParse(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("invalid date %q: %v", date, err)
	}
	return parsed
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
