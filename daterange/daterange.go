package daterange

import (
	"time"

	"github.com/enzo-prism/analytics/model"
)

const dateLayout = "2006-01-02"

// DefaultWindow is used whenever a requested window key is not recognized.
const DefaultWindow = "d7"

// windowDays maps a window key to its length in days.
var windowDays = map[string]int{
	"d1":   1,
	"d7":   7,
	"d28":  28,
	"d90":  90,
	"d180": 180,
	"d365": 365,
}

// dashboardWindows is the subset of windows the aggregate view offers.
var dashboardWindows = map[string]bool{
	"d7":  true,
	"d28": true,
	"d90": true,
}

// Ranges holds the comparison windows of one report: two contiguous,
// non-overlapping date ranges of equal length.
type Ranges struct {
	Current  model.DateRange
	Previous model.DateRange
	Days     int
}

// NormalizeDashboardWindow maps a requested window key to one the aggregate
// view supports, falling back to the default window.
func NormalizeDashboardWindow(key string) string {
	if dashboardWindows[key] {
		return key
	}
	return DefaultWindow
}

// NormalizeDetailWindow maps a requested window key to one the detail view
// supports, falling back to the default window.
func NormalizeDetailWindow(key string) string {
	if _, ok := windowDays[key]; ok {
		return key
	}
	return DefaultWindow
}

// Days returns the window length for a key, defaulting to the 7-day window.
func Days(windowKey string) int {
	if d, ok := windowDays[windowKey]; ok {
		return d
	}
	return windowDays[DefaultWindow]
}

// ComputeRanges derives the current and previous comparison windows for a
// window key. The current window ends at UTC yesterday; the previous window
// is the equal-length range immediately before it.
func ComputeRanges(now time.Time, windowKey string) Ranges {
	days := Days(windowKey)

	utc := now.UTC()
	today := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)

	currentEnd := today.AddDate(0, 0, -1)
	currentStart := currentEnd.AddDate(0, 0, -(days - 1))
	previousEnd := currentStart.AddDate(0, 0, -1)
	previousStart := previousEnd.AddDate(0, 0, -(days - 1))

	return Ranges{
		Current: model.DateRange{
			StartDate: currentStart.Format(dateLayout),
			EndDate:   currentEnd.Format(dateLayout),
		},
		Previous: model.DateRange{
			StartDate: previousStart.Format(dateLayout),
			EndDate:   previousEnd.Format(dateLayout),
		},
		Days: days,
	}
}

// BuildDateList enumerates days consecutive calendar dates starting at
// startDate, for zero-filling daily series. Returns nil if startDate is not
// a valid "YYYY-MM-DD" date.
func BuildDateList(startDate string, days int) []string {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil || days <= 0 {
		return nil
	}

	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}
