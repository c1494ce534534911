package analytics

import (
	"context"
	"strconv"

	"github.com/enzo-prism/analytics/daterange"
	"github.com/enzo-prism/analytics/gaclient"
	"github.com/enzo-prism/analytics/model"
)

const newUsersMetric = "newUsers"

// DailyCount is one raw row of a daily report: a "YYYY-MM-DD" date and the
// new-users count for that day.
type DailyCount struct {
	Date  string
	Value int64
}

// FetchNewUsersSummary runs one report carrying both comparison windows as
// date-range buckets and maps the tagged rows onto a NewUsersDelta.
func FetchNewUsersSummary(ctx context.Context, client *gaclient.Client, token, propertyID string, ranges daterange.Ranges) (*model.NewUsersDelta, error) {
	report, err := client.RunReport(ctx, token, propertyID, gaclient.RunReportRequest{
		DateRanges: []model.DateRange{ranges.Current, ranges.Previous},
		Metrics:    []gaclient.Metric{{Name: newUsersMetric}},
	})
	if err != nil {
		return nil, err
	}

	var current, previous int64

	rows := report.Rows
	switch {
	case len(rows) == 0:
		// No data for either window: both counters stay at zero.

	case len(rows) == 1 && len(rows[0].DimensionValues) == 0 && len(rows[0].MetricValues) >= 2:
		// Some backends flatten a multi-range no-dimension query into a
		// single row whose metric values are ordered by date range.
		current = parseMetricValue(rows[0].MetricValues[0])
		previous = parseMetricValue(rows[0].MetricValues[1])

	default:
		for _, row := range rows {
			if len(row.DimensionValues) == 0 || len(row.MetricValues) == 0 {
				continue
			}
			value := parseMetricValue(row.MetricValues[0])
			switch row.DimensionValues[0].Value {
			case "date_range_0":
				current = value
			case "date_range_1":
				previous = value
			}
		}
	}

	return ComputeDelta(current, previous), nil
}

// FetchNewUsersSeries runs one report over a single window with a date
// dimension, ordered by date ascending. Compact "YYYYMMDD" dates are
// reformatted; malformed dimension values pass through unchanged.
func FetchNewUsersSeries(ctx context.Context, client *gaclient.Client, token, propertyID string, window model.DateRange) ([]DailyCount, error) {
	report, err := client.RunReport(ctx, token, propertyID, gaclient.RunReportRequest{
		DateRanges: []model.DateRange{window},
		Dimensions: []gaclient.Dimension{{Name: "date"}},
		Metrics:    []gaclient.Metric{{Name: newUsersMetric}},
		OrderBys: []gaclient.OrderBy{
			{Dimension: &gaclient.DimensionOrderBy{DimensionName: "date"}},
		},
	})
	if err != nil {
		return nil, err
	}

	counts := make([]DailyCount, 0, len(report.Rows))
	for _, row := range report.Rows {
		if len(row.DimensionValues) == 0 || len(row.MetricValues) == 0 {
			continue
		}
		counts = append(counts, DailyCount{
			Date:  formatReportDate(row.DimensionValues[0].Value),
			Value: parseMetricValue(row.MetricValues[0]),
		})
	}

	return counts, nil
}

// BuildSeries aligns the raw daily rows of both windows into one series:
// day i of the current window pairs with day i of the previous window, and
// dates absent from the raw rows are zero-filled.
func BuildSeries(ranges daterange.Ranges, current, previous []DailyCount) []model.SeriesPoint {
	currentDates := daterange.BuildDateList(ranges.Current.StartDate, ranges.Days)
	previousDates := daterange.BuildDateList(ranges.Previous.StartDate, ranges.Days)

	currentByDate := countsByDate(current)
	previousByDate := countsByDate(previous)

	series := make([]model.SeriesPoint, 0, len(currentDates))
	for i, date := range currentDates {
		point := model.SeriesPoint{
			Date:    date,
			Current: currentByDate[date],
		}
		if i < len(previousDates) {
			point.Previous = previousByDate[previousDates[i]]
		}
		series = append(series, point)
	}
	return series
}

// SeriesTotals sums the aligned series; the result matches what the
// summary-mode report computes for the same windows.
func SeriesTotals(series []model.SeriesPoint) (current, previous int64) {
	for _, point := range series {
		current += point.Current
		previous += point.Previous
	}
	return current, previous
}

// ComputeDelta derives the comparison stats of two counts. Pct is nil when
// previous is zero.
func ComputeDelta(current, previous int64) *model.NewUsersDelta {
	delta := &model.NewUsersDelta{
		Current:  current,
		Previous: previous,
		Delta:    current - previous,
	}
	if previous != 0 {
		pct := float64(delta.Delta) / float64(previous)
		delta.Pct = &pct
	}
	return delta
}

func countsByDate(counts []DailyCount) map[string]int64 {
	byDate := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Value
	}
	return byDate
}

func parseMetricValue(v gaclient.ReportValue) int64 {
	n, err := strconv.ParseInt(v.Value, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// formatReportDate turns the Data API's compact "YYYYMMDD" date dimension
// into "YYYY-MM-DD". Anything else passes through unchanged.
func formatReportDate(raw string) string {
	if len(raw) != 8 {
		return raw
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return raw
		}
	}
	return raw[0:4] + "-" + raw[4:6] + "-" + raw[6:8]
}
