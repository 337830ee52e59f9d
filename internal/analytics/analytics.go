// Package analytics is a pure-function library over timestamped wellness
// entries (mood score, sleep hours, stress level). Every function is
// side-effect free and deterministic given its inputs; functions that depend
// on the current day take an explicit now parameter so callers can pin it in
// tests.
//
// Missing data is not an error: empty inputs and empty ranges produce
// well-defined zero results. A malformed entry (one that lacks the requested
// value key) is a data-integrity problem upstream and is rejected with
// ErrInvalidInput rather than silently averaged as zero.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrInvalidInput indicates malformed input data, such as an entry missing
// the requested value key or an unknown bucketing granularity.
var ErrInvalidInput = errors.New("invalid analytics input")

// Entry is a generic timestamped measurement. Values holds the numeric
// fields of the underlying record keyed by name ("score", "hours", "level").
type Entry struct {
	Timestamp time.Time
	Values    map[string]float64
}

// Granularity selects the calendar bucket size for GroupByPeriod.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// AggregatedPoint is one calendar bucket with the mean of a value key.
type AggregatedPoint struct {
	Period  string  `json:"period"`
	Value   float64 `json:"value"`
	Entries int     `json:"entries"`
}

// FilterByDateRange returns entries with start <= timestamp <= end,
// preserving the original order. No entries in range is not an error.
func FilterByDateRange(entries []Entry, start, end time.Time) []Entry {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

// GroupByPeriod buckets entries by calendar day, week, or month and computes
// the arithmetic mean of the value key per bucket, rounded to 1 decimal.
// Output is sorted ascending by bucket key.
func GroupByPeriod(entries []Entry, key string, granularity Granularity) ([]AggregatedPoint, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, e := range entries {
		v, ok := e.Values[key]
		if !ok {
			return nil, fmt.Errorf("%w: entry at %s has no value for %q", ErrInvalidInput, e.Timestamp.Format(time.RFC3339), key)
		}

		var bucket string
		switch granularity {
		case GranularityDay:
			bucket = e.Timestamp.Format("2006-01-02")
		case GranularityWeek:
			bucket = weekKey(e.Timestamp)
		case GranularityMonth:
			bucket = e.Timestamp.Format("2006-01")
		default:
			return nil, fmt.Errorf("%w: unknown granularity %q", ErrInvalidInput, granularity)
		}

		sums[bucket] += v
		counts[bucket]++
	}

	points := make([]AggregatedPoint, 0, len(sums))
	for bucket, sum := range sums {
		points = append(points, AggregatedPoint{
			Period:  bucket,
			Value:   round1(sum / float64(counts[bucket])),
			Entries: counts[bucket],
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })

	return points, nil
}

// weekKey computes a day-of-year-based week label. Week numbering follows
// weekNumber = ceil((daysSinceJan1 + weekdayOfJan1 + 1) / 7) with Sunday as
// weekday 0, so "week 1" starts on January 1 regardless of locale.
func weekKey(t time.Time) string {
	jan1 := time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
	week := int(math.Ceil((float64(t.YearDay()-1) + float64(int(jan1.Weekday())) + 1) / 7))
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
