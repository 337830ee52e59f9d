package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Trend is the numeric direction of a metric over time. It is
// polarity-agnostic: whether an increase is good depends on the metric and
// is resolved by Outlook at the presentation boundary.
type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// Outlook is a trend interpreted through a metric's polarity.
type Outlook string

const (
	OutlookImproving Outlook = "improving"
	OutlookDeclining Outlook = "declining"
	OutlookStable    Outlook = "stable"
)

// DefaultTrendThreshold is the minimum mean difference between the older and
// newer half of a series for the trend to count as a real move.
const DefaultTrendThreshold = 0.5

// minTrendEntries is the fewest entries a trend can be computed from.
const minTrendEntries = 3

// minCorrelationPairs is the fewest paired points Pearson correlation
// accepts before reporting 0.
const minCorrelationPairs = 3

// DetectTrend sorts entries by timestamp, splits them into an older half of
// floor(n/2) entries and a newer half of the rest, and compares the halves'
// means against the threshold. Fewer than 3 entries is always stable.
func DetectTrend(entries []Entry, key string, threshold float64) (Trend, error) {
	if len(entries) < minTrendEntries {
		return TrendStable, nil
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	values := make([]float64, len(sorted))
	for i, e := range sorted {
		v, ok := e.Values[key]
		if !ok {
			return TrendStable, fmt.Errorf("%w: entry at %s has no value for %q", ErrInvalidInput, e.Timestamp.Format(time.RFC3339), key)
		}
		values[i] = v
	}

	half := len(values) / 2
	firstMean := mean(values[:half])
	secondMean := mean(values[half:])

	switch {
	case secondMean-firstMean > threshold:
		return TrendIncreasing, nil
	case firstMean-secondMean > threshold:
		return TrendDecreasing, nil
	default:
		return TrendStable, nil
	}
}

// TrendOutlook maps a numeric trend onto the metric's wellbeing direction.
// For mood and sleep an increase is good (positiveIsGood true); for stress
// an increase is a decline.
func TrendOutlook(t Trend, positiveIsGood bool) Outlook {
	switch t {
	case TrendIncreasing:
		if positiveIsGood {
			return OutlookImproving
		}
		return OutlookDeclining
	case TrendDecreasing:
		if positiveIsGood {
			return OutlookDeclining
		}
		return OutlookImproving
	default:
		return OutlookStable
	}
}

// Streak counts consecutive calendar days with at least one entry, walking
// backward from now's calendar date. Time of day is ignored. A day without
// an entry for today means the streak is 0 regardless of past history; this
// is the strict must-be-active-today definition, not "most recent N
// consecutive days".
func Streak(entries []Entry, now time.Time) int {
	days := make(map[string]bool, len(entries))
	for _, e := range entries {
		days[e.Timestamp.Format("2006-01-02")] = true
	}

	streak := 0
	for day := now; days[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
		streak++
	}

	return streak
}

// StandardDeviation computes the population standard deviation (divide by n)
// of a value key, rounded to 2 decimals. Fewer than 2 entries yields 0.
func StandardDeviation(entries []Entry, key string) (float64, error) {
	if len(entries) < 2 {
		return 0, nil
	}

	values := make([]float64, len(entries))
	for i, e := range entries {
		v, ok := e.Values[key]
		if !ok {
			return 0, fmt.Errorf("%w: entry at %s has no value for %q", ErrInvalidInput, e.Timestamp.Format(time.RFC3339), key)
		}
		values[i] = v
	}

	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}

	return round2(math.Sqrt(sumSq / float64(len(values)))), nil
}

// PearsonCorrelation computes the Pearson coefficient between two value keys
// over the entries that carry both. Fewer than 3 paired points, or zero
// variance in either series, reports 0 rather than NaN; degenerate series
// deliberately read as "no correlation".
func PearsonCorrelation(entries []Entry, keyA, keyB string) float64 {
	var xs, ys []float64
	for _, e := range entries {
		x, okX := e.Values[keyA]
		y, okY := e.Values[keyB]
		if okX && okY {
			xs = append(xs, x)
			ys = append(ys, y)
		}
	}

	n := len(xs)
	if n < minCorrelationPairs {
		return 0
	}

	meanX := mean(xs)
	meanY := mean(ys)

	var numerator, denomX, denomY float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		numerator += dx * dy
		denomX += dx * dx
		denomY += dy * dy
	}

	if denomX == 0 || denomY == 0 {
		return 0
	}

	return numerator / math.Sqrt(denomX*denomY)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
