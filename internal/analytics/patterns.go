package analytics

import (
	"fmt"
	"math"
	"time"
)

// BucketAverage is one fixed bucket (weekday or time-of-day slot) with the
// mean of a value key. Buckets with no data report value 0 and entries 0.
type BucketAverage struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Entries int     `json:"entries"`
}

var weekdayNames = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// timeOfDaySlots are the four fixed local-hour slots. Night wraps midnight.
var timeOfDaySlots = []string{"Morning", "Afternoon", "Evening", "Night"}

// WeekdayAverages computes the mean of a value key per weekday. The result
// always has exactly 7 rows, Sunday through Saturday, zero-filled for
// weekdays without data.
func WeekdayAverages(entries []Entry, key string) ([]BucketAverage, error) {
	sums := make([]float64, 7)
	counts := make([]int, 7)

	for _, e := range entries {
		v, ok := e.Values[key]
		if !ok {
			return nil, fmt.Errorf("%w: entry at %s has no value for %q", ErrInvalidInput, e.Timestamp.Format(time.RFC3339), key)
		}
		day := int(e.Timestamp.Weekday())
		sums[day] += v
		counts[day]++
	}

	averages := make([]BucketAverage, 7)
	for i := range averages {
		averages[i] = BucketAverage{Name: weekdayNames[i], Entries: counts[i]}
		if counts[i] > 0 {
			averages[i].Value = round1(sums[i] / float64(counts[i]))
		}
	}

	return averages, nil
}

// TimeOfDayAverages computes the mean of a value key per time-of-day slot:
// Morning 5-11, Afternoon 12-16, Evening 17-21, Night 22-4 by local hour.
// All four slots are always present.
func TimeOfDayAverages(entries []Entry, key string) ([]BucketAverage, error) {
	sums := make([]float64, len(timeOfDaySlots))
	counts := make([]int, len(timeOfDaySlots))

	for _, e := range entries {
		v, ok := e.Values[key]
		if !ok {
			return nil, fmt.Errorf("%w: entry at %s has no value for %q", ErrInvalidInput, e.Timestamp.Format(time.RFC3339), key)
		}
		slot := timeOfDaySlot(e.Timestamp.Hour())
		sums[slot] += v
		counts[slot]++
	}

	averages := make([]BucketAverage, len(timeOfDaySlots))
	for i := range averages {
		averages[i] = BucketAverage{Name: timeOfDaySlots[i], Entries: counts[i]}
		if counts[i] > 0 {
			averages[i].Value = round1(sums[i] / float64(counts[i]))
		}
	}

	return averages, nil
}

func timeOfDaySlot(hour int) int {
	switch {
	case hour >= 5 && hour <= 11:
		return 0 // Morning
	case hour >= 12 && hour <= 16:
		return 1 // Afternoon
	case hour >= 17 && hour <= 21:
		return 2 // Evening
	default:
		return 3 // Night, 22:00 through 04:59
	}
}

// ValueRange is an inclusive [Min, Max] numeric range.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DistributionBucket is one range of a value distribution.
type DistributionBucket struct {
	Range      ValueRange `json:"range"`
	Label      string     `json:"label"`
	Count      int        `json:"count"`
	Percentage int        `json:"percentage"`
}

// DistributionBuckets counts entries per inclusive range. A value matching
// several overlapping ranges is counted in the first matching range only.
// Percentages are whole numbers; 0 when there is no data.
func DistributionBuckets(entries []Entry, key string, ranges []ValueRange, labels []string) ([]DistributionBucket, error) {
	if len(ranges) != len(labels) {
		return nil, fmt.Errorf("%w: %d ranges but %d labels", ErrInvalidInput, len(ranges), len(labels))
	}

	counts := make([]int, len(ranges))
	total := 0

	for _, e := range entries {
		v, ok := e.Values[key]
		if !ok {
			return nil, fmt.Errorf("%w: entry at %s has no value for %q", ErrInvalidInput, e.Timestamp.Format(time.RFC3339), key)
		}
		total++
		for i, r := range ranges {
			if v >= r.Min && v <= r.Max {
				counts[i]++
				break
			}
		}
	}

	buckets := make([]DistributionBucket, len(ranges))
	for i := range buckets {
		buckets[i] = DistributionBucket{
			Range: ranges[i],
			Label: labels[i],
			Count: counts[i],
		}
		if total > 0 {
			buckets[i].Percentage = int(math.Round(float64(counts[i]) / float64(total) * 100))
		}
	}

	return buckets, nil
}
