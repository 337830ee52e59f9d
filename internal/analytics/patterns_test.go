package analytics

import (
	"errors"
	"testing"
)

func TestWeekdayAverages_Empty(t *testing.T) {
	averages, err := WeekdayAverages(nil, "score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(averages) != 7 {
		t.Fatalf("expected 7 weekday rows, got %d", len(averages))
	}
	if averages[0].Name != "Sunday" || averages[6].Name != "Saturday" {
		t.Errorf("expected Sunday through Saturday, got %s through %s", averages[0].Name, averages[6].Name)
	}
	for _, avg := range averages {
		if avg.Value != 0 || avg.Entries != 0 {
			t.Errorf("expected zero-filled row for %s, got %+v", avg.Name, avg)
		}
	}
}

func TestWeekdayAverages(t *testing.T) {
	// 2026-03-02 is a Monday, 2026-03-09 the following Monday.
	entries := []Entry{
		entryAt("2026-03-02T10:00:00Z", "score", 4),
		entryAt("2026-03-09T10:00:00Z", "score", 6),
		entryAt("2026-03-04T10:00:00Z", "score", 8),
	}

	averages, err := WeekdayAverages(entries, "score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	monday := averages[1]
	if monday.Name != "Monday" || monday.Value != 5.0 || monday.Entries != 2 {
		t.Errorf("unexpected Monday row: %+v", monday)
	}

	wednesday := averages[3]
	if wednesday.Name != "Wednesday" || wednesday.Value != 8.0 || wednesday.Entries != 1 {
		t.Errorf("unexpected Wednesday row: %+v", wednesday)
	}

	if averages[5].Entries != 0 {
		t.Errorf("expected no Friday data, got %+v", averages[5])
	}
}

func TestTimeOfDayAverages(t *testing.T) {
	entries := []Entry{
		entryAt("2026-03-02T05:00:00Z", "score", 4), // Morning lower bound
		entryAt("2026-03-02T11:00:00Z", "score", 6), // Morning upper bound
		entryAt("2026-03-02T14:00:00Z", "score", 7), // Afternoon
		entryAt("2026-03-02T21:00:00Z", "score", 5), // Evening upper bound
		entryAt("2026-03-02T23:00:00Z", "score", 3), // Night
		entryAt("2026-03-02T02:00:00Z", "score", 5), // Night wraps midnight
	}

	averages, err := TimeOfDayAverages(entries, "score")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(averages) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(averages))
	}

	if averages[0].Name != "Morning" || averages[0].Value != 5.0 || averages[0].Entries != 2 {
		t.Errorf("unexpected Morning slot: %+v", averages[0])
	}
	if averages[1].Name != "Afternoon" || averages[1].Entries != 1 {
		t.Errorf("unexpected Afternoon slot: %+v", averages[1])
	}
	if averages[2].Name != "Evening" || averages[2].Entries != 1 {
		t.Errorf("unexpected Evening slot: %+v", averages[2])
	}
	if averages[3].Name != "Night" || averages[3].Value != 4.0 || averages[3].Entries != 2 {
		t.Errorf("unexpected Night slot: %+v", averages[3])
	}
}

func TestDistributionBuckets(t *testing.T) {
	entries := []Entry{
		entryAt("2026-03-01T10:00:00Z", "score", 1),
		entryAt("2026-03-02T10:00:00Z", "score", 2),
		entryAt("2026-03-03T10:00:00Z", "score", 5),
		entryAt("2026-03-04T10:00:00Z", "score", 10),
	}

	ranges := []ValueRange{{1, 2}, {3, 4}, {5, 6}, {7, 8}, {9, 10}}
	labels := []string{"Very Low", "Low", "Moderate", "Good", "Excellent"}

	buckets, err := DistributionBuckets(entries, "score", ranges, labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buckets[0].Count != 2 || buckets[0].Percentage != 50 {
		t.Errorf("unexpected Very Low bucket: %+v", buckets[0])
	}
	if buckets[1].Count != 0 || buckets[1].Percentage != 0 {
		t.Errorf("unexpected Low bucket: %+v", buckets[1])
	}
	if buckets[2].Count != 1 || buckets[2].Percentage != 25 {
		t.Errorf("unexpected Moderate bucket: %+v", buckets[2])
	}
	if buckets[4].Count != 1 || buckets[4].Percentage != 25 {
		t.Errorf("unexpected Excellent bucket: %+v", buckets[4])
	}
}

func TestDistributionBuckets_OverlappingRangesFirstWins(t *testing.T) {
	entries := []Entry{entryAt("2026-03-01T10:00:00Z", "score", 3)}

	ranges := []ValueRange{{1, 5}, {3, 10}}
	labels := []string{"low", "high"}

	buckets, err := DistributionBuckets(entries, "score", ranges, labels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if buckets[0].Count != 1 || buckets[1].Count != 0 {
		t.Errorf("expected first matching range to win, got %+v", buckets)
	}
}

func TestDistributionBuckets_MismatchedLabels(t *testing.T) {
	_, err := DistributionBuckets(nil, "score", []ValueRange{{1, 2}}, []string{"a", "b"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for mismatched ranges and labels, got %v", err)
	}
}
