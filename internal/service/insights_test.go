package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lumina-app/backend/internal/analytics"
	"github.com/lumina-app/backend/internal/models"
)

// mockMoodRepository is a mock implementation of MoodRepository for testing
type mockMoodRepository struct {
	entries []models.MoodEntry
}

func (m *mockMoodRepository) Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *mockMoodRepository) GetByID(ctx context.Context, id string) (*models.MoodEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, nil
}

func (m *mockMoodRepository) GetByUserID(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	var result []models.MoodEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockMoodRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodEntry, error) {
	var result []models.MoodEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockMoodRepository) Delete(ctx context.Context, id string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// mockSleepRepository is a mock implementation of SleepRepository for testing
type mockSleepRepository struct {
	entries []models.SleepEntry
}

func (m *mockSleepRepository) Create(ctx context.Context, entry *models.SleepEntry) (*models.SleepEntry, error) {
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *mockSleepRepository) GetByID(ctx context.Context, id string) (*models.SleepEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, nil
}

func (m *mockSleepRepository) GetByUserID(ctx context.Context, userID string) ([]models.SleepEntry, error) {
	var result []models.SleepEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockSleepRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.SleepEntry, error) {
	var result []models.SleepEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockSleepRepository) Delete(ctx context.Context, id string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// mockStressRepository is a mock implementation of StressRepository for testing
type mockStressRepository struct {
	entries []models.StressEntry
}

func (m *mockStressRepository) Create(ctx context.Context, entry *models.StressEntry) (*models.StressEntry, error) {
	m.entries = append(m.entries, *entry)
	return entry, nil
}

func (m *mockStressRepository) GetByID(ctx context.Context, id string) (*models.StressEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, nil
}

func (m *mockStressRepository) GetByUserID(ctx context.Context, userID string) ([]models.StressEntry, error) {
	var result []models.StressEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockStressRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.StressEntry, error) {
	var result []models.StressEntry
	for _, e := range m.entries {
		if e.UserID == userID && !e.Timestamp.Before(start) && !e.Timestamp.After(end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockStressRepository) Delete(ctx context.Context, id string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

// pinnedNow is the reference clock for insight tests
var pinnedNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func newTestInsightsService(mood *mockMoodRepository, sleep *mockSleepRepository, stress *mockStressRepository) *insightsService {
	return &insightsService{
		moodRepo:   mood,
		sleepRepo:  sleep,
		stressRepo: stress,
		now:        func() time.Time { return pinnedNow },
	}
}

func moodAt(daysAgo int, score float64) models.MoodEntry {
	return models.MoodEntry{
		UserID:    "user-123",
		Score:     score,
		Timestamp: pinnedNow.AddDate(0, 0, -daysAgo),
	}
}

func sleepAt(daysAgo int, hours float64) models.SleepEntry {
	return models.SleepEntry{
		UserID:    "user-123",
		Hours:     hours,
		Timestamp: pinnedNow.AddDate(0, 0, -daysAgo),
	}
}

func stressAt(daysAgo int, level float64) models.StressEntry {
	return models.StressEntry{
		UserID:    "user-123",
		Level:     level,
		Timestamp: pinnedNow.AddDate(0, 0, -daysAgo),
	}
}

func TestInsightsService_GetSummary(t *testing.T) {
	mood := &mockMoodRepository{entries: []models.MoodEntry{
		moodAt(2, 4),
		moodAt(1, 6),
		moodAt(0, 8),
	}}
	svc := newTestInsightsService(mood, &mockSleepRepository{}, &mockStressRepository{})

	summary, err := svc.GetSummary(context.Background(), "user-123", 30)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.Mood == nil {
		t.Fatal("expected a mood summary")
	}
	if summary.Mood.Average != 6.0 {
		t.Errorf("expected average 6.0, got %v", summary.Mood.Average)
	}
	if summary.Mood.Entries != 3 {
		t.Errorf("expected 3 entries, got %d", summary.Mood.Entries)
	}
	if summary.Mood.Trend != string(analytics.TrendIncreasing) {
		t.Errorf("expected increasing trend, got %s", summary.Mood.Trend)
	}
	if summary.Mood.Outlook != string(analytics.OutlookImproving) {
		t.Errorf("expected improving outlook, got %s", summary.Mood.Outlook)
	}
	if summary.Mood.Streak != 3 {
		t.Errorf("expected streak of 3, got %d", summary.Mood.Streak)
	}

	// Metrics with no data are omitted entirely
	if summary.Sleep != nil || summary.Stress != nil {
		t.Error("expected nil summaries for metrics without entries")
	}
}

func TestInsightsService_GetSummary_StressPolarity(t *testing.T) {
	stress := &mockStressRepository{entries: []models.StressEntry{
		stressAt(2, 8),
		stressAt(1, 7),
		stressAt(0, 3),
	}}
	svc := newTestInsightsService(&mockMoodRepository{}, &mockSleepRepository{}, stress)

	summary, err := svc.GetSummary(context.Background(), "user-123", 30)
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	if summary.Stress == nil {
		t.Fatal("expected a stress summary")
	}
	if summary.Stress.Trend != string(analytics.TrendDecreasing) {
		t.Errorf("expected decreasing trend, got %s", summary.Stress.Trend)
	}
	// Falling stress reads as an improvement
	if summary.Stress.Outlook != string(analytics.OutlookImproving) {
		t.Errorf("expected improving outlook, got %s", summary.Stress.Outlook)
	}
}

func TestInsightsService_GetTrends_UnknownMetric(t *testing.T) {
	svc := newTestInsightsService(&mockMoodRepository{}, &mockSleepRepository{}, &mockStressRepository{})

	_, err := svc.GetTrends(context.Background(), "user-123", "steps", analytics.GranularityDay, pinnedNow.AddDate(0, 0, -7), pinnedNow)
	if !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestInsightsService_GetTrends(t *testing.T) {
	sleep := &mockSleepRepository{entries: []models.SleepEntry{
		sleepAt(3, 5),
		sleepAt(2, 6),
		sleepAt(1, 8),
		sleepAt(0, 9),
	}}
	svc := newTestInsightsService(&mockMoodRepository{}, sleep, &mockStressRepository{})

	series, err := svc.GetTrends(context.Background(), "user-123", "sleep", analytics.GranularityDay, pinnedNow.AddDate(0, 0, -7), pinnedNow)
	if err != nil {
		t.Fatalf("GetTrends failed: %v", err)
	}

	if series.Metric != "sleep" || series.Granularity != "day" {
		t.Errorf("unexpected series header: %+v", series)
	}
	if len(series.Points) != 4 {
		t.Errorf("expected 4 daily points, got %d", len(series.Points))
	}
	if series.Trend != string(analytics.TrendIncreasing) {
		t.Errorf("expected increasing trend, got %s", series.Trend)
	}
	if series.Outlook != string(analytics.OutlookImproving) {
		t.Errorf("expected improving outlook, got %s", series.Outlook)
	}
}

func TestInsightsService_GetTrends_DefaultWindow(t *testing.T) {
	mood := &mockMoodRepository{entries: []models.MoodEntry{
		moodAt(45, 2), // outside the default 30 day window
		moodAt(5, 4),
		moodAt(3, 6),
		moodAt(1, 8),
	}}
	svc := newTestInsightsService(mood, &mockSleepRepository{}, &mockStressRepository{})

	// Zero times must resolve against the service clock, not the wall clock
	series, err := svc.GetTrends(context.Background(), "user-123", "mood", analytics.GranularityDay, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetTrends failed: %v", err)
	}

	if len(series.Points) != 3 {
		t.Errorf("expected 3 daily points inside the default window, got %d", len(series.Points))
	}
	if series.Trend != string(analytics.TrendIncreasing) {
		t.Errorf("expected increasing trend, got %s", series.Trend)
	}
}

func TestInsightsService_GetCorrelations(t *testing.T) {
	// Mood tracks sleep exactly and opposes stress exactly
	mood := &mockMoodRepository{entries: []models.MoodEntry{
		moodAt(3, 2), moodAt(2, 4), moodAt(1, 6), moodAt(0, 8),
	}}
	sleep := &mockSleepRepository{entries: []models.SleepEntry{
		sleepAt(3, 5), sleepAt(2, 6), sleepAt(1, 7), sleepAt(0, 8),
	}}
	stress := &mockStressRepository{entries: []models.StressEntry{
		stressAt(3, 9), stressAt(2, 7), stressAt(1, 5), stressAt(0, 3),
	}}
	svc := newTestInsightsService(mood, sleep, stress)

	insights, err := svc.GetCorrelations(context.Background(), "user-123", 30)
	if err != nil {
		t.Fatalf("GetCorrelations failed: %v", err)
	}

	if len(insights) != 3 {
		t.Fatalf("expected 3 metric pairs, got %d", len(insights))
	}

	byPair := make(map[string]models.CorrelationInsight)
	for _, ins := range insights {
		byPair[ins.MetricA+"/"+ins.MetricB] = ins
	}

	moodSleep := byPair["mood/sleep"]
	if moodSleep.Coefficient != 1.0 || moodSleep.Strength != "strong" || moodSleep.Direction != "positive" {
		t.Errorf("unexpected mood/sleep correlation: %+v", moodSleep)
	}
	if moodSleep.SampleSize != 4 {
		t.Errorf("expected 4 paired days, got %d", moodSleep.SampleSize)
	}

	moodStress := byPair["mood/stress"]
	if moodStress.Coefficient != -1.0 || moodStress.Direction != "negative" {
		t.Errorf("unexpected mood/stress correlation: %+v", moodStress)
	}
}

func TestInsightsService_GetCorrelations_AveragesSameDay(t *testing.T) {
	// Two mood check-ins on the same day must pair with that day's sleep once
	mood := &mockMoodRepository{entries: []models.MoodEntry{
		moodAt(2, 2), moodAt(2, 6), // daily mean 4
		moodAt(1, 5),
		moodAt(0, 6),
	}}
	sleep := &mockSleepRepository{entries: []models.SleepEntry{
		sleepAt(2, 6), sleepAt(1, 7), sleepAt(0, 8),
	}}
	svc := newTestInsightsService(mood, sleep, &mockStressRepository{})

	insights, err := svc.GetCorrelations(context.Background(), "user-123", 30)
	if err != nil {
		t.Fatalf("GetCorrelations failed: %v", err)
	}

	for _, ins := range insights {
		if ins.MetricA == "mood" && ins.MetricB == "sleep" {
			if ins.SampleSize != 3 {
				t.Errorf("expected 3 paired days, got %d", ins.SampleSize)
			}
			if ins.Coefficient != 1.0 {
				t.Errorf("expected coefficient 1.0 over daily means, got %v", ins.Coefficient)
			}
		}
	}
}

func TestInsightsService_GetPatterns(t *testing.T) {
	mood := &mockMoodRepository{entries: []models.MoodEntry{
		moodAt(0, 6),
		moodAt(1, 8),
	}}
	svc := newTestInsightsService(mood, &mockSleepRepository{}, &mockStressRepository{})

	patterns, err := svc.GetPatterns(context.Background(), "user-123", "mood", 30)
	if err != nil {
		t.Fatalf("GetPatterns failed: %v", err)
	}

	if patterns.Metric != "mood" {
		t.Errorf("expected mood metric, got %s", patterns.Metric)
	}
	if len(patterns.Weekdays) != 7 {
		t.Errorf("expected 7 weekday rows, got %d", len(patterns.Weekdays))
	}
	if len(patterns.TimeOfDay) != 4 {
		t.Errorf("expected 4 time-of-day slots, got %d", len(patterns.TimeOfDay))
	}
}

func TestInsightsService_GetMoodDistribution(t *testing.T) {
	mood := &mockMoodRepository{entries: []models.MoodEntry{
		moodAt(0, 1), moodAt(1, 2), moodAt(2, 5), moodAt(3, 10),
	}}
	svc := newTestInsightsService(mood, &mockSleepRepository{}, &mockStressRepository{})

	dist, err := svc.GetMoodDistribution(context.Background(), "user-123", 30)
	if err != nil {
		t.Fatalf("GetMoodDistribution failed: %v", err)
	}

	if len(dist.Buckets) != 5 {
		t.Fatalf("expected 5 buckets, got %d", len(dist.Buckets))
	}
	if dist.Buckets[0].Label != "Very Low" || dist.Buckets[0].Count != 2 {
		t.Errorf("unexpected first bucket: %+v", dist.Buckets[0])
	}
	if dist.Buckets[4].Label != "Excellent" || dist.Buckets[4].Count != 1 {
		t.Errorf("unexpected last bucket: %+v", dist.Buckets[4])
	}
}
