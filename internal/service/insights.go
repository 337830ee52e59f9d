package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/lumina-app/backend/internal/analytics"
	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/internal/repository"
)

// Correlation strength thresholds on |r|
const (
	CorrelationStrong   = 0.7
	CorrelationModerate = 0.5
	CorrelationWeak     = 0.2
)

// DefaultInsightWindowDays is the lookback window when the caller does not
// specify one
const DefaultInsightWindowDays = 30

// metricPositiveIsGood maps each metric to its polarity: a rising mood score
// or sleep hours is an improvement, a rising stress level is a decline.
var metricPositiveIsGood = map[string]bool{
	"mood":   true,
	"sleep":  true,
	"stress": false,
}

type insightsService struct {
	moodRepo   repository.MoodRepository
	sleepRepo  repository.SleepRepository
	stressRepo repository.StressRepository

	// now is injectable so streak and window tests can pin the clock
	now func() time.Time
}

// NewInsightsService creates a new insights service
func NewInsightsService(moodRepo repository.MoodRepository, sleepRepo repository.SleepRepository, stressRepo repository.StressRepository) InsightsService {
	return &insightsService{
		moodRepo:   moodRepo,
		sleepRepo:  sleepRepo,
		stressRepo: stressRepo,
		now:        time.Now,
	}
}

func (s *insightsService) GetSummary(ctx context.Context, userID string, days int) (*models.InsightsSummary, error) {
	if days <= 0 {
		days = DefaultInsightWindowDays
	}
	now := s.now()
	start := now.AddDate(0, 0, -days)

	moodEntries, sleepEntries, stressEntries, err := s.fetchWindow(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}

	summary := &models.InsightsSummary{ComputedAt: now}

	if summary.Mood, err = buildMetricSummary("mood", models.MetricMood, moodAnalyticsEntries(moodEntries), now); err != nil {
		return nil, err
	}
	if summary.Sleep, err = buildMetricSummary("sleep", models.MetricSleep, sleepAnalyticsEntries(sleepEntries), now); err != nil {
		return nil, err
	}
	if summary.Stress, err = buildMetricSummary("stress", models.MetricStress, stressAnalyticsEntries(stressEntries), now); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *insightsService) GetTrends(ctx context.Context, userID, metric string, granularity analytics.Granularity, start, end time.Time) (*models.TrendSeries, error) {
	if end.IsZero() {
		end = s.now()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -DefaultInsightWindowDays)
	}

	entries, key, err := s.metricEntries(ctx, userID, metric, start, end)
	if err != nil {
		return nil, err
	}

	points, err := analytics.GroupByPeriod(entries, key, granularity)
	if err != nil {
		return nil, fmt.Errorf("failed to bucket %s entries: %w", metric, err)
	}

	trend, err := analytics.DetectTrend(entries, key, analytics.DefaultTrendThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s trend: %w", metric, err)
	}

	return &models.TrendSeries{
		Metric:      metric,
		Granularity: string(granularity),
		Points:      points,
		Trend:       string(trend),
		Outlook:     string(analytics.TrendOutlook(trend, metricPositiveIsGood[metric])),
	}, nil
}

func (s *insightsService) GetCorrelations(ctx context.Context, userID string, days int) ([]models.CorrelationInsight, error) {
	if days <= 0 {
		days = DefaultInsightWindowDays
	}
	now := s.now()
	start := now.AddDate(0, 0, -days)

	moodEntries, sleepEntries, stressEntries, err := s.fetchWindow(ctx, userID, start, now)
	if err != nil {
		return nil, err
	}

	// Correlations run over daily means so a day with three mood check-ins
	// pairs with that night's sleep exactly once
	daily := mergeDailyAverages(map[string][]analytics.Entry{
		models.MetricMood:   moodAnalyticsEntries(moodEntries),
		models.MetricSleep:  sleepAnalyticsEntries(sleepEntries),
		models.MetricStress: stressAnalyticsEntries(stressEntries),
	})

	pairs := []struct {
		nameA, keyA string
		nameB, keyB string
	}{
		{"mood", models.MetricMood, "sleep", models.MetricSleep},
		{"mood", models.MetricMood, "stress", models.MetricStress},
		{"sleep", models.MetricSleep, "stress", models.MetricStress},
	}

	insights := make([]models.CorrelationInsight, 0, len(pairs))
	for _, p := range pairs {
		r := analytics.PearsonCorrelation(daily, p.keyA, p.keyB)
		insights = append(insights, models.CorrelationInsight{
			MetricA:     p.nameA,
			MetricB:     p.nameB,
			Coefficient: math.Round(r*100) / 100,
			SampleSize:  countPairedDays(daily, p.keyA, p.keyB),
			Strength:    correlationStrength(r),
			Direction:   correlationDirection(r),
		})
	}

	return insights, nil
}

func (s *insightsService) GetPatterns(ctx context.Context, userID, metric string, days int) (*models.PatternsResponse, error) {
	if days <= 0 {
		days = DefaultInsightWindowDays
	}
	now := s.now()
	start := now.AddDate(0, 0, -days)

	entries, key, err := s.metricEntries(ctx, userID, metric, start, now)
	if err != nil {
		return nil, err
	}

	weekdays, err := analytics.WeekdayAverages(entries, key)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weekday averages: %w", err)
	}

	timeOfDay, err := analytics.TimeOfDayAverages(entries, key)
	if err != nil {
		return nil, fmt.Errorf("failed to compute time-of-day averages: %w", err)
	}

	return &models.PatternsResponse{
		Metric:    metric,
		Weekdays:  weekdays,
		TimeOfDay: timeOfDay,
	}, nil
}

func (s *insightsService) GetMoodDistribution(ctx context.Context, userID string, days int) (*models.DistributionResponse, error) {
	if days <= 0 {
		days = DefaultInsightWindowDays
	}
	now := s.now()
	start := now.AddDate(0, 0, -days)

	entries, err := s.moodRepo.GetByUserIDAndDateRange(ctx, userID, start, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	ranges := []analytics.ValueRange{
		{Min: 1, Max: 2},
		{Min: 3, Max: 4},
		{Min: 5, Max: 6},
		{Min: 7, Max: 8},
		{Min: 9, Max: 10},
	}
	labels := []string{"Very Low", "Low", "Moderate", "Good", "Excellent"}

	buckets, err := analytics.DistributionBuckets(moodAnalyticsEntries(entries), models.MetricMood, ranges, labels)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mood distribution: %w", err)
	}

	return &models.DistributionResponse{Metric: "mood", Buckets: buckets}, nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *insightsService) fetchWindow(ctx context.Context, userID string, start, end time.Time) ([]models.MoodEntry, []models.SleepEntry, []models.StressEntry, error) {
	moodEntries, err := s.moodRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	sleepEntries, err := s.sleepRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get sleep entries: %w", err)
	}

	stressEntries, err := s.stressRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to get stress entries: %w", err)
	}

	return moodEntries, sleepEntries, stressEntries, nil
}

func (s *insightsService) metricEntries(ctx context.Context, userID, metric string, start, end time.Time) ([]analytics.Entry, string, error) {
	switch metric {
	case "mood":
		entries, err := s.moodRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get mood entries: %w", err)
		}
		return moodAnalyticsEntries(entries), models.MetricMood, nil
	case "sleep":
		entries, err := s.sleepRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get sleep entries: %w", err)
		}
		return sleepAnalyticsEntries(entries), models.MetricSleep, nil
	case "stress":
		entries, err := s.stressRepo.GetByUserIDAndDateRange(ctx, userID, start, end)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get stress entries: %w", err)
		}
		return stressAnalyticsEntries(entries), models.MetricStress, nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
	}
}

func buildMetricSummary(metric, key string, entries []analytics.Entry, now time.Time) (*models.MetricSummary, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	var sum float64
	for _, e := range entries {
		sum += e.Values[key]
	}

	stdDev, err := analytics.StandardDeviation(entries, key)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s deviation: %w", metric, err)
	}

	trend, err := analytics.DetectTrend(entries, key, analytics.DefaultTrendThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s trend: %w", metric, err)
	}

	return &models.MetricSummary{
		Metric:  metric,
		Entries: len(entries),
		Average: math.Round(sum/float64(len(entries))*10) / 10,
		StdDev:  stdDev,
		Trend:   string(trend),
		Outlook: string(analytics.TrendOutlook(trend, metricPositiveIsGood[metric])),
		Streak:  analytics.Streak(entries, now),
	}, nil
}

func moodAnalyticsEntries(entries []models.MoodEntry) []analytics.Entry {
	out := make([]analytics.Entry, len(entries))
	for i, e := range entries {
		out[i] = analytics.Entry{
			Timestamp: e.Timestamp,
			Values:    map[string]float64{models.MetricMood: e.Score},
		}
	}
	return out
}

func sleepAnalyticsEntries(entries []models.SleepEntry) []analytics.Entry {
	out := make([]analytics.Entry, len(entries))
	for i, e := range entries {
		out[i] = analytics.Entry{
			Timestamp: e.Timestamp,
			Values:    map[string]float64{models.MetricSleep: e.Hours},
		}
	}
	return out
}

func stressAnalyticsEntries(entries []models.StressEntry) []analytics.Entry {
	out := make([]analytics.Entry, len(entries))
	for i, e := range entries {
		out[i] = analytics.Entry{
			Timestamp: e.Timestamp,
			Values:    map[string]float64{models.MetricStress: e.Level},
		}
	}
	return out
}

// mergeDailyAverages collapses each metric to one mean value per calendar
// day, then merges the days into entries carrying every metric recorded
// that day.
func mergeDailyAverages(byKey map[string][]analytics.Entry) []analytics.Entry {
	type acc struct {
		sum   float64
		count int
	}

	days := make(map[string]map[string]*acc) // date -> key -> accumulator
	for key, entries := range byKey {
		for _, e := range entries {
			date := e.Timestamp.Format("2006-01-02")
			if days[date] == nil {
				days[date] = make(map[string]*acc)
			}
			if days[date][key] == nil {
				days[date][key] = &acc{}
			}
			days[date][key].sum += e.Values[key]
			days[date][key].count++
		}
	}

	merged := make([]analytics.Entry, 0, len(days))
	for date, metrics := range days {
		t, _ := time.Parse("2006-01-02", date)
		values := make(map[string]float64, len(metrics))
		for key, a := range metrics {
			values[key] = a.sum / float64(a.count)
		}
		merged = append(merged, analytics.Entry{Timestamp: t, Values: values})
	}

	return merged
}

func countPairedDays(entries []analytics.Entry, keyA, keyB string) int {
	n := 0
	for _, e := range entries {
		_, okA := e.Values[keyA]
		_, okB := e.Values[keyB]
		if okA && okB {
			n++
		}
	}
	return n
}

func correlationStrength(r float64) string {
	abs := math.Abs(r)
	switch {
	case abs >= CorrelationStrong:
		return "strong"
	case abs >= CorrelationModerate:
		return "moderate"
	case abs > CorrelationWeak:
		return "weak"
	default:
		return "none"
	}
}

func correlationDirection(r float64) string {
	switch {
	case r > CorrelationWeak:
		return "positive"
	case r < -CorrelationWeak:
		return "negative"
	default:
		return "neutral"
	}
}
