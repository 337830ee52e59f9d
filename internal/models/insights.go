package models

import (
	"time"

	"github.com/lumina-app/backend/internal/analytics"
)

// Metric names used across insights responses. They double as the value
// keys the analytics engine reads from entry records.
const (
	MetricMood   = "score"
	MetricSleep  = "hours"
	MetricStress = "level"
)

// MetricSummary summarizes one metric over the requested window
type MetricSummary struct {
	Metric  string  `json:"metric"`
	Entries int     `json:"entries"`
	Average float64 `json:"average"`
	StdDev  float64 `json:"std_dev"`
	Trend   string  `json:"trend"`   // increasing, decreasing, stable
	Outlook string  `json:"outlook"` // improving, declining, stable
	Streak  int     `json:"streak"`  // consecutive days ending today
}

// InsightsSummary is the top-level insights response
type InsightsSummary struct {
	Mood       *MetricSummary `json:"mood,omitempty"`
	Sleep      *MetricSummary `json:"sleep,omitempty"`
	Stress     *MetricSummary `json:"stress,omitempty"`
	ComputedAt time.Time      `json:"computed_at"`
}

// TrendSeries is a bucketed time series for one metric
type TrendSeries struct {
	Metric      string                      `json:"metric"`
	Granularity string                      `json:"granularity"` // day, week, month
	Points      []analytics.AggregatedPoint `json:"points"`
	Trend       string                      `json:"trend"`
	Outlook     string                      `json:"outlook"`
}

// CorrelationInsight reports how two metrics move together
type CorrelationInsight struct {
	MetricA     string  `json:"metric_a"`
	MetricB     string  `json:"metric_b"`
	Coefficient float64 `json:"coefficient"` // Pearson r in [-1, 1]
	SampleSize  int     `json:"sample_size"` // paired days
	Strength    string  `json:"strength"`    // strong, moderate, weak, none
	Direction   string  `json:"direction"`   // positive, negative, neutral
}

// PatternsResponse reports weekday and time-of-day averages for one metric
type PatternsResponse struct {
	Metric    string                    `json:"metric"`
	Weekdays  []analytics.BucketAverage `json:"weekdays"`
	TimeOfDay []analytics.BucketAverage `json:"time_of_day"`
}

// DistributionResponse reports how a metric's values spread across ranges
type DistributionResponse struct {
	Metric  string                         `json:"metric"`
	Buckets []analytics.DistributionBucket `json:"buckets"`
}
