package service

import (
	"context"
	"time"

	"github.com/lumina-app/backend/internal/analytics"
	"github.com/lumina-app/backend/internal/models"
)

// TrackingService defines the interface for mood, sleep, and stress
// check-in business logic
type TrackingService interface {
	CreateMoodEntry(ctx context.Context, userID string, req *models.CreateMoodEntryRequest) (*models.MoodEntry, error)
	GetMoodEntries(ctx context.Context, userID string) ([]models.MoodEntry, error)
	DeleteMoodEntry(ctx context.Context, userID, entryID string) error

	CreateSleepEntry(ctx context.Context, userID string, req *models.CreateSleepEntryRequest) (*models.SleepEntry, error)
	GetSleepEntries(ctx context.Context, userID string) ([]models.SleepEntry, error)
	DeleteSleepEntry(ctx context.Context, userID, entryID string) error

	CreateStressEntry(ctx context.Context, userID string, req *models.CreateStressEntryRequest) (*models.StressEntry, error)
	GetStressEntries(ctx context.Context, userID string) ([]models.StressEntry, error)
	DeleteStressEntry(ctx context.Context, userID, entryID string) error
}

// JournalService defines the interface for journal business logic. Entries
// returned from it always carry plaintext title and content; encryption and
// decryption happen inside.
type JournalService interface {
	CreateEntry(ctx context.Context, userID string, req *models.CreateJournalEntryRequest) (*models.JournalEntry, error)
	GetEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error)
	GetUserEntries(ctx context.Context, userID string) ([]models.JournalEntry, error)
	UpdateEntry(ctx context.Context, userID, entryID string, req *models.UpdateJournalEntryRequest) (*models.JournalEntry, error)
	DeleteEntry(ctx context.Context, userID, entryID string) error
}

// InsightsService defines the interface for locally computed insights. A
// zero start or end time on GetTrends defaults to the trailing
// DefaultInsightWindowDays window ending now.
type InsightsService interface {
	GetSummary(ctx context.Context, userID string, days int) (*models.InsightsSummary, error)
	GetTrends(ctx context.Context, userID, metric string, granularity analytics.Granularity, start, end time.Time) (*models.TrendSeries, error)
	GetCorrelations(ctx context.Context, userID string, days int) ([]models.CorrelationInsight, error)
	GetPatterns(ctx context.Context, userID, metric string, days int) (*models.PatternsResponse, error)
	GetMoodDistribution(ctx context.Context, userID string, days int) (*models.DistributionResponse, error)
}
