package repository

import (
	"context"
	"time"

	"github.com/lumina-app/backend/internal/models"
)

// MoodRepository defines the interface for mood entry data access
type MoodRepository interface {
	Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error)
	GetByID(ctx context.Context, id string) (*models.MoodEntry, error)
	GetByUserID(ctx context.Context, userID string) ([]models.MoodEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodEntry, error)
	Delete(ctx context.Context, id string) error
}

// SleepRepository defines the interface for sleep entry data access
type SleepRepository interface {
	Create(ctx context.Context, entry *models.SleepEntry) (*models.SleepEntry, error)
	GetByID(ctx context.Context, id string) (*models.SleepEntry, error)
	GetByUserID(ctx context.Context, userID string) ([]models.SleepEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.SleepEntry, error)
	Delete(ctx context.Context, id string) error
}

// StressRepository defines the interface for stress entry data access
type StressRepository interface {
	Create(ctx context.Context, entry *models.StressEntry) (*models.StressEntry, error)
	GetByID(ctx context.Context, id string) (*models.StressEntry, error)
	GetByUserID(ctx context.Context, userID string) ([]models.StressEntry, error)
	GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.StressEntry, error)
	Delete(ctx context.Context, id string) error
}

// JournalRepository defines the interface for journal entry data access.
// Title and content pass through as opaque strings; encryption happens in
// the service layer before anything reaches a repository.
type JournalRepository interface {
	Create(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error)
	GetByID(ctx context.Context, id string) (*models.JournalEntry, error)
	GetByUserID(ctx context.Context, userID string) ([]models.JournalEntry, error)
	Update(ctx context.Context, id string, entry *models.JournalEntry) (*models.JournalEntry, error)
	Delete(ctx context.Context, id string) error
}
