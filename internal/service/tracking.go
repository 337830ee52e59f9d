package service

import (
	"context"

	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/internal/repository"
)

type trackingService struct {
	moodRepo   repository.MoodRepository
	sleepRepo  repository.SleepRepository
	stressRepo repository.StressRepository
}

// NewTrackingService creates a new tracking service
func NewTrackingService(moodRepo repository.MoodRepository, sleepRepo repository.SleepRepository, stressRepo repository.StressRepository) TrackingService {
	return &trackingService{
		moodRepo:   moodRepo,
		sleepRepo:  sleepRepo,
		stressRepo: stressRepo,
	}
}

func (s *trackingService) CreateMoodEntry(ctx context.Context, userID string, req *models.CreateMoodEntryRequest) (*models.MoodEntry, error) {
	entry := &models.MoodEntry{
		UserID:     userID,
		Score:      req.Score,
		Notes:      req.Notes,
		Triggers:   req.Triggers,
		Activities: req.Activities,
		Timestamp:  req.Timestamp,
	}
	return s.moodRepo.Create(ctx, entry)
}

func (s *trackingService) GetMoodEntries(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	return s.moodRepo.GetByUserID(ctx, userID)
}

func (s *trackingService) DeleteMoodEntry(ctx context.Context, userID, entryID string) error {
	existing, err := s.moodRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}
	return s.moodRepo.Delete(ctx, entryID)
}

func (s *trackingService) CreateSleepEntry(ctx context.Context, userID string, req *models.CreateSleepEntryRequest) (*models.SleepEntry, error) {
	entry := &models.SleepEntry{
		UserID:    userID,
		Hours:     req.Hours,
		Quality:   req.Quality,
		Bedtime:   req.Bedtime,
		WakeTime:  req.WakeTime,
		Factors:   req.Factors,
		Timestamp: req.Timestamp,
	}
	return s.sleepRepo.Create(ctx, entry)
}

func (s *trackingService) GetSleepEntries(ctx context.Context, userID string) ([]models.SleepEntry, error) {
	return s.sleepRepo.GetByUserID(ctx, userID)
}

func (s *trackingService) DeleteSleepEntry(ctx context.Context, userID, entryID string) error {
	existing, err := s.sleepRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}
	return s.sleepRepo.Delete(ctx, entryID)
}

func (s *trackingService) CreateStressEntry(ctx context.Context, userID string, req *models.CreateStressEntryRequest) (*models.StressEntry, error) {
	entry := &models.StressEntry{
		UserID:    userID,
		Level:     req.Level,
		Sources:   req.Sources,
		Symptoms:  req.Symptoms,
		Timestamp: req.Timestamp,
	}
	return s.stressRepo.Create(ctx, entry)
}

func (s *trackingService) GetStressEntries(ctx context.Context, userID string) ([]models.StressEntry, error) {
	return s.stressRepo.GetByUserID(ctx, userID)
}

func (s *trackingService) DeleteStressEntry(ctx context.Context, userID, entryID string) error {
	existing, err := s.stressRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}
	return s.stressRepo.Delete(ctx, entryID)
}
