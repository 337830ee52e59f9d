package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/pkg/supabase"
)

type sleepRepository struct {
	client *supabase.Client
}

// NewSleepRepository creates a new sleep entry repository
func NewSleepRepository(client *supabase.Client) SleepRepository {
	return &sleepRepository{client: client}
}

func (r *sleepRepository) Create(ctx context.Context, entry *models.SleepEntry) (*models.SleepEntry, error) {
	data := map[string]interface{}{
		"user_id":   entry.UserID,
		"hours":     entry.Hours,
		"timestamp": entry.Timestamp.Format(time.RFC3339),
	}
	if entry.Quality != nil {
		data["quality"] = *entry.Quality
	}
	if entry.Bedtime != nil {
		data["bedtime"] = *entry.Bedtime
	}
	if entry.WakeTime != nil {
		data["wake_time"] = *entry.WakeTime
	}
	if len(entry.Factors) > 0 {
		data["factors"] = entry.Factors
	}

	body, err := r.client.Insert("sleep_entries", data, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create sleep entry: %w", err)
	}

	var entries []models.SleepEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no sleep entry returned")
	}

	return &entries[0], nil
}

func (r *sleepRepository) GetByID(ctx context.Context, id string) (*models.SleepEntry, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("sleep_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep entry: %w", err)
	}

	var entries []models.SleepEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return &entries[0], nil
}

func (r *sleepRepository) GetByUserID(ctx context.Context, userID string) ([]models.SleepEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "timestamp.asc",
	}

	body, err := r.client.Query("sleep_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep entries: %w", err)
	}

	var entries []models.SleepEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *sleepRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.SleepEntry, error) {
	query := map[string]interface{}{
		"user_id":   fmt.Sprintf("eq.%s", userID),
		"timestamp": fmt.Sprintf("gte.%s", start.Format(time.RFC3339)),
		"select":    "*",
		"order":     "timestamp.asc",
	}

	body, err := r.client.Query("sleep_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep entries: %w", err)
	}

	var entries []models.SleepEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	filtered := make([]models.SleepEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.After(end) {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}

func (r *sleepRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("sleep_entries", id, supabase.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete sleep entry: %w", err)
	}
	return nil
}
