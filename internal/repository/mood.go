package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/pkg/supabase"
)

type moodRepository struct {
	client *supabase.Client
}

// NewMoodRepository creates a new mood entry repository
func NewMoodRepository(client *supabase.Client) MoodRepository {
	return &moodRepository{client: client}
}

func (r *moodRepository) Create(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	data := map[string]interface{}{
		"user_id":   entry.UserID,
		"score":     entry.Score,
		"timestamp": entry.Timestamp.Format(time.RFC3339),
	}
	if entry.Notes != nil {
		data["notes"] = *entry.Notes
	}
	if len(entry.Triggers) > 0 {
		data["triggers"] = entry.Triggers
	}
	if len(entry.Activities) > 0 {
		data["activities"] = entry.Activities
	}

	body, err := r.client.Insert("mood_entries", data, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no mood entry returned")
	}

	return &entries[0], nil
}

func (r *moodRepository) GetByID(ctx context.Context, id string) (*models.MoodEntry, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("mood_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return &entries[0], nil
}

func (r *moodRepository) GetByUserID(ctx context.Context, userID string) ([]models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "timestamp.asc",
	}

	body, err := r.client.Query("mood_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *moodRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.MoodEntry, error) {
	query := map[string]interface{}{
		"user_id":   fmt.Sprintf("eq.%s", userID),
		"timestamp": fmt.Sprintf("gte.%s", start.Format(time.RFC3339)),
		"select":    "*",
		"order":     "timestamp.asc",
	}

	body, err := r.client.Query("mood_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entries: %w", err)
	}

	var entries []models.MoodEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	// PostgREST only takes one operator per key in this query style, so the
	// upper bound is applied here
	filtered := make([]models.MoodEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.After(end) {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}

func (r *moodRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("mood_entries", id, supabase.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	return nil
}
