package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/pkg/supabase"
)

type stressRepository struct {
	client *supabase.Client
}

// NewStressRepository creates a new stress entry repository
func NewStressRepository(client *supabase.Client) StressRepository {
	return &stressRepository{client: client}
}

func (r *stressRepository) Create(ctx context.Context, entry *models.StressEntry) (*models.StressEntry, error) {
	data := map[string]interface{}{
		"user_id":   entry.UserID,
		"level":     entry.Level,
		"timestamp": entry.Timestamp.Format(time.RFC3339),
	}
	if len(entry.Sources) > 0 {
		data["sources"] = entry.Sources
	}
	if len(entry.Symptoms) > 0 {
		data["symptoms"] = entry.Symptoms
	}

	body, err := r.client.Insert("stress_entries", data, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create stress entry: %w", err)
	}

	var entries []models.StressEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no stress entry returned")
	}

	return &entries[0], nil
}

func (r *stressRepository) GetByID(ctx context.Context, id string) (*models.StressEntry, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("stress_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get stress entry: %w", err)
	}

	var entries []models.StressEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return &entries[0], nil
}

func (r *stressRepository) GetByUserID(ctx context.Context, userID string) ([]models.StressEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "timestamp.asc",
	}

	body, err := r.client.Query("stress_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get stress entries: %w", err)
	}

	var entries []models.StressEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *stressRepository) GetByUserIDAndDateRange(ctx context.Context, userID string, start, end time.Time) ([]models.StressEntry, error) {
	query := map[string]interface{}{
		"user_id":   fmt.Sprintf("eq.%s", userID),
		"timestamp": fmt.Sprintf("gte.%s", start.Format(time.RFC3339)),
		"select":    "*",
		"order":     "timestamp.asc",
	}

	body, err := r.client.Query("stress_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get stress entries: %w", err)
	}

	var entries []models.StressEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	filtered := make([]models.StressEntry, 0, len(entries))
	for _, e := range entries {
		if !e.Timestamp.After(end) {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}

func (r *stressRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("stress_entries", id, supabase.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete stress entry: %w", err)
	}
	return nil
}
