package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/pkg/supabase"
)

type journalRepository struct {
	client *supabase.Client
}

// NewJournalRepository creates a new journal entry repository
func NewJournalRepository(client *supabase.Client) JournalRepository {
	return &journalRepository{client: client}
}

func (r *journalRepository) Create(ctx context.Context, entry *models.JournalEntry) (*models.JournalEntry, error) {
	data := map[string]interface{}{
		"id":        entry.ID,
		"user_id":   entry.UserID,
		"title":     entry.Title,
		"content":   entry.Content,
		"mood":      entry.Mood,
		"encrypted": entry.Encrypted,
		"timestamp": entry.Timestamp.Format(time.RFC3339),
	}
	if len(entry.Tags) > 0 {
		data["tags"] = entry.Tags
	}

	body, err := r.client.Insert("journal_entries", data, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no journal entry returned")
	}

	return &entries[0], nil
}

func (r *journalRepository) GetByID(ctx context.Context, id string) (*models.JournalEntry, error) {
	query := map[string]interface{}{
		"id":     fmt.Sprintf("eq.%s", id),
		"select": "*",
	}

	body, err := r.client.Query("journal_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry: %w", err)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	return &entries[0], nil
}

func (r *journalRepository) GetByUserID(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	query := map[string]interface{}{
		"user_id": fmt.Sprintf("eq.%s", userID),
		"select":  "*",
		"order":   "timestamp.desc",
	}

	body, err := r.client.Query("journal_entries", query, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entries: %w", err)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return entries, nil
}

func (r *journalRepository) Update(ctx context.Context, id string, entry *models.JournalEntry) (*models.JournalEntry, error) {
	data := map[string]interface{}{
		"title":      entry.Title,
		"content":    entry.Content,
		"mood":       entry.Mood,
		"encrypted":  entry.Encrypted,
		"updated_at": time.Now().Format(time.RFC3339),
	}
	if entry.Tags != nil {
		data["tags"] = entry.Tags
	}

	body, err := r.client.Update("journal_entries", id, data, supabase.TokenFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	var entries []models.JournalEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no journal entry returned")
	}

	return &entries[0], nil
}

func (r *journalRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete("journal_entries", id, supabase.TokenFromContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}
	return nil
}
