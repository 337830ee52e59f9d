package models

import "time"

// User represents a user in the system
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MoodEntry records how the user felt at a point in time
type MoodEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Score      float64   `json:"score"` // 1-10
	Notes      *string   `json:"notes,omitempty"`
	Triggers   []string  `json:"triggers,omitempty"`
	Activities []string  `json:"activities,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SleepEntry records one night of sleep
type SleepEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Hours     float64   `json:"hours"`               // 0-24
	Quality   *int      `json:"quality,omitempty"`   // 1-5
	Bedtime   *string   `json:"bedtime,omitempty"`   // HH:MM
	WakeTime  *string   `json:"wake_time,omitempty"` // HH:MM
	Factors   []string  `json:"factors,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StressEntry records a stress level check-in
type StressEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Level     float64   `json:"level"` // 1-10
	Sources   []string  `json:"sources,omitempty"`
	Symptoms  []string  `json:"symptoms,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalEntry represents a journal entry. When Encrypted is true, Title and
// Content are base64 ciphertext produced by the encryption service; entries
// created before encryption shipped carry plaintext and Encrypted false.
type JournalEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Mood      int        `json:"mood"` // 1-5
	Tags      []string   `json:"tags,omitempty"`
	Encrypted bool       `json:"encrypted"`
	Timestamp time.Time  `json:"timestamp"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateMoodEntryRequest represents the request to record a mood entry
type CreateMoodEntryRequest struct {
	Score      float64   `json:"score" binding:"required,min=1,max=10"`
	Notes      *string   `json:"notes"`
	Triggers   []string  `json:"triggers"`
	Activities []string  `json:"activities"`
	Timestamp  time.Time `json:"timestamp" binding:"required"`
}

// CreateSleepEntryRequest represents the request to record a sleep entry
type CreateSleepEntryRequest struct {
	Hours     float64   `json:"hours" binding:"required,min=0,max=24"`
	Quality   *int      `json:"quality" binding:"omitempty,min=1,max=5"`
	Bedtime   *string   `json:"bedtime"`
	WakeTime  *string   `json:"wake_time"`
	Factors   []string  `json:"factors"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

// CreateStressEntryRequest represents the request to record a stress entry
type CreateStressEntryRequest struct {
	Level     float64   `json:"level" binding:"required,min=1,max=10"`
	Sources   []string  `json:"sources"`
	Symptoms  []string  `json:"symptoms"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

// CreateJournalEntryRequest carries plaintext from the client; the journal
// service encrypts Title and Content before anything is persisted.
type CreateJournalEntryRequest struct {
	Title     string    `json:"title" binding:"required"`
	Content   string    `json:"content" binding:"required"`
	Mood      int       `json:"mood" binding:"required,min=1,max=5"`
	Tags      []string  `json:"tags"`
	Timestamp time.Time `json:"timestamp" binding:"required"`
}

// UpdateJournalEntryRequest represents the request to update a journal entry
type UpdateJournalEntryRequest struct {
	Title   *string  `json:"title"`
	Content *string  `json:"content"`
	Mood    *int     `json:"mood" binding:"omitempty,min=1,max=5"`
	Tags    []string `json:"tags"`
}
