package repository

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/lumina-app/backend/internal/cryptox"
)

const secretsSchema = `
CREATE TABLE IF NOT EXISTS encryption_secrets (
	user_id    TEXT PRIMARY KEY,
	secret     TEXT NOT NULL,
	created_at INTEGER NOT NULL DEFAULT (unixepoch())
);`

// SecretStore is a device-local SQLite store for per-user encryption
// secrets. It lives outside the synced document store on purpose: the
// secret never leaves the device, which also means deleting the file makes
// previously encrypted entries unrecoverable.
type SecretStore struct {
	db *sql.DB
}

// OpenSecretStore opens (and creates if needed) the secret database at path.
func OpenSecretStore(path string) (*SecretStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open secret store at %s: %w", path, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping secret store: %w", err)
	}

	if _, err := db.Exec(secretsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize secret store schema: %w", err)
	}

	return &SecretStore{db: db}, nil
}

// GetSecret returns the stored secret for the user, or
// cryptox.ErrSecretNotFound on first run.
func (s *SecretStore) GetSecret(ctx context.Context, userID string) (string, error) {
	var secret string
	err := s.db.QueryRowContext(ctx,
		`SELECT secret FROM encryption_secrets WHERE user_id = ?`, userID,
	).Scan(&secret)
	if err == sql.ErrNoRows {
		return "", cryptox.ErrSecretNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return secret, nil
}

// SetSecret stores the secret for the user. An existing secret is kept as
// is: the first write wins, so two first sessions racing through
// initialization cannot replace each other's secret and orphan the entries
// already encrypted under it.
func (s *SecretStore) SetSecret(ctx context.Context, userID, secret string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO encryption_secrets (user_id, secret) VALUES (?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID, secret,
	)
	if err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SecretStore) Close() error {
	return s.db.Close()
}
