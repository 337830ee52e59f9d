package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/lumina-app/backend/internal/cryptox"
)

func openTestStore(t *testing.T) *SecretStore {
	t.Helper()

	store, err := OpenSecretStore(filepath.Join(t.TempDir(), "secrets.db"))
	if err != nil {
		t.Fatalf("OpenSecretStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSecretStore_FirstRunNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetSecret(context.Background(), "user-123")
	if !errors.Is(err, cryptox.ErrSecretNotFound) {
		t.Errorf("expected ErrSecretNotFound on first run, got %v", err)
	}
}

func TestSecretStore_SetAndGet(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SetSecret(ctx, "user-123", "a1b2c3d4e5f60718"); err != nil {
		t.Fatalf("SetSecret failed: %v", err)
	}

	secret, err := store.GetSecret(ctx, "user-123")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if secret != "a1b2c3d4e5f60718" {
		t.Errorf("expected stored secret back, got %q", secret)
	}
}

func TestSecretStore_FirstWriteWins(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SetSecret(ctx, "user-123", "first"); err != nil {
		t.Fatalf("SetSecret failed: %v", err)
	}
	if err := store.SetSecret(ctx, "user-123", "second"); err != nil {
		t.Fatalf("second SetSecret failed: %v", err)
	}

	secret, err := store.GetSecret(ctx, "user-123")
	if err != nil {
		t.Fatalf("GetSecret failed: %v", err)
	}
	if secret != "first" {
		t.Errorf("expected the first secret to be kept, got %q", secret)
	}
}

func TestSecretStore_IsolatedPerUser(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.SetSecret(ctx, "user-1", "secret-one"); err != nil {
		t.Fatalf("SetSecret failed: %v", err)
	}

	if _, err := store.GetSecret(ctx, "user-2"); !errors.Is(err, cryptox.ErrSecretNotFound) {
		t.Errorf("expected ErrSecretNotFound for another user, got %v", err)
	}
}

func TestSecretStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.db")
	ctx := context.Background()

	store, err := OpenSecretStore(path)
	if err != nil {
		t.Fatalf("OpenSecretStore failed: %v", err)
	}
	if err := store.SetSecret(ctx, "user-123", "survives-restart"); err != nil {
		t.Fatalf("SetSecret failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSecretStore(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	secret, err := reopened.GetSecret(ctx, "user-123")
	if err != nil {
		t.Fatalf("GetSecret after reopen failed: %v", err)
	}
	if secret != "survives-restart" {
		t.Errorf("expected secret to survive reopen, got %q", secret)
	}
}
