package cryptox

import (
	"context"
	"errors"
	"fmt"
)

// ErrSecretNotFound is returned by SecretStore implementations when no secret
// has been stored for the user yet.
var ErrSecretNotFound = errors.New("encryption secret not found")

// SecretStore persists per-user encryption secrets in local, non-synced
// storage. Secrets never leave the device.
//
// SetSecret must keep the first secret written for a user and ignore later
// writes. Two sessions racing through first-run initialization both land
// here, and whichever secret survives is the only one that can ever decrypt
// the entries written since.
type SecretStore interface {
	GetSecret(ctx context.Context, userID string) (string, error)
	SetSecret(ctx context.Context, userID, secret string) error
}

// InitializeEncryption loads the user's secret, generating and persisting a
// fresh one on first use, and derives the session key from it.
//
// The stored secret is the only way to rederive the key: if it is lost,
// previously encrypted entries are permanently undecryptable. That tradeoff
// keeps journal content readable only on the user's own device.
func InitializeEncryption(ctx context.Context, store SecretStore, userID string) (*Key, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrKeyDerivation)
	}

	secret, err := store.GetSecret(ctx, userID)
	switch {
	case errors.Is(err, ErrSecretNotFound):
		generated, genErr := GenerateSecret()
		if genErr != nil {
			return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, genErr)
		}
		if err := store.SetSecret(ctx, userID, generated); err != nil {
			return nil, fmt.Errorf("storing encryption secret: %w", err)
		}
		// Derive from what the store actually kept, not from the generated
		// value. When two first sessions race, only one secret survives and
		// both sessions must end up with its key.
		if secret, err = store.GetSecret(ctx, userID); err != nil {
			return nil, fmt.Errorf("loading encryption secret: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("loading encryption secret: %w", err)
	}

	return DeriveKey(userID, secret)
}
