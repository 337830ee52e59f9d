package cryptox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySecretStore is an in-memory SecretStore for testing. Like the real
// store it keeps the first secret written per user.
type memorySecretStore struct {
	mu       sync.Mutex
	secrets  map[string]string
	getErr   error
	setErr   error
	setCalls int
}

func newMemorySecretStore() *memorySecretStore {
	return &memorySecretStore{secrets: make(map[string]string)}
}

func (m *memorySecretStore) GetSecret(ctx context.Context, userID string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	secret, ok := m.secrets[userID]
	if !ok {
		return "", ErrSecretNotFound
	}
	return secret, nil
}

func (m *memorySecretStore) SetSecret(ctx context.Context, userID, secret string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if _, ok := m.secrets[userID]; !ok {
		m.secrets[userID] = secret
	}
	return nil
}

func TestInitializeEncryption_FirstRun(t *testing.T) {
	store := newMemorySecretStore()

	key, err := InitializeEncryption(context.Background(), store, "user-123")
	require.NoError(t, err)
	require.NotNil(t, key)

	assert.Equal(t, 1, store.setCalls)
	assert.NotEmpty(t, store.secrets["user-123"])
}

func TestInitializeEncryption_ReusesStoredSecret(t *testing.T) {
	store := newMemorySecretStore()

	key1, err := InitializeEncryption(context.Background(), store, "user-123")
	require.NoError(t, err)

	key2, err := InitializeEncryption(context.Background(), store, "user-123")
	require.NoError(t, err)

	// second init must derive the same key, not mint a new secret
	assert.Equal(t, 1, store.setCalls)

	encrypted, err := Encrypt("written in session one", key1)
	require.NoError(t, err)

	decrypted, err := Decrypt(encrypted, key2)
	require.NoError(t, err)
	assert.Equal(t, "written in session one", decrypted)
}

func TestInitializeEncryption_DistinctUsers(t *testing.T) {
	store := newMemorySecretStore()

	key1, err := InitializeEncryption(context.Background(), store, "user-1")
	require.NoError(t, err)

	key2, err := InitializeEncryption(context.Background(), store, "user-2")
	require.NoError(t, err)

	encrypted, err := Encrypt("only for user one", key1)
	require.NoError(t, err)

	_, err = Decrypt(encrypted, key2)
	assert.ErrorIs(t, err, ErrDecryption)
}

// gatedSecretStore holds every initializer that saw the secret as missing
// until all of them have, forcing the interleaving where each generates its
// own secret before any write lands.
type gatedSecretStore struct {
	*memorySecretStore
	missing sync.WaitGroup
}

func (g *gatedSecretStore) GetSecret(ctx context.Context, userID string) (string, error) {
	secret, err := g.memorySecretStore.GetSecret(ctx, userID)
	if errors.Is(err, ErrSecretNotFound) {
		g.missing.Done()
		g.missing.Wait()
	}
	return secret, err
}

func TestInitializeEncryption_ConcurrentFirstUse(t *testing.T) {
	store := &gatedSecretStore{memorySecretStore: newMemorySecretStore()}
	store.missing.Add(2)

	var wg sync.WaitGroup
	keys := make([]*Key, 2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keys[i], errs[i] = InitializeEncryption(context.Background(), store, "user-123")
		}(i)
	}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])
	assert.Equal(t, 2, store.setCalls)

	// Both sessions must hold the key of whichever secret the store kept
	persisted, err := store.memorySecretStore.GetSecret(context.Background(), "user-123")
	require.NoError(t, err)
	winner, err := DeriveKey("user-123", persisted)
	require.NoError(t, err)

	for i, key := range keys {
		plaintext := fmt.Sprintf("written during raced session %d", i)
		encrypted, err := Encrypt(plaintext, key)
		require.NoError(t, err)

		decrypted, err := Decrypt(encrypted, winner)
		require.NoError(t, err, "session %d entry is undecryptable under the persisted secret", i)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestInitializeEncryption_StoreGetError(t *testing.T) {
	store := newMemorySecretStore()
	store.getErr = errors.New("disk unavailable")

	_, err := InitializeEncryption(context.Background(), store, "user-123")
	assert.Error(t, err)
	assert.Equal(t, 0, store.setCalls)
}

func TestInitializeEncryption_StoreSetError(t *testing.T) {
	store := newMemorySecretStore()
	store.setErr = errors.New("disk full")

	_, err := InitializeEncryption(context.Background(), store, "user-123")
	assert.Error(t, err)
}
