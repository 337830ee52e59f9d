package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/lumina-app/backend/internal/cryptox"
	"github.com/lumina-app/backend/internal/logger"
	"github.com/lumina-app/backend/internal/models"
	"github.com/lumina-app/backend/internal/repository"
)

// DecryptPlaceholder is rendered for an entry whose ciphertext cannot be
// decrypted (wrong key, tampered data). One undecryptable entry must never
// prevent the rest of the journal from rendering.
const DecryptPlaceholder = "[Encrypted content - unable to decrypt]"

type journalService struct {
	journalRepo repository.JournalRepository
	secrets     cryptox.SecretStore

	// Session key cache. An entry appears once InitializeEncryption
	// succeeds for the user and is never replaced within the process
	// lifetime (the key is a pure function of the stored secret). The
	// inits map serializes first-use initialization per user.
	mu    sync.RWMutex
	keys  map[string]*cryptox.Key
	inits map[string]*sync.Mutex
}

// NewJournalService creates a new journal service
func NewJournalService(journalRepo repository.JournalRepository, secrets cryptox.SecretStore) JournalService {
	return &journalService{
		journalRepo: journalRepo,
		secrets:     secrets,
		keys:        make(map[string]*cryptox.Key),
		inits:       make(map[string]*sync.Mutex),
	}
}

// sessionKey returns the user's derived key, initializing the encryption
// session on first use.
func (s *journalService) sessionKey(ctx context.Context, userID string) (*cryptox.Key, error) {
	s.mu.RLock()
	key, ok := s.keys[userID]
	s.mu.RUnlock()
	if ok {
		return key, nil
	}

	// One initialization per user at a time. Two first requests racing
	// through here must not each generate and persist a fresh secret.
	init := s.initLock(userID)
	init.Lock()
	defer init.Unlock()

	s.mu.RLock()
	key, ok = s.keys[userID]
	s.mu.RUnlock()
	if ok {
		return key, nil
	}

	key, err := cryptox.InitializeEncryption(ctx, s.secrets, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionNotReady, err)
	}

	s.mu.Lock()
	s.keys[userID] = key
	s.mu.Unlock()

	return key, nil
}

func (s *journalService) initLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.inits[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.inits[userID] = lock
	}
	return lock
}

func (s *journalService) CreateEntry(ctx context.Context, userID string, req *models.CreateJournalEntryRequest) (*models.JournalEntry, error) {
	key, err := s.sessionKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	encTitle, err := cryptox.Encrypt(req.Title, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt title: %w", err)
	}
	encContent, err := cryptox.Encrypt(req.Content, key)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt content: %w", err)
	}

	id, err := NewEntryID()
	if err != nil {
		return nil, err
	}

	entry := &models.JournalEntry{
		ID:        id,
		UserID:    userID,
		Title:     encTitle,
		Content:   encContent,
		Mood:      req.Mood,
		Tags:      req.Tags,
		Encrypted: true,
		Timestamp: req.Timestamp,
	}

	created, err := s.journalRepo.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	// Hand the caller back the plaintext it sent
	created.Title = req.Title
	created.Content = req.Content

	return created, nil
}

func (s *journalService) GetEntry(ctx context.Context, userID, entryID string) (*models.JournalEntry, error) {
	entry, err := s.journalRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.UserID != userID {
		return nil, ErrNotFound
	}

	s.decryptEntry(ctx, userID, entry)

	return entry, nil
}

func (s *journalService) GetUserEntries(ctx context.Context, userID string) ([]models.JournalEntry, error) {
	entries, err := s.journalRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		s.decryptEntry(ctx, userID, &entries[i])
	}

	return entries, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, userID, entryID string, req *models.UpdateJournalEntryRequest) (*models.JournalEntry, error) {
	existing, err := s.journalRepo.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.UserID != userID {
		return nil, ErrNotFound
	}

	key, err := s.sessionKey(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.Encrypted = true

	if req.Title != nil {
		if updated.Title, err = cryptox.Encrypt(*req.Title, key); err != nil {
			return nil, fmt.Errorf("failed to encrypt title: %w", err)
		}
	} else if !existing.Encrypted {
		// A legacy plaintext entry gets encrypted on first edit
		if updated.Title, err = cryptox.Encrypt(existing.Title, key); err != nil {
			return nil, fmt.Errorf("failed to encrypt title: %w", err)
		}
	}

	if req.Content != nil {
		if updated.Content, err = cryptox.Encrypt(*req.Content, key); err != nil {
			return nil, fmt.Errorf("failed to encrypt content: %w", err)
		}
	} else if !existing.Encrypted {
		if updated.Content, err = cryptox.Encrypt(existing.Content, key); err != nil {
			return nil, fmt.Errorf("failed to encrypt content: %w", err)
		}
	}

	if req.Mood != nil {
		updated.Mood = *req.Mood
	}
	if req.Tags != nil {
		updated.Tags = req.Tags
	}

	saved, err := s.journalRepo.Update(ctx, entryID, &updated)
	if err != nil {
		return nil, err
	}

	s.decryptEntry(ctx, userID, saved)

	return saved, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	existing, err := s.journalRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != userID {
		return ErrNotFound
	}

	return s.journalRepo.Delete(ctx, entryID)
}

// decryptEntry replaces ciphertext fields with plaintext in place. Failures
// are isolated per entry: the placeholder is substituted and the rest of the
// list renders normally.
func (s *journalService) decryptEntry(ctx context.Context, userID string, entry *models.JournalEntry) {
	// A nil key (initialization failure) makes every decrypt below fail,
	// which degrades to placeholders instead of an error page.
	key, err := s.sessionKey(ctx, userID)
	if err != nil {
		logger.Ctx(ctx).Warn("encryption key unavailable, rendering placeholders",
			logger.String("entry_id", entry.ID),
			logger.Err(err),
		)
		key = nil
	}

	entry.Title = decryptField(entry.Title, entry.Encrypted, key)
	entry.Content = decryptField(entry.Content, entry.Encrypted, key)
}

// decryptField decrypts a single stored string. The encrypted flag is
// authoritative when set; for legacy entries the base64 heuristic decides.
// When the heuristic misfires on plaintext that happens to look like
// base64, decryption fails and the original text is kept.
func decryptField(field string, encrypted bool, key *cryptox.Key) string {
	if !encrypted && !cryptox.IsEncrypted(field) {
		return field
	}

	plaintext, err := cryptox.Decrypt(field, key)
	if err != nil {
		if !encrypted {
			return field
		}
		return DecryptPlaceholder
	}

	return plaintext
}
