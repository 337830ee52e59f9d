// Package cryptox implements the journal encryption scheme: per-user keys
// derived with PBKDF2 and AES-256-GCM authenticated encryption of short text
// fields such as journal titles and bodies.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeyIterations is the PBKDF2 iteration count used for key derivation.
	KeyIterations = 100000
	// KeySize is the derived key length in bytes (AES-256).
	KeySize = 32
	// NonceSize is the AES-GCM nonce length in bytes. The wire format is
	// base64(nonce || ciphertext||tag), so this prefix length is fixed for
	// compatibility with previously stored entries.
	NonceSize = 12
	// SecretSize is the number of random bytes in a generated secret.
	SecretSize = 16
)

var (
	// ErrKeyDerivation indicates key derivation failed (empty inputs or
	// cipher construction failure).
	ErrKeyDerivation = errors.New("key derivation failed")
	// ErrEncryption indicates the cipher failed during encryption.
	ErrEncryption = errors.New("encryption failed")
	// ErrDecryption indicates malformed input, a wrong key, or tampered
	// ciphertext. Callers render a placeholder instead of failing the
	// whole entry list.
	ErrDecryption = errors.New("decryption failed")
)

// Key holds derived key material wrapped in a ready-to-use AEAD. Keys are
// never persisted; they are rederived from the stored secret each session.
type Key struct {
	aead cipher.AEAD
}

// DeriveKey derives an AES-256-GCM key from a user's locally stored secret.
// The user ID acts as a fixed salt, so the same (userID, secret) pair always
// yields a key able to decrypt anything encrypted under that pair.
func DeriveKey(userID, secret string) (*Key, error) {
	if userID == "" || secret == "" {
		return nil, fmt.Errorf("%w: user id and secret must be non-empty", ErrKeyDerivation)
	}

	material := pbkdf2.Key([]byte(secret), []byte(userID), KeyIterations, KeySize, sha256.New)

	block, err := aes.NewCipher(material)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	return &Key{aead: aead}, nil
}

// Encrypt encrypts plaintext under key with a fresh random nonce and returns
// base64(nonce || ciphertext||tag). Two calls with the same inputs produce
// different ciphertexts. Error messages never contain the plaintext.
func Encrypt(plaintext string, key *Key) (string, error) {
	if key == nil || key.aead == nil {
		return "", fmt.Errorf("%w: nil key", ErrEncryption)
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncryption, err)
	}

	// Seal appends to the nonce so the result is nonce || ciphertext||tag.
	sealed := key.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It accepts arbitrary strings and returns
// ErrDecryption for anything that is not valid base64, is too short to carry
// a payload, or fails tag verification.
func Decrypt(ciphertextB64 string, key *Key) (string, error) {
	if key == nil || key.aead == nil {
		return "", fmt.Errorf("%w: nil key", ErrDecryption)
	}

	raw, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("%w: malformed base64", ErrDecryption)
	}

	if len(raw) <= NonceSize {
		return "", fmt.Errorf("%w: input too short", ErrDecryption)
	}

	plaintext, err := key.aead.Open(nil, raw[:NonceSize], raw[NonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrDecryption)
	}

	return string(plaintext), nil
}

// IsEncrypted reports whether text looks like ciphertext produced by Encrypt:
// it must decode as base64 and carry more bytes than the nonce alone.
//
// This is a heuristic kept for compatibility with entries stored before the
// encrypted flag existed. Plaintext that happens to be valid base64 longer
// than 12 decoded bytes is misclassified; a magic-prefix tag would fix that
// but would break decryption of already stored entries.
func IsEncrypted(text string) bool {
	if text == "" {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return false
	}

	return len(raw) > NonceSize
}

// GenerateSecret produces a fresh hex-encoded 16-byte random secret.
func GenerateSecret() (string, error) {
	buf := make([]byte, SecretSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
