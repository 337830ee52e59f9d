package service

import "errors"

var (
	// ErrNotFound indicates the requested entry does not exist or belongs
	// to another user
	ErrNotFound = errors.New("entry not found")

	// ErrUnknownMetric indicates a metric name outside mood, sleep, stress
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrEncryptionNotReady indicates the user's encryption key could not
	// be initialized; journal writes are refused rather than persisted as
	// plaintext
	ErrEncryptionNotReady = errors.New("encryption key not ready")
)
