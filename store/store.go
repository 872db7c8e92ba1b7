// Package store is the durable local persistence surface. It is the sole
// source of truth for session and profile records; every in-memory copy is a
// cache. No multi-key atomicity is guaranteed, so callers must treat
// "session present, profile absent" as recoverable.
package store

import (
	"context"
	"errors"
)

// Recognized keys. Structured values are JSON-encoded strings.
const (
	KeyDemoSession  = "redpulse.demo_session"
	KeyDemoProfile  = "redpulse.demo_profile"
	KeyStayLoggedIn = "redpulse.stay_logged_in"
	KeyAccessToken  = "redpulse.access_token"
)

var (
	ErrKeyNotFound = errors.New("key not found in store")
)

// Store is a plain key/value surface. Implementations must tolerate a
// concurrent reader having just deleted a corrupted key, so writers re-read
// before deciding a key "exists".
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// ProfileCompletedKey flags that the given email finished profile setup.
func ProfileCompletedKey(email string) string {
	return "redpulse.profile_completed." + email
}

// ProfileSkippedKey flags that the given email skipped profile setup.
func ProfileSkippedKey(email string) string {
	return "redpulse.profile_skipped." + email
}

// Has reports whether key holds a value, mapping ErrKeyNotFound to false.
func Has(ctx context.Context, s Store, key string) (bool, error) {
	_, err := s.Get(ctx, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
