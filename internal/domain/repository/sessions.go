package repository

import (
	"context"
	"time"
)

// Sessions defines the interface for the expiring key-value store backing
// authentication tokens.
type Sessions interface {
	// Set stores value under key, overwriting any existing entry, and
	// expires it after ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value for key, or entities.ErrSessionNotFound if
	// the key is missing or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Del removes the entry unconditionally. Deleting an absent key is
	// not an error.
	Del(ctx context.Context, key string) error

	// Ping reports connection liveness. Used for status reporting only,
	// never to gate requests.
	Ping(ctx context.Context) error
}
