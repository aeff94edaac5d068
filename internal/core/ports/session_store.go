package ports

import (
	"context"
	"time"
)

// SessionStore holds server-side session markers keyed by a server-issued
// session ID. Entries expire on their own after the TTL given at creation;
// Delete revokes one eagerly on logout.
type SessionStore interface {
	// Put records sessionID -> accountID with the given lifetime.
	Put(ctx context.Context, sessionID, accountID string, ttl time.Duration) error
	// Get returns the account ID for a live session, or
	// domain.ErrSessionNotFound when the session is absent or expired.
	Get(ctx context.Context, sessionID string) (string, error)
	// Delete removes a session. Deleting an absent session is not an error.
	Delete(ctx context.Context, sessionID string) error
}
