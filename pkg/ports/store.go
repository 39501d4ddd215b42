package ports

import (
	"context"

	"github.com/sakenomibu/nomibot/pkg/domain"
)

// SessionStore defines the interface for persisting session documents.
//
// The core treats writes as at-least-once, not transactional: Merge applies
// a field-level partial update preserving fields not named in the update.
// Implementations may add optimistic concurrency underneath.
type SessionStore interface {
	// GetOrCreate returns the existing session for userID, or initializes
	// a fresh one at the entry phase. It never creates duplicate documents
	// for the same user.
	GetOrCreate(ctx context.Context, userID string) (*domain.Session, error)

	// Get returns the session for userID.
	// Returns domain.ErrSessionNotFound if none exists.
	Get(ctx context.Context, userID string) (*domain.Session, error)

	// Merge applies a partial update to the session document for userID,
	// creating the document if it does not exist.
	Merge(ctx context.Context, userID string, update domain.SessionUpdate) error

	// Delete removes the session document for userID.
	Delete(ctx context.Context, userID string) error

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error

	// Close releases the backend connection.
	Close() error
}
