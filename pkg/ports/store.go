package ports

import (
	"context"

	"github.com/sulaimaniyah/undangan/pkg/domain"
)

// StateStore defines the interface for persisting flow snapshots.
// Sessions are ephemeral by nature; a store only lets a session survive
// a page reload or move between replicas.
type StateStore interface {
	// Save persists the snapshot for a given session ID.
	Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error

	// Load retrieves the snapshot for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Snapshot, error)

	// Delete removes the snapshot for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of the stored sessions.
	List(ctx context.Context) ([]string, error)
}
