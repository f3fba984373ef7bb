package ports

import (
	"context"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
)

// SnapshotStore persists the cart snapshot between sessions, keyed per
// owner. Implementations may be swapped for in-memory fakes in tests.
type SnapshotStore interface {
	// Save overwrites the owner's snapshot.
	Save(ctx context.Context, owner string, snap domain.Snapshot) error

	// Load returns the owner's snapshot, or nil when none exists.
	Load(ctx context.Context, owner string) (*domain.Snapshot, error)

	// Clear removes the owner's snapshot. Clearing a missing snapshot is not
	// an error.
	Clear(ctx context.Context, owner string) error
}
