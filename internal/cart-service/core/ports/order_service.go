package ports

import (
	"context"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
)

// OrderService is the port to the remote order service that owns the
// authoritative order records. The engine submits through it and reads the
// latest order and the active ceilings from it; it never mutates orders.
type OrderService interface {
	// CreateOrder submits a validated payload. Transport and server errors
	// come back verbatim; the caller decides what to do with the cart.
	CreateOrder(ctx context.Context, idempotencyKey string, items []domain.CreateOrderItem) (*domain.Order, error)

	// LatestOrder returns the account's most recent order, or nil when the
	// account has never ordered.
	LatestOrder(ctx context.Context) (*domain.Order, error)

	// Settings returns the active order-wide ceilings.
	Settings(ctx context.Context) (domain.Settings, error)
}
