package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/ports"
)

// Checkout drives the confirm flow: limit policy over the final line set,
// the weekly cadence gate, and the handoff to the remote order service.
type Checkout struct {
	cart     *Cart
	orders   ports.OrderService
	resetDay time.Weekday
	now      func() time.Time
}

func NewCheckout(cart *Cart, orders ports.OrderService, resetDay time.Weekday) *Checkout {
	return &Checkout{
		cart:     cart,
		orders:   orders,
		resetDay: resetDay,
		now:      time.Now,
	}
}

// CanSubmit reports whether the confirm action should be enabled for the
// user: cart non-empty, limit policy satisfied, cadence window open. When
// the order history cannot be read the answer is false — never a false
// "allowed" that contradicts an order the service already has.
func (c *Checkout) CanSubmit(ctx context.Context, user domain.User) bool {
	if c.cart.Count() == 0 {
		return false
	}
	if err := c.cart.Validate(user.Mode()); err != nil {
		return false
	}
	open, err := c.cadenceOpen(ctx, user)
	return err == nil && open
}

// Confirm validates the cart, consults the cadence gate, and submits the
// order. The submission payload carries product id, quantity, and unit mode
// only. On success the cart is cleared; on any failure the cart is left
// populated so the in-progress order is never lost.
func (c *Checkout) Confirm(ctx context.Context, user domain.User) (*domain.Order, error) {
	lines := c.cart.Lines()
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if err := domain.ValidateLines(lines, c.cart.Ceilings(), user.Mode()); err != nil {
		return nil, err
	}

	open, err := c.cadenceOpen(ctx, user)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, fmt.Errorf("%w: one order per week, the window resets on %s",
			domain.ErrCadenceBlocked, strings.ToLower(c.resetDay.String()))
	}

	items := make([]domain.CreateOrderItem, len(lines))
	for i, l := range lines {
		items[i] = domain.CreateOrderItem{ProductID: l.ProductID, Kg: l.Kg, IsBox: l.IsBox}
	}

	order, err := c.orders.CreateOrder(ctx, uuid.NewString(), items)
	if err != nil {
		return nil, err
	}

	c.cart.Clear(ctx)
	slog.InfoContext(ctx, "order confirmed", "order_id", order.ID, "items", len(items))
	return order, nil
}

// RefreshSettings pulls the active ceilings from the order service and
// applies them to the cart. Existing lines are never invalidated, only
// future validations use the new values.
func (c *Checkout) RefreshSettings(ctx context.Context) error {
	s, err := c.orders.Settings(ctx)
	if err != nil {
		return err
	}
	c.cart.ApplySettings(ctx, s)
	return nil
}

// cadenceOpen checks the most recent order against the current window.
// Privileged users skip the lookup entirely.
func (c *Checkout) cadenceOpen(ctx context.Context, user domain.User) (bool, error) {
	if user.SuperUser {
		return true, nil
	}
	last, err := c.orders.LatestOrder(ctx)
	if err != nil {
		return false, err
	}
	var lastAt *time.Time
	if last != nil {
		t := last.CreatedAt
		lastAt = &t
	}
	return domain.CanOrder(lastAt, c.now(), false, c.resetDay), nil
}
