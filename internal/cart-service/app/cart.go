package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/domain"
	"github.com/jcmexdev/butcher-orders/internal/cart-service/core/ports"
)

// Cart is the in-memory cart state machine. Every mutation is all-or-nothing:
// the resulting full line set is validated first and only then committed, so
// a failed operation leaves the lines untouched. Successful mutations are
// written through to the snapshot store.
type Cart struct {
	mu        sync.Mutex
	owner     string
	lines     []domain.Line
	ceilings  domain.Ceilings
	snapshots ports.SnapshotStore // nil disables persistence
}

// NewCart creates an empty cart for the given owner. Call Load to restore a
// persisted snapshot.
func NewCart(owner string, snapshots ports.SnapshotStore) *Cart {
	return &Cart{
		owner:     owner,
		ceilings:  domain.Ceilings{MaxTotalKg: domain.DefaultMaxTotalKg, MaxItems: domain.DefaultMaxItems},
		snapshots: snapshots,
	}
}

// Load restores the owner's persisted snapshot. Persisted lines are never
// trusted raw: each is re-normalized and lines without a product id are
// dropped, so stale data from an older schema cannot survive a restart.
// A missing or unreadable snapshot leaves the cart empty.
func (c *Cart) Load(ctx context.Context) {
	if c.snapshots == nil {
		return
	}
	snap, err := c.snapshots.Load(ctx, c.owner)
	if err != nil {
		slog.WarnContext(ctx, "cart snapshot unreadable, starting empty", "owner", c.owner, "error", err)
		return
	}
	if snap == nil {
		return
	}

	lines := make([]domain.Line, 0, len(snap.Items))
	for _, l := range snap.Items {
		if l.ProductID == "" {
			continue
		}
		lines = append(lines, domain.NormalizeLine(l))
	}

	c.mu.Lock()
	c.lines = lines
	c.ceilings = domain.Ceilings{MaxTotalKg: snap.MaxTotalKg, MaxItems: snap.MaxItems}.Sanitized()
	c.mu.Unlock()
}

// SetOwner switches the cart to a different owner. Switching drops the
// current lines and loads the new owner's snapshot; setting the same owner
// again is a no-op.
func (c *Cart) SetOwner(ctx context.Context, owner string) {
	c.mu.Lock()
	if c.owner == owner {
		c.mu.Unlock()
		return
	}
	c.owner = owner
	c.lines = nil
	c.mu.Unlock()

	c.Load(ctx)
}

// Add normalizes the line and merges it into the cart by product id.
// Re-adding a product overwrites its quantity and unit mode instead of
// summing — the quantity supplied is the quantity wanted.
func (c *Cart) Add(ctx context.Context, line domain.Line, mode domain.Mode) error {
	if line.ProductID == "" {
		return fmt.Errorf("%w: product id is required", domain.ErrInvalidProduct)
	}
	if line.Kg < 1 {
		return fmt.Errorf("%w: kg must be a positive integer", domain.ErrInvalidQuantity)
	}
	line = domain.NormalizeLine(line)

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.copyLines()
	merged := false
	for i, l := range next {
		if l.ProductID == line.ProductID {
			next[i] = line
			merged = true
			break
		}
	}
	if !merged {
		next = append(next, line)
	}

	return c.commitLocked(ctx, next, mode)
}

// SetKg replaces the quantity of an existing line and re-validates the full
// resulting set.
func (c *Cart) SetKg(ctx context.Context, productID string, kg int, mode domain.Mode) error {
	if kg < 1 {
		return fmt.Errorf("%w: kg must be a positive integer", domain.ErrInvalidQuantity)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.copyLines()
	i := indexOf(next, productID)
	if i < 0 {
		return fmt.Errorf("%w: product %s is not in the cart", domain.ErrNotFound, productID)
	}
	next[i].Kg = kg

	return c.commitLocked(ctx, next, mode)
}

// SetUnit toggles a line between kg and box mode. Box mode on a product that
// does not allow boxes fails instead of silently coercing. Unit toggles never
// change the distinct-item count, and box lines leave the weight sum, so the
// quota checks are not re-run.
func (c *Cart) SetUnit(ctx context.Context, productID string, isBox bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := indexOf(c.lines, productID)
	if i < 0 {
		return fmt.Errorf("%w: product %s is not in the cart", domain.ErrNotFound, productID)
	}
	if isBox && !c.lines[i].AllowBoxes {
		return fmt.Errorf("%w: %s does not allow box orders", domain.ErrBoxIneligible, c.lines[i].Name)
	}

	c.lines[i].IsBox = isBox && c.lines[i].AllowBoxes
	c.persistLocked(ctx)
	return nil
}

// Remove deletes a line. Removing an absent product is a no-op.
func (c *Cart) Remove(ctx context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.lines[:0:0]
	for _, l := range c.lines {
		if l.ProductID != productID {
			next = append(next, l)
		}
	}
	c.lines = next
	c.persistLocked(ctx)
}

// Clear resets the cart to empty.
func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
	c.persistLocked(ctx)
}

// ApplySettings adopts refreshed ceilings. Existing lines are untouched;
// the new ceilings only affect future validations.
func (c *Cart) ApplySettings(ctx context.Context, s domain.Settings) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ceilings = domain.Ceilings{MaxTotalKg: s.MaxTotalKg, MaxItems: s.MaxItems}.Sanitized()
	c.persistLocked(ctx)
}

// Validate re-runs the limit policy over the current line set.
func (c *Cart) Validate(mode domain.Mode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.ValidateLines(c.lines, c.ceilings, mode)
}

// Lines returns a copy of the current line set.
func (c *Cart) Lines() []domain.Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.copyLines()
}

// Count is the number of distinct products in the cart.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Units returns the weight and box totals as independent quantities.
func (c *Cart) Units() domain.UnitTotals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.Units(c.lines)
}

// TotalKg is the weight total over kg lines only.
func (c *Cart) TotalKg() int {
	return c.Units().Kg
}

// TotalPrice returns the kg-line price total and whether that total is the
// whole order's price. When the cart holds any box line the flag is false
// and the number must not be shown as an order total.
func (c *Cart) TotalPrice() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.TotalPrice(c.lines), domain.PriceKnown(c.lines)
}

// Ceilings returns the active order-wide bounds.
func (c *Cart) Ceilings() domain.Ceilings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ceilings
}

// commitLocked validates the candidate set and commits it only when legal.
// Must be called with the mutex held.
func (c *Cart) commitLocked(ctx context.Context, next []domain.Line, mode domain.Mode) error {
	if err := domain.ValidateLines(next, c.ceilings, mode); err != nil {
		return err
	}
	c.lines = next
	c.persistLocked(ctx)
	return nil
}

// persistLocked writes the snapshot after a committed mutation. Persistence
// is best-effort: a write failure is logged, not surfaced, so local-storage
// trouble never undoes a committed cart operation.
func (c *Cart) persistLocked(ctx context.Context) {
	if c.snapshots == nil {
		return
	}
	snap := domain.Snapshot{
		Items:      append([]domain.Line(nil), c.lines...),
		MaxTotalKg: c.ceilings.MaxTotalKg,
		MaxItems:   c.ceilings.MaxItems,
	}
	if err := c.snapshots.Save(ctx, c.owner, snap); err != nil {
		slog.WarnContext(ctx, "failed to persist cart snapshot", "owner", c.owner, "error", err)
	}
}

func (c *Cart) copyLines() []domain.Line {
	return append([]domain.Line(nil), c.lines...)
}

func indexOf(lines []domain.Line, productID string) int {
	for i, l := range lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}
