package domain

import (
	"errors"
	"fmt"
)

// Validation outcomes. All of them are recoverable, user-facing results —
// mutations return them, nothing panics. Handlers match with errors.Is and
// surface the wrapped message as-is.
var (
	ErrBoxIneligible   = errors.New("box ineligible")
	ErrTooManyItems    = errors.New("too many distinct items")
	ErrLineCapExceeded = errors.New("per-line cap exceeded")
	ErrTotalKgExceeded = errors.New("total weight exceeded")
	ErrNotFound        = errors.New("not found")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrCadenceBlocked  = errors.New("cadence blocked")
	ErrEmptyCart       = errors.New("empty cart")
)

// Mode selects how the limit policy treats quota ceilings.
type Mode int

const (
	// ModeStandard enforces every ceiling.
	ModeStandard Mode = iota
	// ModeUnrestricted is the privileged-account bypass: quota checks are
	// skipped, the box-eligibility check never is.
	ModeUnrestricted
)

// Ceilings are the order-wide bounds refreshed from the order service.
type Ceilings struct {
	MaxTotalKg int
	MaxItems   int
}

// Sanitized floors the ceilings and substitutes the defaults for
// non-positive values, the same way the order service does.
func (c Ceilings) Sanitized() Ceilings {
	if c.MaxTotalKg < 1 {
		c.MaxTotalKg = DefaultMaxTotalKg
	}
	if c.MaxItems < 1 {
		c.MaxItems = DefaultMaxItems
	}
	return c
}

// ValidateLines decides whether the candidate line set is a legal order.
// Checks run in a fixed order and the first failure wins, so callers and
// tests can rely on exact messages:
//
//  1. box eligibility — enforced in every mode; an order can never carry an
//     ineligible box regardless of privilege
//  2. distinct item count
//  3. per-line cap
//  4. total weight over kg lines
func ValidateLines(lines []Line, c Ceilings, mode Mode) error {
	for _, l := range lines {
		if l.IsBox && !l.AllowBoxes {
			return fmt.Errorf("%w: %s does not allow box orders", ErrBoxIneligible, lineName(l))
		}
	}

	if mode == ModeUnrestricted {
		return nil
	}

	c = c.Sanitized()

	if len(lines) > c.MaxItems {
		return fmt.Errorf("%w: at most %d products per order", ErrTooManyItems, c.MaxItems)
	}

	for _, l := range lines {
		if max := lineCap(l.MaxKgPerOrder); l.Kg > max {
			return fmt.Errorf("%w: %s allows at most %d kg", ErrLineCapExceeded, lineName(l), max)
		}
	}

	if total := TotalKg(lines); total > c.MaxTotalKg {
		return fmt.Errorf("%w: order total may not exceed %d kg", ErrTotalKgExceeded, c.MaxTotalKg)
	}

	return nil
}

func lineName(l Line) string {
	if l.Name != "" {
		return l.Name
	}
	return l.ProductID
}
