package domain

import (
	"strings"
	"time"
)

// DefaultResetDay is the weekday on which the ordering week resets. It is a
// deployment setting, not a business invariant — see CADENCE_RESET_DAY.
const DefaultResetDay = time.Sunday

// WindowStart returns midnight at the most recent occurrence of resetDay at
// or before now, in now's location. Orders placed at or after this instant
// belong to the current cadence window.
func WindowStart(now time.Time, resetDay time.Weekday) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	back := (int(now.Weekday()) - int(resetDay) + 7) % 7
	return midnight.AddDate(0, 0, -back)
}

// CanOrder decides whether a new order is allowed this cadence window.
// Privileged accounts always may. Otherwise exactly one order per window is
// allowed: an order timestamped at the window start already blocks.
//
// This is an advisory client-side decision; the order service enforces the
// same rule authoritatively.
func CanOrder(lastOrder *time.Time, now time.Time, privileged bool, resetDay time.Weekday) bool {
	if privileged {
		return true
	}
	if lastOrder == nil {
		return true
	}
	return lastOrder.Before(WindowStart(now, resetDay))
}

// ParseWeekday maps an English weekday name, any casing, to its time.Weekday.
// Unknown names fall back to DefaultResetDay.
func ParseWeekday(name string) time.Weekday {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(name, d.String()) {
			return d
		}
	}
	return DefaultResetDay
}
