package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Wednesday 2026-01-14 12:00 local; the window opened Sunday 2026-01-11 00:00.
var (
	wednesday   = time.Date(2026, time.January, 14, 12, 0, 0, 0, time.UTC)
	windowStart = time.Date(2026, time.January, 11, 0, 0, 0, 0, time.UTC)
)

func TestWindowStart(t *testing.T) {
	require.Equal(t, windowStart, WindowStart(wednesday, time.Sunday))

	// On the reset day itself the window starts that same midnight.
	sundayNoon := time.Date(2026, time.January, 11, 12, 0, 0, 0, time.UTC)
	require.Equal(t, windowStart, WindowStart(sundayNoon, time.Sunday))

	// A different reset day shifts the boundary.
	mondayStart := time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC)
	require.Equal(t, mondayStart, WindowStart(wednesday, time.Monday))
}

func TestCanOrderNoHistory(t *testing.T) {
	require.True(t, CanOrder(nil, wednesday, false, time.Sunday))
}

func TestCanOrderBlockedWithinWindow(t *testing.T) {
	monday := time.Date(2026, time.January, 12, 9, 30, 0, 0, time.UTC)
	require.False(t, CanOrder(&monday, wednesday, false, time.Sunday))
}

func TestCanOrderPrivilegedBypass(t *testing.T) {
	monday := time.Date(2026, time.January, 12, 9, 30, 0, 0, time.UTC)
	require.True(t, CanOrder(&monday, wednesday, true, time.Sunday))
}

func TestCanOrderWindowBoundary(t *testing.T) {
	// An order at exactly the window start blocks; one millisecond before
	// it belongs to the previous window and does not.
	atBoundary := windowStart
	require.False(t, CanOrder(&atBoundary, wednesday, false, time.Sunday))

	justBefore := windowStart.Add(-time.Millisecond)
	require.True(t, CanOrder(&justBefore, wednesday, false, time.Sunday))
}

func TestCanOrderPreviousWindow(t *testing.T) {
	lastThursday := time.Date(2026, time.January, 8, 18, 0, 0, 0, time.UTC)
	require.True(t, CanOrder(&lastThursday, wednesday, false, time.Sunday))
}

func TestParseWeekday(t *testing.T) {
	require.Equal(t, time.Monday, ParseWeekday("monday"))
	require.Equal(t, time.Friday, ParseWeekday("Friday"))
	require.Equal(t, DefaultResetDay, ParseWeekday("not-a-day"))
	require.Equal(t, DefaultResetDay, ParseWeekday(""))
}
