package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCeilings() Ceilings {
	return Ceilings{MaxTotalKg: 10, MaxItems: 2}
}

func TestValidateLinesOK(t *testing.T) {
	lines := []Line{{ProductID: "p1", Kg: 3, MaxKgPerOrder: 10}}
	require.NoError(t, ValidateLines(lines, testCeilings(), ModeStandard))
}

func TestValidateLinesBoxIneligibleWinsFirst(t *testing.T) {
	// This set violates every check at once; box eligibility must be the
	// error that is reported.
	lines := []Line{
		{ProductID: "p1", Name: "Vacío", Kg: 50, MaxKgPerOrder: 5, IsBox: true, AllowBoxes: false},
		{ProductID: "p2", Kg: 50, MaxKgPerOrder: 5},
		{ProductID: "p3", Kg: 50, MaxKgPerOrder: 5},
	}

	err := ValidateLines(lines, testCeilings(), ModeStandard)
	require.ErrorIs(t, err, ErrBoxIneligible)
	require.Contains(t, err.Error(), "Vacío")
}

func TestValidateLinesTooManyItems(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", Kg: 1, MaxKgPerOrder: 10},
		{ProductID: "p2", Kg: 1, MaxKgPerOrder: 10},
		{ProductID: "p3", Kg: 1, MaxKgPerOrder: 10},
	}

	err := ValidateLines(lines, testCeilings(), ModeStandard)
	require.ErrorIs(t, err, ErrTooManyItems)
	require.Contains(t, err.Error(), "2")
}

func TestValidateLinesPerLineCapNamesProduct(t *testing.T) {
	lines := []Line{{ProductID: "p1", Name: "Matambre", Kg: 8, MaxKgPerOrder: 5}}

	err := ValidateLines(lines, testCeilings(), ModeStandard)
	require.ErrorIs(t, err, ErrLineCapExceeded)
	require.Contains(t, err.Error(), "Matambre")
	require.Contains(t, err.Error(), "5")
}

func TestValidateLinesPerLineCapFallsBackToProductID(t *testing.T) {
	lines := []Line{{ProductID: "p9", Kg: 20, MaxKgPerOrder: 5}}

	err := ValidateLines(lines, testCeilings(), ModeStandard)
	require.ErrorIs(t, err, ErrLineCapExceeded)
	require.Contains(t, err.Error(), "p9")
}

func TestValidateLinesTotalKg(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", Kg: 6, MaxKgPerOrder: 10},
		{ProductID: "p2", Kg: 5, MaxKgPerOrder: 10},
	}

	err := ValidateLines(lines, testCeilings(), ModeStandard)
	require.ErrorIs(t, err, ErrTotalKgExceeded)
	require.Contains(t, err.Error(), "10")
}

func TestValidateLinesBoxLinesExcludedFromWeight(t *testing.T) {
	// 8 kg of meat plus 20 boxes: boxes are a separate unit, so the weight
	// ceiling of 10 is respected.
	lines := []Line{
		{ProductID: "p1", Kg: 8, MaxKgPerOrder: 10},
		{ProductID: "p2", Kg: 20, MaxKgPerOrder: 30, AllowBoxes: true, IsBox: true},
	}
	require.NoError(t, ValidateLines(lines, testCeilings(), ModeStandard))
}

func TestValidateLinesUnrestrictedSkipsQuotasOnly(t *testing.T) {
	huge := []Line{
		{ProductID: "p1", Kg: 500, MaxKgPerOrder: 5},
		{ProductID: "p2", Kg: 500, MaxKgPerOrder: 5},
		{ProductID: "p3", Kg: 500, MaxKgPerOrder: 5},
	}
	require.NoError(t, ValidateLines(huge, testCeilings(), ModeUnrestricted))

	// The eligibility check is a catalog-integrity rule, never bypassed.
	withBadBox := append(huge[:2:2], Line{ProductID: "p4", Kg: 1, IsBox: true, AllowBoxes: false})
	require.ErrorIs(t, ValidateLines(withBadBox, testCeilings(), ModeUnrestricted), ErrBoxIneligible)
}

func TestCeilingsSanitized(t *testing.T) {
	require.Equal(t, Ceilings{MaxTotalKg: 10, MaxItems: 2}, Ceilings{}.Sanitized())
	require.Equal(t, Ceilings{MaxTotalKg: 10, MaxItems: 2}, Ceilings{MaxTotalKg: -4, MaxItems: 0}.Sanitized())
	require.Equal(t, Ceilings{MaxTotalKg: 25, MaxItems: 6}, Ceilings{MaxTotalKg: 25, MaxItems: 6}.Sanitized())
}

func TestValidateLinesUsesFallbackCap(t *testing.T) {
	// MaxKgPerOrder 0 means "no valid cap": the fallback of 10 applies.
	ok := []Line{{ProductID: "p1", Kg: 10}}
	require.NoError(t, ValidateLines(ok, Ceilings{MaxTotalKg: 50, MaxItems: 5}, ModeStandard))

	over := []Line{{ProductID: "p1", Kg: 11}}
	require.ErrorIs(t, ValidateLines(over, Ceilings{MaxTotalKg: 50, MaxItems: 5}, ModeStandard), ErrLineCapExceeded)
}
