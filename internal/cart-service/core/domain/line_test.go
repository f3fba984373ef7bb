package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeLineDefaults(t *testing.T) {
	got := NormalizeLine(Line{ProductID: "p1"})

	require.Equal(t, 1, got.Kg)
	require.Equal(t, DefaultMaxKgPerLine, got.MaxKgPerOrder)
	require.False(t, got.IsBox)
	require.Zero(t, got.Price)
}

func TestNormalizeLineDropsBoxWhenNotAllowed(t *testing.T) {
	got := NormalizeLine(Line{ProductID: "p1", Kg: 2, IsBox: true, AllowBoxes: false})
	require.False(t, got.IsBox)

	got = NormalizeLine(Line{ProductID: "p1", Kg: 2, IsBox: true, AllowBoxes: true})
	require.True(t, got.IsBox)
}

func TestNormalizeLineNegativeValues(t *testing.T) {
	got := NormalizeLine(Line{ProductID: "p1", Kg: -3, Price: -10, MaxKgPerOrder: -1})

	require.Equal(t, 1, got.Kg)
	require.Zero(t, got.Price)
	require.Equal(t, DefaultMaxKgPerLine, got.MaxKgPerOrder)
}

func TestNormalizeLineIsIdempotent(t *testing.T) {
	inputs := []Line{
		{},
		{ProductID: "p1", Name: "Asado", Price: 12.5, Kg: 3, MaxKgPerOrder: 5, AllowBoxes: true, IsBox: true},
		{ProductID: "p2", Kg: -1, MaxKgPerOrder: 0, IsBox: true},
	}
	for _, in := range inputs {
		once := NormalizeLine(in)
		require.Equal(t, once, NormalizeLine(once))
	}
}

func TestUnitLabel(t *testing.T) {
	require.Equal(t, "kg", UnitLabel(false, 1))
	require.Equal(t, "kg", UnitLabel(false, 5))
	require.Equal(t, "caja", UnitLabel(true, 1))
	require.Equal(t, "cajas", UnitLabel(true, 2))
}

func TestFormatQuantity(t *testing.T) {
	require.Equal(t, "3 kg", FormatQuantity(3, false))
	require.Equal(t, "1 caja", FormatQuantity(1, true))
	require.Equal(t, "4 cajas", FormatQuantity(4, true))
}

func TestPriceKnown(t *testing.T) {
	kg := Line{ProductID: "p1", Kg: 2, Price: 10}
	box := Line{ProductID: "p2", Kg: 1, AllowBoxes: true, IsBox: true}

	require.True(t, PriceKnown(nil))
	require.True(t, PriceKnown([]Line{kg}))
	require.False(t, PriceKnown([]Line{kg, box}))
	require.False(t, PriceKnown([]Line{box}))
}

func TestUnitsKeepsKgAndBoxesApart(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", Kg: 3},
		{ProductID: "p2", Kg: 2, AllowBoxes: true, IsBox: true},
		{ProductID: "p3", Kg: 4},
	}

	units := Units(lines)
	require.Equal(t, 7, units.Kg)
	require.Equal(t, 2, units.Boxes)
	require.Equal(t, 7, TotalKg(lines))
}

func TestTotalPriceIgnoresBoxLines(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", Kg: 2, Price: 10},
		{ProductID: "p2", Kg: 3, Price: 99, AllowBoxes: true, IsBox: true},
	}
	require.Equal(t, 20.0, TotalPrice(lines))
}
