package domain

import "fmt"

// Ceiling defaults applied when the remote order settings have not been
// fetched yet, or arrive with non-positive values.
const (
	DefaultMaxTotalKg = 10
	DefaultMaxItems   = 2

	// DefaultMaxKgPerLine is the fallback per-product cap used when a product
	// carries no valid cap of its own.
	DefaultMaxKgPerLine = 10
)

// Line is one product inside a cart: the requested quantity, the unit mode,
// and the display fields the UI needs. Kg holds kilograms for weight lines
// and a box count for box lines — the field keeps the name the persisted
// snapshots have always used.
type Line struct {
	ProductID     string  `json:"productId"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Kg            int     `json:"kg"`
	MaxKgPerOrder int     `json:"maxKgPerOrder"`
	AllowBoxes    bool    `json:"allowBoxes"`
	IsBox         bool    `json:"isBox"`
}

// Snapshot is the persisted cart state, stored verbatim across sessions and
// re-normalized on every load.
type Snapshot struct {
	Items      []Line `json:"items"`
	MaxTotalKg int    `json:"maxTotalKg"`
	MaxItems   int    `json:"maxItems"`
}

// NormalizeLine coerces a raw line into its canonical shape. It is
// idempotent: normalizing an already-normalized line returns the same value.
// A box flag on a product that does not allow boxes is dropped here; forcing
// a line *into* box mode is still rejected by the unit-mode mutation.
func NormalizeLine(l Line) Line {
	if l.Price < 0 {
		l.Price = 0
	}
	if l.Kg < 1 {
		l.Kg = 1
	}
	l.MaxKgPerOrder = lineCap(l.MaxKgPerOrder)
	if !l.AllowBoxes {
		l.IsBox = false
	}
	return l
}

// lineCap resolves the effective per-line cap for a stored cap value.
func lineCap(v int) int {
	if v < 1 {
		return DefaultMaxKgPerLine
	}
	return v
}

// UnitLabel returns the display unit for a line: "kg" for weight lines,
// "caja"/"cajas" for box lines depending on the quantity.
func UnitLabel(isBox bool, quantity int) string {
	if !isBox {
		return "kg"
	}
	if quantity == 1 {
		return "caja"
	}
	return "cajas"
}

// FormatQuantity renders a quantity with its unit, e.g. "3 kg" or "2 cajas".
func FormatQuantity(quantity int, isBox bool) string {
	return fmt.Sprintf("%d %s", quantity, UnitLabel(isBox, quantity))
}

// PriceKnown reports whether a total price can be shown for the given lines.
// Box pricing is negotiated per product and never resolvable client-side, so
// any box line makes the order total unknown.
func PriceKnown(lines []Line) bool {
	for _, l := range lines {
		if l.IsBox {
			return false
		}
	}
	return true
}

// UnitTotals carries the two order units as independent quantities.
// Kilograms and boxes are never summed together.
type UnitTotals struct {
	Kg    int `json:"totalKg"`
	Boxes int `json:"totalBoxes"`
}

// Units aggregates the lines into per-unit totals.
func Units(lines []Line) UnitTotals {
	var t UnitTotals
	for _, l := range lines {
		if l.IsBox {
			t.Boxes += l.Kg
		} else {
			t.Kg += l.Kg
		}
	}
	return t
}

// TotalKg is the weight total across kg lines only. Box lines consume a
// separate, uncapped unit and never count toward weight.
func TotalKg(lines []Line) int {
	return Units(lines).Kg
}

// TotalPrice sums quantity×price over kg lines. Box lines contribute 0;
// callers must check PriceKnown before treating the result as an order total.
func TotalPrice(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		if l.IsBox {
			continue
		}
		total += float64(l.Kg) * l.Price
	}
	return total
}
