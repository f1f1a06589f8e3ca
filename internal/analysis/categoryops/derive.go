package categoryops

// The fact table has no shipment or reorder events yet, so fulfillment and
// reorder pressure are derived from sell-through, demand momentum, and
// inventory pressure. v0 heuristic: replace with measured rates once the
// shipment feed lands.

// DeriveFillRate estimates the fulfillment execution rate. Monotone up in
// sell-through and momentum, down in inventory pressure, clamped to a
// plausible retail band.
func DeriveFillRate(sellThrough, yoy, pressure float64) float64 {
	return clamp(0.74+sellThrough*0.2+yoy*0.08-pressure*0.12, 0.62, 0.97)
}

// DeriveReorderRate estimates reorder intensity from the fill shortfall and
// demand momentum. High fill leaves little to reorder; growth adds pressure.
func DeriveReorderRate(fillRate, yoy, pressure float64) float64 {
	v := 0.03 +
		maxFloat(0, 0.9-fillRate)*0.4 +
		maxFloat(0, yoy)*0.2 -
		maxFloat(0, pressure-0.4)*0.05
	return clamp(v, 0.015, 0.35)
}

// inventoryPressure is the stock share of total supply: 0 when nothing is on
// hand, approaching 1 when stock dwarfs sales.
func inventoryPressure(onHand, pairsSold float64) float64 {
	return safeDiv(onHand, onHand+pairsSold)
}
