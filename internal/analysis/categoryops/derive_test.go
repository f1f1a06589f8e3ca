package categoryops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveFillRateStaysClamped(t *testing.T) {
	assert.Equal(t, 0.62, DeriveFillRate(-5, -5, 5))
	assert.Equal(t, 0.97, DeriveFillRate(5, 5, 0))

	for _, st := range []float64{0, 0.2, 0.5, 0.8, 1} {
		v := DeriveFillRate(st, 0, 0.3)
		assert.GreaterOrEqual(t, v, 0.62)
		assert.LessOrEqual(t, v, 0.97)
	}
}

func TestDeriveReorderRateStaysClamped(t *testing.T) {
	assert.Equal(t, 0.015, DeriveReorderRate(5, -5, 5))
	assert.Equal(t, 0.35, DeriveReorderRate(0, 5, 0))
}

func TestDeriveFillRateMonotonicInSellThrough(t *testing.T) {
	prev := -1.0
	for _, st := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		v := DeriveFillRate(st, 0.05, 0.3)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestDeriveReorderRateMonotonicInFillRate(t *testing.T) {
	prev := 10.0
	for _, fill := range []float64{0.62, 0.7, 0.8, 0.9, 0.97} {
		v := DeriveReorderRate(fill, 0.05, 0.3)
		assert.LessOrEqual(t, v, prev)
		prev = v
	}
}

func TestInventoryPressureBounds(t *testing.T) {
	assert.Equal(t, 0.0, inventoryPressure(0, 0))
	assert.Equal(t, 0.5, inventoryPressure(100, 100))
	assert.InDelta(t, 1.0, inventoryPressure(1e9, 1), 1e-6)
}
