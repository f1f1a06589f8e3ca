package categoryops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantileLinearInterpolation(t *testing.T) {
	values := []float64{50, 10, 40, 20, 30}

	assert.Equal(t, 10.0, quantile(values, 0))
	assert.Equal(t, 50.0, quantile(values, 1))
	assert.Equal(t, 30.0, quantile(values, 0.5))
	// idx = 1.6 between 20 and 30.
	assert.InDelta(t, 26, quantile(values, 0.4), 1e-9)
	// idx = 3.2 between 40 and 50.
	assert.InDelta(t, 42, quantile(values, 0.8), 1e-9)
}

func TestQuantileEdgeCases(t *testing.T) {
	assert.Zero(t, quantile(nil, 0.5))
	assert.Equal(t, 7.0, quantile([]float64{7}, 0.8))
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	quantile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}
