package categoryops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeDiv(t *testing.T) {
	assert.Equal(t, 2.0, safeDiv(10, 5))
	assert.Zero(t, safeDiv(10, 0))
	assert.Zero(t, safeDiv(0, 0))
}

func TestDeltaPercent(t *testing.T) {
	v := deltaPercent(110, 100)
	require.NotNil(t, v)
	assert.InDelta(t, 0.1, *v, 1e-9)

	assert.Nil(t, deltaPercent(110, 0))
	assert.Nil(t, deltaPercent(110, -5))
}

func TestFormatters(t *testing.T) {
	assert.Equal(t, "12.3万", formatWan(123000))
	assert.Equal(t, "62.0%", formatPercent(0.62))
	assert.Equal(t, "+5.0%", formatSignedPercent(0.05))
	assert.Equal(t, "-5.0%", formatSignedPercent(-0.05))
	assert.Equal(t, "+3.2pp", formatSignedPp(3.2))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", formatCount(0))
	assert.Equal(t, "999", formatCount(999))
	assert.Equal(t, "1,234", formatCount(1234))
	assert.Equal(t, "1,234,568", formatCount(1234567.8))
	assert.Equal(t, "-1,234", formatCount(-1234))
}
