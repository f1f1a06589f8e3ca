package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePriceBand(t *testing.T) {
	tests := []struct {
		raw  string
		want PriceBand
	}{
		{"PB1", PB1},
		{"pb2", PB2},
		{" PB3 ", PB3},
		{"PB5", PB3},
		{"PB6", PB3},
		{"PB7", PB4},
		{"399-599", PB2},
		{"700+", PB3},
		{"199-299", PB1},
		{"", PBX},
		{"whatever", PBX},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePriceBand(tt.raw), tt.raw)
	}
}

func TestResolvePriceBandByMSRP(t *testing.T) {
	assert.Equal(t, PBX, ResolvePriceBandByMSRP(0))
	assert.Equal(t, PBX, ResolvePriceBandByMSRP(-10))
	assert.Equal(t, PBX, ResolvePriceBandByMSRP(math.NaN()))
	assert.Equal(t, PB1, ResolvePriceBandByMSRP(199))
	assert.Equal(t, PB1, ResolvePriceBandByMSRP(398.99))
	assert.Equal(t, PB2, ResolvePriceBandByMSRP(399))
	assert.Equal(t, PB3, ResolvePriceBandByMSRP(650))
	assert.Equal(t, PB4, ResolvePriceBandByMSRP(800))
	assert.Equal(t, PB4, ResolvePriceBandByMSRP(5000))
}

func TestPriceBandLabelAndRank(t *testing.T) {
	assert.Equal(t, "199-399", PB1.Label())
	assert.Equal(t, "800+", PB4.Label())
	assert.Equal(t, "未定义价格带", PBX.Label())

	assert.Less(t, PB1.SortRank(), PB2.SortRank())
	assert.Less(t, PB4.SortRank(), PBX.SortRank())
}

func TestMatchesPriceBandFilter(t *testing.T) {
	assert.True(t, MatchesPriceBandFilter(650, "all", PBX))
	assert.True(t, MatchesPriceBandFilter(650, "", PBX))

	// An explicit SKU band wins over the MSRP-derived one.
	assert.True(t, MatchesPriceBandFilter(650, "PB2", PB2))
	assert.False(t, MatchesPriceBandFilter(650, "PB3", PB2))

	// Without an explicit band the filter re-derives from MSRP.
	assert.True(t, MatchesPriceBandFilter(650, "PB3", PBX))
	assert.False(t, MatchesPriceBandFilter(650, "PB1", PBX))

	// An unresolvable selection is treated as open.
	assert.True(t, MatchesPriceBandFilter(650, "nonsense", PB1))
}
