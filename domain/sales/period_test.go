package sales

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYear(t *testing.T) {
	year, ok := ParseYear("2024")
	require.True(t, ok)
	assert.Equal(t, 2024, year)

	year, ok = ParseYear(" 2023 ")
	require.True(t, ok)
	assert.Equal(t, 2023, year)

	_, ok = ParseYear(All)
	assert.False(t, ok)
	_, ok = ParseYear("")
	assert.False(t, ok)
	_, ok = ParseYear("20x4")
	assert.False(t, ok)
}

func TestPriorQuarter(t *testing.T) {
	f := NewFilters()
	f.SeasonYear = "2024"
	f.Season = "Q3"
	period, ok := PriorQuarter(f)
	require.True(t, ok)
	assert.Equal(t, Period{Year: 2024, Season: "Q2"}, period)

	f.Season = "q2"
	period, ok = PriorQuarter(f)
	require.True(t, ok)
	assert.Equal(t, Period{Year: 2024, Season: "Q1"}, period)
}

func TestPriorQuarterRollsAcrossYears(t *testing.T) {
	f := NewFilters()
	f.SeasonYear = "2024"
	f.Season = "Q1"
	period, ok := PriorQuarter(f)
	require.True(t, ok)
	assert.Equal(t, Period{Year: 2023, Season: "Q4"}, period)
}

func TestPriorQuarterNeedsConcreteQuarter(t *testing.T) {
	f := NewFilters()
	f.SeasonYear = "2024"

	_, ok := PriorQuarter(f)
	assert.False(t, ok)

	f.Season = "春季"
	_, ok = PriorQuarter(f)
	assert.False(t, ok)

	f.Season = "Q2"
	f.SeasonYear = All
	_, ok = PriorQuarter(f)
	assert.False(t, ok)
}

func TestFiltersNormalize(t *testing.T) {
	f := Filters{SeasonYear: "2024"}.Normalize()
	assert.Equal(t, "2024", f.SeasonYear)
	assert.Equal(t, All, f.Season)
	assert.Equal(t, All, f.CategoryID)
	assert.Equal(t, All, f.Color)
}
