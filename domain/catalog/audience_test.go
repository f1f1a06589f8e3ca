package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesAudienceFilter(t *testing.T) {
	assert.True(t, MatchesAudienceFilter("18-23岁 GenZ", "18-25", "all"))
	assert.True(t, MatchesAudienceFilter("18-23岁 GenZ", "18-25", ""))

	assert.True(t, MatchesAudienceFilter("18-23岁 GenZ", "", "18-23岁 GenZ"))
	assert.True(t, MatchesAudienceFilter("", "26-35", "26-35"))

	// A selected audience label matches SKUs tagged only by age group.
	assert.True(t, MatchesAudienceFilter("", "46+", "35岁以上"))
	assert.True(t, MatchesAudienceFilter("", "36-45", "35岁以上"))
	assert.False(t, MatchesAudienceFilter("", "26-35", "18-23岁 GenZ"))
	assert.False(t, MatchesAudienceFilter("", "", "35岁以上"))
}

func TestMatchesColorFilter(t *testing.T) {
	assert.True(t, MatchesColorFilter("黑色", "深色系", "all"))
	assert.True(t, MatchesColorFilter("黑色", "深色系", "黑色"))
	assert.True(t, MatchesColorFilter("黑色", "深色系", "深色系"))
	assert.False(t, MatchesColorFilter("黑色", "深色系", "白色"))
}
