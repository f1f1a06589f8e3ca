package catalog

// Audience labels map onto one or more age-group labels; a filter on either
// vocabulary must match the same SKUs.
var audienceToAgeGroup = map[string][]string{
	"18-23岁 GenZ":  {"18-25"},
	"24-28岁 职场新人":  {"26-35"},
	"29-35岁 资深中产":  {"26-35"},
	"35岁以上":        {"36-45", "46+"},
}

// MatchesAudienceFilter reports whether a SKU matches the selected audience,
// by raw audience label, by age group, or through the audience-to-age mapping.
func MatchesAudienceFilter(targetAudience, targetAgeGroup, selected string) bool {
	if selected == "all" || selected == "" {
		return true
	}
	if targetAudience == selected || targetAgeGroup == selected {
		return true
	}
	if targetAgeGroup == "" {
		return false
	}
	for _, group := range audienceToAgeGroup[selected] {
		if group == targetAgeGroup {
			return true
		}
	}
	return false
}

// MatchesColorFilter reports whether a SKU matches the selected color by
// exact color or color-family.
func MatchesColorFilter(color, colorFamily, selected string) bool {
	if selected == "all" || selected == "" {
		return true
	}
	return color == selected || colorFamily == selected
}
