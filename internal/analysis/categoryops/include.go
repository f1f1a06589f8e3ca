package categoryops

import (
	"strings"

	"merchops/domain/catalog"
	"merchops/domain/sales"
	"merchops/internal/dataset"
)

// matchesFilters decides whether one fact row belongs to the aggregation
// scope. A forced period overrides the year and season filters; every other
// dimension still applies, which is what makes YoY and MoM baselines
// like-for-like. Rows whose SKU or channel resolves to no dimension row are
// always out of scope.
func matchesFilters(f sales.Filters, rec *sales.FactSalesRecord, sku *dataset.SkuInfo, ch *catalog.DimChannel, forced *sales.Period) bool {
	if sku == nil || ch == nil {
		return false
	}

	if forced != nil {
		if rec.SeasonYear != forced.Year {
			return false
		}
		if forced.Season != sales.All && !strings.EqualFold(rec.Season, forced.Season) {
			return false
		}
	} else {
		if f.SeasonYear != sales.All {
			year, ok := sales.ParseYear(f.SeasonYear)
			if !ok || rec.SeasonYear != year {
				return false
			}
		}
		if f.Season != sales.All && !strings.EqualFold(rec.Season, f.Season) {
			return false
		}
	}
	if f.Wave != sales.All && rec.Wave != f.Wave {
		return false
	}

	if !catalog.MatchCategoryL1(f.CategoryID, sku.DimSku) {
		return false
	}
	if !catalog.MatchCategoryL2(f.SubCategory, sku.DimSku) {
		return false
	}

	if f.ChannelType != sales.All && ch.ChannelType != f.ChannelType {
		return false
	}
	if f.Region != sales.All && ch.Region != f.Region {
		return false
	}
	if f.CityTier != sales.All && ch.CityTier != f.CityTier {
		return false
	}
	if f.StoreFormat != sales.All && ch.StoreFormat != f.StoreFormat {
		return false
	}

	if !catalog.MatchesPriceBandFilter(sku.MSRP, f.PriceBand, sku.PriceBand) {
		return false
	}
	if f.Lifecycle != sales.All && sku.Lifecycle != catalog.NormalizeLifecycle(f.Lifecycle) {
		return false
	}
	if !catalog.MatchesAudienceFilter(sku.TargetAudience, sku.TargetAgeGroup, f.TargetAudience) {
		return false
	}
	if !catalog.MatchesColorFilter(sku.Color, sku.ColorFamily, f.Color) {
		return false
	}
	return true
}

// yoyPeriod resolves the year-over-year baseline period. It needs both a
// concrete year and the season filter carried through unchanged; with the
// season open the baseline spans the whole prior year, which is still
// like-for-like against a whole-year current scope.
func yoyPeriod(f sales.Filters) (*sales.Period, bool) {
	year, ok := sales.ParseYear(f.SeasonYear)
	if !ok {
		return nil, false
	}
	season := f.Season
	if season == "" {
		season = sales.All
	}
	return &sales.Period{Year: year - 1, Season: season}, true
}
