package sales

// All is the sentinel meaning "no restriction" for a filter dimension.
const All = "all"

// Filters is the full dashboard filter set. Every field holds either a
// concrete value or the All sentinel; the zero value is not valid, use
// NewFilters.
type Filters struct {
	SeasonYear     string `json:"season_year"`
	Season         string `json:"season"`
	Wave           string `json:"wave"`
	CategoryID     string `json:"category_id"`
	SubCategory    string `json:"sub_category"`
	ChannelType    string `json:"channel_type"`
	PriceBand      string `json:"price_band"`
	Lifecycle      string `json:"lifecycle"`
	Region         string `json:"region"`
	CityTier       string `json:"city_tier"`
	StoreFormat    string `json:"store_format"`
	TargetAudience string `json:"target_audience"`
	Color          string `json:"color"`
}

// NewFilters returns a filter set with every dimension open.
func NewFilters() Filters {
	return Filters{
		SeasonYear:     All,
		Season:         All,
		Wave:           All,
		CategoryID:     All,
		SubCategory:    All,
		ChannelType:    All,
		PriceBand:      All,
		Lifecycle:      All,
		Region:         All,
		CityTier:       All,
		StoreFormat:    All,
		TargetAudience: All,
		Color:          All,
	}
}

// Normalize fills empty dimensions with the All sentinel so partially
// populated filter records (query params, JSON bodies) behave as open.
func (f Filters) Normalize() Filters {
	fill := func(v string) string {
		if v == "" {
			return All
		}
		return v
	}
	f.SeasonYear = fill(f.SeasonYear)
	f.Season = fill(f.Season)
	f.Wave = fill(f.Wave)
	f.CategoryID = fill(f.CategoryID)
	f.SubCategory = fill(f.SubCategory)
	f.ChannelType = fill(f.ChannelType)
	f.PriceBand = fill(f.PriceBand)
	f.Lifecycle = fill(f.Lifecycle)
	f.Region = fill(f.Region)
	f.CityTier = fill(f.CityTier)
	f.StoreFormat = fill(f.StoreFormat)
	f.TargetAudience = fill(f.TargetAudience)
	f.Color = fill(f.Color)
	return f
}
