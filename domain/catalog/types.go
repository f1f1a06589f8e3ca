package catalog

// DimSku is one row of the SKU dimension table. Free-text fields (lifecycle,
// price band, category) are normalized at snapshot construction, not here.
type DimSku struct {
	SkuID          string  `json:"sku_id" db:"sku_id"`
	SkuName        string  `json:"sku_name,omitempty" db:"sku_name"`
	CategoryID     string  `json:"category_id" db:"category_id"`
	CategoryName   string  `json:"category_name,omitempty" db:"category_name"`
	CategoryL2     string  `json:"category_l2,omitempty" db:"category_l2"`
	ProductLine    string  `json:"product_line,omitempty" db:"product_line"`
	PriceBand      string  `json:"price_band,omitempty" db:"price_band"`
	MSRP           float64 `json:"msrp" db:"msrp"`
	Lifecycle      string  `json:"lifecycle,omitempty" db:"lifecycle"`
	TargetAgeGroup string  `json:"target_age_group,omitempty" db:"target_age_group"`
	TargetAudience string  `json:"target_audience,omitempty" db:"target_audience"`
	Color          string  `json:"color,omitempty" db:"color"`
	ColorFamily    string  `json:"color_family,omitempty" db:"color_family"`
}

// DimChannel is one row of the channel dimension table.
type DimChannel struct {
	ChannelID   string `json:"channel_id" db:"channel_id"`
	ChannelType string `json:"channel_type" db:"channel_type"`
	Region      string `json:"region" db:"region"`
	CityTier    string `json:"city_tier" db:"city_tier"`
	StoreFormat string `json:"store_format" db:"store_format"`
}
