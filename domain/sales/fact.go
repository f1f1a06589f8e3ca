package sales

// FactSalesRecord is one immutable fact row: one SKU in one channel for one
// week. Volume and money fields are flows; on_hand_unit is a point-in-time
// state and must never be summed across weeks.
type FactSalesRecord struct {
	SkuID                 string  `json:"sku_id" db:"sku_id"`
	ChannelID             string  `json:"channel_id" db:"channel_id"`
	SeasonYear            int     `json:"season_year" db:"season_year"`
	Season                string  `json:"season" db:"season"`
	Wave                  string  `json:"wave" db:"wave"`
	WeekNum               int     `json:"week_num" db:"week_num"`
	UnitSold              float64 `json:"unit_sold" db:"unit_sold"`
	NetSalesAmt           float64 `json:"net_sales_amt" db:"net_sales_amt"`
	DiscountRate          float64 `json:"discount_rate,omitempty" db:"discount_rate"`
	GrossMarginRate       float64 `json:"gross_margin_rate" db:"gross_margin_rate"`
	CumulativeSellThrough float64 `json:"cumulative_sell_through" db:"cumulative_sell_through"`
	OnHandUnit            float64 `json:"on_hand_unit" db:"on_hand_unit"`
}
