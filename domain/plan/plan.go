// Package plan holds the static merchandising plan used as the "plan"
// comparison baseline. Plan rows carry sales and sell-through targets only;
// there is no cost detail, so plan baselines never produce margin figures.
package plan

// CategoryPlan is the planned position for one category.
type CategoryPlan struct {
	CategoryID      string  `json:"category_id" db:"category_id"`
	PlanSalesAmt    float64 `json:"plan_sales_amt" db:"plan_sales_amt"`
	PlanUnits       float64 `json:"plan_units,omitempty" db:"plan_units"`
	PlanSellThrough float64 `json:"plan_sell_through,omitempty" db:"plan_sell_through"`
	PlanSkuCount    float64 `json:"plan_sku_count,omitempty" db:"plan_sku_count"`
}

// PriceBandPlan is the planned position for one price band.
type PriceBandPlan struct {
	PriceBand       string  `json:"price_band" db:"price_band"`
	PlanSalesAmt    float64 `json:"plan_sales_amt" db:"plan_sales_amt"`
	PlanSellThrough float64 `json:"plan_sell_through,omitempty" db:"plan_sell_through"`
	PlanSkuCount    float64 `json:"plan_sku_count,omitempty" db:"plan_sku_count"`
}

// OverallPlan is the season-level plan summary. Zero fields fall back to the
// category-plan totals.
type OverallPlan struct {
	PlanTotalSales     float64 `json:"plan_total_sales,omitempty" db:"plan_total_sales"`
	PlanTotalUnits     float64 `json:"plan_total_units,omitempty" db:"plan_total_units"`
	PlanAvgSellThrough float64 `json:"plan_avg_sell_through,omitempty" db:"plan_avg_sell_through"`
	PlanActiveSkus     float64 `json:"plan_active_skus,omitempty" db:"plan_active_skus"`
}

// Plan is the full plan document.
type Plan struct {
	SeasonYear    int             `json:"season_year,omitempty"`
	CategoryPlan  []CategoryPlan  `json:"category_plan,omitempty"`
	PriceBandPlan []PriceBandPlan `json:"price_band_plan,omitempty"`
	OverallPlan   *OverallPlan    `json:"overall_plan,omitempty"`
}

// IsEmpty reports whether the plan carries no usable baseline at all.
func (p *Plan) IsEmpty() bool {
	return p == nil || (len(p.CategoryPlan) == 0 && p.OverallPlan == nil)
}
