// Package categoryops implements the category and price-band operations
// analytics engine: a deterministic, synchronous recomputation over an
// immutable dataset snapshot. One call aggregates fact rows into category and
// category-by-price-band buckets, joins an optional comparison baseline, and
// renders KPIs, heatmaps, rankings, SKU actions, and OTB reallocation
// suggestions for the merchandising dashboard.
package categoryops

import "merchops/domain/catalog"

// HeatXAxis selects how heatmap columns are grouped.
type HeatXAxis string

const (
	HeatXAxisElement   HeatXAxis = "element"
	HeatXAxisCategory  HeatXAxis = "category"
	HeatXAxisPriceBand HeatXAxis = "price_band"
)

// SellThroughMode selects which sell-through reading feeds every output:
// the cumulative figure carried on fact rows, or the effective figure with
// lifecycle-dampened on-hand.
type SellThroughMode string

const (
	SellThroughCumulative SellThroughMode = "cumulative"
	SellThroughEffective  SellThroughMode = "effective"
)

// CompareMode selects the baseline strategy.
type CompareMode string

const (
	CompareNone CompareMode = "none"
	ComparePlan CompareMode = "plan"
	CompareYoY  CompareMode = "yoy"
	CompareMoM  CompareMode = "mom"
)

// CategoryLevel selects the aggregation grain: canonical L1 categories or
// their L2 sub-categories.
type CategoryLevel string

const (
	CategoryLevelL1 CategoryLevel = "l1"
	CategoryLevelL2 CategoryLevel = "l2"
)

// Options are the mode inputs of one engine run.
type Options struct {
	HeatmapXAxis    HeatXAxis       `json:"heatmapXAxis"`
	SellThroughMode SellThroughMode `json:"sellThroughMode"`
	CompareMode     CompareMode     `json:"compareMode"`
	CategoryLevel   CategoryLevel   `json:"categoryLevel"`
}

// DefaultOptions mirror the dashboard's initial state.
func DefaultOptions() Options {
	return Options{
		HeatmapXAxis:    HeatXAxisElement,
		SellThroughMode: SellThroughCumulative,
		CompareMode:     CompareNone,
		CategoryLevel:   CategoryLevelL1,
	}
}

func (o Options) normalize() Options {
	switch o.HeatmapXAxis {
	case HeatXAxisElement, HeatXAxisCategory, HeatXAxisPriceBand:
	default:
		o.HeatmapXAxis = HeatXAxisElement
	}
	switch o.SellThroughMode {
	case SellThroughCumulative, SellThroughEffective:
	default:
		o.SellThroughMode = SellThroughCumulative
	}
	switch o.CompareMode {
	case CompareNone, ComparePlan, CompareYoY, CompareMoM:
	default:
		o.CompareMode = CompareNone
	}
	switch o.CategoryLevel {
	case CategoryLevelL1, CategoryLevelL2:
	default:
		o.CategoryLevel = CategoryLevelL1
	}
	return o
}

// Tone is the traffic-light severity attached to cards.
type Tone string

const (
	ToneGood Tone = "good"
	ToneWarn Tone = "warn"
	ToneRisk Tone = "risk"
)

// Totals summarizes the current aggregation. Demand and ship pairs are
// derived from the v0 fill-rate heuristic, not measured.
type Totals struct {
	NetSales       float64 `json:"netSales"`
	PairsSold      float64 `json:"pairsSold"`
	CategoryCount  int     `json:"categoryCount"`
	SkuCount       int     `json:"skuCount"`
	StoreCount     int     `json:"storeCount"`
	DemandPairs    float64 `json:"demandPairs"`
	ShipPairs      float64 `json:"shipPairs"`
	SellShipRatio  float64 `json:"sellShipRatio"`
	AvgSellThrough float64 `json:"avgSellThrough"`
	AvgFillRate    float64 `json:"avgFillRate"`
	AvgReorderRate float64 `json:"avgReorderRate"`
}

// BaselineTotals is the parallel summary of the chosen baseline.
type BaselineTotals struct {
	NetSales       float64 `json:"netSales"`
	PairsSold      float64 `json:"pairsSold"`
	AvgSellThrough float64 `json:"avgSellThrough"`
	ActiveSku      int     `json:"activeSku"`
	StoreCount     int     `json:"storeCount"`
}

// CompareMeta describes the active comparison for presentation.
type CompareMeta struct {
	Mode             CompareMode `json:"mode"`
	ModeLabel        string      `json:"modeLabel"`
	DeltaLabel       string      `json:"deltaLabel"`
	BaselineLabel    string      `json:"baselineLabel"`
	SellThroughLabel string      `json:"sellThroughLabel"`
	HasBaseline      bool        `json:"hasBaseline"`
	Note             string      `json:"note"`
}

// BizKpi is one top-strip business KPI card.
type BizKpi struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Value       float64  `json:"value"`
	ValueKind   string   `json:"valueKind"` // amount | pairs | percent | count
	DeltaValue  *float64 `json:"deltaValue"`
	DeltaKind   string   `json:"deltaKind"` // percent | pp
	Description string   `json:"description"`
}

// PlanBiasCard contrasts one planned figure with its realized counterpart.
type PlanBiasCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ActualLabel string `json:"actualLabel"`
	PlanLabel   string `json:"planLabel"`
	GapLabel    string `json:"gapLabel"`
	Tone        Tone   `json:"tone"`
	Note        string `json:"note"`
}

// KpiCard is one of the four ranked top-element cards.
type KpiCard struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Element   string  `json:"element"`
	Value     float64 `json:"value"`
	ValueKind string  `json:"valueKind"` // percent | pp
	SubValue  string  `json:"subValue"`
	Tone      Tone    `json:"tone"`
}

// SunburstNode is the product-line to category value tree.
type SunburstNode struct {
	Name        string         `json:"name"`
	Value       float64        `json:"value"`
	SellThrough float64        `json:"sellThrough"`
	Children    []SunburstNode `json:"children,omitempty"`
}

// ScatterPoint is one category in the contribution/momentum quadrant chart.
type ScatterPoint struct {
	ID                    string  `json:"id"`
	CategoryID            string  `json:"categoryId"`
	CategoryFilterID      string  `json:"categoryFilterId"`
	Category              string  `json:"category"`
	ProductLine           string  `json:"productLine"`
	NetSales              float64 `json:"netSales"`
	ContributionShare     float64 `json:"contributionShare"`
	Momentum              float64 `json:"momentum"`
	SellThrough           float64 `json:"sellThrough"`
	FillRate              float64 `json:"fillRate"`
	ReorderRate           float64 `json:"reorderRate"`
	ASP                   float64 `json:"asp"`
	SalesPerSkc           float64 `json:"salesPerSkc"`
	SkuCount              int     `json:"skuCount"`
	PrimaryLifecycleLabel string  `json:"primaryLifecycleLabel"`
	PriceBandMix          string  `json:"priceBandMix"`
}

// ScatterReference carries the quadrant split lines.
type ScatterReference struct {
	ASPAvg               float64 `json:"aspAvg"`
	SalesPerSkcAvg       float64 `json:"salesPerSkcAvg"`
	ContributionShareAvg float64 `json:"contributionShareAvg"`
	MomentumAvg          float64 `json:"momentumAvg"`
}

// WaterfallPoint is one category's signed contribution to the total delta.
type WaterfallPoint struct {
	ID               string  `json:"id"`
	CategoryID       string  `json:"categoryId"`
	Category         string  `json:"category"`
	DeltaNetSales    float64 `json:"deltaNetSales"`
	CurrentNetSales  float64 `json:"currentNetSales"`
	BaselineNetSales float64 `json:"baselineNetSales"`
}

// ParetoPoint is one rank of the SKU concentration curve.
type ParetoPoint struct {
	Rank            int     `json:"rank"`
	SkuID           string  `json:"skuId"`
	Category        string  `json:"category"`
	NetSales        float64 `json:"netSales"`
	Share           float64 `json:"share"`
	CumulativeShare float64 `json:"cumulativeShare"`
}

// Pareto is the concentration curve plus headline concentration scalars.
type Pareto struct {
	Points     []ParetoPoint `json:"points"`
	Top10Share float64       `json:"top10Share"`
	Top20Share float64       `json:"top20Share"`
}

// DepthBin is one histogram bin of per-SKU sold depth.
type DepthBin struct {
	Label string  `json:"label"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// DepthSummary segments SKUs into S-class, main, and tail by sold-depth
// quantile thresholds.
type DepthSummary struct {
	SCount        int     `json:"sCount"`
	MainCount     int     `json:"mainCount"`
	TailCount     int     `json:"tailCount"`
	SThreshold    float64 `json:"sThreshold"`
	MainThreshold float64 `json:"mainThreshold"`
}

// DepthScatterPoint is one SKU in the depth/sell-through scatter.
type DepthScatterPoint struct {
	SkuID          string  `json:"skuId"`
	CategoryID     string  `json:"categoryId"`
	Category       string  `json:"category"`
	PriceBand      string  `json:"priceBand"`
	PriceBandLabel string  `json:"priceBandLabel"`
	LifecycleLabel string  `json:"lifecycleLabel"`
	PairsSold      float64 `json:"pairsSold"`
	SellThrough    float64 `json:"sellThrough"`
	OnHandUnits    float64 `json:"onHandUnits"`
	GmRate         float64 `json:"gmRate"`
	DiscountRate   float64 `json:"discountRate"`
	Action         string  `json:"action"`
}

// Depth bundles the SKU depth analysis.
type Depth struct {
	Bins          []DepthBin          `json:"bins"`
	Summary       DepthSummary        `json:"summary"`
	ScatterPoints []DepthScatterPoint `json:"scatterPoints"`
}

// OtbSuggestion is one category's open-to-buy weight proposal.
type OtbSuggestion struct {
	CategoryID      string  `json:"categoryId"`
	Category        string  `json:"category"`
	SalesShare      float64 `json:"salesShare"`
	GmShare         float64 `json:"gmShare"`
	SkuShare        float64 `json:"skuShare"`
	SuggestedWeight float64 `json:"suggestedWeight"`
	DeltaPp         float64 `json:"deltaPp"`
	Reason          string  `json:"reason"`
}

// SkuActionRow is one SKU's rule-based action classification.
type SkuActionRow struct {
	SkuID            string  `json:"skuId"`
	CategoryID       string  `json:"categoryId"`
	CategoryFilterID string  `json:"categoryFilterId"`
	Category         string  `json:"category"`
	SkuName          string  `json:"skuName"`
	PriceBand        string  `json:"priceBand"`
	PriceBandLabel   string  `json:"priceBandLabel"`
	PairsSold        float64 `json:"pairsSold"`
	NetSales         float64 `json:"netSales"`
	SellThrough      float64 `json:"sellThrough"`
	OnHandUnits      float64 `json:"onHandUnits"`
	DiscountRate     float64 `json:"discountRate"`
	Action           string  `json:"action"`
	Reason           string  `json:"reason"`
}

// TrendPoint is one week of the sell-through trend.
type TrendPoint struct {
	WeekNum             int      `json:"weekNum"`
	SellThrough         float64  `json:"sellThrough"`
	NetSales            float64  `json:"netSales"`
	BaselineSellThrough *float64 `json:"baselineSellThrough"`
}

// HeatCell is one category-by-price-band element with its gap metrics.
type HeatCell struct {
	ID               string            `json:"id"`
	CategoryID       string            `json:"categoryId"`
	Category         string            `json:"category"`
	ProductLine      string            `json:"productLine"`
	PriceBand        catalog.PriceBand `json:"priceBand"`
	ElementLabel     string            `json:"elementLabel"`
	NetSales         float64           `json:"netSales"`
	PairsSold        float64           `json:"pairsSold"`
	SkcCnt           int               `json:"skcCnt"`
	ASP              float64           `json:"asp"`
	SalesPerSkc      float64           `json:"salesPerSkc"`
	SellThrough      float64           `json:"sellThrough"`
	FillRate         float64           `json:"fillRate"`
	ReorderRate      float64           `json:"reorderRate"`
	FillGapPp        float64           `json:"fillGapPp"`
	ReorderGapPp     float64           `json:"reorderGapPp"`
	SellThroughGapPp float64           `json:"sellThroughGapPp"`
	DemandYoY        float64           `json:"demandYoY"`
	OnHandUnits      float64           `json:"onHandUnits"`
	BurdenScore      float64           `json:"burdenScore"`
}

// HeatPoint is one (column, metric) cell of the rendered heatmap.
type HeatPoint struct {
	ID          string   `json:"id"`
	XIndex      int      `json:"xIndex"`
	YIndex      int      `json:"yIndex"`
	Value       float64  `json:"value"`
	MetricKey   string   `json:"metricKey"` // sell_through_gap | fill_gap | reorder_gap
	MetricLabel string   `json:"metricLabel"`
	RawValue    float64  `json:"rawValue"`
	Cell        HeatCell `json:"cell"`
}

// Heatmap is the rendered grid with a symmetric value domain.
type Heatmap struct {
	XAxisMode HeatXAxis   `json:"xAxisMode"`
	XLabels   []string    `json:"xLabels"`
	YLabels   []string    `json:"yLabels"`
	Points    []HeatPoint `json:"points"`
	Min       float64     `json:"min"`
	Max       float64     `json:"max"`
}

// CategoryGroups is the four-quadrant classification of categories.
type CategoryGroups struct {
	Cashflow  []string `json:"cashflow"`
	Potential []string `json:"potential"`
	Warning   []string `json:"warning"`
	Research  []string `json:"research"`
}

// Insight is the structured natural-language readout.
type Insight struct {
	Finding          string         `json:"finding"`
	Cause            string         `json:"cause"`
	Actions          []string       `json:"actions"`
	YoyConclusions   []string       `json:"yoyConclusions"`
	StoreConclusions []string       `json:"storeConclusions"`
	CategoryGroups   CategoryGroups `json:"categoryGroups"`
}

// DecisionRow is one finding/decision/result card.
type DecisionRow struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Finding  string `json:"finding"`
	Decision string `json:"decision"`
	Result   string `json:"result"`
}

// Result is the full output bundle of one engine run. All numeric fields are
// raw amounts and ratios; only the sentence and label fields carry formatted
// text.
type Result struct {
	Totals            Totals           `json:"totals"`
	BaselineTotals    *BaselineTotals  `json:"baselineTotals"`
	CompareMeta       CompareMeta      `json:"compareMeta"`
	BusinessKpis      []BizKpi         `json:"businessKpis"`
	PlanBiasCards     []PlanBiasCard   `json:"planBiasCards"`
	Kpis              []KpiCard        `json:"kpis"`
	SunburstData      []SunburstNode   `json:"sunburstData"`
	ScatterPoints     []ScatterPoint   `json:"scatterPoints"`
	ScatterReference  ScatterReference `json:"scatterReference"`
	CategoryWaterfall []WaterfallPoint `json:"categoryWaterfall"`
	Pareto            Pareto           `json:"pareto"`
	Depth             Depth            `json:"depth"`
	OtbSuggestions    []OtbSuggestion  `json:"otbSuggestions"`
	SkuActionRows     []SkuActionRow   `json:"skuActionRows"`
	SellThroughTrend  []TrendPoint     `json:"sellThroughTrend"`
	Heatmap           Heatmap          `json:"heatmap"`
	Insight           Insight          `json:"insight"`
	DecisionRows      []DecisionRow    `json:"decisionRows"`
}
