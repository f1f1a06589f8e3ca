package categoryops

import (
	"fmt"

	"merchops/domain/sales"
	"merchops/internal/dataset"
)

// run carries one invocation's resolved inputs and compare-mode state.
type run struct {
	snap    *dataset.Snapshot
	filters sales.Filters
	opts    Options

	hasBaseline   bool
	deltaLabel    string
	baselineLabel string
}

func modeLabel(mode CompareMode) string {
	switch mode {
	case ComparePlan:
		return "vs计划"
	case CompareYoY:
		return "同比去年"
	case CompareMoM:
		return "环比上季"
	default:
		return "无对比"
	}
}

func deltaLabelFor(mode CompareMode) string {
	switch mode {
	case ComparePlan:
		return "较计划"
	case CompareYoY:
		return "较去年同期"
	case CompareMoM:
		return "较上季"
	default:
		return "较基线"
	}
}

const noCompareNote = "无对比模式：当前值展示，不计算同期差值。执行率/补单率为 v0 推导口径（fill_rate=ship/demand，reorder_rate=reorder/demand）。"

// Run executes the full analytics pass over the snapshot: one current
// aggregation, an optional baseline aggregation, then every dashboard
// surface derived from the pair. The call is pure; the same snapshot,
// filters, and options always produce the same result.
func Run(snap *dataset.Snapshot, filters sales.Filters, opts Options) *Result {
	r := &run{
		snap:          snap,
		filters:       filters.Normalize(),
		opts:          opts.normalize(),
		deltaLabel:    deltaLabelFor(opts.normalize().CompareMode),
		baselineLabel: "无基线",
	}

	current := r.aggregate(nil)
	planData := r.planBaseline(current)

	var baseline *baselineData
	var baselinePeriod *sales.Period
	note := noCompareNote

	switch r.opts.CompareMode {
	case CompareYoY:
		if period, ok := yoyPeriod(r.filters); ok {
			baselinePeriod = period
			baseline = r.baselineFromAggregation(r.aggregate(period))
			r.baselineLabel = fmt.Sprintf("%d年同期", period.Year)
			if baseline.totals.NetSales > 0 {
				note = "同比口径：基线为去年同期同筛选样本。执行率/补单率为 v0 推导口径。"
			} else {
				note = "同比口径：当前筛选缺少去年同期样本，差值项显示为 0。"
			}
		} else {
			note = "同比口径：当前年份未锁定，无法构建去年同期基线。"
		}
	case CompareMoM:
		if period, ok := sales.PriorQuarter(r.filters); ok {
			baselinePeriod = &period
			baseline = r.baselineFromAggregation(r.aggregate(&period))
			r.baselineLabel = fmt.Sprintf("%d-%s", period.Year, period.Season)
			if baseline.totals.NetSales > 0 {
				note = "环比口径：基线为上季同筛选样本。执行率/补单率为 v0 推导口径。"
			} else {
				note = "环比口径：上季样本为空，差值项显示为 0。"
			}
		} else {
			note = "环比口径：请先选择具体季度（Q1-Q4），再计算较上季差值。"
		}
	case ComparePlan:
		baseline = planData
		r.baselineLabel = "计划口径"
		if baseline != nil {
			note = "计划口径：销售/售罄基线来自 dim_plan；执行率与补单率为 v0 推导口径。"
		} else {
			note = "计划口径：当前缺 dim_plan 基线，差值项显示为 0。"
		}
	}

	r.hasBaseline = r.opts.CompareMode != CompareNone && baseline != nil

	var baselineTotals *BaselineTotals
	if baseline != nil {
		totals := baseline.totals
		baselineTotals = &totals
	}
	var planTotals *BaselineTotals
	if planData != nil {
		totals := planData.totals
		planTotals = &totals
	}

	categoryRows := r.buildCategoryRows(current, baseline)
	cellRows := r.buildCellRows(current, baseline)
	stats := r.buildSampleStats(cellRows, baselineTotals)
	scope := r.buildScopeTotals(current, stats, baselineTotals)

	heatCells := r.buildHeatCells(cellRows, stats)
	top := r.pickTopCells(heatCells)

	skus := r.aggregateSkus()
	skuRows := r.buildSkuActionRows(skus, stats.avgSellThrough)

	scatterPoints, scatterRef := r.buildScatter(categoryRows, heatCells, current.totalNetSales, current.totalPairs, stats)
	groups := classifyCategories(scatterPoints, scatterRef)
	otb := r.buildOtbSuggestions(categoryRows, stats)

	sellThroughLabel := "售罄率"
	if r.opts.SellThroughMode == SellThroughEffective {
		sellThroughLabel = "有效售罄率"
	}

	return &Result{
		Totals: Totals{
			NetSales:       current.totalNetSales,
			PairsSold:      current.totalPairs,
			CategoryCount:  len(categoryRows),
			SkuCount:       current.skuCountSum,
			StoreCount:     scope.storeCount,
			DemandPairs:    scope.demandPairs,
			ShipPairs:      scope.shipPairs,
			SellShipRatio:  scope.sellShipRatio,
			AvgSellThrough: stats.avgSellThrough,
			AvgFillRate:    stats.avgFillRate,
			AvgReorderRate: stats.avgReorderRate,
		},
		BaselineTotals: baselineTotals,
		CompareMeta: CompareMeta{
			Mode:             r.opts.CompareMode,
			ModeLabel:        modeLabel(r.opts.CompareMode),
			DeltaLabel:       r.deltaLabel,
			BaselineLabel:    r.baselineLabel,
			SellThroughLabel: sellThroughLabel,
			HasBaseline:      r.hasBaseline,
			Note:             note,
		},
		BusinessKpis:      r.buildBusinessKpis(scope),
		PlanBiasCards:     r.buildPlanBiasCards(scope, stats, planTotals),
		Kpis:              r.buildKpiCards(top, scope, stats),
		SunburstData:      buildSunburstData(heatCells),
		ScatterPoints:     scatterPoints,
		ScatterReference:  scatterRef,
		CategoryWaterfall: r.buildWaterfall(categoryRows),
		Pareto:            buildPareto(skuRows),
		Depth:             r.buildDepth(skus, skuRows),
		OtbSuggestions:    otb,
		SkuActionRows:     skuRows,
		SellThroughTrend:  r.buildTrend(baselinePeriod),
		Heatmap:           r.buildHeatmap(heatCells),
		Insight:           r.buildInsight(categoryRows, top, scope, groups),
		DecisionRows:      r.buildDecisionRows(categoryRows, top, scope, otb),
	}
}
