package categoryops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"merchops/domain/catalog"
	"merchops/domain/plan"
	"merchops/domain/sales"
	"merchops/internal/dataset"
	"merchops/internal/testkit"
)

func dimSku(id, category string, msrp float64, lifecycle string) catalog.DimSku {
	return catalog.DimSku{
		SkuID:        id,
		SkuName:      id,
		CategoryID:   category,
		CategoryName: category,
		ProductLine:  "主线",
		MSRP:         msrp,
		Lifecycle:    lifecycle,
	}
}

func dimChannel(id, channelType string) catalog.DimChannel {
	return catalog.DimChannel{
		ChannelID:   id,
		ChannelType: channelType,
		Region:      "华东",
		CityTier:    "一线",
		StoreFormat: "标准店",
	}
}

func fact(skuID, channelID string, year int, season string, week int, units, amount, st, onHand float64) sales.FactSalesRecord {
	return sales.FactSalesRecord{
		SkuID:                 skuID,
		ChannelID:             channelID,
		SeasonYear:            year,
		Season:                season,
		Wave:                  "W1",
		WeekNum:               week,
		UnitSold:              units,
		NetSalesAmt:           amount,
		DiscountRate:          0.1,
		GrossMarginRate:       0.5,
		CumulativeSellThrough: st,
		OnHandUnit:            onHand,
	}
}

// twoCategorySnapshot has a boot SKU (靴类, PB3) over two weeks and a slipper
// SKU (凉拖鞋, PB1) over one, all in a single channel in 2024-Q1.
func twoCategorySnapshot() *dataset.Snapshot {
	skus := []catalog.DimSku{
		dimSku("SKU-BOOT", "切尔西靴", 650, "核心款"),
		dimSku("SKU-SLIP", "拖鞋", 299, "核心款"),
	}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 60000, 0.6, 200),
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 2, 50, 30000, 0.7, 120),
		fact("SKU-SLIP", "CH-1", 2024, "Q1", 1, 80, 16000, 0.5, 300),
	}
	return dataset.NewSnapshot(facts, skus, channels, nil)
}

func q1Filters(year string) sales.Filters {
	f := sales.NewFilters()
	f.SeasonYear = year
	f.Season = "Q1"
	return f
}

func TestRunNoCompare(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	assert.InDelta(t, 106000, result.Totals.NetSales, 1e-9)
	assert.InDelta(t, 230, result.Totals.PairsSold, 1e-9)
	assert.Equal(t, 2, result.Totals.CategoryCount)
	assert.Equal(t, 2, result.Totals.SkuCount)
	assert.Equal(t, 1, result.Totals.StoreCount)

	meta := result.CompareMeta
	assert.Equal(t, CompareNone, meta.Mode)
	assert.Equal(t, "无对比", meta.ModeLabel)
	assert.Equal(t, "无基线", meta.BaselineLabel)
	assert.Equal(t, "售罄率", meta.SellThroughLabel)
	assert.False(t, meta.HasBaseline)
	assert.Equal(t, noCompareNote, meta.Note)
	assert.Nil(t, result.BaselineTotals)

	require.Len(t, result.BusinessKpis, 7)
	for _, kpi := range result.BusinessKpis {
		assert.Nil(t, kpi.DeltaValue, kpi.ID)
	}
	require.Len(t, result.PlanBiasCards, 3)
	for _, card := range result.PlanBiasCards {
		assert.Equal(t, "—", card.GapLabel, card.ID)
		assert.Equal(t, ToneWarn, card.Tone, card.ID)
	}
	require.Len(t, result.Kpis, 4)
	require.Len(t, result.DecisionRows, 3)
}

func TestRunNoCompareScatter(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	require.Len(t, result.ScatterPoints, 2)
	boot := result.ScatterPoints[0]
	slip := result.ScatterPoints[1]
	assert.Equal(t, "靴类", boot.CategoryID)
	assert.Equal(t, "凉拖鞋", slip.CategoryID)
	assert.InDelta(t, 90000, boot.NetSales, 1e-9)
	assert.InDelta(t, 95.0/150.0, boot.SellThrough, 1e-9)
	assert.InDelta(t, 0.5, slip.SellThrough, 1e-9)

	var sum float64
	for _, p := range result.ScatterPoints {
		sum += p.NetSales
	}
	assert.InDelta(t, result.Totals.NetSales, sum, 1e-6)
	assert.InDelta(t, 0.5, result.ScatterReference.ContributionShareAvg, 1e-9)
	// No baseline: momentum is the category's own sell-through.
	assert.InDelta(t, boot.SellThrough, boot.Momentum, 1e-9)
}

func TestRunLatestOnHandWins(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	require.Len(t, result.SkuActionRows, 2)
	boot := result.SkuActionRows[0]
	slip := result.SkuActionRows[1]
	assert.Equal(t, "SKU-BOOT", boot.SkuID)
	assert.InDelta(t, 120, boot.OnHandUnits, 1e-9)
	assert.Equal(t, "SKU-SLIP", slip.SkuID)
	assert.InDelta(t, 300, slip.OnHandUnits, 1e-9)
	assert.NotEmpty(t, boot.Action)
	assert.NotEmpty(t, boot.Reason)
}

func TestRunSkipsUnresolvableChannel(t *testing.T) {
	skus := []catalog.DimSku{dimSku("SKU-BOOT", "切尔西靴", 650, "核心款")}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 60000, 0.6, 200),
		fact("SKU-BOOT", "CH-GHOST", 2024, "Q1", 1, 50, 30000, 0.7, 120),
	}
	snap := dataset.NewSnapshot(facts, skus, channels, nil)

	result := Run(snap, q1Filters("2024"), DefaultOptions())

	// The row on the unknown channel is out of scope everywhere.
	assert.InDelta(t, 60000, result.Totals.NetSales, 1e-9)
	assert.InDelta(t, 100, result.Totals.PairsSold, 1e-9)
	assert.Equal(t, 1, result.Totals.StoreCount)

	var actionSales float64
	for _, row := range result.SkuActionRows {
		actionSales += row.NetSales
	}
	assert.InDelta(t, result.Totals.NetSales, actionSales, 1e-9)

	require.Len(t, result.SellThroughTrend, 1)
	assert.InDelta(t, 60000, result.SellThroughTrend[0].NetSales, 1e-9)
}

func TestRunOnHandSameWeekAcrossYears(t *testing.T) {
	skus := []catalog.DimSku{dimSku("SKU-BOOT", "切尔西靴", 650, "核心款")}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2023, "Q1", 1, 40, 24000, 0.5, 500),
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 50, 30000, 0.6, 100),
	}
	snap := dataset.NewSnapshot(facts, skus, channels, nil)

	result := Run(snap, sales.NewFilters(), DefaultOptions())

	require.Len(t, result.SkuActionRows, 1)
	skuOnHand := result.SkuActionRows[0].OnHandUnits

	var cellOnHand float64
	for _, p := range result.Heatmap.Points {
		if p.MetricKey == "sell_through_gap" && p.Cell.NetSales > 0 {
			cellOnHand = p.Cell.OnHandUnits
		}
	}
	// Week 1 recurs in both years; the two grains must keep the same reading.
	assert.InDelta(t, 500, skuOnHand, 1e-9)
	assert.InDelta(t, cellOnHand, skuOnHand, 1e-9)
}

func TestRunHeatmapIsDenseGrid(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	hm := result.Heatmap
	// 2 observed cells plus zero fill to 2 categories x 4 canonical bands.
	assert.Len(t, hm.XLabels, 8)
	assert.Equal(t, []string{"售罄率偏离(pp)", "执行率偏离(pp)", "补单率偏离(pp)"}, hm.YLabels)
	assert.Len(t, hm.Points, len(hm.XLabels)*3)
	assert.Equal(t, -hm.Max, hm.Min)
	assert.GreaterOrEqual(t, hm.Max, 1.0)
	// The top column is the best-selling observed cell.
	assert.Equal(t, "靴类 / 599-799", hm.XLabels[0])
}

func TestRunTopDemandCard(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	demand := result.Kpis[0]
	assert.Equal(t, "top_demand", demand.ID)
	assert.Equal(t, "当前贡献 Top 要素", demand.Title)
	assert.Equal(t, "靴类 / 599-799", demand.Element)
	assert.InDelta(t, 90000.0/106000.0, demand.Value, 1e-9)
	assert.Equal(t, ToneGood, demand.Tone)
}

func TestRunTrendWeeks(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	require.Len(t, result.SellThroughTrend, 2)
	week1 := result.SellThroughTrend[0]
	week2 := result.SellThroughTrend[1]
	assert.Equal(t, 1, week1.WeekNum)
	assert.InDelta(t, 76000, week1.NetSales, 1e-9)
	assert.Nil(t, week1.BaselineSellThrough)
	assert.Equal(t, 2, week2.WeekNum)
	assert.InDelta(t, 30000, week2.NetSales, 1e-9)
}

func TestRunDepthSegmentation(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	depth := result.Depth
	require.Len(t, depth.ScatterPoints, 2)
	assert.Equal(t, "SKU-BOOT", depth.ScatterPoints[0].SkuID)

	counts := map[string]int{}
	for _, bin := range depth.Bins {
		counts[bin.Label] = bin.Count
	}
	assert.Equal(t, 1, counts["<100双"])
	assert.Equal(t, 1, counts["100-299双"])

	// values {80, 150}: q0.8 = 136, q0.4 = 108.
	assert.InDelta(t, 136, depth.Summary.SThreshold, 1e-9)
	assert.InDelta(t, 108, depth.Summary.MainThreshold, 1e-9)
	assert.Equal(t, 1, depth.Summary.SCount)
	assert.Equal(t, 0, depth.Summary.MainCount)
	assert.Equal(t, 1, depth.Summary.TailCount)
}

func TestRunParetoShortList(t *testing.T) {
	result := Run(twoCategorySnapshot(), q1Filters("2024"), DefaultOptions())

	require.Len(t, result.Pareto.Points, 2)
	assert.InDelta(t, 1, result.Pareto.Points[1].CumulativeShare, 1e-9)
	assert.InDelta(t, 1, result.Pareto.Top10Share, 1e-9)
	assert.InDelta(t, 1, result.Pareto.Top20Share, 1e-9)
}

func TestRunYoYIdenticalYears(t *testing.T) {
	skus := []catalog.DimSku{
		dimSku("SKU-BOOT", "切尔西靴", 650, "核心款"),
		dimSku("SKU-SLIP", "拖鞋", 299, "核心款"),
	}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	var facts []sales.FactSalesRecord
	for _, year := range []int{2023, 2024} {
		facts = append(facts,
			fact("SKU-BOOT", "CH-1", year, "Q1", 1, 100, 60000, 0.6, 200),
			fact("SKU-BOOT", "CH-1", year, "Q1", 2, 50, 30000, 0.7, 120),
			fact("SKU-SLIP", "CH-1", year, "Q1", 1, 80, 16000, 0.5, 300),
		)
	}
	snap := dataset.NewSnapshot(facts, skus, channels, nil)

	opts := DefaultOptions()
	opts.CompareMode = CompareYoY
	result := Run(snap, q1Filters("2024"), opts)

	meta := result.CompareMeta
	assert.True(t, meta.HasBaseline)
	assert.Equal(t, "2023年同期", meta.BaselineLabel)
	assert.Equal(t, "较去年同期", meta.DeltaLabel)
	assert.Equal(t, "同比口径：基线为去年同期同筛选样本。执行率/补单率为 v0 推导口径。", meta.Note)

	require.NotNil(t, result.BaselineTotals)
	assert.InDelta(t, result.Totals.NetSales, result.BaselineTotals.NetSales, 1e-9)
	assert.InDelta(t, result.Totals.PairsSold, result.BaselineTotals.PairsSold, 1e-9)

	for _, kpi := range result.BusinessKpis {
		require.NotNil(t, kpi.DeltaValue, kpi.ID)
		assert.InDelta(t, 0, *kpi.DeltaValue, 1e-9, kpi.ID)
	}
	for _, p := range result.Heatmap.Points {
		assert.InDelta(t, 0, p.RawValue, 1e-9, p.ID)
	}
	for _, p := range result.ScatterPoints {
		assert.InDelta(t, 0, p.Momentum, 1e-9, p.CategoryID)
	}
	for _, w := range result.CategoryWaterfall {
		assert.InDelta(t, 0, w.DeltaNetSales, 1e-9, w.CategoryID)
	}
}

func TestRunYoYMissingPriorYear(t *testing.T) {
	opts := DefaultOptions()
	opts.CompareMode = CompareYoY
	result := Run(twoCategorySnapshot(), q1Filters("2024"), opts)

	meta := result.CompareMeta
	assert.True(t, meta.HasBaseline)
	assert.Equal(t, "2023年同期", meta.BaselineLabel)
	assert.Equal(t, "同比口径：当前筛选缺少去年同期样本，差值项显示为 0。", meta.Note)
	require.NotNil(t, result.BaselineTotals)
	assert.Zero(t, result.BaselineTotals.NetSales)

	for _, kpi := range result.BusinessKpis {
		if kpi.ID == "sales_amt" {
			assert.Nil(t, kpi.DeltaValue)
		}
	}
	for _, p := range result.ScatterPoints {
		assert.Zero(t, p.Momentum)
	}
}

func TestRunYoYNeedsYear(t *testing.T) {
	opts := DefaultOptions()
	opts.CompareMode = CompareYoY
	result := Run(twoCategorySnapshot(), q1Filters(sales.All), opts)

	meta := result.CompareMeta
	assert.False(t, meta.HasBaseline)
	assert.Equal(t, "无基线", meta.BaselineLabel)
	assert.Equal(t, "同比口径：当前年份未锁定，无法构建去年同期基线。", meta.Note)
	assert.Nil(t, result.BaselineTotals)
}

func TestRunMoMNeedsQuarter(t *testing.T) {
	filters := q1Filters("2024")
	filters.Season = sales.All

	opts := DefaultOptions()
	opts.CompareMode = CompareMoM
	result := Run(twoCategorySnapshot(), filters, opts)

	meta := result.CompareMeta
	assert.False(t, meta.HasBaseline)
	assert.Equal(t, "无基线", meta.BaselineLabel)
	assert.Equal(t, "环比口径：请先选择具体季度（Q1-Q4），再计算较上季差值。", meta.Note)
}

func TestRunMoMQ1RollsToPriorYearQ4(t *testing.T) {
	skus := []catalog.DimSku{dimSku("SKU-BOOT", "切尔西靴", 650, "核心款")}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 60000, 0.6, 200),
		fact("SKU-BOOT", "CH-1", 2023, "Q4", 24, 90, 54000, 0.75, 150),
	}
	snap := dataset.NewSnapshot(facts, skus, channels, nil)

	opts := DefaultOptions()
	opts.CompareMode = CompareMoM
	result := Run(snap, q1Filters("2024"), opts)

	meta := result.CompareMeta
	assert.True(t, meta.HasBaseline)
	assert.Equal(t, "2023-Q4", meta.BaselineLabel)
	assert.Equal(t, "环比口径：基线为上季同筛选样本。执行率/补单率为 v0 推导口径。", meta.Note)
	require.NotNil(t, result.BaselineTotals)
	assert.InDelta(t, 54000, result.BaselineTotals.NetSales, 1e-9)
}

func TestRunQuadrantSeparation(t *testing.T) {
	skus := []catalog.DimSku{
		dimSku("SKU-BOOT", "切尔西靴", 650, "核心款"),
		dimSku("SKU-SLIP", "拖鞋", 299, "核心款"),
	}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		// Equal current sales; the boot grew over last year, the slipper shrank.
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 50000, 0.6, 100),
		fact("SKU-SLIP", "CH-1", 2024, "Q1", 1, 100, 50000, 0.6, 100),
		fact("SKU-BOOT", "CH-1", 2023, "Q1", 1, 80, 40000, 0.6, 100),
		fact("SKU-SLIP", "CH-1", 2023, "Q1", 1, 120, 60000, 0.6, 100),
	}
	snap := dataset.NewSnapshot(facts, skus, channels, nil)

	opts := DefaultOptions()
	opts.CompareMode = CompareYoY
	result := Run(snap, q1Filters("2024"), opts)

	groups := result.Insight.CategoryGroups
	assert.Equal(t, []string{"靴类"}, groups.Cashflow)
	assert.Equal(t, []string{"凉拖鞋"}, groups.Warning)
	assert.Empty(t, groups.Potential)
	assert.Empty(t, groups.Research)
}

func TestRunPlanMode(t *testing.T) {
	skus := []catalog.DimSku{dimSku("SKU-BOOT", "切尔西靴", 650, "核心款")}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 60000, 0.6, 200),
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 2, 50, 30000, 0.7, 120),
	}
	p := &plan.Plan{
		SeasonYear: 2024,
		CategoryPlan: []plan.CategoryPlan{
			{CategoryID: "靴类", PlanSalesAmt: 100000, PlanSellThrough: 0.6, PlanSkuCount: 2},
		},
	}
	snap := dataset.NewSnapshot(facts, skus, channels, p)

	opts := DefaultOptions()
	opts.CompareMode = ComparePlan
	result := Run(snap, q1Filters("2024"), opts)

	meta := result.CompareMeta
	assert.True(t, meta.HasBaseline)
	assert.Equal(t, "计划口径", meta.BaselineLabel)
	assert.Equal(t, "计划口径：销售/售罄基线来自 dim_plan；执行率与补单率为 v0 推导口径。", meta.Note)

	require.NotNil(t, result.BaselineTotals)
	assert.InDelta(t, 100000, result.BaselineTotals.NetSales, 1e-9)
	assert.InDelta(t, 0.6, result.BaselineTotals.AvgSellThrough, 1e-9)
	assert.Equal(t, 2, result.BaselineTotals.ActiveSku)

	for _, kpi := range result.BusinessKpis {
		if kpi.ID == "sales_amt" {
			require.NotNil(t, kpi.DeltaValue)
			assert.InDelta(t, -0.1, *kpi.DeltaValue, 1e-9)
		}
	}
	require.NotEmpty(t, result.CategoryWaterfall)
	assert.InDelta(t, -10000, result.CategoryWaterfall[0].DeltaNetSales, 1e-9)

	stCard := result.PlanBiasCards[2]
	assert.Equal(t, "plan_sellthrough_gap", stCard.ID)
	assert.Equal(t, "计划 60.0%", stCard.PlanLabel)
	assert.NotEqual(t, "—", stCard.GapLabel)
}

func TestRunPlanZeroTargets(t *testing.T) {
	skus := []catalog.DimSku{dimSku("SKU-BOOT", "切尔西靴", 650, "核心款")}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 60000, 0.6, 200),
	}
	p := &plan.Plan{
		CategoryPlan: []plan.CategoryPlan{{CategoryID: "靴类", PlanSalesAmt: 0}},
		OverallPlan:  &plan.OverallPlan{},
	}
	snap := dataset.NewSnapshot(facts, skus, channels, p)

	opts := DefaultOptions()
	opts.CompareMode = ComparePlan
	result := Run(snap, q1Filters("2024"), opts)

	// A present-but-zero plan is still a baseline; deltas read against 0 and
	// the bias cards render their gaps as unknown.
	assert.True(t, result.CompareMeta.HasBaseline)
	require.NotNil(t, result.BaselineTotals)
	assert.Zero(t, result.BaselineTotals.NetSales)
	for _, card := range result.PlanBiasCards {
		assert.Equal(t, "—", card.GapLabel, card.ID)
		assert.Equal(t, ToneWarn, card.Tone, card.ID)
	}
}

func TestRunPlanMissing(t *testing.T) {
	opts := DefaultOptions()
	opts.CompareMode = ComparePlan
	result := Run(twoCategorySnapshot(), q1Filters("2024"), opts)

	meta := result.CompareMeta
	assert.False(t, meta.HasBaseline)
	assert.Equal(t, "计划口径", meta.BaselineLabel)
	assert.Equal(t, "计划口径：当前缺 dim_plan 基线，差值项显示为 0。", meta.Note)
	assert.Nil(t, result.BaselineTotals)
}

func TestRunSellThroughModes(t *testing.T) {
	skus := []catalog.DimSku{dimSku("SKU-BOOT", "切尔西靴", 650, "核心款")}
	channels := []catalog.DimChannel{dimChannel("CH-1", "直营")}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 60000, 0.9, 100),
	}
	snap := dataset.NewSnapshot(facts, skus, channels, nil)

	cumulative := Run(snap, q1Filters("2024"), DefaultOptions())
	assert.Equal(t, "售罄率", cumulative.CompareMeta.SellThroughLabel)
	assert.InDelta(t, 0.9, cumulative.Totals.AvgSellThrough, 1e-9)

	opts := DefaultOptions()
	opts.SellThroughMode = SellThroughEffective
	effective := Run(snap, q1Filters("2024"), opts)
	assert.Equal(t, "有效售罄率", effective.CompareMeta.SellThroughLabel)
	// 核心款 dampens on-hand by 0.85: 100 / (100 + 85).
	assert.InDelta(t, 100.0/185.0, effective.Totals.AvgSellThrough, 1e-9)
}

func TestRunChannelTypeFilter(t *testing.T) {
	skus := []catalog.DimSku{dimSku("SKU-BOOT", "切尔西靴", 650, "核心款")}
	channels := []catalog.DimChannel{
		dimChannel("CH-1", "直营"),
		dimChannel("CH-2", "电商"),
	}
	facts := []sales.FactSalesRecord{
		fact("SKU-BOOT", "CH-1", 2024, "Q1", 1, 100, 60000, 0.6, 200),
		fact("SKU-BOOT", "CH-2", 2024, "Q1", 1, 40, 24000, 0.5, 80),
	}
	snap := dataset.NewSnapshot(facts, skus, channels, nil)

	filters := q1Filters("2024")
	filters.ChannelType = "直营"
	result := Run(snap, filters, DefaultOptions())

	assert.InDelta(t, 60000, result.Totals.NetSales, 1e-9)
	assert.Equal(t, 1, result.Totals.StoreCount)
}

func TestRunCategoryLevelL2(t *testing.T) {
	opts := DefaultOptions()
	opts.CategoryLevel = CategoryLevelL2
	result := Run(twoCategorySnapshot(), q1Filters("2024"), opts)

	require.Len(t, result.ScatterPoints, 2)
	boot := result.ScatterPoints[0]
	assert.Equal(t, "切尔西靴", boot.CategoryID)
	// The filter id stays at L1 so the row keeps working as a filter target.
	assert.Equal(t, "靴类", boot.CategoryFilterID)
}

func TestRunEmptySnapshot(t *testing.T) {
	snap := dataset.NewSnapshot(nil, nil, nil, nil)
	result := Run(snap, sales.NewFilters(), DefaultOptions())

	assert.Zero(t, result.Totals.NetSales)
	assert.Zero(t, result.Totals.CategoryCount)
	assert.Empty(t, result.ScatterPoints)
	assert.Empty(t, result.Heatmap.Points)
	assert.Equal(t, 1.0, result.Heatmap.Max)
	assert.Equal(t, -1.0, result.Heatmap.Min)
	assert.Empty(t, result.Pareto.Points)
	assert.Zero(t, result.Pareto.Top10Share)
	require.Len(t, result.Kpis, 4)
	for _, card := range result.Kpis {
		assert.Equal(t, "--", card.Element, card.ID)
	}
}

func TestRunFixtureInvariants(t *testing.T) {
	snap := testkit.NewSnapshot()
	filters := sales.NewFilters()
	filters.SeasonYear = "2024"

	for _, mode := range []CompareMode{CompareNone, CompareYoY, ComparePlan} {
		opts := DefaultOptions()
		opts.CompareMode = mode
		result := Run(snap, filters, opts)

		var scatterSum float64
		for _, p := range result.ScatterPoints {
			scatterSum += p.NetSales
		}
		assert.InDelta(t, result.Totals.NetSales, scatterSum, 1e-6, mode)

		prev := 0.0
		for _, p := range result.Pareto.Points {
			assert.GreaterOrEqual(t, p.CumulativeShare, prev)
			prev = p.CumulativeShare
		}
		assert.GreaterOrEqual(t, result.Pareto.Top20Share, result.Pareto.Top10Share)

		assert.Len(t, result.Heatmap.Points, len(result.Heatmap.XLabels)*3, mode)

		var weightSum float64
		for _, s := range result.OtbSuggestions {
			assert.Greater(t, s.SuggestedWeight, 0.0)
			assert.NotEmpty(t, s.Reason)
			weightSum += s.SuggestedWeight
		}
		assert.InDelta(t, 1, weightSum, 1e-9, mode)

		for _, row := range result.SkuActionRows {
			assert.NotEmpty(t, row.Action, row.SkuID)
			assert.NotEmpty(t, row.Reason, row.SkuID)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	snap := testkit.NewSnapshot()
	filters := sales.NewFilters()
	filters.SeasonYear = "2024"
	opts := DefaultOptions()
	opts.CompareMode = CompareYoY

	first := Run(snap, filters, opts)
	second := Run(snap, filters, opts)
	assert.Equal(t, first, second)
}
