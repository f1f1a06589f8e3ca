package categoryops

import (
	"fmt"
	"math"
	"sort"
)

// scopeTotals bundles the headline figures shared by the KPI strip, the plan
// bias cards, and the insight sentences.
type scopeTotals struct {
	netSales         float64
	pairsSold        float64
	storeCount       int
	activeSku        int
	demandPairs      float64
	shipPairs        float64
	sellShipRatio    float64
	salesPerSkuAmt   float64
	salesPerStoreAmt float64

	baselineNetSales         float64
	baselinePairs            float64
	baselineStoreCount       int
	baselineActiveSku        int
	baselineShipPairs        float64
	baselineSellShipRatio    float64
	baselineSalesPerSkuAmt   float64
	baselineSalesPerStoreAmt float64
}

func (r *run) buildScopeTotals(agg *aggregation, stats sampleStats, baselineTotals *BaselineTotals) scopeTotals {
	t := scopeTotals{
		netSales:   agg.totalNetSales,
		pairsSold:  agg.totalPairs,
		storeCount: len(agg.activeStores),
		activeSku:  len(agg.activeSkus),
	}
	t.demandPairs = safeDiv(t.pairsSold, maxFloat(stats.avgSellThrough, 0.05))
	t.shipPairs = t.demandPairs * stats.avgFillRate
	t.sellShipRatio = safeDiv(t.pairsSold, t.shipPairs)
	t.salesPerSkuAmt = safeDiv(t.netSales, float64(t.activeSku))
	t.salesPerStoreAmt = safeDiv(t.netSales, float64(t.storeCount))

	t.baselineStoreCount = t.storeCount
	if baselineTotals != nil {
		t.baselineNetSales = baselineTotals.NetSales
		t.baselinePairs = baselineTotals.PairsSold
		t.baselineActiveSku = baselineTotals.ActiveSku
		if baselineTotals.StoreCount > 0 {
			t.baselineStoreCount = baselineTotals.StoreCount
		}
	}
	baselineDemand := safeDiv(t.baselinePairs, maxFloat(stats.baselineAvgSellThrough, 0.05))
	t.baselineShipPairs = baselineDemand * stats.baselineAvgFillRate
	t.baselineSellShipRatio = safeDiv(t.baselinePairs, t.baselineShipPairs)
	t.baselineSalesPerSkuAmt = safeDiv(t.baselineNetSales, maxFloat(float64(t.baselineActiveSku), 1))
	t.baselineSalesPerStoreAmt = safeDiv(t.baselineNetSales, maxFloat(float64(t.baselineStoreCount), 1))
	return t
}

func (r *run) buildBusinessKpis(t scopeTotals) []BizKpi {
	baselineDesc := "基线：" + r.baselineLabel
	delta := func(current, baseline float64) *float64 {
		if !r.hasBaseline {
			return nil
		}
		return deltaPercent(current, baseline)
	}
	var ratioDelta *float64
	if r.hasBaseline {
		ratioDelta = float64Ptr(deltaPp(t.sellShipRatio, t.baselineSellShipRatio))
	}

	return []BizKpi{
		{ID: "ship_qty", Title: "发货量", Value: t.shipPairs, ValueKind: "pairs",
			DeltaValue: delta(t.shipPairs, t.baselineShipPairs), DeltaKind: "percent", Description: baselineDesc},
		{ID: "sales_qty", Title: "销量", Value: t.pairsSold, ValueKind: "pairs",
			DeltaValue: delta(t.pairsSold, t.baselinePairs), DeltaKind: "percent", Description: baselineDesc},
		{ID: "sales_amt", Title: "销额", Value: t.netSales, ValueKind: "amount",
			DeltaValue: delta(t.netSales, t.baselineNetSales), DeltaKind: "percent", Description: baselineDesc},
		{ID: "sell_ship_ratio", Title: "销发比", Value: t.sellShipRatio, ValueKind: "percent",
			DeltaValue: ratioDelta, DeltaKind: "pp", Description: "定义：销量 / 发货量"},
		{ID: "active_sku", Title: "动销SKU", Value: float64(t.activeSku), ValueKind: "count",
			DeltaValue: delta(float64(t.activeSku), float64(t.baselineActiveSku)), DeltaKind: "percent", Description: baselineDesc},
		{ID: "sku_depth_amt", Title: "单款销额", Value: t.salesPerSkuAmt, ValueKind: "amount",
			DeltaValue: delta(t.salesPerSkuAmt, t.baselineSalesPerSkuAmt), DeltaKind: "percent", Description: "定义：销额 / 动销SKU"},
		{ID: "store_depth_amt", Title: "单店销额", Value: t.salesPerStoreAmt, ValueKind: "amount",
			DeltaValue: delta(t.salesPerStoreAmt, t.baselineSalesPerStoreAmt), DeltaKind: "percent", Description: "定义：销额 / 动销门店"},
	}
}

func resolveToneByGap(absGapPercent float64) Tone {
	switch {
	case absGapPercent <= 0.08:
		return ToneGood
	case absGapPercent <= 0.18:
		return ToneWarn
	default:
		return ToneRisk
	}
}

// buildPlanBiasCards contrasts the plan with realized width, depth, and
// sell-through regardless of the active compare mode. Missing plan fields
// render as unknown rather than as a zero gap.
func (r *run) buildPlanBiasCards(t scopeTotals, stats sampleStats, planTotals *BaselineTotals) []PlanBiasCard {
	planActiveSku := 0
	planSalesAmt := 0.0
	planSellThrough := 0.0
	if planTotals != nil {
		planActiveSku = planTotals.ActiveSku
		planSalesAmt = planTotals.NetSales
		planSellThrough = planTotals.AvgSellThrough
	}
	planSkuDepthAmt := safeDiv(planSalesAmt, maxFloat(float64(planActiveSku), 1))

	skuGap := 0.0
	if v := deltaPercent(float64(t.activeSku), float64(planActiveSku)); v != nil {
		skuGap = *v
	}
	depthGap := 0.0
	if v := deltaPercent(t.salesPerSkuAmt, planSkuDepthAmt); v != nil {
		depthGap = *v
	}
	stGap := deltaPp(stats.avgSellThrough, planSellThrough)

	skuCard := PlanBiasCard{
		ID:          "plan_sku_gap",
		Title:       "企划SKU vs 动销SKU",
		ActualLabel: fmt.Sprintf("实际 %d 款", t.activeSku),
		PlanLabel:   "计划 —",
		GapLabel:    "—",
		Tone:        ToneWarn,
		Note:        "缺计划SKU字段，暂无法判定偏差。",
	}
	if planActiveSku > 0 {
		skuCard.PlanLabel = fmt.Sprintf("计划 %d 款", planActiveSku)
		skuCard.GapLabel = formatSignedPercent(skuGap)
		skuCard.Tone = resolveToneByGap(absFloat(skuGap))
		skuCard.Note = "SKU宽度偏差过大时，需检查企划落地与渠道适配。"
	}

	depthCard := PlanBiasCard{
		ID:          "plan_depth_gap",
		Title:       "计划单款深度 vs 实际单款深度",
		ActualLabel: fmt.Sprintf("实际 %d万/款", int(math.Round(t.salesPerSkuAmt/10000))),
		PlanLabel:   "计划 —",
		GapLabel:    "—",
		Tone:        ToneWarn,
		Note:        "缺计划深度字段，暂无法判定偏差。",
	}
	if planSkuDepthAmt > 0 {
		depthCard.PlanLabel = fmt.Sprintf("计划 %d万/款", int(math.Round(planSkuDepthAmt/10000)))
		depthCard.GapLabel = formatSignedPercent(depthGap)
		depthCard.Tone = resolveToneByGap(absFloat(depthGap))
		depthCard.Note = "深度偏差反映货盘厚度与动销能力错配。"
	}

	stCard := PlanBiasCard{
		ID:          "plan_sellthrough_gap",
		Title:       "计划售罄 vs 实际售罄",
		ActualLabel: fmt.Sprintf("实际 %.1f%%", stats.avgSellThrough*100),
		PlanLabel:   "计划 —",
		GapLabel:    "—",
		Tone:        ToneWarn,
		Note:        "缺计划售罄字段，暂无法判定偏差。",
	}
	if planSellThrough > 0 {
		stCard.PlanLabel = fmt.Sprintf("计划 %.1f%%", planSellThrough*100)
		stCard.GapLabel = formatSignedPp(stGap)
		stCard.Tone = resolveToneByGap(absFloat(stGap / 100))
		stCard.Note = "售罄偏差可直接用于补单与收敛动作优先级。"
	}

	return []PlanBiasCard{skuCard, depthCard, stCard}
}

// topCells picks the four ranked heat cells. Each ranking has a no-compare
// ordering over current levels and a compare ordering over gaps.
type topCells struct {
	demand   *HeatCell
	supply   *HeatCell
	reorder  *HeatCell
	tail     *HeatCell
	mismatch *HeatCell
}

func (r *run) pickTopCells(cells []HeatCell) topCells {
	pick := func(less func(a, b HeatCell) bool) *HeatCell {
		if len(cells) == 0 {
			return nil
		}
		sorted := make([]HeatCell, len(cells))
		copy(sorted, cells)
		sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
		top := sorted[0]
		return &top
	}
	none := r.opts.CompareMode == CompareNone

	return topCells{
		demand: pick(func(a, b HeatCell) bool {
			if none {
				return a.NetSales > b.NetSales
			}
			return a.DemandYoY > b.DemandYoY
		}),
		supply: pick(func(a, b HeatCell) bool {
			if none {
				return a.FillRate < b.FillRate
			}
			return a.FillGapPp < b.FillGapPp
		}),
		reorder: pick(func(a, b HeatCell) bool {
			if none {
				return a.ReorderRate > b.ReorderRate
			}
			return a.ReorderGapPp > b.ReorderGapPp
		}),
		tail: pick(func(a, b HeatCell) bool {
			if none {
				return a.BurdenScore > b.BurdenScore
			}
			return a.SellThroughGapPp < b.SellThroughGapPp
		}),
		mismatch: pick(func(a, b HeatCell) bool {
			return mismatchScore(a) > mismatchScore(b)
		}),
	}
}

func mismatchScore(c HeatCell) float64 {
	return maxFloat(0, -c.FillGapPp)*1.6 +
		maxFloat(0, c.ReorderGapPp)*1.3 +
		maxFloat(0, -c.SellThroughGapPp)
}

func (r *run) buildKpiCards(top topCells, t scopeTotals, stats sampleStats) []KpiCard {
	none := r.opts.CompareMode == CompareNone

	demand := KpiCard{ID: "top_demand", Title: "当前贡献 Top 要素", Element: "--", ValueKind: "percent", Tone: ToneWarn}
	if !none {
		demand.Title = fmt.Sprintf("需求变化 Top 要素（%s）", r.deltaLabel)
	}
	if c := top.demand; c != nil {
		demand.Element = c.ElementLabel
		if none {
			share := safeDiv(c.NetSales, t.netSales)
			demand.Value = share
			demand.SubValue = fmt.Sprintf("净销 %d万", int(math.Round(c.NetSales/10000)))
			if share >= 0.18 {
				demand.Tone = ToneGood
			}
		} else {
			demand.Value = c.DemandYoY
			demand.SubValue = fmt.Sprintf("%s %.1f%%", r.deltaLabel, c.DemandYoY*100)
			if c.DemandYoY >= 0.08 {
				demand.Tone = ToneGood
			}
		}
	} else if none {
		demand.SubValue = "净销 0万"
	} else {
		demand.SubValue = fmt.Sprintf("%s 0.0%%", r.deltaLabel)
	}

	supply := KpiCard{ID: "supply_risk", Title: "供给侧风险 Top 要素", Element: "--", ValueKind: "percent", Tone: ToneWarn}
	if !none {
		supply.Title = fmt.Sprintf("供给侧风险 Top 要素（%s）", r.deltaLabel)
		supply.ValueKind = "pp"
	}
	if c := top.supply; c != nil {
		supply.Element = c.ElementLabel
		if none {
			supply.Value = c.FillRate
			supply.SubValue = fmt.Sprintf("较样本均值 %.1fpp", c.FillGapPp)
		} else {
			supply.Value = c.FillGapPp
			supply.SubValue = fmt.Sprintf("当前执行率 %.1f%%", c.FillRate*100)
		}
		if c.FillGapPp <= -3 {
			supply.Tone = ToneRisk
		}
	} else if none {
		supply.SubValue = "较样本均值 0.0pp"
	} else {
		supply.SubValue = "当前执行率 0.0%"
	}

	reorder := KpiCard{ID: "reorder_pressure", Title: "补单压力 Top 要素", Element: "--", ValueKind: "percent", Tone: ToneWarn}
	if !none {
		reorder.Title = fmt.Sprintf("补单压力 Top 要素（%s）", r.deltaLabel)
		reorder.ValueKind = "pp"
	}
	if c := top.reorder; c != nil {
		reorder.Element = c.ElementLabel
		if none {
			reorder.Value = c.ReorderRate
			reorder.SubValue = fmt.Sprintf("较样本均值 +%.1fpp", c.ReorderGapPp)
			if c.ReorderRate >= stats.avgReorderRate+0.015 {
				reorder.Tone = ToneRisk
			}
		} else {
			reorder.Value = c.ReorderGapPp
			reorder.SubValue = fmt.Sprintf("当前补单率 %.1f%%", c.ReorderRate*100)
			if c.ReorderGapPp >= 1.5 {
				reorder.Tone = ToneRisk
			}
		}
	} else if none {
		reorder.SubValue = "较样本均值 +0.0pp"
	} else {
		reorder.SubValue = "当前补单率 0.0%"
	}

	tail := KpiCard{ID: "tail_burden", Title: "长尾包袱 Top 要素", Element: "--", ValueKind: "percent", Tone: ToneWarn}
	if !none {
		tail.Title = fmt.Sprintf("长尾包袱 Top 要素（%s）", r.deltaLabel)
		tail.ValueKind = "pp"
	}
	if c := top.tail; c != nil {
		tail.Element = c.ElementLabel
		if none {
			tail.Value = c.SellThrough
			tail.SubValue = fmt.Sprintf("库存 %s双", formatCount(c.OnHandUnits))
			if c.SellThrough < stats.avgSellThrough {
				tail.Tone = ToneRisk
			}
		} else {
			tail.Value = c.SellThroughGapPp
			tail.SubValue = fmt.Sprintf("当前售罄率 %.1f%%", c.SellThrough*100)
			if c.SellThroughGapPp <= -2 {
				tail.Tone = ToneRisk
			}
		}
	} else if none {
		tail.SubValue = "库存 0双"
	} else {
		tail.SubValue = "当前售罄率 0.0%"
	}

	return []KpiCard{demand, supply, reorder, tail}
}

// formatCount renders a rounded unit count with thousands separators the way
// zh-CN locales group digits.
func formatCount(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return sign + s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return sign + string(out)
}
