package categoryops

import (
	"fmt"
	"sort"
	"strings"

	"merchops/domain/sales"
)

func joinCategories(rows []categoryRow, limit int, empty string) string {
	names := make([]string, 0, limit)
	for _, row := range rows {
		if len(names) == limit {
			break
		}
		names = append(names, row.category)
	}
	if len(names) == 0 {
		return empty
	}
	return strings.Join(names, "、")
}

// buildCause walks the 4-branch mismatch tree over the worst supply/demand
// cell. Order matters: supply shortage wins over demand weakness wins over
// runaway growth.
func (r *run) buildCause(mismatch *HeatCell) string {
	if mismatch == nil {
		return "当前样本供需基本平衡，建议按波段做轻量结构微调。"
	}
	switch {
	case mismatch.FillGapPp < -3 && mismatch.ReorderGapPp > 2:
		return fmt.Sprintf("供给侧短缺主导：%s 执行率偏低、补单压力偏高。", mismatch.ElementLabel)
	case mismatch.SellThroughGapPp < -2:
		if r.opts.CompareMode == CompareNone {
			return fmt.Sprintf("需求侧疲软主导：%s 售罄率低于均值，去化慢。", mismatch.ElementLabel)
		}
		return fmt.Sprintf("需求侧疲软主导：%s 售罄率%s偏弱，去化慢。", mismatch.ElementLabel, r.deltaLabel)
	case mismatch.DemandYoY > 0.18 && mismatch.FillGapPp < 0:
		return fmt.Sprintf("需求增长快于供给：%s 需要提前加深备货。", mismatch.ElementLabel)
	default:
		return fmt.Sprintf("供需双侧错配：%s 需同步优化配货节奏与主推结构。", mismatch.ElementLabel)
	}
}

func buildActions(top topCells, topCategory *categoryRow) []string {
	actions := make([]string, 0, 5)
	if top.supply != nil {
		actions = append(actions, fmt.Sprintf("对 %s 启动优先补货调拨，先保核心码段与核心门店。", top.supply.ElementLabel))
	}
	if top.reorder != nil {
		actions = append(actions, fmt.Sprintf("对 %s 前置二次补单窗口，缩短到货周期。", top.reorder.ElementLabel))
	}
	if top.tail != nil {
		actions = append(actions, fmt.Sprintf("对 %s 执行 SKU 收敛，压缩低效宽度，优先清理慢动销库存。", top.tail.ElementLabel))
	}
	if topCategory != nil {
		actions = append(actions, fmt.Sprintf("将资源向 %s 倾斜，提升高动销价带深度，降低断码风险。", topCategory.category))
	}
	if len(actions) < 3 {
		actions = append(actions, "保持主力品类节奏稳定，按周监控售罄与执行率差值，避免结构性偏离。")
	}
	if len(actions) > 5 {
		actions = actions[:5]
	}
	return actions
}

func (r *run) buildYoyConclusions(rows []categoryRow, t scopeTotals) []string {
	channelLabel := "全渠道"
	if r.filters.ChannelType != sales.All {
		channelLabel = r.filters.ChannelType
	}

	if !r.hasBaseline {
		growth := make([]categoryRow, len(rows))
		copy(growth, rows)
		sort.SliceStable(growth, func(i, j int) bool { return growth[i].netSales > growth[j].netSales })
		return []string{
			fmt.Sprintf("%s口径当前销额 %s，以当前贡献度输出重点品类。", channelLabel, formatWan(t.netSales)),
			fmt.Sprintf("当前贡献Top品类：%s。", joinCategories(growth, 5, "—")),
		}
	}

	growth := make([]categoryRow, 0, len(rows))
	decline := make([]categoryRow, 0, len(rows))
	for _, row := range rows {
		switch delta := row.netSales - row.baselineNetSales; {
		case delta > 0:
			growth = append(growth, row)
		case delta < 0:
			decline = append(decline, row)
		}
	}
	sort.SliceStable(growth, func(i, j int) bool {
		return growth[i].netSales-growth[i].baselineNetSales > growth[j].netSales-growth[j].baselineNetSales
	})
	sort.SliceStable(decline, func(i, j int) bool {
		return decline[i].netSales-decline[i].baselineNetSales < decline[j].netSales-decline[j].baselineNetSales
	})

	focus := make([]categoryRow, 0, len(rows))
	for _, row := range rows {
		if row.demandYoY >= 0 {
			focus = append(focus, row)
		}
	}
	focusScore := func(row categoryRow) float64 {
		return safeDiv(row.netSales, maxFloat(t.netSales, 1)) + maxFloat(0, row.demandYoY)*0.8
	}
	sort.SliceStable(focus, func(i, j int) bool { return focusScore(focus[i]) > focusScore(focus[j]) })

	totalDelta := t.netSales - t.baselineNetSales
	totalDeltaPct := "—"
	if v := deltaPercent(t.netSales, t.baselineNetSales); v != nil {
		totalDeltaPct = fmt.Sprintf("%.1f%%", *v*100)
	}
	sign := ""
	if totalDelta >= 0 {
		sign = "+"
	}

	return []string{
		fmt.Sprintf("%s口径销额%s%s%.1f万（%s）。", channelLabel, r.deltaLabel, sign, totalDelta/10000, totalDeltaPct),
		fmt.Sprintf("增长较多品类：%s。", joinCategories(growth, 5, "—")),
		fmt.Sprintf("下滑较多品类：%s。", joinCategories(decline, 5, "无明显下滑品类")),
		fmt.Sprintf("重点品类建议：%s。", joinCategories(focus, 4, "—")),
	}
}

func (r *run) buildStoreConclusions(rows []categoryRow, t scopeTotals) []string {
	if !r.hasBaseline {
		byStore := make([]categoryRow, len(rows))
		copy(byStore, rows)
		sort.SliceStable(byStore, func(i, j int) bool { return byStore[i].salesPerStoreAmt > byStore[j].salesPerStoreAmt })
		return []string{
			fmt.Sprintf("动销门店 %d 家，当前单店销额 %s。", t.storeCount, formatWan(t.salesPerStoreAmt)),
			fmt.Sprintf("当前店均销额较高品类：%s。", joinCategories(byStore, 3, "—")),
		}
	}

	up := make([]categoryRow, 0, len(rows))
	down := make([]categoryRow, 0, len(rows))
	for _, row := range rows {
		if row.salesPerStoreYoY == nil {
			continue
		}
		if *row.salesPerStoreYoY > 0 {
			up = append(up, row)
		} else if *row.salesPerStoreYoY < 0 {
			down = append(down, row)
		}
	}
	sort.SliceStable(up, func(i, j int) bool { return *up[i].salesPerStoreYoY > *up[j].salesPerStoreYoY })
	sort.SliceStable(down, func(i, j int) bool { return *down[i].salesPerStoreYoY < *down[j].salesPerStoreYoY })

	storeDeltaPct := "—"
	if v := deltaPercent(t.salesPerStoreAmt, t.baselineSalesPerStoreAmt); v != nil {
		storeDeltaPct = fmt.Sprintf("%.1f%%", *v*100)
	}

	return []string{
		fmt.Sprintf("动销门店：本期 %d 家，基线 %d 家；单店销额%s%s。", t.storeCount, t.baselineStoreCount, r.deltaLabel, storeDeltaPct),
		fmt.Sprintf("店均提升品类：%s。", joinCategories(up, 3, "—")),
		fmt.Sprintf("店均下滑品类：%s。", joinCategories(down, 3, "无明显下滑品类")),
	}
}

func (r *run) buildFinding(topCategory *categoryRow, totalNetSales float64) string {
	if topCategory == nil {
		return "当前筛选口径下暂无可用品类贡献数据。"
	}
	share := safeDiv(topCategory.netSales, totalNetSales) * 100
	if r.opts.CompareMode == CompareNone {
		return fmt.Sprintf("%s 为当前最大贡献品类，销售占比 %.1f%%。", topCategory.category, share)
	}
	topDeltaPct := 0.0
	if topCategory.baselineNetSales > 0 {
		topDeltaPct = safeDiv(topCategory.netSales-topCategory.baselineNetSales, topCategory.baselineNetSales) * 100
	}
	return fmt.Sprintf("%s 为当前最大贡献品类，销售占比 %.1f%%，%s%.1f%%。", topCategory.category, share, r.deltaLabel, topDeltaPct)
}

func (r *run) buildInsight(rows []categoryRow, top topCells, t scopeTotals, groups CategoryGroups) Insight {
	var topCategory *categoryRow
	if len(rows) > 0 {
		topCategory = &rows[0]
	}
	return Insight{
		Finding:          r.buildFinding(topCategory, t.netSales),
		Cause:            r.buildCause(top.mismatch),
		Actions:          buildActions(top, topCategory),
		YoyConclusions:   r.buildYoyConclusions(rows, t),
		StoreConclusions: r.buildStoreConclusions(rows, t),
		CategoryGroups:   groups,
	}
}

// buildDecisionRows condenses the run into the three review cards the weekly
// trade meeting walks through: lead category, supply chain link, OTB.
func (r *run) buildDecisionRows(rows []categoryRow, top topCells, t scopeTotals, otb []OtbSuggestion) []DecisionRow {
	out := make([]DecisionRow, 0, 3)

	lead := DecisionRow{
		ID:       "decision_lead",
		Title:    "主力品类深耕",
		Finding:  "当前筛选口径下暂无品类样本。",
		Decision: "等待数据接入后再评估主力品类策略。",
		Result:   "—",
	}
	if len(rows) > 0 {
		topRow := rows[0]
		share := safeDiv(topRow.netSales, t.netSales) * 100
		lead.Finding = fmt.Sprintf("%s 贡献销额 %s，占比 %.1f%%。", topRow.category, formatWan(topRow.netSales), share)
		lead.Decision = fmt.Sprintf("对 %s 优先保障主推价带深度与核心尺码库存。", topRow.category)
		lead.Result = fmt.Sprintf("售罄率 %.1f%%，执行率 %.1f%%。", topRow.sellThrough*100, topRow.fillRate*100)
	}
	out = append(out, lead)

	link := DecisionRow{
		ID:       "decision_link",
		Title:    "供需链路协同",
		Finding:  "供需链路整体平稳，无显著短缺要素。",
		Decision: "维持当前补货节奏，按周复核执行率差值。",
		Result:   "—",
	}
	if top.supply != nil {
		link.Finding = fmt.Sprintf("%s 执行率 %.1f%%，为当前链路短板。", top.supply.ElementLabel, top.supply.FillRate*100)
		link.Decision = fmt.Sprintf("对 %s 优先调拨补货并前置补单窗口。", top.supply.ElementLabel)
		link.Result = fmt.Sprintf("执行率缺口 %.1fpp，补单率 %.1f%%。", top.supply.FillGapPp, top.supply.ReorderRate*100)
	}
	out = append(out, link)

	otbRow := DecisionRow{
		ID:       "decision_otb",
		Title:    "OTB 结构调整",
		Finding:  "暂无可用的 OTB 权重建议。",
		Decision: "保持现有采购权重分配。",
		Result:   "—",
	}
	if len(otb) > 0 {
		best := otb[0]
		for _, s := range otb[1:] {
			if absFloat(s.DeltaPp) > absFloat(best.DeltaPp) {
				best = s
			}
		}
		direction := "上调"
		if best.DeltaPp < 0 {
			direction = "下调"
		}
		otbRow.Finding = fmt.Sprintf("%s 当前销额占比 %.1f%%，建议权重 %.1f%%。", best.Category, best.SalesShare*100, best.SuggestedWeight*100)
		otbRow.Decision = fmt.Sprintf("%s %s 的 OTB 权重 %.1fpp。", direction, best.Category, absFloat(best.DeltaPp))
		otbRow.Result = best.Reason
	}
	out = append(out, otbRow)

	return out
}
