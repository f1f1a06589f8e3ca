package categoryops

import "sort"

// buildOtbSuggestions scores every category for open-to-buy budget weight.
// The score blends sales and gross-profit contribution with sell-through
// outperformance, rewards demand growth when a baseline exists, and docks
// categories whose SKU width outruns their sales share. Scores are floored
// and renormalized so the weights always sum to 1.
func (r *run) buildOtbSuggestions(rows []categoryRow, stats sampleStats) []OtbSuggestion {
	if len(rows) == 0 {
		return []OtbSuggestion{}
	}

	var totalSales, totalProfit float64
	var totalSkus int
	for _, row := range rows {
		totalSales += row.netSales
		totalProfit += row.netSales * row.gmRate
		totalSkus += row.skcCnt
	}

	type scored struct {
		row        categoryRow
		salesShare float64
		gmShare    float64
		skuShare   float64
		score      float64
	}
	items := make([]scored, 0, len(rows))
	var scoreSum float64
	for _, row := range rows {
		s := scored{
			row:        row,
			salesShare: safeDiv(row.netSales, totalSales),
			gmShare:    safeDiv(row.netSales*row.gmRate, totalProfit),
			skuShare:   safeDiv(float64(row.skcCnt), float64(totalSkus)),
		}
		score := 0.45*s.salesShare +
			0.35*s.gmShare +
			0.2*maxFloat(0, row.sellThrough-stats.avgSellThrough)
		if r.hasBaseline {
			score += 0.2*maxFloat(0, row.demandYoY) - 0.15*maxFloat(0, -row.demandYoY)
		}
		if s.skuShare > 1.25*s.salesShare {
			score -= 0.06
		}
		s.score = maxFloat(score, 0.001)
		scoreSum += s.score
		items = append(items, s)
	}

	out := make([]OtbSuggestion, 0, len(items))
	for _, s := range items {
		weight := safeDiv(s.score, scoreSum)
		delta := (weight - s.salesShare) * 100
		out = append(out, OtbSuggestion{
			CategoryID:      s.row.categoryID,
			Category:        s.row.category,
			SalesShare:      s.salesShare,
			GmShare:         s.gmShare,
			SkuShare:        s.skuShare,
			SuggestedWeight: weight,
			DeltaPp:         delta,
			Reason:          otbReason(s.row, s.skuShare, s.salesShare, delta, stats.avgSellThrough, r.hasBaseline),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SuggestedWeight != out[j].SuggestedWeight {
			return out[i].SuggestedWeight > out[j].SuggestedWeight
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

func otbReason(row categoryRow, skuShare, salesShare, deltaPp, avgSellThrough float64, hasBaseline bool) string {
	switch {
	case deltaPp >= 1 && hasBaseline && row.demandYoY > 0:
		return "销售与毛利贡献领先，需求延续增长，建议上调OTB权重。"
	case deltaPp >= 1:
		return "贡献度与售罄表现领先，建议上调OTB权重。"
	case deltaPp <= -1 && skuShare > 1.25*salesShare:
		return "SKU宽度超出销售贡献，建议压缩OTB权重并收敛货盘。"
	case deltaPp <= -1 && row.sellThrough < avgSellThrough:
		return "贡献度与动销偏弱，建议下调OTB权重。"
	case deltaPp <= -1:
		return "结构性贡献不足，建议小幅下调OTB权重。"
	default:
		return "结构稳定，维持当前OTB权重。"
	}
}
