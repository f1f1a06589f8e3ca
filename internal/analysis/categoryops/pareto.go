package categoryops

// buildPareto computes the SKU concentration curve over the first 30 ranks.
// Shares are against the full scope's SKU sales, so the curve ends below 1
// whenever the tail extends past rank 30.
func buildPareto(rows []SkuActionRow) Pareto {
	var total float64
	for _, row := range rows {
		total += row.NetSales
	}

	limit := len(rows)
	if limit > 30 {
		limit = 30
	}
	points := make([]ParetoPoint, 0, limit)
	var cumulative float64
	var top10, top20 float64
	for i, row := range rows {
		share := safeDiv(row.NetSales, total)
		cumulative += share
		if i < limit {
			points = append(points, ParetoPoint{
				Rank:            i + 1,
				SkuID:           row.SkuID,
				Category:        row.Category,
				NetSales:        row.NetSales,
				Share:           share,
				CumulativeShare: cumulative,
			})
		}
		if i == 9 {
			top10 = cumulative
		}
		if i == 19 {
			top20 = cumulative
		}
	}
	if len(rows) > 0 && len(rows) < 10 {
		top10 = cumulative
	}
	if len(rows) > 0 && len(rows) < 20 {
		top20 = cumulative
	}

	return Pareto{Points: points, Top10Share: top10, Top20Share: top20}
}
