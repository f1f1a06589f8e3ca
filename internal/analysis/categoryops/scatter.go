package categoryops

import (
	"sort"
	"strings"
)

// buildSunburstData rolls heat cells up into the product-line to category
// tree, line sell-through weighted by child value.
func buildSunburstData(cells []HeatCell) []SunburstNode {
	type lineAgg struct {
		name     string
		children []SunburstNode
	}
	lines := make(map[string]*lineAgg)
	order := make([]string, 0)
	for _, cell := range cells {
		l, ok := lines[cell.ProductLine]
		if !ok {
			l = &lineAgg{name: cell.ProductLine}
			lines[cell.ProductLine] = l
			order = append(order, cell.ProductLine)
		}
		l.children = append(l.children, SunburstNode{
			Name:        cell.Category,
			Value:       cell.NetSales,
			SellThrough: cell.SellThrough,
		})
	}

	out := make([]SunburstNode, 0, len(lines))
	for _, key := range order {
		l := lines[key]
		var total, weighted float64
		for _, child := range l.children {
			total += child.Value
			weighted += child.SellThrough * child.Value
		}
		out = append(out, SunburstNode{
			Name:        l.name,
			Value:       total,
			SellThrough: safeDiv(weighted, total),
			Children:    l.children,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

// priceBandMix labels a category by its two best-selling bands in rank order.
func priceBandMix(categoryID string, cells []HeatCell) string {
	matched := make([]HeatCell, 0, 4)
	for _, cell := range cells {
		if cell.CategoryID == categoryID {
			matched = append(matched, cell)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].NetSales > matched[j].NetSales })
	if len(matched) > 2 {
		matched = matched[:2]
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PriceBand.SortRank() < matched[j].PriceBand.SortRank()
	})

	labels := make([]string, 0, 2)
	for _, cell := range matched {
		labels = append(labels, cell.PriceBand.Label())
	}
	if len(labels) == 0 {
		return "未定义价格带"
	}
	return strings.Join(labels, " / ")
}

// buildScatter places every category in the contribution/momentum quadrant
// space. Momentum is demand growth when a baseline exists, otherwise the
// category's own sell-through read against the sample average.
func (r *run) buildScatter(rows []categoryRow, cells []HeatCell, totalNetSales, totalPairs float64, stats sampleStats) ([]ScatterPoint, ScatterReference) {
	points := make([]ScatterPoint, 0, len(rows))
	var skcSum int
	for _, row := range rows {
		skcSum += row.skcCnt
		momentum := row.sellThrough
		if r.hasBaseline {
			momentum = row.demandYoY
		}
		points = append(points, ScatterPoint{
			ID:                    row.id,
			CategoryID:            row.categoryID,
			CategoryFilterID:      row.filterL1,
			Category:              row.category,
			ProductLine:           row.productLine,
			NetSales:              row.netSales,
			ContributionShare:     safeDiv(row.netSales, totalNetSales),
			Momentum:              momentum,
			SellThrough:           row.sellThrough,
			FillRate:              row.fillRate,
			ReorderRate:           row.reorderRate,
			ASP:                   row.asp,
			SalesPerSkc:           row.salesPerSkc,
			SkuCount:              row.skcCnt,
			PrimaryLifecycleLabel: row.primaryLifecycle.Label(),
			PriceBandMix:          priceBandMix(row.categoryID, cells),
		})
	}

	ref := ScatterReference{
		ASPAvg:         safeDiv(totalNetSales, totalPairs),
		SalesPerSkcAvg: safeDiv(totalNetSales, float64(skcSum)),
		MomentumAvg:    stats.avgSellThrough,
	}
	if r.hasBaseline {
		ref.MomentumAvg = 0
	}
	if n := len(rows); n > 0 {
		ref.ContributionShareAvg = 1 / float64(n)
	}
	return points, ref
}

// classifyCategories puts every category into exactly one quadrant.
// Cashflow keeps zero-momentum leaders; potential needs strictly positive
// momentum so a flat low-share category reads as research, not upside.
func classifyCategories(points []ScatterPoint, ref ScatterReference) CategoryGroups {
	groups := CategoryGroups{
		Cashflow:  []string{},
		Potential: []string{},
		Warning:   []string{},
		Research:  []string{},
	}
	for _, p := range points {
		highShare := p.ContributionShare >= ref.ContributionShareAvg
		momentum := p.Momentum - ref.MomentumAvg
		switch {
		case highShare && momentum >= 0:
			groups.Cashflow = append(groups.Cashflow, p.Category)
		case !highShare && momentum > 0:
			groups.Potential = append(groups.Potential, p.Category)
		case highShare:
			groups.Warning = append(groups.Warning, p.Category)
		default:
			groups.Research = append(groups.Research, p.Category)
		}
	}
	return groups
}

// buildWaterfall keeps the ten categories that move the total the most.
// Without a baseline the "delta" is the category's own contribution.
func (r *run) buildWaterfall(rows []categoryRow) []WaterfallPoint {
	points := make([]WaterfallPoint, 0, len(rows))
	for _, row := range rows {
		delta := row.netSales
		if r.opts.CompareMode != CompareNone {
			delta = row.netSales - row.baselineNetSales
		}
		points = append(points, WaterfallPoint{
			ID:               row.id,
			CategoryID:       row.categoryID,
			Category:         row.category,
			DeltaNetSales:    delta,
			CurrentNetSales:  row.netSales,
			BaselineNetSales: row.baselineNetSales,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return absFloat(points[i].DeltaNetSales) > absFloat(points[j].DeltaNetSales)
	})
	if len(points) > 10 {
		points = points[:10]
	}
	return points
}
