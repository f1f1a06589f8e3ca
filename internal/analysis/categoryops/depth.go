package categoryops

import (
	"math"
	"sort"
)

var depthBinEdges = []struct {
	label string
	upper float64
}{
	{"<100双", 100},
	{"100-299双", 300},
	{"300-599双", 600},
	{"600-999双", 1000},
	{"1000+双", math.Inf(1)},
}

// quantile is the linear-interpolation quantile over the sorted values
// ((n-1)*q indexing). The S/main segmentation depends on this exact scheme;
// the stats libraries in the module ship nearest-rank variants that would
// shift thresholds on small samples.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := float64(len(sorted)-1) * q
	low := int(math.Floor(idx))
	high := int(math.Ceil(idx))
	if low == high {
		return sorted[low]
	}
	ratio := idx - float64(low)
	return sorted[low]*(1-ratio) + sorted[high]*ratio
}

// buildDepth segments the SKU set by sold depth: histogram bins plus the
// quantile-thresholded S-class/main/tail split, with one scatter point per
// SKU for the depth-vs-sell-through chart.
func (r *run) buildDepth(skus []*skuAgg, rows []SkuActionRow) Depth {
	actionByID := make(map[string]string, len(rows))
	for _, row := range rows {
		actionByID[row.SkuID] = row.Action
	}

	points := make([]DepthScatterPoint, 0, len(skus))
	values := make([]float64, 0, len(skus))
	for _, agg := range skus {
		values = append(values, agg.pairsSold)
		points = append(points, DepthScatterPoint{
			SkuID:          agg.skuID,
			CategoryID:     agg.categoryID,
			Category:       agg.category,
			PriceBand:      string(agg.priceBand),
			PriceBandLabel: agg.priceBand.Label(),
			LifecycleLabel: agg.lifecycle.Label(),
			PairsSold:      agg.pairsSold,
			SellThrough:    agg.sellThrough(r.opts.SellThroughMode),
			OnHandUnits:    agg.onHandUnits,
			GmRate:         safeDiv(agg.gmWeighted, agg.gmWeight),
			DiscountRate:   safeDiv(agg.discountWeighted, agg.discountWeight),
			Action:         actionByID[agg.skuID],
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].PairsSold != points[j].PairsSold {
			return points[i].PairsSold > points[j].PairsSold
		}
		return points[i].SkuID < points[j].SkuID
	})

	bins := make([]DepthBin, len(depthBinEdges))
	for i, edge := range depthBinEdges {
		bins[i].Label = edge.label
	}
	for _, p := range points {
		for i, edge := range depthBinEdges {
			if p.PairsSold < edge.upper {
				bins[i].Count++
				break
			}
		}
	}
	for i := range bins {
		bins[i].Share = safeDiv(float64(bins[i].Count), maxFloat(float64(len(points)), 1))
	}

	summary := DepthSummary{
		MainThreshold: quantile(values, 0.4),
		SThreshold:    quantile(values, 0.8),
	}
	for _, p := range points {
		switch {
		case p.PairsSold >= summary.SThreshold:
			summary.SCount++
		case p.PairsSold >= summary.MainThreshold:
			summary.MainCount++
		default:
			summary.TailCount++
		}
	}

	return Depth{Bins: bins, Summary: summary, ScatterPoints: points}
}
