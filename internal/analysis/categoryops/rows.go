package categoryops

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"merchops/domain/catalog"
)

// categoryRow is one category bucket joined with its baseline reading and
// derived rates. Pointer fields are nil when the active mode carries no
// baseline for the row.
type categoryRow struct {
	id               string
	categoryID       string
	category         string
	filterL1         string
	productLine      string
	netSales         float64
	baselineNetSales float64

	storeCount         int
	baselineStoreCount int
	salesPerStoreAmt   float64
	salesPerStoreYoY   *float64

	pairsSold   float64
	skcCnt      int
	asp         float64
	salesPerSkc float64
	onHandUnits float64

	sellThrough         float64
	baselineSellThrough *float64
	fillRate            float64
	baselineFillRate    *float64
	reorderRate         float64
	baselineReorderRate *float64
	demandYoY           float64
	gmRate              float64

	primaryLifecycle catalog.Lifecycle
}

// cellRow is the category-by-price-band counterpart.
type cellRow struct {
	id               string
	categoryID       string
	category         string
	productLine      string
	priceBand        catalog.PriceBand
	netSales         float64
	baselineNetSales float64

	pairsSold   float64
	skcCnt      int
	asp         float64
	salesPerSkc float64
	onHandUnits float64

	sellThrough         float64
	baselineSellThrough *float64
	fillRate            float64
	baselineFillRate    *float64
	reorderRate         float64
	baselineReorderRate *float64
	demandYoY           float64
}

// sampleStats carries the sales-weighted sample averages every gap reads
// against, plus their baseline counterparts.
type sampleStats struct {
	avgSellThrough float64
	avgFillRate    float64
	avgReorderRate float64

	baselineAvgSellThrough float64
	baselineAvgFillRate    float64
	baselineAvgReorderRate float64
}

func (r *run) buildCategoryRows(agg *aggregation, baseline *baselineData) []categoryRow {
	rows := make([]categoryRow, 0, len(agg.categories))
	for key, b := range agg.categories {
		var metric *baselineMetric
		if baseline != nil {
			if m, ok := baseline.category(key); ok {
				metric = &m
			}
		}

		baselineNetSales := 0.0
		storeCount := len(b.stores)
		baselineStoreCount := storeCount
		if metric != nil {
			baselineNetSales = metric.netSales
			if metric.storeCount > 0 {
				baselineStoreCount = metric.storeCount
			}
		}

		salesPerStore := safeDiv(b.netSales, maxFloat(float64(storeCount), 1))
		baselineSalesPerStore := safeDiv(baselineNetSales, maxFloat(float64(baselineStoreCount), 1))
		var salesPerStoreYoY *float64
		if r.hasBaseline {
			salesPerStoreYoY = deltaPercent(salesPerStore, baselineSalesPerStore)
		}

		demandYoY := 0.0
		if r.hasBaseline && baselineNetSales > 0 {
			demandYoY = safeDiv(b.netSales-baselineNetSales, baselineNetSales)
		}

		st := b.sellThrough(r.opts.SellThroughMode)
		pressure := inventoryPressure(b.onHandUnits, b.pairsSold)
		momentum := 0.0
		if r.hasBaseline {
			momentum = demandYoY
		}
		fill := DeriveFillRate(st, momentum, pressure)
		reorder := DeriveReorderRate(fill, momentum, pressure)

		row := categoryRow{
			id:                 key.productLine + "__" + key.categoryID,
			categoryID:         b.categoryID,
			category:           b.category,
			filterL1:           b.filterL1,
			productLine:        b.productLine,
			netSales:           b.netSales,
			baselineNetSales:   baselineNetSales,
			storeCount:         storeCount,
			baselineStoreCount: baselineStoreCount,
			salesPerStoreAmt:   salesPerStore,
			salesPerStoreYoY:   salesPerStoreYoY,
			pairsSold:          b.pairsSold,
			skcCnt:             b.skcCnt(),
			asp:                b.asp(),
			salesPerSkc:        b.salesPerSkc(),
			onHandUnits:        b.onHandUnits,
			sellThrough:        st,
			fillRate:           fill,
			reorderRate:        reorder,
			demandYoY:          demandYoY,
			gmRate:             b.gmRate(),
			primaryLifecycle:   b.primaryLifecycle(),
		}
		if r.hasBaseline && metric != nil && metric.hasSellThrough {
			row.baselineSellThrough = float64Ptr(metric.sellThrough)
			row.baselineFillRate = float64Ptr(DeriveFillRate(metric.sellThrough, 0, pressure))
			row.baselineReorderRate = float64Ptr(DeriveReorderRate(*row.baselineFillRate, 0, pressure))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].netSales != rows[j].netSales {
			return rows[i].netSales > rows[j].netSales
		}
		return rows[i].id < rows[j].id
	})
	return rows
}

func (r *run) buildCellRows(agg *aggregation, baseline *baselineData) []cellRow {
	rows := make([]cellRow, 0, len(agg.cells))
	for key, b := range agg.cells {
		var metric *baselineMetric
		if baseline != nil {
			if m, ok := baseline.cell(key); ok {
				metric = &m
			}
		}

		baselineNetSales := 0.0
		if metric != nil {
			baselineNetSales = metric.netSales
		}
		demandYoY := 0.0
		if r.hasBaseline && baselineNetSales > 0 {
			demandYoY = safeDiv(b.netSales-baselineNetSales, baselineNetSales)
		}

		st := b.sellThrough(r.opts.SellThroughMode)
		pressure := inventoryPressure(b.onHandUnits, b.pairsSold)
		momentum := 0.0
		if r.hasBaseline {
			momentum = demandYoY
		}
		fill := DeriveFillRate(st, momentum, pressure)
		reorder := DeriveReorderRate(fill, momentum, pressure)

		row := cellRow{
			id:               key.categoryID + "__" + string(key.priceBand),
			categoryID:       b.categoryID,
			category:         b.category,
			productLine:      b.productLine,
			priceBand:        key.priceBand,
			netSales:         b.netSales,
			baselineNetSales: baselineNetSales,
			pairsSold:        b.pairsSold,
			skcCnt:           b.skcCnt(),
			asp:              b.asp(),
			salesPerSkc:      b.salesPerSkc(),
			onHandUnits:      b.onHandUnits,
			sellThrough:      st,
			fillRate:         fill,
			reorderRate:      reorder,
			demandYoY:        demandYoY,
		}
		if r.hasBaseline && metric != nil && metric.hasSellThrough {
			row.baselineSellThrough = float64Ptr(metric.sellThrough)
			row.baselineFillRate = float64Ptr(DeriveFillRate(metric.sellThrough, 0, pressure))
			row.baselineReorderRate = float64Ptr(DeriveReorderRate(*row.baselineFillRate, 0, pressure))
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].netSales != rows[j].netSales {
			return rows[i].netSales > rows[j].netSales
		}
		return rows[i].id < rows[j].id
	})
	return rows
}

// buildSampleStats computes the sales-weighted averages over the cell rows.
// Baseline averages weight by baseline sales and fall back to the current
// average when no row carried a baseline rate.
func (r *run) buildSampleStats(cells []cellRow, baselineTotals *BaselineTotals) sampleStats {
	n := len(cells)
	st := make([]float64, 0, n)
	fill := make([]float64, 0, n)
	reorder := make([]float64, 0, n)
	weights := make([]float64, 0, n)
	for _, c := range cells {
		st = append(st, c.sellThrough)
		fill = append(fill, c.fillRate)
		reorder = append(reorder, c.reorderRate)
		weights = append(weights, c.netSales)
	}

	stats := sampleStats{}
	if sum(weights) > 0 {
		stats.avgSellThrough = stat.Mean(st, weights)
		stats.avgFillRate = stat.Mean(fill, weights)
		stats.avgReorderRate = stat.Mean(reorder, weights)
	}

	stats.baselineAvgSellThrough = stats.avgSellThrough
	stats.baselineAvgFillRate = stats.avgFillRate
	stats.baselineAvgReorderRate = stats.avgReorderRate
	if !r.hasBaseline {
		return stats
	}

	if baselineTotals != nil {
		stats.baselineAvgSellThrough = baselineTotals.AvgSellThrough
	}
	var fillWeighted, reorderWeighted, weight float64
	for _, c := range cells {
		w := maxFloat(c.baselineNetSales, 0)
		weight += w
		if c.baselineFillRate != nil {
			fillWeighted += *c.baselineFillRate * w
		}
		if c.baselineReorderRate != nil {
			reorderWeighted += *c.baselineReorderRate * w
		}
	}
	if v := safeDiv(fillWeighted, weight); v != 0 {
		stats.baselineAvgFillRate = v
	}
	if v := safeDiv(reorderWeighted, weight); v != 0 {
		stats.baselineAvgReorderRate = v
	}
	return stats
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
