package categoryops

import (
	"sort"

	"merchops/domain/catalog"
	"merchops/domain/plan"
)

// baselineMetric is the comparable reading for one category or cell.
// hasSellThrough distinguishes "planned at 0%" from "no target at all".
type baselineMetric struct {
	netSales       float64
	sellThrough    float64
	hasSellThrough bool
	storeCount     int
}

// baselineData joins onto the current aggregation by the same bucket keys.
type baselineData struct {
	categories map[categoryKey]baselineMetric
	cells      map[cellKey]baselineMetric
	totals     BaselineTotals
}

func (b *baselineData) category(key categoryKey) (baselineMetric, bool) {
	m, ok := b.categories[key]
	return m, ok
}

func (b *baselineData) cell(key cellKey) (baselineMetric, bool) {
	m, ok := b.cells[key]
	return m, ok
}

// baselineFromAggregation projects a re-aggregated prior period (YoY or MoM)
// into baseline form. An empty prior period still yields a baseline; the
// compare note tells the user the deltas read against zero.
func (r *run) baselineFromAggregation(agg *aggregation) *baselineData {
	data := &baselineData{
		categories: make(map[categoryKey]baselineMetric, len(agg.categories)),
		cells:      make(map[cellKey]baselineMetric, len(agg.cells)),
	}
	for key, b := range agg.categories {
		data.categories[key] = baselineMetric{
			netSales:       b.netSales,
			sellThrough:    b.sellThrough(r.opts.SellThroughMode),
			hasSellThrough: b.stWeight > 0,
			storeCount:     len(b.stores),
		}
	}
	for key, b := range agg.cells {
		data.cells[key] = baselineMetric{
			netSales:       b.netSales,
			sellThrough:    b.sellThrough(r.opts.SellThroughMode),
			hasSellThrough: b.stWeight > 0,
		}
	}
	data.totals = BaselineTotals{
		NetSales:       agg.totalNetSales,
		PairsSold:      agg.totalPairs,
		AvgSellThrough: r.aggregationAvgSellThrough(agg),
		ActiveSku:      len(agg.activeSkus),
		StoreCount:     len(agg.activeStores),
	}
	return data
}

// aggregationAvgSellThrough is the sales-weighted mean of cell sell-throughs,
// accumulated in key order so the figure is stable across runs.
func (r *run) aggregationAvgSellThrough(agg *aggregation) float64 {
	keys := make([]cellKey, 0, len(agg.cells))
	for key := range agg.cells {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].categoryID != keys[j].categoryID {
			return keys[i].categoryID < keys[j].categoryID
		}
		return keys[i].priceBand < keys[j].priceBand
	})

	var weighted, weight float64
	for _, key := range keys {
		b := agg.cells[key]
		w := maxFloat(b.netSales, 1)
		weighted += b.sellThrough(r.opts.SellThroughMode) * w
		weight += w
	}
	return safeDiv(weighted, weight)
}

// planBaseline builds the plan comparison. Category plans map directly;
// cell plans are allocated by the current sales mix, falling back to the
// band plan's share when a cell sold nothing. A present-but-zero plan still
// counts as a baseline, the cards just render its gaps as unknown.
func (r *run) planBaseline(current *aggregation) *baselineData {
	p := r.snap.Plan
	if p.IsEmpty() {
		return nil
	}

	catPlans := make(map[string]plan.CategoryPlan, len(p.CategoryPlan))
	var catSalesSum, catUnitsSum, catSkuSum float64
	var catStWeighted float64
	for _, cp := range p.CategoryPlan {
		catPlans[cp.CategoryID] = cp
		catSalesSum += cp.PlanSalesAmt
		catUnitsSum += cp.PlanUnits
		catSkuSum += cp.PlanSkuCount
		catStWeighted += cp.PlanSellThrough * cp.PlanSalesAmt
	}
	bandPlans := make(map[catalog.PriceBand]plan.PriceBandPlan, len(p.PriceBandPlan))
	var bandSalesSum float64
	for _, bp := range p.PriceBandPlan {
		bandPlans[catalog.NormalizePriceBand(bp.PriceBand)] = bp
		bandSalesSum += bp.PlanSalesAmt
	}

	planTotalSales := catSalesSum
	planTotalUnits := catUnitsSum
	planAvgSt := safeDiv(catStWeighted, catSalesSum)
	planActiveSkus := catSkuSum
	if o := p.OverallPlan; o != nil {
		if o.PlanTotalSales > 0 {
			planTotalSales = o.PlanTotalSales
		}
		if o.PlanTotalUnits > 0 {
			planTotalUnits = o.PlanTotalUnits
		}
		if o.PlanAvgSellThrough > 0 {
			planAvgSt = o.PlanAvgSellThrough
		}
		if o.PlanActiveSkus > 0 {
			planActiveSkus = o.PlanActiveSkus
		}
	}

	lookup := func(b *bucket) (plan.CategoryPlan, bool) {
		if cp, ok := catPlans[b.categoryID]; ok {
			return cp, true
		}
		cp, ok := catPlans[b.filterL1]
		return cp, ok
	}

	data := &baselineData{
		categories: make(map[categoryKey]baselineMetric),
		cells:      make(map[cellKey]baselineMetric),
	}
	for key, b := range current.categories {
		cp, ok := lookup(b)
		if !ok {
			continue
		}
		data.categories[key] = baselineMetric{
			netSales:       cp.PlanSalesAmt,
			sellThrough:    cp.PlanSellThrough,
			hasSellThrough: cp.PlanSellThrough > 0,
			storeCount:     len(b.stores),
		}
	}
	for key, b := range current.cells {
		cp, hasCat := lookup(b)
		bp, hasBand := bandPlans[b.priceBand]
		if !hasCat && !hasBand {
			continue
		}

		catBucket := current.categories[categoryKey{productLine: b.productLine, categoryID: b.categoryID}]
		var currentShare float64
		if catBucket != nil {
			currentShare = safeDiv(b.netSales, catBucket.netSales)
		}
		bandShare := 0.0
		if hasBand {
			bandShare = safeDiv(bp.PlanSalesAmt, bandSalesSum)
		}
		blendedShare := currentShare
		if blendedShare <= 0 {
			blendedShare = bandShare
		}

		metric := baselineMetric{netSales: cp.PlanSalesAmt * blendedShare}
		switch {
		case hasCat && cp.PlanSellThrough > 0 && hasBand && bp.PlanSellThrough > 0:
			metric.sellThrough = (cp.PlanSellThrough + bp.PlanSellThrough) / 2
			metric.hasSellThrough = true
		case hasCat && cp.PlanSellThrough > 0:
			metric.sellThrough = cp.PlanSellThrough
			metric.hasSellThrough = true
		case hasBand && bp.PlanSellThrough > 0:
			metric.sellThrough = bp.PlanSellThrough
			metric.hasSellThrough = true
		}
		data.cells[key] = metric
	}

	data.totals = BaselineTotals{
		NetSales:       planTotalSales,
		PairsSold:      planTotalUnits,
		AvgSellThrough: planAvgSt,
		ActiveSku:      int(planActiveSkus),
		StoreCount:     len(current.activeStores),
	}
	return data
}
