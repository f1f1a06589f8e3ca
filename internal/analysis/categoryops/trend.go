package categoryops

import (
	"sort"

	"merchops/domain/sales"
)

type weekAgg struct {
	stWeighted  float64
	effWeighted float64
	stWeight    float64
	netSales    float64
}

func (r *run) aggregateWeeks(forced *sales.Period) map[int]*weekAgg {
	weeks := make(map[int]*weekAgg)
	for i := range r.snap.Facts {
		rec := &r.snap.Facts[i]
		sku, _ := r.snap.Sku(rec.SkuID)
		ch, _ := r.snap.Channel(rec.ChannelID)
		if !matchesFilters(r.filters, rec, sku, ch, forced) {
			continue
		}
		w, ok := weeks[rec.WeekNum]
		if !ok {
			w = &weekAgg{}
			weeks[rec.WeekNum] = w
		}
		units := maxFloat(rec.UnitSold, 0)
		onHand := maxFloat(rec.OnHandUnit, 0)
		weight := maxFloat(units, 1)
		w.stWeighted += rec.CumulativeSellThrough * weight
		w.effWeighted += safeDiv(units, units+onHand*sku.Lifecycle.InventoryFactor()) * weight
		w.stWeight += weight
		w.netSales += maxFloat(rec.NetSalesAmt, 0)
	}
	return weeks
}

func (w *weekAgg) sellThrough(mode SellThroughMode) float64 {
	if mode == SellThroughEffective {
		return safeDiv(w.effWeighted, w.stWeight)
	}
	return safeDiv(w.stWeighted, w.stWeight)
}

// buildTrend emits the weekly sell-through curve for the current scope. When
// the baseline is a re-aggregated period its weekly curve rides along by week
// number; the plan baseline has no weekly shape, so the series stays nil.
func (r *run) buildTrend(baselinePeriod *sales.Period) []TrendPoint {
	current := r.aggregateWeeks(nil)
	var baseline map[int]*weekAgg
	if baselinePeriod != nil {
		baseline = r.aggregateWeeks(baselinePeriod)
	}

	weekNums := make([]int, 0, len(current))
	for week := range current {
		weekNums = append(weekNums, week)
	}
	sort.Ints(weekNums)

	points := make([]TrendPoint, 0, len(weekNums))
	for _, week := range weekNums {
		w := current[week]
		point := TrendPoint{
			WeekNum:     week,
			SellThrough: w.sellThrough(r.opts.SellThroughMode),
			NetSales:    w.netSales,
		}
		if b, ok := baseline[week]; ok {
			point.BaselineSellThrough = float64Ptr(b.sellThrough(r.opts.SellThroughMode))
		}
		points = append(points, point)
	}
	return points
}
