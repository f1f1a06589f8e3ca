package categoryops

import (
	"sort"

	"merchops/domain/catalog"
)

// skuAgg is the per-SKU roll-up across channels. It carries its own latest
// inventory map since the cell-level one is keyed at a different grain.
type skuAgg struct {
	skuID            string
	skuName          string
	categoryID       string
	categoryFilterID string
	category         string
	priceBand        catalog.PriceBand
	lifecycle        catalog.Lifecycle

	netSales  float64
	pairsSold float64

	stWeighted       float64
	effWeighted      float64
	stWeight         float64
	discountWeighted float64
	discountWeight   float64
	gmWeighted       float64
	gmWeight         float64
	onHandUnits      float64
}

func (a *skuAgg) sellThrough(mode SellThroughMode) float64 {
	if mode == SellThroughEffective {
		return safeDiv(a.effWeighted, a.stWeight)
	}
	return safeDiv(a.stWeighted, a.stWeight)
}

// aggregateSkus runs the SKU-grain pass over the same filter scope. Rows
// without a channel dimension are skipped; an action on an unplaceable row
// cannot be routed anywhere.
func (r *run) aggregateSkus() []*skuAgg {
	byID := make(map[string]*skuAgg)
	order := make([]string, 0)
	type invEntry struct {
		weekNum int
		onHand  float64
	}
	latest := make(map[skuChannelKey]invEntry)

	for i := range r.snap.Facts {
		rec := &r.snap.Facts[i]
		sku, _ := r.snap.Sku(rec.SkuID)
		ch, _ := r.snap.Channel(rec.ChannelID)
		if !matchesFilters(r.filters, rec, sku, ch, nil) {
			continue
		}

		agg, exists := byID[rec.SkuID]
		if !exists {
			catID, catName := r.categoryOf(sku)
			agg = &skuAgg{
				skuID:            rec.SkuID,
				skuName:          sku.SkuName,
				categoryID:       catID,
				categoryFilterID: sku.Category.CategoryL1,
				category:         catName,
				priceBand:        sku.PriceBand,
				lifecycle:        sku.Lifecycle,
			}
			if agg.skuName == "" {
				agg.skuName = rec.SkuID
			}
			byID[rec.SkuID] = agg
			order = append(order, rec.SkuID)
		}

		units := maxFloat(rec.UnitSold, 0)
		amount := maxFloat(rec.NetSalesAmt, 0)
		onHand := maxFloat(rec.OnHandUnit, 0)
		stWeight := maxFloat(units, 1)
		amountWeight := maxFloat(amount, 1)

		agg.netSales += amount
		agg.pairsSold += units
		agg.stWeighted += rec.CumulativeSellThrough * stWeight
		agg.effWeighted += safeDiv(units, units+onHand*sku.Lifecycle.InventoryFactor()) * stWeight
		agg.stWeight += stWeight
		agg.discountWeighted += rec.DiscountRate * amountWeight
		agg.discountWeight += amountWeight
		agg.gmWeighted += rec.GrossMarginRate * amountWeight
		agg.gmWeight += amountWeight

		key := skuChannelKey{skuID: rec.SkuID, channelID: rec.ChannelID}
		if prev, ok := latest[key]; !ok || rec.WeekNum > prev.weekNum {
			latest[key] = invEntry{weekNum: rec.WeekNum, onHand: onHand}
		}
	}

	for key, entry := range latest {
		if agg, ok := byID[key.skuID]; ok {
			agg.onHandUnits += entry.onHand
		}
	}

	out := make([]*skuAgg, 0, len(byID))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// classifySkuAction applies the ordered action rules. The order encodes
// priority: a SKU that is both hot and under-filled reads as a reorder
// candidate before a transfer candidate.
func classifySkuAction(sellThrough, discountRate, stockToSales, fillRate, avgSellThrough float64) (action, reason string) {
	switch {
	case sellThrough >= avgSellThrough+0.03 && discountRate <= 0.18:
		return "补单加深", "售罄高于均值且折扣受控，建议加深核心尺码与主推款厚度。"
	case sellThrough < avgSellThrough-0.03 && stockToSales >= 1.8:
		return "收敛清理", "售罄偏低且库存压力高，建议缩减 SKU 宽度并加速去化。"
	case discountRate >= 0.30 && sellThrough < avgSellThrough:
		return "调价修复", "折扣偏深但去化未改善，建议优化价格带策略与促销节奏。"
	case fillRate < 0.86 && sellThrough >= avgSellThrough:
		return "调拨补货", "执行率偏低且需求稳定，建议跨仓调拨保证畅销尺码。"
	default:
		return "维持观察", "供需结构接近样本均值，维持正常陈列与补货频率。"
	}
}

func (r *run) buildSkuActionRows(skus []*skuAgg, avgSellThrough float64) []SkuActionRow {
	rows := make([]SkuActionRow, 0, len(skus))
	for _, agg := range skus {
		st := agg.sellThrough(r.opts.SellThroughMode)
		discount := safeDiv(agg.discountWeighted, agg.discountWeight)
		stockToSales := safeDiv(agg.onHandUnits, maxFloat(agg.pairsSold, 1))
		fill := DeriveFillRate(st, 0, inventoryPressure(agg.onHandUnits, agg.pairsSold))
		action, reason := classifySkuAction(st, discount, stockToSales, fill, avgSellThrough)

		rows = append(rows, SkuActionRow{
			SkuID:            agg.skuID,
			CategoryID:       agg.categoryID,
			CategoryFilterID: agg.categoryFilterID,
			Category:         agg.category,
			SkuName:          agg.skuName,
			PriceBand:        string(agg.priceBand),
			PriceBandLabel:   agg.priceBand.Label(),
			PairsSold:        agg.pairsSold,
			NetSales:         agg.netSales,
			SellThrough:      st,
			OnHandUnits:      agg.onHandUnits,
			DiscountRate:     discount,
			Action:           action,
			Reason:           reason,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].NetSales != rows[j].NetSales {
			return rows[i].NetSales > rows[j].NetSales
		}
		return rows[i].SkuID < rows[j].SkuID
	})
	return rows
}
