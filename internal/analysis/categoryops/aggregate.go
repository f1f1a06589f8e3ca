package categoryops

import (
	"sort"

	"merchops/domain/catalog"
	"merchops/domain/sales"
	"merchops/internal/dataset"
)

type categoryKey struct {
	productLine string
	categoryID  string
}

type cellKey struct {
	categoryID string
	priceBand  catalog.PriceBand
}

type skuChannelKey struct {
	skuID     string
	channelID string
}

// bucket is one aggregation group. Sell-through and margin are kept as
// (weighted sum, weight) pairs so group means stay volume-weighted; both the
// cumulative and the effective sell-through accumulate against the same
// weight and the active mode picks one at read time.
type bucket struct {
	productLine string
	categoryID  string
	category    string
	filterL1    string
	priceBand   catalog.PriceBand

	netSales  float64
	pairsSold float64

	stWeighted  float64
	effWeighted float64
	stWeight    float64
	gmWeighted  float64
	gmWeight    float64

	onHandUnits float64

	skus       map[string]struct{}
	stores     map[string]struct{}
	lifecycles map[catalog.Lifecycle]map[string]struct{}
}

func newBucket() *bucket {
	return &bucket{
		skus:       make(map[string]struct{}),
		stores:     make(map[string]struct{}),
		lifecycles: make(map[catalog.Lifecycle]map[string]struct{}),
	}
}

func (b *bucket) sellThrough(mode SellThroughMode) float64 {
	if mode == SellThroughEffective {
		return safeDiv(b.effWeighted, b.stWeight)
	}
	return safeDiv(b.stWeighted, b.stWeight)
}

func (b *bucket) gmRate() float64 {
	return safeDiv(b.gmWeighted, b.gmWeight)
}

func (b *bucket) asp() float64 {
	return safeDiv(b.netSales, b.pairsSold)
}

func (b *bucket) skcCnt() int { return len(b.skus) }

func (b *bucket) salesPerSkc() float64 {
	return safeDiv(b.netSales, float64(b.skcCnt()))
}

func (b *bucket) primaryLifecycle() catalog.Lifecycle {
	best := catalog.LifecycleOther
	bestCount := -1
	for _, lc := range []catalog.Lifecycle{catalog.LifecycleNew, catalog.LifecycleCore, catalog.LifecycleClearance, catalog.LifecycleOther} {
		if n := len(b.lifecycles[lc]); n > bestCount {
			best, bestCount = lc, n
		}
	}
	return best
}

// onHandEntry tracks the freshest stock reading per (sku, channel); on-hand
// is a point-in-time state, so only the latest week counts.
type onHandEntry struct {
	weekNum int
	onHand  float64
	catKey  categoryKey
	celKey  cellKey
}

// aggregation is the result of one pass over the fact table: category and
// cell buckets plus scope-wide counters. Active sets only count rows that
// actually moved; scoped sets count everything the filters admit.
type aggregation struct {
	categories map[categoryKey]*bucket
	cells      map[cellKey]*bucket

	totalNetSales float64
	totalPairs    float64
	skuCountSum   int

	activeSkus   map[string]struct{}
	activeStores map[string]struct{}
	scopedSkus   map[string]struct{}
	scopedStores map[string]struct{}
}

func (a *aggregation) empty() bool {
	return len(a.categories) == 0
}

// upsert fetches or creates the bucket for a key. One generic helper serves
// both grouping levels so the two stay structurally identical.
func upsert[K comparable](m map[K]*bucket, key K) *bucket {
	b, ok := m[key]
	if !ok {
		b = newBucket()
		m[key] = b
	}
	return b
}

// aggregate runs the single grouping pass. When forced is non-nil the pass
// aggregates the baseline period instead of the filtered one; everything else
// behaves identically, which keeps current and baseline readings comparable.
func (r *run) aggregate(forced *sales.Period) *aggregation {
	agg := &aggregation{
		categories:   make(map[categoryKey]*bucket),
		cells:        make(map[cellKey]*bucket),
		activeSkus:   make(map[string]struct{}),
		activeStores: make(map[string]struct{}),
		scopedSkus:   make(map[string]struct{}),
		scopedStores: make(map[string]struct{}),
	}
	latest := make(map[skuChannelKey]onHandEntry)

	for i := range r.snap.Facts {
		rec := &r.snap.Facts[i]
		sku, _ := r.snap.Sku(rec.SkuID)
		ch, _ := r.snap.Channel(rec.ChannelID)
		if !matchesFilters(r.filters, rec, sku, ch, forced) {
			continue
		}

		units := maxFloat(rec.UnitSold, 0)
		amount := maxFloat(rec.NetSalesAmt, 0)
		onHand := maxFloat(rec.OnHandUnit, 0)
		stWeight := maxFloat(units, 1)
		gmWeight := maxFloat(amount, 1)
		effective := safeDiv(units, units+onHand*sku.Lifecycle.InventoryFactor())

		catID, catName := r.categoryOf(sku)
		line := sku.ProductLine
		if line == "" {
			line = "未定义产品线"
		}
		ck := categoryKey{productLine: line, categoryID: catID}
		lk := cellKey{categoryID: catID, priceBand: sku.PriceBand}

		for _, b := range [2]*bucket{upsert(agg.categories, ck), upsert(agg.cells, lk)} {
			if b.categoryID == "" {
				b.productLine = line
				b.categoryID = catID
				b.category = catName
				b.filterL1 = sku.Category.CategoryL1
				b.priceBand = sku.PriceBand
			}
			b.netSales += amount
			b.pairsSold += units
			b.stWeighted += rec.CumulativeSellThrough * stWeight
			b.effWeighted += effective * stWeight
			b.stWeight += stWeight
			b.gmWeighted += rec.GrossMarginRate * gmWeight
			b.gmWeight += gmWeight
			b.skus[rec.SkuID] = struct{}{}
			b.stores[rec.ChannelID] = struct{}{}
			set, ok := b.lifecycles[sku.Lifecycle]
			if !ok {
				set = make(map[string]struct{})
				b.lifecycles[sku.Lifecycle] = set
			}
			set[rec.SkuID] = struct{}{}
		}

		agg.totalNetSales += amount
		agg.totalPairs += units
		agg.scopedSkus[rec.SkuID] = struct{}{}
		agg.scopedStores[rec.ChannelID] = struct{}{}
		if units > 0 || amount > 0 {
			agg.activeSkus[rec.SkuID] = struct{}{}
			agg.activeStores[rec.ChannelID] = struct{}{}
		}

		sk := skuChannelKey{skuID: rec.SkuID, channelID: rec.ChannelID}
		if prev, ok := latest[sk]; !ok || rec.WeekNum > prev.weekNum {
			latest[sk] = onHandEntry{weekNum: rec.WeekNum, onHand: onHand, catKey: ck, celKey: lk}
		}
	}

	// Stock joins after the pass so a sku-channel pair contributes its
	// latest reading exactly once per grouping level. The join runs in key
	// order; summing in map order would make the low bits run-dependent.
	keys := make([]skuChannelKey, 0, len(latest))
	for key := range latest {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].skuID != keys[j].skuID {
			return keys[i].skuID < keys[j].skuID
		}
		return keys[i].channelID < keys[j].channelID
	})
	for _, key := range keys {
		entry := latest[key]
		if b, ok := agg.categories[entry.catKey]; ok {
			b.onHandUnits += entry.onHand
		}
		if b, ok := agg.cells[entry.celKey]; ok {
			b.onHandUnits += entry.onHand
		}
	}

	for _, b := range agg.categories {
		agg.skuCountSum += b.skcCnt()
	}
	return agg
}

// categoryOf maps a SKU to its aggregation category id and display name for
// the active grain. The filter id stays at L1 either way so rows keep working
// as dashboard filter targets.
func (r *run) categoryOf(sku *dataset.SkuInfo) (id, name string) {
	if r.opts.CategoryLevel == CategoryLevelL2 && sku.Category.CategoryL2 != "" {
		return sku.Category.CategoryL2, sku.Category.CategoryL2
	}
	return sku.Category.CategoryL1, sku.Category.CategoryL1
}
