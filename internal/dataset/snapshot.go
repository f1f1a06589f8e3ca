// Package dataset holds the immutable in-memory snapshot the analytics
// engine computes over. A snapshot is built once from fact and dimension
// rows, normalizes free-text dimension fields at the boundary, and is safe
// for concurrent readers because nothing mutates it after construction.
package dataset

import (
	"merchops/domain/catalog"
	"merchops/domain/core"
	"merchops/domain/plan"
	"merchops/domain/sales"
)

// SkuInfo is a SKU dimension row enriched with its normalized lifecycle,
// resolved price band, and canonical taxonomy placement.
type SkuInfo struct {
	catalog.DimSku
	Lifecycle catalog.Lifecycle
	PriceBand catalog.PriceBand
	Category  catalog.CategoryMeta
}

// Snapshot is the dataset handle passed into the engine. Facts keep their
// source order; dimension lookups are O(1) by id.
type Snapshot struct {
	ID    core.SnapshotID
	Facts []sales.FactSalesRecord
	Plan  *plan.Plan

	skuIndex     map[string]*SkuInfo
	channelIndex map[string]*catalog.DimChannel
}

// NewSnapshot builds the dimension indexes and normalizes every SKU row.
// A SKU with no usable explicit band gets one re-derived from MSRP.
func NewSnapshot(facts []sales.FactSalesRecord, skus []catalog.DimSku, channels []catalog.DimChannel, p *plan.Plan) *Snapshot {
	snap := &Snapshot{
		ID:           core.SnapshotID(core.NewID()),
		Facts:        facts,
		Plan:         p,
		skuIndex:     make(map[string]*SkuInfo, len(skus)),
		channelIndex: make(map[string]*catalog.DimChannel, len(channels)),
	}

	for i := range skus {
		row := skus[i]
		band := catalog.NormalizePriceBand(row.PriceBand)
		if band == catalog.PBX {
			band = catalog.ResolvePriceBandByMSRP(row.MSRP)
		}
		snap.skuIndex[row.SkuID] = &SkuInfo{
			DimSku:    row,
			Lifecycle: catalog.NormalizeLifecycle(row.Lifecycle),
			PriceBand: band,
			Category:  catalog.ResolveCategory(row.CategoryName, row.CategoryID, row.SkuName, row.CategoryL2, row.ProductLine),
		}
	}
	for i := range channels {
		snap.channelIndex[channels[i].ChannelID] = &channels[i]
	}
	return snap
}

// Sku returns the enriched SKU row for an id.
func (s *Snapshot) Sku(id string) (*SkuInfo, bool) {
	info, ok := s.skuIndex[id]
	return info, ok
}

// Channel returns the channel row for an id.
func (s *Snapshot) Channel(id string) (*catalog.DimChannel, bool) {
	ch, ok := s.channelIndex[id]
	return ch, ok
}

// SkuCount returns the number of SKU dimension rows.
func (s *Snapshot) SkuCount() int { return len(s.skuIndex) }

// ChannelCount returns the number of channel dimension rows.
func (s *Snapshot) ChannelCount() int { return len(s.channelIndex) }
