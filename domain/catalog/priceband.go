package catalog

import (
	"math"
	"strings"
)

// PriceBand is a bucketed MSRP range used as a merchandising dimension.
// The canonical scheme has four bands plus PBX for undefined.
type PriceBand string

const (
	PB1 PriceBand = "PB1" // 199-399
	PB2 PriceBand = "PB2" // 399-599
	PB3 PriceBand = "PB3" // 599-799
	PB4 PriceBand = "PB4" // 800+
	PBX PriceBand = "PBX" // undefined
)

type priceBandDef struct {
	band         PriceBand
	label        string
	min          float64
	maxExclusive float64
}

var priceBands = []priceBandDef{
	{PB1, "199-399", 199, 399},
	{PB2, "399-599", 399, 599},
	{PB3, "599-799", 599, 800},
	{PB4, "800+", 800, math.Inf(1)},
}

// Older datasets carry a seven-band scheme; fold it into the canonical four.
var legacyBandMap = map[string]PriceBand{
	"PB5": PB3,
	"PB6": PB3,
	"PB7": PB4,
}

// PriceBands returns the canonical bands in rank order, PBX excluded.
func PriceBands() []PriceBand {
	out := make([]PriceBand, len(priceBands))
	for i, def := range priceBands {
		out[i] = def.band
	}
	return out
}

// NormalizePriceBand folds a raw band string (canonical code, legacy code, or
// a textual range) into a canonical band. Empty or unrecognized input is PBX.
func NormalizePriceBand(raw string) PriceBand {
	v := strings.ToUpper(strings.ReplaceAll(raw, " ", ""))
	if v == "" {
		return PBX
	}
	switch PriceBand(v) {
	case PB1, PB2, PB3, PB4, PBX:
		return PriceBand(v)
	}
	if band, ok := legacyBandMap[v]; ok {
		return band
	}
	for _, def := range priceBands {
		if strings.Contains(v, def.label) {
			return def.band
		}
	}
	// Legacy seven-band range texts.
	switch {
	case strings.Contains(v, "700+"),
		strings.Contains(v, "700-799"),
		strings.Contains(v, "600-699"):
		return PB3
	case strings.Contains(v, "500-599"), strings.Contains(v, "400-499"):
		return PB2
	case strings.Contains(v, "300-399"), strings.Contains(v, "199-299"):
		return PB1
	}
	return PBX
}

// ResolvePriceBandByMSRP derives the band from list price when the dimension
// row carries no explicit band.
func ResolvePriceBandByMSRP(msrp float64) PriceBand {
	if math.IsNaN(msrp) || math.IsInf(msrp, 0) || msrp <= 0 {
		return PBX
	}
	for _, def := range priceBands {
		if msrp >= def.min && msrp < def.maxExclusive {
			return def.band
		}
	}
	return PB4
}

// Label returns the display label for the band.
func (b PriceBand) Label() string {
	for _, def := range priceBands {
		if def.band == b {
			return def.label
		}
	}
	return "未定义价格带"
}

// SortRank orders bands for axes; PBX sorts last.
func (b PriceBand) SortRank() int {
	for i, def := range priceBands {
		if def.band == b {
			return i + 1
		}
	}
	return math.MaxInt32
}

// MatchesPriceBandFilter reports whether a SKU falls inside the selected band.
// An explicit SKU band wins; otherwise the band is re-derived from MSRP.
// Selecting "all" or an unresolvable band matches everything.
func MatchesPriceBandFilter(msrp float64, selected string, skuBand PriceBand) bool {
	if selected == "all" || selected == "" {
		return true
	}
	selectedBand := NormalizePriceBand(selected)
	if selectedBand == PBX {
		return true
	}
	if skuBand != PBX {
		return skuBand == selectedBand
	}
	return ResolvePriceBandByMSRP(msrp) == selectedBand
}
