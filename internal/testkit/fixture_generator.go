// Package testkit generates deterministic synthetic retail fixtures. Tests
// and local development use it in place of a real warehouse extract; the
// same seed always yields the same snapshot.
package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"

	"merchops/domain/catalog"
	"merchops/domain/plan"
	"merchops/domain/sales"
	"merchops/internal/dataset"
)

// FixtureConfig configures the retail fixture generator.
type FixtureConfig struct {
	SkuCount       int      `json:"sku_count"`
	ChannelCount   int      `json:"channel_count"`
	Years          []int    `json:"years"`
	Seasons        []string `json:"seasons"`
	WeeksPerSeason int      `json:"weeks_per_season"`
	WithPlan       bool     `json:"with_plan"`
	Seed           int64    `json:"seed"`
}

// DefaultFixtureConfig covers two years of four quarters so YoY and MoM
// baselines both have somewhere to land.
func DefaultFixtureConfig() FixtureConfig {
	return FixtureConfig{
		SkuCount:       120,
		ChannelCount:   12,
		Years:          []int{2023, 2024},
		Seasons:        []string{"Q1", "Q2", "Q3", "Q4"},
		WeeksPerSeason: 6,
		WithPlan:       true,
		Seed:           42,
	}
}

// FixtureGenerator produces snapshots from a seeded source.
type FixtureGenerator struct {
	config FixtureConfig
	rng    *rand.Rand
}

func NewFixtureGenerator(config FixtureConfig) *FixtureGenerator {
	return &FixtureGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// NewSnapshot builds a deterministic snapshot from the default config.
func NewSnapshot() *dataset.Snapshot {
	return NewFixtureGenerator(DefaultFixtureConfig()).Generate()
}

var (
	fixtureCategories = []struct {
		name        string
		productLine string
	}{
		{"跑步鞋", "运动鞋"},
		{"篮球鞋", "运动鞋"},
		{"板鞋", "街头"},
		{"帆布鞋", "街头"},
		{"乐福鞋", "通勤"},
		{"切尔西靴", "靴类"},
		{"拖鞋", "凉拖鞋"},
		{"登山鞋", "户外鞋"},
	}
	fixtureLifecycles = []string{"新品", "核心款", "清仓款", "延续款"}
	fixtureAudiences  = []string{"18-23岁 GenZ", "24-28岁 职场新人", "29-35岁 资深中产", "35岁以上"}
	fixtureColors     = []string{"黑色", "白色", "米色", "棕色", "藏青"}
	fixtureRegions    = []string{"华东", "华南", "华北", "西南"}
	fixtureCityTiers  = []string{"一线", "新一线", "二线"}
	fixtureFormats    = []string{"旗舰店", "标准店", "奥莱店"}
	fixtureChannels   = []string{"直营", "加盟", "电商"}
)

// Generate builds the full fixture: SKU and channel dimensions, weekly fact
// rows for every configured (year, season), and optionally a plan document
// derived from the generated universe.
func (g *FixtureGenerator) Generate() *dataset.Snapshot {
	skus := g.generateSkus()
	channels := g.generateChannels()
	facts := g.generateFacts(skus, channels)

	var p *plan.Plan
	if g.config.WithPlan {
		p = g.generatePlan(skus, facts)
	}
	return dataset.NewSnapshot(facts, skus, channels, p)
}

func (g *FixtureGenerator) generateSkus() []catalog.DimSku {
	skus := make([]catalog.DimSku, 0, g.config.SkuCount)
	for i := 0; i < g.config.SkuCount; i++ {
		cat := fixtureCategories[i%len(fixtureCategories)]
		msrp := 199 + math.Floor(g.rng.Float64()*700)
		skus = append(skus, catalog.DimSku{
			SkuID:          fmt.Sprintf("SKU-%04d", i+1),
			SkuName:        fmt.Sprintf("%s %04d", cat.name, i+1),
			CategoryID:     cat.name,
			CategoryName:   cat.name,
			ProductLine:    cat.productLine,
			MSRP:           msrp,
			Lifecycle:      fixtureLifecycles[g.rng.Intn(len(fixtureLifecycles))],
			TargetAudience: fixtureAudiences[g.rng.Intn(len(fixtureAudiences))],
			Color:          fixtureColors[g.rng.Intn(len(fixtureColors))],
		})
	}
	return skus
}

func (g *FixtureGenerator) generateChannels() []catalog.DimChannel {
	channels := make([]catalog.DimChannel, 0, g.config.ChannelCount)
	for i := 0; i < g.config.ChannelCount; i++ {
		channels = append(channels, catalog.DimChannel{
			ChannelID:   fmt.Sprintf("CH-%03d", i+1),
			ChannelType: fixtureChannels[i%len(fixtureChannels)],
			Region:      fixtureRegions[g.rng.Intn(len(fixtureRegions))],
			CityTier:    fixtureCityTiers[g.rng.Intn(len(fixtureCityTiers))],
			StoreFormat: fixtureFormats[g.rng.Intn(len(fixtureFormats))],
		})
	}
	return channels
}

func (g *FixtureGenerator) generateFacts(skus []catalog.DimSku, channels []catalog.DimChannel) []sales.FactSalesRecord {
	var facts []sales.FactSalesRecord
	for _, year := range g.config.Years {
		for seasonIdx, season := range g.config.Seasons {
			for w := 0; w < g.config.WeeksPerSeason; w++ {
				weekNum := seasonIdx*g.config.WeeksPerSeason + w + 1
				for si := range skus {
					// Each SKU sells through a stable subset of channels.
					for ci := range channels {
						if (si+ci)%3 != 0 {
							continue
						}
						units := math.Floor(g.rng.Float64() * 40)
						discount := 0.05 + g.rng.Float64()*0.3
						price := skus[si].MSRP * (1 - discount)
						cumulative := math.Min(0.95, 0.1+float64(w)*0.12+g.rng.Float64()*0.1)
						facts = append(facts, sales.FactSalesRecord{
							SkuID:                 skus[si].SkuID,
							ChannelID:             channels[ci].ChannelID,
							SeasonYear:            year,
							Season:                season,
							Wave:                  fmt.Sprintf("W%d", seasonIdx%2+1),
							WeekNum:               weekNum,
							UnitSold:              units,
							NetSalesAmt:           units * price,
							DiscountRate:          discount,
							GrossMarginRate:       0.35 + g.rng.Float64()*0.25,
							CumulativeSellThrough: cumulative,
							OnHandUnit:            math.Floor(g.rng.Float64() * 300),
						})
					}
				}
			}
		}
	}
	return facts
}

// generatePlan derives category and band plans from the generated sales so
// plan-mode comparisons land in a plausible range instead of a random one.
func (g *FixtureGenerator) generatePlan(skus []catalog.DimSku, facts []sales.FactSalesRecord) *plan.Plan {
	salesByCategory := make(map[string]float64)
	skuCategory := make(map[string]string, len(skus))
	for _, sku := range skus {
		skuCategory[sku.SkuID] = catalog.ResolveCategory(sku.CategoryName, sku.CategoryID, sku.SkuName, sku.CategoryL2, sku.ProductLine).CategoryL1
	}
	var totalSales float64
	for _, fact := range facts {
		amt := math.Max(fact.NetSalesAmt, 0)
		salesByCategory[skuCategory[fact.SkuID]] += amt
		totalSales += amt
	}

	p := &plan.Plan{SeasonYear: g.config.Years[len(g.config.Years)-1]}
	for category, amt := range salesByCategory {
		p.CategoryPlan = append(p.CategoryPlan, plan.CategoryPlan{
			CategoryID:      category,
			PlanSalesAmt:    amt * (0.9 + g.rng.Float64()*0.3),
			PlanSellThrough: 0.55 + g.rng.Float64()*0.2,
			PlanSkuCount:    float64(g.config.SkuCount) / float64(len(salesByCategory)),
		})
	}
	for _, band := range catalog.PriceBands() {
		p.PriceBandPlan = append(p.PriceBandPlan, plan.PriceBandPlan{
			PriceBand:       string(band),
			PlanSalesAmt:    totalSales / float64(len(catalog.PriceBands())),
			PlanSellThrough: 0.5 + g.rng.Float64()*0.25,
		})
	}
	p.OverallPlan = &plan.OverallPlan{
		PlanTotalSales:     totalSales * 1.05,
		PlanAvgSellThrough: 0.62,
		PlanActiveSkus:     float64(g.config.SkuCount),
	}
	return p
}

// Profile summarizes a generated fact table. Generator tests assert on it to
// catch drift in the synthetic distributions.
type Profile struct {
	Rows          int     `json:"rows"`
	MeanUnits     float64 `json:"mean_units"`
	MedianUnits   float64 `json:"median_units"`
	StdDevUnits   float64 `json:"std_dev_units"`
	MeanSellThru  float64 `json:"mean_sell_through"`
	MeanDiscount  float64 `json:"mean_discount"`
	TotalNetSales float64 `json:"total_net_sales"`
}

// ProfileFacts computes distribution statistics over a fact slice.
func ProfileFacts(facts []sales.FactSalesRecord) Profile {
	units := make([]float64, 0, len(facts))
	sellThrough := make([]float64, 0, len(facts))
	discounts := make([]float64, 0, len(facts))
	var total float64
	for _, fact := range facts {
		units = append(units, fact.UnitSold)
		sellThrough = append(sellThrough, fact.CumulativeSellThrough)
		discounts = append(discounts, fact.DiscountRate)
		total += fact.NetSalesAmt
	}

	profile := Profile{Rows: len(facts), TotalNetSales: total}
	if len(facts) == 0 {
		return profile
	}
	profile.MeanUnits, _ = stats.Mean(units)
	profile.MedianUnits, _ = stats.Median(units)
	profile.StdDevUnits, _ = stats.StandardDeviation(units)
	profile.MeanSellThru, _ = stats.Mean(sellThrough)
	profile.MeanDiscount, _ = stats.Mean(discounts)
	return profile
}
