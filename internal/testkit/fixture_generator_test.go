package testkit

import (
	"testing"
)

func TestGenerateIsDeterministic(t *testing.T) {
	config := DefaultFixtureConfig()
	first := NewFixtureGenerator(config).Generate()
	second := NewFixtureGenerator(config).Generate()

	if len(first.Facts) != len(second.Facts) {
		t.Fatalf("fact counts differ: %d vs %d", len(first.Facts), len(second.Facts))
	}
	for i := range first.Facts {
		if first.Facts[i] != second.Facts[i] {
			t.Fatalf("fact %d differs between runs with the same seed", i)
		}
	}
}

func TestGenerateCoversConfiguredPeriods(t *testing.T) {
	config := DefaultFixtureConfig()
	snap := NewFixtureGenerator(config).Generate()

	// 120 SKUs each selling in 4 of 12 channels, per week per season per year.
	wantRows := 120 * 4 * config.WeeksPerSeason * len(config.Seasons) * len(config.Years)
	if len(snap.Facts) != wantRows {
		t.Fatalf("rows = %d, want %d", len(snap.Facts), wantRows)
	}

	years := map[int]bool{}
	seasons := map[string]bool{}
	for _, fact := range snap.Facts {
		years[fact.SeasonYear] = true
		seasons[fact.Season] = true
	}
	for _, year := range config.Years {
		if !years[year] {
			t.Errorf("no facts for year %d", year)
		}
	}
	for _, season := range config.Seasons {
		if !seasons[season] {
			t.Errorf("no facts for season %s", season)
		}
	}

	if snap.SkuCount() != config.SkuCount {
		t.Errorf("sku count = %d, want %d", snap.SkuCount(), config.SkuCount)
	}
	if snap.ChannelCount() != config.ChannelCount {
		t.Errorf("channel count = %d, want %d", snap.ChannelCount(), config.ChannelCount)
	}
	if snap.Plan == nil || len(snap.Plan.CategoryPlan) == 0 {
		t.Error("expected a generated plan document")
	}
}

func TestProfileFacts(t *testing.T) {
	snap := NewSnapshot()
	profile := ProfileFacts(snap.Facts)

	if profile.Rows != len(snap.Facts) {
		t.Fatalf("profile rows = %d, want %d", profile.Rows, len(snap.Facts))
	}
	if profile.MeanUnits < 0 || profile.MeanUnits > 40 {
		t.Errorf("mean units out of range: %f", profile.MeanUnits)
	}
	if profile.MeanSellThru <= 0 || profile.MeanSellThru > 0.95 {
		t.Errorf("mean sell-through out of range: %f", profile.MeanSellThru)
	}
	if profile.MeanDiscount < 0.05 || profile.MeanDiscount > 0.35 {
		t.Errorf("mean discount out of range: %f", profile.MeanDiscount)
	}
	if profile.TotalNetSales <= 0 {
		t.Error("expected positive total net sales")
	}
	if profile.StdDevUnits <= 0 {
		t.Error("expected positive unit spread")
	}

	empty := ProfileFacts(nil)
	if empty.Rows != 0 || empty.TotalNetSales != 0 {
		t.Errorf("empty profile = %+v", empty)
	}
}
