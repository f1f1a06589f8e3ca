// Package excel loads a dataset snapshot from a merchandising workbook. The
// workbook carries one sheet per table: fact_sales, dim_sku, dim_channel,
// and the optional plan sheets dim_plan_category, dim_plan_priceband, and
// dim_plan_overall.
package excel

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"merchops/domain/catalog"
	"merchops/domain/plan"
	"merchops/domain/sales"
	"merchops/internal/dataset"
	"merchops/internal/errors"
	"merchops/ports"
)

const (
	sheetFacts        = "fact_sales"
	sheetSkus         = "dim_sku"
	sheetChannels     = "dim_channel"
	sheetPlanCategory = "dim_plan_category"
	sheetPlanBand     = "dim_plan_priceband"
	sheetPlanOverall  = "dim_plan_overall"
)

type source struct {
	filePath string
}

// New creates a snapshot source reading the workbook at filePath.
func New(filePath string) ports.SnapshotSource {
	return &source{filePath: filePath}
}

func (s *source) Load(ctx context.Context) (*dataset.Snapshot, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil, errors.DataSourceError("excel", fmt.Errorf("workbook not found: %s", s.filePath))
	}

	f, err := excelize.OpenFile(s.filePath)
	if err != nil {
		return nil, errors.DataSourceError("excel", fmt.Errorf("open workbook: %w", err))
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	facts, err := readSheet(f, sheetFacts, true, parseFact)
	if err != nil {
		return nil, errors.DataSourceError("excel", err)
	}
	skus, err := readSheet(f, sheetSkus, true, parseSku)
	if err != nil {
		return nil, errors.DataSourceError("excel", err)
	}
	channels, err := readSheet(f, sheetChannels, true, parseChannel)
	if err != nil {
		return nil, errors.DataSourceError("excel", err)
	}

	planDoc, err := readPlan(f)
	if err != nil {
		return nil, errors.DataSourceError("excel", err)
	}

	return dataset.NewSnapshot(facts, skus, channels, planDoc), nil
}

// readPlan assembles the plan document from whichever plan sheets exist. No
// plan sheets at all means no plan baseline, which is fine.
func readPlan(f *excelize.File) (*plan.Plan, error) {
	categoryRows, err := readSheet(f, sheetPlanCategory, false, parseCategoryPlan)
	if err != nil {
		return nil, err
	}
	bandRows, err := readSheet(f, sheetPlanBand, false, parsePriceBandPlan)
	if err != nil {
		return nil, err
	}
	overallRows, err := readSheet(f, sheetPlanOverall, false, parseOverallPlan)
	if err != nil {
		return nil, err
	}

	if len(categoryRows) == 0 && len(bandRows) == 0 && len(overallRows) == 0 {
		return nil, nil
	}
	doc := &plan.Plan{
		CategoryPlan:  categoryRows,
		PriceBandPlan: bandRows,
	}
	if len(overallRows) > 0 {
		doc.OverallPlan = &overallRows[0]
	}
	return doc, nil
}

// rowData maps a trimmed header to the trimmed cell value of one row.
type rowData map[string]string

// readSheet reads one sheet into typed rows. Required sheets must exist and
// carry a header row; optional sheets that are missing yield no rows.
func readSheet[T any](f *excelize.File, sheet string, required bool, parse func(rowData) (T, error)) ([]T, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		if required {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		return nil, nil
	}
	if len(rows) < 2 {
		if required {
			return nil, fmt.Errorf("sheet %s needs a header row and at least one data row", sheet)
		}
		return nil, nil
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.TrimSpace(header)
	}

	out := make([]T, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		data := make(rowData, len(headers))
		for j, cell := range rows[i] {
			if j < len(headers) {
				data[headers[j]] = strings.TrimSpace(cell)
			}
		}
		row, err := parse(data)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+1, err)
		}
		out = append(out, row)
	}
	return out, nil
}

func parseFact(row rowData) (sales.FactSalesRecord, error) {
	year, err := row.intField("season_year")
	if err != nil {
		return sales.FactSalesRecord{}, err
	}
	week, err := row.intField("week_num")
	if err != nil {
		return sales.FactSalesRecord{}, err
	}
	return sales.FactSalesRecord{
		SkuID:                 row["sku_id"],
		ChannelID:             row["channel_id"],
		SeasonYear:            year,
		Season:                row["season"],
		Wave:                  row["wave"],
		WeekNum:               week,
		UnitSold:              row.floatField("unit_sold"),
		NetSalesAmt:           row.floatField("net_sales_amt"),
		DiscountRate:          row.floatField("discount_rate"),
		GrossMarginRate:       row.floatField("gross_margin_rate"),
		CumulativeSellThrough: row.floatField("cumulative_sell_through"),
		OnHandUnit:            row.floatField("on_hand_unit"),
	}, nil
}

func parseSku(row rowData) (catalog.DimSku, error) {
	if row["sku_id"] == "" {
		return catalog.DimSku{}, fmt.Errorf("missing sku_id")
	}
	return catalog.DimSku{
		SkuID:          row["sku_id"],
		SkuName:        row["sku_name"],
		CategoryID:     row["category_id"],
		CategoryName:   row["category_name"],
		CategoryL2:     row["category_l2"],
		ProductLine:    row["product_line"],
		PriceBand:      row["price_band"],
		MSRP:           row.floatField("msrp"),
		Lifecycle:      row["lifecycle"],
		TargetAgeGroup: row["target_age_group"],
		TargetAudience: row["target_audience"],
		Color:          row["color"],
		ColorFamily:    row["color_family"],
	}, nil
}

func parseChannel(row rowData) (catalog.DimChannel, error) {
	if row["channel_id"] == "" {
		return catalog.DimChannel{}, fmt.Errorf("missing channel_id")
	}
	return catalog.DimChannel{
		ChannelID:   row["channel_id"],
		ChannelType: row["channel_type"],
		Region:      row["region"],
		CityTier:    row["city_tier"],
		StoreFormat: row["store_format"],
	}, nil
}

func parseCategoryPlan(row rowData) (plan.CategoryPlan, error) {
	if row["category_id"] == "" {
		return plan.CategoryPlan{}, fmt.Errorf("missing category_id")
	}
	return plan.CategoryPlan{
		CategoryID:      row["category_id"],
		PlanSalesAmt:    row.floatField("plan_sales_amt"),
		PlanUnits:       row.floatField("plan_units"),
		PlanSellThrough: row.floatField("plan_sell_through"),
		PlanSkuCount:    row.floatField("plan_sku_count"),
	}, nil
}

func parsePriceBandPlan(row rowData) (plan.PriceBandPlan, error) {
	if row["price_band"] == "" {
		return plan.PriceBandPlan{}, fmt.Errorf("missing price_band")
	}
	return plan.PriceBandPlan{
		PriceBand:       row["price_band"],
		PlanSalesAmt:    row.floatField("plan_sales_amt"),
		PlanSellThrough: row.floatField("plan_sell_through"),
		PlanSkuCount:    row.floatField("plan_sku_count"),
	}, nil
}

func parseOverallPlan(row rowData) (plan.OverallPlan, error) {
	return plan.OverallPlan{
		PlanTotalSales:     row.floatField("plan_total_sales"),
		PlanTotalUnits:     row.floatField("plan_total_units"),
		PlanAvgSellThrough: row.floatField("plan_avg_sell_through"),
		PlanActiveSkus:     row.floatField("plan_active_skus"),
	}, nil
}

// floatField parses a numeric cell; blank or unparseable cells read as zero
// so sparsely filled dimension sheets stay usable.
func (r rowData) floatField(key string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(r[key], ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

func (r rowData) intField(key string) (int, error) {
	raw := r[key]
	if raw == "" {
		return 0, fmt.Errorf("missing %s", key)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", key, raw)
	}
	return v, nil
}
