package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"merchops/internal/analysis/categoryops"
)

// Workbook renders the actionable tables of a result into an xlsx workbook
// for merchandisers who work in spreadsheets.
func Workbook(res *categoryops.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeSummarySheet(f, res); err != nil {
		return nil, err
	}
	if err := writeCategorySheet(f, res); err != nil {
		return nil, err
	}
	if err := writeActionSheet(f, res); err != nil {
		return nil, err
	}
	if err := writeOtbSheet(f, res); err != nil {
		return nil, err
	}

	// excelize starts with Sheet1; the summary replaced it.
	f.SetActiveSheet(0)
	return f, nil
}

func writeSummarySheet(f *excelize.File, res *categoryops.Result) error {
	const sheet = "汇总"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"指标", "当前", "差值"},
	}
	for _, kpi := range res.BusinessKpis {
		delta := interface{}("—")
		if kpi.DeltaValue != nil {
			delta = *kpi.DeltaValue
		}
		rows = append(rows, []interface{}{kpi.Title, kpi.Value, delta})
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"对比口径", res.CompareMeta.ModeLabel},
		[]interface{}{"说明", res.CompareMeta.Note},
	)
	return writeRows(f, sheet, rows)
}

func writeCategorySheet(f *excelize.File, res *categoryops.Result) error {
	const sheet = "品类散点"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"品类", "产品线", "净销售额", "贡献占比", "动能", "售罄率", "执行率", "补单率", "ASP", "单款产出", "SKU数"},
	}
	for _, p := range res.ScatterPoints {
		rows = append(rows, []interface{}{
			p.Category, p.ProductLine, p.NetSales, p.ContributionShare, p.Momentum,
			p.SellThrough, p.FillRate, p.ReorderRate, p.ASP, p.SalesPerSkc, p.SkuCount,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeActionSheet(f *excelize.File, res *categoryops.Result) error {
	const sheet = "SKU动作"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"SKU", "品名", "品类", "价格带", "销量", "净销售额", "售罄率", "库存", "折扣率", "动作", "理由"},
	}
	for _, r := range res.SkuActionRows {
		rows = append(rows, []interface{}{
			r.SkuID, r.SkuName, r.Category, r.PriceBandLabel, r.PairsSold, r.NetSales,
			r.SellThrough, r.OnHandUnits, r.DiscountRate, r.Action, r.Reason,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeOtbSheet(f *excelize.File, res *categoryops.Result) error {
	const sheet = "OTB建议"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"品类", "销售占比", "毛利占比", "SKU占比", "建议权重", "调整(pp)", "理由"},
	}
	for _, otb := range res.OtbSuggestions {
		rows = append(rows, []interface{}{
			otb.Category, otb.SalesShare, otb.GmShare, otb.SkuShare,
			otb.SuggestedWeight, otb.DeltaPp, otb.Reason,
		})
	}
	return writeRows(f, sheet, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
