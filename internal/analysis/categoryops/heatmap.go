package categoryops

import (
	"sort"

	"merchops/domain/catalog"
)

func heatMetricLabels(mode CompareMode, deltaLabel string) [3]string {
	if mode == CompareNone {
		return [3]string{"售罄率偏离(pp)", "执行率偏离(pp)", "补单率偏离(pp)"}
	}
	return [3]string{
		"售罄率" + deltaLabel + "(pp)",
		"执行率" + deltaLabel + "(pp)",
		"补单率" + deltaLabel + "(pp)",
	}
}

// buildHeatCells turns cell rows into heat cells. In the no-compare mode the
// gaps read against the sample averages; in compare modes against the row's
// own baseline, falling back to the baseline average.
func (r *run) buildHeatCells(cells []cellRow, stats sampleStats) []HeatCell {
	out := make([]HeatCell, 0, len(cells))
	for _, row := range cells {
		var fillGap, reorderGap, stGap float64
		if r.opts.CompareMode == CompareNone {
			fillGap = (row.fillRate - stats.avgFillRate) * 100
			reorderGap = (row.reorderRate - stats.avgReorderRate) * 100
			stGap = (row.sellThrough - stats.avgSellThrough) * 100
		} else {
			baseFill := stats.baselineAvgFillRate
			if row.baselineFillRate != nil {
				baseFill = *row.baselineFillRate
			}
			baseReorder := stats.baselineAvgReorderRate
			if row.baselineReorderRate != nil {
				baseReorder = *row.baselineReorderRate
			}
			baseSt := stats.baselineAvgSellThrough
			if row.baselineSellThrough != nil {
				baseSt = *row.baselineSellThrough
			}
			fillGap = (row.fillRate - baseFill) * 100
			reorderGap = (row.reorderRate - baseReorder) * 100
			stGap = (row.sellThrough - baseSt) * 100
		}

		out = append(out, HeatCell{
			ID:               row.id,
			CategoryID:       row.categoryID,
			Category:         row.category,
			ProductLine:      row.productLine,
			PriceBand:        row.priceBand,
			ElementLabel:     row.category + " / " + row.priceBand.Label(),
			NetSales:         row.netSales,
			PairsSold:        row.pairsSold,
			SkcCnt:           row.skcCnt,
			ASP:              row.asp,
			SalesPerSkc:      row.salesPerSkc,
			SellThrough:      row.sellThrough,
			FillRate:         row.fillRate,
			ReorderRate:      row.reorderRate,
			FillGapPp:        fillGap,
			ReorderGapPp:     reorderGap,
			SellThroughGapPp: stGap,
			DemandYoY:        row.demandYoY,
			OnHandUnits:      row.onHandUnits,
			BurdenScore:      row.onHandUnits * maxFloat(0.25, 1-row.sellThrough),
		})
	}
	return out
}

// densifyHeatCells completes the cell universe: every observed category gets
// a zero cell for each canonical band it has no sales in, so the rendered
// grid is always rectangular. Synthetic cells never enter the rankings; they
// exist for display only.
func densifyHeatCells(cells []HeatCell) []HeatCell {
	type catInfo struct {
		categoryID  string
		category    string
		productLine string
	}
	seen := make(map[cellKey]bool, len(cells))
	categories := make([]catInfo, 0)
	known := make(map[string]bool)
	for _, c := range cells {
		seen[cellKey{categoryID: c.CategoryID, priceBand: c.PriceBand}] = true
		if !known[c.CategoryID] {
			known[c.CategoryID] = true
			categories = append(categories, catInfo{c.CategoryID, c.Category, c.ProductLine})
		}
	}

	out := make([]HeatCell, len(cells), len(cells)+len(categories)*4)
	copy(out, cells)
	for _, cat := range categories {
		for _, band := range catalog.PriceBands() {
			if seen[cellKey{categoryID: cat.categoryID, priceBand: band}] {
				continue
			}
			out = append(out, HeatCell{
				ID:           cat.categoryID + "__" + string(band),
				CategoryID:   cat.categoryID,
				Category:     cat.category,
				ProductLine:  cat.productLine,
				PriceBand:    band,
				ElementLabel: cat.category + " / " + band.Label(),
			})
		}
	}
	return out
}

// buildHeatAxisCells projects heat cells onto the selected x-axis. Element
// mode keeps the top cells by sales; category and price-band modes fold the
// cells into sales-weighted groups, the band axis in canonical rank order.
func buildHeatAxisCells(cells []HeatCell, axisMode HeatXAxis) []HeatCell {
	if axisMode == HeatXAxisElement {
		sorted := make([]HeatCell, len(cells))
		copy(sorted, cells)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].NetSales > sorted[j].NetSales })
		if len(sorted) > 16 {
			sorted = sorted[:16]
		}
		return sorted
	}

	type group struct {
		cell        HeatCell
		weighted    float64
		stW         float64
		fillW       float64
		reorderW    float64
		fillGapW    float64
		reorderGapW float64
		stGapW      float64
		yoyW        float64
		lineSales   map[string]float64
	}

	grouped := make(map[string]*group)
	order := make([]string, 0)
	for _, cell := range cells {
		key := cell.CategoryID
		label := cell.Category
		if axisMode == HeatXAxisPriceBand {
			key = string(cell.PriceBand)
			label = cell.PriceBand.Label()
		}
		g, ok := grouped[key]
		if !ok {
			g = &group{lineSales: make(map[string]float64)}
			g.cell = HeatCell{
				ID:           string(axisMode) + "__" + key,
				CategoryID:   cell.CategoryID,
				Category:     cell.Category,
				PriceBand:    cell.PriceBand,
				ElementLabel: label,
			}
			if axisMode == HeatXAxisPriceBand {
				g.cell.CategoryID = "all"
				g.cell.Category = "全部品类"
			} else {
				g.cell.PriceBand = ""
			}
			grouped[key] = g
			order = append(order, key)
		}

		w := maxFloat(cell.NetSales, 1)
		g.cell.NetSales += cell.NetSales
		g.cell.PairsSold += cell.PairsSold
		g.cell.SkcCnt += cell.SkcCnt
		g.cell.OnHandUnits += cell.OnHandUnits
		g.cell.BurdenScore += cell.BurdenScore
		g.weighted += w
		g.stW += cell.SellThrough * w
		g.fillW += cell.FillRate * w
		g.reorderW += cell.ReorderRate * w
		g.fillGapW += cell.FillGapPp * w
		g.reorderGapW += cell.ReorderGapPp * w
		g.stGapW += cell.SellThroughGapPp * w
		g.yoyW += cell.DemandYoY * w
		g.lineSales[cell.ProductLine] += cell.NetSales
	}

	rows := make([]HeatCell, 0, len(grouped))
	for _, key := range order {
		g := grouped[key]
		cell := g.cell
		cell.ASP = safeDiv(cell.NetSales, cell.PairsSold)
		cell.SalesPerSkc = safeDiv(cell.NetSales, float64(cell.SkcCnt))
		cell.SellThrough = safeDiv(g.stW, g.weighted)
		cell.FillRate = safeDiv(g.fillW, g.weighted)
		cell.ReorderRate = safeDiv(g.reorderW, g.weighted)
		cell.FillGapPp = safeDiv(g.fillGapW, g.weighted)
		cell.ReorderGapPp = safeDiv(g.reorderGapW, g.weighted)
		cell.SellThroughGapPp = safeDiv(g.stGapW, g.weighted)
		cell.DemandYoY = safeDiv(g.yoyW, g.weighted)

		topLine, topSales := "未定义产品线", 0.0
		for line, sales := range g.lineSales {
			if sales > topSales || (sales == topSales && line < topLine) {
				topLine, topSales = line, sales
			}
		}
		cell.ProductLine = topLine
		rows = append(rows, cell)
	}

	if axisMode == HeatXAxisPriceBand {
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].PriceBand.SortRank() < rows[j].PriceBand.SortRank()
		})
		return rows
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].NetSales != rows[j].NetSales {
			return rows[i].NetSales > rows[j].NetSales
		}
		return rows[i].ID < rows[j].ID
	})
	return rows
}

// buildHeatmap renders the axis cells into the three gap-metric rows with a
// symmetric value domain. The reorder row is negated for charting so that
// "worse" always points the same way.
func (r *run) buildHeatmap(cells []HeatCell) Heatmap {
	labels := heatMetricLabels(r.opts.CompareMode, r.deltaLabel)
	focus := buildHeatAxisCells(densifyHeatCells(cells), r.opts.HeatmapXAxis)

	xLabels := make([]string, len(focus))
	points := make([]HeatPoint, 0, len(focus)*3)
	absMax := 1.0

	for x, cell := range focus {
		xLabels[x] = cell.ElementLabel
		metrics := [3]struct {
			key   string
			raw   float64
			chart float64
		}{
			{key: "sell_through_gap", raw: cell.SellThroughGapPp, chart: cell.SellThroughGapPp},
			{key: "fill_gap", raw: cell.FillGapPp, chart: cell.FillGapPp},
			{key: "reorder_gap", raw: cell.ReorderGapPp, chart: -cell.ReorderGapPp},
		}
		for y, m := range metrics {
			points = append(points, HeatPoint{
				ID:          cell.ID + "__" + m.key,
				XIndex:      x,
				YIndex:      y,
				Value:       m.chart,
				MetricKey:   m.key,
				MetricLabel: labels[y],
				RawValue:    m.raw,
				Cell:        cell,
			})
			if abs := absFloat(m.chart); abs > absMax {
				absMax = abs
			}
		}
	}

	return Heatmap{
		XAxisMode: r.opts.HeatmapXAxis,
		XLabels:   xLabels,
		YLabels:   labels[:],
		Points:    points,
		Min:       -absMax,
		Max:       absMax,
	}
}
