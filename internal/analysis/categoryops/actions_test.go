package categoryops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySkuAction(t *testing.T) {
	tests := []struct {
		name         string
		sellThrough  float64
		discountRate float64
		stockToSales float64
		fillRate     float64
		avg          float64
		want         string
	}{
		{"hot and full price reorders", 0.70, 0.10, 1.0, 0.90, 0.60, "补单加深"},
		{"slow and overstocked clears", 0.50, 0.10, 2.0, 0.90, 0.60, "收敛清理"},
		{"deep discount without traction reprices", 0.55, 0.35, 1.0, 0.90, 0.60, "调价修复"},
		{"underfilled steady demand transfers", 0.62, 0.20, 1.0, 0.80, 0.60, "调拨补货"},
		{"balanced holds", 0.60, 0.20, 1.0, 0.90, 0.60, "维持观察"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, reason := classifySkuAction(tt.sellThrough, tt.discountRate, tt.stockToSales, tt.fillRate, tt.avg)
			assert.Equal(t, tt.want, action)
			assert.NotEmpty(t, reason)
		})
	}
}

func TestClassifySkuActionReorderWinsOverTransfer(t *testing.T) {
	// Hot and underfilled at the same time: the reorder rule has priority.
	action, _ := classifySkuAction(0.70, 0.10, 1.0, 0.80, 0.60)
	assert.Equal(t, "补单加深", action)
}

func TestBuildParetoShortLists(t *testing.T) {
	rows := []SkuActionRow{
		{SkuID: "A", NetSales: 500},
		{SkuID: "B", NetSales: 300},
		{SkuID: "C", NetSales: 200},
	}
	pareto := buildPareto(rows)

	assert.Len(t, pareto.Points, 3)
	assert.InDelta(t, 0.5, pareto.Points[0].Share, 1e-9)
	assert.InDelta(t, 1, pareto.Points[2].CumulativeShare, 1e-9)
	// Fewer than 10/20 SKUs: the headline shares cover the whole list.
	assert.InDelta(t, 1, pareto.Top10Share, 1e-9)
	assert.InDelta(t, 1, pareto.Top20Share, 1e-9)
}

func TestBuildParetoEmpty(t *testing.T) {
	pareto := buildPareto(nil)
	assert.Empty(t, pareto.Points)
	assert.Zero(t, pareto.Top10Share)
	assert.Zero(t, pareto.Top20Share)
}
