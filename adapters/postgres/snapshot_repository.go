// Package postgres loads dataset snapshots from the warehouse tables.
package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"merchops/domain/catalog"
	"merchops/domain/plan"
	"merchops/domain/sales"
	"merchops/internal/dataset"
	"merchops/internal/errors"
	"merchops/ports"
)

type snapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository creates a snapshot source backed by the warehouse.
func NewSnapshotRepository(db *sqlx.DB) ports.SnapshotSource {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) Load(ctx context.Context) (*dataset.Snapshot, error) {
	var facts []sales.FactSalesRecord
	query := `
		SELECT sku_id, channel_id, season_year, season, wave, week_num,
		       unit_sold, net_sales_amt, discount_rate, gross_margin_rate,
		       cumulative_sell_through, on_hand_unit
		FROM fact_sales`
	if err := r.db.SelectContext(ctx, &facts, query); err != nil {
		return nil, errors.DataSourceError("postgres", fmt.Errorf("load fact_sales: %w", err))
	}

	var skus []catalog.DimSku
	query = `
		SELECT sku_id, sku_name, category_id, category_name, category_l2,
		       product_line, price_band, msrp, lifecycle, target_age_group,
		       target_audience, color, color_family
		FROM dim_sku`
	if err := r.db.SelectContext(ctx, &skus, query); err != nil {
		return nil, errors.DataSourceError("postgres", fmt.Errorf("load dim_sku: %w", err))
	}

	var channels []catalog.DimChannel
	query = `
		SELECT channel_id, channel_type, region, city_tier, store_format
		FROM dim_channel`
	if err := r.db.SelectContext(ctx, &channels, query); err != nil {
		return nil, errors.DataSourceError("postgres", fmt.Errorf("load dim_channel: %w", err))
	}

	planDoc, err := r.loadPlan(ctx)
	if err != nil {
		return nil, errors.DataSourceError("postgres", err)
	}

	return dataset.NewSnapshot(facts, skus, channels, planDoc), nil
}

// loadPlan reads the plan tables. Empty plan tables mean no plan baseline,
// not an error.
func (r *snapshotRepository) loadPlan(ctx context.Context) (*plan.Plan, error) {
	var categoryRows []plan.CategoryPlan
	query := `
		SELECT category_id, plan_sales_amt, plan_units, plan_sell_through, plan_sku_count
		FROM dim_plan_category`
	if err := r.db.SelectContext(ctx, &categoryRows, query); err != nil {
		return nil, fmt.Errorf("load dim_plan_category: %w", err)
	}

	var bandRows []plan.PriceBandPlan
	query = `
		SELECT price_band, plan_sales_amt, plan_sell_through, plan_sku_count
		FROM dim_plan_priceband`
	if err := r.db.SelectContext(ctx, &bandRows, query); err != nil {
		return nil, fmt.Errorf("load dim_plan_priceband: %w", err)
	}

	var overall plan.OverallPlan
	query = `
		SELECT plan_total_sales, plan_total_units, plan_avg_sell_through, plan_active_skus
		FROM dim_plan_overall
		LIMIT 1`
	hasOverall := true
	if err := r.db.GetContext(ctx, &overall, query); err != nil {
		if !stderrors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("load dim_plan_overall: %w", err)
		}
		hasOverall = false
	}

	if len(categoryRows) == 0 && len(bandRows) == 0 && !hasOverall {
		return nil, nil
	}
	doc := &plan.Plan{
		CategoryPlan:  categoryRows,
		PriceBandPlan: bandRows,
	}
	if hasOverall {
		doc.OverallPlan = &overall
	}
	return doc, nil
}
