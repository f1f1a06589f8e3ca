// Package jsonfile loads a dataset snapshot from a directory of JSON table
// dumps. The directory holds one file per table: fact_sales.json,
// dim_sku.json, dim_channel.json, and an optional dim_plan.json.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"merchops/domain/catalog"
	"merchops/domain/plan"
	"merchops/domain/sales"
	"merchops/internal/dataset"
	"merchops/internal/errors"
	"merchops/ports"
)

const (
	factsFile    = "fact_sales.json"
	skusFile     = "dim_sku.json"
	channelsFile = "dim_channel.json"
	planFile     = "dim_plan.json"
)

type source struct {
	dir string
}

// New creates a snapshot source reading JSON table files from dir.
func New(dir string) ports.SnapshotSource {
	return &source{dir: dir}
}

// Load reads the four table files concurrently. The plan file is optional;
// everything else must be present.
func (s *source) Load(ctx context.Context) (*dataset.Snapshot, error) {
	var (
		facts    []sales.FactSalesRecord
		skus     []catalog.DimSku
		channels []catalog.DimChannel
		planDoc  *plan.Plan
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return readTable(ctx, filepath.Join(s.dir, factsFile), &facts) })
	g.Go(func() error { return readTable(ctx, filepath.Join(s.dir, skusFile), &skus) })
	g.Go(func() error { return readTable(ctx, filepath.Join(s.dir, channelsFile), &channels) })
	g.Go(func() error {
		path := filepath.Join(s.dir, planFile)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil
		}
		var doc plan.Plan
		if err := readTable(ctx, path, &doc); err != nil {
			return err
		}
		planDoc = &doc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.DataSourceError("json", err)
	}

	if len(skus) == 0 {
		return nil, errors.DataSourceError("json", fmt.Errorf("%s has no rows", skusFile))
	}
	return dataset.NewSnapshot(facts, skus, channels, planDoc), nil
}

func readTable(ctx context.Context, path string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
