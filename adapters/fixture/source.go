// Package fixture provides the seeded demo data source used for local
// development and smoke environments.
package fixture

import (
	"context"

	"merchops/internal/dataset"
	"merchops/internal/testkit"
	"merchops/ports"
)

type source struct {
	config testkit.FixtureConfig
}

// New creates a snapshot source backed by the deterministic fixture
// generator.
func New() ports.SnapshotSource {
	return &source{config: testkit.DefaultFixtureConfig()}
}

func (s *source) Load(ctx context.Context) (*dataset.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return testkit.NewFixtureGenerator(s.config).Generate(), nil
}
