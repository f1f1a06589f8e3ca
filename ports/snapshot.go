// Package ports defines the interfaces between the application core and its
// adapters.
package ports

import (
	"context"

	"merchops/internal/dataset"
)

// SnapshotSource loads the full dataset snapshot from a backing store. A
// source returns a freshly built snapshot on every call; callers own caching.
type SnapshotSource interface {
	Load(ctx context.Context) (*dataset.Snapshot, error)
}
