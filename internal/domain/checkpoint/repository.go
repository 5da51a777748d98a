package checkpoint

import (
	"context"
	"fmt"
)

// ErrCheckpointNotFound is returned by Load when no checkpoint has been
// persisted yet (first run).
var ErrCheckpointNotFound = fmt.Errorf("checkpoint not found")

// Repository persists the timestamp of the last successful poll cycle.
type Repository interface {
	// Load returns the stored checkpoint as Unix seconds, or
	// ErrCheckpointNotFound if none exists.
	Load(ctx context.Context) (int64, error)
	// Save stores ts as the new checkpoint, replacing any previous value.
	Save(ctx context.Context, ts int64) error
}
