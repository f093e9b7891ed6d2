package secondary

import (
	"context"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// BuildCache memoizes successful builds per canonical source root. The cache
// is owned by the orchestrator and handed to the build engine, so it can be
// reset between independent grading runs and swapped for a shared backend.
type BuildCache interface {
	// Get retrieves the record for a canonical source root, or nil when the
	// root has not been built yet.
	Get(ctx context.Context, sourceRoot string) (*domain.BuildRecord, error)

	// Put registers a record under its canonical source root.
	Put(ctx context.Context, sourceRoot string, record *domain.BuildRecord) error

	// Reset discards all memoized records.
	Reset(ctx context.Context) error
}
