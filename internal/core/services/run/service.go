package run

import (
	"context"
	"time"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// IRunService defines the interface for executing a submission's entry point
type IRunService interface {
	// Run launches the first resolved entry point against the submission's
	// build directory with the given wall-clock budget. Every failure mode is
	// folded into the result; nothing propagates that could abort the batch.
	Run(ctx context.Context, root string, timeout time.Duration) domain.RunResult
}
