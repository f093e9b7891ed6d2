package secondary

import (
	"context"

	"github.com/google/uuid"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// ResultRepository persists per-submission grading records. Persistence is an
// optional sink next to the JSON report; save failures are logged, never fatal.
type ResultRepository interface {
	// SaveSubmissionReport upserts one submission's record for a grading run.
	SaveSubmissionReport(ctx context.Context, runID uuid.UUID, folderPath string, report *domain.SubmissionReport) error

	// GetRunReports retrieves all records stored for a grading run.
	GetRunReports(ctx context.Context, runID uuid.UUID) ([]*domain.SubmissionReport, error)
}
