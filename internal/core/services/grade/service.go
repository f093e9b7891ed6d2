package grade

import (
	"context"
	"time"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// GradeRequest carries one grading pass's inputs, assembled at the CLI
// boundary.
type GradeRequest struct {
	FolderPath         string
	Extensions         map[string]struct{}
	ProjectDescription string
	ExpectedOutput     string
	Timeout            time.Duration
	ReviewEnabled      bool
}

// IGradeService defines the interface for the grading orchestrator
type IGradeService interface {
	// GradeFolder grades every submission directory under req.FolderPath and
	// returns the aggregated report, one entry per directory. A failure in any
	// single submission never aborts the batch.
	GradeFolder(ctx context.Context, req GradeRequest) (*domain.GradingReport, error)

	// GradeSubmission grades one submission directory. It always returns a
	// record, degraded when a stage failed.
	GradeSubmission(ctx context.Context, req GradeRequest, sub domain.Submission) *domain.SubmissionReport
}
