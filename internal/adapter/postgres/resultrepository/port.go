// package postgres contains PostgreSQL implementations of repositories
package resultrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// ResultRepository implements the ResultRepository interface with PostgreSQL
type ResultRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// NewResultRepository creates a new PostgreSQL result repository
func NewResultRepository(db *sqlx.DB, logger primary.Logger) *ResultRepository {
	return &ResultRepository{
		db:     db,
		logger: logger,
	}
}

// SaveSubmissionReport upserts one submission's grading record
func (r *ResultRepository) SaveSubmissionReport(ctx context.Context, runID uuid.UUID, folderPath string, report *domain.SubmissionReport) error {
	// Prepare the query
	query := `
		INSERT INTO grading_results (
			run_id, folder_path, submission, review, run_ok, exit_code,
			elapsed_sec, entry_point, stdout, stderr, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (run_id, submission) DO UPDATE SET
			review = EXCLUDED.review,
			run_ok = EXCLUDED.run_ok,
			exit_code = EXCLUDED.exit_code,
			elapsed_sec = EXCLUDED.elapsed_sec,
			entry_point = EXCLUDED.entry_point,
			stdout = EXCLUDED.stdout,
			stderr = EXCLUDED.stderr
	`

	// Submissions without compilable sources carry no run section
	var runOK sql.NullBool
	var exitCode sql.NullInt64
	var elapsedSec sql.NullFloat64
	var entryPoint, stdout, stderr sql.NullString

	if report.Run != nil {
		runOK = sql.NullBool{Bool: report.Run.OK, Valid: true}
		exitCode = sql.NullInt64{Int64: int64(report.Run.ExitCode), Valid: true}
		elapsedSec = sql.NullFloat64{Float64: report.Run.ElapsedSec, Valid: true}
		stdout = sql.NullString{String: report.Run.Stdout, Valid: true}
		stderr = sql.NullString{String: report.Run.Stderr, Valid: true}
		if report.Run.EntryPoint != nil {
			entryPoint = sql.NullString{String: *report.Run.EntryPoint, Valid: true}
		}
	}

	// Execute the query
	_, err := r.db.ExecContext(
		ctx,
		query,
		runID,
		folderPath,
		report.Submission,
		[]byte(report.Review),
		runOK,
		exitCode,
		elapsedSec,
		entryPoint,
		stdout,
		stderr,
		time.Now(),
	)

	if err != nil {
		r.logger.Error("Failed to save submission report", "submission", report.Submission, "error", err)
		return fmt.Errorf("failed to save submission report: %w", err)
	}

	return nil
}

// GetRunReports retrieves all records stored for one grading run
func (r *ResultRepository) GetRunReports(ctx context.Context, runID uuid.UUID) ([]*domain.SubmissionReport, error) {
	// Prepare the query
	query := `
		SELECT submission, review, run_ok, exit_code, elapsed_sec,
			   entry_point, stdout, stderr
		FROM grading_results
		WHERE run_id = $1
		ORDER BY submission ASC
	`

	// Execute the query
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get run reports", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get run reports: %w", err)
	}
	defer rows.Close()

	// Process the results
	reports := make([]*domain.SubmissionReport, 0)
	for rows.Next() {
		var report domain.SubmissionReport
		var review []byte
		var runOK sql.NullBool
		var exitCode sql.NullInt64
		var elapsedSec sql.NullFloat64
		var entryPoint, stdout, stderr sql.NullString

		err := rows.Scan(
			&report.Submission,
			&review,
			&runOK,
			&exitCode,
			&elapsedSec,
			&entryPoint,
			&stdout,
			&stderr,
		)
		if err != nil {
			r.logger.Error("Failed to scan report row", "error", err)
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}

		report.Review = review

		// Rebuild the run section only when one was stored
		if runOK.Valid {
			run := &domain.RunRecord{
				OK:         runOK.Bool,
				ExitCode:   int(exitCode.Int64),
				ElapsedSec: elapsedSec.Float64,
				Stdout:     stdout.String,
				Stderr:     stderr.String,
			}
			if entryPoint.Valid {
				run.EntryPoint = &entryPoint.String
			}
			report.Run = run
		}

		reports = append(reports, &report)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating report rows", "error", err)
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return reports, nil
}
