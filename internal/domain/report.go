package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RunRecord is the report-facing projection of a RunResult. Field names match
// the results.json schema consumed downstream.
type RunRecord struct {
	OK         bool    `json:"ok"`
	ExitCode   int     `json:"rc"`
	ElapsedSec float64 `json:"elapsed_sec"`
	EntryPoint *string `json:"fqcn"`
	Stdout     string  `json:"stdout"`
	Stderr     string  `json:"stderr"`
}

// SubmissionReport is the one normalized record emitted per submission
// directory, degraded-but-present when a stage failed.
type SubmissionReport struct {
	Submission string          `json:"submission"`
	Review     json.RawMessage `json:"review"`
	Run        *RunRecord      `json:"run"`
}

// GradingReport aggregates one grading run over a submissions folder.
type GradingReport struct {
	RunID      uuid.UUID           `json:"-"`
	FolderPath string              `json:"folderPath"`
	Results    []*SubmissionReport `json:"results"`
	StartedAt  time.Time           `json:"-"`
}

// NewGradingReport creates an empty report for one pass over folderPath.
func NewGradingReport(folderPath string) *GradingReport {
	return &GradingReport{
		RunID:      uuid.New(),
		FolderPath: folderPath,
		Results:    make([]*SubmissionReport, 0),
		StartedAt:  time.Now(),
	}
}

// Record converts a RunResult for inclusion in a SubmissionReport, trimming
// the captured streams to the report limits.
func (r RunResult) Record(stdoutLimit, stderrLimit int) *RunRecord {
	return &RunRecord{
		OK:         r.OK,
		ExitCode:   r.ExitCode,
		ElapsedSec: r.ElapsedSec,
		EntryPoint: r.EntryPoint,
		Stdout:     TrimLength(r.Stdout, stdoutLimit),
		Stderr:     TrimLength(r.Stderr, stderrLimit),
	}
}
