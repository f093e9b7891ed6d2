package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// Writer serializes the aggregated grading report to disk.
type Writer struct {
	path   string
	logger primary.Logger
}

// NewWriter creates a report writer targeting path.
func NewWriter(path string, logger primary.Logger) *Writer {
	return &Writer{
		path:   path,
		logger: logger,
	}
}

// Write serializes the report as indented JSON. The file is rewritten whole;
// there is exactly one report per grading run.
func (w *Writer) Write(rpt *domain.GradingReport) error {
	data, err := json.MarshalIndent(rpt, "", "  ")
	if err != nil {
		w.logger.Error("Failed to marshal grading report", "error", err)
		return fmt.Errorf("failed to marshal grading report: %w", err)
	}

	if err := os.WriteFile(w.path, data, 0644); err != nil {
		w.logger.Error("Failed to write grading report", "path", w.path, "error", err)
		return fmt.Errorf("failed to write grading report to %s: %w", w.path, err)
	}

	w.logger.Info("Grading report written", "path", w.path, "submissions", len(rpt.Results))
	return nil
}
