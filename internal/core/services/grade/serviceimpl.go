package grade

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joshuaj3383/CodeGrader/internal/config"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/secondary"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/build"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/run"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/scan"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

type gradeService struct {
	scanner scan.IScanService
	builder build.IBuildService
	runner  run.IRunService
	// reviewer and results are optional collaborators; nil disables the stage
	reviewer secondary.Reviewer
	results  secondary.ResultRepository
	cfg      *config.AppConfig
	logger   primary.Logger
}

// NewGradeService creates the grading orchestrator. reviewer and results may
// be nil; the corresponding stages are then skipped.
func NewGradeService(
	scanner scan.IScanService,
	builder build.IBuildService,
	runner run.IRunService,
	reviewer secondary.Reviewer,
	results secondary.ResultRepository,
	cfg *config.AppConfig,
	logger primary.Logger,
) IGradeService {
	return &gradeService{
		scanner:  scanner,
		builder:  builder,
		runner:   runner,
		reviewer: reviewer,
		results:  results,
		cfg:      cfg,
		logger:   logger,
	}
}

// GradeFolder processes each immediate subdirectory of the folder as one
// submission. Submissions are independent; a bounded worker pool grades up to
// MaxConcurrent of them at once while report order stays the directory order.
func (s *gradeService) GradeFolder(ctx context.Context, req GradeRequest) (*domain.GradingReport, error) {
	entries, err := os.ReadDir(req.FolderPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read submissions folder %s: %w", req.FolderPath, err)
	}

	var submissions []domain.Submission
	for _, entry := range entries {
		if !entry.IsDir() {
			s.logger.Info("Skipping non-folder entry", "name", entry.Name())
			continue
		}
		submissions = append(submissions, domain.Submission{
			Name: entry.Name(),
			Root: filepath.Join(req.FolderPath, entry.Name()),
		})
	}

	report := domain.NewGradingReport(req.FolderPath)
	report.Results = make([]*domain.SubmissionReport, len(submissions))

	workers := s.cfg.GraderCfg.MaxConcurrent
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	for i, sub := range submissions {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, sub domain.Submission) {
			defer wg.Done()
			defer func() { <-sem }()
			report.Results[idx] = s.GradeSubmission(ctx, req, sub)
		}(i, sub)
	}
	wg.Wait()

	for _, entry := range report.Results {
		s.persist(ctx, report, entry)
	}
	return report, nil
}

// GradeSubmission sequences scan, build, run, and review for one submission.
// Panics from any stage are recovered into a degraded record so the rest of
// the batch keeps going.
func (s *gradeService) GradeSubmission(ctx context.Context, req GradeRequest, sub domain.Submission) (entry *domain.SubmissionReport) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Submission grading panicked", "submission", sub.Name, "panic", r)
			entry = &domain.SubmissionReport{
				Submission: sub.Name,
				Review:     disabledReview(fmt.Sprintf("grading failed: %v", r)),
			}
		}
	}()

	s.logger.Info("Reading code", "submission", sub.Name, "root", sub.Root)

	sources, err := s.scanner.Scan(ctx, sub.Root, req.Extensions)
	if err != nil {
		s.logger.Error("Scan failed", "submission", sub.Name, "error", err)
		sources = &domain.SourceSet{Root: sub.Root}
	}

	var runResult *domain.RunResult
	actualOutput := ""

	if sources.HasCompilable {
		record := s.builder.Build(ctx, sub.Root)
		if record.OK {
			s.logger.Info("Compile OK", "submission", sub.Name, "outputDir", record.OutputDir)
		} else {
			s.logger.Warn("Compile failed", "submission", sub.Name, "failure", record.Failure, "log", record.Log)
		}

		// a failed build still gets a run attempt; the runtime reports any
		// missing classes itself
		result := s.runner.Run(ctx, sub.Root, req.Timeout)
		runResult = &result
		actualOutput = result.Stdout

		if result.EntryPoint != nil {
			s.logger.Info("Run finished", "submission", sub.Name, "fqcn", *result.EntryPoint, "rc", result.ExitCode, "elapsedSec", result.ElapsedSec)
		} else {
			s.logger.Warn("Run skipped", "submission", sub.Name, "reason", result.Stderr)
		}
	}

	entry = &domain.SubmissionReport{
		Submission: sub.Name,
		Review:     s.review(ctx, req, sources.CombinedText, actualOutput),
	}
	if runResult != nil {
		entry.Run = runResult.Record(s.cfg.ReportCfg.StdoutLimit, s.cfg.ReportCfg.StderrLimit)
	}
	return entry
}

// review obtains the qualitative review, falling back to a placeholder when
// reviews are disabled and to an error stub when the reviewer call fails.
func (s *gradeService) review(ctx context.Context, req GradeRequest, code, actualOutput string) json.RawMessage {
	if !req.ReviewEnabled || s.reviewer == nil {
		return disabledReview("AI disabled")
	}

	review, err := s.reviewer.Review(ctx, secondary.ReviewRequest{
		Code:               code,
		ProjectDescription: req.ProjectDescription,
		ExpectedOutput:     req.ExpectedOutput,
		ActualOutput:       actualOutput,
	})
	if err != nil {
		s.logger.Error("Review failed", "error", err)
		return failedReview(err)
	}
	return review
}

// persist stores one record in the optional results repository.
func (s *gradeService) persist(ctx context.Context, report *domain.GradingReport, entry *domain.SubmissionReport) {
	if s.results == nil || entry == nil {
		return
	}
	if err := s.results.SaveSubmissionReport(ctx, report.RunID, report.FolderPath, entry); err != nil {
		s.logger.Error("Failed to persist submission report", "submission", entry.Submission, "error", err)
	}
}

func disabledReview(comment string) json.RawMessage {
	payload, _ := json.Marshal(map[string]string{
		"Overall score": "N/A",
		"Comments":      comment,
		"AI":            "None",
	})
	return payload
}

func failedReview(err error) json.RawMessage {
	payload, _ := json.Marshal(map[string]interface{}{
		"score":    0.0,
		"comments": []string{fmt.Sprintf("AI call failed: %v", err)},
		"ai":       []string{"NAN"},
	})
	return payload
}
