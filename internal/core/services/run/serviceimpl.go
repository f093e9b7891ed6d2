package run

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/joshuaj3383/CodeGrader/internal/config"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/entrypoint"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// timeoutExitCode is the conventional exit code reported when the child
// exceeds its wall-clock budget.
const timeoutExitCode = 124

type runService struct {
	locator entrypoint.Locator
	cfg     *config.GraderCfg
	logger  primary.Logger
}

// NewRunService creates a new execution runner using the given entry point
// locator.
func NewRunService(locator entrypoint.Locator, cfg *config.GraderCfg, logger primary.Logger) IRunService {
	return &runService{
		locator: locator,
		cfg:     cfg,
		logger:  logger,
	}
}

// Run executes the submission's entry point with the build directory on the
// classpath and the submission root as working directory, so the student's
// own relative file references behave as authored.
func (s *runService) Run(ctx context.Context, root string, timeout time.Duration) domain.RunResult {
	buildDir := filepath.Join(root, s.cfg.BuildDirName)
	if _, err := os.Stat(buildDir); err != nil {
		return domain.RunResult{
			ExitCode: 1,
			Stderr:   "Build dir not found",
			Failure:  domain.FailureArtifactsMissing,
		}
	}

	candidates, err := s.locator.FindEntryPoints(root)
	if err != nil {
		s.logger.Error("Entry point scan failed", "root", root, "error", err)
	}
	if len(candidates) == 0 {
		return domain.RunResult{
			ExitCode: 1,
			Stderr:   "No main() class found",
			Failure:  domain.FailureNoEntryPoint,
		}
	}

	// ambiguity tie-break: first candidate in traversal order
	fqcn := candidates[0].QualifiedName
	if len(candidates) > 1 {
		s.logger.Info("Multiple entry points found, using first", "root", root, "chosen", fqcn, "total", len(candidates))
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, s.cfg.JavaPath, "-cp", buildDir, fqcn)
	cmd.Dir = root

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return domain.RunResult{
			ExitCode:   timeoutExitCode,
			Stderr:     "Timeout",
			ElapsedSec: timeout.Seconds(),
			EntryPoint: &fqcn,
			Failure:    domain.FailureTimeout,
		}
	}

	result := domain.RunResult{
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		ElapsedSec: roundSeconds(elapsed),
		EntryPoint: &fqcn,
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result
		}
		// runtime missing, permission error, or any other launch failure
		result.ExitCode = 1
		result.Stderr = fmt.Sprintf("Run failed: %v", runErr)
		result.Failure = domain.FailureLaunch
		return result
	}

	result.OK = true
	return result
}

// roundSeconds reports wall-clock time at millisecond precision.
func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
