package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joshuaj3383/CodeGrader/internal/config"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/secondary"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/scan"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

type buildService struct {
	cache   secondary.BuildCache
	invoker Invoker
	cfg     *config.GraderCfg
	logger  primary.Logger

	// serializes cache lookup + compile + insert so "compile once per root"
	// holds when submissions are graded concurrently
	mu sync.Mutex
}

// NewBuildService creates a new build engine backed by the given cache and
// compiler invoker.
func NewBuildService(cache secondary.BuildCache, invoker Invoker, cfg *config.GraderCfg, logger primary.Logger) IBuildService {
	return &buildService{
		cache:   cache,
		invoker: invoker,
		cfg:     cfg,
		logger:  logger,
	}
}

// Build compiles all compilable sources under sourceRoot into the
// submission-local build directory. Successful builds are memoized per
// canonical root; a memo hit returns the first attempt's record without
// touching the compiler again. Failed builds are never memoized, so a later
// call may retry.
func (s *buildService) Build(ctx context.Context, sourceRoot string) domain.BuildRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	root := canonicalRoot(sourceRoot)
	buildDir := filepath.Join(root, s.cfg.BuildDirName)

	if cached, err := s.cache.Get(ctx, root); err != nil {
		s.logger.Warn("Build cache lookup failed, compiling anyway", "root", root, "error", err)
	} else if cached != nil {
		s.logger.Info("Build cache hit", "root", root)
		return *cached
	}

	record := domain.BuildRecord{SourceRoot: root, OutputDir: buildDir}

	if !s.invoker.Available(s.cfg.JavacPath) {
		record.Log = fmt.Sprintf("%s not found on PATH", s.cfg.JavacPath)
		record.Failure = domain.FailureToolchainUnavailable
		return record
	}

	sources, err := s.collectSources(root)
	if err != nil {
		record.Log = fmt.Sprintf("Failed to enumerate sources under %s: %v", root, err)
		record.Failure = domain.FailureNoSources
		return record
	}
	if len(sources) == 0 {
		record.Log = fmt.Sprintf("No %s sources under %s", scan.CompileExtension, root)
		record.Failure = domain.FailureNoSources
		return record
	}

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		record.Log = fmt.Sprintf("Failed to create build dir %s: %v", buildDir, err)
		record.Failure = domain.FailureCompile
		return record
	}

	// a manifest file dodges command-line length limits when a submission
	// has many files
	manifest := filepath.Join(buildDir, s.cfg.ManifestName)
	if err := os.WriteFile(manifest, []byte(strings.Join(sources, "\n")), 0644); err != nil {
		record.Log = fmt.Sprintf("Failed to write manifest: %v", err)
		record.Failure = domain.FailureCompile
		return record
	}

	compileCtx, cancel := context.WithTimeout(ctx, s.cfg.CompileTimeout)
	defer cancel()

	output, invokeErr := s.invoker.Invoke(compileCtx, s.cfg.JavacPath, []string{
		"-encoding", "UTF-8",
		"-d", buildDir,
		"@" + manifest,
	})

	record.Log = string(output)
	record.OK = invokeErr == nil
	if invokeErr != nil {
		record.Failure = domain.FailureCompile
		if record.Log == "" {
			record.Log = fmt.Sprintf("Failed to invoke %s: %v", s.cfg.JavacPath, invokeErr)
		}
	}

	// the compile log is persisted on every outcome, next to the artifacts
	logPath := filepath.Join(buildDir, s.cfg.CompileLogName)
	if err := os.WriteFile(logPath, []byte(record.Log), 0644); err != nil {
		s.logger.Warn("Failed to persist compile log", "path", logPath, "error", err)
	}

	if record.OK {
		if err := s.cache.Put(ctx, root, &record); err != nil {
			s.logger.Warn("Failed to register build in cache", "root", root, "error", err)
		}
	}
	return record
}

// collectSources gathers the absolute paths of all compilable files under
// root, excluding anything inside the build directory itself.
func (s *buildService) collectSources(root string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == s.cfg.BuildDirName {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), scan.CompileExtension) {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sources, nil
}

// canonicalRoot resolves the root to its canonical absolute form so the memo
// sees one key per project regardless of how the path was spelled.
func canonicalRoot(sourceRoot string) string {
	abs, err := filepath.Abs(sourceRoot)
	if err != nil {
		return filepath.Clean(sourceRoot)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
