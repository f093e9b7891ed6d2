package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
	"github.com/joshuaj3383/CodeGrader/internal/static/errs"
)

// CompileExtension marks a file as belonging to the compiled toolchain.
const CompileExtension = ".java"

type scanService struct {
	logger primary.Logger
}

// NewScanService creates a new source scanner
func NewScanService(logger primary.Logger) IScanService {
	return &scanService{logger: logger}
}

// Scan walks the submission tree in lexical order so that downstream
// entry-point tie-breaking stays reproducible. Unreadable files are skipped
// individually; only a failure to walk the tree itself is returned as an error.
func (s *scanService) Scan(ctx context.Context, root string, extensions map[string]struct{}) (*domain.SourceSet, error) {
	set := &domain.SourceSet{Root: root}

	var sb strings.Builder
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// unreadable directory entry, skip it and keep walking
			s.logger.Warn("Skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, ok := extensions[ext]; !ok {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			s.logger.Warn("Skipping file with read error", "file", path, "error", readErr)
			return nil
		}

		sb.WriteString(fmt.Sprintf("\nFile: %s\n", rel))
		sb.Write(content)
		set.Files = append(set.Files, rel)
		s.logger.Debug("Read source file", "file", rel)

		if ext == CompileExtension {
			set.HasCompilable = true
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to walk submission tree", "root", root, "error", err)
		return nil, fmt.Errorf("failed to walk submission tree %s: %w", root, err)
	}

	set.CombinedText = sb.String()
	return set, nil
}

// NormalizeExtensions lowercases and dot-prefixes the configured extensions,
// e.g. "Java" -> ".java". An empty result is rejected so the scanner never
// silently matches nothing.
func NormalizeExtensions(extensions []string) (map[string]struct{}, error) {
	normalized := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized[ext] = struct{}{}
	}
	if len(normalized) == 0 {
		return nil, errs.EmptyExtensionSet
	}
	return normalized, nil
}
