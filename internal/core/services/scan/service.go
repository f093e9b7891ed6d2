package scan

import (
	"context"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// IScanService defines the interface for discovering submission sources
type IScanService interface {
	// Scan walks root and collects files whose extension is in the normalized
	// set, concatenating their text with per-file relative-path headers
	Scan(ctx context.Context, root string, extensions map[string]struct{}) (*domain.SourceSet, error)
}
