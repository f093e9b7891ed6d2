package entrypoint

import (
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// Locator finds program entry points by scanning raw source text. It is a
// best-effort heuristic layer: it never needs the project to compile, and a
// parser-based implementation can be substituted without touching callers.
type Locator interface {
	// FindEntryPoints returns every candidate found under root, in
	// deterministic file traversal order. Zero, one, or many candidates are
	// all legitimate outcomes.
	FindEntryPoints(root string) ([]domain.EntryPoint, error)
}
