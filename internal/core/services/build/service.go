package build

import (
	"context"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

// IBuildService defines the interface for compiling one submission's sources
type IBuildService interface {
	// Build compiles every compilable source under sourceRoot into the
	// submission's build directory, memoized per canonical root. The returned
	// record is always populated; failures are diagnostic, never fatal.
	Build(ctx context.Context, sourceRoot string) domain.BuildRecord
}

// Invoker abstracts the compiler binary so tests can count invocations and
// another toolchain can be slotted in without touching the engine.
type Invoker interface {
	// Available reports whether the tool can be found on the execution
	// environment.
	Available(tool string) bool

	// Invoke runs the tool with args and returns its combined stdout+stderr.
	// A non-nil error with output present means the tool ran and failed.
	Invoke(ctx context.Context, tool string, args []string) ([]byte, error)
}
