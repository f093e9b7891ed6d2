package domain

// RunResult captures one execution of a submission's entry point.
type RunResult struct {
	OK         bool
	ExitCode   int
	Stdout     string
	Stderr     string
	ElapsedSec float64
	EntryPoint *string // qualified name, nil when resolution never happened
	Failure    FailureKind
}
