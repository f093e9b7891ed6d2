package domain

// FailureKind classifies why a stage of the harness degraded. Every kind is
// reported in the submission's record; none of them aborts the batch.
type FailureKind string

const (
	FailureNone                 FailureKind = ""
	FailureToolchainUnavailable FailureKind = "TOOLCHAIN_UNAVAILABLE"
	FailureNoSources            FailureKind = "NO_SOURCES"
	FailureCompile              FailureKind = "COMPILE_ERROR"
	FailureNoEntryPoint         FailureKind = "NO_ENTRY_POINT"
	FailureArtifactsMissing     FailureKind = "BUILD_ARTIFACTS_MISSING"
	FailureTimeout              FailureKind = "TIMEOUT"
	FailureLaunch               FailureKind = "LAUNCH_ERROR"
	FailureInternal             FailureKind = "INTERNAL_ERROR"
)
