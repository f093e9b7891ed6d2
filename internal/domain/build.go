package domain

// BuildRecord is the outcome of compiling one source root. At most one compile
// is performed per canonical root per grading run; a cache hit returns the
// first attempt's record unchanged.
type BuildRecord struct {
	SourceRoot string      `json:"sourceRoot"`
	OK         bool        `json:"ok"`
	Log        string      `json:"log"`
	OutputDir  string      `json:"outputDir"`
	Failure    FailureKind `json:"failure,omitempty"`
}
