package secondary

import (
	"context"
	"encoding/json"
)

// ReviewRequest bundles everything the qualitative reviewer sees for one
// submission. All fields are plain text, already trimmed by the caller's
// limits where needed.
type ReviewRequest struct {
	Code               string
	ProjectDescription string
	ExpectedOutput     string
	ActualOutput       string
}

// Reviewer scores a submission qualitatively and returns the review as raw
// JSON, embedded verbatim into the submission's report entry.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (json.RawMessage, error)
}
