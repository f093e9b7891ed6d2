package errs

import "errors"

var (
	EmptyExtensionSet   = errors.New("extension set must not be empty")
	ReviewerUnavailable = errors.New("reviewer is not configured")
)
