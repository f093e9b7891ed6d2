package domain

import (
	"fmt"
	"strings"
)

// TrimLength strips surrounding whitespace and bounds s to limit characters,
// appending a truncation marker so downstream consumers (the reviewer prompt,
// the report) stay within budget.
func TrimLength(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return s
	}
	if len(s) > limit {
		return s[:limit] + fmt.Sprintf("\n…[truncated %d chars]", len(s)-limit)
	}
	return s
}
