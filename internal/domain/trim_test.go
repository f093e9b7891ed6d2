package domain

import (
	"strings"
	"testing"
)

func TestTrimLength(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short string untouched", "hello", 100, "hello"},
		{"whitespace stripped", "  hello \n", 100, "hello"},
		{"exact limit untouched", "abcde", 5, "abcde"},
		{"zero limit disables truncation", strings.Repeat("x", 50), 0, strings.Repeat("x", 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimLength(tt.in, tt.limit); got != tt.want {
				t.Errorf("TrimLength(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTrimLengthTruncates(t *testing.T) {
	got := TrimLength(strings.Repeat("a", 120), 100)
	if !strings.HasPrefix(got, strings.Repeat("a", 100)) {
		t.Errorf("truncated prefix wrong: %q", got)
	}
	if !strings.HasSuffix(got, "[truncated 20 chars]") {
		t.Errorf("missing truncation marker: %q", got)
	}
}

func TestRunResultRecordTrimsStreams(t *testing.T) {
	fqcn := "Main"
	result := RunResult{
		OK:         true,
		ExitCode:   0,
		ElapsedSec: 2.5,
		EntryPoint: &fqcn,
		Stdout:     strings.Repeat("o", 40),
		Stderr:     strings.Repeat("e", 40),
	}

	record := result.Record(10, 20)
	if !strings.Contains(record.Stdout, "[truncated 30 chars]") {
		t.Errorf("stdout not trimmed: %q", record.Stdout)
	}
	if !strings.Contains(record.Stderr, "[truncated 20 chars]") {
		t.Errorf("stderr not trimmed: %q", record.Stderr)
	}
	if record.EntryPoint == nil || *record.EntryPoint != "Main" {
		t.Errorf("entry point lost: %v", record.EntryPoint)
	}
	if record.ElapsedSec != 2.5 || !record.OK {
		t.Errorf("fields not carried over: %+v", record)
	}
}
