package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func TestWriteProducesReportSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	fqcn := "pkg.Main"
	rpt := domain.NewGradingReport("/submissions")
	rpt.Results = []*domain.SubmissionReport{
		{
			Submission: "alice",
			Review:     json.RawMessage(`{"score": 9}`),
			Run: &domain.RunRecord{
				OK:         true,
				ExitCode:   0,
				ElapsedSec: 1.234,
				EntryPoint: &fqcn,
				Stdout:     "hello",
				Stderr:     "",
			},
		},
		{
			Submission: "bob",
			Review:     json.RawMessage(`{"Overall score": "N/A"}`),
		},
	}

	if err := NewWriter(path, nopLogger{}).Write(rpt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if parsed["folderPath"] != "/submissions" {
		t.Errorf("unexpected folderPath: %v", parsed["folderPath"])
	}

	results, ok := parsed["results"].([]interface{})
	if !ok || len(results) != 2 {
		t.Fatalf("expected 2 results, got %v", parsed["results"])
	}

	first := results[0].(map[string]interface{})
	run, ok := first["run"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing run section: %v", first)
	}
	for _, key := range []string{"ok", "rc", "elapsed_sec", "fqcn", "stdout", "stderr"} {
		if _, present := run[key]; !present {
			t.Errorf("run section missing key %q", key)
		}
	}
	if run["fqcn"] != "pkg.Main" {
		t.Errorf("unexpected fqcn: %v", run["fqcn"])
	}

	second := results[1].(map[string]interface{})
	if second["run"] != nil {
		t.Errorf("expected null run for degraded entry, got %v", second["run"])
	}

	// run-internal bookkeeping never reaches the report
	if _, present := parsed["RunID"]; present {
		t.Error("RunID leaked into the report")
	}
}

func TestWriteFailsOnBadPath(t *testing.T) {
	writer := NewWriter(filepath.Join(t.TempDir(), "missing", "results.json"), nopLogger{})
	if err := writer.Write(domain.NewGradingReport("/submissions")); err == nil {
		t.Error("expected an error for an unwritable path")
	}
}
