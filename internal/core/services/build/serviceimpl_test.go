package build_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joshuaj3383/CodeGrader/internal/adapter/memory/buildcache"
	"github.com/joshuaj3383/CodeGrader/internal/config"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/build"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

// fakeInvoker stands in for javac and counts how often it is called.
type fakeInvoker struct {
	available bool
	calls     int
	output    []byte
	err       error

	lastTool string
	lastArgs []string
}

func (f *fakeInvoker) Available(tool string) bool {
	return f.available
}

func (f *fakeInvoker) Invoke(ctx context.Context, tool string, args []string) ([]byte, error) {
	f.calls++
	f.lastTool = tool
	f.lastArgs = args
	return f.output, f.err
}

func testCfg() *config.GraderCfg {
	return &config.GraderCfg{
		RunTimeout:     12 * time.Second,
		CompileTimeout: 60 * time.Second,
		JavacPath:      "javac",
		JavaPath:       "java",
		BuildDirName:   ".build",
		ManifestName:   "sources.txt",
		CompileLogName: "compile.log",
		MaxConcurrent:  1,
	}
}

func newSubmission(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	src := filepath.Join(root, "Main.java")
	if err := os.WriteFile(src, []byte("public class Main { public static void main(String[] a){} }"), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestBuildToolchainUnavailable(t *testing.T) {
	invoker := &fakeInvoker{available: false}
	svc := build.NewBuildService(buildcache.NewBuildCache(), invoker, testCfg(), nopLogger{})

	record := svc.Build(context.Background(), newSubmission(t))
	if record.OK {
		t.Error("expected OK=false")
	}
	if record.Failure != domain.FailureToolchainUnavailable {
		t.Errorf("expected failure %s, got %s", domain.FailureToolchainUnavailable, record.Failure)
	}
	if !strings.Contains(record.Log, "javac not found on PATH") {
		t.Errorf("unexpected log: %q", record.Log)
	}
	if invoker.calls != 0 {
		t.Errorf("compiler must not be invoked, got %d calls", invoker.calls)
	}
}

func TestBuildNoSources(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "readme.md"), []byte("no code here"), 0644); err != nil {
		t.Fatal(err)
	}

	invoker := &fakeInvoker{available: true}
	svc := build.NewBuildService(buildcache.NewBuildCache(), invoker, testCfg(), nopLogger{})

	record := svc.Build(context.Background(), root)
	if record.Failure != domain.FailureNoSources {
		t.Errorf("expected failure %s, got %s", domain.FailureNoSources, record.Failure)
	}
	if !strings.Contains(record.Log, "No .java sources under") {
		t.Errorf("unexpected log: %q", record.Log)
	}
	if invoker.calls != 0 {
		t.Errorf("compiler must not be invoked, got %d calls", invoker.calls)
	}
}

func TestBuildCompilesOncePerRoot(t *testing.T) {
	root := newSubmission(t)
	invoker := &fakeInvoker{available: true, output: []byte("Note: some warning\n")}
	svc := build.NewBuildService(buildcache.NewBuildCache(), invoker, testCfg(), nopLogger{})

	first := svc.Build(context.Background(), root)
	if !first.OK {
		t.Fatalf("expected OK build, got failure %s: %s", first.Failure, first.Log)
	}
	if first.Log != "Note: some warning\n" {
		t.Errorf("expected compiler output in log, got %q", first.Log)
	}

	second := svc.Build(context.Background(), root)
	if invoker.calls != 1 {
		t.Errorf("expected exactly one compiler invocation, got %d", invoker.calls)
	}
	if second != first {
		t.Errorf("memo hit must return the first record unchanged:\nfirst  %+v\nsecond %+v", first, second)
	}

	// the same project reached through a different path spelling still hits
	// the memo
	third := svc.Build(context.Background(), filepath.Join(root, ".", "."))
	if invoker.calls != 1 {
		t.Errorf("alternate path spelling caused a recompile, %d calls", invoker.calls)
	}
	if third.SourceRoot != first.SourceRoot {
		t.Errorf("expected canonical root %q, got %q", first.SourceRoot, third.SourceRoot)
	}
}

func TestBuildWritesManifestAndCompileLog(t *testing.T) {
	root := newSubmission(t)
	invoker := &fakeInvoker{available: true, output: []byte("compiled fine")}
	svc := build.NewBuildService(buildcache.NewBuildCache(), invoker, testCfg(), nopLogger{})

	record := svc.Build(context.Background(), root)
	if !record.OK {
		t.Fatalf("unexpected failure: %s", record.Log)
	}

	manifest, err := os.ReadFile(filepath.Join(record.OutputDir, "sources.txt"))
	if err != nil {
		t.Fatalf("manifest missing: %v", err)
	}
	if !strings.Contains(string(manifest), "Main.java") {
		t.Errorf("manifest does not list the source file: %q", manifest)
	}

	logContent, err := os.ReadFile(filepath.Join(record.OutputDir, "compile.log"))
	if err != nil {
		t.Fatalf("compile log missing: %v", err)
	}
	if string(logContent) != "compiled fine" {
		t.Errorf("unexpected compile log content: %q", logContent)
	}

	wantArgs := []string{"-encoding", "UTF-8", "-d", record.OutputDir, "@" + filepath.Join(record.OutputDir, "sources.txt")}
	if len(invoker.lastArgs) != len(wantArgs) {
		t.Fatalf("expected args %v, got %v", wantArgs, invoker.lastArgs)
	}
	for i := range wantArgs {
		if invoker.lastArgs[i] != wantArgs[i] {
			t.Errorf("arg %d: expected %q, got %q", i, wantArgs[i], invoker.lastArgs[i])
		}
	}
}

func TestBuildFailureIsRetried(t *testing.T) {
	root := newSubmission(t)
	invoker := &fakeInvoker{available: true, output: []byte("Main.java:1: error: ';' expected"), err: errors.New("exit status 1")}
	svc := build.NewBuildService(buildcache.NewBuildCache(), invoker, testCfg(), nopLogger{})

	first := svc.Build(context.Background(), root)
	if first.OK {
		t.Error("expected OK=false on compile error")
	}
	if first.Failure != domain.FailureCompile {
		t.Errorf("expected failure %s, got %s", domain.FailureCompile, first.Failure)
	}

	svc.Build(context.Background(), root)
	if invoker.calls != 2 {
		t.Errorf("failed builds must not be memoized, got %d calls", invoker.calls)
	}
}

func TestBuildSkipsSourcesInsideBuildDir(t *testing.T) {
	root := newSubmission(t)
	stale := filepath.Join(root, ".build", "Stale.java")
	if err := os.MkdirAll(filepath.Dir(stale), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("class Stale {}"), 0644); err != nil {
		t.Fatal(err)
	}

	invoker := &fakeInvoker{available: true}
	svc := build.NewBuildService(buildcache.NewBuildCache(), invoker, testCfg(), nopLogger{})

	record := svc.Build(context.Background(), root)
	if !record.OK {
		t.Fatalf("unexpected failure: %s", record.Log)
	}

	manifest, err := os.ReadFile(filepath.Join(record.OutputDir, "sources.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(manifest), "Stale.java") {
		t.Errorf("build dir contents leaked into manifest: %q", manifest)
	}
}
