package buildcache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/joshuaj3383/CodeGrader/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

func newTestCache(t *testing.T) (*BuildCache, *miniredis.Miniredis) {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(srv.Close)

	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewBuildCache(client, nopLogger{}), srv
}

func TestGetMissReturnsNil(t *testing.T) {
	cache, _ := newTestCache(t)

	record, err := cache.Get(context.Background(), "/nowhere")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record != nil {
		t.Errorf("expected nil on miss, got %+v", record)
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	want := domain.BuildRecord{
		SourceRoot: "/submissions/alice",
		OK:         true,
		Log:        "Note: unchecked operations",
		OutputDir:  "/submissions/alice/.build",
	}
	if err := cache.Put(ctx, want.SourceRoot, &want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !srv.Exists("build:" + want.SourceRoot) {
		t.Error("record not stored under the build: key prefix")
	}

	got, err := cache.Get(ctx, want.SourceRoot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || *got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestRecordsExpire(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	record := domain.BuildRecord{SourceRoot: "/submissions/bob", OK: true}
	if err := cache.Put(ctx, record.SourceRoot, &record); err != nil {
		t.Fatal(err)
	}

	srv.FastForward(buildExpiration + 1)

	got, err := cache.Get(ctx, record.SourceRoot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected record to expire, got %+v", got)
	}
}

func TestResetOnlyTouchesBuildKeys(t *testing.T) {
	cache, srv := newTestCache(t)
	ctx := context.Background()

	record := domain.BuildRecord{SourceRoot: "/submissions/carol", OK: true}
	if err := cache.Put(ctx, record.SourceRoot, &record); err != nil {
		t.Fatal(err)
	}
	if err := srv.Set("unrelated", "keep me"); err != nil {
		t.Fatal(err)
	}

	if err := cache.Reset(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := cache.Get(ctx, record.SourceRoot)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("expected empty cache after reset, got %+v", got)
	}
	if !srv.Exists("unrelated") {
		t.Error("reset deleted keys outside the build: prefix")
	}
}

func TestGetCorruptRecord(t *testing.T) {
	cache, srv := newTestCache(t)

	if err := srv.Set("build:/submissions/dave", "not json"); err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Get(context.Background(), "/submissions/dave"); err == nil {
		t.Error("expected an error for a corrupt record")
	}
}
