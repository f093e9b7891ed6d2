package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/joshuaj3383/CodeGrader/internal/adapter/gemini"
	"github.com/joshuaj3383/CodeGrader/internal/adapter/logging"
	memcache "github.com/joshuaj3383/CodeGrader/internal/adapter/memory/buildcache"
	"github.com/joshuaj3383/CodeGrader/internal/adapter/postgres/resultrepository"
	rediscache "github.com/joshuaj3383/CodeGrader/internal/adapter/redis/buildcache"
	"github.com/joshuaj3383/CodeGrader/internal/config"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/secondary"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/build"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/entrypoint"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/grade"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/run"
	"github.com/joshuaj3383/CodeGrader/internal/core/services/scan"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
	http2 "github.com/joshuaj3383/CodeGrader/internal/http"
	"github.com/joshuaj3383/CodeGrader/internal/report"
)

type CLI struct {
	Grade struct {
		Folder         string   `arg:"" help:"Folder containing one subdirectory per submission."`
		Description    string   `help:"Path to the project description file." type:"path"`
		ExpectedOutput string   `help:"Path to the expected output file." type:"path"`
		Extensions     []string `help:"Source extensions to collect." default:".java"`
		TimeoutSec     int      `help:"Per-submission execution timeout in seconds (overrides env)."`
		NoAI           bool     `help:"Disable AI feedback."`
		Serve          bool     `help:"Keep running after grading and serve the report over HTTP."`
	} `cmd:"" help:"Grade every submission in a folder."`
}

// reportHolder hands the finished report to the HTTP layer.
type reportHolder struct {
	rpt *domain.GradingReport
}

func (h *reportHolder) GetReport() *domain.GradingReport {
	return h.rpt
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli, kong.Name("grader"), kong.Description("Batch build-and-run harness for grading code submissions."))

	// .env is optional; flags and real env vars win for one-off runs
	_ = godotenv.Load()

	sysCfg := config.NewSystemConfig()
	logger := logging.NewZapLogger(sysCfg.DebugMode)

	switch kctx.Command() {
	case "grade <folder>":
		runGrade(cli, sysCfg, logger)
	default:
		kctx.Fatalf("unknown command %s", kctx.Command())
	}
}

func runGrade(cli CLI, sysCfg *config.AppConfig, logger primary.Logger) {
	logger.Info("Starting grading run", "folder", cli.Grade.Folder)

	extensions, err := scan.NormalizeExtensions(cli.Grade.Extensions)
	if err != nil {
		logger.Error("Invalid extension set", "error", err)
		os.Exit(1)
	}

	timeout := sysCfg.GraderCfg.RunTimeout
	if cli.Grade.TimeoutSec > 0 {
		timeout = time.Duration(cli.Grade.TimeoutSec) * time.Second
	}

	// SECONDARY PORTS
	cache := setupBuildCache(sysCfg, logger)
	results := setupResultRepository(sysCfg, logger)

	var reviewer secondary.Reviewer
	if !cli.Grade.NoAI {
		reviewer = gemini.NewReviewer(sysCfg.ReviewCfg, logger)
	}

	// services
	scanner := scan.NewScanService(logger)
	builder := build.NewBuildService(cache, build.NewExecInvoker(), sysCfg.GraderCfg, logger)
	locator := entrypoint.NewRegexLocator(logger)
	runner := run.NewRunService(locator, sysCfg.GraderCfg, logger)
	grader := grade.NewGradeService(scanner, builder, runner, reviewer, results, sysCfg, logger)

	req := grade.GradeRequest{
		FolderPath:         cli.Grade.Folder,
		Extensions:         extensions,
		ProjectDescription: readTextOrDefault(cli.Grade.Description, "No Project Description Given", logger),
		ExpectedOutput:     readTextOrDefault(cli.Grade.ExpectedOutput, "No Expected Output Given", logger),
		Timeout:            timeout,
		ReviewEnabled:      !cli.Grade.NoAI,
	}

	ctxBg := context.Background()
	rpt, err := grader.GradeFolder(ctxBg, req)
	if err != nil {
		logger.Error("Grading run failed", "error", err)
		os.Exit(1)
	}

	writer := report.NewWriter(sysCfg.ReportCfg.OutputPath, logger)
	if err := writer.Write(rpt); err != nil {
		logger.Error("Failed to write report", "error", err)
		os.Exit(1)
	}

	if !cli.Grade.Serve {
		return
	}

	// --serve keeps the process alive so the report can be browsed
	holder := &reportHolder{rpt: rpt}
	httpServer := http2.NewServer(sysCfg.ReportCfg.ServePort, "grader", holder, logger)
	if err := httpServer.Init(); err != nil {
		logger.Error("Failed to init report server", "error", err)
		os.Exit(1)
	}
	httpServer.Start(ctxBg)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(ctxBg, 5*time.Second)
	defer cancel()
	httpServer.Stop(ctx)

	logger.Info("successfully shutdown report server")
}

// setupBuildCache picks the memo backend: in-process by default, Redis when
// grading runs should share compiles across processes.
func setupBuildCache(sysCfg *config.AppConfig, logger primary.Logger) secondary.BuildCache {
	if sysCfg.GraderCfg.BuildCacheBackend != "redis" {
		return memcache.NewBuildCache()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     sysCfg.RedisConfig.Url,
		Password: sysCfg.RedisConfig.Password,
		DB:       sysCfg.RedisConfig.DB,
	})
	return rediscache.NewBuildCache(redisClient, logger)
}

// setupResultRepository wires the optional PostgreSQL sink; grading proceeds
// without persistence when no DATABASE_URL is configured or the DB is down.
func setupResultRepository(sysCfg *config.AppConfig, logger primary.Logger) secondary.ResultRepository {
	if sysCfg.PostgresConfig.Url == "" {
		return nil
	}

	db, err := sqlx.Open("postgres", sysCfg.PostgresConfig.Url)
	if err != nil {
		logger.Error("Failed to open results database, persistence disabled", "error", err)
		return nil
	}
	if err := db.Ping(); err != nil {
		logger.Error("Failed to reach results database, persistence disabled", "error", err)
		return nil
	}
	return resultrepository.NewResultRepository(db, logger)
}

// readTextOrDefault reads an optional input file, degrading to the default
// text when the path is unset or unreadable.
func readTextOrDefault(path, fallback string, logger primary.Logger) string {
	if path == "" {
		return fallback
	}
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Falling back to default text", "path", path, "error", err)
		return fallback
	}
	return string(content)
}
