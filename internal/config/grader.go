package config

import (
	"os"
	"strconv"
	"time"
)

// GraderCfg holds the build-and-run harness settings. The build directory is
// segregated from submission sources so repeated runs never disturb student
// files.
type GraderCfg struct {
	RunTimeout        time.Duration // wall clock budget per execution
	CompileTimeout    time.Duration // wall clock budget per javac invocation
	JavacPath         string
	JavaPath          string
	BuildDirName      string
	ManifestName      string
	CompileLogName    string
	MaxConcurrent     int    // submissions graded at once; 1 = sequential
	BuildCacheBackend string // "memory" or "redis"
}

func NewGraderCfg() *GraderCfg {
	return &GraderCfg{
		RunTimeout:        time.Duration(intEnv("GRADER_RUN_TIMEOUT_SEC", 12)) * time.Second,
		CompileTimeout:    time.Duration(intEnv("GRADER_COMPILE_TIMEOUT_SEC", 60)) * time.Second,
		JavacPath:         strEnv("GRADER_JAVAC_PATH", "javac"),
		JavaPath:          strEnv("GRADER_JAVA_PATH", "java"),
		BuildDirName:      strEnv("GRADER_BUILD_DIR", ".build"),
		ManifestName:      "sources.txt",
		CompileLogName:    "compile.log",
		MaxConcurrent:     intEnv("GRADER_MAX_CONCURRENT", 1),
		BuildCacheBackend: strEnv("BUILD_CACHE_BACKEND", "memory"),
	}
}

func strEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}
