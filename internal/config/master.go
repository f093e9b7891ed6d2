package config

import "os"

type AppConfig struct {
	DebugMode      bool
	GraderCfg      *GraderCfg
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	ReviewCfg      *ReviewCfg
	ReportCfg      *ReportCfg
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		GraderCfg:      NewGraderCfg(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		ReviewCfg:      NewReviewCfg(),
		ReportCfg:      NewReportCfg(),
	}
}
