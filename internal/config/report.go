package config

type ReportCfg struct {
	OutputPath  string
	ServePort   int
	StdoutLimit int
	StderrLimit int
}

func NewReportCfg() *ReportCfg {
	return &ReportCfg{
		OutputPath:  strEnv("GRADER_REPORT_PATH", "results.json"),
		ServePort:   intEnv("GRADER_SERVE_PORT", 8082),
		StdoutLimit: intEnv("GRADER_REPORT_STDOUT_LIMIT", 19900),
		StderrLimit: intEnv("GRADER_REPORT_STDERR_LIMIT", 5000),
	}
}
