package config

// ReviewCfg configures the AI reviewer. The prompt section limits mirror what
// the scoring model tolerates before responses degrade.
type ReviewCfg struct {
	APIKey           string
	Model            string
	Endpoint         string
	InstructionsPath string // optional file overriding the built-in instructions
	CodeLimit        int
	OutputLimit      int
	DefaultLimit     int
}

func NewReviewCfg() *ReviewCfg {
	return &ReviewCfg{
		APIKey:           strEnv("GEMINI_API_KEY", ""),
		Model:            strEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		Endpoint:         strEnv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com/v1beta"),
		InstructionsPath: strEnv("GRADER_PROMPT_INSTRUCTIONS", ""),
		CodeLimit:        intEnv("GRADER_PROMPT_CODE_LIMIT", 19900),
		OutputLimit:      intEnv("GRADER_PROMPT_OUTPUT_LIMIT", 19900),
		DefaultLimit:     intEnv("GRADER_PROMPT_DEFAULT_LIMIT", 4900),
	}
}
