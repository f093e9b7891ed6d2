package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joshuaj3383/CodeGrader/internal/config"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/primary"
	"github.com/joshuaj3383/CodeGrader/internal/core/ports/secondary"
	"github.com/joshuaj3383/CodeGrader/internal/domain"
	"github.com/joshuaj3383/CodeGrader/internal/static/errs"
)

// defaultInstructions is used when no instructions file is configured.
const defaultInstructions = `You are grading a student programming project.
Compare the Actual Program Output against the Expected Output, then judge the
code quality against the Project Description. Respond with a JSON object:
{"score": <0.0-10.0>, "comments": [<short, actionable remarks>], "ai": [<signs the code may be AI-generated, or "None">]}`

// Reviewer implements the Reviewer port against the Gemini generateContent
// API in JSON response mode.
type Reviewer struct {
	httpClient   *http.Client
	cfg          *config.ReviewCfg
	instructions string
	logger       primary.Logger
}

// NewReviewer creates a new Gemini reviewer. The instructions file is read
// once at construction; a missing file falls back to the built-in rubric.
func NewReviewer(cfg *config.ReviewCfg, logger primary.Logger) *Reviewer {
	instructions := defaultInstructions
	if cfg.InstructionsPath != "" {
		content, err := os.ReadFile(cfg.InstructionsPath)
		if err != nil {
			logger.Warn("Failed to read prompt instructions, using default", "path", cfg.InstructionsPath, "error", err)
		} else {
			instructions = string(content)
		}
	}

	return &Reviewer{
		httpClient:   &http.Client{Timeout: 120 * time.Second},
		cfg:          cfg,
		instructions: instructions,
		logger:       logger,
	}
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"response_mime_type"`
	Temperature      float64 `json:"temperature"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Review sends the prompt and returns the model's JSON verdict. JSON mode
// plus temperature 0 keeps the response parseable and stable.
func (r *Reviewer) Review(ctx context.Context, req secondary.ReviewRequest) (json.RawMessage, error) {
	if r.cfg.APIKey == "" {
		return nil, errs.ReviewerUnavailable
	}

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Parts: []part{{Text: r.prompt(req)}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			Temperature:      0,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal review request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", r.cfg.Endpoint, r.cfg.Model, r.cfg.APIKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create review request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	r.logger.Info("Getting AI feedback", "model", r.cfg.Model)
	resp, err := r.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("review call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read review response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("review call returned status %d: %s", resp.StatusCode, domain.TrimLength(string(respBody), 500))
	}

	var parsed generateContentResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode review response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("review response contained no candidates")
	}

	// the model must emit a JSON document; reject anything else so the report
	// never embeds malformed review text
	verdict := []byte(parsed.Candidates[0].Content.Parts[0].Text)
	if !json.Valid(verdict) {
		return nil, fmt.Errorf("review response is not valid JSON")
	}
	return verdict, nil
}

// prompt assembles the review prompt with each section delimited and trimmed
// to its configured limit.
func (r *Reviewer) prompt(req secondary.ReviewRequest) string {
	return fmt.Sprintf(`INSTRUCTIONS:
<START>
%s
<END>

Project Description:
<START>
%s
<END>

Expected Output:
<START>
%s
<END>

Actual Program Output:
<START>
%s
<END>

Student Files: (these are all truncated together with the filename at top)
<START>
%s
<END>`,
		r.instructions,
		domain.TrimLength(req.ProjectDescription, r.cfg.DefaultLimit),
		domain.TrimLength(req.ExpectedOutput, r.cfg.DefaultLimit),
		domain.TrimLength(req.ActualOutput, r.cfg.OutputLimit),
		domain.TrimLength(req.Code, r.cfg.CodeLimit),
	)
}
