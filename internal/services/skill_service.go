package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

const skillExtractionPrompt = `You are an assistant that reads a job description and extracts a concise list of core skills plus a one to two sentence summary.

### INSTRUCTIONS:
1. Return only 5-10 distinct skills.
2. Prefer general, transferable skills over vendor-specific when redundant.
3. Keep the summary objective and succinct (1-2 sentences).
4. Format the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{"skills": ["skill1", "skill2", ...], "summary": "..."}

### JOB DESCRIPTION:
%s
`

// descriptionLimit caps the prompt size for very long pasted descriptions.
const descriptionLimit = 20000

// SkillService wraps the model-inference call for skill extraction.
// The model client is created once and reused.
type SkillService struct {
	Client llms.Model
}

// NewSkillService initializes the Gemini client.
func NewSkillService(ctx context.Context, apiKey, model string) (*SkillService, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	return &SkillService{Client: llm}, nil
}

// ExtractSkills sends the job description to the model and returns the
// normalized report. Any failure here is an upstream failure; the handler
// maps it to 502 without exposing detail.
func (s *SkillService) ExtractSkills(ctx context.Context, jobDescription string) (*dtos.SkillReport, error) {
	if len(jobDescription) > descriptionLimit {
		jobDescription = jobDescription[:descriptionLimit]
	}

	prompt := fmt.Sprintf(skillExtractionPrompt, jobDescription)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}

	report, err := parseSkillReport(resp)
	if err != nil {
		return nil, err
	}
	return report, nil
}

// parseSkillReport decodes the model output, tolerating markdown fences the
// model sometimes adds despite instructions, and normalizes the skill list.
func parseSkillReport(raw string) (*dtos.SkillReport, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var report dtos.SkillReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, fmt.Errorf("unusable model output: %w", err)
	}

	report.Skills = normalizeSkills(report.Skills)
	report.Summary = strings.TrimSpace(report.Summary)
	if len(report.Skills) == 0 {
		return nil, fmt.Errorf("model returned no skills")
	}
	return &report, nil
}

// normalizeSkills trims entries, drops empties, de-duplicates
// case-insensitively and caps the list at 10.
func normalizeSkills(list []string) []string {
	seen := make(map[string]bool, len(list))
	unique := make([]string, 0, len(list))
	for _, s := range list {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, s)
	}
	if len(unique) > 10 {
		unique = unique[:10]
	}
	return unique
}
