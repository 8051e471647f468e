package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel returns a canned response without hitting any real model.
type fakeModel struct {
	output string
	err    error
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.output}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestExtractSkills_ParsesModelOutput(t *testing.T) {
	t.Parallel()

	svc := &SkillService{Client: &fakeModel{
		output: `{"skills":["Go","SQL","Docker","Kubernetes","Testing"],"summary":"Backend role."}`,
	}}

	report, err := svc.ExtractSkills(context.Background(), "some job description")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "Docker", "Kubernetes", "Testing"}, report.Skills)
	assert.Equal(t, "Backend role.", report.Summary)
}

func TestExtractSkills_StripsMarkdownFences(t *testing.T) {
	t.Parallel()

	svc := &SkillService{Client: &fakeModel{
		output: "```json\n{\"skills\":[\"Go\",\"SQL\",\"Docker\",\"CI\",\"REST\"],\"summary\":\"A role.\"}\n```",
	}}

	report, err := svc.ExtractSkills(context.Background(), "desc")
	require.NoError(t, err)
	assert.Len(t, report.Skills, 5)
}

func TestExtractSkills_ModelFailure(t *testing.T) {
	t.Parallel()

	svc := &SkillService{Client: &fakeModel{err: errors.New("upstream down")}}

	_, err := svc.ExtractSkills(context.Background(), "desc")
	assert.Error(t, err)
}

func TestExtractSkills_UnusableOutput(t *testing.T) {
	t.Parallel()

	for _, output := range []string{"not json at all", `{"skills":[],"summary":"x"}`, `{"skills":["  ","  "],"summary":"x"}`} {
		svc := &SkillService{Client: &fakeModel{output: output}}
		_, err := svc.ExtractSkills(context.Background(), "desc")
		assert.Error(t, err, "output %q", output)
	}
}

func TestNormalizeSkills(t *testing.T) {
	t.Parallel()

	got := normalizeSkills([]string{" Go ", "go", "", "SQL", "sql ", "Docker", "K8s", "AWS", "GCP", "CI", "CD", "REST", "gRPC"})
	assert.Equal(t, []string{"Go", "SQL", "Docker", "K8s", "AWS", "GCP", "CI", "CD", "REST", "gRPC"}, got)
	assert.LessOrEqual(t, len(got), 10)
}
