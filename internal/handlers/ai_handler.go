package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ghostlake/jobtrack/internal/apierr"
	"github.com/ghostlake/jobtrack/internal/dtos"
)

// SkillExtractor is the opaque model-inference collaborator.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, jobDescription string) (*dtos.SkillReport, error)
}

type AIHandler struct {
	Skills SkillExtractor
}

func NewAIHandler(skills SkillExtractor) *AIHandler {
	return &AIHandler{Skills: skills}
}

// ExtractSkills is POST /ai/extract-skills. Upstream failures answer 502
// without exposing the upstream error to the client.
func (h *AIHandler) ExtractSkills(c *gin.Context) {
	var req dtos.ExtractSkillsRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.JobDescription) == "" {
		_ = c.Error(apierr.BadRequest("jobDescription must be a non-empty string"))
		return
	}

	report, err := h.Skills.ExtractSkills(c.Request.Context(), req.JobDescription)
	if err != nil {
		_ = c.Error(apierr.BadGateway("skill extraction failed").WithCause(err))
		return
	}

	c.JSON(http.StatusOK, report)
}
