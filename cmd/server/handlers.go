package main

import (
	"net/http"
	"time"

	"github.com/credlens/credlens/internal/errors"
	"github.com/credlens/credlens/internal/monitoring"
	"github.com/credlens/credlens/internal/scoring"
	"github.com/credlens/credlens/internal/types"
	"github.com/gin-gonic/gin"
)

// trustRequest carries the normalized account and contribution records for a
// standalone trust calculation.
type trustRequest struct {
	Account   types.GitHubAccount       `json:"account"`
	Pattern   types.ContributionPattern `json:"pattern"`
	Overrides *scoring.TrustOverrides   `json:"overrides,omitempty"`
}

type impactRequest struct {
	Activity  types.GitHubActivity     `json:"activity"`
	Overrides *scoring.ImpactOverrides `json:"overrides,omitempty"`
}

type compatibilityRequest struct {
	Activity types.EngineerActivity `json:"activity"`
	Role     string                 `json:"role"`
	Hints    []string               `json:"hints,omitempty"`
}

// matchRequest drives the full pipeline: all three calculators, the combined
// match score with both audience views, and the explanation.
type matchRequest struct {
	Profile   scoring.EngineerProfile    `json:"profile"`
	Role      string                     `json:"role"`
	Hints     []string                   `json:"hints,omitempty"`
	Overrides *scoring.PipelineOverrides `json:"overrides,omitempty"`
}

type scoreHandlers struct {
	pipeline *scoring.Pipeline
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
}

func newScoreHandlers(pipeline *scoring.Pipeline, metrics *monitoring.Metrics, logger *monitoring.Logger) *scoreHandlers {
	return &scoreHandlers{pipeline: pipeline, metrics: metrics, logger: logger}
}

// reportError records the error on the context; the error middleware logs
// it and renders the JSON response.
func (h *scoreHandlers) reportError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func (h *scoreHandlers) scoreTrust(c *gin.Context) {
	var req trustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reportError(c, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	start := time.Now()
	result, err := scoring.ComputeTrustScore(req.Account, req.Pattern, req.Overrides)
	if err != nil {
		h.reportError(c, err)
		return
	}

	h.logger.CalculatorLogger("trust", req.Account.Username, result.TotalScore, time.Since(start))
	c.JSON(http.StatusOK, result)
}

func (h *scoreHandlers) scoreImpact(c *gin.Context) {
	var req impactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reportError(c, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	start := time.Now()
	result, err := scoring.ComputeImpactScore(req.Activity, req.Overrides)
	if err != nil {
		h.reportError(c, err)
		return
	}

	h.logger.CalculatorLogger("impact", req.Activity.Username, result.TotalScore, time.Since(start))
	c.JSON(http.StatusOK, result)
}

func (h *scoreHandlers) scoreCompatibility(c *gin.Context) {
	var req compatibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reportError(c, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if req.Role == "" {
		h.reportError(c, errors.NewValidationError("role is required"))
		return
	}

	start := time.Now()
	calc := scoring.NewCompatibilityCalculator(h.pipeline.KnowledgeBase())
	result, err := calc.Compute(req.Activity, types.RoleQuery{Role: req.Role, Hints: req.Hints})
	if err != nil {
		h.reportError(c, err)
		return
	}

	h.logger.CalculatorLogger("compatibility", req.Activity.Username, result.TotalScore, time.Since(start))
	c.JSON(http.StatusOK, result)
}

func (h *scoreHandlers) scoreMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.reportError(c, errors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if req.Role == "" {
		h.reportError(c, errors.NewValidationError("role is required"))
		return
	}

	start := time.Now()
	evaluation, err := h.pipeline.Evaluate(req.Profile, types.RoleQuery{Role: req.Role, Hints: req.Hints}, req.Overrides)
	if err != nil {
		h.reportError(c, err)
		return
	}

	h.metrics.RecordEvaluation(req.Role)
	h.logger.EvaluationLogger(
		req.Profile.Account.Username,
		req.Role,
		evaluation.Match.TotalMatchScore,
		evaluation.Match.MatchLevel,
		time.Since(start),
	)
	c.JSON(http.StatusOK, evaluation)
}

func (h *scoreHandlers) listRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"roles":     h.pipeline.KnownRoles(),
		"knowledge": h.pipeline.KnowledgeBase(),
	})
}
