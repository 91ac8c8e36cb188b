package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/dto"
	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

type EvaluationHandler struct {
	evaluations *service.EvaluationService
}

func NewEvaluationHandler(evaluations *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// Levels GET /levels
func (h *EvaluationHandler) Levels(c *gin.Context) {
	levels := h.evaluations.Levels()
	response.Success(c, dto.LevelsResponse{Min: levels.Min, Max: levels.Max})
}

// SetEvaluation PUT /evaluations
func (h *EvaluationHandler) SetEvaluation(c *gin.Context) {
	var req dto.EvaluationRequest
	if !bindJSON(c, &req) {
		return
	}

	evaluation, err := h.evaluations.RecordEvaluation(c.Request.Context(), req.UserID, req.SkillID, *req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, evaluation)
}

// BulkSetEvaluations POST /evaluations/bulk
func (h *EvaluationHandler) BulkSetEvaluations(c *gin.Context) {
	var req dto.BulkEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}

	evaluations := make([]models.Evaluation, 0, len(req.Evaluations))
	for _, e := range req.Evaluations {
		evaluations = append(evaluations, models.Evaluation{UserID: e.UserID, SkillID: e.SkillID, Level: *e.Level})
	}

	n, err := h.evaluations.ImportEvaluations(c.Request.Context(), evaluations)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"saved": n})
}

// ComputeGap POST /gap
func (h *EvaluationHandler) ComputeGap(c *gin.Context) {
	var req dto.GapRequest
	if !bindJSON(c, &req) {
		return
	}

	current, target, err := req.Parse()
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	response.Success(c, dto.NewGapResponse(h.evaluations.ComputeGap(current, target)))
}
