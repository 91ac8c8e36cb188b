package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/dto"
	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

type SkillHandler struct {
	skills      *service.SkillService
	evaluations *service.EvaluationService
}

func NewSkillHandler(skills *service.SkillService, evaluations *service.EvaluationService) *SkillHandler {
	return &SkillHandler{skills: skills, evaluations: evaluations}
}

func toSkillInput(req dto.SkillRequest) service.SkillInput {
	return service.SkillInput{Name: req.Name, Description: req.Description, CategoryID: req.CategoryID}
}

// ListSkills GET /skills?category_id=
func (h *SkillHandler) ListSkills(c *gin.Context) {
	categoryID, ok := queryID(c, "category_id")
	if !ok {
		return
	}

	if categoryID != nil {
		skills, err := h.skills.ListByCategory(c.Request.Context(), *categoryID)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, skills)
		return
	}

	skills, err := h.skills.ListSkills(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, skills)
}

// CreateSkill POST /skills
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req dto.SkillRequest
	if !bindJSON(c, &req) {
		return
	}

	skill, err := h.skills.CreateSkill(c.Request.Context(), toSkillInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, skill)
}

// GetSkill GET /skills/:id
func (h *SkillHandler) GetSkill(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	skill, err := h.skills.GetSkill(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, skill)
}

// UpdateSkill PUT /skills/:id
func (h *SkillHandler) UpdateSkill(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.SkillRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.skills.UpdateSkill(c.Request.Context(), id, toSkillInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, updated, "навык не найден", dto.UpdatedResponse{Updated: true})
}

// DeleteSkill DELETE /skills/:id
func (h *SkillHandler) DeleteSkill(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.skills.DeleteSkill(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, deleted, "навык не найден", nil)
}

// SetTarget PUT /skills/:id/target
func (h *SkillHandler) SetTarget(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.TargetRequest
	if !bindJSON(c, &req) {
		return
	}

	target, err := h.evaluations.SetTarget(c.Request.Context(), id, *req.Level)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, target)
}

// ClearTarget DELETE /skills/:id/target
func (h *SkillHandler) ClearTarget(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.evaluations.ClearTarget(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, deleted, "цель навыка не задана", nil)
}
