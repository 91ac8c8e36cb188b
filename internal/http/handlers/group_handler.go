package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/dto"
	"github.com/skillmatrix/skill-matrix/internal/gap"
	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

type GroupHandler struct {
	groups      *service.GroupService
	users       *service.UserService
	evaluations *service.EvaluationService
}

func NewGroupHandler(groups *service.GroupService, users *service.UserService, evaluations *service.EvaluationService) *GroupHandler {
	return &GroupHandler{groups: groups, users: users, evaluations: evaluations}
}

// ListGroups GET /groups, ?name= ищет группу по названию
func (h *GroupHandler) ListGroups(c *gin.Context) {
	if name := strings.TrimSpace(c.Query("name")); name != "" {
		group, err := h.groups.GetGroupByName(c.Request.Context(), name)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, []models.Group{*group})
		return
	}

	groups, err := h.groups.ListGroups(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, groups)
}

// CreateGroup POST /groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req dto.GroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groups.CreateGroup(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, group)
}

// GetGroup GET /groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	group, err := h.groups.GetGroup(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, group)
}

// UpdateGroup PUT /groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.GroupRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.groups.UpdateGroup(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, updated, "группа не найдена", dto.UpdatedResponse{Updated: true})
}

// DeleteGroup DELETE /groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.groups.DeleteGroup(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, deleted, "группа не найдена", nil)
}

// GroupStats GET /groups/:id/stats
func (h *GroupHandler) GroupStats(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	stats, err := h.groups.Stats(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, stats)
}

// ListGroupUsers GET /groups/:id/users
func (h *GroupHandler) ListGroupUsers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, err := h.groups.GetGroup(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), models.UserFilter{GroupID: &id})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, users)
}

// GroupRadar GET /groups/:id/radar?parent_id=
func (h *GroupHandler) GroupRadar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	parentID, ok := queryID(c, "parent_id")
	if !ok {
		return
	}

	axes, err := h.evaluations.GroupRadar(c.Request.Context(), id, parentID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.RadarResponse{Axes: axes, TotalGap: gap.TotalGap(axes)})
}
