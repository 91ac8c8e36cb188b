package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/dto"
	"github.com/skillmatrix/skill-matrix/internal/gap"
	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

type UserHandler struct {
	users       *service.UserService
	evaluations *service.EvaluationService
}

func NewUserHandler(users *service.UserService, evaluations *service.EvaluationService) *UserHandler {
	return &UserHandler{users: users, evaluations: evaluations}
}

func toUserInput(req dto.UserRequest) service.UserInput {
	return service.UserInput{Name: req.Name, EmployeeID: req.EmployeeID, GroupID: req.GroupID}
}

// ListUsers GET /users?group_id=&ungrouped=true
func (h *UserHandler) ListUsers(c *gin.Context) {
	groupID, ok := queryID(c, "group_id")
	if !ok {
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), models.UserFilter{
		GroupID:   groupID,
		Ungrouped: c.Query("ungrouped") == "true",
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, users)
}

// CreateUser POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.UserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), toUserInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, user)
}

// GetUser GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateUser PUT /users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.UserRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.users.UpdateUser(c.Request.Context(), id, toUserInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, updated, "пользователь не найден", dto.UpdatedResponse{Updated: true})
}

// DeleteUser DELETE /users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	deleted, err := h.users.DeleteUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, deleted, "пользователь не найден", nil)
}

// ListEvaluations GET /users/:id/evaluations
func (h *UserHandler) ListEvaluations(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	evaluations, err := h.evaluations.GetUserEvaluations(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, evaluations)
}

// DeleteEvaluation DELETE /users/:id/evaluations/:skillId
func (h *UserHandler) DeleteEvaluation(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	skillID, ok := paramID(c, "skillId")
	if !ok {
		return
	}

	deleted, err := h.evaluations.DeleteEvaluation(c.Request.Context(), userID, skillID)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, deleted, "оценка не найдена", nil)
}

// CategoryAverage GET /users/:id/categories/:categoryId/average
func (h *UserHandler) CategoryAverage(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		return
	}

	avg, err := h.evaluations.ComputeCategoryAverage(c.Request.Context(), userID, categoryID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.CategoryAverageResponse{UserID: userID, CategoryID: categoryID, Average: avg})
}

// UserRadar GET /users/:id/radar?parent_id=
func (h *UserHandler) UserRadar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	parentID, ok := queryID(c, "parent_id")
	if !ok {
		return
	}

	axes, err := h.evaluations.UserRadar(c.Request.Context(), id, parentID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.RadarResponse{Axes: axes, TotalGap: gap.TotalGap(axes)})
}
