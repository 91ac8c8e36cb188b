package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillmatrix/skill-matrix/internal/dto"
	"github.com/skillmatrix/skill-matrix/internal/http/response"
	"github.com/skillmatrix/skill-matrix/internal/service"
)

type CategoryHandler struct {
	categories *service.CategoryService
	skills     *service.SkillService
}

func NewCategoryHandler(categories *service.CategoryService, skills *service.SkillService) *CategoryHandler {
	return &CategoryHandler{categories: categories, skills: skills}
}

func toCategoryInput(req dto.CategoryRequest) service.CategoryInput {
	return service.CategoryInput{
		Name:         req.Name,
		Description:  req.Description,
		ParentID:     req.ParentID,
		GroupID:      req.GroupID,
		DisplayOrder: req.DisplayOrder,
	}
}

// ListCategories GET /categories?group_id=
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	groupID, ok := queryID(c, "group_id")
	if !ok {
		return
	}

	if groupID != nil {
		categories, err := h.categories.ListByGroup(c.Request.Context(), *groupID)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, categories)
		return
	}

	categories, err := h.categories.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, categories)
}

// Tree GET /categories/tree
func (h *CategoryHandler) Tree(c *gin.Context) {
	tree, err := h.categories.Tree(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, tree)
}

// ListRoots GET /categories/roots
func (h *CategoryHandler) ListRoots(c *gin.Context) {
	roots, err := h.categories.ListChildren(c.Request.Context(), nil)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, roots)
}

// CreateCategory POST /categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := h.categories.CreateCategory(c.Request.Context(), toCategoryInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, category)
}

// GetCategory GET /categories/:id
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	category, err := h.categories.GetCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	path, err := h.categories.Path(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, dto.CategoryPathResponse{Category: category, Path: path})
}

// ListChildren GET /categories/:id/children
func (h *CategoryHandler) ListChildren(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	children, err := h.categories.ListChildren(c.Request.Context(), &id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, children)
}

// ListSkills GET /categories/:id/skills
func (h *CategoryHandler) ListSkills(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if _, err := h.categories.GetCategory(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	skills, err := h.skills.ListByCategory(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, skills)
}

// UpdateCategory PUT /categories/:id
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	updated, err := h.categories.UpdateCategory(c.Request.Context(), id, toCategoryInput(req))
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, updated, "категория не найдена", dto.UpdatedResponse{Updated: true})
}

// MoveCategory PUT /categories/:id/parent
func (h *CategoryHandler) MoveCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req dto.MoveCategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	moved, err := h.categories.MoveCategory(c.Request.Context(), id, req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, moved, "категория не найдена", dto.UpdatedResponse{Updated: true})
}

// DeleteCategory DELETE /categories/:id, удаляет поддерево и возвращает счётчики
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.categories.DeleteCategoryWithStats(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	respondChanged(c, result != nil, "категория не найдена", result)
}
