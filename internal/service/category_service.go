package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/skillmatrix/skill-matrix/internal/domain/repository"
	"github.com/skillmatrix/skill-matrix/internal/hierarchy"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
	"github.com/skillmatrix/skill-matrix/internal/validation"
)

// CategoryInput поля категории для создания и обновления.
type CategoryInput struct {
	Name         string
	Description  string
	ParentID     *int64
	GroupID      *int64
	DisplayOrder int
}

// CategoryService управляет деревом категорий.
type CategoryService struct {
	categories repository.CategoryRepository
	skills     repository.SkillRepository
	notifier   Notifier
}

func NewCategoryService(categories repository.CategoryRepository, skills repository.SkillRepository, notifier Notifier) *CategoryService {
	return &CategoryService{categories: categories, skills: skills, notifier: notifier}
}

func validateCategoryInput(input CategoryInput) error {
	if err := validation.ValidateCategoryName(input.Name); err != nil {
		return err
	}
	if err := validation.ValidateDescription(input.Description); err != nil {
		return err
	}
	if err := validation.ValidateOptionalID("parent_id", input.ParentID); err != nil {
		return err
	}
	return validation.ValidateOptionalID("group_id", input.GroupID)
}

// CreateCategory создаёт корневую категорию или подкатегорию существующего родителя.
func (s *CategoryService) CreateCategory(ctx context.Context, input CategoryInput) (*models.Category, error) {
	if err := validateCategoryInput(input); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:         validation.NormalizeName(input.Name),
		Description:  input.Description,
		ParentID:     input.ParentID,
		GroupID:      input.GroupID,
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"category_id": category.ID,
		"name":        category.Name,
		"parent_id":   category.ParentID,
	}).Info("категория создана")
	publish(s.notifier, models.EntityCategory, models.ActionCreated, category.ID)
	return category, nil
}

// GetCategory возвращает категорию или NotFound.
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

// ListChildren возвращает подкатегории parentID; nil - корневые категории.
func (s *CategoryService) ListChildren(ctx context.Context, parentID *int64) ([]models.Category, error) {
	if parentID != nil {
		if _, err := s.GetCategory(ctx, *parentID); err != nil {
			return nil, err
		}
	}
	return s.categories.ListChildren(ctx, parentID)
}

func (s *CategoryService) ListByGroup(ctx context.Context, groupID int64) ([]models.Category, error) {
	return s.categories.ListByGroup(ctx, groupID)
}

// RenameCategory меняет название. Совпадение с соседом даёт Duplicate.
func (s *CategoryService) RenameCategory(ctx context.Context, id int64, name string) (bool, error) {
	if err := validation.ValidateCategoryName(name); err != nil {
		return false, err
	}

	renamed, err := s.categories.Rename(ctx, id, validation.NormalizeName(name))
	if err != nil || !renamed {
		return renamed, err
	}

	logger.Log.WithFields(logrus.Fields{"category_id": id, "name": name}).Info("категория переименована")
	publish(s.notifier, models.EntityCategory, models.ActionUpdated, id)
	return true, nil
}

// UpdateCategory сохраняет все поля категории, включая родителя.
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, input CategoryInput) (bool, error) {
	if err := validateCategoryInput(input); err != nil {
		return false, err
	}
	if input.ParentID != nil && *input.ParentID == id {
		return false, apperror.ErrCategoryCycle
	}

	updated, err := s.categories.Update(ctx, &models.Category{
		ID:           id,
		Name:         validation.NormalizeName(input.Name),
		Description:  input.Description,
		ParentID:     input.ParentID,
		GroupID:      input.GroupID,
		DisplayOrder: input.DisplayOrder,
	})
	if err != nil || !updated {
		return updated, err
	}

	logger.Log.WithField("category_id", id).Info("категория обновлена")
	publish(s.notifier, models.EntityCategory, models.ActionUpdated, id)
	return true, nil
}

// MoveCategory переносит категорию под нового родителя (nil - в корень).
// Перенос внутрь собственного поддерева отклоняется.
func (s *CategoryService) MoveCategory(ctx context.Context, id int64, newParentID *int64) (bool, error) {
	if err := validation.ValidateOptionalID("parent_id", newParentID); err != nil {
		return false, err
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil || category == nil {
		return false, err
	}

	return s.UpdateCategory(ctx, id, CategoryInput{
		Name:         category.Name,
		Description:  category.Description,
		ParentID:     newParentID,
		GroupID:      category.GroupID,
		DisplayOrder: category.DisplayOrder,
	})
}

// DeleteCategory удаляет категорию с поддеревом, навыками и оценками.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	result, err := s.DeleteCategoryWithStats(ctx, id)
	return result != nil, err
}

// DeleteCategoryWithStats как DeleteCategory, но возвращает число удалённых строк.
func (s *CategoryService) DeleteCategoryWithStats(ctx context.Context, id int64) (*models.CategoryDeleteResult, error) {
	result, err := s.categories.DeleteWithStats(ctx, id)
	if err != nil || result == nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"category_id": id,
		"categories":  result.Categories,
		"skills":      result.Skills,
		"evaluations": result.Evaluations,
	}).Info("категория удалена")
	publish(s.notifier, models.EntityCategory, models.ActionDeleted, id)
	return result, nil
}

// Tree возвращает лес категорий с навыками в узлах.
func (s *CategoryService) Tree(ctx context.Context) ([]*models.CategoryNode, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	roots, err := hierarchy.BuildTree(categories)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "дерево категорий повреждено")
	}

	skills, err := s.skills.List(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[int64][]models.Skill)
	for _, skill := range skills {
		byCategory[skill.CategoryID] = append(byCategory[skill.CategoryID], skill)
	}
	hierarchy.Walk(roots, func(n *models.CategoryNode, _ int) bool {
		n.Skills = byCategory[n.ID]
		return true
	})
	return roots, nil
}

// Path возвращает путь "Родитель/Потомок" для категории.
func (s *CategoryService) Path(ctx context.Context, id int64) (string, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return "", err
	}
	chain, err := hierarchy.Path(categories, id)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeInternal, "дерево категорий повреждено")
	}
	if len(chain) == 0 {
		return "", apperror.ErrCategoryNotFound
	}
	return JoinPath(chain), nil
}

// EnsurePath находит или создаёт цепочку категорий по пути "A/B/C".
// Возвращает последнюю категорию и число созданных.
func (s *CategoryService) EnsurePath(ctx context.Context, path string) (*models.Category, int, error) {
	names := SplitPath(path)
	if len(names) == 0 {
		return nil, 0, apperror.Validation("путь категории пуст")
	}

	var (
		parentID *int64
		current  *models.Category
		created  int
	)
	for _, name := range names {
		if err := validation.ValidateCategoryName(name); err != nil {
			return nil, created, err
		}
		existing, err := s.categories.GetByName(ctx, parentID, name)
		if err != nil {
			return nil, created, err
		}
		if existing == nil {
			existing, err = s.CreateCategory(ctx, CategoryInput{Name: name, ParentID: parentID})
			if err != nil {
				return nil, created, err
			}
			created++
		}
		current = existing
		parentID = &existing.ID
	}
	return current, created, nil
}

// SplitPath разбивает путь категорий на нормализованные имена, пропуская пустые части.
func SplitPath(path string) []string {
	var names []string
	for _, part := range strings.Split(path, validation.PathSeparator) {
		if name := validation.NormalizeName(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// JoinPath склеивает цепочку категорий в путь.
func JoinPath(chain []models.Category) string {
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	return strings.Join(names, validation.PathSeparator)
}
