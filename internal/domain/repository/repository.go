package repository

import (
	"context"

	"github.com/skillmatrix/skill-matrix/internal/models"
)

// Repository общий контракт хранения сущности с целочисленным id.
// Get возвращает nil, nil для отсутствующей записи; Update и Delete
// сообщают через bool, была ли затронута строка.
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context) ([]T, error)
	Update(ctx context.Context, entity *T) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type GroupRepository interface {
	Repository[models.Group]
	GetByName(ctx context.Context, name string) (*models.Group, error)
	Stats(ctx context.Context, groupID int64) (*models.GroupStats, error)
}

type UserRepository interface {
	Repository[models.User]
	GetByName(ctx context.Context, groupID *int64, name string) (*models.User, error)
	ListFiltered(ctx context.Context, filter models.UserFilter) ([]models.User, error)
}

type CategoryRepository interface {
	Repository[models.Category]
	GetByName(ctx context.Context, parentID *int64, name string) (*models.Category, error)
	ListChildren(ctx context.Context, parentID *int64) ([]models.Category, error)
	ListByGroup(ctx context.Context, groupID int64) ([]models.Category, error)
	Rename(ctx context.Context, id int64, name string) (bool, error)
	SubtreeIDs(ctx context.Context, id int64) ([]int64, error)
	DeleteWithStats(ctx context.Context, id int64) (*models.CategoryDeleteResult, error)
}

type SkillRepository interface {
	Repository[models.Skill]
	GetByName(ctx context.Context, categoryID int64, name string) (*models.Skill, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]models.Skill, error)
	ListByCategories(ctx context.Context, categoryIDs []int64) ([]models.Skill, error)
}

type EvaluationRepository interface {
	Upsert(ctx context.Context, userID, skillID int64, level int) (*models.Evaluation, error)
	BulkUpsert(ctx context.Context, evaluations []models.Evaluation) (int64, error)
	Get(ctx context.Context, userID, skillID int64) (*models.Evaluation, error)
	Delete(ctx context.Context, userID, skillID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.UserEvaluation, error)
	ListRecords(ctx context.Context) ([]models.EvaluationRecord, error)
	CategoryAverage(ctx context.Context, userID int64, categoryIDs []int64) (float64, int, error)
	GroupCategoryAverage(ctx context.Context, groupID int64, categoryIDs []int64) (float64, int, error)
}

type TargetRepository interface {
	Set(ctx context.Context, skillID int64, level int) (*models.SkillTarget, error)
	Get(ctx context.Context, skillID int64) (*models.SkillTarget, error)
	Delete(ctx context.Context, skillID int64) (bool, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]models.SkillTarget, error)
	CategoryTarget(ctx context.Context, categoryIDs []int64) (float64, int, error)
}

// ResolveByName находит сущность по имени и возвращает notFound, если её нет.
// Используется операциями, адресующими сущность по имени, а не по id.
func ResolveByName[T any](ctx context.Context, find func(context.Context, string) (*T, error), name string, notFound error) (*T, error) {
	entity, err := find(ctx, name)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, notFound
	}
	return entity, nil
}

// SystemRepository сведения о хранилище и резервное копирование.
type SystemRepository interface {
	Counts(ctx context.Context) (*models.SystemCounts, error)
	Driver() string
	Schema(ctx context.Context) (string, error)
	Backup(ctx context.Context, dest string) error
}
