package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/skillmatrix/skill-matrix/internal/models"
)

type mockGroupRepo struct {
	mock.Mock
}

func (m *mockGroupRepo) Create(ctx context.Context, group *models.Group) error {
	args := m.Called(ctx, group)
	if args.Error(0) == nil {
		group.ID = 1
	}
	return args.Error(0)
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *mockGroupRepo) GetByName(ctx context.Context, name string) (*models.Group, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Group), args.Error(1)
}

func (m *mockGroupRepo) List(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Group), args.Error(1)
}

func (m *mockGroupRepo) Update(ctx context.Context, group *models.Group) (bool, error) {
	args := m.Called(ctx, group)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockGroupRepo) Stats(ctx context.Context, groupID int64) (*models.GroupStats, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GroupStats), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 10
	}
	return args.Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByName(ctx context.Context, groupID *int64, name string) (*models.User, error) {
	args := m.Called(ctx, groupID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) ListFiltered(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockCategoryRepo struct {
	mock.Mock
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	if args.Error(0) == nil {
		category.ID = 100
	}
	return args.Error(0)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryRepo) GetByName(ctx context.Context, parentID *int64, name string) (*models.Category, error) {
	args := m.Called(ctx, parentID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListChildren(ctx context.Context, parentID *int64) ([]models.Category, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryRepo) ListByGroup(ctx context.Context, groupID int64) ([]models.Category, error) {
	args := m.Called(ctx, groupID)
	return args.Get(0).([]models.Category), args.Error(1)
}

func (m *mockCategoryRepo) Rename(ctx context.Context, id int64, name string) (bool, error) {
	args := m.Called(ctx, id, name)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *models.Category) (bool, error) {
	args := m.Called(ctx, category)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockCategoryRepo) SubtreeIDs(ctx context.Context, id int64) ([]int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]int64), args.Error(1)
}

func (m *mockCategoryRepo) DeleteWithStats(ctx context.Context, id int64) (*models.CategoryDeleteResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CategoryDeleteResult), args.Error(1)
}

type mockSkillRepo struct {
	mock.Mock
}

func (m *mockSkillRepo) Create(ctx context.Context, skill *models.Skill) error {
	args := m.Called(ctx, skill)
	if args.Error(0) == nil {
		skill.ID = 1000
	}
	return args.Error(0)
}

func (m *mockSkillRepo) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *mockSkillRepo) GetByName(ctx context.Context, categoryID int64, name string) (*models.Skill, error) {
	args := m.Called(ctx, categoryID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *mockSkillRepo) List(ctx context.Context) ([]models.Skill, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *mockSkillRepo) ListByCategory(ctx context.Context, categoryID int64) ([]models.Skill, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *mockSkillRepo) ListByCategories(ctx context.Context, categoryIDs []int64) ([]models.Skill, error) {
	args := m.Called(ctx, categoryIDs)
	return args.Get(0).([]models.Skill), args.Error(1)
}

func (m *mockSkillRepo) Update(ctx context.Context, skill *models.Skill) (bool, error) {
	args := m.Called(ctx, skill)
	return args.Bool(0), args.Error(1)
}

func (m *mockSkillRepo) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockEvaluationRepo struct {
	mock.Mock
}

func (m *mockEvaluationRepo) Upsert(ctx context.Context, userID, skillID int64, level int) (*models.Evaluation, error) {
	args := m.Called(ctx, userID, skillID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Evaluation), args.Error(1)
}

func (m *mockEvaluationRepo) BulkUpsert(ctx context.Context, evaluations []models.Evaluation) (int64, error) {
	args := m.Called(ctx, evaluations)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEvaluationRepo) Get(ctx context.Context, userID, skillID int64) (*models.Evaluation, error) {
	args := m.Called(ctx, userID, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Evaluation), args.Error(1)
}

func (m *mockEvaluationRepo) Delete(ctx context.Context, userID, skillID int64) (bool, error) {
	args := m.Called(ctx, userID, skillID)
	return args.Bool(0), args.Error(1)
}

func (m *mockEvaluationRepo) ListByUser(ctx context.Context, userID int64) ([]models.UserEvaluation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.UserEvaluation), args.Error(1)
}

func (m *mockEvaluationRepo) ListRecords(ctx context.Context) ([]models.EvaluationRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.EvaluationRecord), args.Error(1)
}

func (m *mockEvaluationRepo) CategoryAverage(ctx context.Context, userID int64, categoryIDs []int64) (float64, int, error) {
	args := m.Called(ctx, userID, categoryIDs)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *mockEvaluationRepo) GroupCategoryAverage(ctx context.Context, groupID int64, categoryIDs []int64) (float64, int, error) {
	args := m.Called(ctx, groupID, categoryIDs)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

type mockTargetRepo struct {
	mock.Mock
}

func (m *mockTargetRepo) Set(ctx context.Context, skillID int64, level int) (*models.SkillTarget, error) {
	args := m.Called(ctx, skillID, level)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkillTarget), args.Error(1)
}

func (m *mockTargetRepo) Get(ctx context.Context, skillID int64) (*models.SkillTarget, error) {
	args := m.Called(ctx, skillID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SkillTarget), args.Error(1)
}

func (m *mockTargetRepo) Delete(ctx context.Context, skillID int64) (bool, error) {
	args := m.Called(ctx, skillID)
	return args.Bool(0), args.Error(1)
}

func (m *mockTargetRepo) ListByCategory(ctx context.Context, categoryID int64) ([]models.SkillTarget, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]models.SkillTarget), args.Error(1)
}

func (m *mockTargetRepo) CategoryTarget(ctx context.Context, categoryIDs []int64) (float64, int, error) {
	args := m.Called(ctx, categoryIDs)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

// recordingNotifier запоминает опубликованные события.
type recordingNotifier struct {
	events []models.ChangeEvent
}

func (n *recordingNotifier) Publish(event models.ChangeEvent) {
	n.events = append(n.events, event)
}

func int64Ptr(v int64) *int64 { return &v }

type mockSystemRepo struct {
	mock.Mock
}

func (m *mockSystemRepo) Counts(ctx context.Context) (*models.SystemCounts, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SystemCounts), args.Error(1)
}

func (m *mockSystemRepo) Driver() string {
	return m.Called().String(0)
}

func (m *mockSystemRepo) Schema(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockSystemRepo) Backup(ctx context.Context, dest string) error {
	return m.Called(ctx, dest).Error(0)
}
