package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillmatrix/skill-matrix/internal/domain/valueobject"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
)

type evaluationFixture struct {
	evaluations *mockEvaluationRepo
	targets     *mockTargetRepo
	users       *mockUserRepo
	groups      *mockGroupRepo
	skills      *mockSkillRepo
	categories  *mockCategoryRepo
	notifier    *recordingNotifier
	svc         *EvaluationService
}

func newEvaluationFixture() *evaluationFixture {
	f := &evaluationFixture{
		evaluations: new(mockEvaluationRepo),
		targets:     new(mockTargetRepo),
		users:       new(mockUserRepo),
		groups:      new(mockGroupRepo),
		skills:      new(mockSkillRepo),
		categories:  new(mockCategoryRepo),
		notifier:    &recordingNotifier{},
	}
	f.svc = NewEvaluationService(EvaluationDeps{
		Evaluations: f.evaluations,
		Targets:     f.targets,
		Users:       f.users,
		Groups:      f.groups,
		Skills:      f.skills,
		Categories:  f.categories,
	}, valueobject.DefaultLevelRange, f.notifier)
	return f
}

func TestEvaluationService_SetEvaluation_Success(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()

	f.users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	f.skills.On("GetByID", ctx, int64(2)).Return(&models.Skill{ID: 2}, nil)
	f.evaluations.On("Upsert", ctx, int64(1), int64(2), 4).Return(&models.Evaluation{ID: 7, UserID: 1, SkillID: 2, Level: 4}, nil)

	ok, err := f.svc.SetEvaluation(ctx, 1, 2, 4)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, models.EntityEvaluation, f.notifier.events[0].Entity)
}

func TestEvaluationService_SetEvaluation_OutOfRange(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()

	for _, level := range []int{0, 6, -1} {
		ok, err := f.svc.SetEvaluation(ctx, 1, 2, level)
		assert.False(t, ok)
		assert.True(t, apperror.IsValidation(err), "уровень %d", level)
	}
	f.evaluations.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestEvaluationService_SetEvaluation_ZeroBasedRange(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()
	f.svc.levels = valueobject.LevelRange{Min: 0, Max: 5}

	f.users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	f.skills.On("GetByID", ctx, int64(2)).Return(&models.Skill{ID: 2}, nil)
	f.evaluations.On("Upsert", ctx, int64(1), int64(2), 0).Return(&models.Evaluation{ID: 1}, nil)

	ok, err := f.svc.SetEvaluation(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEvaluationService_SetEvaluation_MissingSkill(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()

	f.users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	f.skills.On("GetByID", ctx, int64(2)).Return(nil, nil)

	ok, err := f.svc.SetEvaluation(ctx, 1, 2, 3)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.RecordEvaluation(ctx, 1, 2, 3)
	assert.ErrorIs(t, err, apperror.ErrSkillNotFound)
}

func TestEvaluationService_ImportEvaluations_RejectsWholeBatch(t *testing.T) {
	f := newEvaluationFixture()

	_, err := f.svc.ImportEvaluations(context.Background(), []models.Evaluation{
		{UserID: 1, SkillID: 1, Level: 3},
		{UserID: 1, SkillID: 2, Level: 9},
	})
	assert.True(t, apperror.IsValidation(err))
	f.evaluations.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
}

func TestEvaluationService_ComputeCategoryAverage(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()

	f.users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	f.categories.On("SubtreeIDs", ctx, int64(3)).Return([]int64{4, 3}, nil)
	f.categories.On("SubtreeIDs", ctx, int64(9)).Return([]int64{}, nil)
	f.evaluations.On("CategoryAverage", ctx, int64(1), []int64{4, 3}).Return(0.0, 0, nil)

	avg, err := f.svc.ComputeCategoryAverage(ctx, 1, 3)
	require.NoError(t, err)
	assert.Zero(t, avg)

	_, err = f.svc.ComputeCategoryAverage(ctx, 1, 9)
	assert.ErrorIs(t, err, apperror.ErrCategoryNotFound)
}

func TestEvaluationService_UserRadar(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()

	f.users.On("GetByID", ctx, int64(1)).Return(&models.User{ID: 1}, nil)
	f.categories.On("ListChildren", ctx, (*int64)(nil)).Return([]models.Category{
		{ID: 10, Name: "Programming"},
		{ID: 20, Name: "Design"},
	}, nil)
	f.categories.On("SubtreeIDs", ctx, int64(10)).Return([]int64{11, 10}, nil)
	f.categories.On("SubtreeIDs", ctx, int64(20)).Return([]int64{20}, nil)
	f.evaluations.On("CategoryAverage", ctx, int64(1), []int64{11, 10}).Return(2.5, 2, nil)
	f.evaluations.On("CategoryAverage", ctx, int64(1), []int64{20}).Return(4.0, 1, nil)
	f.targets.On("CategoryTarget", ctx, []int64{11, 10}).Return(4.0, 2, nil)
	f.targets.On("CategoryTarget", ctx, []int64{20}).Return(0.0, 0, nil)

	axes, err := f.svc.UserRadar(ctx, 1, nil)
	require.NoError(t, err)
	require.Len(t, axes, 2)

	assert.Equal(t, models.RadarAxis{CategoryID: 10, Name: "Programming", Current: 2.5, Target: 4, Gap: 1.5}, axes[0])
	assert.Equal(t, models.RadarAxis{CategoryID: 20, Name: "Design", Current: 4, Target: 0, Gap: 0}, axes[1])
}

func TestEvaluationService_GroupRadar_UnknownGroup(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()

	f.groups.On("GetByID", ctx, int64(5)).Return(nil, nil)

	_, err := f.svc.GroupRadar(ctx, 5, nil)
	assert.ErrorIs(t, err, apperror.ErrGroupNotFound)
}

func TestEvaluationService_SetTarget(t *testing.T) {
	f := newEvaluationFixture()
	ctx := context.Background()

	f.targets.On("Set", ctx, int64(2), 5).Return(&models.SkillTarget{SkillID: 2, TargetLevel: 5}, nil)

	target, err := f.svc.SetTarget(ctx, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, target.TargetLevel)

	_, err = f.svc.SetTarget(ctx, 2, 7)
	assert.True(t, apperror.IsValidation(err))
}

func TestEvaluationService_ComputeGap(t *testing.T) {
	f := newEvaluationFixture()

	gaps := f.svc.ComputeGap(map[int64]float64{1: 2, 2: 5}, map[int64]float64{1: 4, 2: 3})
	assert.Equal(t, map[int64]float64{1: 2, 2: 0}, gaps)
}
