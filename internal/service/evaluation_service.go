package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/skillmatrix/skill-matrix/internal/domain/repository"
	"github.com/skillmatrix/skill-matrix/internal/domain/valueobject"
	"github.com/skillmatrix/skill-matrix/internal/gap"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
	"github.com/skillmatrix/skill-matrix/internal/validation"
)

// EvaluationDeps репозитории, нужные сервису оценок.
type EvaluationDeps struct {
	Evaluations repository.EvaluationRepository
	Targets     repository.TargetRepository
	Users       repository.UserRepository
	Groups      repository.GroupRepository
	Skills      repository.SkillRepository
	Categories  repository.CategoryRepository
}

// EvaluationService ведёт оценки и целевые уровни и считает разрывы для диаграммы.
type EvaluationService struct {
	deps     EvaluationDeps
	levels   valueobject.LevelRange
	notifier Notifier
}

func NewEvaluationService(deps EvaluationDeps, levels valueobject.LevelRange, notifier Notifier) *EvaluationService {
	return &EvaluationService{deps: deps, levels: levels, notifier: notifier}
}

// Levels возвращает допустимый диапазон уровней.
func (s *EvaluationService) Levels() valueobject.LevelRange {
	return s.levels
}

// SetEvaluation записывает уровень пользователя по навыку.
// false - пользователя или навыка нет.
func (s *EvaluationService) SetEvaluation(ctx context.Context, userID, skillID int64, level int) (bool, error) {
	evaluation, err := s.RecordEvaluation(ctx, userID, skillID, level)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return evaluation != nil, nil
}

// RecordEvaluation как SetEvaluation, но возвращает сохранённую оценку
// и NotFound для отсутствующего пользователя или навыка.
func (s *EvaluationService) RecordEvaluation(ctx context.Context, userID, skillID int64, level int) (*models.Evaluation, error) {
	if err := s.levels.Validate(level); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("user_id", userID); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("skill_id", skillID); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.requireSkill(ctx, skillID); err != nil {
		return nil, err
	}

	evaluation, err := s.deps.Evaluations.Upsert(ctx, userID, skillID, level)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":  userID,
		"skill_id": skillID,
		"level":    level,
	}).Info("оценка сохранена")
	publish(s.notifier, models.EntityEvaluation, models.ActionUpdated, evaluation.ID)
	return evaluation, nil
}

// ImportEvaluations записывает набор оценок одной транзакцией.
// Весь набор отклоняется, если хотя бы один уровень вне диапазона.
func (s *EvaluationService) ImportEvaluations(ctx context.Context, evaluations []models.Evaluation) (int64, error) {
	for _, e := range evaluations {
		if err := s.levels.Validate(e.Level); err != nil {
			return 0, err
		}
	}

	n, err := s.deps.Evaluations.BulkUpsert(ctx, evaluations)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		logger.Log.WithField("count", n).Info("оценки импортированы")
		publish(s.notifier, models.EntityEvaluation, models.ActionUpdated, 0)
	}
	return n, nil
}

// DeleteEvaluation удаляет оценку пары.
func (s *EvaluationService) DeleteEvaluation(ctx context.Context, userID, skillID int64) (bool, error) {
	deleted, err := s.deps.Evaluations.Delete(ctx, userID, skillID)
	if err != nil || !deleted {
		return deleted, err
	}
	logger.Log.WithFields(logrus.Fields{"user_id": userID, "skill_id": skillID}).Info("оценка удалена")
	publish(s.notifier, models.EntityEvaluation, models.ActionDeleted, 0)
	return true, nil
}

// GetUserEvaluations возвращает оценки пользователя с навыком и категорией.
func (s *EvaluationService) GetUserEvaluations(ctx context.Context, userID int64) ([]models.UserEvaluation, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.deps.Evaluations.ListByUser(ctx, userID)
}

// ComputeCategoryAverage средний уровень пользователя по навыкам поддерева категории.
// Без оценок возвращает 0.
func (s *EvaluationService) ComputeCategoryAverage(ctx context.Context, userID, categoryID int64) (float64, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return 0, err
	}
	ids, err := s.subtree(ctx, categoryID)
	if err != nil {
		return 0, err
	}
	avg, _, err := s.deps.Evaluations.CategoryAverage(ctx, userID, ids)
	return avg, err
}

// SetTarget задаёт целевой уровень навыка.
func (s *EvaluationService) SetTarget(ctx context.Context, skillID int64, level int) (*models.SkillTarget, error) {
	if err := s.levels.Validate(level); err != nil {
		return nil, err
	}
	if err := validation.ValidateID("skill_id", skillID); err != nil {
		return nil, err
	}

	target, err := s.deps.Targets.Set(ctx, skillID, level)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"skill_id": skillID, "target_level": level}).Info("цель навыка задана")
	publish(s.notifier, models.EntityTarget, models.ActionUpdated, skillID)
	return target, nil
}

// ClearTarget снимает цель навыка.
func (s *EvaluationService) ClearTarget(ctx context.Context, skillID int64) (bool, error) {
	deleted, err := s.deps.Targets.Delete(ctx, skillID)
	if err != nil || !deleted {
		return deleted, err
	}
	publish(s.notifier, models.EntityTarget, models.ActionDeleted, skillID)
	return true, nil
}

// ComputeGap разрыв между текущими и целевыми уровнями по категориям.
func (s *EvaluationService) ComputeGap(current, target map[int64]float64) map[int64]float64 {
	return gap.ComputeGap(current, target)
}

// UserRadar оси диаграммы пользователя: подкатегории parentID или корни при nil.
func (s *EvaluationService) UserRadar(ctx context.Context, userID int64, parentID *int64) ([]models.RadarAxis, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.radar(ctx, parentID, func(ctx context.Context, ids []int64) (float64, int, error) {
		return s.deps.Evaluations.CategoryAverage(ctx, userID, ids)
	})
}

// GroupRadar оси диаграммы группы по средним уровням её участников.
func (s *EvaluationService) GroupRadar(ctx context.Context, groupID int64, parentID *int64) ([]models.RadarAxis, error) {
	group, err := s.deps.Groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.ErrGroupNotFound
	}
	return s.radar(ctx, parentID, func(ctx context.Context, ids []int64) (float64, int, error) {
		return s.deps.Evaluations.GroupCategoryAverage(ctx, groupID, ids)
	})
}

type averageFunc func(ctx context.Context, categoryIDs []int64) (float64, int, error)

func (s *EvaluationService) radar(ctx context.Context, parentID *int64, average averageFunc) ([]models.RadarAxis, error) {
	if parentID != nil {
		if err := s.requireCategory(ctx, *parentID); err != nil {
			return nil, err
		}
	}
	axes, err := s.deps.Categories.ListChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}

	current := make(map[int64]float64, len(axes))
	target := make(map[int64]float64, len(axes))
	for _, axis := range axes {
		ids, err := s.deps.Categories.SubtreeIDs(ctx, axis.ID)
		if err != nil {
			return nil, err
		}
		if current[axis.ID], _, err = average(ctx, ids); err != nil {
			return nil, err
		}
		avg, count, err := s.deps.Targets.CategoryTarget(ctx, ids)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			target[axis.ID] = avg
		}
	}
	return gap.BuildRadar(axes, current, target), nil
}

func (s *EvaluationService) subtree(ctx context.Context, categoryID int64) ([]int64, error) {
	ids, err := s.deps.Categories.SubtreeIDs(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, apperror.ErrCategoryNotFound
	}
	return ids, nil
}

func (s *EvaluationService) requireUser(ctx context.Context, id int64) error {
	user, err := s.deps.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrUserNotFound
	}
	return nil
}

func (s *EvaluationService) requireSkill(ctx context.Context, id int64) error {
	skill, err := s.deps.Skills.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if skill == nil {
		return apperror.ErrSkillNotFound
	}
	return nil
}

func (s *EvaluationService) requireCategory(ctx context.Context, id int64) error {
	category, err := s.deps.Categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.ErrCategoryNotFound
	}
	return nil
}
