package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/skillmatrix/skill-matrix/internal/domain/repository"
	"github.com/skillmatrix/skill-matrix/internal/logger"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
	"github.com/skillmatrix/skill-matrix/internal/validation"
)

// SkillInput поля навыка для создания и обновления.
type SkillInput struct {
	Name        string
	Description string
	CategoryID  int64
}

type SkillService struct {
	skills   repository.SkillRepository
	notifier Notifier
}

func NewSkillService(skills repository.SkillRepository, notifier Notifier) *SkillService {
	return &SkillService{skills: skills, notifier: notifier}
}

func validateSkillInput(input SkillInput) error {
	if err := validation.ValidateName("название навыка", input.Name); err != nil {
		return err
	}
	if err := validation.ValidateDescription(input.Description); err != nil {
		return err
	}
	return validation.ValidateID("category_id", input.CategoryID)
}

// CreateSkill создаёт навык. Название уникально в пределах категории.
func (s *SkillService) CreateSkill(ctx context.Context, input SkillInput) (*models.Skill, error) {
	if err := validateSkillInput(input); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		Name:        validation.NormalizeName(input.Name),
		Description: input.Description,
		CategoryID:  input.CategoryID,
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"skill_id":    skill.ID,
		"name":        skill.Name,
		"category_id": skill.CategoryID,
	}).Info("навык создан")
	publish(s.notifier, models.EntitySkill, models.ActionCreated, skill.ID)
	return skill, nil
}

// GetSkill возвращает навык или NotFound.
func (s *SkillService) GetSkill(ctx context.Context, id int64) (*models.Skill, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, apperror.ErrSkillNotFound
	}
	return skill, nil
}

func (s *SkillService) ListSkills(ctx context.Context) ([]models.Skill, error) {
	return s.skills.List(ctx)
}

func (s *SkillService) ListByCategory(ctx context.Context, categoryID int64) ([]models.Skill, error) {
	return s.skills.ListByCategory(ctx, categoryID)
}

// ResolveSkill находит навык по имени в категории или NotFound.
func (s *SkillService) ResolveSkill(ctx context.Context, categoryID int64, name string) (*models.Skill, error) {
	find := func(ctx context.Context, name string) (*models.Skill, error) {
		return s.skills.GetByName(ctx, categoryID, name)
	}
	return repository.ResolveByName(ctx, find, validation.NormalizeName(name), apperror.ErrSkillNotFound)
}

// EnsureSkill возвращает навык категории по имени, создавая его при отсутствии.
func (s *SkillService) EnsureSkill(ctx context.Context, categoryID int64, name string) (*models.Skill, bool, error) {
	skill, err := s.ResolveSkill(ctx, categoryID, name)
	if err == nil {
		return skill, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, err
	}
	skill, err = s.CreateSkill(ctx, SkillInput{Name: name, CategoryID: categoryID})
	if err != nil {
		return nil, false, err
	}
	return skill, true, nil
}

// RenameSkill меняет только название навыка.
func (s *SkillService) RenameSkill(ctx context.Context, id int64, name string) (bool, error) {
	skill, err := s.skills.GetByID(ctx, id)
	if err != nil || skill == nil {
		return false, err
	}
	return s.UpdateSkill(ctx, id, SkillInput{Name: name, Description: skill.Description, CategoryID: skill.CategoryID})
}

// UpdateSkill сохраняет навык, в том числе перенос в другую категорию.
func (s *SkillService) UpdateSkill(ctx context.Context, id int64, input SkillInput) (bool, error) {
	if err := validateSkillInput(input); err != nil {
		return false, err
	}

	updated, err := s.skills.Update(ctx, &models.Skill{
		ID:          id,
		Name:        validation.NormalizeName(input.Name),
		Description: input.Description,
		CategoryID:  input.CategoryID,
	})
	if err != nil || !updated {
		return updated, err
	}

	logger.Log.WithField("skill_id", id).Info("навык обновлён")
	publish(s.notifier, models.EntitySkill, models.ActionUpdated, id)
	return true, nil
}

// DeleteSkill удаляет навык вместе с целью и оценками.
func (s *SkillService) DeleteSkill(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.skills.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	logger.Log.WithField("skill_id", id).Info("навык удалён")
	publish(s.notifier, models.EntitySkill, models.ActionDeleted, id)
	return true, nil
}
