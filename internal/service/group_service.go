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

type GroupService struct {
	repo     repository.GroupRepository
	notifier Notifier
}

func NewGroupService(repo repository.GroupRepository, notifier Notifier) *GroupService {
	return &GroupService{repo: repo, notifier: notifier}
}

// CreateGroup создаёт группу с уникальным названием.
func (s *GroupService) CreateGroup(ctx context.Context, name, description string) (*models.Group, error) {
	if err := validation.ValidateName("название группы", name); err != nil {
		return nil, err
	}
	if err := validation.ValidateDescription(description); err != nil {
		return nil, err
	}

	group := &models.Group{Name: validation.NormalizeName(name), Description: description}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"group_id": group.ID, "name": group.Name}).Info("группа создана")
	publish(s.notifier, models.EntityGroup, models.ActionCreated, group.ID)
	return group, nil
}

// GetGroup возвращает группу или NotFound.
func (s *GroupService) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, apperror.ErrGroupNotFound
	}
	return group, nil
}

// GetGroupByName возвращает группу по названию или NotFound.
func (s *GroupService) GetGroupByName(ctx context.Context, name string) (*models.Group, error) {
	return repository.ResolveByName(ctx, s.repo.GetByName, validation.NormalizeName(name), apperror.ErrGroupNotFound)
}

func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.repo.List(ctx)
}

// UpdateGroup меняет название и описание. false - группы нет.
func (s *GroupService) UpdateGroup(ctx context.Context, id int64, name, description string) (bool, error) {
	if err := validation.ValidateName("название группы", name); err != nil {
		return false, err
	}
	if err := validation.ValidateDescription(description); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, &models.Group{ID: id, Name: validation.NormalizeName(name), Description: description})
	if err != nil || !updated {
		return updated, err
	}

	logger.Log.WithField("group_id", id).Info("группа обновлена")
	publish(s.notifier, models.EntityGroup, models.ActionUpdated, id)
	return true, nil
}

// DeleteGroup удаляет группу, оставляя её участников без группы.
func (s *GroupService) DeleteGroup(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	logger.Log.WithField("group_id", id).Info("группа удалена")
	publish(s.notifier, models.EntityGroup, models.ActionDeleted, id)
	return true, nil
}

// DeleteGroupByName находит группу по названию и удаляет её по id.
func (s *GroupService) DeleteGroupByName(ctx context.Context, name string) (bool, error) {
	group, err := repository.ResolveByName(ctx, s.repo.GetByName, validation.NormalizeName(name), apperror.ErrGroupNotFound)
	if err != nil {
		if apperror.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return s.DeleteGroup(ctx, group.ID)
}

// Stats возвращает сводку по группе.
func (s *GroupService) Stats(ctx context.Context, id int64) (*models.GroupStats, error) {
	if _, err := s.GetGroup(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Stats(ctx, id)
}

// EnsureGroup возвращает группу по названию, создавая её при отсутствии.
func (s *GroupService) EnsureGroup(ctx context.Context, name string) (*models.Group, bool, error) {
	group, err := s.GetGroupByName(ctx, name)
	if err == nil {
		return group, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, err
	}
	group, err = s.CreateGroup(ctx, name, "")
	if err != nil {
		return nil, false, err
	}
	return group, true, nil
}
