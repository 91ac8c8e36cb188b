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

// UserInput поля пользователя для создания и обновления.
type UserInput struct {
	Name       string
	EmployeeID *string
	GroupID    *int64
}

type UserService struct {
	users    repository.UserRepository
	groups   repository.GroupRepository
	notifier Notifier
}

func NewUserService(users repository.UserRepository, groups repository.GroupRepository, notifier Notifier) *UserService {
	return &UserService{users: users, groups: groups, notifier: notifier}
}

func (s *UserService) validate(ctx context.Context, input UserInput) error {
	if err := validation.ValidateName("имя пользователя", input.Name); err != nil {
		return err
	}
	if err := validation.ValidateEmployeeID(input.EmployeeID); err != nil {
		return err
	}
	if err := validation.ValidateOptionalID("group_id", input.GroupID); err != nil {
		return err
	}
	if input.GroupID != nil {
		group, err := s.groups.GetByID(ctx, *input.GroupID)
		if err != nil {
			return err
		}
		if group == nil {
			return apperror.ErrGroupNotFound
		}
	}
	return nil
}

// CreateUser создаёт пользователя, при необходимости в существующей группе.
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*models.User, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	user := &models.User{
		Name:       validation.NormalizeName(input.Name),
		EmployeeID: input.EmployeeID,
		GroupID:    input.GroupID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"user_id": user.ID, "name": user.Name}).Info("пользователь создан")
	publish(s.notifier, models.EntityUser, models.ActionCreated, user.ID)
	return user, nil
}

// GetUser возвращает пользователя или NotFound.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	return s.users.ListFiltered(ctx, filter)
}

// UpdateUser сохраняет все поля пользователя. false - пользователя нет.
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UserInput) (bool, error) {
	if err := s.validate(ctx, input); err != nil {
		return false, err
	}

	updated, err := s.users.Update(ctx, &models.User{
		ID:         id,
		Name:       validation.NormalizeName(input.Name),
		EmployeeID: input.EmployeeID,
		GroupID:    input.GroupID,
	})
	if err != nil || !updated {
		return updated, err
	}

	logger.Log.WithField("user_id", id).Info("пользователь обновлён")
	publish(s.notifier, models.EntityUser, models.ActionUpdated, id)
	return true, nil
}

// DeleteUser удаляет пользователя вместе с оценками.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	logger.Log.WithField("user_id", id).Info("пользователь удалён")
	publish(s.notifier, models.EntityUser, models.ActionDeleted, id)
	return true, nil
}

// EnsureUser находит пользователя по имени в группе (nil - без группы), создавая его при отсутствии.
func (s *UserService) EnsureUser(ctx context.Context, groupID *int64, name string) (*models.User, bool, error) {
	user, err := s.users.GetByName(ctx, groupID, validation.NormalizeName(name))
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}
	user, err = s.CreateUser(ctx, UserInput{Name: name, GroupID: groupID})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}
