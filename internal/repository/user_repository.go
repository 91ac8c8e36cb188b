package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/skillmatrix/skill-matrix/internal/clock"
	"github.com/skillmatrix/skill-matrix/internal/db"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
	"github.com/skillmatrix/skill-matrix/internal/repository/common"
)

const userColumns = `id, name, employee_id, group_id, created_at, updated_at`

type UserRepository struct {
	store *db.Store
	clock clock.Clock
}

func NewUserRepository(store *db.Store, clk clock.Clock) *UserRepository {
	return &UserRepository{store: store, clock: clk}
}

func userWriteError(err error) error {
	if db.IsUniqueViolation(err) {
		return apperror.Duplicate("пользователь с таким табельным номером уже существует", err)
	}
	return err
}

// Create создаёт пользователя. Группа необязательна.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := r.clock.Now()
	return r.store.WithTx(ctx, "user.create", func(tx *sqlx.Tx) error {
		id, err := common.InsertReturningID(ctx, tx, `
			INSERT INTO users (name, employee_id, group_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, user.Name, common.Nullable(user.EmployeeID), common.Nullable(user.GroupID), now, now)
		if err != nil {
			return userWriteError(err)
		}
		user.ID, user.CreatedAt, user.UpdatedAt = id, now, now
		return nil
	})
}

// GetByID возвращает пользователя по ID или nil.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return db.InTx(ctx, r.store, "user.get", func(tx *sqlx.Tx) (*models.User, error) {
		return common.GetByID[models.User](ctx, tx, "users", userColumns, id)
	})
}

// GetByName ищет пользователя по имени внутри группы (nil - без группы).
// Имена не уникальны, поэтому возвращается самый ранний.
func (r *UserRepository) GetByName(ctx context.Context, groupID *int64, name string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = ?`
	args := []interface{}{name}
	if groupID != nil {
		query += ` AND group_id = ?`
		args = append(args, *groupID)
	} else {
		query += ` AND group_id IS NULL`
	}
	query += ` ORDER BY id LIMIT 1`

	return db.InTx(ctx, r.store, "user.get_by_name", func(tx *sqlx.Tx) (*models.User, error) {
		return common.GetOne[models.User](ctx, tx, query, args...)
	})
}

// List возвращает всех пользователей.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.ListFiltered(ctx, models.UserFilter{})
}

// ListFiltered возвращает пользователей группы, без группы или всех.
func (r *UserRepository) ListFiltered(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	var (
		where []string
		args  []interface{}
	)
	switch {
	case filter.GroupID != nil:
		where = append(where, "group_id = ?")
		args = append(args, *filter.GroupID)
	case filter.Ungrouped:
		where = append(where, "group_id IS NULL")
	}

	query := `SELECT ` + userColumns + ` FROM users`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY name, id`

	return db.InTx(ctx, r.store, "user.list", func(tx *sqlx.Tx) ([]models.User, error) {
		return common.Select[models.User](ctx, tx, query, args...)
	})
}

// Update обновляет имя, табельный номер и группу пользователя.
func (r *UserRepository) Update(ctx context.Context, user *models.User) (bool, error) {
	now := r.clock.Now()
	updated, err := db.InTx(ctx, r.store, "user.update", func(tx *sqlx.Tx) (bool, error) {
		n, err := common.Exec(ctx, tx, `
			UPDATE users SET name = ?, employee_id = ?, group_id = ?, updated_at = ? WHERE id = ?
		`, user.Name, common.Nullable(user.EmployeeID), common.Nullable(user.GroupID), now, user.ID)
		if err != nil {
			return false, userWriteError(err)
		}
		return n > 0, nil
	})
	if updated {
		user.UpdatedAt = now
	}
	return updated, err
}

// Delete удаляет пользователя вместе с его оценками.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return db.InTx(ctx, r.store, "user.delete", func(tx *sqlx.Tx) (bool, error) {
		if _, err := common.Exec(ctx, tx, `DELETE FROM evaluations WHERE user_id = ?`, id); err != nil {
			return false, err
		}
		n, err := common.Exec(ctx, tx, `DELETE FROM users WHERE id = ?`, id)
		return n > 0, err
	})
}
