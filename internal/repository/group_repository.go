package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/skillmatrix/skill-matrix/internal/clock"
	"github.com/skillmatrix/skill-matrix/internal/db"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/pkg/apperror"
	"github.com/skillmatrix/skill-matrix/internal/repository/common"
)

const groupColumns = `id, name, description, created_at, updated_at`

type GroupRepository struct {
	store *db.Store
	clock clock.Clock
}

func NewGroupRepository(store *db.Store, clk clock.Clock) *GroupRepository {
	return &GroupRepository{store: store, clock: clk}
}

// Create создаёт группу и заполняет id и метки времени.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	now := r.clock.Now()
	return r.store.WithTx(ctx, "group.create", func(tx *sqlx.Tx) error {
		id, err := common.InsertReturningID(ctx, tx, `
			INSERT INTO groups (name, description, created_at, updated_at)
			VALUES (?, ?, ?, ?)
		`, group.Name, group.Description, now, now)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return apperror.Duplicate("группа с таким названием уже существует", err)
			}
			return err
		}
		group.ID, group.CreatedAt, group.UpdatedAt = id, now, now
		return nil
	})
}

// GetByID возвращает группу по ID или nil.
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	return db.InTx(ctx, r.store, "group.get", func(tx *sqlx.Tx) (*models.Group, error) {
		return common.GetByID[models.Group](ctx, tx, "groups", groupColumns, id)
	})
}

// GetByName возвращает группу по точному названию или nil.
func (r *GroupRepository) GetByName(ctx context.Context, name string) (*models.Group, error) {
	return db.InTx(ctx, r.store, "group.get_by_name", func(tx *sqlx.Tx) (*models.Group, error) {
		return common.GetOne[models.Group](ctx, tx, `SELECT `+groupColumns+` FROM groups WHERE name = ?`, name)
	})
}

// List возвращает все группы по алфавиту.
func (r *GroupRepository) List(ctx context.Context) ([]models.Group, error) {
	return db.InTx(ctx, r.store, "group.list", func(tx *sqlx.Tx) ([]models.Group, error) {
		return common.Select[models.Group](ctx, tx, `SELECT `+groupColumns+` FROM groups ORDER BY name, id`)
	})
}

// Update обновляет название и описание группы.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) (bool, error) {
	now := r.clock.Now()
	updated, err := db.InTx(ctx, r.store, "group.update", func(tx *sqlx.Tx) (bool, error) {
		n, err := common.Exec(ctx, tx, `
			UPDATE groups SET name = ?, description = ?, updated_at = ? WHERE id = ?
		`, group.Name, group.Description, now, group.ID)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return false, apperror.Duplicate("группа с таким названием уже существует", err)
			}
			return false, err
		}
		return n > 0, nil
	})
	if updated {
		group.UpdatedAt = now
	}
	return updated, err
}

// Delete удаляет группу. Участники и категории группы остаются без группы.
func (r *GroupRepository) Delete(ctx context.Context, id int64) (bool, error) {
	now := r.clock.Now()
	return db.InTx(ctx, r.store, "group.delete", func(tx *sqlx.Tx) (bool, error) {
		if _, err := common.Exec(ctx, tx, `UPDATE users SET group_id = NULL, updated_at = ? WHERE group_id = ?`, now, id); err != nil {
			return false, err
		}
		if _, err := common.Exec(ctx, tx, `UPDATE categories SET group_id = NULL, updated_at = ? WHERE group_id = ?`, now, id); err != nil {
			return false, err
		}
		n, err := common.Exec(ctx, tx, `DELETE FROM groups WHERE id = ?`, id)
		return n > 0, err
	})
}

// Stats возвращает численность группы и сводку по оценкам её участников.
func (r *GroupRepository) Stats(ctx context.Context, groupID int64) (*models.GroupStats, error) {
	stats, err := db.InTx(ctx, r.store, "group.stats", func(tx *sqlx.Tx) (*models.GroupStats, error) {
		return common.GetOne[models.GroupStats](ctx, tx, `
			SELECT
				COUNT(DISTINCT u.id) AS member_count,
				COUNT(e.id) AS evaluation_count,
				COALESCE(AVG(e.level), 0) AS average_level,
				COALESCE(MIN(e.level), 0) AS min_level,
				COALESCE(MAX(e.level), 0) AS max_level
			FROM users u
			LEFT JOIN evaluations e ON e.user_id = u.id
			WHERE u.group_id = ?
		`, groupID)
	})
	if err != nil {
		return nil, err
	}
	stats.GroupID = groupID
	return stats, nil
}
