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

const skillColumns = `id, name, description, category_id, created_at, updated_at`

type SkillRepository struct {
	store *db.Store
	clock clock.Clock
}

func NewSkillRepository(store *db.Store, clk clock.Clock) *SkillRepository {
	return &SkillRepository{store: store, clock: clk}
}

func skillWriteError(err error) error {
	if db.IsUniqueViolation(err) {
		return apperror.Duplicate("навык с таким названием уже есть в категории", err)
	}
	return err
}

// Create создаёт навык в существующей категории.
func (r *SkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	now := r.clock.Now()
	return r.store.WithTx(ctx, "skill.create", func(tx *sqlx.Tx) error {
		if err := requireCategory(ctx, tx, skill.CategoryID, apperror.ErrCategoryNotFound); err != nil {
			return err
		}
		id, err := common.InsertReturningID(ctx, tx, `
			INSERT INTO skills (name, description, category_id, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`, skill.Name, skill.Description, skill.CategoryID, now, now)
		if err != nil {
			return skillWriteError(err)
		}
		skill.ID, skill.CreatedAt, skill.UpdatedAt = id, now, now
		return nil
	})
}

// GetByID возвращает навык по ID или nil.
func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*models.Skill, error) {
	return db.InTx(ctx, r.store, "skill.get", func(tx *sqlx.Tx) (*models.Skill, error) {
		return common.GetByID[models.Skill](ctx, tx, "skills", skillColumns, id)
	})
}

// GetByName ищет навык по имени внутри категории.
func (r *SkillRepository) GetByName(ctx context.Context, categoryID int64, name string) (*models.Skill, error) {
	return db.InTx(ctx, r.store, "skill.get_by_name", func(tx *sqlx.Tx) (*models.Skill, error) {
		return common.GetOne[models.Skill](ctx, tx, `
			SELECT `+skillColumns+` FROM skills WHERE category_id = ? AND name = ?
		`, categoryID, name)
	})
}

// List возвращает все навыки.
func (r *SkillRepository) List(ctx context.Context) ([]models.Skill, error) {
	return db.InTx(ctx, r.store, "skill.list", func(tx *sqlx.Tx) ([]models.Skill, error) {
		return common.Select[models.Skill](ctx, tx, `SELECT `+skillColumns+` FROM skills ORDER BY name, id`)
	})
}

// ListByCategory возвращает навыки одной категории без потомков.
func (r *SkillRepository) ListByCategory(ctx context.Context, categoryID int64) ([]models.Skill, error) {
	return db.InTx(ctx, r.store, "skill.list_by_category", func(tx *sqlx.Tx) ([]models.Skill, error) {
		return common.Select[models.Skill](ctx, tx, `
			SELECT `+skillColumns+` FROM skills WHERE category_id = ? ORDER BY name, id
		`, categoryID)
	})
}

// ListByCategories возвращает навыки набора категорий.
func (r *SkillRepository) ListByCategories(ctx context.Context, categoryIDs []int64) ([]models.Skill, error) {
	if len(categoryIDs) == 0 {
		return []models.Skill{}, nil
	}
	return db.InTx(ctx, r.store, "skill.list_by_categories", func(tx *sqlx.Tx) ([]models.Skill, error) {
		return common.SelectIn[models.Skill](ctx, tx, `
			SELECT `+skillColumns+` FROM skills WHERE category_id IN (?) ORDER BY name, id
		`, categoryIDs)
	})
}

// Update сохраняет навык. При переносе в другую категорию цель навыка переезжает вместе с ним.
func (r *SkillRepository) Update(ctx context.Context, skill *models.Skill) (bool, error) {
	now := r.clock.Now()
	updated, err := db.InTx(ctx, r.store, "skill.update", func(tx *sqlx.Tx) (bool, error) {
		if found, err := rowExists(ctx, tx, "skills", skill.ID); err != nil || !found {
			return false, err
		}
		if err := requireCategory(ctx, tx, skill.CategoryID, apperror.ErrCategoryNotFound); err != nil {
			return false, err
		}
		n, err := common.Exec(ctx, tx, `
			UPDATE skills SET name = ?, description = ?, category_id = ?, updated_at = ? WHERE id = ?
		`, skill.Name, skill.Description, skill.CategoryID, now, skill.ID)
		if err != nil {
			return false, skillWriteError(err)
		}
		if n == 0 {
			return false, nil
		}
		if _, err := common.Exec(ctx, tx, `
			UPDATE skill_gap_settings SET category_id = ?, updated_at = ? WHERE skill_id = ? AND category_id <> ?
		`, skill.CategoryID, now, skill.ID, skill.CategoryID); err != nil {
			return false, err
		}
		return true, nil
	})
	if updated {
		skill.UpdatedAt = now
	}
	return updated, err
}

// Delete удаляет навык, его цель и оценки.
func (r *SkillRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return db.InTx(ctx, r.store, "skill.delete", func(tx *sqlx.Tx) (bool, error) {
		if _, err := common.Exec(ctx, tx, `DELETE FROM evaluations WHERE skill_id = ?`, id); err != nil {
			return false, err
		}
		if _, err := common.Exec(ctx, tx, `DELETE FROM skill_gap_settings WHERE skill_id = ?`, id); err != nil {
			return false, err
		}
		n, err := common.Exec(ctx, tx, `DELETE FROM skills WHERE id = ?`, id)
		return n > 0, err
	})
}
