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

const targetColumns = `id, category_id, skill_id, target_level, created_at, updated_at`

// TargetRepository хранит целевые уровни навыков (skill_gap_settings).
type TargetRepository struct {
	store *db.Store
	clock clock.Clock
}

func NewTargetRepository(store *db.Store, clk clock.Clock) *TargetRepository {
	return &TargetRepository{store: store, clock: clk}
}

// Set задаёт цель навыка. Категория цели берётся из навыка.
func (r *TargetRepository) Set(ctx context.Context, skillID int64, level int) (*models.SkillTarget, error) {
	now := r.clock.Now()
	return db.InTx(ctx, r.store, "target.set", func(tx *sqlx.Tx) (*models.SkillTarget, error) {
		skill, err := common.GetByID[models.Skill](ctx, tx, "skills", skillColumns, skillID)
		if err != nil {
			return nil, err
		}
		if skill == nil {
			return nil, apperror.ErrSkillNotFound
		}

		if _, err := common.Exec(ctx, tx, `
			INSERT INTO skill_gap_settings (category_id, skill_id, target_level, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT (skill_id) DO UPDATE SET
				category_id = excluded.category_id,
				target_level = excluded.target_level,
				updated_at = excluded.updated_at
		`, skill.CategoryID, skillID, level, now, now); err != nil {
			return nil, err
		}
		return getTarget(ctx, tx, skillID)
	})
}

// Get возвращает цель навыка или nil.
func (r *TargetRepository) Get(ctx context.Context, skillID int64) (*models.SkillTarget, error) {
	return db.InTx(ctx, r.store, "target.get", func(tx *sqlx.Tx) (*models.SkillTarget, error) {
		return getTarget(ctx, tx, skillID)
	})
}

// Delete снимает цель навыка.
func (r *TargetRepository) Delete(ctx context.Context, skillID int64) (bool, error) {
	return db.InTx(ctx, r.store, "target.delete", func(tx *sqlx.Tx) (bool, error) {
		n, err := common.Exec(ctx, tx, `DELETE FROM skill_gap_settings WHERE skill_id = ?`, skillID)
		return n > 0, err
	})
}

// ListByCategory возвращает цели навыков одной категории.
func (r *TargetRepository) ListByCategory(ctx context.Context, categoryID int64) ([]models.SkillTarget, error) {
	return db.InTx(ctx, r.store, "target.list_by_category", func(tx *sqlx.Tx) ([]models.SkillTarget, error) {
		return common.Select[models.SkillTarget](ctx, tx, `
			SELECT `+targetColumns+` FROM skill_gap_settings WHERE category_id = ? ORDER BY skill_id
		`, categoryID)
	})
}

// CategoryTarget средняя цель по навыкам набора категорий; 0, если целей нет.
func (r *TargetRepository) CategoryTarget(ctx context.Context, categoryIDs []int64) (float64, int, error) {
	if len(categoryIDs) == 0 {
		return 0, 0, nil
	}
	result, err := db.InTx(ctx, r.store, "target.category_target", func(tx *sqlx.Tx) (averageRow, error) {
		rows, err := common.SelectIn[averageRow](ctx, tx, `
			SELECT COALESCE(AVG(target_level), 0) AS avg, COUNT(id) AS count
			FROM skill_gap_settings
			WHERE category_id IN (?)
		`, categoryIDs)
		if err != nil || len(rows) == 0 {
			return averageRow{}, err
		}
		return rows[0], nil
	})
	if err != nil {
		return 0, 0, err
	}
	return result.Avg.Float64, result.Count, nil
}

func getTarget(ctx context.Context, tx *sqlx.Tx, skillID int64) (*models.SkillTarget, error) {
	return common.GetOne[models.SkillTarget](ctx, tx, `
		SELECT `+targetColumns+` FROM skill_gap_settings WHERE skill_id = ?
	`, skillID)
}
