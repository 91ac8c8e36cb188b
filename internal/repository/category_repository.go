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

const categoryColumns = `id, name, description, parent_id, group_id, display_order, created_at, updated_at`

// subtreeQuery обходит поддерево категории, начиная с неё самой; глубокие узлы идут первыми.
const subtreeQuery = `
	WITH RECURSIVE subtree(id, depth) AS (
		SELECT id, 0 FROM categories WHERE id = ?
		UNION ALL
		SELECT c.id, s.depth + 1 FROM categories c JOIN subtree s ON c.parent_id = s.id
	)
	SELECT id, depth FROM subtree ORDER BY depth DESC, id
`

type subtreeRow struct {
	ID    int64 `db:"id"`
	Depth int   `db:"depth"`
}

type CategoryRepository struct {
	store *db.Store
	clock clock.Clock
}

func NewCategoryRepository(store *db.Store, clk clock.Clock) *CategoryRepository {
	return &CategoryRepository{store: store, clock: clk}
}

func categoryWriteError(err error) error {
	if db.IsUniqueViolation(err) {
		return apperror.Duplicate("категория с таким названием уже есть у этого родителя", err)
	}
	return err
}

// Create создаёт категорию. Родитель, если указан, должен существовать.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	now := r.clock.Now()
	return r.store.WithTx(ctx, "category.create", func(tx *sqlx.Tx) error {
		if category.ParentID != nil {
			if err := requireCategory(ctx, tx, *category.ParentID, apperror.ErrParentNotFound); err != nil {
				return err
			}
		}
		id, err := common.InsertReturningID(ctx, tx, `
			INSERT INTO categories (name, description, parent_id, group_id, display_order, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, category.Name, category.Description, common.Nullable(category.ParentID), common.Nullable(category.GroupID),
			category.DisplayOrder, now, now)
		if err != nil {
			return categoryWriteError(err)
		}
		category.ID, category.CreatedAt, category.UpdatedAt = id, now, now
		return nil
	})
}

// GetByID возвращает категорию по ID или nil.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	return db.InTx(ctx, r.store, "category.get", func(tx *sqlx.Tx) (*models.Category, error) {
		return common.GetByID[models.Category](ctx, tx, "categories", categoryColumns, id)
	})
}

// GetByName ищет категорию по имени среди детей parentID (nil - среди корней).
func (r *CategoryRepository) GetByName(ctx context.Context, parentID *int64, name string) (*models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = ?`
	args := []interface{}{name}
	if parentID != nil {
		query += ` AND parent_id = ?`
		args = append(args, *parentID)
	} else {
		query += ` AND parent_id IS NULL`
	}

	return db.InTx(ctx, r.store, "category.get_by_name", func(tx *sqlx.Tx) (*models.Category, error) {
		return common.GetOne[models.Category](ctx, tx, query, args...)
	})
}

// List возвращает все категории плоским списком.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	return db.InTx(ctx, r.store, "category.list", func(tx *sqlx.Tx) ([]models.Category, error) {
		return common.Select[models.Category](ctx, tx, `
			SELECT `+categoryColumns+` FROM categories ORDER BY display_order, name, id
		`)
	})
}

// ListChildren возвращает прямых потомков parentID или корни при nil.
func (r *CategoryRepository) ListChildren(ctx context.Context, parentID *int64) ([]models.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id IS NULL ORDER BY display_order, name, id`
	var args []interface{}
	if parentID != nil {
		query = `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id = ? ORDER BY display_order, name, id`
		args = append(args, *parentID)
	}

	return db.InTx(ctx, r.store, "category.list_children", func(tx *sqlx.Tx) ([]models.Category, error) {
		return common.Select[models.Category](ctx, tx, query, args...)
	})
}

// ListByGroup возвращает категории, закреплённые за группой.
func (r *CategoryRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.Category, error) {
	return db.InTx(ctx, r.store, "category.list_by_group", func(tx *sqlx.Tx) ([]models.Category, error) {
		return common.Select[models.Category](ctx, tx, `
			SELECT `+categoryColumns+` FROM categories WHERE group_id = ? ORDER BY display_order, name, id
		`, groupID)
	})
}

// Rename меняет только название категории.
func (r *CategoryRepository) Rename(ctx context.Context, id int64, name string) (bool, error) {
	now := r.clock.Now()
	return db.InTx(ctx, r.store, "category.rename", func(tx *sqlx.Tx) (bool, error) {
		n, err := common.Exec(ctx, tx, `UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`, name, now, id)
		if err != nil {
			return false, categoryWriteError(err)
		}
		return n > 0, nil
	})
}

// Update сохраняет все поля категории. Перенос в собственное поддерево отклоняется.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) (bool, error) {
	now := r.clock.Now()
	updated, err := db.InTx(ctx, r.store, "category.update", func(tx *sqlx.Tx) (bool, error) {
		if found, err := rowExists(ctx, tx, "categories", category.ID); err != nil || !found {
			return false, err
		}
		if category.ParentID != nil {
			if err := requireCategory(ctx, tx, *category.ParentID, apperror.ErrParentNotFound); err != nil {
				return false, err
			}
			rows, err := subtree(ctx, tx, category.ID)
			if err != nil {
				return false, err
			}
			for _, row := range rows {
				if row.ID == *category.ParentID {
					return false, apperror.ErrCategoryCycle
				}
			}
		}

		n, err := common.Exec(ctx, tx, `
			UPDATE categories
			SET name = ?, description = ?, parent_id = ?, group_id = ?, display_order = ?, updated_at = ?
			WHERE id = ?
		`, category.Name, category.Description, common.Nullable(category.ParentID), common.Nullable(category.GroupID),
			category.DisplayOrder, now, category.ID)
		if err != nil {
			return false, categoryWriteError(err)
		}
		return n > 0, nil
	})
	if updated {
		category.UpdatedAt = now
	}
	return updated, err
}

// SubtreeIDs возвращает id категории и всех её потомков, глубокие первыми.
// Для несуществующей категории возвращается пустой список.
func (r *CategoryRepository) SubtreeIDs(ctx context.Context, id int64) ([]int64, error) {
	return db.InTx(ctx, r.store, "category.subtree", func(tx *sqlx.Tx) ([]int64, error) {
		rows, err := subtree(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		return subtreeIDs(rows), nil
	})
}

// Delete удаляет категорию со всем поддеревом.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result, err := r.DeleteWithStats(ctx, id)
	return result != nil, err
}

// DeleteWithStats удаляет категорию, её потомков, их навыки, цели и оценки одной транзакцией.
// Категории удаляются снизу вверх. Возвращает nil, если категории нет.
func (r *CategoryRepository) DeleteWithStats(ctx context.Context, id int64) (*models.CategoryDeleteResult, error) {
	return db.InTx(ctx, r.store, "category.delete", func(tx *sqlx.Tx) (*models.CategoryDeleteResult, error) {
		rows, err := subtree(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, nil
		}
		ids := subtreeIDs(rows)

		result := &models.CategoryDeleteResult{}
		if result.Evaluations, err = common.ExecIn(ctx, tx, `
			DELETE FROM evaluations WHERE skill_id IN (SELECT id FROM skills WHERE category_id IN (?))
		`, ids); err != nil {
			return nil, err
		}
		if _, err = common.ExecIn(ctx, tx, `DELETE FROM skill_gap_settings WHERE category_id IN (?)`, ids); err != nil {
			return nil, err
		}
		if result.Skills, err = common.ExecIn(ctx, tx, `DELETE FROM skills WHERE category_id IN (?)`, ids); err != nil {
			return nil, err
		}
		for _, categoryID := range ids {
			n, err := common.Exec(ctx, tx, `DELETE FROM categories WHERE id = ?`, categoryID)
			if err != nil {
				return nil, err
			}
			result.Categories += n
		}
		return result, nil
	})
}

func subtree(ctx context.Context, tx *sqlx.Tx, id int64) ([]subtreeRow, error) {
	return common.Select[subtreeRow](ctx, tx, subtreeQuery, id)
}

func subtreeIDs(rows []subtreeRow) []int64 {
	ids := make([]int64, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	return ids
}

func requireCategory(ctx context.Context, tx *sqlx.Tx, id int64, notFound error) error {
	found, err := rowExists(ctx, tx, "categories", id)
	if err != nil {
		return err
	}
	if !found {
		return notFound
	}
	return nil
}

// rowExists проверяет наличие строки с id в таблице. table задаётся только константой.
func rowExists(ctx context.Context, tx *sqlx.Tx, table string, id int64) (bool, error) {
	var count int
	if err := tx.GetContext(ctx, &count, tx.Rebind(`SELECT COUNT(*) FROM `+table+` WHERE id = ?`), id); err != nil {
		return false, err
	}
	return count > 0, nil
}
