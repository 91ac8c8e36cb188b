package repository

import (
	"context"

	"github.com/skillmatrix/skill-matrix/internal/db"
	"github.com/skillmatrix/skill-matrix/internal/models"
)

// SystemRepository обслуживающие операции над хранилищем целиком.
type SystemRepository struct {
	store *db.Store
}

func NewSystemRepository(store *db.Store) *SystemRepository {
	return &SystemRepository{store: store}
}

// Counts возвращает число записей в основных таблицах одним запросом.
func (r *SystemRepository) Counts(ctx context.Context) (*models.SystemCounts, error) {
	var counts models.SystemCounts
	err := r.store.DB().GetContext(ctx, &counts, `
		SELECT
			(SELECT COUNT(*) FROM groups) AS group_count,
			(SELECT COUNT(*) FROM users) AS user_count,
			(SELECT COUNT(*) FROM categories) AS category_count,
			(SELECT COUNT(*) FROM skills) AS skill_count,
			(SELECT COUNT(*) FROM evaluations) AS evaluation_count,
			(SELECT COUNT(*) FROM skill_gap_settings) AS target_count
	`)
	if err != nil {
		return nil, db.ClassifyError("system.counts", err)
	}
	return &counts, nil
}

// Driver возвращает диалект хранилища.
func (r *SystemRepository) Driver() string {
	return string(r.store.Dialect())
}

// Schema возвращает имя последней применённой миграции.
func (r *SystemRepository) Schema(ctx context.Context) (string, error) {
	names, err := r.store.AppliedMigrations(ctx)
	if err != nil {
		return "", db.ClassifyError("system.schema", err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[len(names)-1], nil
}

func (r *SystemRepository) Backup(ctx context.Context, dest string) error {
	return r.store.Backup(ctx, dest)
}
