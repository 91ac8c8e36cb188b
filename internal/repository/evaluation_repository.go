package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/skillmatrix/skill-matrix/internal/clock"
	"github.com/skillmatrix/skill-matrix/internal/db"
	"github.com/skillmatrix/skill-matrix/internal/models"
	"github.com/skillmatrix/skill-matrix/internal/repository/common"
)

const (
	evaluationColumns = `id, user_id, skill_id, level, created_at, updated_at`

	evaluationUpsertSuffix = `ON CONFLICT (user_id, skill_id) DO UPDATE SET level = excluded.level, updated_at = excluded.updated_at`

	bulkUpsertBatchSize = 200
)

type EvaluationRepository struct {
	store *db.Store
	clock clock.Clock
}

func NewEvaluationRepository(store *db.Store, clk clock.Clock) *EvaluationRepository {
	return &EvaluationRepository{store: store, clock: clk}
}

// Upsert записывает уровень пользователя по навыку: вставка или обновление существующей пары.
func (r *EvaluationRepository) Upsert(ctx context.Context, userID, skillID int64, level int) (*models.Evaluation, error) {
	now := r.clock.Now()
	return db.InTx(ctx, r.store, "evaluation.upsert", func(tx *sqlx.Tx) (*models.Evaluation, error) {
		if _, err := common.Exec(ctx, tx, `
			INSERT INTO evaluations (user_id, skill_id, level, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)
		`+evaluationUpsertSuffix, userID, skillID, level, now, now); err != nil {
			return nil, err
		}
		return getEvaluation(ctx, tx, userID, skillID)
	})
}

// BulkUpsert записывает набор оценок одной транзакцией пачками.
// Для повторяющейся пары (user, skill) побеждает последняя запись.
func (r *EvaluationRepository) BulkUpsert(ctx context.Context, evaluations []models.Evaluation) (int64, error) {
	if len(evaluations) == 0 {
		return 0, nil
	}

	type pair struct{ user, skill int64 }
	latest := make(map[pair]int, len(evaluations))
	order := make([]pair, 0, len(evaluations))
	for _, e := range evaluations {
		key := pair{e.UserID, e.SkillID}
		if _, seen := latest[key]; !seen {
			order = append(order, key)
		}
		latest[key] = e.Level
	}

	now := r.clock.Now()
	return db.InTx(ctx, r.store, "evaluation.bulk_upsert", func(tx *sqlx.Tx) (int64, error) {
		inserter := common.NewBatchInserter(tx,
			`INSERT INTO evaluations (user_id, skill_id, level, created_at, updated_at)`,
			evaluationUpsertSuffix, 5, bulkUpsertBatchSize)
		for _, key := range order {
			if err := inserter.Add(ctx, key.user, key.skill, latest[key], now, now); err != nil {
				return 0, err
			}
		}
		if err := inserter.Flush(ctx); err != nil {
			return 0, err
		}
		return int64(len(order)), nil
	})
}

// Get возвращает оценку пары или nil.
func (r *EvaluationRepository) Get(ctx context.Context, userID, skillID int64) (*models.Evaluation, error) {
	return db.InTx(ctx, r.store, "evaluation.get", func(tx *sqlx.Tx) (*models.Evaluation, error) {
		return getEvaluation(ctx, tx, userID, skillID)
	})
}

// Delete удаляет оценку пары.
func (r *EvaluationRepository) Delete(ctx context.Context, userID, skillID int64) (bool, error) {
	return db.InTx(ctx, r.store, "evaluation.delete", func(tx *sqlx.Tx) (bool, error) {
		n, err := common.Exec(ctx, tx, `DELETE FROM evaluations WHERE user_id = ? AND skill_id = ?`, userID, skillID)
		return n > 0, err
	})
}

// ListByUser возвращает оценки пользователя вместе с навыком и категорией.
func (r *EvaluationRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserEvaluation, error) {
	return db.InTx(ctx, r.store, "evaluation.list_by_user", func(tx *sqlx.Tx) ([]models.UserEvaluation, error) {
		return common.Select[models.UserEvaluation](ctx, tx, `
			SELECT
				s.id AS skill_id,
				s.name AS skill_name,
				c.id AS category_id,
				c.name AS category_name,
				e.level,
				e.updated_at
			FROM evaluations e
			JOIN skills s ON s.id = e.skill_id
			JOIN categories c ON c.id = s.category_id
			WHERE e.user_id = ?
			ORDER BY c.name, s.name
		`, userID)
	})
}

// ListRecords возвращает все оценки плоскими строками для выгрузки.
func (r *EvaluationRepository) ListRecords(ctx context.Context) ([]models.EvaluationRecord, error) {
	return db.InTx(ctx, r.store, "evaluation.list_records", func(tx *sqlx.Tx) ([]models.EvaluationRecord, error) {
		return common.Select[models.EvaluationRecord](ctx, tx, `
			SELECT
				g.name AS group_name,
				u.name AS user_name,
				u.employee_id,
				s.category_id,
				s.name AS skill_name,
				e.level
			FROM evaluations e
			JOIN users u ON u.id = e.user_id
			LEFT JOIN groups g ON g.id = u.group_id
			JOIN skills s ON s.id = e.skill_id
			ORDER BY g.name, u.name, u.id, s.category_id, s.name
		`)
	})
}

// CategoryAverage средний уровень пользователя по навыкам набора категорий.
// Без оценок возвращает 0.
func (r *EvaluationRepository) CategoryAverage(ctx context.Context, userID int64, categoryIDs []int64) (float64, int, error) {
	return r.average(ctx, "evaluation.category_average", `
		SELECT COALESCE(AVG(e.level), 0) AS avg, COUNT(e.id) AS count
		FROM evaluations e
		JOIN skills s ON s.id = e.skill_id
		WHERE e.user_id = ? AND s.category_id IN (?)
	`, userID, categoryIDs)
}

// GroupCategoryAverage средний уровень участников группы по навыкам набора категорий.
func (r *EvaluationRepository) GroupCategoryAverage(ctx context.Context, groupID int64, categoryIDs []int64) (float64, int, error) {
	return r.average(ctx, "evaluation.group_category_average", `
		SELECT COALESCE(AVG(e.level), 0) AS avg, COUNT(e.id) AS count
		FROM evaluations e
		JOIN users u ON u.id = e.user_id
		JOIN skills s ON s.id = e.skill_id
		WHERE u.group_id = ? AND s.category_id IN (?)
	`, groupID, categoryIDs)
}

func (r *EvaluationRepository) average(ctx context.Context, op, query string, ownerID int64, categoryIDs []int64) (float64, int, error) {
	if len(categoryIDs) == 0 {
		return 0, 0, nil
	}
	result, err := db.InTx(ctx, r.store, op, func(tx *sqlx.Tx) (averageRow, error) {
		rows, err := common.SelectIn[averageRow](ctx, tx, query, ownerID, categoryIDs)
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

type averageRow struct {
	Avg   sql.NullFloat64 `db:"avg"`
	Count int             `db:"count"`
}

func getEvaluation(ctx context.Context, tx *sqlx.Tx, userID, skillID int64) (*models.Evaluation, error) {
	return common.GetOne[models.Evaluation](ctx, tx, `
		SELECT `+evaluationColumns+` FROM evaluations WHERE user_id = ? AND skill_id = ?
	`, userID, skillID)
}
